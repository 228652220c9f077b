package usecase

import (
	"context"
	"math"
	"time"

	"github.com/alternativecbd/glop-holded-api/internal/application/dto"
	"github.com/alternativecbd/glop-holded-api/internal/infrastructure/gcs"
	"github.com/alternativecbd/glop-holded-api/pkg/config"
)

// StorageUseCase operaciones sobre el bucket de Cloud Storage (proxy fino).
type StorageUseCase struct {
	client *gcs.Client // nil si no hay credenciales configuradas
	cfg    config.GCSConfig
}

// NewStorageUseCase construye el caso de uso. client puede ser nil.
func NewStorageUseCase(client *gcs.Client, cfg config.GCSConfig) *StorageUseCase {
	return &StorageUseCase{client: client, cfg: cfg}
}

// Configured indica si hay cliente GCS disponible.
func (uc *StorageUseCase) Configured() bool {
	return uc.client != nil
}

// Health comprueba configuración y acceso al bucket.
func (uc *StorageUseCase) Health(ctx context.Context) *dto.GCSHealthResponse {
	resp := &dto.GCSHealthResponse{
		Configured: uc.cfg.Configured(),
		BucketName: uc.cfg.BucketName,
	}
	if uc.client == nil {
		resp.ConnectionTest = dto.ConnectionTest{Status: "not_configured", Message: "Credenciales GCS no configuradas"}
		return resp
	}
	exists, err := uc.client.BucketExists(ctx)
	if err != nil {
		resp.ConnectionTest = dto.ConnectionTest{Status: "error", Message: err.Error()}
		return resp
	}
	resp.BucketExists = &exists
	if !exists {
		resp.ConnectionTest = dto.ConnectionTest{
			Status:  "error",
			Message: "El bucket " + uc.cfg.BucketName + " no existe o no es accesible",
		}
		return resp
	}
	resp.ConnectionTest = dto.ConnectionTest{Status: "success", Message: "Conexión exitosa con Google Cloud Storage"}
	return resp
}

// List enumera objetos del bucket (prefijo opcional, máximo configurable).
func (uc *StorageUseCase) List(ctx context.Context, prefix string, maxResults int) (*dto.GCSListResponse, error) {
	files, err := uc.client.List(ctx, prefix, maxResults)
	if err != nil {
		return nil, err
	}
	resp := &dto.GCSListResponse{
		Status: "success",
		Bucket: uc.client.Bucket(),
		Prefix: prefix,
		Count:  len(files),
		Files:  make([]dto.GCSFileDTO, 0, len(files)),
	}
	for _, f := range files {
		resp.TotalSizeBytes += f.Size
		resp.Files = append(resp.Files, toFileDTO(f))
	}
	resp.TotalSizeMB = roundMB(resp.TotalSizeBytes)
	return resp, nil
}

// Upload sube un archivo al bucket. destination vacío usa el nombre original.
func (uc *StorageUseCase) Upload(ctx context.Context, filename, destination, contentType string, data []byte) (*dto.GCSUploadResponse, error) {
	name := destination
	if name == "" {
		name = filename
	}
	info, err := uc.client.Upload(ctx, name, contentType, data)
	if err != nil {
		return nil, err
	}
	return &dto.GCSUploadResponse{
		Status:  "success",
		Message: "Archivo subido exitosamente",
		File:    toFileDTO(info),
	}, nil
}

// Download descarga un objeto con su metadata (para Content-Type y nombre).
func (uc *StorageUseCase) Download(ctx context.Context, objectName string) ([]byte, gcs.FileInfo, error) {
	return uc.client.Download(ctx, objectName)
}

// Delete elimina un objeto del bucket.
func (uc *StorageUseCase) Delete(ctx context.Context, objectName string) (*dto.GCSDeleteResponse, error) {
	info, err := uc.client.Delete(ctx, objectName)
	if err != nil {
		return nil, err
	}
	return &dto.GCSDeleteResponse{
		Status:      "success",
		Message:     "Archivo eliminado exitosamente",
		DeletedFile: toFileDTO(info),
	}, nil
}

// Metadata devuelve la metadata completa de un objeto.
func (uc *StorageUseCase) Metadata(ctx context.Context, objectName string) (*dto.GCSMetadataResponse, error) {
	info, err := uc.client.Metadata(ctx, objectName)
	if err != nil {
		return nil, err
	}
	return &dto.GCSMetadataResponse{
		Status: "success",
		File: dto.GCSFileDetail{
			Name:   info.Name,
			Bucket: info.Bucket,
			Size: dto.GCSFileSizes{
				Bytes: info.Size,
				KB:    round2(float64(info.Size) / 1024),
				MB:    roundMB(info.Size),
			},
			Dates: dto.GCSFileDates{
				Created: formatTime(info.Created),
				Updated: formatTime(info.Updated),
			},
			Checksums: dto.GCSFileChecksums{
				MD5Hash: info.MD5Hash,
				CRC32C:  info.CRC32C,
				Etag:    info.Etag,
			},
			ContentType:  info.ContentType,
			StorageClass: info.StorageClass,
			Generation:   info.Generation,
			Metagen:      info.Metageneration,
			PublicURL:    info.PublicURL,
			MediaLink:    info.MediaLink,
		},
	}, nil
}

func toFileDTO(f gcs.FileInfo) dto.GCSFileDTO {
	return dto.GCSFileDTO{
		Name:        f.Name,
		Size:        f.Size,
		SizeMB:      roundMB(f.Size),
		Created:     formatTime(f.Created),
		Updated:     formatTime(f.Updated),
		ContentType: f.ContentType,
		MD5Hash:     f.MD5Hash,
		PublicURL:   f.PublicURL,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func roundMB(bytes int64) float64 {
	return round2(float64(bytes) / (1024 * 1024))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
