package gcs

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/alternativecbd/glop-holded-api/internal/application/reconcile"
	"github.com/alternativecbd/glop-holded-api/internal/domain"
)

// Verificar en tiempo de compilación los puertos que implementa el cliente.
var (
	_ reconcile.ObjectStore = (*Client)(nil)
	_ reconcile.RunLogStore = (*Client)(nil)
)

// Client adaptador sobre el SDK de Google Cloud Storage, ligado a un bucket.
// Las credenciales llegan como JSON de cuenta de servicio en base64 (formato
// heredado: una sola variable de entorno en el despliegue).
type Client struct {
	client *storage.Client
	bucket string
}

// FileInfo metadata de un objeto del bucket, en la forma que consume la capa
// de presentación.
type FileInfo struct {
	Name           string
	Bucket         string
	Size           int64
	ContentType    string
	Created        time.Time
	Updated        time.Time
	MD5Hash        string
	CRC32C         uint32
	Etag           string
	StorageClass   string
	Generation     int64
	Metageneration int64
	MediaLink      string
	PublicURL      string
}

// NewClient construye el cliente decodificando las credenciales base64.
func NewClient(ctx context.Context, credentialsBase64, bucketName string) (*Client, error) {
	if credentialsBase64 == "" {
		return nil, domain.ErrGCSNotConfigured
	}
	credsJSON, err := base64.StdEncoding.DecodeString(credentialsBase64)
	if err != nil {
		return nil, fmt.Errorf("gcs: decodificar credenciales base64: %w", err)
	}
	client, err := storage.NewClient(ctx, option.WithCredentialsJSON(credsJSON))
	if err != nil {
		return nil, fmt.Errorf("gcs: crear cliente: %w", err)
	}
	return &Client{client: client, bucket: bucketName}, nil
}

// Close libera el cliente subyacente.
func (c *Client) Close() error {
	return c.client.Close()
}

// Bucket devuelve el nombre del bucket configurado.
func (c *Client) Bucket() string {
	return c.bucket
}

// BucketExists comprueba que el bucket configurado existe y es accesible.
func (c *Client) BucketExists(ctx context.Context) (bool, error) {
	_, err := c.client.Bucket(c.bucket).Attrs(ctx)
	if errors.Is(err, storage.ErrBucketNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("gcs: consultar bucket: %w", err)
	}
	return true, nil
}

// ParseURI separa una URI gs://bucket/objeto. Los "%20" del nombre de objeto
// se sustituyen por espacios (las URIs llegan copiadas de la consola).
func ParseURI(uri string) (bucket, object string, err error) {
	if !strings.HasPrefix(uri, "gs://") {
		return "", "", domain.ErrInvalidGCSURI
	}
	parts := strings.SplitN(uri[len("gs://"):], "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", domain.ErrInvalidGCSURI
	}
	return parts[0], strings.ReplaceAll(parts[1], "%20", " "), nil
}

// Fetch descarga los bytes de un objeto referenciado por URI gs://.
// Implementa el puerto ObjectStore del pipeline.
func (c *Client) Fetch(ctx context.Context, uri string) ([]byte, error) {
	bucket, object, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}
	r, err := c.client.Bucket(bucket).Object(object).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, uri)
	}
	if err != nil {
		return nil, fmt.Errorf("gcs: abrir %s: %w", uri, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gcs: leer %s: %w", uri, err)
	}
	return data, nil
}

// List enumera los objetos del bucket con un prefijo opcional, hasta maxResults.
func (c *Client) List(ctx context.Context, prefix string, maxResults int) ([]FileInfo, error) {
	it := c.client.Bucket(c.bucket).Objects(ctx, &storage.Query{Prefix: prefix})
	var files []FileInfo
	for {
		if maxResults > 0 && len(files) >= maxResults {
			break
		}
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("gcs: listar objetos: %w", err)
		}
		files = append(files, toFileInfo(attrs))
	}
	return files, nil
}

// Upload sube un objeto al bucket y devuelve su metadata ya persistida.
func (c *Client) Upload(ctx context.Context, objectName, contentType string, data []byte) (FileInfo, error) {
	obj := c.client.Bucket(c.bucket).Object(objectName)
	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return FileInfo{}, fmt.Errorf("gcs: escribir %s: %w", objectName, err)
	}
	if err := w.Close(); err != nil {
		return FileInfo{}, fmt.Errorf("gcs: cerrar escritura de %s: %w", objectName, err)
	}
	attrs, err := obj.Attrs(ctx)
	if err != nil {
		return FileInfo{}, fmt.Errorf("gcs: releer metadata de %s: %w", objectName, err)
	}
	return toFileInfo(attrs), nil
}

// Download descarga un objeto del bucket junto con su metadata.
func (c *Client) Download(ctx context.Context, objectName string) ([]byte, FileInfo, error) {
	obj := c.client.Bucket(c.bucket).Object(objectName)
	attrs, err := obj.Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, FileInfo{}, fmt.Errorf("%w: %s", domain.ErrFileNotFound, objectName)
	}
	if err != nil {
		return nil, FileInfo{}, fmt.Errorf("gcs: metadata de %s: %w", objectName, err)
	}
	r, err := obj.NewReader(ctx)
	if err != nil {
		return nil, FileInfo{}, fmt.Errorf("gcs: abrir %s: %w", objectName, err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, FileInfo{}, fmt.Errorf("gcs: leer %s: %w", objectName, err)
	}
	return data, toFileInfo(attrs), nil
}

// Delete elimina un objeto y devuelve la metadata que tenía.
func (c *Client) Delete(ctx context.Context, objectName string) (FileInfo, error) {
	obj := c.client.Bucket(c.bucket).Object(objectName)
	attrs, err := obj.Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return FileInfo{}, fmt.Errorf("%w: %s", domain.ErrFileNotFound, objectName)
	}
	if err != nil {
		return FileInfo{}, fmt.Errorf("gcs: metadata de %s: %w", objectName, err)
	}
	if err := obj.Delete(ctx); err != nil {
		return FileInfo{}, fmt.Errorf("gcs: eliminar %s: %w", objectName, err)
	}
	return toFileInfo(attrs), nil
}

// Metadata devuelve la metadata completa de un objeto.
func (c *Client) Metadata(ctx context.Context, objectName string) (FileInfo, error) {
	attrs, err := c.client.Bucket(c.bucket).Object(objectName).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return FileInfo{}, fmt.Errorf("%w: %s", domain.ErrFileNotFound, objectName)
	}
	if err != nil {
		return FileInfo{}, fmt.Errorf("gcs: metadata de %s: %w", objectName, err)
	}
	return toFileInfo(attrs), nil
}

// StoreRunLog sube el log JSON de una ejecución de reconciliación.
// Implementa el puerto RunLogStore del pipeline.
func (c *Client) StoreRunLog(ctx context.Context, name string, payload any) error {
	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("gcs: serializar run log: %w", err)
	}
	if _, err := c.Upload(ctx, name, "application/json", raw); err != nil {
		return err
	}
	return nil
}

func toFileInfo(attrs *storage.ObjectAttrs) FileInfo {
	return FileInfo{
		Name:           attrs.Name,
		Bucket:         attrs.Bucket,
		Size:           attrs.Size,
		ContentType:    attrs.ContentType,
		Created:        attrs.Created,
		Updated:        attrs.Updated,
		MD5Hash:        base64.StdEncoding.EncodeToString(attrs.MD5),
		CRC32C:         attrs.CRC32C,
		Etag:           attrs.Etag,
		StorageClass:   attrs.StorageClass,
		Generation:     attrs.Generation,
		Metageneration: attrs.Metageneration,
		MediaLink:      attrs.MediaLink,
		PublicURL:      fmt.Sprintf("https://storage.googleapis.com/%s/%s", attrs.Bucket, attrs.Name),
	}
}
