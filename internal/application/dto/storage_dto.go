package dto

// GCSHealthResponse estado de configuración y conectividad con Cloud Storage.
type GCSHealthResponse struct {
	Configured     bool           `json:"configured"`
	BucketName     string         `json:"bucket_name"`
	ConnectionTest ConnectionTest `json:"connection_test"`
	BucketExists   *bool          `json:"bucket_exists,omitempty"`
}

// GCSFileDTO metadata resumida de un objeto del bucket.
type GCSFileDTO struct {
	Name        string  `json:"name"`
	Size        int64   `json:"size"`
	SizeMB      float64 `json:"size_mb"`
	Created     string  `json:"created,omitempty"`
	Updated     string  `json:"updated,omitempty"`
	ContentType string  `json:"content_type"`
	MD5Hash     string  `json:"md5_hash,omitempty"`
	PublicURL   string  `json:"public_url,omitempty"`
}

// GCSListResponse respuesta de GET /api/gcs/files.
type GCSListResponse struct {
	Status         string       `json:"status"`
	Bucket         string       `json:"bucket"`
	Prefix         string       `json:"prefix,omitempty"`
	Count          int          `json:"count"`
	TotalSizeBytes int64        `json:"total_size_bytes"`
	TotalSizeMB    float64      `json:"total_size_mb"`
	Files          []GCSFileDTO `json:"files"`
}

// GCSUploadResponse respuesta de POST /api/gcs/upload.
type GCSUploadResponse struct {
	Status  string     `json:"status"`
	Message string     `json:"message"`
	File    GCSFileDTO `json:"file"`
}

// GCSDeleteResponse respuesta de DELETE /api/gcs/delete.
type GCSDeleteResponse struct {
	Status      string     `json:"status"`
	Message     string     `json:"message"`
	DeletedFile GCSFileDTO `json:"deleted_file"`
}

// GCSMetadataResponse metadata completa de un objeto.
type GCSMetadataResponse struct {
	Status string          `json:"status"`
	File   GCSFileDetail   `json:"file"`
}

// GCSFileDetail metadata extendida (tamaños, fechas, checksums).
type GCSFileDetail struct {
	Name         string            `json:"name"`
	Bucket       string            `json:"bucket"`
	Size         GCSFileSizes      `json:"size"`
	Dates        GCSFileDates      `json:"dates"`
	Checksums    GCSFileChecksums  `json:"checksums"`
	ContentType  string            `json:"content_type"`
	StorageClass string            `json:"storage_class"`
	Generation   int64             `json:"generation"`
	Metagen      int64             `json:"metageneration"`
	PublicURL    string            `json:"public_url"`
	MediaLink    string            `json:"media_link"`
}

// GCSFileSizes tamaño del objeto en varias unidades.
type GCSFileSizes struct {
	Bytes int64   `json:"bytes"`
	KB    float64 `json:"kb"`
	MB    float64 `json:"mb"`
}

// GCSFileDates fechas de creación y actualización (RFC 3339).
type GCSFileDates struct {
	Created string `json:"created,omitempty"`
	Updated string `json:"updated,omitempty"`
}

// GCSFileChecksums integridad del objeto.
type GCSFileChecksums struct {
	MD5Hash string `json:"md5_hash"`
	CRC32C  uint32 `json:"crc32c"`
	Etag    string `json:"etag"`
}
