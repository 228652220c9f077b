package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrAPIKeyNotConfigured = errors.New("API key de Holded no configurada")
	ErrGCSNotConfigured    = errors.New("credenciales GCS no configuradas")
	ErrInvalidGCSURI       = errors.New("URI inválida, formato esperado: gs://bucket/path/file.csv")
	ErrFileNotFound        = errors.New("archivo no encontrado")
	ErrNotCSV              = errors.New("el archivo debe ser CSV")
	ErrMissingColumn       = errors.New("columna faltante en CSV")

	// ErrUpstreamUnavailable indica que no se pudo obtener el snapshot de
	// catálogo, almacenes o stock desde Holded: sin él no se puede procesar
	// ninguna fila, por lo que aborta la ejecución completa.
	ErrUpstreamUnavailable = errors.New("servicio externo no disponible")
)
