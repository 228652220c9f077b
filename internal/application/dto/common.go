package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ConnectionTest resultado de una prueba de conectividad en los health checks.
type ConnectionTest struct {
	Status  string `json:"status"` // success, error, not_tested, not_configured
	Message string `json:"message"`
}
