package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/alternativecbd/glop-holded-api/internal/application/dto"
	"github.com/alternativecbd/glop-holded-api/internal/application/usecase"
)

// CSVHandler maneja la previsualización y validación de CSV de ventas.
type CSVHandler struct {
	uc *usecase.CSVUseCase
}

// NewCSVHandler construye el handler.
func NewCSVHandler(uc *usecase.CSVUseCase) *CSVHandler {
	return &CSVHandler{uc: uc}
}

// Preview godoc
// @Summary      Previsualizar un CSV de ventas
// @Tags         csv
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "CSV delimitado por ';'"
// @Success      200  {object}  dto.CSVPreviewResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/upload-csv [post]
func (h *CSVHandler) Preview(c *fiber.Ctx) error {
	filename, data, err := readUpload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: err.Error()})
	}
	out, err := h.uc.Preview(filename, data)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Validate godoc
// @Summary      Validar un CSV de ventas contra el catálogo de Holded
// @Tags         csv
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "CSV de ventas (delimitado por ';')"
// @Success      200  {object}  dto.StockValidationResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/stock/validate [post]
func (h *CSVHandler) Validate(c *fiber.Ctx) error {
	filename, data, err := readUpload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: err.Error()})
	}
	out, err := h.uc.Validate(c.Context(), filename, data)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
