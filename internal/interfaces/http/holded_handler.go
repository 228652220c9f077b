package http

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/alternativecbd/glop-holded-api/internal/application/dto"
	"github.com/alternativecbd/glop-holded-api/internal/application/usecase"
)

// HoldedHandler maneja las peticiones HTTP de integración con Holded.
type HoldedHandler struct {
	uc          *usecase.HoldedUseCase
	reconcileUC *usecase.ReconcileUseCase
}

// NewHoldedHandler construye el handler.
func NewHoldedHandler(uc *usecase.HoldedUseCase, reconcileUC *usecase.ReconcileUseCase) *HoldedHandler {
	return &HoldedHandler{uc: uc, reconcileUC: reconcileUC}
}

// Health godoc
// @Summary      Verificar configuración de Holded
// @Tags         holded
// @Produce      json
// @Success      200  {object}  dto.HoldedHealthResponse
// @Router       /api/holded/health [get]
func (h *HoldedHandler) Health(c *fiber.Ctx) error {
	return c.JSON(h.uc.Health(c.Context()))
}

// Warehouses godoc
// @Summary      Listar almacenes
// @Tags         holded
// @Produce      json
// @Success      200  {object}  dto.WarehouseListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/holded/warehouses [get]
func (h *HoldedHandler) Warehouses(c *fiber.Ctx) error {
	out, err := h.uc.Warehouses(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// StockByWarehouse godoc
// @Summary      Stock por almacén
// @Tags         holded
// @Produce      json
// @Success      200  {object}  dto.StockByWarehouseResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/holded/stock-by-warehouse [get]
func (h *HoldedHandler) StockByWarehouse(c *fiber.Ctx) error {
	out, err := h.uc.StockByWarehouse(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// UpdateStock godoc
// @Summary      Actualizar stock por SKU y almacén
// @Tags         holded
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockUpdateRequest  true  "Ajuste de stock"
// @Success      200   {object}  dto.StockUpdateResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/holded/stock/update [put]
func (h *HoldedHandler) UpdateStock(c *fiber.Ctx) error {
	var in dto.StockUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SKU == "" || in.WarehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sku y warehouse_id son requeridos"})
	}
	out, err := h.uc.UpdateStockBySKU(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// UpdateFromGCS godoc
// @Summary      Reconciliar stock desde CSV en GCS
// @Tags         holded
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockUpdateFromGCSRequest  true  "URI gs:// y modo dry-run"
// @Success      200   {object}  dto.ReconciliationResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/holded/stock/update-from-gcs [post]
func (h *HoldedHandler) UpdateFromGCS(c *fiber.Ctx) error {
	var in dto.StockUpdateFromGCSRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.GsURI == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "gs_uri es requerido"})
	}
	out, err := h.reconcileUC.RunFromGCS(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// UpdateFromCSV godoc
// @Summary      Reconciliar stock desde CSV subido directamente
// @Tags         holded
// @Accept       multipart/form-data
// @Produce      json
// @Param        file         formData  file    true   "CSV de ventas (delimitado por ';')"
// @Param        dry_run      formData  bool    false  "Simular sin escribir (por defecto true)"
// @Param        description  formData  string  false  "Descripción del ajuste"
// @Success      200  {object}  dto.ReconciliationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/holded/stock/update-from-csv [post]
func (h *HoldedHandler) UpdateFromCSV(c *fiber.Ctx) error {
	filename, data, err := readUpload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: err.Error()})
	}
	dryRun := true
	if raw := c.FormValue("dry_run"); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			dryRun = parsed
		}
	}
	out, err := h.reconcileUC.RunFromUpload(c.Context(), filename, data, dryRun, c.FormValue("description"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// readUpload extrae el archivo "file" de una petición multipart.
func readUpload(c *fiber.Ctx) (filename string, data []byte, err error) {
	filename, data, _, err = readUploadWithType(c)
	return filename, data, err
}

func readUploadWithType(c *fiber.Ctx) (filename string, data []byte, contentType string, err error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return "", nil, "", err
	}
	f, err := fh.Open()
	if err != nil {
		return "", nil, "", err
	}
	defer f.Close()
	data, err = io.ReadAll(f)
	if err != nil {
		return "", nil, "", err
	}
	return fh.Filename, data, fh.Header.Get("Content-Type"), nil
}
