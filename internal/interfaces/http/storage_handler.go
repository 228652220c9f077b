package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/alternativecbd/glop-holded-api/internal/application/dto"
	"github.com/alternativecbd/glop-holded-api/internal/application/usecase"
)

// StorageHandler maneja las peticiones HTTP del bucket GCS.
type StorageHandler struct {
	uc *usecase.StorageUseCase
}

// NewStorageHandler construye el handler.
func NewStorageHandler(uc *usecase.StorageUseCase) *StorageHandler {
	return &StorageHandler{uc: uc}
}

// Health godoc
// @Summary      Verificar configuración de GCS
// @Tags         gcs
// @Produce      json
// @Success      200  {object}  dto.GCSHealthResponse
// @Router       /api/gcs/health [get]
func (h *StorageHandler) Health(c *fiber.Ctx) error {
	return c.JSON(h.uc.Health(c.Context()))
}

// List godoc
// @Summary      Listar archivos del bucket
// @Tags         gcs
// @Produce      json
// @Param        prefix       query  string  false  "Prefijo de búsqueda"
// @Param        max_results  query  int     false  "Máximo de resultados"  default(100)
// @Success      200  {object}  dto.GCSListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/gcs/files [get]
func (h *StorageHandler) List(c *fiber.Ctx) error {
	if err := h.requireConfigured(c); err != nil {
		return err
	}
	maxResults := c.QueryInt("max_results", 100)
	out, err := h.uc.List(c.Context(), c.Query("prefix"), maxResults)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Upload godoc
// @Summary      Subir un archivo al bucket
// @Tags         gcs
// @Accept       multipart/form-data
// @Produce      json
// @Param        file              formData  file    true   "Archivo a subir"
// @Param        destination_path  formData  string  false  "Ruta destino en el bucket"
// @Success      200  {object}  dto.GCSUploadResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/gcs/upload [post]
func (h *StorageHandler) Upload(c *fiber.Ctx) error {
	if err := h.requireConfigured(c); err != nil {
		return err
	}
	filename, data, contentType, err := readUploadWithType(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: err.Error()})
	}
	out, err := h.uc.Upload(c.Context(), filename, c.FormValue("destination_path"), contentType, data)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Download godoc
// @Summary      Descargar un archivo del bucket
// @Tags         gcs
// @Produce      octet-stream
// @Param        path  path  string  true  "Ruta del archivo en el bucket"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/gcs/download/{path} [get]
func (h *StorageHandler) Download(c *fiber.Ctx) error {
	if err := h.requireConfigured(c); err != nil {
		return err
	}
	path, err := objectPath(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ruta de archivo requerida"})
	}
	data, info, err := h.uc.Download(c.Context(), path)
	if err != nil {
		return fail(c, err)
	}
	if info.ContentType != "" {
		c.Set(fiber.HeaderContentType, info.ContentType)
	} else {
		c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+basename(path)+`"`)
	return c.Send(data)
}

// Delete godoc
// @Summary      Eliminar un archivo del bucket
// @Tags         gcs
// @Produce      json
// @Param        path  path  string  true  "Ruta del archivo en el bucket"
// @Success      200  {object}  dto.GCSDeleteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/gcs/files/{path} [delete]
func (h *StorageHandler) Delete(c *fiber.Ctx) error {
	if err := h.requireConfigured(c); err != nil {
		return err
	}
	path, err := objectPath(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ruta de archivo requerida"})
	}
	out, err := h.uc.Delete(c.Context(), path)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Metadata godoc
// @Summary      Metadatos de un archivo del bucket
// @Tags         gcs
// @Produce      json
// @Param        path  path  string  true  "Ruta del archivo en el bucket"
// @Success      200  {object}  dto.GCSMetadataResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/gcs/metadata/{path} [get]
func (h *StorageHandler) Metadata(c *fiber.Ctx) error {
	if err := h.requireConfigured(c); err != nil {
		return err
	}
	path, err := objectPath(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ruta de archivo requerida"})
	}
	out, err := h.uc.Metadata(c.Context(), path)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

func (h *StorageHandler) requireConfigured(c *fiber.Ctx) error {
	if h.uc.Configured() {
		return nil
	}
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code:    "NOT_CONFIGURED",
		Message: "GCS no está configurado en el servidor",
	})
}

// objectPath recupera la ruta del objeto desde el comodín de la ruta,
// decodificando los escapes de URL que fiber deja intactos.
func objectPath(c *fiber.Ctx) (string, error) {
	raw := c.Params("*")
	if raw == "" {
		return "", fiber.ErrBadRequest
	}
	path, err := url.PathUnescape(raw)
	if err != nil {
		return raw, nil
	}
	return path, nil
}

func basename(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}
