package http

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/logiandes/ms-inventario/internal/application/dto"
	"github.com/logiandes/ms-inventario/internal/application/importer"
	"github.com/logiandes/ms-inventario/pkg/csvtext"
)

// CSVHandler maneja las cargas masivas por CSV (protegido).
type CSVHandler struct {
	geo      *importer.GeoUseCase
	stores   *importer.StoreImportUseCase
	products *importer.ProductImportUseCase
}

// NewCSVHandler construye el handler.
func NewCSVHandler(geo *importer.GeoUseCase, stores *importer.StoreImportUseCase, products *importer.ProductImportUseCase) *CSVHandler {
	return &CSVHandler{geo: geo, stores: stores, products: products}
}

// readUpload extrae los bytes del archivo multipart "file".
func readUpload(c *fiber.Ctx) ([]byte, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, err
	}
	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// ImportDepartaments godoc
// @Summary      Importar departamentos y municipios desde CSV
// @Tags         csv
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "CSV con columnas DEPARTAMENTO, MUNICIPIO"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/csv/departamentos [post]
func (h *CSVHandler) ImportDepartaments(c *fiber.Ctx) error {
	data, err := readUpload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "archivo 'file' requerido"})
	}
	if err := h.geo.ImportDepartamentsAndCities(c.UserContext(), data); err != nil {
		if errors.Is(err, csvtext.ErrMalformed) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MALFORMED_CSV", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "departamentos y municipios importados"})
}

// ImportStores godoc
// @Summary      Importar tiendas desde CSV
// @Tags         csv
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "CSV de tiendas delimitado por ';'"
// @Success      201   {object}  dto.ImportSummaryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/csv/tiendas [post]
func (h *CSVHandler) ImportStores(c *fiber.Ctx) error {
	data, err := readUpload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "archivo 'file' requerido"})
	}
	summary, err := h.stores.ImportStores(c.UserContext(), data, GetAuthToken(c))
	if err != nil {
		if errors.Is(err, csvtext.ErrMalformed) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MALFORMED_CSV", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ImportSummaryResponse{Created: summary.Created, Skipped: summary.Skipped})
}

// ImportProducts godoc
// @Summary      Importar productos desde CSV
// @Tags         csv
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "CSV de productos delimitado por ';'"
// @Success      201   {object}  dto.ImportSummaryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/csv/productos [post]
func (h *CSVHandler) ImportProducts(c *fiber.Ctx) error {
	data, err := readUpload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "archivo 'file' requerido"})
	}
	summary, err := h.products.ImportProducts(c.UserContext(), data)
	if err != nil {
		if errors.Is(err, csvtext.ErrMalformed) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MALFORMED_CSV", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ImportSummaryResponse{Created: summary.Created, Skipped: summary.Skipped})
}
