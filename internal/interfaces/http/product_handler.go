package http

import (
	"bytes"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Caderno-api/internal/application/dto"
	"github.com/jhoicas/Caderno-api/internal/application/ledger"
)

// CatalogParser convierte un archivo de catálogo en borradores de producto.
type CatalogParser func(r io.Reader) ([]dto.CreateProductRequest, error)

// ProductHandler maneja las peticiones HTTP del catálogo.
type ProductHandler struct {
	uc    *ledger.LedgerUseCase
	parse CatalogParser
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *ledger.LedgerUseCase, parse CatalogParser) *ProductHandler {
	return &ProductHandler{uc: uc, parse: parse}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AddProduct(c.Context(), in)
	return respond(c, fiber.StatusCreated, out, err)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Param        category  query  string  false  "Filtrar por categoría"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.uc.ListProducts(c.Query("category")))
}

// Categories devuelve las categorías distintas, ordenadas.
// GET /api/products/categories
func (h *ProductHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"items": h.uc.Categories()})
}

// Import godoc
// @Summary      Importar catálogo CSV
// @Description  Columnas: name, category, cost, price, stock. Acepta el CSV como cuerpo (text/csv)
// @Description  o como archivo multipart en el campo "file". Todo o nada.
// @Tags         products
// @Accept       text/csv
// @Produce      json
// @Success      201  {object}  dto.ImportProductsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/import [post]
func (h *ProductHandler) Import(c *fiber.Ctx) error {
	var r io.Reader
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return invalidBody(c)
		}
		defer f.Close()
		r = f
	} else {
		r = bytes.NewReader(c.Body())
	}
	drafts, err := h.parse(r)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ImportProducts(c.Context(), drafts)
	return respond(c, fiber.StatusCreated, out, err)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetProduct(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar producto (nombre, categoría, costo, precio)
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [patch]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateProduct(c.Context(), c.Params("id"), in)
	return respond(c, fiber.StatusOK, out, err)
}

// Delete elimina el producto; las ventas existentes se conservan.
// DELETE /api/products/:id?confirm=true (la confirmación la exige RequireConfirmation)
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	err := h.uc.DeleteProduct(c.Context(), c.Params("id"))
	return respond(c, fiber.StatusNoContent, nil, err)
}
