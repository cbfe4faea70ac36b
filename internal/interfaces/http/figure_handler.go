package http

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/figures-ledger/internal/application/catalog"
	"github.com/jhoicas/figures-ledger/internal/application/dto"
	"github.com/jhoicas/figures-ledger/internal/domain"
)

// validate instancia compartida del validador de DTOs.
var validate = validator.New()

// FigureHandler maneja las peticiones HTTP del catálogo de figuras.
type FigureHandler struct {
	uc     *catalog.FigureUseCase
	query  *catalog.QueryUseCase
	images catalog.ImageStore
}

// NewFigureHandler construye el handler.
func NewFigureHandler(uc *catalog.FigureUseCase, query *catalog.QueryUseCase, images catalog.ImageStore) *FigureHandler {
	return &FigureHandler{uc: uc, query: query, images: images}
}

// Create godoc
// @Summary      Crear figura con stock inicial
// @Tags         figures
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFigureRequest  true  "Atributos, costo, stock inicial y URL de imagen opcional"
// @Success      201   {object}  dto.FigureResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/figures [post]
func (h *FigureHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFigureRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateWithImage godoc
// @Summary      Crear figura subiendo la imagen (multipart)
// @Tags         figures
// @Accept       multipart/form-data
// @Produce      json
// @Param        manufacturer      formData  string  true   "Fabricante"
// @Param        brand             formData  string  true   "Marca"
// @Param        character         formData  string  true   "Personaje"
// @Param        model_name        formData  string  true   "Modelo"
// @Param        ip                formData  string  false  "Franquicia"
// @Param        cost_price        formData  number  true   "Costo unitario"
// @Param        initial_quantity  formData  integer true   "Stock inicial"
// @Param        image             formData  file    false  "Imagen"
// @Success      201  {object}  dto.FigureResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/figures/upload [post]
func (h *FigureHandler) CreateWithImage(c *fiber.Ctx) error {
	costPrice, err := decimal.NewFromString(c.FormValue("cost_price", "0"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cost_price inválido"})
	}
	initialQty, err := strconv.ParseInt(c.FormValue("initial_quantity", "0"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "initial_quantity inválido"})
	}
	in := dto.CreateFigureRequest{
		Manufacturer:    c.FormValue("manufacturer"),
		Brand:           c.FormValue("brand"),
		Character:       c.FormValue("character"),
		ModelName:       c.FormValue("model_name"),
		IP:              c.FormValue("ip"),
		CostPrice:       costPrice,
		InitialQuantity: initialQty,
	}

	// La imagen es un colaborador externo: aquí solo se guarda y se conserva
	// la URL opaca; el ledger nunca interpreta los bytes
	if file, err := c.FormFile("image"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_IMAGE", Message: "imagen ilegible"})
		}
		defer src.Close()
		url, err := h.images.Save(file.Filename, src)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		in.ImageURL = url
	}

	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar figuras con su agregado
// @Tags         figures
// @Produce      json
// @Param        manufacturer  query  string  false  "Filtro exacto"
// @Param        brand         query  string  false  "Filtro exacto"
// @Param        character     query  string  false  "Filtro exacto"
// @Param        model_name    query  string  false  "Filtro exacto"
// @Param        ip            query  string  false  "Filtro exacto"
// @Success      200  {object}  dto.FigureListResponse
// @Router       /api/figures [get]
func (h *FigureHandler) List(c *fiber.Ctx) error {
	var filter dto.ListFiguresFilter
	if err := c.QueryParser(&filter); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "filtros inválidos"})
	}
	out, err := h.query.List(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener figura por ID con su agregado
// @Tags         figures
// @Produce      json
// @Param        id   path  string  true  "ID de la figura"
// @Success      200  {object}  dto.FigureResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/figures/{id} [get]
func (h *FigureHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "figura no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar figura (atributos, costo, imagen; stock vía movimiento compensatorio)
// @Tags         figures
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la figura"
// @Param        body  body  dto.UpdateFigureRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.FigureResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/figures/{id} [put]
func (h *FigureHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateFigureRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Edit(c.Context(), c.Params("id"), in)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "figura no encontrada"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		if err == domain.ErrInsufficientStock {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar figura y todo su historial de movimientos
// @Tags         figures
// @Produce      json
// @Param        id   path  string  true  "ID de la figura"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/figures/{id} [delete]
func (h *FigureHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "figura no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"ok": true})
}

// Filters godoc
// @Summary      Opciones de las cinco facetas en una sola llamada
// @Tags         filters
// @Produce      json
// @Success      200  {object}  dto.FiltersResponse
// @Router       /api/filters [get]
func (h *FigureHandler) Filters(c *fiber.Ctx) error {
	out, err := h.query.Filters(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// DistinctValues godoc
// @Summary      Valores distintos de una faceta
// @Tags         filters
// @Produce      json
// @Param        attribute  path  string  true  "manufacturer | brand | character | model_name | ip"
// @Success      200  {array}   string
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/filters/{attribute} [get]
func (h *FigureHandler) DistinctValues(c *fiber.Ctx) error {
	values, err := h.query.DistinctValues(c.Context(), c.Params("attribute"))
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "atributo no facetable"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(values)
}
