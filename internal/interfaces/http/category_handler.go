package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastros/almacen-api/internal/application/dto"
	"github.com/jcastros/almacen-api/internal/application/usecase"
)

// CategoryHandler maneja las peticiones HTTP de categorías.
type CategoryHandler struct {
	uc *usecase.CategoryUseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// List lista categorías; ?active=true filtra solo activas.
// GET /api/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	categories, err := h.uc.List(c.Query("active") == "true")
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

// Create registra una categoría nueva.
// POST /api/categories
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	category, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// Update actualiza una categoría existente.
// PUT /api/categories/:id
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	category, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}

// Activate reactiva una categoría.
// PUT /api/categories/:id/activate
func (h *CategoryHandler) Activate(c *fiber.Ctx) error {
	if err := h.uc.SetActive(c.Params("id"), true); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Deactivate desactiva una categoría (borrado lógico).
// PUT /api/categories/:id/deactivate
func (h *CategoryHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.SetActive(c.Params("id"), false); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
