package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastros/almacen-api/internal/application/dto"
	"github.com/jcastros/almacen-api/internal/application/usecase"
	"github.com/jcastros/almacen-api/internal/domain/entity"
)

// PartyHandler maneja las peticiones HTTP del directorio de personas.
type PartyHandler struct {
	uc *usecase.PartyUseCase
}

// NewPartyHandler construye el handler.
func NewPartyHandler(uc *usecase.PartyUseCase) *PartyHandler {
	return &PartyHandler{uc: uc}
}

// List lista todas las personas paginadas.
// GET /api/parties
func (h *PartyHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	parties, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(parties)
}

func (h *PartyHandler) listByKind(c *fiber.Ctx, kind string) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	parties, err := h.uc.ListByKind(kind, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(parties)
}

// Clients lista solo clientes.
// GET /api/parties/clients
func (h *PartyHandler) Clients(c *fiber.Ctx) error {
	return h.listByKind(c, entity.PartyKindCustomer)
}

// Suppliers lista solo proveedores.
// GET /api/parties/suppliers
func (h *PartyHandler) Suppliers(c *fiber.Ctx) error {
	return h.listByKind(c, entity.PartyKindSupplier)
}

// ClientSelect pares id/nombre de clientes para selects del front.
// GET /api/parties/clients/select
func (h *PartyHandler) ClientSelect(c *fiber.Ctx) error {
	out, err := h.uc.Select(entity.PartyKindCustomer)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SupplierSelect pares id/nombre de proveedores para selects del front.
// GET /api/parties/suppliers/select
func (h *PartyHandler) SupplierSelect(c *fiber.Ctx) error {
	out, err := h.uc.Select(entity.PartyKindSupplier)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID obtiene una persona por id.
// GET /api/parties/:id
func (h *PartyHandler) GetByID(c *fiber.Ctx) error {
	party, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(party)
}

// Create registra una persona nueva (cliente o proveedor).
// POST /api/parties
func (h *PartyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePartyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	party, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(party)
}

// Update actualiza una persona existente.
// PUT /api/parties/:id
func (h *PartyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePartyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	party, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(party)
}
