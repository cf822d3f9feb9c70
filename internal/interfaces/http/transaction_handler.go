package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jcastros/almacen-api/internal/application/dto"
	"github.com/jcastros/almacen-api/internal/application/ledger"
	"github.com/jcastros/almacen-api/internal/domain/repository"
)

// TransactionHandler maneja las peticiones HTTP de un ledger de comprobantes.
// La misma implementación sirve ingresos y ventas; el kind lo fija el caso de
// uso inyectado. El generador de voucher es opcional (solo ventas lo montan).
type TransactionHandler struct {
	uc      *ledger.UseCase
	voucher ledger.VoucherGenerator
}

// NewTransactionHandler construye el handler para el ledger dado.
func NewTransactionHandler(uc *ledger.UseCase, voucher ledger.VoucherGenerator) *TransactionHandler {
	return &TransactionHandler{uc: uc, voucher: voucher}
}

func toTransactionResponse(v repository.HeaderView) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:           v.ID,
		PartyID:      v.PartyID,
		PartyName:    v.PartyName,
		UserID:       v.UserID,
		UserName:     v.UserName,
		DocumentType: v.DocumentType,
		Series:       v.Series,
		Number:       v.Number,
		IssuedAt:     v.IssuedAt,
		Tax:          v.Tax,
		Total:        v.Total,
		Status:       v.Status,
	}
}

func toTransactionResponses(views []repository.HeaderView) []dto.TransactionResponse {
	out := make([]dto.TransactionResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toTransactionResponse(v))
	}
	return out
}

// List lista las últimas cabeceras del ledger.
// GET /api/receipts | GET /api/sales
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	views, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTransactionResponses(views))
}

// ListByDate filtra cabeceras por fecha de emisión.
// GET /api/receipts/by-date?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *TransactionHandler) ListByDate(c *fiber.Ctx) error {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser YYYY-MM-DD"})
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser YYYY-MM-DD"})
	}
	// `to` es inclusivo: se corre al final del día.
	to = to.Add(24*time.Hour - time.Nanosecond)
	views, err := h.uc.ListByDateRange(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTransactionResponses(views))
}

// Search filtra cabeceras por subcadena del número de comprobante.
// GET /api/receipts/search?q=...
func (h *TransactionHandler) Search(c *fiber.Ctx) error {
	views, err := h.uc.Search(c.Context(), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTransactionResponses(views))
}

// GetByID obtiene la cabecera con nombres resueltos.
// GET /api/receipts/:id
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	view, err := h.uc.View(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTransactionResponse(*view))
}

// Lines devuelve las líneas de una cabecera con nombre de artículo.
// GET /api/receipts/:id/lines
func (h *TransactionHandler) Lines(c *fiber.Ctx) error {
	lines, err := h.uc.Lines(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.TransactionLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.TransactionLineResponse{
			ArticleID:   l.ArticleID,
			ArticleName: l.ArticleName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Discount:    l.Discount,
		})
	}
	return c.JSON(out)
}

// Create confirma un comprobante nuevo con sus líneas y deltas de stock.
// El usuario emisor sale del token, no del body.
// POST /api/receipts | POST /api/sales
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CommitTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := ledger.CommitInput{
		PartyID:      in.PartyID,
		UserID:       userID,
		DocumentType: in.DocumentType,
		Series:       in.Series,
		Number:       in.Number,
		Tax:          in.Tax,
		Total:        in.Total,
	}
	for _, l := range in.Lines {
		input.Lines = append(input.Lines, ledger.CommitLine{
			ArticleID: l.ArticleID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Discount:  l.Discount,
		})
	}
	id, err := h.uc.Commit(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// Void anula un comprobante y revierte su efecto sobre el stock.
// PUT /api/receipts/:id/void | PUT /api/sales/:id/void
func (h *TransactionHandler) Void(c *fiber.Ctx) error {
	if err := h.uc.Void(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Voucher genera el PDF imprimible del comprobante.
// GET /api/sales/:id/pdf
func (h *TransactionHandler) Voucher(c *fiber.Ctx) error {
	if h.voucher == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	}
	id := c.Params("id")
	view, err := h.uc.View(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	lines, err := h.uc.Lines(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	pdf, err := h.voucher.Generate(*view, lines)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="comprobante-`+view.Number+`.pdf"`)
	return c.Send(pdf)
}
