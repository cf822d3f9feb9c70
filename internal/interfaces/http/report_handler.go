package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastros/almacen-api/internal/application/reports"
)

// ReportHandler maneja los reportes del dashboard sobre el ledger de ventas.
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// MonthlyTotals hasta 12 totales de venta agrupados por mes calendario,
// ordenados por número de mes descendente.
// GET /api/sales/monthly-totals
func (h *ReportHandler) MonthlyTotals(c *fiber.Ctx) error {
	rows, err := h.uc.MonthlyTotals(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}
