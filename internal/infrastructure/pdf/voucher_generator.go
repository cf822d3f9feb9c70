// Package pdf implementa la representación imprimible de un comprobante de
// venta usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tipo de documento │ Serie-Número + Fecha           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre │ Atendido por: usuario                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Artículo | P.Unit | Dscto | Importe          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Impuesto / TOTAL                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jcastros/almacen-api/internal/domain/entity"
	"github.com/jcastros/almacen-api/internal/domain/repository"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// VoucherGenerator implementa ledger.VoucherGenerator usando Maroto v2.
type VoucherGenerator struct{}

// NewVoucherGenerator construye el generador.
func NewVoucherGenerator() *VoucherGenerator { return &VoucherGenerator{} }

// Generate genera el PDF del comprobante y devuelve sus bytes.
func (g *VoucherGenerator) Generate(header repository.HeaderView, lines []repository.LineView) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de venta", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(header))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(header))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(header))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: tipo de documento (izq) y serie-número + fecha (der).
func headerRow(h repository.HeaderView) core.Row {
	number := h.Number
	if h.Series != "" {
		number = h.Series + "-" + h.Number
	}
	statusColor := colorGray
	statusLabel := ""
	if h.Status == entity.StatusVoided {
		statusColor = colorRed
		statusLabel = "ANULADO"
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New("COMPROBANTE DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(h.DocumentType, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
			text.New(statusLabel, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 14, Color: statusColor,
			}),
		),
		col.New(5).Add(
			text.New(number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 3,
			}),
			text.New("Fecha: "+h.IssuedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 11, Color: colorGray,
			}),
		),
	)
}

// customerRow: cliente y usuario que atendió la venta.
func customerRow(h repository.HeaderView) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(h.PartyName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New("Atendido por: "+h.UserName, props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Artículo", 5, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Dscto.", 2, align.Right),
		h("Importe", 2, align.Right),
	)
}

// tableLineRows: una fila por línea, con importe = cant × precio − descuento.
func tableLineRows(lines []repository.LineView) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		amount := l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))).Sub(l.Discount)
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", l.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				l.ArticleName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				l.UnitPrice.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				l.Discount.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				amount.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(h repository.HeaderView) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}

	return row.New(18).Add(
		col.New(6),
		col.New(3).Add(
			label("Impuesto:"),
			text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 2, Top: 7,
			}),
		),
		col.New(3).Add(
			value(h.Tax.StringFixed(2)),
			text.New(h.Total.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 1, Top: 7,
			}),
		),
	)
}
