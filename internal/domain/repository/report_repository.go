package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TopArticleRow un artículo con la cantidad total vendida en el rango.
type TopArticleRow struct {
	ArticleID   string
	ArticleName string
	Quantity    int64
}

// MonthlyTotalRow total vendido en un mes calendario (1..12).
// El agrupamiento es por mes del año, no por mes cronológico: enero y
// diciembre del año anterior caen en cubetas distintas (1 y 12) aunque
// diciembre sea más reciente.
type MonthlyTotalRow struct {
	Month int
	Total decimal.Decimal
}

// ReportRepository consultas de solo lectura sobre el ledger de ventas.
// No mantiene invariantes; comparte el modelo de datos con los ledgers.
type ReportRepository interface {
	// TopArticles agrega líneas de ventas aceptadas con fecha en [from, now],
	// agrupadas por artículo. El orden es por el id del artículo descendente.
	TopArticles(ctx context.Context, from time.Time) ([]TopArticleRow, error)
	// MonthlyTotals agrupa ventas por mes calendario y devuelve hasta 12
	// cubetas ordenadas por número de mes descendente.
	MonthlyTotals(ctx context.Context) ([]MonthlyTotalRow, error)
}
