package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jcastros/almacen-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura sobre el ledger de ventas.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// TopArticles agrega líneas de ventas aceptadas con fecha en [from, now],
// agrupadas por artículo. Ordena por el id del artículo descendente, igual
// que la consulta original del dashboard (no por cantidad vendida).
func (r *ReportRepo) TopArticles(ctx context.Context, from time.Time) ([]repository.TopArticleRow, error) {
	const query = `
	SELECT l.article_id, a.name, SUM(l.quantity) AS quantity
	FROM sale_lines l
	JOIN sales    s ON s.id = l.sale_id
	JOIN articles a ON a.id = l.article_id
	WHERE s.status = 'accepted'
	  AND s.issued_at >= $1
	  AND s.issued_at <= now()
	GROUP BY l.article_id, a.name
	ORDER BY l.article_id DESC`

	rows, err := r.pool.Query(ctx, query, from)
	if err != nil {
		return nil, fmt.Errorf("reports.TopArticles: %w", err)
	}
	defer rows.Close()

	var results []repository.TopArticleRow
	for rows.Next() {
		var row repository.TopArticleRow
		if err := rows.Scan(&row.ArticleID, &row.ArticleName, &row.Quantity); err != nil {
			return nil, fmt.Errorf("reports.TopArticles scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// MonthlyTotals agrupa ventas por mes calendario (EXTRACT(MONTH ...)) y suma
// el total, hasta 12 cubetas ordenadas por número de mes descendente. Meses
// iguales de años distintos caen en la misma cubeta; se conserva así por
// compatibilidad con el dashboard original.
func (r *ReportRepo) MonthlyTotals(ctx context.Context) ([]repository.MonthlyTotalRow, error) {
	const query = `
	SELECT EXTRACT(MONTH FROM issued_at)::INT AS month, SUM(total) AS total
	FROM sales
	GROUP BY month
	ORDER BY month DESC
	LIMIT 12`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reports.MonthlyTotals: %w", err)
	}
	defer rows.Close()

	var results []repository.MonthlyTotalRow
	for rows.Next() {
		var row repository.MonthlyTotalRow
		if err := rows.Scan(&row.Month, &row.Total); err != nil {
			return nil, fmt.Errorf("reports.MonthlyTotals scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
