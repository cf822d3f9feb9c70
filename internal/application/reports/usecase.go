package reports

import (
	"context"
	"time"

	"github.com/jcastros/almacen-api/internal/application/dto"
	"github.com/jcastros/almacen-api/internal/domain/repository"
)

// UseCase consultas de solo lectura sobre el ledger de ventas. No mantiene
// invariantes; existe porque comparte el modelo de datos con los ledgers.
type UseCase struct {
	repo repository.ReportRepository
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(repo repository.ReportRepository) *UseCase {
	return &UseCase{repo: repo}
}

// TopArticles devuelve los artículos vendidos desde `from` hasta ahora,
// sobre comprobantes aceptados, con la cantidad total por artículo.
// El orden es por id de artículo descendente, igual que el sistema original
// (no por cantidad vendida).
func (uc *UseCase) TopArticles(ctx context.Context, from time.Time) ([]dto.TopArticleResponse, error) {
	rows, err := uc.repo.TopArticles(ctx, from)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopArticleResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopArticleResponse{
			ArticleID:   r.ArticleID,
			ArticleName: r.ArticleName,
			Quantity:    r.Quantity,
		})
	}
	return out, nil
}

// MonthlyTotals devuelve hasta 12 totales de venta agrupados por mes
// calendario (1..12), ordenados por número de mes descendente. El
// agrupamiento colapsa meses de años distintos en la misma cubeta; se
// conserva así por compatibilidad con el dashboard original.
func (uc *UseCase) MonthlyTotals(ctx context.Context) ([]dto.MonthlyTotalResponse, error) {
	rows, err := uc.repo.MonthlyTotals(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MonthlyTotalResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.MonthlyTotalResponse{Month: r.Month, Total: r.Total})
	}
	return out, nil
}
