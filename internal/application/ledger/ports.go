package ledger

import (
	"context"

	"github.com/jcastros/almacen-api/internal/domain/entity"
	"github.com/jcastros/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. La cabecera, sus líneas y los ajustes de
// stock de un commit (o de una anulación) se aplican todos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, kind entity.TransactionKind, fn func(
		txRepo repository.TransactionRepository,
		articleRepo repository.ArticleRepository,
	) error) error
}

// VoucherGenerator genera la representación imprimible de un comprobante.
type VoucherGenerator interface {
	Generate(header repository.HeaderView, lines []repository.LineView) ([]byte, error)
}
