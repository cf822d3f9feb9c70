package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcastros/almacen-api/internal/domain"
	"github.com/jcastros/almacen-api/internal/domain/entity"
	"github.com/jcastros/almacen-api/internal/domain/repository"
	"github.com/jcastros/almacen-api/pkg/logger"
)

// UseCase opera un ledger de comprobantes (ingresos o ventas, según kind).
// Commit y Void son transaccionales: cabecera, líneas y deltas de stock se
// aplican como una unidad, con Rollback ante cualquier fallo.
type UseCase struct {
	kind     entity.TransactionKind
	txRunner TxRunner
	txRepo   repository.TransactionRepository // atado al pool, solo lecturas
	log      *logger.Logger
}

// NewUseCase construye el ledger para el kind dado. txRepo debe estar atado
// al pool (se usa para listados fuera de transacción).
func NewUseCase(kind entity.TransactionKind, txRunner TxRunner, txRepo repository.TransactionRepository, log *logger.Logger) *UseCase {
	return &UseCase{kind: kind, txRunner: txRunner, txRepo: txRepo, log: log}
}

// Kind devuelve el tipo de comprobante que maneja este ledger.
func (uc *UseCase) Kind() entity.TransactionKind { return uc.kind }

// CommitLine una línea de la entrada de Commit.
type CommitLine struct {
	ArticleID string
	Quantity  int
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal // solo ventas
}

// CommitInput entrada para confirmar un comprobante. Tax y Total llegan
// calculados por el caller y se almacenan tal cual.
type CommitInput struct {
	PartyID      string
	UserID       string
	DocumentType string
	Series       string
	Number       string
	Tax          decimal.Decimal
	Total        decimal.Decimal
	Lines        []CommitLine
}

func (uc *UseCase) validate(in CommitInput) error {
	verr := &domain.ValidationError{}
	if in.PartyID == "" {
		field := "supplier_id"
		if uc.kind == entity.KindSale {
			field = "customer_id"
		}
		verr.Add(field, "es requerido")
	}
	if in.UserID == "" {
		verr.Add("user_id", "es requerido")
	}
	if in.DocumentType == "" {
		verr.Add("document_type", "es requerido")
	}
	if in.Number == "" {
		verr.Add("number", "es requerido")
	}
	if in.Tax.IsNegative() {
		verr.Add("tax", "no puede ser negativo")
	}
	if in.Total.IsNegative() {
		verr.Add("total", "no puede ser negativo")
	}
	if len(in.Lines) == 0 {
		verr.Add("lines", "debe incluir al menos una línea")
	}
	for _, l := range in.Lines {
		if l.ArticleID == "" {
			verr.Add("lines.article_id", "es requerido")
		}
		if l.Quantity <= 0 {
			verr.Add("lines.quantity", "debe ser mayor que cero")
		}
		if l.UnitPrice.IsNegative() {
			verr.Add("lines.unit_price", "no puede ser negativo")
		}
		if l.Discount.IsNegative() {
			verr.Add("lines.discount", "no puede ser negativo")
		}
	}
	if verr.Empty() {
		return nil
	}
	return verr
}

// Commit valida la entrada y confirma el comprobante: inserta la cabecera en
// estado accepted con fecha del servidor, inserta cada línea y aplica el
// delta de stock por línea (ingresos suman, ventas restan). Todo dentro de
// una sola transacción de BD; un artículo inexistente o stock insuficiente
// en una venta revierte el lote completo.
func (uc *UseCase) Commit(ctx context.Context, in CommitInput) (string, error) {
	if err := uc.validate(in); err != nil {
		return "", err
	}

	now := time.Now()
	header := &entity.Transaction{
		ID:           uuid.New().String(),
		Kind:         uc.kind,
		PartyID:      in.PartyID,
		UserID:       in.UserID,
		DocumentType: in.DocumentType,
		Series:       in.Series,
		Number:       in.Number,
		IssuedAt:     now,
		Tax:          in.Tax,
		Total:        in.Total,
		Status:       entity.StatusAccepted,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := uc.txRunner.Run(ctx, uc.kind, func(
		txRepo repository.TransactionRepository,
		articleRepo repository.ArticleRepository,
	) error {
		if err := txRepo.CreateHeader(header); err != nil {
			return err
		}
		for _, l := range in.Lines {
			line := &entity.TransactionLine{
				ID:            uuid.New().String(),
				TransactionID: header.ID,
				ArticleID:     l.ArticleID,
				Quantity:      l.Quantity,
				UnitPrice:     l.UnitPrice,
				Discount:      l.Discount,
			}
			if err := txRepo.CreateLine(line); err != nil {
				return err
			}
			delta := uc.kind.Direction() * l.Quantity
			if uc.kind == entity.KindSale {
				// Las ventas no pueden dejar stock negativo.
				if _, err := articleRepo.AdjustStockGuarded(l.ArticleID, delta); err != nil {
					return err
				}
			} else {
				if _, err := articleRepo.AdjustStock(l.ArticleID, delta); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	uc.log.Info().
		Str("kind", string(uc.kind)).
		Str("transaction_id", header.ID).
		Int("lines", len(in.Lines)).
		Msg("comprobante confirmado")
	return header.ID, nil
}

// Void anula un comprobante: valida la guarda accepted -> voided, marca la
// cabecera como voided y revierte el delta de stock de cada línea con el
// signo contrario al del commit. Anular un comprobante ya anulado devuelve
// domain.ErrConflict y no toca el stock por segunda vez.
func (uc *UseCase) Void(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	err := uc.txRunner.Run(ctx, uc.kind, func(
		txRepo repository.TransactionRepository,
		articleRepo repository.ArticleRepository,
	) error {
		header, err := txRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if header == nil {
			return domain.ErrNotFound
		}
		if !header.CanVoid() {
			return domain.ErrConflict
		}
		if err := txRepo.SetStatus(id, entity.StatusVoided); err != nil {
			return err
		}
		lines, err := txRepo.ListLines(id)
		if err != nil {
			return err
		}
		for _, l := range lines {
			// La reversa siempre se aplica, aunque deje stock negativo
			// (un ingreso anulado después de ventas posteriores puede hacerlo).
			newStock, err := articleRepo.AdjustStock(l.ArticleID, -l.StockDelta(uc.kind))
			if err != nil {
				return err
			}
			if newStock < 0 {
				uc.log.Warn().
					Str("article_id", l.ArticleID).
					Int("stock", newStock).
					Str("transaction_id", id).
					Msg("stock negativo tras anulación")
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.log.Info().
		Str("kind", string(uc.kind)).
		Str("transaction_id", id).
		Msg("comprobante anulado")
	return nil
}

// List devuelve las últimas cabeceras (máximo 100, como el listado original).
func (uc *UseCase) List(ctx context.Context) ([]repository.HeaderView, error) {
	return uc.txRepo.ListViews(100)
}

// ListByDateRange filtra cabeceras por fecha de emisión.
func (uc *UseCase) ListByDateRange(ctx context.Context, from, to time.Time) ([]repository.HeaderView, error) {
	if to.Before(from) {
		return nil, (&domain.ValidationError{}).Add("to", "debe ser posterior a from")
	}
	return uc.txRepo.ListViewsByDateRange(from, to, 100)
}

// Search filtra cabeceras por subcadena del número de comprobante.
func (uc *UseCase) Search(ctx context.Context, text string) ([]repository.HeaderView, error) {
	return uc.txRepo.SearchViews(text)
}

// Lines devuelve las líneas de una cabecera con el nombre del artículo.
func (uc *UseCase) Lines(ctx context.Context, id string) ([]repository.LineView, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.txRepo.ListLineViews(id)
}

// View devuelve la cabecera con nombres de persona y usuario resueltos,
// o ErrNotFound.
func (uc *UseCase) View(ctx context.Context, id string) (*repository.HeaderView, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	view, err := uc.txRepo.GetView(id)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, domain.ErrNotFound
	}
	return view, nil
}

// Get devuelve la cabecera con sus líneas, o ErrNotFound.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.Transaction, error) {
	header, err := uc.txRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.txRepo.ListLines(id)
	if err != nil {
		return nil, err
	}
	for _, l := range lines {
		header.Lines = append(header.Lines, *l)
	}
	return header, nil
}
