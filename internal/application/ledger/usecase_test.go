package ledger_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastros/almacen-api/internal/application/ledger"
	"github.com/jcastros/almacen-api/internal/domain"
	"github.com/jcastros/almacen-api/internal/domain/entity"
	"github.com/jcastros/almacen-api/internal/domain/repository"
	"github.com/jcastros/almacen-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// fakeStore emula la base de datos; fakeTxRunner toma un snapshot antes de
// cada callback y lo restaura si el callback falla, reproduciendo el
// todo-o-nada de una transacción real. El mutex serializa los callbacks,
// como lo haría el row lock de UPDATE en PostgreSQL.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	mu      sync.Mutex
	stocks  map[string]int
	headers map[string]*entity.Transaction
	lines   map[string][]*entity.TransactionLine
}

func newFakeStore(stocks map[string]int) *fakeStore {
	s := &fakeStore{
		stocks:  map[string]int{},
		headers: map[string]*entity.Transaction{},
		lines:   map[string][]*entity.TransactionLine{},
	}
	for id, st := range stocks {
		s.stocks[id] = st
	}
	return s
}

func (s *fakeStore) snapshot() *fakeStore {
	snap := &fakeStore{
		stocks:  map[string]int{},
		headers: map[string]*entity.Transaction{},
		lines:   map[string][]*entity.TransactionLine{},
	}
	for id, st := range s.stocks {
		snap.stocks[id] = st
	}
	for id, h := range s.headers {
		cp := *h
		snap.headers[id] = &cp
	}
	for id, ls := range s.lines {
		cps := make([]*entity.TransactionLine, 0, len(ls))
		for _, l := range ls {
			cp := *l
			cps = append(cps, &cp)
		}
		snap.lines[id] = cps
	}
	return snap
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.stocks = snap.stocks
	s.headers = snap.headers
	s.lines = snap.lines
}

type fakeTxRunner struct {
	store *fakeStore
}

func (r *fakeTxRunner) Run(_ context.Context, kind entity.TransactionKind, fn func(
	txRepo repository.TransactionRepository,
	articleRepo repository.ArticleRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snap := r.store.snapshot()
	err := fn(&fakeTxRepo{store: r.store, kind: kind}, &fakeArticleRepo{store: r.store})
	if err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

type fakeTxRepo struct {
	store *fakeStore
	kind  entity.TransactionKind
}

func (r *fakeTxRepo) Kind() entity.TransactionKind { return r.kind }

func (r *fakeTxRepo) CreateHeader(t *entity.Transaction) error {
	cp := *t
	r.store.headers[t.ID] = &cp
	return nil
}

func (r *fakeTxRepo) CreateLine(l *entity.TransactionLine) error {
	if _, ok := r.store.stocks[l.ArticleID]; !ok {
		return domain.ErrNotFound // FK: artículo inexistente
	}
	cp := *l
	r.store.lines[l.TransactionID] = append(r.store.lines[l.TransactionID], &cp)
	return nil
}

func (r *fakeTxRepo) GetByID(id string) (*entity.Transaction, error) {
	h, ok := r.store.headers[id]
	if !ok {
		return nil, nil
	}
	cp := *h
	return &cp, nil
}

func (r *fakeTxRepo) GetByIDForUpdate(id string) (*entity.Transaction, error) {
	return r.GetByID(id)
}

func (r *fakeTxRepo) SetStatus(id, status string) error {
	h, ok := r.store.headers[id]
	if !ok {
		return domain.ErrNotFound
	}
	h.Status = status
	return nil
}

func (r *fakeTxRepo) ListLines(transactionID string) ([]*entity.TransactionLine, error) {
	var out []*entity.TransactionLine
	for _, l := range r.store.lines[transactionID] {
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeTxRepo) GetView(id string) (*repository.HeaderView, error) {
	h, ok := r.store.headers[id]
	if !ok {
		return nil, nil
	}
	return &repository.HeaderView{ID: h.ID, Number: h.Number, Status: h.Status, Total: h.Total}, nil
}

func (r *fakeTxRepo) ListViews(limit int) ([]repository.HeaderView, error) {
	var out []repository.HeaderView
	for _, h := range r.store.headers {
		if len(out) == limit {
			break
		}
		out = append(out, repository.HeaderView{ID: h.ID, Number: h.Number, Status: h.Status})
	}
	return out, nil
}

func (r *fakeTxRepo) ListViewsByDateRange(from, to time.Time, limit int) ([]repository.HeaderView, error) {
	var out []repository.HeaderView
	for _, h := range r.store.headers {
		if h.IssuedAt.Before(from) || h.IssuedAt.After(to) {
			continue
		}
		out = append(out, repository.HeaderView{ID: h.ID, Number: h.Number, Status: h.Status})
	}
	return out, nil
}

func (r *fakeTxRepo) SearchViews(text string) ([]repository.HeaderView, error) {
	return nil, nil
}

func (r *fakeTxRepo) ListLineViews(transactionID string) ([]repository.LineView, error) {
	var out []repository.LineView
	for _, l := range r.store.lines[transactionID] {
		out = append(out, repository.LineView{
			ArticleID: l.ArticleID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Discount:  l.Discount,
		})
	}
	return out, nil
}

type fakeArticleRepo struct {
	store *fakeStore
}

func (r *fakeArticleRepo) AdjustStock(id string, delta int) (int, error) {
	st, ok := r.store.stocks[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	r.store.stocks[id] = st + delta
	return st + delta, nil
}

func (r *fakeArticleRepo) AdjustStockGuarded(id string, delta int) (int, error) {
	st, ok := r.store.stocks[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if st+delta < 0 {
		return 0, domain.ErrInsufficientStock
	}
	r.store.stocks[id] = st + delta
	return st + delta, nil
}

// El ledger solo usa los ajustes de stock; el resto del puerto no aplica aquí.
func (r *fakeArticleRepo) Create(*entity.Article) error            { return nil }
func (r *fakeArticleRepo) GetByID(string) (*entity.Article, error) { return nil, nil }
func (r *fakeArticleRepo) GetByCode(string, repository.ArticleFilter) (*entity.Article, error) {
	return nil, nil
}
func (r *fakeArticleRepo) Search(string, repository.ArticleFilter) ([]*entity.Article, error) {
	return nil, nil
}
func (r *fakeArticleRepo) List(int, int) ([]*entity.Article, error) { return nil, nil }
func (r *fakeArticleRepo) Update(*entity.Article) error             { return nil }
func (r *fakeArticleRepo) SetActive(string, bool) error             { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

func newTestUseCase(kind entity.TransactionKind, stocks map[string]int) (*ledger.UseCase, *fakeStore) {
	store := newFakeStore(stocks)
	runner := &fakeTxRunner{store: store}
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	uc := ledger.NewUseCase(kind, runner, &fakeTxRepo{store: store, kind: kind}, log)
	return uc, store
}

func commitInput(partyID string, lines ...ledger.CommitLine) ledger.CommitInput {
	return ledger.CommitInput{
		PartyID:      partyID,
		UserID:       "user-1",
		DocumentType: "boleta",
		Series:       "B001",
		Number:       "000123",
		Tax:          decimal.NewFromInt(18),
		Total:        decimal.NewFromInt(118),
		Lines:        lines,
	}
}

func line(articleID string, qty int) ledger.CommitLine {
	return ledger.CommitLine{
		ArticleID: articleID,
		Quantity:  qty,
		UnitPrice: decimal.NewFromInt(10),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Commit
// ──────────────────────────────────────────────────────────────────────────────

func TestCommit_IngresoSumaStock(t *testing.T) {
	uc, store := newTestUseCase(entity.KindReceipt, map[string]int{"art-1": 10, "art-2": 0})

	id, err := uc.Commit(context.Background(), commitInput("prov-1",
		line("art-1", 5), line("art-2", 3)))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	assert.Equal(t, 15, store.stocks["art-1"])
	assert.Equal(t, 3, store.stocks["art-2"])

	header := store.headers[id]
	require.NotNil(t, header, "la cabecera debe quedar persistida")
	assert.Equal(t, entity.StatusAccepted, header.Status)
	assert.False(t, header.IssuedAt.IsZero(), "la fecha de emisión la fija el servidor")
	assert.Len(t, store.lines[id], 2)
}

func TestCommit_VentaRestaStock(t *testing.T) {
	uc, store := newTestUseCase(entity.KindSale, map[string]int{"art-1": 10})

	id, err := uc.Commit(context.Background(), commitInput("cli-1", line("art-1", 4)))
	require.NoError(t, err)

	assert.Equal(t, 6, store.stocks["art-1"])
	assert.Equal(t, entity.StatusAccepted, store.headers[id].Status)
}

func TestCommit_VentaStockExacto(t *testing.T) {
	uc, store := newTestUseCase(entity.KindSale, map[string]int{"art-1": 4})

	_, err := uc.Commit(context.Background(), commitInput("cli-1", line("art-1", 4)))
	require.NoError(t, err, "vender exactamente el stock disponible es válido")
	assert.Equal(t, 0, store.stocks["art-1"])
}

func TestCommit_VentaStockInsuficiente_RevierteTodo(t *testing.T) {
	uc, store := newTestUseCase(entity.KindSale, map[string]int{"art-1": 10, "art-2": 2})

	_, err := uc.Commit(context.Background(), commitInput("cli-1",
		line("art-1", 5), line("art-2", 3)))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// La primera línea ya había descontado; el rollback la deshace.
	assert.Equal(t, 10, store.stocks["art-1"])
	assert.Equal(t, 2, store.stocks["art-2"])
	assert.Empty(t, store.headers, "no debe quedar cabecera huérfana")
}

func TestCommit_ArticuloInexistente_RevierteTodo(t *testing.T) {
	uc, store := newTestUseCase(entity.KindReceipt, map[string]int{"art-1": 10})

	_, err := uc.Commit(context.Background(), commitInput("prov-1",
		line("art-1", 5), line("art-fantasma", 3)))
	require.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, 10, store.stocks["art-1"])
	assert.Empty(t, store.headers)
	assert.Empty(t, store.lines)
}

func TestCommit_ValidacionPorCampo(t *testing.T) {
	uc, store := newTestUseCase(entity.KindSale, map[string]int{"art-1": 10})

	in := ledger.CommitInput{} // todo vacío
	_, err := uc.Commit(context.Background(), in)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	fields := make(map[string]bool, len(verr.Fields))
	for _, f := range verr.Fields {
		fields[f.Field] = true
	}
	// En una venta la contraparte se reporta como customer_id.
	assert.True(t, fields["customer_id"])
	assert.True(t, fields["document_type"])
	assert.True(t, fields["number"])
	assert.True(t, fields["lines"])

	assert.Empty(t, store.headers, "una entrada inválida no toca la persistencia")
}

func TestCommit_LineaInvalida(t *testing.T) {
	uc, _ := newTestUseCase(entity.KindReceipt, map[string]int{"art-1": 10})

	in := commitInput("prov-1", ledger.CommitLine{ArticleID: "art-1", Quantity: 0})
	_, err := uc.Commit(context.Background(), in)
	require.Error(t, err)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	found := false
	for _, f := range verr.Fields {
		if f.Field == "lines.quantity" {
			found = true
		}
	}
	assert.True(t, found, "debe reportar la cantidad inválida de la línea")
}

func TestCommit_Concurrente_ConvergeAlTotal(t *testing.T) {
	const n = 20
	const qty = 3
	uc, store := newTestUseCase(entity.KindReceipt, map[string]int{"art-1": 100})

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Commit(context.Background(), commitInput("prov-1", line("art-1", qty)))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 100+n*qty, store.stocks["art-1"],
		"los commits concurrentes no deben perder actualizaciones")
}

// ──────────────────────────────────────────────────────────────────────────────
// Void
// ──────────────────────────────────────────────────────────────────────────────

func TestVoid_RevierteStockExacto(t *testing.T) {
	uc, store := newTestUseCase(entity.KindSale, map[string]int{"art-1": 10, "art-2": 10})

	id, err := uc.Commit(context.Background(), commitInput("cli-1",
		line("art-1", 4), line("art-2", 2)))
	require.NoError(t, err)
	require.Equal(t, 6, store.stocks["art-1"])

	require.NoError(t, uc.Void(context.Background(), id))

	assert.Equal(t, 10, store.stocks["art-1"])
	assert.Equal(t, 10, store.stocks["art-2"])
	assert.Equal(t, entity.StatusVoided, store.headers[id].Status)
	assert.Len(t, store.lines[id], 2, "anular no borra las líneas")
}

func TestVoid_DobleAnulacion_Conflict(t *testing.T) {
	uc, store := newTestUseCase(entity.KindSale, map[string]int{"art-1": 10})

	id, err := uc.Commit(context.Background(), commitInput("cli-1", line("art-1", 4)))
	require.NoError(t, err)
	require.NoError(t, uc.Void(context.Background(), id))
	require.Equal(t, 10, store.stocks["art-1"])

	err = uc.Void(context.Background(), id)
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 10, store.stocks["art-1"],
		"la segunda anulación no debe tocar el stock")
	assert.Equal(t, entity.StatusVoided, store.headers[id].Status)
}

func TestVoid_IngresoPuedeDejarStockNegativo(t *testing.T) {
	// Ingreso de 10, luego venta de 8 en otro ledger sobre el mismo stock:
	// anular el ingreso deja el stock en -8 y aun así procede.
	store := newFakeStore(map[string]int{"art-1": 0})
	runner := &fakeTxRunner{store: store}
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	receiptUC := ledger.NewUseCase(entity.KindReceipt, runner, &fakeTxRepo{store: store, kind: entity.KindReceipt}, log)
	saleUC := ledger.NewUseCase(entity.KindSale, runner, &fakeTxRepo{store: store, kind: entity.KindSale}, log)

	receiptID, err := receiptUC.Commit(context.Background(), commitInput("prov-1", line("art-1", 10)))
	require.NoError(t, err)
	_, err = saleUC.Commit(context.Background(), commitInput("cli-1", line("art-1", 8)))
	require.NoError(t, err)
	require.Equal(t, 2, store.stocks["art-1"])

	require.NoError(t, receiptUC.Void(context.Background(), receiptID))
	assert.Equal(t, -8, store.stocks["art-1"],
		"la reversa de una anulación se aplica aunque deje stock negativo")
}

func TestVoid_Inexistente_NotFound(t *testing.T) {
	uc, _ := newTestUseCase(entity.KindSale, map[string]int{"art-1": 10})
	err := uc.Void(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVoid_SinID_InvalidInput(t *testing.T) {
	uc, _ := newTestUseCase(entity.KindSale, nil)
	err := uc.Void(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestListByDateRange_RangoInvalido(t *testing.T) {
	uc, _ := newTestUseCase(entity.KindSale, nil)
	now := time.Now()
	_, err := uc.ListByDateRange(context.Background(), now, now.Add(-time.Hour))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGet_DevuelveCabeceraConLineas(t *testing.T) {
	uc, _ := newTestUseCase(entity.KindSale, map[string]int{"art-1": 10})

	id, err := uc.Commit(context.Background(), commitInput("cli-1", line("art-1", 2)))
	require.NoError(t, err)

	tx, err := uc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, entity.KindSale, tx.Kind)
	assert.Len(t, tx.Lines, 1)
	assert.Equal(t, 2, tx.Lines[0].Quantity)
}

func TestGet_Inexistente_NotFound(t *testing.T) {
	uc, _ := newTestUseCase(entity.KindSale, nil)
	_, err := uc.Get(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
