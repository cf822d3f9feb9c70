package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jcastros/almacen-api/internal/domain"
	"github.com/jcastros/almacen-api/internal/domain/entity"
	"github.com/jcastros/almacen-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación de TransactionRepository sobre PostgreSQL,
// atada a un kind: ingresos (receipts/receipt_lines) o ventas
// (sales/sale_lines). Las dos familias comparten forma y SQL; solo cambian
// los nombres de tabla y la columna discount, que existe únicamente en ventas.
type TransactionRepo struct {
	q           Querier
	kind        entity.TransactionKind
	headerTbl   string
	lineTbl     string
	lineFK      string
	hasDiscount bool
}

// NewTransactionRepository construye el adaptador para el kind dado.
// Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier, kind entity.TransactionKind) *TransactionRepo {
	r := &TransactionRepo{q: q, kind: kind}
	switch kind {
	case entity.KindSale:
		r.headerTbl, r.lineTbl, r.lineFK = "sales", "sale_lines", "sale_id"
		r.hasDiscount = true
	default:
		r.headerTbl, r.lineTbl, r.lineFK = "receipts", "receipt_lines", "receipt_id"
	}
	return r
}

// Kind devuelve el tipo de comprobante que maneja este repo.
func (r *TransactionRepo) Kind() entity.TransactionKind { return r.kind }

// CreateHeader persiste la cabecera; asigna ID si viene vacío.
func (r *TransactionRepo) CreateHeader(t *entity.Transaction) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (id, party_id, user_id, document_type, series, number, issued_at, tax, total, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`, r.headerTbl)
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.PartyID, t.UserID, t.DocumentType, t.Series, t.Number,
		t.IssuedAt, t.Tax, t.Total, t.Status, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound // party o usuario inexistente
		}
		return fmt.Errorf("insert %s header: %w", r.kind, err)
	}
	return nil
}

// CreateLine persiste una línea. Un artículo inexistente se reporta como
// ErrNotFound (violación de FK), lo que revierte el commit completo.
func (r *TransactionRepo) CreateLine(l *entity.TransactionLine) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	var err error
	if r.hasDiscount {
		query := fmt.Sprintf(`
			INSERT INTO %s (id, %s, article_id, quantity, unit_price, discount)
			VALUES ($1, $2, $3, $4, $5, $6)`, r.lineTbl, r.lineFK)
		_, err = r.q.Exec(context.Background(), query,
			l.ID, l.TransactionID, l.ArticleID, l.Quantity, l.UnitPrice, l.Discount)
	} else {
		query := fmt.Sprintf(`
			INSERT INTO %s (id, %s, article_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5)`, r.lineTbl, r.lineFK)
		_, err = r.q.Exec(context.Background(), query,
			l.ID, l.TransactionID, l.ArticleID, l.Quantity, l.UnitPrice)
	}
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert %s line: %w", r.kind, err)
	}
	return nil
}

const headerColumns = `id, party_id, user_id, document_type, series, number, issued_at, tax, total, status, created_at, updated_at`

func (r *TransactionRepo) scanHeader(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	t.Kind = r.kind
	err := row.Scan(&t.ID, &t.PartyID, &t.UserID, &t.DocumentType, &t.Series, &t.Number,
		&t.IssuedAt, &t.Tax, &t.Total, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByID obtiene la cabecera sin líneas, o nil si no existe.
func (r *TransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, headerColumns, r.headerTbl)
	t, err := r.scanHeader(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", r.kind, err)
	}
	return t, nil
}

// GetByIDForUpdate bloquea la fila de la cabecera (SELECT FOR UPDATE) para
// que dos anulaciones concurrentes no reviertan el stock dos veces.
func (r *TransactionRepo) GetByIDForUpdate(id string) (*entity.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 FOR UPDATE`, headerColumns, r.headerTbl)
	t, err := r.scanHeader(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s for update: %w", r.kind, err)
	}
	return t, nil
}

// SetStatus actualiza el estado de la cabecera.
func (r *TransactionRepo) SetStatus(id, status string) error {
	query := fmt.Sprintf(`UPDATE %s SET status = $2, updated_at = now() WHERE id = $1`, r.headerTbl)
	cmd, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("set %s status: %w", r.kind, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListLines devuelve las líneas crudas de una cabecera.
func (r *TransactionRepo) ListLines(transactionID string) ([]*entity.TransactionLine, error) {
	cols := `id, ` + r.lineFK + `, article_id, quantity, unit_price`
	if r.hasDiscount {
		cols += `, discount`
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, cols, r.lineTbl, r.lineFK)
	rows, err := r.q.Query(context.Background(), query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list %s lines: %w", r.kind, err)
	}
	defer rows.Close()

	var list []*entity.TransactionLine
	for rows.Next() {
		var l entity.TransactionLine
		dest := []any{&l.ID, &l.TransactionID, &l.ArticleID, &l.Quantity, &l.UnitPrice}
		if r.hasDiscount {
			dest = append(dest, &l.Discount)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s line: %w", r.kind, err)
		}
		if !r.hasDiscount {
			l.Discount = decimal.Zero
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

const viewColumns = `h.id, h.party_id, p.name, h.user_id, u.name, h.document_type, h.series, h.number, h.issued_at, h.tax, h.total, h.status`

func (r *TransactionRepo) collectViews(rows pgx.Rows) ([]repository.HeaderView, error) {
	var list []repository.HeaderView
	for rows.Next() {
		var v repository.HeaderView
		if err := rows.Scan(&v.ID, &v.PartyID, &v.PartyName, &v.UserID, &v.UserName,
			&v.DocumentType, &v.Series, &v.Number, &v.IssuedAt, &v.Tax, &v.Total, &v.Status); err != nil {
			return nil, fmt.Errorf("scan %s view: %w", r.kind, err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// GetView devuelve la cabecera con nombres resueltos, o nil si no existe.
func (r *TransactionRepo) GetView(id string) (*repository.HeaderView, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s h
		JOIN parties p ON p.id = h.party_id
		JOIN users   u ON u.id = h.user_id
		WHERE h.id = $1`, viewColumns, r.headerTbl)
	var v repository.HeaderView
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.PartyID, &v.PartyName, &v.UserID, &v.UserName,
		&v.DocumentType, &v.Series, &v.Number, &v.IssuedAt, &v.Tax, &v.Total, &v.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s view: %w", r.kind, err)
	}
	return &v, nil
}

// ListViews devuelve las últimas cabeceras con nombres de persona y usuario.
func (r *TransactionRepo) ListViews(limit int) ([]repository.HeaderView, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s h
		JOIN parties p ON p.id = h.party_id
		JOIN users   u ON u.id = h.user_id
		ORDER BY h.created_at DESC
		LIMIT $1`, viewColumns, r.headerTbl)
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list %s views: %w", r.kind, err)
	}
	defer rows.Close()
	return r.collectViews(rows)
}

// ListViewsByDateRange filtra por fecha de emisión dentro de [from, to].
func (r *TransactionRepo) ListViewsByDateRange(from, to time.Time, limit int) ([]repository.HeaderView, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s h
		JOIN parties p ON p.id = h.party_id
		JOIN users   u ON u.id = h.user_id
		WHERE h.issued_at >= $1 AND h.issued_at <= $2
		ORDER BY h.created_at DESC
		LIMIT $3`, viewColumns, r.headerTbl)
	rows, err := r.q.Query(context.Background(), query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("list %s views by date: %w", r.kind, err)
	}
	defer rows.Close()
	return r.collectViews(rows)
}

// SearchViews filtra por subcadena del número de comprobante.
func (r *TransactionRepo) SearchViews(text string) ([]repository.HeaderView, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s h
		JOIN parties p ON p.id = h.party_id
		JOIN users   u ON u.id = h.user_id
		WHERE h.number LIKE '%%' || $1 || '%%'
		ORDER BY h.created_at DESC`, viewColumns, r.headerTbl)
	rows, err := r.q.Query(context.Background(), query, text)
	if err != nil {
		return nil, fmt.Errorf("search %s views: %w", r.kind, err)
	}
	defer rows.Close()
	return r.collectViews(rows)
}

// ListLineViews devuelve las líneas con el nombre del artículo resuelto.
func (r *TransactionRepo) ListLineViews(transactionID string) ([]repository.LineView, error) {
	discountCol := `0`
	if r.hasDiscount {
		discountCol = `l.discount`
	}
	query := fmt.Sprintf(`
		SELECT l.article_id, a.name, l.quantity, l.unit_price, %s
		FROM %s l
		JOIN articles a ON a.id = l.article_id
		WHERE l.%s = $1`, discountCol, r.lineTbl, r.lineFK)
	rows, err := r.q.Query(context.Background(), query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list %s line views: %w", r.kind, err)
	}
	defer rows.Close()

	var list []repository.LineView
	for rows.Next() {
		var v repository.LineView
		if err := rows.Scan(&v.ArticleID, &v.ArticleName, &v.Quantity, &v.UnitPrice, &v.Discount); err != nil {
			return nil, fmt.Errorf("scan %s line view: %w", r.kind, err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}
