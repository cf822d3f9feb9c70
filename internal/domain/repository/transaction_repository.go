package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcastros/almacen-api/internal/domain/entity"
)

// HeaderView cabecera de comprobante con los nombres de la contraparte y del
// operador ya resueltos (lectura para listados).
type HeaderView struct {
	ID           string
	PartyID      string
	PartyName    string
	UserID       string
	UserName     string
	DocumentType string
	Series       string
	Number       string
	IssuedAt     time.Time
	Tax          decimal.Decimal
	Total        decimal.Decimal
	Status       string
}

// LineView línea de comprobante con el nombre del artículo resuelto.
type LineView struct {
	ArticleID   string
	ArticleName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
}

// TransactionRepository puerto de persistencia de comprobantes del ledger.
// Una implementación está atada a un TransactionKind concreto: ingresos y
// ventas viven en tablas separadas pero comparten forma y operaciones.
type TransactionRepository interface {
	Kind() entity.TransactionKind

	// CreateHeader persiste la cabecera y asigna ID si viene vacío.
	CreateHeader(tx *entity.Transaction) error
	// CreateLine persiste una línea de la cabecera.
	CreateLine(line *entity.TransactionLine) error

	// GetByID devuelve la cabecera sin líneas, o nil si no existe.
	GetByID(id string) (*entity.Transaction, error)
	// GetByIDForUpdate bloquea la fila de la cabecera dentro de la tx en curso.
	GetByIDForUpdate(id string) (*entity.Transaction, error)
	// SetStatus actualiza el estado de la cabecera.
	SetStatus(id, status string) error
	// ListLines devuelve las líneas crudas de una cabecera (para reversar stock).
	ListLines(transactionID string) ([]*entity.TransactionLine, error)

	// GetView devuelve la cabecera con nombres resueltos, o nil si no existe.
	GetView(id string) (*HeaderView, error)
	// ListViews devuelve las últimas cabeceras, más reciente primero.
	ListViews(limit int) ([]HeaderView, error)
	// ListViewsByDateRange filtra por IssuedAt dentro de [from, to].
	ListViewsByDateRange(from, to time.Time, limit int) ([]HeaderView, error)
	// SearchViews filtra por subcadena del número de comprobante.
	SearchViews(text string) ([]HeaderView, error)
	// ListLineViews devuelve las líneas de una cabecera con nombre de artículo.
	ListLineViews(transactionID string) ([]LineView, error)
}
