package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Longitud permitida para el nombre de un artículo.
const (
	ArticleNameMinLen = 3
	ArticleNameMaxLen = 50
)

// Article representa un artículo del catálogo con su stock actual.
// El stock solo se modifica vía operaciones del ledger (ingresos/ventas y sus
// anulaciones) o por el ajuste explícito del operador al actualizar.
// Nunca se borra físicamente; se desactiva con Active.
type Article struct {
	ID          string
	CategoryID  string
	Code        string // identificador de negocio, único
	Name        string
	SalePrice   decimal.Decimal
	Stock       int
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
