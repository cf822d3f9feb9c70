package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateArticleRequest entrada para crear un artículo.
type CreateArticleRequest struct {
	CategoryID  string          `json:"category_id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	Stock       int             `json:"stock"`
	Description string          `json:"description"`
}

// UpdateArticleRequest entrada para actualizar un artículo. Incluye stock:
// la corrección manual del operador es la única vía de ajuste fuera del ledger.
type UpdateArticleRequest struct {
	CategoryID  string          `json:"category_id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	Stock       int             `json:"stock"`
	Description string          `json:"description"`
}

// ArticleResponse salida de un artículo.
type ArticleResponse struct {
	ID          string          `json:"id"`
	CategoryID  string          `json:"category_id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	Stock       int             `json:"stock"`
	Description string          `json:"description"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
