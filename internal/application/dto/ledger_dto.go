package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommitLineRequest una línea del body de creación de comprobantes.
type CommitLineRequest struct {
	ArticleID string          `json:"article_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount,omitempty"` // solo ventas
}

// CommitTransactionRequest body para POST /api/receipts y POST /api/sales.
// party_id es el proveedor en ingresos y el cliente en ventas.
type CommitTransactionRequest struct {
	PartyID      string              `json:"party_id"`
	DocumentType string              `json:"document_type"`
	Series       string              `json:"series"`
	Number       string              `json:"number"`
	Tax          decimal.Decimal     `json:"tax"`
	Total        decimal.Decimal     `json:"total"`
	Lines        []CommitLineRequest `json:"lines"`
}

// TransactionResponse cabecera de comprobante con nombres resueltos.
type TransactionResponse struct {
	ID           string          `json:"id"`
	PartyID      string          `json:"party_id"`
	PartyName    string          `json:"party_name"`
	UserID       string          `json:"user_id"`
	UserName     string          `json:"user_name"`
	DocumentType string          `json:"document_type"`
	Series       string          `json:"series"`
	Number       string          `json:"number"`
	IssuedAt     time.Time       `json:"issued_at"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
}

// TransactionLineResponse línea de comprobante con nombre de artículo.
type TransactionLineResponse struct {
	ArticleID   string          `json:"article_id"`
	ArticleName string          `json:"article_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount,omitempty"`
}
