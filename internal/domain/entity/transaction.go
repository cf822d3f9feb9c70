package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind distingue las dos familias de comprobantes del ledger.
// Un ingreso suma stock al confirmarse; una venta lo resta. La anulación
// aplica siempre el signo contrario al de la confirmación.
type TransactionKind string

const (
	KindReceipt TransactionKind = "receipt" // ingreso de proveedor
	KindSale    TransactionKind = "sale"    // venta a cliente
)

// Direction devuelve el signo con el que las líneas del comprobante afectan
// el stock al confirmarse: +1 para ingresos, -1 para ventas.
func (k TransactionKind) Direction() int {
	if k == KindSale {
		return -1
	}
	return 1
}

// Valid indica si el kind es uno de los dos soportados.
func (k TransactionKind) Valid() bool {
	return k == KindReceipt || k == KindSale
}

// Estados de un comprobante. La transición es unidireccional:
// accepted -> voided; voided es terminal.
const (
	StatusAccepted = "accepted"
	StatusVoided   = "voided"
)

// Transaction es la cabecera de un comprobante del ledger (ingreso o venta).
// Impuesto y total llegan calculados por el caller y se almacenan tal cual;
// el ledger no los recalcula a partir de las líneas.
type Transaction struct {
	ID           string
	Kind         TransactionKind
	PartyID      string // proveedor en ingresos, cliente en ventas
	UserID       string
	DocumentType string
	Series       string
	Number       string
	IssuedAt     time.Time // fijado por el servidor al confirmar
	Tax          decimal.Decimal
	Total        decimal.Decimal
	Status       string // accepted | voided
	Lines        []TransactionLine
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TransactionLine es una línea de comprobante. Es inmutable una vez
// persistida: anular el comprobante revierte el stock pero no toca las líneas.
type TransactionLine struct {
	ID            string
	TransactionID string
	ArticleID     string
	Quantity      int // siempre > 0; el signo lo decide el kind
	UnitPrice     decimal.Decimal
	Discount      decimal.Decimal // solo ventas; cero en ingresos
}

// CanVoid valida la guarda de la transición accepted -> voided.
func (t *Transaction) CanVoid() bool {
	return t.Status == StatusAccepted
}

// StockDelta devuelve el delta de stock que la línea aplicó al confirmarse
// el comprobante del kind dado.
func (l TransactionLine) StockDelta(kind TransactionKind) int {
	return kind.Direction() * l.Quantity
}
