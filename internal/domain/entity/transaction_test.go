package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionKind_Direction(t *testing.T) {
	assert.Equal(t, 1, KindReceipt.Direction(), "un ingreso suma stock")
	assert.Equal(t, -1, KindSale.Direction(), "una venta resta stock")
}

func TestTransactionKind_Valid(t *testing.T) {
	assert.True(t, KindReceipt.Valid())
	assert.True(t, KindSale.Valid())
	assert.False(t, TransactionKind("devolucion").Valid())
}

func TestTransactionLine_StockDelta(t *testing.T) {
	l := TransactionLine{Quantity: 5}
	assert.Equal(t, 5, l.StockDelta(KindReceipt))
	assert.Equal(t, -5, l.StockDelta(KindSale))
}

func TestTransaction_CanVoid(t *testing.T) {
	tx := &Transaction{Status: StatusAccepted}
	assert.True(t, tx.CanVoid())

	tx.Status = StatusVoided
	assert.False(t, tx.CanVoid(), "voided es terminal")
}
