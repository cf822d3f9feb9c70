package entity

import "time"

// Tipos de persona: contraparte de un ingreso (proveedor) o de una venta (cliente).
const (
	PartyKindCustomer = "cliente"
	PartyKindSupplier = "proveedor"
)

// Party representa un cliente o proveedor referenciado por los comprobantes.
// El email es único en todo el directorio y se almacena en minúsculas.
type Party struct {
	ID             string
	Kind           string // cliente | proveedor
	DocumentType   string
	DocumentNumber string
	Name           string
	Address        string
	Phone          string
	Email          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
