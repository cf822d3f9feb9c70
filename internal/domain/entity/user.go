package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin       = "administrador"
	RoleWarehouse   = "almacenero"
	RoleSalesperson = "vendedor"
)

// User representa un operador del sistema.
type User struct {
	ID             string
	Name           string
	Role           string // administrador, almacenero, vendedor
	DocumentType   string
	DocumentNumber string
	Address        string
	Phone          string
	Email          string
	PasswordHash   string // bcrypt; nunca en texto plano después de persistir
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
