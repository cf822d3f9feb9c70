package repository

import "github.com/jcastros/almacen-api/internal/domain/entity"

// PartyRepository puerto de persistencia del directorio de personas
// (clientes y proveedores).
type PartyRepository interface {
	Create(party *entity.Party) error
	GetByID(id string) (*entity.Party, error)
	FindByEmail(email string) (*entity.Party, error)
	List(limit, offset int) ([]*entity.Party, error)
	// ListByKind filtra por tipo: entity.PartyKindCustomer o PartyKindSupplier.
	ListByKind(kind string, limit, offset int) ([]*entity.Party, error)
	Update(party *entity.Party) error
}
