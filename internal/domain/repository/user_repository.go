package repository

import "github.com/jcastros/almacen-api/internal/domain/entity"

// UserRepository puerto de persistencia de usuarios del sistema.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	List(limit, offset int) ([]*entity.User, error)
	Update(user *entity.User) error
	SetActive(id string, active bool) error
}
