package repository

import "github.com/jcastros/almacen-api/internal/domain/entity"

// CategoryRepository puerto de persistencia de categorías de artículos.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	List(activeOnly bool) ([]*entity.Category, error)
	Update(category *entity.Category) error
	SetActive(id string, active bool) error
}
