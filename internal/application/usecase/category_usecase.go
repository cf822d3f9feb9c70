package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jcastros/almacen-api/internal/application/dto"
	"github.com/jcastros/almacen-api/internal/domain"
	"github.com/jcastros/almacen-api/internal/domain/entity"
	"github.com/jcastros/almacen-api/internal/domain/repository"
)

// CategoryUseCase CRUD de categorías de artículos.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create valida y persiste una categoría, activa por defecto.
func (uc *CategoryUseCase) Create(in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, (&domain.ValidationError{}).Add("name", "es requerido")
	}
	now := time.Now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Update valida y actualiza una categoría existente.
func (uc *CategoryUseCase) Update(id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Name == "" {
		return nil, (&domain.ValidationError{}).Add("name", "es requerido")
	}
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	category.Name = in.Name
	category.Description = in.Description
	category.UpdatedAt = time.Now()
	if err := uc.repo.Update(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// List devuelve categorías; activeOnly filtra para selects del front.
func (uc *CategoryUseCase) List(activeOnly bool) ([]dto.CategoryResponse, error) {
	categories, err := uc.repo.List(activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

// SetActive activa o desactiva una categoría.
func (uc *CategoryUseCase) SetActive(id string, active bool) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.repo.SetActive(id, active)
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
