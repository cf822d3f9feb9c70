package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jcastros/almacen-api/internal/application/dto"
	"github.com/jcastros/almacen-api/internal/domain"
	"github.com/jcastros/almacen-api/internal/domain/entity"
	"github.com/jcastros/almacen-api/internal/domain/repository"
)

// ArticleUseCase operaciones del registro de artículos. El stock aquí solo
// cambia por alta o por corrección manual del operador; los movimientos
// normales pasan por el ledger.
type ArticleUseCase struct {
	repo         repository.ArticleRepository
	categoryRepo repository.CategoryRepository
}

// NewArticleUseCase construye el caso de uso.
func NewArticleUseCase(repo repository.ArticleRepository, categoryRepo repository.CategoryRepository) *ArticleUseCase {
	return &ArticleUseCase{repo: repo, categoryRepo: categoryRepo}
}

func validateArticle(categoryID, code, name string, priceNegative bool) error {
	verr := &domain.ValidationError{}
	if categoryID == "" {
		verr.Add("category_id", "es requerido")
	}
	if code == "" {
		verr.Add("code", "es requerido")
	}
	if n := len([]rune(name)); n < entity.ArticleNameMinLen || n > entity.ArticleNameMaxLen {
		verr.Add("name", "debe tener entre 3 y 50 caracteres")
	}
	if priceNegative {
		verr.Add("sale_price", "no puede ser negativo")
	}
	if verr.Empty() {
		return nil
	}
	return verr
}

// Create valida y persiste un artículo nuevo, activo por defecto.
func (uc *ArticleUseCase) Create(in dto.CreateArticleRequest) (*dto.ArticleResponse, error) {
	if err := validateArticle(in.CategoryID, in.Code, in.Name, in.SalePrice.IsNegative()); err != nil {
		return nil, err
	}
	category, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	article := &entity.Article{
		ID:          uuid.New().String(),
		CategoryID:  in.CategoryID,
		Code:        in.Code,
		Name:        in.Name,
		SalePrice:   in.SalePrice,
		Stock:       in.Stock,
		Description: in.Description,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(article); err != nil {
		return nil, err
	}
	return toArticleResponse(article), nil
}

// GetByID devuelve el artículo o ErrNotFound.
func (uc *ArticleUseCase) GetByID(id string) (*dto.ArticleResponse, error) {
	article, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, domain.ErrNotFound
	}
	return toArticleResponse(article), nil
}

// GetByCode busca por código exacto con el filtro del contexto del caller:
// almacén ve activos; venta exige además stock disponible.
func (uc *ArticleUseCase) GetByCode(code string, saleContext bool) (*dto.ArticleResponse, error) {
	filter := repository.ArticleFilter{ActiveOnly: true, InStockOnly: saleContext}
	article, err := uc.repo.GetByCode(code, filter)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, domain.ErrNotFound
	}
	return toArticleResponse(article), nil
}

// Search filtra por subcadena del nombre según contexto (almacén o venta).
func (uc *ArticleUseCase) Search(text string, saleContext bool) ([]dto.ArticleResponse, error) {
	filter := repository.ArticleFilter{ActiveOnly: true, InStockOnly: saleContext}
	articles, err := uc.repo.Search(text, filter)
	if err != nil {
		return nil, err
	}
	return toArticleResponses(articles), nil
}

// List devuelve artículos paginados (incluye inactivos, como el listado original).
func (uc *ArticleUseCase) List(limit, offset int) ([]dto.ArticleResponse, error) {
	articles, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return toArticleResponses(articles), nil
}

// Update valida y actualiza un artículo existente.
func (uc *ArticleUseCase) Update(id string, in dto.UpdateArticleRequest) (*dto.ArticleResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := validateArticle(in.CategoryID, in.Code, in.Name, in.SalePrice.IsNegative()); err != nil {
		return nil, err
	}
	article, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, domain.ErrNotFound
	}
	article.CategoryID = in.CategoryID
	article.Code = in.Code
	article.Name = in.Name
	article.SalePrice = in.SalePrice
	article.Stock = in.Stock
	article.Description = in.Description
	article.UpdatedAt = time.Now()
	if err := uc.repo.Update(article); err != nil {
		return nil, err
	}
	return toArticleResponse(article), nil
}

// SetActive activa o desactiva un artículo (nunca se borra físicamente).
func (uc *ArticleUseCase) SetActive(id string, active bool) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.repo.SetActive(id, active)
}

func toArticleResponse(a *entity.Article) *dto.ArticleResponse {
	return &dto.ArticleResponse{
		ID:          a.ID,
		CategoryID:  a.CategoryID,
		Code:        a.Code,
		Name:        a.Name,
		SalePrice:   a.SalePrice,
		Stock:       a.Stock,
		Description: a.Description,
		Active:      a.Active,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toArticleResponses(articles []*entity.Article) []dto.ArticleResponse {
	out := make([]dto.ArticleResponse, 0, len(articles))
	for _, a := range articles {
		out = append(out, *toArticleResponse(a))
	}
	return out
}
