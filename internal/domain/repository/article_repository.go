package repository

import "github.com/jcastros/almacen-api/internal/domain/entity"

// ArticleFilter acota búsquedas de artículos según el contexto del caller:
// el almacenero ve activos, el vendedor solo activos con stock.
type ArticleFilter struct {
	ActiveOnly  bool
	InStockOnly bool
}

// ArticleRepository puerto de persistencia del registro de artículos.
type ArticleRepository interface {
	Create(article *entity.Article) error
	GetByID(id string) (*entity.Article, error)
	// GetByCode busca por código exacto aplicando el filtro.
	GetByCode(code string, filter ArticleFilter) (*entity.Article, error)
	// Search filtra por subcadena del nombre (insensible a acentos) y filtro.
	Search(text string, filter ArticleFilter) ([]*entity.Article, error)
	List(limit, offset int) ([]*entity.Article, error)
	Update(article *entity.Article) error
	SetActive(id string, active bool) error
	// AdjustStock aplica stock += delta de forma atómica y devuelve el stock
	// resultante. Si el artículo no existe devuelve domain.ErrNotFound.
	AdjustStock(id string, delta int) (int, error)
	// AdjustStockGuarded es como AdjustStock pero rechaza con
	// domain.ErrInsufficientStock cualquier delta que deje el stock negativo.
	AdjustStockGuarded(id string, delta int) (int, error)
}
