package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/jackc/pgx/v5"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jcastros/almacen-api/internal/domain"
	"github.com/jcastros/almacen-api/internal/domain/entity"
	"github.com/jcastros/almacen-api/internal/domain/repository"
)

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

// ArticleRepo implementación de ArticleRepository sobre PostgreSQL (usable con pool o tx).
type ArticleRepo struct {
	q Querier
}

// NewArticleRepository construye el adaptador de artículos. Pasar pool o tx (Querier).
func NewArticleRepository(q Querier) *ArticleRepo {
	return &ArticleRepo{q: q}
}

// foldTransformer descompone, elimina marcas diacríticas y recompone:
// "Lápiz HB" -> "Lapiz HB". Se usa para la columna name_folded.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldText normaliza texto para búsqueda insensible a acentos y mayúsculas.
func foldText(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

const articleColumns = `id, category_id, code, name, sale_price, stock, description, active, created_at, updated_at`

func scanArticle(row pgx.Row) (*entity.Article, error) {
	var a entity.Article
	err := row.Scan(&a.ID, &a.CategoryID, &a.Code, &a.Name, &a.SalePrice,
		&a.Stock, &a.Description, &a.Active, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persiste un artículo nuevo. Devuelve ErrDuplicate si el código ya existe.
func (r *ArticleRepo) Create(article *entity.Article) error {
	query := `
		INSERT INTO articles (id, category_id, code, name, name_folded, sale_price, stock, description, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		article.ID, article.CategoryID, article.Code, article.Name, foldText(article.Name),
		article.SalePrice, article.Stock, article.Description, article.Active,
		article.CreatedAt, article.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID, o nil si no existe.
func (r *ArticleRepo) GetByID(id string) (*entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`
	a, err := scanArticle(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	return a, nil
}

// GetByCode busca por código exacto aplicando el filtro del contexto.
func (r *ArticleRepo) GetByCode(code string, filter repository.ArticleFilter) (*entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE code = $1`
	if filter.ActiveOnly {
		query += ` AND active`
	}
	if filter.InStockOnly {
		query += ` AND stock > 0`
	}
	a, err := scanArticle(r.q.QueryRow(context.Background(), query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get article by code: %w", err)
	}
	return a, nil
}

// Search filtra por subcadena del nombre sobre la columna name_folded
// (insensible a acentos y mayúsculas) y por el filtro del contexto.
func (r *ArticleRepo) Search(text string, filter repository.ArticleFilter) ([]*entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE name_folded LIKE '%' || $1 || '%'`
	if filter.ActiveOnly {
		query += ` AND active`
	}
	if filter.InStockOnly {
		query += ` AND stock > 0`
	}
	query += ` ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, foldText(text))
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}
	defer rows.Close()
	return collectArticles(rows)
}

// List devuelve artículos paginados, más recientes primero.
func (r *ArticleRepo) List(limit, offset int) ([]*entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()
	return collectArticles(rows)
}

// Update actualiza un artículo existente (incluido el stock corregido a mano).
func (r *ArticleRepo) Update(article *entity.Article) error {
	query := `
		UPDATE articles
		SET category_id = $2, code = $3, name = $4, name_folded = $5, sale_price = $6,
		    stock = $7, description = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		article.ID, article.CategoryID, article.Code, article.Name, foldText(article.Name),
		article.SalePrice, article.Stock, article.Description, article.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update article: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetActive activa o desactiva un artículo.
func (r *ArticleRepo) SetActive(id string, active bool) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE articles SET active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set article active: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustStock aplica stock += delta como un único UPDATE relativo: la lectura
// y la escritura no se separan, así que commits concurrentes sobre el mismo
// artículo no pierden actualizaciones.
func (r *ArticleRepo) AdjustStock(id string, delta int) (int, error) {
	var stock int
	err := r.q.QueryRow(context.Background(),
		`UPDATE articles SET stock = stock + $2, updated_at = now() WHERE id = $1 RETURNING stock`,
		id, delta,
	).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("adjust stock: %w", err)
	}
	return stock, nil
}

// AdjustStockGuarded es como AdjustStock pero la cláusula WHERE exige que el
// resultado no quede negativo. Distingue "no existe" de "sin stock" con una
// consulta adicional solo en el camino de error.
func (r *ArticleRepo) AdjustStockGuarded(id string, delta int) (int, error) {
	var stock int
	err := r.q.QueryRow(context.Background(),
		`UPDATE articles SET stock = stock + $2, updated_at = now()
		 WHERE id = $1 AND stock + $2 >= 0 RETURNING stock`,
		id, delta,
	).Scan(&stock)
	if err == nil {
		return stock, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("adjust stock guarded: %w", err)
	}
	var exists bool
	if err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM articles WHERE id = $1)`, id).Scan(&exists); err != nil {
		return 0, fmt.Errorf("adjust stock guarded: %w", err)
	}
	if !exists {
		return 0, domain.ErrNotFound
	}
	return 0, domain.ErrInsufficientStock
}

func collectArticles(rows pgx.Rows) ([]*entity.Article, error) {
	var list []*entity.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
