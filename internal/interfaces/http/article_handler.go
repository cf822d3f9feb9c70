package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jcastros/almacen-api/internal/application/dto"
	"github.com/jcastros/almacen-api/internal/application/reports"
	"github.com/jcastros/almacen-api/internal/application/usecase"
)

// ArticleHandler maneja las peticiones HTTP del registro de artículos.
type ArticleHandler struct {
	uc      *usecase.ArticleUseCase
	reports *reports.UseCase
}

// NewArticleHandler construye el handler.
func NewArticleHandler(uc *usecase.ArticleUseCase, reports *reports.UseCase) *ArticleHandler {
	return &ArticleHandler{uc: uc, reports: reports}
}

// List lista artículos paginados, inactivos incluidos.
// GET /api/articles
func (h *ArticleHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	articles, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(articles)
}

// Search busca artículos activos por subcadena del nombre, sin distinguir
// tildes. context=sale exige además stock disponible.
// GET /api/articles/search?q=...&context=sale
func (h *ArticleHandler) Search(c *fiber.Ctx) error {
	saleContext := c.Query("context") == "sale"
	articles, err := h.uc.Search(c.Query("q"), saleContext)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(articles)
}

// GetByCode busca un artículo activo por código exacto. context=sale exige
// además stock disponible.
// GET /api/articles/by-code/:code?context=sale
func (h *ArticleHandler) GetByCode(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code requerido"})
	}
	saleContext := c.Query("context") == "sale"
	article, err := h.uc.GetByCode(code, saleContext)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(article)
}

// TopSold lista artículos vendidos desde la fecha dada (?from=YYYY-MM-DD,
// por defecto los últimos 30 días) sobre ventas aceptadas.
// GET /api/articles/top-sold
func (h *ArticleHandler) TopSold(c *fiber.Ctx) error {
	from := time.Now().AddDate(0, 0, -30)
	if s := c.Query("from"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser YYYY-MM-DD"})
		}
		from = parsed
	}
	rows, err := h.reports.TopArticles(c.Context(), from)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

// GetByID obtiene un artículo por id.
// GET /api/articles/:id
func (h *ArticleHandler) GetByID(c *fiber.Ctx) error {
	article, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(article)
}

// Create registra un artículo nuevo.
// POST /api/articles
func (h *ArticleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateArticleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	article, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(article)
}

// Update actualiza un artículo existente.
// PUT /api/articles/:id
func (h *ArticleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateArticleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	article, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(article)
}

// Activate reactiva un artículo desactivado.
// PUT /api/articles/:id/activate
func (h *ArticleHandler) Activate(c *fiber.Ctx) error {
	if err := h.uc.SetActive(c.Params("id"), true); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Deactivate desactiva un artículo (borrado lógico).
// PUT /api/articles/:id/deactivate
func (h *ArticleHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.SetActive(c.Params("id"), false); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
