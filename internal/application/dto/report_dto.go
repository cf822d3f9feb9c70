package dto

import "github.com/shopspring/decimal"

// TopArticleResponse un artículo con su cantidad vendida en el rango.
type TopArticleResponse struct {
	ArticleID   string `json:"article_id"`
	ArticleName string `json:"article_name"`
	Quantity    int64  `json:"quantity"`
}

// MonthlyTotalResponse total vendido en un mes calendario (1..12).
type MonthlyTotalResponse struct {
	Month int             `json:"month"`
	Total decimal.Decimal `json:"total"`
}
