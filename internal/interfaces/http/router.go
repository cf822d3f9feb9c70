package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastros/almacen-api/internal/application/auth"
	"github.com/jcastros/almacen-api/internal/application/ledger"
	"github.com/jcastros/almacen-api/internal/application/reports"
	"github.com/jcastros/almacen-api/internal/application/usecase"
	"github.com/jcastros/almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	ArticleUC   *usecase.ArticleUseCase
	CategoryUC  *usecase.CategoryUseCase
	PartyUC     *usecase.PartyUseCase
	UserUC      *usecase.UserUseCase
	ReceiptUC   *ledger.UseCase
	SaleUC      *ledger.UseCase
	ReportsUC   *reports.UseCase
	SaleVoucher ledger.VoucherGenerator
	JWTSecret   string
}

// Router registra las rutas de la API. El gating por rol replica la matriz
// del sistema: ingresos para almacenero, ventas para vendedor, usuarios solo
// para administrador; el administrador entra a todo.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	anyRole := RequireRole(entity.RoleAdmin, entity.RoleWarehouse, entity.RoleSalesperson)
	warehouse := RequireRole(entity.RoleAdmin, entity.RoleWarehouse)
	sales := RequireRole(entity.RoleAdmin, entity.RoleSalesperson)
	admin := RequireRole(entity.RoleAdmin)

	// Articles: lectura para los tres roles (ventas necesita buscar por
	// código y nombre), escritura para almacén.
	articleHandler := NewArticleHandler(deps.ArticleUC, deps.ReportsUC)
	articles := protected.Group("/articles")
	articles.Get("/search", anyRole, articleHandler.Search)
	articles.Get("/by-code/:code", anyRole, articleHandler.GetByCode)
	articles.Get("/top-sold", anyRole, articleHandler.TopSold)
	articles.Get("/", anyRole, articleHandler.List)
	articles.Get("/:id", anyRole, articleHandler.GetByID)
	articles.Post("/", warehouse, articleHandler.Create)
	articles.Put("/:id/activate", warehouse, articleHandler.Activate)
	articles.Put("/:id/deactivate", warehouse, articleHandler.Deactivate)
	articles.Put("/:id", warehouse, articleHandler.Update)

	// Categories: almacén y administrador.
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories := protected.Group("/categories", warehouse)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Put("/:id/activate", categoryHandler.Activate)
	categories.Put("/:id/deactivate", categoryHandler.Deactivate)
	categories.Put("/:id", categoryHandler.Update)

	// Parties: clientes para ventas, proveedores para almacén; el resto del
	// directorio lo comparten los tres roles.
	partyHandler := NewPartyHandler(deps.PartyUC)
	parties := protected.Group("/parties")
	parties.Get("/clients/select", sales, partyHandler.ClientSelect)
	parties.Get("/clients", sales, partyHandler.Clients)
	parties.Get("/suppliers/select", warehouse, partyHandler.SupplierSelect)
	parties.Get("/suppliers", warehouse, partyHandler.Suppliers)
	parties.Get("/", anyRole, partyHandler.List)
	parties.Get("/:id", anyRole, partyHandler.GetByID)
	parties.Post("/", anyRole, partyHandler.Create)
	parties.Put("/:id", anyRole, partyHandler.Update)

	// Receipts (ingresos): almacén y administrador.
	receiptHandler := NewTransactionHandler(deps.ReceiptUC, nil)
	receipts := protected.Group("/receipts", warehouse)
	receipts.Get("/by-date", receiptHandler.ListByDate)
	receipts.Get("/search", receiptHandler.Search)
	receipts.Get("/", receiptHandler.List)
	receipts.Get("/:id/lines", receiptHandler.Lines)
	receipts.Get("/:id", receiptHandler.GetByID)
	receipts.Post("/", receiptHandler.Create)
	receipts.Put("/:id/void", receiptHandler.Void)

	// Sales (ventas): vendedor y administrador. El reporte mensual lo ven
	// los tres roles (dashboard).
	reportHandler := NewReportHandler(deps.ReportsUC)
	saleHandler := NewTransactionHandler(deps.SaleUC, deps.SaleVoucher)
	salesGroup := protected.Group("/sales")
	salesGroup.Get("/monthly-totals", anyRole, reportHandler.MonthlyTotals)
	salesGroup.Get("/by-date", sales, saleHandler.ListByDate)
	salesGroup.Get("/search", sales, saleHandler.Search)
	salesGroup.Get("/", sales, saleHandler.List)
	salesGroup.Get("/:id/lines", sales, saleHandler.Lines)
	salesGroup.Get("/:id/pdf", sales, saleHandler.Voucher)
	salesGroup.Get("/:id", sales, saleHandler.GetByID)
	salesGroup.Post("/", sales, saleHandler.Create)
	salesGroup.Put("/:id/void", sales, saleHandler.Void)

	// Users: solo administrador.
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users", admin)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id/activate", userHandler.Activate)
	users.Put("/:id/deactivate", userHandler.Deactivate)
	users.Put("/:id", userHandler.Update)
}
