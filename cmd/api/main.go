package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jcastros/almacen-api/internal/application/auth"
	"github.com/jcastros/almacen-api/internal/application/ledger"
	"github.com/jcastros/almacen-api/internal/application/reports"
	"github.com/jcastros/almacen-api/internal/application/usecase"
	"github.com/jcastros/almacen-api/internal/domain/entity"
	infrapdf "github.com/jcastros/almacen-api/internal/infrastructure/pdf"
	"github.com/jcastros/almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/jcastros/almacen-api/internal/interfaces/http"
	"github.com/jcastros/almacen-api/pkg/config"
	"github.com/jcastros/almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	articleRepo := postgres.NewArticleRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	partyRepo := postgres.NewPartyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	receiptRepo := postgres.NewTransactionRepository(pool, entity.KindReceipt)
	saleRepo := postgres.NewTransactionRepository(pool, entity.KindSale)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	articleUC := usecase.NewArticleUseCase(articleRepo, categoryRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	partyUC := usecase.NewPartyUseCase(partyRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	receiptUC := ledger.NewUseCase(entity.KindReceipt, txRunner, receiptRepo, log)
	saleUC := ledger.NewUseCase(entity.KindSale, txRunner, saleRepo, log)
	reportsUC := reports.NewUseCase(reportRepo)
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almacén API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ArticleUC:   articleUC,
		CategoryUC:  categoryUC,
		PartyUC:     partyUC,
		UserUC:      userUC,
		ReceiptUC:   receiptUC,
		SaleUC:      saleUC,
		ReportsUC:   reportsUC,
		SaleVoucher: infrapdf.NewVoucherGenerator(),
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
