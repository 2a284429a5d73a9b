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
	"github.com/intelguy8000/odontologia/internal/application/analytics"
	"github.com/intelguy8000/odontologia/internal/application/auth"
	"github.com/intelguy8000/odontologia/internal/application/chat"
	"github.com/intelguy8000/odontologia/internal/application/inventory"
	"github.com/intelguy8000/odontologia/internal/application/patients"
	"github.com/intelguy8000/odontologia/internal/application/receivables"
	"github.com/intelguy8000/odontologia/internal/application/sales"
	infraai "github.com/intelguy8000/odontologia/internal/infrastructure/ai"
	infrapdf "github.com/intelguy8000/odontologia/internal/infrastructure/pdf"
	"github.com/intelguy8000/odontologia/internal/infrastructure/postgres"
	httpRouter "github.com/intelguy8000/odontologia/internal/interfaces/http"
	"github.com/intelguy8000/odontologia/pkg/config"
	"github.com/intelguy8000/odontologia/pkg/logger"
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

	// Repositorios (atados al pool; los transaccionales se re-crean sobre la tx)
	userRepo := postgres.NewUserRepository(pool)
	configRepo := postgres.NewClinicConfigRepository(pool)
	patientRepo := postgres.NewPatientRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	itemRepo := postgres.NewInventoryItemRepository(pool)
	movRepo := postgres.NewInventoryMovementRepository(pool)
	planRepo := postgres.NewPaymentPlanRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Casos de uso
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	configUC := auth.NewConfigUseCase(configRepo)
	patientUC := patients.NewUseCase(patientRepo)
	inventoryUC := inventory.NewUseCase(itemRepo, movRepo)
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner)
	createSaleUC := sales.NewCreateSaleUseCase(txRunner, patientRepo, saleRepo)
	saleQueryUC := sales.NewQueryUseCase(saleRepo)
	saleReceiptUC := sales.NewReceiptUseCase(saleRepo, configRepo, infrapdf.NewMarotoReceiptGenerator())
	receivableUC := receivables.NewUseCase(txRunner, planRepo, patientRepo)
	dashboardUC := analytics.NewDashboardUseCase(analyticsRepo)

	// Asistente: OpenAI + catálogo de funciones sobre los agregadores
	openaiSvc := infraai.NewOpenAIService(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	dispatcher := chat.NewDispatcher(dashboardUC, inventoryUC, receivableUC)
	chatUC := chat.NewUseCase(openaiSvc, dispatcher)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60, // el chat puede tardar las dos rondas
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "API Consultorio Odontológico",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		ConfigUC:         configUC,
		PatientUC:        patientUC,
		CreateSale:       createSaleUC,
		SaleQuery:        saleQueryUC,
		SaleReceipt:      saleReceiptUC,
		InventoryUC:      inventoryUC,
		RegisterMovement: registerMovementUC,
		ReceivableUC:     receivableUC,
		DashboardUC:      dashboardUC,
		ChatUC:           chatUC,
		Log:              log,
		JWTSecret:        cfg.JWT.Secret,
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
