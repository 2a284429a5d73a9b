package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/intelguy8000/odontologia/internal/application/analytics"
	"github.com/intelguy8000/odontologia/internal/application/auth"
	"github.com/intelguy8000/odontologia/internal/application/chat"
	"github.com/intelguy8000/odontologia/internal/application/inventory"
	"github.com/intelguy8000/odontologia/internal/application/patients"
	"github.com/intelguy8000/odontologia/internal/application/receivables"
	"github.com/intelguy8000/odontologia/internal/application/sales"
	"github.com/intelguy8000/odontologia/internal/domain/entity"
	"github.com/intelguy8000/odontologia/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.UseCase
	ConfigUC         *auth.ConfigUseCase
	PatientUC        *patients.UseCase
	CreateSale       *sales.CreateSaleUseCase
	SaleQuery        *sales.QueryUseCase
	SaleReceipt      *sales.ReceiptUseCase
	InventoryUC      *inventory.UseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	ReceivableUC     *receivables.UseCase
	DashboardUC      *analytics.DashboardUseCase
	ChatUC           *chat.UseCase
	Log              *logger.Logger
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Escritura: admin y asistente. Administración: solo admin.
	staff := RequireRole(entity.RoleAdmin, entity.RoleAsistente)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), adminOnly, authHandler.Register)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Configuración del consultorio
	configHandler := NewConfigHandler(deps.ConfigUC)
	configGroup := protected.Group("/config")
	configGroup.Get("/", configHandler.Get)
	configGroup.Put("/", adminOnly, configHandler.Update)

	// Pacientes
	patientHandler := NewPatientHandler(deps.PatientUC)
	pacientes := protected.Group("/pacientes")
	pacientes.Get("/", patientHandler.List)
	pacientes.Get("/:id", patientHandler.GetByID)
	pacientes.Post("/", staff, patientHandler.Create)
	pacientes.Put("/:id", staff, patientHandler.Update)
	pacientes.Delete("/:id", adminOnly, patientHandler.Delete)

	// Ventas
	saleHandler := NewSaleHandler(deps.CreateSale, deps.SaleQuery, deps.SaleReceipt)
	ventas := protected.Group("/ventas")
	ventas.Get("/", saleHandler.List)
	ventas.Get("/:id", saleHandler.GetByID)
	ventas.Get("/:id/recibo", saleHandler.Receipt)
	ventas.Post("/", staff, saleHandler.Create)
	ventas.Patch("/:id/estado", staff, saleHandler.UpdateStatus)

	// Inventario (las rutas fijas van antes de /:id)
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.RegisterMovement)
	inventario := protected.Group("/inventario")
	inventario.Get("/", inventoryHandler.List)
	inventario.Get("/alertas", inventoryHandler.Alerts)
	inventario.Get("/estadisticas", inventoryHandler.Stats)
	inventario.Post("/movimientos", staff, inventoryHandler.RegisterMovement)
	inventario.Get("/:id", inventoryHandler.GetByID)
	inventario.Post("/", staff, inventoryHandler.Create)
	inventario.Put("/:id", staff, inventoryHandler.Update)

	// Cuentas por cobrar
	receivableHandler := NewReceivableHandler(deps.ReceivableUC)
	cartera := protected.Group("/cuentas-por-cobrar")
	cartera.Get("/", receivableHandler.ListPlans)
	cartera.Get("/kpis", receivableHandler.KPIs)
	cartera.Post("/", staff, receivableHandler.CreatePlan)
	cartera.Post("/:id/pagos", staff, receivableHandler.RegisterPayment)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard := protected.Group("/dashboard")
	dashboard.Get("/kpis", dashboardHandler.KPIs)
	dashboard.Get("/ventas-7-dias", dashboardHandler.SalesLast7Days)
	dashboard.Get("/top-tratamientos", dashboardHandler.TopTreatments)

	// Asistente
	chatHandler := NewChatHandler(deps.ChatUC, deps.Log)
	protected.Post("/chat", chatHandler.Message)
}
