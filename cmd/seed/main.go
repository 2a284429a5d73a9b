// seed carga datos de demostración: usuario admin, configuración del
// consultorio, pacientes, insumos con su entrada inicial, ventas y un plan de
// pagos.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/intelguy8000/odontologia/internal/application/dto"
	"github.com/intelguy8000/odontologia/internal/application/inventory"
	"github.com/intelguy8000/odontologia/internal/application/receivables"
	"github.com/intelguy8000/odontologia/internal/application/sales"
	"github.com/intelguy8000/odontologia/internal/domain/entity"
	"github.com/intelguy8000/odontologia/internal/infrastructure/postgres"
	"github.com/intelguy8000/odontologia/pkg/config"
	"github.com/intelguy8000/odontologia/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	configRepo := postgres.NewClinicConfigRepository(pool)
	patientRepo := postgres.NewPatientRepository(pool)
	itemRepo := postgres.NewInventoryItemRepository(pool)
	movRepo := postgres.NewInventoryMovementRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	planRepo := postgres.NewPaymentPlanRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	inventoryUC := inventory.NewUseCase(itemRepo, movRepo)
	movementUC := inventory.NewRegisterMovementUseCase(txRunner)
	createSaleUC := sales.NewCreateSaleUseCase(txRunner, patientRepo, saleRepo)
	receivableUC := receivables.NewUseCase(txRunner, planRepo, patientRepo)

	now := time.Now()

	// Usuario admin
	hash, _ := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	admin := &entity.User{
		ID:           uuid.New().String(),
		Email:        "admin@crdental.co",
		PasswordHash: string(hash),
		Name:         "Administrador",
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Warn().Err(err).Msg("usuario admin ya existe, se omite")
	}

	// Configuración del consultorio
	if err := configRepo.Upsert(ctx, &entity.ClinicConfig{
		ID:      entity.ClinicConfigID,
		Name:    "CR Dental Studio",
		Address: "Cra 43A #1-50, Medellín",
		Phone:   "+57 300 123 4567",
		Email:   "contacto@crdental.co",
	}); err != nil {
		log.Fatal().Err(err).Msg("configuración del consultorio")
	}

	// Pacientes
	patientDocs := []struct {
		document, name, phone, eps string
	}{
		{"1020304050", "María Fernanda Ríos", "3001234567", "Sura"},
		{"1098765432", "Carlos Andrés Gómez", "3109876543", "Nueva EPS"},
		{"43567890", "Luisa Marín", "3155554433", "Sanitas"},
	}
	patientIDs := make([]string, 0, len(patientDocs))
	for _, row := range patientDocs {
		p := &entity.Patient{
			ID:        uuid.New().String(),
			Document:  row.document,
			FullName:  row.name,
			Phone:     row.phone,
			EPS:       row.eps,
			CreatedAt: now,
		}
		if err := patientRepo.Create(ctx, p); err != nil {
			log.Fatal().Err(err).Str("document", row.document).Msg("crear paciente")
		}
		patientIDs = append(patientIDs, p.ID)
	}

	// Insumos con entrada inicial (queda en el libro de movimientos)
	items := []struct {
		code, name, category, unit string
		initial, min               int
		cost                       string
	}{
		{"ANEST-01", "Anestesia lidocaína 2%", "Anestésicos", "cartucho", 50, 20, "3500"},
		{"GUANT-01", "Guantes de nitrilo M", "Bioseguridad", "caja", 12, 5, "28000"},
		{"RESIN-A2", "Resina compuesta A2", "Restauración", "jeringa", 8, 4, "95000"},
		{"AGUJA-30", "Aguja dental 30G", "Desechables", "unidad", 3, 10, "900"},
	}
	itemIDs := make([]string, 0, len(items))
	for _, row := range items {
		created, err := inventoryUC.CreateItem(ctx, dto.CreateInventoryItemRequest{
			Code:     row.code,
			Name:     row.name,
			Category: row.category,
			MinStock: row.min,
			Unit:     row.unit,
			AvgCost:  decimal.RequireFromString(row.cost),
		})
		if err != nil {
			log.Fatal().Err(err).Str("code", row.code).Msg("crear insumo")
		}
		if _, err := movementUC.RegisterMovement(ctx, dto.RegisterMovementRequest{
			InventoryID: created.ID,
			Type:        entity.MovementTypeEntrada,
			Quantity:    row.initial,
			Reason:      "Carga inicial",
		}); err != nil {
			log.Fatal().Err(err).Str("code", row.code).Msg("entrada inicial")
		}
		itemIDs = append(itemIDs, created.ID)
	}

	// Ventas (descuentan inventario)
	saleRows := []struct {
		patient   int
		treatment string
		amount    int64
		items     []dto.SaleItemUsed
	}{
		{0, "Limpieza dental", 160000, []dto.SaleItemUsed{{InventoryID: itemIDs[1], QuantityUsed: 1}}},
		{1, "Resina", 150000, []dto.SaleItemUsed{
			{InventoryID: itemIDs[0], QuantityUsed: 1},
			{InventoryID: itemIDs[2], QuantityUsed: 1},
		}},
		{0, "Limpieza dental", 160000, nil},
	}
	for _, row := range saleRows {
		if _, err := createSaleUC.CreateSale(ctx, dto.CreateSaleRequest{
			PatientID: patientIDs[row.patient],
			Treatment: row.treatment,
			Amount:    row.amount,
			ItemsUsed: row.items,
		}); err != nil {
			log.Fatal().Err(err).Str("treatment", row.treatment).Msg("crear venta")
		}
	}

	// Plan de pagos: ortodoncia con cuota inicial
	if _, err := receivableUC.CreatePlan(ctx, dto.CreatePaymentPlanRequest{
		PatientID:    patientIDs[2],
		Treatment:    "Ortodoncia",
		TotalAmount:  7480000,
		DownPayment:  1480000,
		Installments: 6,
		FirstDueDate: now.AddDate(0, 1, 0).Format("2006-01-02"),
	}); err != nil {
		log.Fatal().Err(err).Msg("crear plan de pagos")
	}

	log.Info().
		Int("pacientes", len(patientIDs)).
		Int("insumos", len(itemIDs)).
		Int("ventas", len(saleRows)).
		Msg("datos de demostración cargados")
}
