package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intelguy8000/odontologia/internal/application/dto"
	"github.com/intelguy8000/odontologia/internal/application/sales"
	"github.com/intelguy8000/odontologia/internal/domain"
	"github.com/intelguy8000/odontologia/internal/domain/entity"
	"github.com/intelguy8000/odontologia/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// saleStore implementa en memoria los repos que participan en la transacción
// de venta. El fakeTxRunner toma un snapshot antes de ejecutar la función y lo
// restaura si esta falla, emulando el Rollback de la BD.
type saleStore struct {
	patients  map[string]*entity.Patient
	items     map[string]*entity.InventoryItem
	sales     map[string]*entity.Sale
	saleItems []*entity.SaleInventoryItem
	movements []*entity.InventoryMovement
}

func newSaleStore() *saleStore {
	return &saleStore{
		patients: make(map[string]*entity.Patient),
		items:    make(map[string]*entity.InventoryItem),
		sales:    make(map[string]*entity.Sale),
	}
}

func (s *saleStore) snapshot() *saleStore {
	cp := newSaleStore()
	for k, v := range s.patients {
		p := *v
		cp.patients[k] = &p
	}
	for k, v := range s.items {
		it := *v
		cp.items[k] = &it
	}
	for k, v := range s.sales {
		sale := *v
		cp.sales[k] = &sale
	}
	cp.saleItems = append(cp.saleItems, s.saleItems...)
	cp.movements = append(cp.movements, s.movements...)
	return cp
}

// SaleRepository

func (s *saleStore) Create(ctx context.Context, sale *entity.Sale) error {
	s.sales[sale.ID] = sale
	return nil
}

func (s *saleStore) CreateItem(ctx context.Context, item *entity.SaleInventoryItem) error {
	s.saleItems = append(s.saleItems, item)
	return nil
}

func (s *saleStore) GetByID(ctx context.Context, id string) (*repository.SaleWithDetail, error) {
	sale, ok := s.sales[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	detail := &repository.SaleWithDetail{Sale: *sale}
	if p, ok := s.patients[sale.PatientID]; ok {
		detail.Patient = *p
	}
	for _, join := range s.saleItems {
		if join.SaleID != id {
			continue
		}
		detail.Items = append(detail.Items, repository.SaleItemDetail{
			Join: *join,
			Item: *s.items[join.InventoryID],
		})
	}
	return detail, nil
}

func (s *saleStore) List(ctx context.Context, filters repository.SaleFilters) ([]*repository.SaleWithDetail, error) {
	out := make([]*repository.SaleWithDetail, 0, len(s.sales))
	for id := range s.sales {
		d, _ := s.GetByID(ctx, id)
		out = append(out, d)
	}
	return out, nil
}

func (s *saleStore) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	sale, ok := s.sales[id]
	if !ok {
		return false, nil
	}
	sale.Status = status
	return true, nil
}

// InventoryItemRepository (solo lo que usa la transacción de venta)

type saleItemRepo struct{ store *saleStore }

func (r *saleItemRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	r.store.items[item.ID] = item
	return nil
}

func (r *saleItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.GetForUpdate(ctx, id)
}

func (r *saleItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	item, ok := r.store.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *item
	return &cp, nil
}

func (r *saleItemRepo) List(ctx context.Context) ([]*entity.InventoryItem, error) {
	return nil, nil
}

func (r *saleItemRepo) ListBelowMin(ctx context.Context) ([]*entity.InventoryItem, error) {
	return nil, nil
}

func (r *saleItemRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	return nil
}

func (r *saleItemRepo) UpdateStock(ctx context.Context, id string, newStock int) error {
	item, ok := r.store.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	item.CurrentStock = newStock
	return nil
}

// InventoryMovementRepository

type saleMovRepo struct{ store *saleStore }

func (r *saleMovRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	r.store.movements = append(r.store.movements, m)
	return nil
}

func (r *saleMovRepo) ListByItem(ctx context.Context, inventoryID string, limit int) ([]*entity.InventoryMovement, error) {
	return nil, nil
}

// PatientRepository

type salePatientRepo struct{ store *saleStore }

func (r *salePatientRepo) Create(ctx context.Context, p *entity.Patient) error {
	r.store.patients[p.ID] = p
	return nil
}

func (r *salePatientRepo) GetByID(ctx context.Context, id string) (*entity.Patient, error) {
	p, ok := r.store.patients[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (r *salePatientRepo) List(ctx context.Context) ([]*entity.Patient, error) { return nil, nil }
func (r *salePatientRepo) Update(ctx context.Context, p *entity.Patient) error { return nil }
func (r *salePatientRepo) Delete(ctx context.Context, id string) error         { return nil }
func (r *salePatientRepo) HasSalesOrPlans(ctx context.Context, id string) (bool, error) {
	return false, nil
}

// fakeTxRunner emula Begin/Commit/Rollback restaurando el snapshot si la
// función devuelve error.
type fakeTxRunner struct{ store *saleStore }

func (r *fakeTxRunner) RunSale(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	itemRepo repository.InventoryItemRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	before := r.store.snapshot()
	err := fn(r.store, &saleItemRepo{store: r.store}, &saleMovRepo{store: r.store})
	if err != nil {
		*r.store = *before
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func setupSaleTest() (*sales.CreateSaleUseCase, *saleStore) {
	store := newSaleStore()
	store.patients["p1"] = &entity.Patient{ID: "p1", Document: "1020304050", FullName: "María Fernanda Ríos"}
	store.items["anest"] = &entity.InventoryItem{
		ID: "anest", Code: "ANEST-01", Name: "Anestesia lidocaína 2%",
		CurrentStock: 45, MinStock: 20, Unit: "cartucho",
		AvgCost: decimal.NewFromInt(3500),
	}
	store.items["guantes"] = &entity.InventoryItem{
		ID: "guantes", Code: "GUANT-01", Name: "Guantes de nitrilo M",
		CurrentStock: 2, MinStock: 5, Unit: "caja",
		AvgCost: decimal.NewFromInt(28000),
	}
	uc := sales.NewCreateSaleUseCase(&fakeTxRunner{store: store}, &salePatientRepo{store: store}, store)
	return uc, store
}

func TestCreateSale_DescuentaInventarioYRegistraMovimiento(t *testing.T) {
	uc, store := setupSaleTest()

	resp, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		PatientID: "p1",
		Treatment: "Resina",
		Amount:    150000,
		ItemsUsed: []dto.SaleItemUsed{{InventoryID: "anest", QuantityUsed: 3}},
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, "Resina", resp.Treatment)
	assert.Equal(t, int64(150000), resp.Amount)
	assert.Equal(t, entity.PaymentMethodEfectivo, resp.PaymentMethod, "método por defecto")
	assert.Equal(t, entity.SaleStatusCompletada, resp.Status, "estado por defecto")
	assert.Equal(t, "María Fernanda Ríos", resp.Patient.FullName)

	// Stock 45 - 3 = 42
	assert.Equal(t, 42, store.items["anest"].CurrentStock)

	// Un único movimiento de salida, con referencia a la venta
	require.Len(t, store.movements, 1)
	mov := store.movements[0]
	assert.Equal(t, entity.MovementTypeSalida, mov.Type)
	assert.Equal(t, 3, mov.Quantity)
	assert.Equal(t, "Venta: Resina", mov.Reason)
	assert.Equal(t, resp.ID, mov.ReferenceID)

	require.Len(t, resp.ItemsUsed, 1)
	assert.Equal(t, "ANEST-01", resp.ItemsUsed[0].Code)
	assert.Equal(t, 3, resp.ItemsUsed[0].QuantityUsed)
}

func TestCreateSale_StockInsuficiente_RevierteTodo(t *testing.T) {
	uc, store := setupSaleTest()

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		PatientID: "p1",
		Treatment: "Limpieza dental",
		Amount:    160000,
		ItemsUsed: []dto.SaleItemUsed{
			{InventoryID: "anest", QuantityUsed: 1},
			{InventoryID: "guantes", QuantityUsed: 5}, // solo hay 2
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Rollback completo: ni venta, ni descuento del primer insumo, ni movimientos
	assert.Empty(t, store.sales)
	assert.Empty(t, store.saleItems)
	assert.Empty(t, store.movements)
	assert.Equal(t, 45, store.items["anest"].CurrentStock, "el descuento del primer insumo debe revertirse")
	assert.Equal(t, 2, store.items["guantes"].CurrentStock)
}

func TestCreateSale_InsumoInexistente_RevierteTodo(t *testing.T) {
	uc, store := setupSaleTest()

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		PatientID: "p1",
		Treatment: "Resina",
		Amount:    150000,
		ItemsUsed: []dto.SaleItemUsed{
			{InventoryID: "anest", QuantityUsed: 2},
			{InventoryID: "no-existe", QuantityUsed: 1},
		},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)

	assert.Empty(t, store.sales)
	assert.Equal(t, 45, store.items["anest"].CurrentStock)
}

func TestCreateSale_PacienteInexistente(t *testing.T) {
	uc, store := setupSaleTest()

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		PatientID: "fantasma",
		Treatment: "Resina",
		Amount:    150000,
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.sales)
}

func TestCreateSale_Validaciones(t *testing.T) {
	uc, _ := setupSaleTest()
	ctx := context.Background()

	cases := []struct {
		name string
		in   dto.CreateSaleRequest
	}{
		{"sin paciente", dto.CreateSaleRequest{Treatment: "Resina", Amount: 1000}},
		{"sin tratamiento", dto.CreateSaleRequest{PatientID: "p1", Amount: 1000}},
		{"monto cero", dto.CreateSaleRequest{PatientID: "p1", Treatment: "Resina"}},
		{"método inválido", dto.CreateSaleRequest{PatientID: "p1", Treatment: "Resina", Amount: 1000, PaymentMethod: "cheque"}},
		{"estado inválido", dto.CreateSaleRequest{PatientID: "p1", Treatment: "Resina", Amount: 1000, Status: "anulada"}},
		{"cantidad de insumo cero", dto.CreateSaleRequest{
			PatientID: "p1", Treatment: "Resina", Amount: 1000,
			ItemsUsed: []dto.SaleItemUsed{{InventoryID: "anest"}},
		}},
		{"fecha inválida", dto.CreateSaleRequest{PatientID: "p1", Treatment: "Resina", Amount: 1000, Date: "ayer"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateSale(ctx, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCreateSale_VentaRetroactiva_MovimientoConFechaDeLaVenta(t *testing.T) {
	uc, store := setupSaleTest()

	resp, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Date:      "2026-08-15",
		PatientID: "p1",
		Treatment: "Resina",
		Amount:    150000,
		ItemsUsed: []dto.SaleItemUsed{{InventoryID: "anest", QuantityUsed: 2}},
	})
	require.NoError(t, err)

	saleDate := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, saleDate, resp.Date)

	// La salida del libro cuadra con la fecha de la venta, no con la de registro
	require.Len(t, store.movements, 1)
	assert.Equal(t, saleDate, store.movements[0].Date)
}

func TestCreateSale_SinInsumos_NoTocaInventario(t *testing.T) {
	uc, store := setupSaleTest()

	resp, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		PatientID:     "p1",
		Treatment:     "Consulta",
		Amount:        50000,
		PaymentMethod: entity.PaymentMethodNequi,
		Date:          "2026-08-15",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentMethodNequi, resp.PaymentMethod)
	assert.Empty(t, resp.ItemsUsed)
	assert.Empty(t, store.movements)
	assert.Equal(t, 45, store.items["anest"].CurrentStock)
}
