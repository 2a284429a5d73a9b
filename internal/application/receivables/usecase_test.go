package receivables_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intelguy8000/odontologia/internal/application/dto"
	"github.com/intelguy8000/odontologia/internal/application/receivables"
	"github.com/intelguy8000/odontologia/internal/domain"
	"github.com/intelguy8000/odontologia/internal/domain/entity"
	"github.com/intelguy8000/odontologia/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type planStore struct {
	patients     map[string]*entity.Patient
	plans        map[string]*entity.PaymentPlan
	installments []*entity.PaymentInstallment
}

func newPlanStore() *planStore {
	return &planStore{
		patients: map[string]*entity.Patient{
			"p1": {ID: "p1", Document: "43567890", FullName: "Luisa Marín"},
		},
		plans: make(map[string]*entity.PaymentPlan),
	}
}

// PaymentPlanRepository

func (s *planStore) Create(ctx context.Context, plan *entity.PaymentPlan) error {
	cp := *plan
	s.plans[plan.ID] = &cp
	return nil
}

func (s *planStore) CreateInstallment(ctx context.Context, inst *entity.PaymentInstallment) error {
	cp := *inst
	s.installments = append(s.installments, &cp)
	return nil
}

func (s *planStore) GetByID(ctx context.Context, id string) (*entity.PaymentPlan, error) {
	return s.GetForUpdate(ctx, id)
}

func (s *planStore) GetForUpdate(ctx context.Context, id string) (*entity.PaymentPlan, error) {
	plan, ok := s.plans[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *plan
	return &cp, nil
}

func (s *planStore) Update(ctx context.Context, plan *entity.PaymentPlan) error {
	if _, ok := s.plans[plan.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *plan
	s.plans[plan.ID] = &cp
	return nil
}

func (s *planStore) ListActive(ctx context.Context) ([]*repository.PlanWithDetail, error) {
	now := time.Now()
	out := make([]*repository.PlanWithDetail, 0, len(s.plans))
	for _, plan := range s.plans {
		if plan.Status != entity.PlanStatusActive {
			continue
		}
		row := &repository.PlanWithDetail{Plan: *plan, Patient: *s.patients[plan.PatientID]}
		for _, inst := range s.installments {
			if inst.PlanID != plan.ID {
				continue
			}
			if inst.Status == entity.InstallmentPaid {
				row.PaidCount++
			} else if inst.DueDate.Before(now) {
				row.OverdueCount++
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *planStore) NextUnpaidInstallment(ctx context.Context, planID string) (*entity.PaymentInstallment, error) {
	var unpaid []*entity.PaymentInstallment
	for _, inst := range s.installments {
		if inst.PlanID == planID && inst.Status != entity.InstallmentPaid {
			unpaid = append(unpaid, inst)
		}
	}
	if len(unpaid) == 0 {
		return nil, nil
	}
	sort.Slice(unpaid, func(i, j int) bool { return unpaid[i].Number < unpaid[j].Number })
	cp := *unpaid[0]
	return &cp, nil
}

func (s *planStore) MarkInstallmentPaid(ctx context.Context, installmentID string, paidAt time.Time) error {
	for _, inst := range s.installments {
		if inst.ID == installmentID {
			inst.Status = entity.InstallmentPaid
			inst.PaidAt = &paidAt
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *planStore) SumActiveRemaining(ctx context.Context) (int64, int, error) {
	var total int64
	var count int
	for _, plan := range s.plans {
		if plan.Status == entity.PlanStatusActive {
			total += plan.RemainingAmount
			count++
		}
	}
	return total, count, nil
}

func (s *planStore) OverdueInstallments(ctx context.Context) (repository.InstallmentAggregate, error) {
	return s.aggregate(func(inst *entity.PaymentInstallment) bool {
		return inst.Status != entity.InstallmentPaid && inst.DueDate.Before(time.Now())
	}), nil
}

func (s *planStore) InstallmentsDueBetween(ctx context.Context, from, to time.Time) (repository.InstallmentAggregate, error) {
	return s.aggregate(func(inst *entity.PaymentInstallment) bool {
		return inst.Status != entity.InstallmentPaid && !inst.DueDate.Before(from) && inst.DueDate.Before(to)
	}), nil
}

func (s *planStore) aggregate(match func(*entity.PaymentInstallment) bool) repository.InstallmentAggregate {
	var agg repository.InstallmentAggregate
	for _, inst := range s.installments {
		if match(inst) {
			agg.Amount += inst.Amount
			agg.Count++
		}
	}
	return agg
}

// PatientRepository (solo lectura en estos casos de uso)

type planPatientRepo struct{ store *planStore }

func (r *planPatientRepo) Create(ctx context.Context, p *entity.Patient) error { return nil }
func (r *planPatientRepo) GetByID(ctx context.Context, id string) (*entity.Patient, error) {
	p, ok := r.store.patients[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}
func (r *planPatientRepo) List(ctx context.Context) ([]*entity.Patient, error) { return nil, nil }
func (r *planPatientRepo) Update(ctx context.Context, p *entity.Patient) error { return nil }
func (r *planPatientRepo) Delete(ctx context.Context, id string) error         { return nil }
func (r *planPatientRepo) HasSalesOrPlans(ctx context.Context, id string) (bool, error) {
	return false, nil
}

type planTxRunner struct{ store *planStore }

func (r *planTxRunner) RunPlan(ctx context.Context, fn func(planRepo repository.PaymentPlanRepository) error) error {
	return fn(r.store)
}

func setupPlanTest() (*receivables.UseCase, *planStore) {
	store := newPlanStore()
	uc := receivables.NewUseCase(&planTxRunner{store: store}, store, &planPatientRepo{store: store})
	return uc, store
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CreatePlan
// ──────────────────────────────────────────────────────────────────────────────

func TestCreatePlan_GeneraCronogramaMensual(t *testing.T) {
	uc, store := setupPlanTest()

	plan, err := uc.CreatePlan(context.Background(), dto.CreatePaymentPlanRequest{
		PatientID:    "p1",
		Treatment:    "Ortodoncia",
		TotalAmount:  7480000,
		DownPayment:  1480000,
		Installments: 6,
		FirstDueDate: "2026-10-01",
	})
	require.NoError(t, err)

	// Financiado: 6.000.000 en 6 cuotas de 1.000.000
	assert.Equal(t, int64(1480000), plan.PaidAmount, "la cuota inicial cuenta como pagada")
	assert.Equal(t, int64(6000000), plan.RemainingAmount)
	assert.Equal(t, int64(1000000), plan.InstallmentAmount)

	require.Len(t, store.installments, 6)
	var scheduled int64
	for i, inst := range store.installments {
		assert.Equal(t, i+1, inst.Number)
		assert.Equal(t, entity.InstallmentPending, inst.Status)
		// Vencimientos mensuales desde la primera fecha
		expected := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC).AddDate(0, i, 0)
		assert.Equal(t, expected, inst.DueDate)
		scheduled += inst.Amount
	}
	assert.Equal(t, int64(6000000), scheduled, "las cuotas deben sumar el monto financiado")
}

func TestCreatePlan_UltimaCuotaAbsorbeRedondeo(t *testing.T) {
	uc, store := setupPlanTest()

	// Financiado: 1.000.000 en 3 cuotas → 333.334 ×2 + 333.332
	_, err := uc.CreatePlan(context.Background(), dto.CreatePaymentPlanRequest{
		PatientID:    "p1",
		Treatment:    "Implante",
		TotalAmount:  1000000,
		Installments: 3,
		FirstDueDate: "2026-09-15",
	})
	require.NoError(t, err)

	require.Len(t, store.installments, 3)
	assert.Equal(t, int64(333334), store.installments[0].Amount)
	assert.Equal(t, int64(333334), store.installments[1].Amount)
	assert.Equal(t, int64(333332), store.installments[2].Amount, "la última cuota cierra el plan exacto")
}

func TestCreatePlan_CuotaFijadaPorElCliente(t *testing.T) {
	uc, store := setupPlanTest()

	// Financiado: 1.000.000; cuotas de 400.000 → 400.000 + 400.000 + 200.000
	_, err := uc.CreatePlan(context.Background(), dto.CreatePaymentPlanRequest{
		PatientID:         "p1",
		Treatment:         "Implante",
		TotalAmount:       1000000,
		Installments:      3,
		InstallmentAmount: 400000,
		FirstDueDate:      "2026-09-15",
	})
	require.NoError(t, err)

	require.Len(t, store.installments, 3)
	assert.Equal(t, int64(400000), store.installments[0].Amount)
	assert.Equal(t, int64(400000), store.installments[1].Amount)
	assert.Equal(t, int64(200000), store.installments[2].Amount)
}

func TestCreatePlan_CuotaFijadaDemasiadoGrande(t *testing.T) {
	uc, store := setupPlanTest()

	// Financiado: 1.000.000; 3 cuotas de 600.000 dejarían la última en -200.000
	_, err := uc.CreatePlan(context.Background(), dto.CreatePaymentPlanRequest{
		PatientID:         "p1",
		Treatment:         "Implante",
		TotalAmount:       1000000,
		Installments:      3,
		InstallmentAmount: 600000,
		FirstDueDate:      "2026-09-15",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "ninguna cuota puede quedar negativa")

	// En el límite exacto la última cuota quedaría en 0: también se rechaza
	_, err = uc.CreatePlan(context.Background(), dto.CreatePaymentPlanRequest{
		PatientID:         "p1",
		Treatment:         "Implante",
		TotalAmount:       1000000,
		Installments:      3,
		InstallmentAmount: 500000,
		FirstDueDate:      "2026-09-15",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, store.plans)
	assert.Empty(t, store.installments)
}

func TestCreatePlan_Validaciones(t *testing.T) {
	uc, _ := setupPlanTest()
	ctx := context.Background()

	cases := []struct {
		name string
		in   dto.CreatePaymentPlanRequest
	}{
		{"sin paciente", dto.CreatePaymentPlanRequest{Treatment: "x", TotalAmount: 100, Installments: 1, FirstDueDate: "2026-10-01"}},
		{"monto cero", dto.CreatePaymentPlanRequest{PatientID: "p1", Treatment: "x", Installments: 1, FirstDueDate: "2026-10-01"}},
		{"inicial mayor al total", dto.CreatePaymentPlanRequest{PatientID: "p1", Treatment: "x", TotalAmount: 100, DownPayment: 200, Installments: 1, FirstDueDate: "2026-10-01"}},
		{"sin cuotas", dto.CreatePaymentPlanRequest{PatientID: "p1", Treatment: "x", TotalAmount: 100, FirstDueDate: "2026-10-01"}},
		{"fecha inválida", dto.CreatePaymentPlanRequest{PatientID: "p1", Treatment: "x", TotalAmount: 100, Installments: 1, FirstDueDate: "octubre"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreatePlan(ctx, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RegisterPayment
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterPayment_MantieneInvarianteYCompleta(t *testing.T) {
	uc, store := setupPlanTest()

	plan, err := uc.CreatePlan(context.Background(), dto.CreatePaymentPlanRequest{
		PatientID:    "p1",
		Treatment:    "Ortodoncia",
		TotalAmount:  500000,
		DownPayment:  200000,
		Installments: 2,
		FirstDueDate: "2026-09-01",
	})
	require.NoError(t, err)

	// Primer pago: 150.000
	resp, err := uc.RegisterPayment(context.Background(), plan.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.InstallmentPaid)
	assert.Equal(t, int64(350000), resp.PaidAmount)
	assert.Equal(t, int64(150000), resp.RemainingAmount)
	assert.False(t, resp.PlanCompleted)

	stored := store.plans[plan.ID]
	assert.Equal(t, stored.TotalAmount-stored.PaidAmount, stored.RemainingAmount,
		"restante = total - pagado siempre")
	assert.Equal(t, store.installments[1].DueDate, stored.NextDueDate,
		"el próximo vencimiento avanza a la siguiente cuota")

	// Segundo pago completa el plan
	resp, err = uc.RegisterPayment(context.Background(), plan.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.InstallmentPaid)
	assert.Equal(t, int64(500000), resp.PaidAmount)
	assert.Equal(t, int64(0), resp.RemainingAmount)
	assert.True(t, resp.PlanCompleted)
	assert.Equal(t, entity.PlanStatusCompleted, store.plans[plan.ID].Status)
}

func TestRegisterPayment_PlanCompletado_Conflicto(t *testing.T) {
	uc, _ := setupPlanTest()

	plan, err := uc.CreatePlan(context.Background(), dto.CreatePaymentPlanRequest{
		PatientID:    "p1",
		Treatment:    "Limpieza dental",
		TotalAmount:  100000,
		Installments: 1,
		FirstDueDate: "2026-09-01",
	})
	require.NoError(t, err)

	_, err = uc.RegisterPayment(context.Background(), plan.ID)
	require.NoError(t, err)

	_, err = uc.RegisterPayment(context.Background(), plan.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "un plan completado no acepta más pagos")
}

func TestRegisterPayment_PlanInexistente(t *testing.T) {
	uc, _ := setupPlanTest()

	_, err := uc.RegisterPayment(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests KPIs
// ──────────────────────────────────────────────────────────────────────────────

func TestGetKPIs_AgregaCartera(t *testing.T) {
	uc, store := setupPlanTest()
	now := time.Now()

	store.plans["a"] = &entity.PaymentPlan{
		ID: "a", PatientID: "p1", Status: entity.PlanStatusActive, RemainingAmount: 3000000,
	}
	store.plans["b"] = &entity.PaymentPlan{
		ID: "b", PatientID: "p1", Status: entity.PlanStatusActive, RemainingAmount: 1500000,
	}
	store.plans["c"] = &entity.PaymentPlan{
		ID: "c", PatientID: "p1", Status: entity.PlanStatusCompleted, RemainingAmount: 0,
	}
	store.installments = []*entity.PaymentInstallment{
		{ID: "i1", PlanID: "a", Number: 1, Amount: 500000, DueDate: now.AddDate(0, 0, -10), Status: entity.InstallmentPending},
		{ID: "i2", PlanID: "a", Number: 2, Amount: 500000, DueDate: now.AddDate(0, 0, 3), Status: entity.InstallmentPending},
		{ID: "i3", PlanID: "b", Number: 1, Amount: 750000, DueDate: now.AddDate(0, 0, 20), Status: entity.InstallmentPending},
		{ID: "i4", PlanID: "b", Number: 2, Amount: 750000, DueDate: now.AddDate(0, 0, -1), Status: entity.InstallmentPaid},
	}

	kpis, err := uc.GetKPIs(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(4500000), kpis.TotalReceivable, "solo planes activos")
	assert.Equal(t, 2, kpis.ActivePlansCount)
	assert.Equal(t, int64(500000), kpis.OverdueAmount, "solo cuotas no pagadas ya vencidas")
	assert.Equal(t, 1, kpis.OverdueCount)
	assert.Equal(t, int64(500000), kpis.DueThisWeekAmount)
	assert.Equal(t, 1, kpis.DueThisWeekCount)
}

func TestListPlans_DerivaEstado(t *testing.T) {
	uc, store := setupPlanTest()
	now := time.Now()

	store.plans["a"] = &entity.PaymentPlan{
		ID: "a", PatientID: "p1", Treatment: "Ortodoncia",
		Installments: 2, Status: entity.PlanStatusActive,
	}
	store.installments = []*entity.PaymentInstallment{
		{ID: "i1", PlanID: "a", Number: 1, Amount: 100, DueDate: now.AddDate(0, 0, -5), Status: entity.InstallmentPending},
		{ID: "i2", PlanID: "a", Number: 2, Amount: 100, DueDate: now.AddDate(0, 0, 25), Status: entity.InstallmentPending},
	}

	plans, err := uc.ListPlans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "vencida", plans[0].Status, "una cuota vencida marca el plan")

	// Al pagar la cuota vencida el plan vuelve a estar al día
	_, err = uc.RegisterPayment(context.Background(), "a")
	require.NoError(t, err)

	plans, err = uc.ListPlans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "al día", plans[0].Status)
	assert.Equal(t, 1, plans[0].PaidInstallments)
}
