package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intelguy8000/odontologia/internal/application/analytics"
	"github.com/intelguy8000/odontologia/internal/domain/repository"
)

// fakeAnalyticsRepo devuelve resultados preparados y registra los argumentos
// con los que fue llamado.
type fakeAnalyticsRepo struct {
	salesTotal  int64
	salesCount  int
	activeCount int
	dailySales  []repository.DailySalesResult
	topResults  []repository.TreatmentSalesResult
	err         error
	salesFrom   time.Time
	activeSince time.Time
	topFrom     time.Time
	topLimit    int
	dailyFrom   time.Time
}

func (f *fakeAnalyticsRepo) GetSalesTotals(ctx context.Context, from time.Time) (int64, int, error) {
	f.salesFrom = from
	return f.salesTotal, f.salesCount, f.err
}

func (f *fakeAnalyticsRepo) CountActivePatients(ctx context.Context, since time.Time) (int, error) {
	f.activeSince = since
	return f.activeCount, f.err
}

func (f *fakeAnalyticsRepo) GetDailySales(ctx context.Context, from time.Time) ([]repository.DailySalesResult, error) {
	f.dailyFrom = from
	return f.dailySales, f.err
}

func (f *fakeAnalyticsRepo) GetTopTreatments(ctx context.Context, from time.Time, limit int) ([]repository.TreatmentSalesResult, error) {
	f.topFrom = from
	f.topLimit = limit
	if limit < len(f.topResults) {
		return f.topResults[:limit], f.err
	}
	return f.topResults, f.err
}

func TestGetKPIs_GananciaIgualaVentasSinGastos(t *testing.T) {
	repo := &fakeAnalyticsRepo{salesTotal: 7480000, salesCount: 12, activeCount: 34}
	uc := analytics.NewDashboardUseCase(repo)

	kpis, err := uc.GetKPIs(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(7480000), kpis.SalesMonth)
	assert.Equal(t, 12, kpis.SalesCount)
	assert.Equal(t, 34, kpis.ActiveClients)
	assert.Equal(t, int64(0), kpis.Expenses)
	assert.Equal(t, kpis.SalesMonth, kpis.Profit, "sin módulo de gastos, ganancia = ventas")

	// Ventana del mes en curso y ventana de 90 días para pacientes activos
	now := time.Now()
	assert.Equal(t, time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), repo.salesFrom)
	assert.WithinDuration(t, now.AddDate(0, 0, -90), repo.activeSince, time.Minute)
}

func TestGetKPIs_PropagaErrores(t *testing.T) {
	repo := &fakeAnalyticsRepo{err: errors.New("conexión rechazada")}
	uc := analytics.NewDashboardUseCase(repo)

	_, err := uc.GetKPIs(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conexión rechazada")
}

func TestGetSalesLast7Days_RellenaDiasSinVentas(t *testing.T) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	repo := &fakeAnalyticsRepo{dailySales: []repository.DailySalesResult{
		{Day: today, Amount: 320000},
		{Day: today.AddDate(0, 0, -3), Amount: 150000},
	}}
	uc := analytics.NewDashboardUseCase(repo)

	series, err := uc.GetSalesLast7Days(context.Background())
	require.NoError(t, err)
	require.Len(t, series, 7, "siempre 7 puntos, hoy incluido")

	// Primer punto: hace 6 días; último punto: hoy
	assert.Equal(t, today.AddDate(0, 0, -6).Format("2006-01-02"), series[0].Date)
	assert.Equal(t, today.Format("2006-01-02"), series[6].Date)

	var nonZero int
	for _, p := range series {
		switch p.Date {
		case today.Format("2006-01-02"):
			assert.Equal(t, int64(320000), p.Amount)
			nonZero++
		case today.AddDate(0, 0, -3).Format("2006-01-02"):
			assert.Equal(t, int64(150000), p.Amount)
			nonZero++
		default:
			assert.Equal(t, int64(0), p.Amount, "día sin ventas debe ir en 0")
		}
	}
	assert.Equal(t, 2, nonZero)
}

func TestGetTopTreatments_RespetaLimite(t *testing.T) {
	repo := &fakeAnalyticsRepo{topResults: []repository.TreatmentSalesResult{
		{Treatment: "Limpieza dental", Count: 2, Revenue: 320000},
		{Treatment: "Resina", Count: 1, Revenue: 150000},
	}}
	uc := analytics.NewDashboardUseCase(repo)

	top, err := uc.GetTopTreatments(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Limpieza dental", top[0].Treatment, "mayor ingreso primero")
	assert.Equal(t, int64(320000), top[0].Revenue)
	assert.Equal(t, 1, repo.topLimit)
}

func TestGetTopTreatments_LimitePorDefecto(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	uc := analytics.NewDashboardUseCase(repo)

	top, err := uc.GetTopTreatments(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, top)
	assert.Equal(t, 5, repo.topLimit, "limit <= 0 usa el tope por defecto")
}

func TestMonthlySales_ResumenParaElChat(t *testing.T) {
	repo := &fakeAnalyticsRepo{salesTotal: 1200000, salesCount: 4}
	uc := analytics.NewDashboardUseCase(repo)

	summary, err := uc.MonthlySales(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1200000), summary.Total)
	assert.Equal(t, 4, summary.Count)
}
