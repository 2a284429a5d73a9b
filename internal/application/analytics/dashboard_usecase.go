// Package analytics contiene los casos de uso de solo lectura del dashboard:
// KPIs del mes, serie de ventas de la última semana y tratamientos top.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/intelguy8000/odontologia/internal/application/dto"
	"github.com/intelguy8000/odontologia/internal/domain/repository"
)

const (
	defaultTopTreatments = 5  // número de tratamientos en el widget del dashboard
	activeClientDays     = 90 // ventana de "paciente activo"
	topTreatmentDays     = 30 // ventana de tratamientos top
	salesSeriesDays      = 7  // días de la serie de ventas
)

// DashboardUseCase genera el resumen financiero de la clínica.
//
// Fuente de datos: AnalyticsRepository (consultas read-only, solo ventas
// completadas). No accede directamente a la tabla de ventas; delega todo en
// el repositorio.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetKPIs construye los KPIs principales del dashboard.
//
// Dos llamadas en paralelo:
//  1. GetSalesTotals(mes en curso) → SalesMonth + SalesCount
//  2. CountActivePatients(90 días) → ActiveClients
//
// Expenses queda en 0 y Profit == SalesMonth mientras no exista el módulo de
// gastos.
func (uc *DashboardUseCase) GetKPIs(ctx context.Context) (*dto.DashboardKPIsDTO, error) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	activeSince := now.AddDate(0, 0, -activeClientDays)

	type totalsResult struct {
		total int64
		count int
		err   error
	}
	type activeResult struct {
		count int
		err   error
	}

	totalsCh := make(chan totalsResult, 1)
	activeCh := make(chan activeResult, 1)

	go func() {
		total, count, err := uc.analyticsRepo.GetSalesTotals(ctx, monthStart)
		totalsCh <- totalsResult{total, count, err}
	}()
	go func() {
		count, err := uc.analyticsRepo.CountActivePatients(ctx, activeSince)
		activeCh <- activeResult{count, err}
	}()

	totals := <-totalsCh
	active := <-activeCh

	if totals.err != nil {
		return nil, fmt.Errorf("dashboard: ventas del mes: %w", totals.err)
	}
	if active.err != nil {
		return nil, fmt.Errorf("dashboard: pacientes activos: %w", active.err)
	}

	return &dto.DashboardKPIsDTO{
		SalesMonth:    totals.total,
		SalesCount:    totals.count,
		Expenses:      0,
		Profit:        totals.total,
		ActiveClients: active.count,
	}, nil
}

// GetSalesLast7Days devuelve la serie diaria de los últimos 7 días (hoy
// incluido). Siempre devuelve exactamente 7 puntos: los días sin ventas van
// en 0.
func (uc *DashboardUseCase) GetSalesLast7Days(ctx context.Context) ([]dto.SalesDataPointDTO, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	from := todayStart.AddDate(0, 0, -(salesSeriesDays - 1))

	rows, err := uc.analyticsRepo.GetDailySales(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("dashboard: ventas por día: %w", err)
	}

	byDay := make(map[string]int64, len(rows))
	for _, row := range rows {
		byDay[row.Day.Format("2006-01-02")] += row.Amount
	}

	series := make([]dto.SalesDataPointDTO, 0, salesSeriesDays)
	for i := 0; i < salesSeriesDays; i++ {
		day := from.AddDate(0, 0, i).Format("2006-01-02")
		series = append(series, dto.SalesDataPointDTO{Date: day, Amount: byDay[day]})
	}
	return series, nil
}

// GetTopTreatments devuelve los tratamientos con más ingresos de los últimos
// 30 días, orden descendente por ingreso. limit <= 0 usa el tope por defecto.
func (uc *DashboardUseCase) GetTopTreatments(ctx context.Context, limit int) ([]dto.TopTreatmentDTO, error) {
	if limit <= 0 {
		limit = defaultTopTreatments
	}
	from := time.Now().AddDate(0, 0, -topTreatmentDays)

	rows, err := uc.analyticsRepo.GetTopTreatments(ctx, from, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard: tratamientos top: %w", err)
	}

	out := make([]dto.TopTreatmentDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.TopTreatmentDTO{
			Treatment: row.Treatment,
			Count:     row.Count,
			Revenue:   row.Revenue,
		})
	}
	return out, nil
}

// MonthlySales resume las ventas del mes en curso para el asistente.
func (uc *DashboardUseCase) MonthlySales(ctx context.Context) (dto.ChatSalesSummaryDTO, error) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	total, count, err := uc.analyticsRepo.GetSalesTotals(ctx, monthStart)
	if err != nil {
		return dto.ChatSalesSummaryDTO{}, fmt.Errorf("resumen de ventas: %w", err)
	}
	return dto.ChatSalesSummaryDTO{Total: total, Count: count}, nil
}
