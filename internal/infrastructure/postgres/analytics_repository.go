package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/intelguy8000/odontologia/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas de solo lectura para dashboard y chat.
// Todas consideran únicamente ventas con estado "completada".
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetSalesTotals suma y cuenta las ventas completadas desde `from`.
func (r *AnalyticsRepo) GetSalesTotals(ctx context.Context, from time.Time) (int64, int, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0), COUNT(*)
		FROM sales
		WHERE status = 'completada' AND date >= $1`
	var total int64
	var count int
	if err := r.q.QueryRow(ctx, query, from).Scan(&total, &count); err != nil {
		return 0, 0, fmt.Errorf("sales totals: %w", err)
	}
	return total, count, nil
}

// CountActivePatients cuenta pacientes distintos con al menos una venta desde `since`.
func (r *AnalyticsRepo) CountActivePatients(ctx context.Context, since time.Time) (int, error) {
	query := `
		SELECT COUNT(DISTINCT patient_id)
		FROM sales
		WHERE status = 'completada' AND date >= $1`
	var count int
	if err := r.q.QueryRow(ctx, query, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("active patients: %w", err)
	}
	return count, nil
}

// GetDailySales agrupa las ventas completadas por día calendario desde `from`.
func (r *AnalyticsRepo) GetDailySales(ctx context.Context, from time.Time) ([]repository.DailySalesResult, error) {
	query := `
		SELECT date_trunc('day', date) AS day, SUM(amount)
		FROM sales
		WHERE status = 'completada' AND date >= $1
		GROUP BY day
		ORDER BY day ASC`
	rows, err := r.q.Query(ctx, query, from)
	if err != nil {
		return nil, fmt.Errorf("daily sales: %w", err)
	}
	defer rows.Close()

	var out []repository.DailySalesResult
	for rows.Next() {
		var row repository.DailySalesResult
		if err := rows.Scan(&row.Day, &row.Amount); err != nil {
			return nil, fmt.Errorf("scan daily sales: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// GetTopTreatments agrupa por tratamiento las ventas completadas desde `from`,
// ingreso descendente (desempate: conteo y nombre).
func (r *AnalyticsRepo) GetTopTreatments(ctx context.Context, from time.Time, limit int) ([]repository.TreatmentSalesResult, error) {
	query := `
		SELECT treatment, COUNT(*), SUM(amount)
		FROM sales
		WHERE status = 'completada' AND date >= $1
		GROUP BY treatment
		ORDER BY SUM(amount) DESC, COUNT(*) DESC, treatment ASC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, from, limit)
	if err != nil {
		return nil, fmt.Errorf("top treatments: %w", err)
	}
	defer rows.Close()

	var out []repository.TreatmentSalesResult
	for rows.Next() {
		var row repository.TreatmentSalesResult
		if err := rows.Scan(&row.Treatment, &row.Count, &row.Revenue); err != nil {
			return nil, fmt.Errorf("scan top treatments: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
