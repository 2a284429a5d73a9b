package repository

import (
	"context"
	"time"
)

// DailySalesResult es el total vendido en un día calendario.
type DailySalesResult struct {
	Day    time.Time
	Amount int64
}

// TreatmentSalesResult es el agregado de ventas de un tratamiento.
type TreatmentSalesResult struct {
	Treatment string
	Count     int
	Revenue   int64
}

// AnalyticsRepository consultas de solo lectura para el dashboard y el chat.
// Todas las consultas consideran únicamente ventas con estado "completada";
// "sin filas" se traduce en ceros, nunca en error.
type AnalyticsRepository interface {
	// GetSalesTotals suma y cuenta las ventas completadas desde `from`.
	GetSalesTotals(ctx context.Context, from time.Time) (total int64, count int, err error)
	// CountActivePatients cuenta pacientes distintos con al menos una venta
	// desde `since`.
	CountActivePatients(ctx context.Context, since time.Time) (int, error)
	// GetDailySales agrupa las ventas completadas por día calendario desde `from`.
	// Solo devuelve los días con ventas; el caso de uso rellena los ceros.
	GetDailySales(ctx context.Context, from time.Time) ([]DailySalesResult, error)
	// GetTopTreatments agrupa por tratamiento las ventas completadas desde
	// `from`, ordenadas por ingreso descendente (desempate: conteo, nombre).
	GetTopTreatments(ctx context.Context, from time.Time, limit int) ([]TreatmentSalesResult, error)
}
