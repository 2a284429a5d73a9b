package repository

import (
	"context"
	"time"

	"github.com/intelguy8000/odontologia/internal/domain/entity"
)

// PlanWithDetail es un plan de pagos con su paciente y los conteos de cuotas
// necesarios para derivar el estado mostrado.
type PlanWithDetail struct {
	Plan         entity.PaymentPlan
	Patient      entity.Patient
	OverdueCount int
	PaidCount    int
}

// InstallmentAggregate es el agregado (suma, conteo) de un grupo de cuotas.
type InstallmentAggregate struct {
	Amount int64
	Count  int
}

// PaymentPlanRepository define el puerto de persistencia para planes de pago
// y sus cuotas.
type PaymentPlanRepository interface {
	Create(ctx context.Context, plan *entity.PaymentPlan) error
	CreateInstallment(ctx context.Context, installment *entity.PaymentInstallment) error
	GetByID(ctx context.Context, id string) (*entity.PaymentPlan, error)
	// GetForUpdate bloquea la fila del plan para el registro de pagos.
	GetForUpdate(ctx context.Context, id string) (*entity.PaymentPlan, error)
	Update(ctx context.Context, plan *entity.PaymentPlan) error
	// ListActive devuelve los planes activos con paciente y conteos de cuotas.
	ListActive(ctx context.Context) ([]*PlanWithDetail, error)
	// NextUnpaidInstallment devuelve la cuota no pagada más antigua del plan
	// (pendiente o vencida), o nil si todas están pagadas.
	NextUnpaidInstallment(ctx context.Context, planID string) (*entity.PaymentInstallment, error)
	MarkInstallmentPaid(ctx context.Context, installmentID string, paidAt time.Time) error

	// Agregados para los KPIs de cartera.
	SumActiveRemaining(ctx context.Context) (total int64, plans int, err error)
	OverdueInstallments(ctx context.Context) (InstallmentAggregate, error)
	// InstallmentsDueBetween agrega las cuotas pendientes con vencimiento en
	// [from, to).
	InstallmentsDueBetween(ctx context.Context, from, to time.Time) (InstallmentAggregate, error)
}
