package entity

import "time"

// Estados almacenados de un plan de pagos. El estado mostrado al usuario
// (vencida / completada / al día) es derivado, no almacenado: ver
// internal/domain/receivables.
const (
	PlanStatusActive    = "active"
	PlanStatusCompleted = "completed"
)

// Estados de una cuota.
const (
	InstallmentPending = "pending"
	InstallmentPaid    = "paid"
	InstallmentOverdue = "overdue"
)

// PaymentPlan es un plan de pagos de un tratamiento. Todos los montos en COP
// enteros. Invariante: RemainingAmount == TotalAmount - PaidAmount, mantenida
// por el caso de uso de registro de pagos (único escritor de PaidAmount).
type PaymentPlan struct {
	ID                string
	PatientID         string
	Treatment         string
	TotalAmount       int64
	DownPayment       int64
	Installments      int
	InstallmentAmount int64
	PaidAmount        int64
	RemainingAmount   int64
	Status            string
	NextDueDate       time.Time
	CreatedAt         time.Time
}

// PaymentInstallment es una cuota programada dentro de un plan de pagos.
type PaymentInstallment struct {
	ID      string
	PlanID  string
	Number  int
	Amount  int64
	DueDate time.Time
	Status  string
	PaidAt  *time.Time
}
