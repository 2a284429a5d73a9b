package dto

import "time"

// ReceivableKPIsDTO resumen de cartera. Vencidas y "vence esta semana" se
// definen a nivel de cuota; el total por cobrar a nivel de plan.
type ReceivableKPIsDTO struct {
	TotalReceivable   int64 `json:"totalReceivable"`
	ActivePlansCount  int   `json:"activePlansCount"`
	OverdueAmount     int64 `json:"overdueAmount"`
	OverdueCount      int   `json:"overdueCount"`
	DueThisWeekAmount int64 `json:"dueThisWeekAmount"`
	DueThisWeekCount  int   `json:"dueThisWeekCount"`
}

// PaymentPlanDTO plan de pagos con su estado derivado.
type PaymentPlanDTO struct {
	ID                string         `json:"id"`
	Patient           SalePatientDTO `json:"patient"`
	Treatment         string         `json:"treatment"`
	TotalAmount       int64          `json:"totalAmount"`
	DownPayment       int64          `json:"downPayment"`
	Installments      int            `json:"installments"`
	InstallmentAmount int64          `json:"installmentAmount"`
	PaidAmount        int64          `json:"paidAmount"`
	RemainingAmount   int64          `json:"remainingAmount"`
	PaidInstallments  int            `json:"paidInstallments"`
	NextDueDate       time.Time      `json:"nextDueDate"`
	Status            string         `json:"status"` // vencida | completada | al día
}

// CreatePaymentPlanRequest alta de plan de pagos. El cronograma de cuotas se
// genera a partir de Installments y FirstDueDate (mensual).
type CreatePaymentPlanRequest struct {
	PatientID         string `json:"patientId"`
	Treatment         string `json:"treatment"`
	TotalAmount       int64  `json:"totalAmount"`
	DownPayment       int64  `json:"downPayment"`
	Installments      int    `json:"installments"`
	InstallmentAmount int64  `json:"installmentAmount"`
	FirstDueDate      string `json:"firstDueDate"` // YYYY-MM-DD
}

// RegisterPaymentResponse resultado de registrar el pago de una cuota.
type RegisterPaymentResponse struct {
	PlanID          string `json:"planId"`
	InstallmentPaid int    `json:"installmentPaid"`
	PaidAmount      int64  `json:"paidAmount"`
	RemainingAmount int64  `json:"remainingAmount"`
	PlanCompleted   bool   `json:"planCompleted"`
}
