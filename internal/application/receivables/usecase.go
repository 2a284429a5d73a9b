// Package receivables contiene los casos de uso de cartera: planes de pago,
// cuotas, registro de abonos y KPIs de cuentas por cobrar.
package receivables

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/intelguy8000/odontologia/internal/application/dto"
	"github.com/intelguy8000/odontologia/internal/domain"
	"github.com/intelguy8000/odontologia/internal/domain/entity"
	"github.com/intelguy8000/odontologia/internal/domain/receivables"
	"github.com/intelguy8000/odontologia/internal/domain/repository"
)

// dueSoonDays ventana del KPI "vence esta semana".
const dueSoonDays = 7

// UseCase casos de uso de cartera.
type UseCase struct {
	txRunner    TxRunner
	planRepo    repository.PaymentPlanRepository
	patientRepo repository.PatientRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, planRepo repository.PaymentPlanRepository, patientRepo repository.PatientRepository) *UseCase {
	return &UseCase{txRunner: txRunner, planRepo: planRepo, patientRepo: patientRepo}
}

// GetKPIs construye los KPIs de cartera.
//
// Tres llamadas en paralelo:
//  1. SumActiveRemaining          → total por cobrar (nivel plan)
//  2. OverdueInstallments         → cuotas vencidas (nivel cuota)
//  3. InstallmentsDueBetween(7d)  → cuotas que vencen esta semana
func (uc *UseCase) GetKPIs(ctx context.Context) (*dto.ReceivableKPIsDTO, error) {
	now := time.Now()

	type sumResult struct {
		total int64
		plans int
		err   error
	}
	type aggResult struct {
		agg repository.InstallmentAggregate
		err error
	}

	remainingCh := make(chan sumResult, 1)
	overdueCh := make(chan aggResult, 1)
	dueSoonCh := make(chan aggResult, 1)

	go func() {
		total, plans, err := uc.planRepo.SumActiveRemaining(ctx)
		remainingCh <- sumResult{total, plans, err}
	}()
	go func() {
		agg, err := uc.planRepo.OverdueInstallments(ctx)
		overdueCh <- aggResult{agg, err}
	}()
	go func() {
		agg, err := uc.planRepo.InstallmentsDueBetween(ctx, now, now.AddDate(0, 0, dueSoonDays))
		dueSoonCh <- aggResult{agg, err}
	}()

	remaining := <-remainingCh
	overdue := <-overdueCh
	dueSoon := <-dueSoonCh

	if remaining.err != nil {
		return nil, fmt.Errorf("cartera: total por cobrar: %w", remaining.err)
	}
	if overdue.err != nil {
		return nil, fmt.Errorf("cartera: cuotas vencidas: %w", overdue.err)
	}
	if dueSoon.err != nil {
		return nil, fmt.Errorf("cartera: cuotas por vencer: %w", dueSoon.err)
	}

	return &dto.ReceivableKPIsDTO{
		TotalReceivable:   remaining.total,
		ActivePlansCount:  remaining.plans,
		OverdueAmount:     overdue.agg.Amount,
		OverdueCount:      overdue.agg.Count,
		DueThisWeekAmount: dueSoon.agg.Amount,
		DueThisWeekCount:  dueSoon.agg.Count,
	}, nil
}

// ListPlans devuelve los planes activos con su estado derivado.
func (uc *UseCase) ListPlans(ctx context.Context) ([]dto.PaymentPlanDTO, error) {
	rows, err := uc.planRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentPlanDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toPlanDTO(row))
	}
	return out, nil
}

// CreatePlan da de alta un plan de pagos y genera su cronograma de cuotas
// mensuales a partir de FirstDueDate, todo en una transacción.
func (uc *UseCase) CreatePlan(ctx context.Context, in dto.CreatePaymentPlanRequest) (*dto.PaymentPlanDTO, error) {
	if in.PatientID == "" || in.Treatment == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.TotalAmount <= 0 || in.DownPayment < 0 || in.DownPayment > in.TotalAmount {
		return nil, domain.ErrInvalidInput
	}
	if in.Installments <= 0 {
		return nil, domain.ErrInvalidInput
	}
	firstDue, err := time.Parse("2006-01-02", in.FirstDueDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	financed := in.TotalAmount - in.DownPayment
	// Una cuota fijada por el cliente no puede agotar el financiado antes de
	// la última cuota: la dejaría negativa.
	if in.InstallmentAmount > 0 && in.InstallmentAmount*int64(in.Installments-1) >= financed {
		return nil, domain.ErrInvalidInput
	}

	patient, err := uc.patientRepo.GetByID(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}

	installmentAmount := in.InstallmentAmount
	if installmentAmount <= 0 {
		// Redondeo hacia arriba: la última cuota absorbe la diferencia
		installmentAmount = (financed + int64(in.Installments) - 1) / int64(in.Installments)
	}

	now := time.Now()
	plan := &entity.PaymentPlan{
		ID:                uuid.New().String(),
		PatientID:         in.PatientID,
		Treatment:         in.Treatment,
		TotalAmount:       in.TotalAmount,
		DownPayment:       in.DownPayment,
		Installments:      in.Installments,
		InstallmentAmount: installmentAmount,
		PaidAmount:        in.DownPayment,
		RemainingAmount:   financed,
		Status:            entity.PlanStatusActive,
		NextDueDate:       firstDue,
		CreatedAt:         now,
	}

	err = uc.txRunner.RunPlan(ctx, func(planRepo repository.PaymentPlanRepository) error {
		if err := planRepo.Create(ctx, plan); err != nil {
			return err
		}
		scheduled := int64(0)
		for i := 1; i <= in.Installments; i++ {
			amount := installmentAmount
			if i == in.Installments {
				amount = financed - scheduled // la última cuota cierra el plan exacto
			}
			scheduled += amount
			if err := planRepo.CreateInstallment(ctx, &entity.PaymentInstallment{
				ID:      uuid.New().String(),
				PlanID:  plan.ID,
				Number:  i,
				Amount:  amount,
				DueDate: firstDue.AddDate(0, i-1, 0),
				Status:  entity.InstallmentPending,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := toPlanDTO(&repository.PlanWithDetail{Plan: *plan, Patient: *patient})
	return &out, nil
}

// RegisterPayment registra el pago de la cuota no pagada más antigua del plan.
// Mantiene la invariante RemainingAmount == TotalAmount - PaidAmount y marca
// el plan como completado cuando no quedan cuotas.
func (uc *UseCase) RegisterPayment(ctx context.Context, planID string) (*dto.RegisterPaymentResponse, error) {
	now := time.Now()
	var out dto.RegisterPaymentResponse

	err := uc.txRunner.RunPlan(ctx, func(planRepo repository.PaymentPlanRepository) error {
		// Bloquea la fila del plan: un solo pago a la vez por plan
		plan, err := planRepo.GetForUpdate(ctx, planID)
		if err != nil {
			return err
		}
		if plan.Status == entity.PlanStatusCompleted {
			return domain.ErrConflict
		}

		installment, err := planRepo.NextUnpaidInstallment(ctx, planID)
		if err != nil {
			return err
		}
		if installment == nil {
			return domain.ErrConflict
		}
		if err := planRepo.MarkInstallmentPaid(ctx, installment.ID, now); err != nil {
			return err
		}

		plan.PaidAmount += installment.Amount
		plan.RemainingAmount = plan.TotalAmount - plan.PaidAmount

		next, err := planRepo.NextUnpaidInstallment(ctx, planID)
		if err != nil {
			return err
		}
		if next == nil {
			plan.Status = entity.PlanStatusCompleted
		} else {
			plan.NextDueDate = next.DueDate
		}
		if err := planRepo.Update(ctx, plan); err != nil {
			return err
		}

		out = dto.RegisterPaymentResponse{
			PlanID:          plan.ID,
			InstallmentPaid: installment.Number,
			PaidAmount:      plan.PaidAmount,
			RemainingAmount: plan.RemainingAmount,
			PlanCompleted:   plan.Status == entity.PlanStatusCompleted,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ChatSummary resume la cartera para el asistente.
func (uc *UseCase) ChatSummary(ctx context.Context) (dto.ChatReceivablesDTO, error) {
	total, plans, err := uc.planRepo.SumActiveRemaining(ctx)
	if err != nil {
		return dto.ChatReceivablesDTO{}, err
	}
	overdue, err := uc.planRepo.OverdueInstallments(ctx)
	if err != nil {
		return dto.ChatReceivablesDTO{}, err
	}
	return dto.ChatReceivablesDTO{
		TotalReceivable:     total,
		ActivePlans:         plans,
		OverdueInstallments: overdue.Count,
	}, nil
}

func toPlanDTO(row *repository.PlanWithDetail) dto.PaymentPlanDTO {
	return dto.PaymentPlanDTO{
		ID: row.Plan.ID,
		Patient: dto.SalePatientDTO{
			ID:       row.Patient.ID,
			Document: row.Patient.Document,
			FullName: row.Patient.FullName,
		},
		Treatment:         row.Plan.Treatment,
		TotalAmount:       row.Plan.TotalAmount,
		DownPayment:       row.Plan.DownPayment,
		Installments:      row.Plan.Installments,
		InstallmentAmount: row.Plan.InstallmentAmount,
		PaidAmount:        row.Plan.PaidAmount,
		RemainingAmount:   row.Plan.RemainingAmount,
		PaidInstallments:  row.PaidCount,
		NextDueDate:       row.Plan.NextDueDate,
		Status:            string(receivables.PlanStatus(row.OverdueCount, row.PaidCount, row.Plan.Installments)),
	}
}
