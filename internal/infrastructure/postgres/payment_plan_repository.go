package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/intelguy8000/odontologia/internal/domain"
	"github.com/intelguy8000/odontologia/internal/domain/entity"
	"github.com/intelguy8000/odontologia/internal/domain/repository"
)

var _ repository.PaymentPlanRepository = (*PaymentPlanRepo)(nil)

// PaymentPlanRepo implementación de PaymentPlanRepository sobre PostgreSQL.
type PaymentPlanRepo struct {
	q Querier
}

// NewPaymentPlanRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentPlanRepository(q Querier) *PaymentPlanRepo {
	return &PaymentPlanRepo{q: q}
}

const planColumns = `id, patient_id, treatment, total_amount, down_payment, installments,
	installment_amount, paid_amount, remaining_amount, status, next_due_date, created_at`

// Create inserta un plan de pagos.
func (r *PaymentPlanRepo) Create(ctx context.Context, p *entity.PaymentPlan) error {
	query := `
		INSERT INTO payment_plans (` + planColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.PatientID, p.Treatment, p.TotalAmount, p.DownPayment, p.Installments,
		p.InstallmentAmount, p.PaidAmount, p.RemainingAmount, p.Status, p.NextDueDate, p.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create plan: %w", err)
	}
	return nil
}

// CreateInstallment inserta una cuota del cronograma.
func (r *PaymentPlanRepo) CreateInstallment(ctx context.Context, i *entity.PaymentInstallment) error {
	query := `
		INSERT INTO payment_installments (id, plan_id, number, amount, due_date, status, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, i.ID, i.PlanID, i.Number, i.Amount, i.DueDate, i.Status, i.PaidAt)
	if err != nil {
		return fmt.Errorf("create installment: %w", err)
	}
	return nil
}

// GetByID obtiene un plan; ErrNotFound si no existe.
func (r *PaymentPlanRepo) GetByID(ctx context.Context, id string) (*entity.PaymentPlan, error) {
	query := `SELECT ` + planColumns + ` FROM payment_plans WHERE id = $1`
	return r.getPlan(ctx, query, id)
}

// GetForUpdate obtiene el plan y bloquea la fila (SELECT FOR UPDATE).
func (r *PaymentPlanRepo) GetForUpdate(ctx context.Context, id string) (*entity.PaymentPlan, error) {
	query := `SELECT ` + planColumns + ` FROM payment_plans WHERE id = $1 FOR UPDATE`
	return r.getPlan(ctx, query, id)
}

func (r *PaymentPlanRepo) getPlan(ctx context.Context, query, id string) (*entity.PaymentPlan, error) {
	var p entity.PaymentPlan
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.PatientID, &p.Treatment, &p.TotalAmount, &p.DownPayment, &p.Installments,
		&p.InstallmentAmount, &p.PaidAmount, &p.RemainingAmount, &p.Status, &p.NextDueDate, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return &p, nil
}

// Update actualiza los montos, estado y próxima fecha del plan.
func (r *PaymentPlanRepo) Update(ctx context.Context, p *entity.PaymentPlan) error {
	query := `
		UPDATE payment_plans
		SET paid_amount = $2, remaining_amount = $3, status = $4, next_due_date = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, p.ID, p.PaidAmount, p.RemainingAmount, p.Status, p.NextDueDate)
	if err != nil {
		return fmt.Errorf("update plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListActive devuelve los planes activos con paciente y conteos de cuotas
// pagadas y vencidas (vencida = pendiente con due_date en el pasado).
func (r *PaymentPlanRepo) ListActive(ctx context.Context) ([]*repository.PlanWithDetail, error) {
	query := `
		SELECT pp.id, pp.patient_id, pp.treatment, pp.total_amount, pp.down_payment, pp.installments,
		       pp.installment_amount, pp.paid_amount, pp.remaining_amount, pp.status, pp.next_due_date, pp.created_at,
		       p.id, p.document, p.full_name,
		       COUNT(*) FILTER (WHERE pi.status <> 'paid' AND pi.due_date < now()) AS overdue_count,
		       COUNT(*) FILTER (WHERE pi.status = 'paid') AS paid_count
		FROM payment_plans pp
		JOIN patients p ON p.id = pp.patient_id
		LEFT JOIN payment_installments pi ON pi.plan_id = pp.id
		WHERE pp.status = 'active'
		GROUP BY pp.id, p.id
		ORDER BY pp.next_due_date ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active plans: %w", err)
	}
	defer rows.Close()

	var out []*repository.PlanWithDetail
	for rows.Next() {
		var d repository.PlanWithDetail
		err := rows.Scan(
			&d.Plan.ID, &d.Plan.PatientID, &d.Plan.Treatment, &d.Plan.TotalAmount, &d.Plan.DownPayment,
			&d.Plan.Installments, &d.Plan.InstallmentAmount, &d.Plan.PaidAmount, &d.Plan.RemainingAmount,
			&d.Plan.Status, &d.Plan.NextDueDate, &d.Plan.CreatedAt,
			&d.Patient.ID, &d.Patient.Document, &d.Patient.FullName,
			&d.OverdueCount, &d.PaidCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

// NextUnpaidInstallment devuelve la cuota no pagada más antigua, o nil si
// todas están pagadas.
func (r *PaymentPlanRepo) NextUnpaidInstallment(ctx context.Context, planID string) (*entity.PaymentInstallment, error) {
	query := `
		SELECT id, plan_id, number, amount, due_date, status, paid_at
		FROM payment_installments
		WHERE plan_id = $1 AND status <> 'paid'
		ORDER BY number ASC
		LIMIT 1`
	var i entity.PaymentInstallment
	err := r.q.QueryRow(ctx, query, planID).Scan(
		&i.ID, &i.PlanID, &i.Number, &i.Amount, &i.DueDate, &i.Status, &i.PaidAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("next unpaid installment: %w", err)
	}
	return &i, nil
}

// MarkInstallmentPaid marca la cuota como pagada.
func (r *PaymentPlanRepo) MarkInstallmentPaid(ctx context.Context, installmentID string, paidAt time.Time) error {
	query := `UPDATE payment_installments SET status = 'paid', paid_at = $2 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, installmentID, paidAt)
	if err != nil {
		return fmt.Errorf("mark installment paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SumActiveRemaining suma el saldo de los planes activos.
func (r *PaymentPlanRepo) SumActiveRemaining(ctx context.Context) (int64, int, error) {
	query := `
		SELECT COALESCE(SUM(remaining_amount), 0), COUNT(*)
		FROM payment_plans WHERE status = 'active'`
	var total int64
	var plans int
	if err := r.q.QueryRow(ctx, query).Scan(&total, &plans); err != nil {
		return 0, 0, fmt.Errorf("sum active remaining: %w", err)
	}
	return total, plans, nil
}

// OverdueInstallments agrega las cuotas no pagadas con vencimiento en el pasado.
func (r *PaymentPlanRepo) OverdueInstallments(ctx context.Context) (repository.InstallmentAggregate, error) {
	query := `
		SELECT COALESCE(SUM(pi.amount), 0), COUNT(*)
		FROM payment_installments pi
		JOIN payment_plans pp ON pp.id = pi.plan_id
		WHERE pp.status = 'active' AND pi.status <> 'paid' AND pi.due_date < now()`
	return r.aggregate(ctx, query)
}

// InstallmentsDueBetween agrega las cuotas pendientes con vencimiento en [from, to).
func (r *PaymentPlanRepo) InstallmentsDueBetween(ctx context.Context, from, to time.Time) (repository.InstallmentAggregate, error) {
	query := `
		SELECT COALESCE(SUM(pi.amount), 0), COUNT(*)
		FROM payment_installments pi
		JOIN payment_plans pp ON pp.id = pi.plan_id
		WHERE pp.status = 'active' AND pi.status <> 'paid' AND pi.due_date >= $1 AND pi.due_date < $2`
	return r.aggregate(ctx, query, from, to)
}

func (r *PaymentPlanRepo) aggregate(ctx context.Context, query string, args ...any) (repository.InstallmentAggregate, error) {
	var agg repository.InstallmentAggregate
	if err := r.q.QueryRow(ctx, query, args...).Scan(&agg.Amount, &agg.Count); err != nil {
		return repository.InstallmentAggregate{}, fmt.Errorf("installment aggregate: %w", err)
	}
	return agg, nil
}
