package receivables

import (
	"context"

	"github.com/intelguy8000/odontologia/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con el repo de
// planes atado a esa tx. El alta del plan con su cronograma y el registro de
// un pago son atómicos.
type TxRunner interface {
	RunPlan(ctx context.Context, fn func(planRepo repository.PaymentPlanRepository) error) error
}
