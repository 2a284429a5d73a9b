package inventory

import (
	"context"

	"github.com/intelguy8000/odontologia/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que stock y movimiento se escriban
// juntos o no se escriba ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.InventoryMovementRepository,
	) error) error
}
