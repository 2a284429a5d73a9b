package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/intelguy8000/odontologia/internal/application/dto"
	"github.com/intelguy8000/odontologia/internal/domain"
	"github.com/intelguy8000/odontologia/internal/domain/entity"
	"github.com/intelguy8000/odontologia/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos manuales de inventario
// (entrada o salida) de forma transaccional, con bloqueo de fila
// (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner TxRunner
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner}
}

// RegisterMovement aplica un movimiento manual y devuelve el insumo
// actualizado. Una salida nunca deja el stock negativo: se recorta en 0,
// pero el movimiento conserva la cantidad solicitada para el libro.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, in dto.RegisterMovementRequest) (*dto.InventoryItemDTO, error) {
	if in.InventoryID == "" || in.Quantity <= 0 || in.Reason == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.MovementTypeEntrada && in.Type != entity.MovementTypeSalida {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var out dto.InventoryItemDTO

	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		// Bloquea la fila del insumo para serializar movimientos concurrentes
		item, err := itemRepo.GetForUpdate(ctx, in.InventoryID)
		if err != nil {
			return err
		}

		newStock := item.CurrentStock
		switch in.Type {
		case entity.MovementTypeEntrada:
			newStock += in.Quantity
		case entity.MovementTypeSalida:
			newStock -= in.Quantity
			if newStock < 0 {
				newStock = 0
			}
		}

		if err := itemRepo.UpdateStock(ctx, item.ID, newStock); err != nil {
			return err
		}
		if err := movRepo.Create(ctx, &entity.InventoryMovement{
			ID:          uuid.New().String(),
			InventoryID: item.ID,
			Type:        in.Type,
			Quantity:    in.Quantity,
			Reason:      in.Reason,
			Date:        now,
		}); err != nil {
			return err
		}

		item.CurrentStock = newStock
		item.UpdatedAt = now
		out = toItemDTO(item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
