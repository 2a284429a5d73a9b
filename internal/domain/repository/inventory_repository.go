package repository

import (
	"context"

	"github.com/intelguy8000/odontologia/internal/domain/entity"
)

// InventoryItemRepository define el puerto de persistencia para InventoryItem.
// CurrentStock nunca se modifica vía Update: solo vía UpdateStock dentro de la
// misma transacción que registra el movimiento correspondiente.
type InventoryItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	// GetForUpdate bloquea la fila del insumo (SELECT ... FOR UPDATE) para
	// serializar decrementos concurrentes. Solo tiene sentido dentro de una tx.
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	// List devuelve todos los insumos ordenados por nombre ascendente.
	List(ctx context.Context) ([]*entity.InventoryItem, error)
	// ListBelowMin devuelve los insumos con stock bajo el mínimo, ordenados
	// por stock ascendente (los más críticos primero).
	ListBelowMin(ctx context.Context) ([]*entity.InventoryItem, error)
	// Update actualiza los datos maestros del insumo. No toca CurrentStock.
	Update(ctx context.Context, item *entity.InventoryItem) error
	UpdateStock(ctx context.Context, id string, newStock int) error
}

// InventoryMovementRepository define el puerto del libro de movimientos.
// Append-only: no existen Update ni Delete.
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	// ListByItem devuelve los últimos movimientos de un insumo, fecha descendente.
	ListByItem(ctx context.Context, inventoryID string, limit int) ([]*entity.InventoryMovement, error)
}
