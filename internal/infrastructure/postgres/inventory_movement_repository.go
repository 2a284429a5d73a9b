package postgres

import (
	"context"
	"fmt"

	"github.com/intelguy8000/odontologia/internal/domain/entity"
	"github.com/intelguy8000/odontologia/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación del libro de movimientos sobre
// PostgreSQL. Append-only.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create inserta un movimiento.
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	query := `
		INSERT INTO inventory_movements (id, inventory_id, type, quantity, reason, reference_id, date)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)`
	_, err := r.q.Exec(ctx, query, m.ID, m.InventoryID, m.Type, m.Quantity, m.Reason, m.ReferenceID, m.Date)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// ListByItem devuelve los últimos movimientos del insumo, fecha descendente.
func (r *InventoryMovementRepo) ListByItem(ctx context.Context, inventoryID string, limit int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT id, inventory_id, type, quantity, reason, COALESCE(reference_id, ''), date
		FROM inventory_movements
		WHERE inventory_id = $1
		ORDER BY date DESC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, inventoryID, limit)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var out []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		if err := rows.Scan(&m.ID, &m.InventoryID, &m.Type, &m.Quantity, &m.Reason, &m.ReferenceID, &m.Date); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
