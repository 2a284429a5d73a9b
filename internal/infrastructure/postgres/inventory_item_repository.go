package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/intelguy8000/odontologia/internal/domain"
	"github.com/intelguy8000/odontologia/internal/domain/entity"
	"github.com/intelguy8000/odontologia/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo implementación de InventoryItemRepository sobre PostgreSQL.
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

const inventoryItemColumns = `id, code, name, category, current_stock, min_stock, unit, avg_cost, created_at, updated_at`

// Create inserta un insumo. Devuelve ErrDuplicate si el código ya existe.
func (r *InventoryItemRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (id, code, name, category, current_stock, min_stock, unit, avg_cost, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Code, item.Name, item.Category, item.CurrentStock, item.MinStock,
		item.Unit, item.AvgCost, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create inventory item: %w", err)
	}
	return nil
}

// GetByID obtiene un insumo; ErrNotFound si no existe.
func (r *InventoryItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items WHERE id = $1`
	item, err := scanInventoryItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return item, nil
}

// GetForUpdate obtiene el insumo y bloquea la fila (SELECT FOR UPDATE).
func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items WHERE id = $1 FOR UPDATE`
	item, err := scanInventoryItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get inventory item for update: %w", err)
	}
	return item, nil
}

// List devuelve todos los insumos ordenados por nombre.
func (r *InventoryItemRepo) List(ctx context.Context) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items ORDER BY name ASC`
	return r.queryItems(ctx, query)
}

// ListBelowMin devuelve los insumos bajo mínimo, los más críticos primero.
func (r *InventoryItemRepo) ListBelowMin(ctx context.Context) ([]*entity.InventoryItem, error) {
	query := `
		SELECT ` + inventoryItemColumns + `
		FROM inventory_items
		WHERE current_stock < min_stock
		ORDER BY current_stock ASC, name ASC`
	return r.queryItems(ctx, query)
}

// Update actualiza los datos maestros del insumo. No toca current_stock.
func (r *InventoryItemRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET name = $2, category = $3, min_stock = $4, unit = $5, avg_cost = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Category, item.MinStock, item.Unit, item.AvgCost, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock fija el stock del insumo. Solo debe llamarse dentro de la misma
// tx que registra el movimiento correspondiente.
func (r *InventoryItemRepo) UpdateStock(ctx context.Context, id string, newStock int) error {
	query := `UPDATE inventory_items SET current_stock = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, newStock)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InventoryItemRepo) queryItems(ctx context.Context, query string, args ...any) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()

	var out []*entity.InventoryItem
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func scanInventoryItem(row pgx.Row) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := row.Scan(
		&item.ID, &item.Code, &item.Name, &item.Category, &item.CurrentStock, &item.MinStock,
		&item.Unit, &item.AvgCost, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
