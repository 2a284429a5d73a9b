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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la cabecera de la venta.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (id, date, patient_id, treatment, amount, payment_method, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Date, s.PatientID, s.Treatment, s.Amount, s.PaymentMethod, s.Status, s.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create sale: %w", err)
	}
	return nil
}

// CreateItem inserta la relación venta-insumo.
func (r *SaleRepo) CreateItem(ctx context.Context, item *entity.SaleInventoryItem) error {
	query := `
		INSERT INTO sale_inventory_items (id, sale_id, inventory_id, quantity_used)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, item.ID, item.SaleID, item.InventoryID, item.QuantityUsed)
	if err != nil {
		return fmt.Errorf("create sale item: %w", err)
	}
	return nil
}

const saleSelect = `
	SELECT s.id, s.date, s.patient_id, s.treatment, s.amount, s.payment_method, s.status, s.created_at,
	       p.id, p.document, p.full_name
	FROM sales s
	JOIN patients p ON p.id = s.patient_id`

// GetByID obtiene una venta con paciente e insumos; ErrNotFound si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*repository.SaleWithDetail, error) {
	row := r.q.QueryRow(ctx, saleSelect+` WHERE s.id = $1`, id)
	detail, err := scanSaleWithPatient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	items, err := r.itemsForSales(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	detail.Items = items[id]
	return detail, nil
}

// List devuelve ventas con paciente e insumos, fecha descendente.
func (r *SaleRepo) List(ctx context.Context, filters repository.SaleFilters) ([]*repository.SaleWithDetail, error) {
	query := saleSelect + ` WHERE 1=1`
	args := []any{}
	if filters.PatientID != "" {
		args = append(args, filters.PatientID)
		query += fmt.Sprintf(" AND s.patient_id = $%d", len(args))
	}
	if filters.Status != "" {
		args = append(args, filters.Status)
		query += fmt.Sprintf(" AND s.status = $%d", len(args))
	}
	if filters.DateFrom != nil {
		args = append(args, *filters.DateFrom)
		query += fmt.Sprintf(" AND s.date >= $%d", len(args))
	}
	if filters.DateTo != nil {
		args = append(args, *filters.DateTo)
		query += fmt.Sprintf(" AND s.date <= $%d", len(args))
	}
	query += ` ORDER BY s.date DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var out []*repository.SaleWithDetail
	var ids []string
	for rows.Next() {
		detail, err := scanSaleWithPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		out = append(out, detail)
		ids = append(ids, detail.Sale.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return out, nil
	}

	itemsBySale, err := r.itemsForSales(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, detail := range out {
		detail.Items = itemsBySale[detail.Sale.ID]
	}
	return out, nil
}

// UpdateStatus cambia el estado; devuelve false si la venta no existe.
func (r *SaleRepo) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	tag, err := r.q.Exec(ctx, `UPDATE sales SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return false, fmt.Errorf("update sale status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// itemsForSales carga los insumos consumidos de un lote de ventas en una sola
// consulta.
func (r *SaleRepo) itemsForSales(ctx context.Context, saleIDs []string) (map[string][]repository.SaleItemDetail, error) {
	query := `
		SELECT si.id, si.sale_id, si.inventory_id, si.quantity_used,
		       i.id, i.code, i.name, i.category, i.current_stock, i.min_stock, i.unit, i.avg_cost, i.created_at, i.updated_at
		FROM sale_inventory_items si
		JOIN inventory_items i ON i.id = si.inventory_id
		WHERE si.sale_id = ANY($1)`
	rows, err := r.q.Query(ctx, query, saleIDs)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]repository.SaleItemDetail)
	for rows.Next() {
		var d repository.SaleItemDetail
		err := rows.Scan(
			&d.Join.ID, &d.Join.SaleID, &d.Join.InventoryID, &d.Join.QuantityUsed,
			&d.Item.ID, &d.Item.Code, &d.Item.Name, &d.Item.Category, &d.Item.CurrentStock,
			&d.Item.MinStock, &d.Item.Unit, &d.Item.AvgCost, &d.Item.CreatedAt, &d.Item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		out[d.Join.SaleID] = append(out[d.Join.SaleID], d)
	}
	return out, rows.Err()
}

func scanSaleWithPatient(row pgx.Row) (*repository.SaleWithDetail, error) {
	var d repository.SaleWithDetail
	err := row.Scan(
		&d.Sale.ID, &d.Sale.Date, &d.Sale.PatientID, &d.Sale.Treatment, &d.Sale.Amount,
		&d.Sale.PaymentMethod, &d.Sale.Status, &d.Sale.CreatedAt,
		&d.Patient.ID, &d.Patient.Document, &d.Patient.FullName,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
