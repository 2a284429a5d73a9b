package repository

import (
	"context"
	"time"

	"github.com/intelguy8000/odontologia/internal/domain/entity"
)

// SaleFilters filtros opcionales para listar ventas.
type SaleFilters struct {
	PatientID string
	Status    string
	DateFrom  *time.Time
	DateTo    *time.Time
}

// SaleItemDetail es un insumo consumido por una venta, con los datos del insumo.
type SaleItemDetail struct {
	Join entity.SaleInventoryItem
	Item entity.InventoryItem
}

// SaleWithDetail es una venta junto con su paciente y los insumos consumidos.
type SaleWithDetail struct {
	Sale    entity.Sale
	Patient entity.Patient
	Items   []SaleItemDetail
}

// SaleRepository define el puerto de persistencia para Sale y su relación con
// inventario.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CreateItem(ctx context.Context, item *entity.SaleInventoryItem) error
	GetByID(ctx context.Context, id string) (*SaleWithDetail, error)
	// List devuelve ventas con paciente e insumos, fecha descendente.
	List(ctx context.Context, filters SaleFilters) ([]*SaleWithDetail, error)
	// UpdateStatus cambia el estado de una venta; devuelve false si no existe.
	UpdateStatus(ctx context.Context, id, status string) (bool, error)
}
