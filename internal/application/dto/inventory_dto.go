package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInventoryItemRequest alta de insumo.
type CreateInventoryItemRequest struct {
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	MinStock int             `json:"minStock"`
	Unit     string          `json:"unit"`
	AvgCost  decimal.Decimal `json:"avgCost"`
}

// UpdateInventoryItemRequest actualización de datos maestros del insumo.
// El stock no se actualiza por aquí: solo vía movimientos.
type UpdateInventoryItemRequest struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	MinStock int             `json:"minStock"`
	Unit     string          `json:"unit"`
	AvgCost  decimal.Decimal `json:"avgCost"`
}

// InventoryItemDTO insumo con su estado derivado y valor total.
type InventoryItemDTO struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	CurrentStock int             `json:"currentStock"`
	MinStock     int             `json:"minStock"`
	Unit         string          `json:"unit"`
	AvgCost      decimal.Decimal `json:"avgCost"`
	Status       string          `json:"status"` // ok | low | critical
	TotalValue   decimal.Decimal `json:"totalValue"`
}

// InventoryAlertDTO insumo bajo mínimo, con el faltante.
type InventoryAlertDTO struct {
	InventoryItemDTO
	Deficit int `json:"deficit"`
}

// InventoryStatsDTO resumen global del inventario.
type InventoryStatsDTO struct {
	TotalItems         int             `json:"totalItems"`
	TotalValue         decimal.Decimal `json:"totalValue"`
	LowStockCount      int             `json:"lowStockCount"`
	CriticalStockCount int             `json:"criticalStockCount"`
}

// MovementDTO movimiento del libro de inventario.
type MovementDTO struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	Reason      string    `json:"reason"`
	ReferenceID string    `json:"referenceId,omitempty"`
	Date        time.Time `json:"date"`
}

// InventoryItemDetailDTO insumo con sus últimos movimientos.
type InventoryItemDetailDTO struct {
	InventoryItemDTO
	Movements []MovementDTO `json:"movements"`
}

// RegisterMovementRequest movimiento manual de inventario.
type RegisterMovementRequest struct {
	InventoryID string `json:"inventoryId"`
	Type        string `json:"type"` // entrada | salida
	Quantity    int    `json:"quantity"`
	Reason      string `json:"reason"`
}
