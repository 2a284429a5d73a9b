package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa un insumo del consultorio (resinas, anestesia, guantes...).
// CurrentStock y MinStock son unidades enteras; AvgCost es el costo promedio en COP
// y puede tener decimales (se promedia sobre compras de distinto precio).
// CurrentStock solo se modifica dentro de una transacción que además registra
// un InventoryMovement con la misma cantidad y dirección.
type InventoryItem struct {
	ID           string
	Code         string // código único del insumo
	Name         string
	Category     string
	CurrentStock int
	MinStock     int
	Unit         string // unidad de medida: "unidad", "caja", "ml"...
	AvgCost      decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TotalValue devuelve el valor total del stock (stock × costo promedio).
func (i *InventoryItem) TotalValue() decimal.Decimal {
	return decimal.NewFromInt(int64(i.CurrentStock)).Mul(i.AvgCost)
}
