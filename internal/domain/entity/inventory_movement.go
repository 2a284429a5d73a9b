package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeEntrada = "entrada"
	MovementTypeSalida  = "salida"
)

// InventoryMovement es un registro inmutable de auditoría de cambios de stock.
// ReferenceID enlaza el movimiento con su origen (ej. el ID de la venta que
// consumió el insumo). Los movimientos nunca se actualizan ni se eliminan.
type InventoryMovement struct {
	ID          string
	InventoryID string
	Type        string // entrada | salida
	Quantity    int
	Reason      string
	ReferenceID string
	Date        time.Time
}
