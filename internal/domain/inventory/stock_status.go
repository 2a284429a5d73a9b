// Package inventory contiene las reglas puras del dominio de inventario.
package inventory

// StockStatus clasifica la salud del stock de un insumo.
type StockStatus string

const (
	StockOK       StockStatus = "ok"
	StockLow      StockStatus = "low"
	StockCritical StockStatus = "critical"
)

// Status deriva la clasificación de stock a partir del stock actual y el mínimo.
// Regla: critical si el stock es cero o está por debajo de la mitad del mínimo;
// low si está por debajo del mínimo; ok en otro caso.
//
// Esta es la ÚNICA implementación de la regla: la tabla de inventario, las
// alertas del dashboard y la función del chat la importan de aquí para que la
// clasificación nunca difiera entre pantallas.
func Status(currentStock, minStock int) StockStatus {
	if currentStock == 0 || float64(currentStock) < float64(minStock)*0.5 {
		return StockCritical
	}
	if currentStock < minStock {
		return StockLow
	}
	return StockOK
}

// Deficit devuelve cuántas unidades faltan para alcanzar el stock mínimo
// (cero si el stock está en o por encima del mínimo).
func Deficit(currentStock, minStock int) int {
	if currentStock >= minStock {
		return 0
	}
	return minStock - currentStock
}
