// Package receivables contiene las reglas puras de cuentas por cobrar.
package receivables

// DerivedStatus es el estado mostrado de un plan de pagos. No se almacena:
// se calcula siempre a partir de las cuotas.
type DerivedStatus string

const (
	PlanVencida    DerivedStatus = "vencida"
	PlanCompletada DerivedStatus = "completada"
	PlanAlDia      DerivedStatus = "al día"
)

// PlanStatus deriva el estado de un plan a partir del conteo de cuotas.
// Precedencia: vencida > completada > al día. Un plan con una cuota vencida
// se muestra vencida aunque el conteo de pagadas iguale el total de cuotas.
func PlanStatus(overdueCount, paidCount, totalInstallments int) DerivedStatus {
	if overdueCount > 0 {
		return PlanVencida
	}
	if totalInstallments > 0 && paidCount == totalInstallments {
		return PlanCompletada
	}
	return PlanAlDia
}
