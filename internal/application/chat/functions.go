package chat

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/intelguy8000/odontologia/internal/application/dto"
	"github.com/intelguy8000/odontologia/internal/application/ports"
)

// Fuentes de datos del asistente. Solo lectura: ninguna función del catálogo
// muta estado.

// DashboardSource consultas de ventas del agregador del dashboard.
type DashboardSource interface {
	MonthlySales(ctx context.Context) (dto.ChatSalesSummaryDTO, error)
	GetTopTreatments(ctx context.Context, limit int) ([]dto.TopTreatmentDTO, error)
}

// InventorySource consulta el estado del inventario.
type InventorySource interface {
	StatusSnapshot(ctx context.Context) (dto.ChatInventoryStatusDTO, error)
}

// ReceivablesSource consulta la cartera.
type ReceivablesSource interface {
	ChatSummary(ctx context.Context) (dto.ChatReceivablesDTO, error)
}

// topTreatmentsForChat cuántos tratamientos devuelve get_top_treatments.
const topTreatmentsForChat = 3

// Dispatcher implementa FunctionDispatcher mapeando el catálogo fijo de
// funciones a los agregadores.
type Dispatcher struct {
	dashboard   DashboardSource
	inventory   InventorySource
	receivables ReceivablesSource
}

// NewDispatcher construye el despachador.
func NewDispatcher(dashboard DashboardSource, inventory InventorySource, receivables ReceivablesSource) *Dispatcher {
	return &Dispatcher{dashboard: dashboard, inventory: inventory, receivables: receivables}
}

// Schemas devuelve el catálogo de funciones que se anuncia al modelo.
func (d *Dispatcher) Schemas() []ports.FunctionSchema {
	return []ports.FunctionSchema{
		{
			Name:        "get_sales_summary",
			Description: "Obtiene un resumen de las ventas del mes actual",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"month": map[string]any{
						"type":        "string",
						"description": "El mes en formato YYYY-MM. Si no se especifica, usa el mes actual",
					},
				},
			},
		},
		{
			Name:        "get_inventory_status",
			Description: "Obtiene el estado del inventario y los insumos críticos o bajos",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"status": map[string]any{
						"type":        "string",
						"enum":        []string{"all", "critical", "low"},
						"description": "Filtrar por estado del inventario",
					},
				},
			},
		},
		{
			Name:        "get_accounts_receivable",
			Description: "Obtiene información sobre cuentas por cobrar y planes de pago",
			Parameters:  map[string]any{"type": "object", "properties": map[string]any{}},
		},
		{
			Name:        "get_top_treatments",
			Description: "Obtiene los tratamientos más rentables",
			Parameters:  map[string]any{"type": "object", "properties": map[string]any{}},
		},
		{
			Name:        "get_profit",
			Description: "Obtiene la utilidad del mes (ventas menos gastos)",
			Parameters:  map[string]any{"type": "object", "properties": map[string]any{}},
		},
	}
}

// Dispatch ejecuta la función por nombre. Los argumentos se aceptan pero hoy
// ninguna función los necesita (el mes y el filtro de estado del catálogo se
// resuelven del lado del agregador).
func (d *Dispatcher) Dispatch(ctx context.Context, name string, _ json.RawMessage) (any, error) {
	switch name {
	case "get_sales_summary":
		return d.dashboard.MonthlySales(ctx)
	case "get_inventory_status":
		return d.inventory.StatusSnapshot(ctx)
	case "get_accounts_receivable":
		return d.receivables.ChatSummary(ctx)
	case "get_top_treatments":
		return d.dashboard.GetTopTreatments(ctx, topTreatmentsForChat)
	case "get_profit":
		summary, err := d.dashboard.MonthlySales(ctx)
		if err != nil {
			return nil, err
		}
		// Gastos en 0 mientras no exista el módulo de compras/gastos.
		return dto.ChatProfitDTO{
			Profit:   summary.Total,
			Revenue:  summary.Total,
			Expenses: 0,
		}, nil
	default:
		return nil, fmt.Errorf("función no encontrada: %s", name)
	}
}
