package dto

// ChatRequest mensaje del usuario al asistente.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse respuesta del asistente (o error controlado).
type ChatResponse struct {
	Response string `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
}

// ChatSalesSummaryDTO resultado de get_sales_summary.
type ChatSalesSummaryDTO struct {
	Total int64 `json:"total"`
	Count int   `json:"count"`
}

// ChatInventoryItemDTO insumo resumido para el asistente.
type ChatInventoryItemDTO struct {
	Name         string `json:"name"`
	CurrentStock int    `json:"currentStock"`
	MinStock     int    `json:"minStock"`
	Unit         string `json:"unit"`
	Status       string `json:"status"`
}

// ChatInventoryStatusDTO resultado de get_inventory_status.
type ChatInventoryStatusDTO struct {
	Critical int                    `json:"critical"`
	Low      int                    `json:"low"`
	Items    []ChatInventoryItemDTO `json:"items"`
}

// ChatReceivablesDTO resultado de get_accounts_receivable.
type ChatReceivablesDTO struct {
	TotalReceivable     int64 `json:"totalReceivable"`
	ActivePlans         int   `json:"activePlans"`
	OverdueInstallments int   `json:"overdueInstallments"`
}

// ChatProfitDTO resultado de get_profit. Expenses es 0 mientras no exista el
// módulo de gastos.
type ChatProfitDTO struct {
	Profit   int64 `json:"profit"`
	Revenue  int64 `json:"revenue"`
	Expenses int64 `json:"expenses"`
}
