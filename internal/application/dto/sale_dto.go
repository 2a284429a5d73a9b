package dto

import "time"

// SaleItemUsed insumo consumido por la venta.
type SaleItemUsed struct {
	InventoryID  string `json:"inventoryId"`
	QuantityUsed int    `json:"quantityUsed"`
}

// CreateSaleRequest alta de venta. Amount en COP enteros.
type CreateSaleRequest struct {
	Date          string         `json:"date"` // RFC3339 o YYYY-MM-DD; vacío = ahora
	PatientID     string         `json:"patientId"`
	Treatment     string         `json:"treatment"`
	Amount        int64          `json:"amount"`
	PaymentMethod string         `json:"paymentMethod"` // por defecto: efectivo
	Status        string         `json:"status"`        // por defecto: completada
	ItemsUsed     []SaleItemUsed `json:"itemsUsed"`
}

// UpdateSaleStatusRequest cambio de estado de una venta.
type UpdateSaleStatusRequest struct {
	Status string `json:"status"`
}

// SaleItemDTO insumo consumido, con los datos del insumo.
type SaleItemDTO struct {
	InventoryID  string `json:"inventoryId"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	Unit         string `json:"unit"`
	QuantityUsed int    `json:"quantityUsed"`
}

// SalePatientDTO paciente resumido dentro de una venta.
type SalePatientDTO struct {
	ID       string `json:"id"`
	Document string `json:"document"`
	FullName string `json:"fullName"`
}

// SaleResponse venta con paciente e insumos consumidos.
type SaleResponse struct {
	ID            string         `json:"id"`
	Date          time.Time      `json:"date"`
	Treatment     string         `json:"treatment"`
	Amount        int64          `json:"amount"`
	PaymentMethod string         `json:"paymentMethod"`
	Status        string         `json:"status"`
	Patient       SalePatientDTO `json:"patient"`
	ItemsUsed     []SaleItemDTO  `json:"itemsUsed"`
	CreatedAt     time.Time      `json:"createdAt"`
}
