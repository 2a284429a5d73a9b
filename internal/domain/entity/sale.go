package entity

import "time"

// Métodos de pago aceptados por el consultorio.
const (
	PaymentMethodEfectivo      = "efectivo"
	PaymentMethodTarjeta       = "tarjeta"
	PaymentMethodTransferencia = "transferencia"
	PaymentMethodNequi         = "nequi"
	PaymentMethodPlanPagos     = "plan_pagos"
)

// Estados de una venta.
const (
	SaleStatusCompletada = "completada"
	SaleStatusPendiente  = "pendiente"
	SaleStatusCancelada  = "cancelada"
)

// Sale representa una venta/tratamiento realizado a un paciente.
// Amount está en pesos colombianos enteros (sin decimales).
type Sale struct {
	ID            string
	Date          time.Time
	PatientID     string
	Treatment     string
	Amount        int64
	PaymentMethod string
	Status        string
	CreatedAt     time.Time
}

// ValidPaymentMethod verifica que el método de pago sea uno de los aceptados.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodEfectivo, PaymentMethodTarjeta, PaymentMethodTransferencia,
		PaymentMethodNequi, PaymentMethodPlanPagos:
		return true
	}
	return false
}

// ValidSaleStatus verifica que el estado sea uno de los definidos.
func ValidSaleStatus(s string) bool {
	switch s {
	case SaleStatusCompletada, SaleStatusPendiente, SaleStatusCancelada:
		return true
	}
	return false
}

// SaleInventoryItem es la relación entre una venta y los insumos que consumió.
// Se crea únicamente al momento de crear la venta y es inmutable después.
type SaleInventoryItem struct {
	ID           string
	SaleID       string
	InventoryID  string
	QuantityUsed int
}
