// Package sales contiene los casos de uso de ventas/tratamientos, incluida la
// transacción venta + descuento de inventario.
package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/intelguy8000/odontologia/internal/application/dto"
	"github.com/intelguy8000/odontologia/internal/domain"
	"github.com/intelguy8000/odontologia/internal/domain/entity"
	"github.com/intelguy8000/odontologia/internal/domain/repository"
)

// CreateSaleUseCase crea una venta y descuenta el inventario consumido en una
// sola transacción, con bloqueo de fila por insumo (SELECT FOR UPDATE).
type CreateSaleUseCase struct {
	txRunner    TxRunner
	patientRepo repository.PatientRepository
	saleRepo    repository.SaleRepository
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(txRunner TxRunner, patientRepo repository.PatientRepository, saleRepo repository.SaleRepository) *CreateSaleUseCase {
	return &CreateSaleUseCase{txRunner: txRunner, patientRepo: patientRepo, saleRepo: saleRepo}
}

// CreateSale valida, abre la transacción y por cada insumo consumido: bloquea
// la fila, verifica stock, crea la relación venta-insumo, descuenta y registra
// el movimiento de salida con referencia a la venta. Si un insumo no existe o
// no alcanza el stock, se revierte todo.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.PatientID == "" || in.Treatment == "" || in.Amount <= 0 {
		return nil, domain.ErrInvalidInput
	}
	method := in.PaymentMethod
	if method == "" {
		method = entity.PaymentMethodEfectivo
	}
	if !entity.ValidPaymentMethod(method) {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.SaleStatusCompletada
	}
	if !entity.ValidSaleStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.ItemsUsed {
		if item.InventoryID == "" || item.QuantityUsed <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}
	date, err := parseSaleDate(in.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	// Paciente fuera de la tx, solo lectura
	if _, err := uc.patientRepo.GetByID(ctx, in.PatientID); err != nil {
		return nil, err
	}

	now := time.Now()
	saleID := uuid.New().String()
	sale := &entity.Sale{
		ID:            saleID,
		Date:          date,
		PatientID:     in.PatientID,
		Treatment:     in.Treatment,
		Amount:        in.Amount,
		PaymentMethod: method,
		Status:        status,
		CreatedAt:     now,
	}

	err = uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		itemRepo repository.InventoryItemRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		for _, used := range in.ItemsUsed {
			// Bloquea la fila del insumo para serializar descuentos concurrentes
			item, err := itemRepo.GetForUpdate(ctx, used.InventoryID)
			if err != nil {
				return err
			}
			if item.CurrentStock < used.QuantityUsed {
				return domain.ErrInsufficientStock
			}
			if err := saleRepo.CreateItem(ctx, &entity.SaleInventoryItem{
				ID:           uuid.New().String(),
				SaleID:       saleID,
				InventoryID:  item.ID,
				QuantityUsed: used.QuantityUsed,
			}); err != nil {
				return err
			}
			if err := itemRepo.UpdateStock(ctx, item.ID, item.CurrentStock-used.QuantityUsed); err != nil {
				return err
			}
			// El movimiento lleva la fecha de la venta, no la de creación:
			// una venta retroactiva debe cuadrar con su salida en el libro.
			if err := movRepo.Create(ctx, &entity.InventoryMovement{
				ID:          uuid.New().String(),
				InventoryID: item.ID,
				Type:        entity.MovementTypeSalida,
				Quantity:    used.QuantityUsed,
				Reason:      "Venta: " + in.Treatment,
				ReferenceID: saleID,
				Date:        date,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	detail, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	out := toSaleResponse(detail)
	return &out, nil
}

// parseSaleDate acepta RFC3339 o YYYY-MM-DD; vacío usa la hora actual.
func parseSaleDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
