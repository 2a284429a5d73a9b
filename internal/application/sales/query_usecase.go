package sales

import (
	"context"
	"time"

	"github.com/intelguy8000/odontologia/internal/application/dto"
	"github.com/intelguy8000/odontologia/internal/domain"
	"github.com/intelguy8000/odontologia/internal/domain/entity"
	"github.com/intelguy8000/odontologia/internal/domain/repository"
)

// QueryUseCase consultas y cambio de estado de ventas.
type QueryUseCase struct {
	saleRepo repository.SaleRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(saleRepo repository.SaleRepository) *QueryUseCase {
	return &QueryUseCase{saleRepo: saleRepo}
}

// ListFilters filtros opcionales de listado. Las fechas vienen YYYY-MM-DD.
type ListFilters struct {
	PatientID string
	Status    string
	DateFrom  string
	DateTo    string
}

// List devuelve ventas con paciente e insumos, la más reciente primero.
func (uc *QueryUseCase) List(ctx context.Context, f ListFilters) ([]dto.SaleResponse, error) {
	if f.Status != "" && !entity.ValidSaleStatus(f.Status) {
		return nil, domain.ErrInvalidInput
	}
	filters := repository.SaleFilters{PatientID: f.PatientID, Status: f.Status}
	if f.DateFrom != "" {
		t, err := time.Parse("2006-01-02", f.DateFrom)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filters.DateFrom = &t
	}
	if f.DateTo != "" {
		t, err := time.Parse("2006-01-02", f.DateTo)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		// inclusivo: hasta el final del día
		end := t.Add(24*time.Hour - time.Nanosecond)
		filters.DateTo = &end
	}

	rows, err := uc.saleRepo.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toSaleResponse(row))
	}
	return out, nil
}

// GetByID devuelve una venta con su detalle completo.
func (uc *QueryUseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	detail, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toSaleResponse(detail)
	return &out, nil
}

// UpdateStatus cambia el estado de la venta. El inventario no se repone al
// cancelar: eso se corrige con un movimiento manual de entrada.
func (uc *QueryUseCase) UpdateStatus(ctx context.Context, id, status string) error {
	if !entity.ValidSaleStatus(status) {
		return domain.ErrInvalidInput
	}
	updated, err := uc.saleRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if !updated {
		return domain.ErrNotFound
	}
	return nil
}

func toSaleResponse(detail *repository.SaleWithDetail) dto.SaleResponse {
	items := make([]dto.SaleItemDTO, 0, len(detail.Items))
	for _, it := range detail.Items {
		items = append(items, dto.SaleItemDTO{
			InventoryID:  it.Join.InventoryID,
			Code:         it.Item.Code,
			Name:         it.Item.Name,
			Unit:         it.Item.Unit,
			QuantityUsed: it.Join.QuantityUsed,
		})
	}
	return dto.SaleResponse{
		ID:            detail.Sale.ID,
		Date:          detail.Sale.Date,
		Treatment:     detail.Sale.Treatment,
		Amount:        detail.Sale.Amount,
		PaymentMethod: detail.Sale.PaymentMethod,
		Status:        detail.Sale.Status,
		Patient: dto.SalePatientDTO{
			ID:       detail.Patient.ID,
			Document: detail.Patient.Document,
			FullName: detail.Patient.FullName,
		},
		ItemsUsed: items,
		CreatedAt: detail.Sale.CreatedAt,
	}
}
