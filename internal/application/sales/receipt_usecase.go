package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/intelguy8000/odontologia/internal/domain"
	"github.com/intelguy8000/odontologia/internal/domain/entity"
	"github.com/intelguy8000/odontologia/internal/domain/repository"
)

// ReceiptUseCase genera el recibo en PDF de una venta.
type ReceiptUseCase struct {
	saleRepo   repository.SaleRepository
	configRepo repository.ClinicConfigRepository
	generator  ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(saleRepo repository.SaleRepository, configRepo repository.ClinicConfigRepository, generator ReceiptGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{saleRepo: saleRepo, configRepo: configRepo, generator: generator}
}

// DownloadReceipt genera el PDF del recibo de la venta indicada.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si la venta no existe.
func (uc *ReceiptUseCase) DownloadReceipt(ctx context.Context, saleID string) (pdfBytes []byte, filename string, err error) {
	detail, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, "", err
	}

	clinic, err := uc.configRepo.Get(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		// Sin configuración cargada el recibo sale con encabezado por defecto
		clinic = &entity.ClinicConfig{ID: entity.ClinicConfigID, Name: "Consultorio Odontológico"}
	} else if err != nil {
		return nil, "", fmt.Errorf("recibo: configuración del consultorio: %w", err)
	}

	pdfBytes, err = uc.generator.GenerateReceipt(ctx, detail, clinic)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("recibo_%s.pdf", detail.Sale.ID)
	return pdfBytes, filename, nil
}
