// Package inventory contiene los casos de uso del inventario de insumos:
// catálogo, alertas de stock, estadísticas y movimientos manuales.
package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/intelguy8000/odontologia/internal/application/dto"
	"github.com/intelguy8000/odontologia/internal/domain"
	"github.com/intelguy8000/odontologia/internal/domain/entity"
	"github.com/intelguy8000/odontologia/internal/domain/inventory"
	"github.com/intelguy8000/odontologia/internal/domain/repository"
)

// movementHistoryLimit cuántos movimientos recientes devuelve el detalle.
const movementHistoryLimit = 10

// UseCase casos de uso de consulta y mantenimiento del catálogo de insumos.
// El stock NO se toca desde aquí: solo vía RegisterMovementUseCase o la
// transacción de venta.
type UseCase struct {
	itemRepo repository.InventoryItemRepository
	movRepo  repository.InventoryMovementRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(itemRepo repository.InventoryItemRepository, movRepo repository.InventoryMovementRepository) *UseCase {
	return &UseCase{itemRepo: itemRepo, movRepo: movRepo}
}

// CreateItem da de alta un insumo con stock inicial 0. El stock inicial se
// carga después con un movimiento de entrada, para que quede en el libro.
func (uc *UseCase) CreateItem(ctx context.Context, in dto.CreateInventoryItemRequest) (*dto.InventoryItemDTO, error) {
	if in.Code == "" || in.Name == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.MinStock < 0 || in.AvgCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	item := &entity.InventoryItem{
		ID:           uuid.New().String(),
		Code:         in.Code,
		Name:         in.Name,
		Category:     in.Category,
		CurrentStock: 0,
		MinStock:     in.MinStock,
		Unit:         in.Unit,
		AvgCost:      in.AvgCost,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	out := toItemDTO(item)
	return &out, nil
}

// UpdateItem actualiza los datos maestros del insumo (nunca el stock).
func (uc *UseCase) UpdateItem(ctx context.Context, id string, in dto.UpdateInventoryItemRequest) (*dto.InventoryItemDTO, error) {
	if in.Name == "" || in.Unit == "" || in.MinStock < 0 || in.AvgCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Name = in.Name
	item.Category = in.Category
	item.MinStock = in.MinStock
	item.Unit = in.Unit
	item.AvgCost = in.AvgCost
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	out := toItemDTO(item)
	return &out, nil
}

// GetItem devuelve el insumo con sus últimos movimientos.
func (uc *UseCase) GetItem(ctx context.Context, id string) (*dto.InventoryItemDetailDTO, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	movements, err := uc.movRepo.ListByItem(ctx, id, movementHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("inventario: movimientos de %s: %w", id, err)
	}

	detail := &dto.InventoryItemDetailDTO{
		InventoryItemDTO: toItemDTO(item),
		Movements:        make([]dto.MovementDTO, 0, len(movements)),
	}
	for _, mov := range movements {
		detail.Movements = append(detail.Movements, dto.MovementDTO{
			ID:          mov.ID,
			Type:        mov.Type,
			Quantity:    mov.Quantity,
			Reason:      mov.Reason,
			ReferenceID: mov.ReferenceID,
			Date:        mov.Date,
		})
	}
	return detail, nil
}

// List devuelve todos los insumos con su estado derivado.
func (uc *UseCase) List(ctx context.Context) ([]dto.InventoryItemDTO, error) {
	items, err := uc.itemRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toItemDTO(item))
	}
	return out, nil
}

// Alerts devuelve los insumos bajo mínimo con el faltante para reponer.
func (uc *UseCase) Alerts(ctx context.Context) ([]dto.InventoryAlertDTO, error) {
	items, err := uc.itemRepo.ListBelowMin(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryAlertDTO, 0, len(items))
	for _, item := range items {
		out = append(out, dto.InventoryAlertDTO{
			InventoryItemDTO: toItemDTO(item),
			Deficit:          inventory.Deficit(item.CurrentStock, item.MinStock),
		})
	}
	return out, nil
}

// Stats devuelve el resumen global: total de insumos, valor del inventario y
// conteos por estado.
func (uc *UseCase) Stats(ctx context.Context) (*dto.InventoryStatsDTO, error) {
	items, err := uc.itemRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &dto.InventoryStatsDTO{TotalItems: len(items), TotalValue: decimal.Zero}
	for _, item := range items {
		stats.TotalValue = stats.TotalValue.Add(item.TotalValue())
		switch inventory.Status(item.CurrentStock, item.MinStock) {
		case inventory.StockCritical:
			stats.CriticalStockCount++
		case inventory.StockLow:
			stats.LowStockCount++
		}
	}
	return stats, nil
}

// StatusSnapshot resume el inventario para el asistente: conteos por estado y
// la lista de insumos bajo mínimo.
func (uc *UseCase) StatusSnapshot(ctx context.Context) (dto.ChatInventoryStatusDTO, error) {
	items, err := uc.itemRepo.ListBelowMin(ctx)
	if err != nil {
		return dto.ChatInventoryStatusDTO{}, err
	}

	snapshot := dto.ChatInventoryStatusDTO{Items: make([]dto.ChatInventoryItemDTO, 0, len(items))}
	for _, item := range items {
		status := inventory.Status(item.CurrentStock, item.MinStock)
		switch status {
		case inventory.StockCritical:
			snapshot.Critical++
		case inventory.StockLow:
			snapshot.Low++
		}
		snapshot.Items = append(snapshot.Items, dto.ChatInventoryItemDTO{
			Name:         item.Name,
			CurrentStock: item.CurrentStock,
			MinStock:     item.MinStock,
			Unit:         item.Unit,
			Status:       string(status),
		})
	}
	return snapshot, nil
}

// toItemDTO deriva estado y valor total del insumo.
func toItemDTO(item *entity.InventoryItem) dto.InventoryItemDTO {
	return dto.InventoryItemDTO{
		ID:           item.ID,
		Code:         item.Code,
		Name:         item.Name,
		Category:     item.Category,
		CurrentStock: item.CurrentStock,
		MinStock:     item.MinStock,
		Unit:         item.Unit,
		AvgCost:      item.AvgCost,
		Status:       string(inventory.Status(item.CurrentStock, item.MinStock)),
		TotalValue:   item.TotalValue(),
	}
}
