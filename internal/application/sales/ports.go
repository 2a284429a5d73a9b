package sales

import (
	"context"

	"github.com/intelguy8000/odontologia/internal/domain/entity"
	"github.com/intelguy8000/odontologia/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye los
// repos de ventas e inventario. La venta, sus insumos, los descuentos de
// stock y los movimientos se escriben juntos o no se escribe nada.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		itemRepo repository.InventoryItemRepository,
		movRepo repository.InventoryMovementRepository,
	) error) error
}

// ReceiptGenerator genera la representación en PDF del recibo de una venta.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, sale *repository.SaleWithDetail, clinic *entity.ClinicConfig) ([]byte, error)
}
