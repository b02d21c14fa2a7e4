package sales

import (
	"context"
	"time"

	"github.com/tu-usuario/pos-kardex/internal/application/inventory"
	"github.com/tu-usuario/pos-kardex/internal/domain/entity"
	"github.com/tu-usuario/pos-kardex/internal/domain/repository"
)

// SaleTxRunner ejecuta una función dentro de una transacción que incluye los
// repos de inventario y el de ventas (para liquidar una venta completa).
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		kardexRepo repository.KardexRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// StockIssuer interfaz para integrar la liquidación de ventas con el inventario.
// ApplyMovementInTx ejecuta el movimiento usando los repositorios del caller
// (misma transacción). Si retorna error (ej: ErrInsufficientStock), el caller
// debe hacer rollback.
type StockIssuer interface {
	ApplyMovementInTx(
		ctx context.Context,
		productRepo repository.ProductRepository,
		kardexRepo repository.KardexRepository,
		input inventory.MovementInput,
		now time.Time,
	) (*entity.KardexEntry, error)
}

// Notifier recibe el aviso de venta completada. La entrega es fuera de la
// unidad atómica: mejor esfuerzo, sin garantía de orden.
type Notifier interface {
	SaleCompleted(sale *entity.Sale)
}

// NoopNotifier descarta los avisos.
type NoopNotifier struct{}

func (NoopNotifier) SaleCompleted(*entity.Sale) {}

// MultiNotifier reparte el aviso a varios notifiers.
type MultiNotifier []Notifier

func (m MultiNotifier) SaleCompleted(sale *entity.Sale) {
	for _, n := range m {
		n.SaleCompleted(sale)
	}
}
