package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-kardex/internal/application/inventory"
	"github.com/tu-usuario/pos-kardex/internal/domain"
	"github.com/tu-usuario/pos-kardex/internal/domain/entity"
	"github.com/tu-usuario/pos-kardex/internal/domain/repository"
)

// maxConflictRetries acota los reintentos cuando dos liquidaciones concurrentes
// chocan sobre los mismos productos (deadlock o fallo de serialización).
const maxConflictRetries = 3

// SettleUseCase liquida una venta: descuenta el stock de cada línea (releyendo
// el saldo vigente dentro de la transacción, nunca el visto por el cliente) y
// guarda la venta, todo en una sola unidad atómica. Si cualquier línea falla,
// ninguna línea descuenta stock y no se crea la venta.
type SettleUseCase struct {
	txRunner SaleTxRunner
	issuer   StockIssuer
	notifier Notifier
}

// NewSettleUseCase construye el caso de uso.
func NewSettleUseCase(txRunner SaleTxRunner, issuer StockIssuer, notifier Notifier) *SettleUseCase {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &SettleUseCase{txRunner: txRunner, issuer: issuer, notifier: notifier}
}

// SettleLine una línea de la venta a liquidar.
// UnitPrice nil usa el precio de venta vigente del producto.
type SettleLine struct {
	ProductID string
	Quantity  int64
	UnitPrice *decimal.Decimal
}

// SettleInput entrada para liquidar una venta.
type SettleInput struct {
	ClientID      string
	ClientName    string
	PaymentMethod string
	Items         []SettleLine
}

func (in SettleInput) validate() error {
	if len(in.Items) == 0 {
		return domain.ErrEmptyOrder
	}
	for _, line := range in.Items {
		if line.ProductID == "" || line.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
		if line.UnitPrice != nil && line.UnitPrice.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// Settle valida la orden, ejecuta la liquidación con reintentos acotados ante
// conflicto y, solo tras confirmar, dispara el aviso de venta completada
// (mejor esfuerzo, fuera de la unidad atómica).
func (uc *SettleUseCase) Settle(ctx context.Context, input SettleInput) (*entity.Sale, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		sale, err := uc.settleOnce(ctx, input)
		if err == nil {
			uc.notifier.SaleCompleted(sale)
			return sale, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%w: %v", domain.ErrConflictRetryExhausted, lastErr)
}

func (uc *SettleUseCase) settleOnce(ctx context.Context, input SettleInput) (*entity.Sale, error) {
	now := time.Now()
	var sale *entity.Sale

	err := uc.txRunner.RunSale(ctx, func(
		productRepo repository.ProductRepository,
		kardexRepo repository.KardexRepository,
		saleRepo repository.SaleRepository,
	) error {
		items := make([]entity.SaleItem, 0, len(input.Items))
		total := decimal.Zero

		for _, line := range input.Items {
			// 1) Salida de stock: bloquea la fila, revalida el saldo vigente
			// y anexa el registro al kardex. Si no hay stock, rollback total.
			entry, err := uc.issuer.ApplyMovementInTx(ctx, productRepo, kardexRepo, inventory.MovementInput{
				ProductID:     line.ProductID,
				QuantityDelta: -line.Quantity,
				Type:          entity.MovementTypeSalida,
			}, now)
			if err != nil {
				return err
			}

			// 2) Con la fila ya bloqueada, lee el precio de venta vigente.
			product, err := productRepo.GetByID(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrProductNotFound
			}

			unitPrice := product.SalePrice
			if line.UnitPrice != nil {
				unitPrice = *line.UnitPrice
			}
			qty := decimal.NewFromInt(line.Quantity)
			subtotal := unitPrice.Mul(qty)
			total = total.Add(subtotal)

			items = append(items, entity.SaleItem{
				ProductID:        product.ID,
				ProductName:      entry.ProductName,
				Quantity:         line.Quantity,
				UnitSalePrice:    unitPrice,
				UnitPurchaseCost: *entry.CostOut,
				LineSubtotal:     subtotal,
			})
		}

		if !total.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}

		sale = &entity.Sale{
			ClientID:      input.ClientID,
			ClientName:    input.ClientName,
			Items:         items,
			TotalAmount:   total,
			PaymentMethod: input.PaymentMethod,
			Status:        entity.SaleStatusCompleted,
			SaleDate:      now,
			CreatedAt:     now,
		}
		// 3) La venta se guarda en la misma transacción que las salidas.
		return saleRepo.Create(ctx, sale)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}
