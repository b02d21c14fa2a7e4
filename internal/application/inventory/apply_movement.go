package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-kardex/internal/domain"
	"github.com/tu-usuario/pos-kardex/internal/domain/entity"
	"github.com/tu-usuario/pos-kardex/internal/domain/inventory"
	"github.com/tu-usuario/pos-kardex/internal/domain/repository"
)

// maxConflictRetries acota los reintentos ante conflictos de serialización
// entre escritores concurrentes del mismo producto.
const maxConflictRetries = 3

// ApplyMovementUseCase es el coordinador de transacciones de stock: aplica un
// cambio de stock (entrada, salida, ajuste o devolución) como unidad atómica:
// leer foto actual, validar, actualizar stock del producto y anexar el
// registro al kardex en una sola transacción con bloqueo de fila.
type ApplyMovementUseCase struct {
	txRunner TxRunner
}

// NewApplyMovementUseCase construye el coordinador.
func NewApplyMovementUseCase(txRunner TxRunner) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{txRunner: txRunner}
}

// MovementInput entrada para aplicar un movimiento de stock.
// QuantityDelta es con signo: positivo entra, negativo sale.
// UnitCost es obligatorio cuando QuantityDelta > 0 y se ignora en el resto.
type MovementInput struct {
	ProductID     string
	QuantityDelta int64
	Type          string
	UnitCost      *decimal.Decimal
}

func (in MovementInput) validate() error {
	if in.ProductID == "" || !entity.ValidMovementType(in.Type) {
		return domain.ErrInvalidInput
	}
	switch in.Type {
	case entity.MovementTypeEntrada, entity.MovementTypeDevolucion:
		// entrada y devolución de cliente siempre ingresan mercancía
		if in.QuantityDelta <= 0 {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeSalida:
		if in.QuantityDelta >= 0 {
			return domain.ErrInvalidInput
		}
	}
	if in.QuantityDelta > 0 && (in.UnitCost == nil || in.UnitCost.LessThan(decimal.Zero)) {
		return domain.ErrInvalidInput
	}
	return nil
}

// ApplyMovement ejecuta el movimiento en su propia transacción, con reintentos
// acotados ante conflicto de serialización. Si algo falla no queda estado
// parcial visible: producto y kardex se escriben juntos o no se escriben.
func (uc *ApplyMovementUseCase) ApplyMovement(ctx context.Context, input MovementInput) (*entity.KardexEntry, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	var entry *entity.KardexEntry
	var lastErr error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		err := uc.txRunner.Run(ctx, func(
			productRepo repository.ProductRepository,
			kardexRepo repository.KardexRepository,
		) error {
			e, err := uc.ApplyMovementInTx(ctx, productRepo, kardexRepo, input, time.Now())
			if err != nil {
				return err
			}
			entry = e
			return nil
		})
		if err == nil {
			return entry, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%w: %v", domain.ErrConflictRetryExhausted, lastErr)
}

// ApplyMovementInTx aplica el movimiento usando los repositorios proporcionados
// (misma transacción del caller). Lo usan la liquidación de ventas y el upsert
// de catálogo para incluir el movimiento dentro de su propia unidad atómica.
// Si retorna error (ej: ErrInsufficientStock), el caller debe hacer rollback.
func (uc *ApplyMovementUseCase) ApplyMovementInTx(
	ctx context.Context,
	productRepo repository.ProductRepository,
	kardexRepo repository.KardexRepository,
	input MovementInput,
	now time.Time,
) (*entity.KardexEntry, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	// Bloquea la fila del producto para serializar escritores del mismo producto
	product, err := productRepo.GetByIDForUpdate(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	last, err := kardexRepo.Latest(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	snap := inventory.SnapshotOf(last)

	if snap.Quantity+input.QuantityDelta < 0 {
		return nil, domain.ErrInsufficientStock
	}

	unitCost := decimal.Zero
	if input.QuantityDelta > 0 {
		unitCost = *input.UnitCost
	}
	next := inventory.NextSnapshot(snap, input.QuantityDelta, unitCost)

	if err := productRepo.UpdateStock(ctx, product.ID, next.Quantity); err != nil {
		return nil, err
	}

	entry := &entity.KardexEntry{
		ProductID:         product.ID,
		ProductName:       product.Name,
		MovementDate:      now,
		MovementType:      input.Type,
		BalanceQuantity:   next.Quantity,
		BalanceAvgCost:    next.AvgCost,
		BalanceTotalValue: next.TotalValue(),
		CreatedAt:         now,
	}
	switch {
	case input.QuantityDelta > 0:
		qty := input.QuantityDelta
		entry.QuantityIn = &qty
		entry.CostIn = &unitCost
	case input.QuantityDelta < 0:
		qty := -input.QuantityDelta
		cost := snap.AvgCost // la salida se valora al costo promedio vigente
		entry.QuantityOut = &qty
		entry.CostOut = &cost
	}

	if err := kardexRepo.Append(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}
