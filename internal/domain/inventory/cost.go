package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-kardex/internal/domain/entity"
)

// Snapshot es la foto actual de un producto derivada del último registro del
// kardex: cantidad en existencia y costo promedio ponderado.
type Snapshot struct {
	Quantity int64
	AvgCost  decimal.Decimal
}

// TotalValue devuelve Quantity * AvgCost.
func (s Snapshot) TotalValue() decimal.Decimal {
	return decimal.NewFromInt(s.Quantity).Mul(s.AvgCost)
}

// SnapshotOf proyecta el saldo a partir del último registro del kardex.
// Si el producto nunca se ha movido (entry nil), la foto es cero.
func SnapshotOf(entry *entity.KardexEntry) Snapshot {
	if entry == nil {
		return Snapshot{Quantity: 0, AvgCost: decimal.Zero}
	}
	return Snapshot{Quantity: entry.BalanceQuantity, AvgCost: entry.BalanceAvgCost}
}

// WeightedAvgCost implementa la lógica de costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// Si la suma no es positiva, el nuevo costo es el costo de la entrada.
// Las salidas nunca pasan por aquí: un egreso no altera el promedio.
func WeightedAvgCost(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return costoEntrada
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum)
}

// NextSnapshot aplica un delta de cantidad sobre la foto actual. El costo
// promedio solo cambia cuando el delta es positivo (entrada con costo unitario);
// en salidas y ajustes negativos la cantidad baja y el promedio queda intacto.
func NextSnapshot(current Snapshot, delta int64, unitCost decimal.Decimal) Snapshot {
	next := Snapshot{Quantity: current.Quantity + delta, AvgCost: current.AvgCost}
	if delta > 0 {
		next.AvgCost = WeightedAvgCost(
			decimal.NewFromInt(current.Quantity), current.AvgCost,
			decimal.NewFromInt(delta), unitCost,
		)
	}
	return next
}
