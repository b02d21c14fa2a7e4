package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del kardex. Los valores en español se conservan tal cual
// se guardan en la base de datos.
const (
	MovementTypeEntrada    = "entrada"    // recepción de mercancía
	MovementTypeSalida     = "salida"     // venta
	MovementTypeAjuste     = "ajuste"     // corrección de inventario
	MovementTypeDevolucion = "devolucion" // devolución de cliente (reingresa)
)

// ValidMovementType indica si el tipo de movimiento es uno de los conocidos.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeEntrada, MovementTypeSalida, MovementTypeAjuste, MovementTypeDevolucion:
		return true
	}
	return false
}

// KardexEntry es un registro inmutable del kardex (historial de movimientos).
// Lleva cantidad/costo de entrada O de salida (nunca ambos; ninguno en un
// ajuste de delta cero) y el saldo del producto tal como quedó tras el
// movimiento. Una vez escrito no se edita ni se borra: las correcciones se
// representan como nuevos movimientos de tipo ajuste.
type KardexEntry struct {
	ID           string
	ProductID    string
	ProductName  string // denormalizado
	MovementDate time.Time
	MovementType string

	QuantityIn  *int64
	CostIn      *decimal.Decimal
	QuantityOut *int64
	CostOut     *decimal.Decimal

	// Saldo del producto después de este movimiento.
	BalanceQuantity   int64
	BalanceAvgCost    decimal.Decimal // costo promedio ponderado
	BalanceTotalValue decimal.Decimal // BalanceQuantity * BalanceAvgCost

	CreatedAt time.Time
}
