package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/pos-kardex/internal/domain/entity"
	"github.com/tu-usuario/pos-kardex/internal/domain/inventory"
)

// TestWeightedAvgCost_VectorBasico valida el vector clásico del promedio
// ponderado: 10 unidades a $5 más 10 unidades a $7 deben promediar $6.
func TestWeightedAvgCost_VectorBasico(t *testing.T) {
	got := inventory.WeightedAvgCost(
		decimal.NewFromInt(10), decimal.NewFromInt(5),
		decimal.NewFromInt(10), decimal.NewFromInt(7),
	)
	assert.True(t, got.Equal(decimal.NewFromInt(6)),
		"((10*5)+(10*7))/20 debe dar 6, se obtuvo %s", got)
}

// TestWeightedAvgCost_EntradaSobreStockCero con stock cero el promedio pasa a
// ser exactamente el costo de la entrada.
func TestWeightedAvgCost_EntradaSobreStockCero(t *testing.T) {
	got := inventory.WeightedAvgCost(
		decimal.Zero, decimal.Zero,
		decimal.NewFromInt(4), decimal.NewFromFloat(2.50),
	)
	assert.True(t, got.Equal(decimal.NewFromFloat(2.50)))
}

// TestWeightedAvgCost_SumaNoPositiva si el stock resultante no es positivo, el
// costo de la entrada manda (evita división por cero o promedios sin sentido).
func TestWeightedAvgCost_SumaNoPositiva(t *testing.T) {
	got := inventory.WeightedAvgCost(
		decimal.NewFromInt(-3), decimal.NewFromInt(9),
		decimal.NewFromInt(3), decimal.NewFromInt(4),
	)
	assert.True(t, got.Equal(decimal.NewFromInt(4)),
		"con suma <= 0 el nuevo costo es el de la entrada")
}

// TestWeightedAvgCost_CostosFraccionarios verifica precisión decimal sin
// acumulación de error de punto flotante.
func TestWeightedAvgCost_CostosFraccionarios(t *testing.T) {
	got := inventory.WeightedAvgCost(
		decimal.NewFromInt(3), decimal.RequireFromString("0.10"),
		decimal.NewFromInt(7), decimal.RequireFromString("0.30"),
	)
	assert.True(t, got.Equal(decimal.RequireFromString("0.24")),
		"((3*0.10)+(7*0.30))/10 debe dar 0.24 exacto, se obtuvo %s", got)
}

// TestNextSnapshot_SalidaNoAlteraPromedio una salida baja la cantidad pero el
// promedio queda intacto.
func TestNextSnapshot_SalidaNoAlteraPromedio(t *testing.T) {
	current := inventory.Snapshot{Quantity: 20, AvgCost: decimal.NewFromInt(6)}

	next := inventory.NextSnapshot(current, -5, decimal.Zero)

	assert.Equal(t, int64(15), next.Quantity)
	assert.True(t, next.AvgCost.Equal(decimal.NewFromInt(6)),
		"un egreso nunca cambia el costo promedio")
}

// TestNextSnapshot_EntradaPliegaElPromedio una entrada pliega el promedio con
// el costo unitario de la mercancía entrante.
func TestNextSnapshot_EntradaPliegaElPromedio(t *testing.T) {
	current := inventory.Snapshot{Quantity: 10, AvgCost: decimal.NewFromInt(5)}

	next := inventory.NextSnapshot(current, 10, decimal.NewFromInt(7))

	assert.Equal(t, int64(20), next.Quantity)
	assert.True(t, next.AvgCost.Equal(decimal.NewFromInt(6)))
}

// TestNextSnapshot_AjusteNegativoSobreCero llevar el stock a cero deja el
// promedio como estaba; la próxima entrada lo redefine.
func TestNextSnapshot_AjusteNegativoSobreCero(t *testing.T) {
	current := inventory.Snapshot{Quantity: 8, AvgCost: decimal.NewFromInt(3)}

	aCero := inventory.NextSnapshot(current, -8, decimal.Zero)
	assert.Equal(t, int64(0), aCero.Quantity)
	assert.True(t, aCero.AvgCost.Equal(decimal.NewFromInt(3)))

	reentrada := inventory.NextSnapshot(aCero, 5, decimal.NewFromInt(11))
	assert.True(t, reentrada.AvgCost.Equal(decimal.NewFromInt(11)),
		"tras quedar en cero, la entrada redefine el promedio a su propio costo")
}

// TestSnapshotOf_KardexVacio sin movimientos la foto es cero.
func TestSnapshotOf_KardexVacio(t *testing.T) {
	snap := inventory.SnapshotOf(nil)

	assert.Equal(t, int64(0), snap.Quantity)
	assert.True(t, snap.AvgCost.IsZero())
	assert.True(t, snap.TotalValue().IsZero())
}

// TestSnapshotOf_UltimoRegistro la foto sale de los saldos plegados del último
// registro, no de recalcular la historia.
func TestSnapshotOf_UltimoRegistro(t *testing.T) {
	entry := &entity.KardexEntry{
		BalanceQuantity: 42,
		BalanceAvgCost:  decimal.RequireFromString("3.75"),
	}

	snap := inventory.SnapshotOf(entry)

	assert.Equal(t, int64(42), snap.Quantity)
	assert.True(t, snap.AvgCost.Equal(decimal.RequireFromString("3.75")))
	assert.True(t, snap.TotalValue().Equal(decimal.RequireFromString("157.50")))
}
