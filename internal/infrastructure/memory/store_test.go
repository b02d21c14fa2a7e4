package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/tu-usuario/pos-kardex/internal/application/inventory"
	"github.com/tu-usuario/pos-kardex/internal/domain/entity"
	"github.com/tu-usuario/pos-kardex/internal/domain/repository"
	"github.com/tu-usuario/pos-kardex/internal/infrastructure/memory"
)

func newProduct(id string) *entity.Product {
	now := time.Now()
	return &entity.Product{
		ID:            id,
		Name:          "Producto " + id,
		SalePrice:     decimal.NewFromInt(10),
		PurchasePrice: decimal.NewFromInt(6),
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// TestRun_RollbackDescartaCambios si la función de la transacción falla, nada
// de lo escrito dentro es visible después.
func TestRun_RollbackDescartaCambios(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.Run(ctx, func(productRepo repository.ProductRepository, kardexRepo repository.KardexRepository) error {
		require.NoError(t, productRepo.Create(ctx, newProduct("p1")))
		require.NoError(t, kardexRepo.Append(ctx, &entity.KardexEntry{ProductID: "p1", MovementType: entity.MovementTypeEntrada}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	product, err := memory.NewProductRepository(store).GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, product, "el producto del rollback no existe")

	entries, err := memory.NewKardexRepository(store).ListByProduct(ctx, "p1", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// TestRun_CommitPublicaTodoJunto los cambios de una transacción se vuelven
// visibles de una sola vez.
func TestRun_CommitPublicaTodoJunto(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	err := store.Run(ctx, func(productRepo repository.ProductRepository, kardexRepo repository.KardexRepository) error {
		if err := productRepo.Create(ctx, newProduct("p1")); err != nil {
			return err
		}
		return kardexRepo.Append(ctx, &entity.KardexEntry{
			ProductID:       "p1",
			MovementType:    entity.MovementTypeEntrada,
			BalanceQuantity: 4,
		})
	})
	require.NoError(t, err)

	product, err := memory.NewProductRepository(store).GetByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, product)

	latest, err := memory.NewKardexRepository(store).Latest(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, int64(4), latest.BalanceQuantity)
}

// TestKardex_AppendOnly el kardex solo crece: cada Append agrega y ninguna
// operación del repositorio permite editar o borrar lo anexado.
func TestKardex_AppendOnly(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	repo := memory.NewKardexRepository(store)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Append(ctx, &entity.KardexEntry{
			ProductID:       "p1",
			MovementType:    entity.MovementTypeEntrada,
			BalanceQuantity: int64(i + 1),
		}))
	}

	entries, err := repo.ListByProduct(ctx, "p1", 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Mutar lo devuelto no toca lo almacenado (el repo entrega copias).
	entries[0].BalanceQuantity = 999
	again, err := repo.ListByProduct(ctx, "p1", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), again[0].BalanceQuantity)
}

// TestKardex_OperacionAjenaNoTocaOtroProducto mover el producto B no altera
// el último registro ni el historial del producto A.
func TestKardex_OperacionAjenaNoTocaOtroProducto(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	require.NoError(t, memory.NewProductRepository(store).Create(ctx, newProduct("a")))
	require.NoError(t, memory.NewProductRepository(store).Create(ctx, newProduct("b")))

	uc := appinventory.NewApplyMovementUseCase(store)
	costo := decimal.NewFromInt(5)
	_, err := uc.ApplyMovement(ctx, appinventory.MovementInput{
		ProductID: "a", QuantityDelta: 7, Type: entity.MovementTypeEntrada, UnitCost: &costo,
	})
	require.NoError(t, err)

	kardexRepo := memory.NewKardexRepository(store)
	antes, err := kardexRepo.Latest(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, antes)

	// Operación sobre otro producto.
	otroCosto := decimal.NewFromInt(9)
	_, err = uc.ApplyMovement(ctx, appinventory.MovementInput{
		ProductID: "b", QuantityDelta: 2, Type: entity.MovementTypeEntrada, UnitCost: &otroCosto,
	})
	require.NoError(t, err)

	despues, err := kardexRepo.Latest(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, despues)
	assert.Equal(t, antes.ID, despues.ID)
	assert.Equal(t, antes.BalanceQuantity, despues.BalanceQuantity)
	assert.True(t, antes.BalanceAvgCost.Equal(despues.BalanceAvgCost))

	historial, err := kardexRepo.ListByProduct(ctx, "a", 10, 0)
	require.NoError(t, err)
	assert.Len(t, historial, 1, "el historial de A no creció por el movimiento de B")
}

// TestCreateProduct_BarcodeDuplicado dos productos no pueden compartir código
// de barras.
func TestCreateProduct_BarcodeDuplicado(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	repo := memory.NewProductRepository(store)

	p1 := newProduct("p1")
	p1.Barcode = "777"
	require.NoError(t, repo.Create(ctx, p1))

	p2 := newProduct("p2")
	p2.Barcode = "777"
	err := repo.Create(ctx, p2)
	assert.Error(t, err)
}

// TestConcurrencia_EscritoresDelMismoProducto N goroutines aplicando entradas
// de 1 unidad terminan con stock N y N registros: el mutex global serializa y
// ningún incremento se pierde.
func TestConcurrencia_EscritoresDelMismoProducto(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	require.NoError(t, memory.NewProductRepository(store).Create(ctx, newProduct("p1")))

	uc := appinventory.NewApplyMovementUseCase(store)
	const writers = 32

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cost := decimal.NewFromInt(2)
			_, err := uc.ApplyMovement(ctx, appinventory.MovementInput{
				ProductID:     "p1",
				QuantityDelta: 1,
				Type:          entity.MovementTypeEntrada,
				UnitCost:      &cost,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	product, err := memory.NewProductRepository(store).GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(writers), product.CurrentStock)

	entries, err := memory.NewKardexRepository(store).ListByProduct(ctx, "p1", writers+1, 0)
	require.NoError(t, err)
	assert.Len(t, entries, writers, "un registro por escritor, ninguno perdido")
}
