package sales_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/tu-usuario/pos-kardex/internal/application/inventory"
	"github.com/tu-usuario/pos-kardex/internal/application/sales"
	"github.com/tu-usuario/pos-kardex/internal/domain"
	"github.com/tu-usuario/pos-kardex/internal/domain/entity"
	"github.com/tu-usuario/pos-kardex/internal/domain/repository"
	"github.com/tu-usuario/pos-kardex/internal/infrastructure/memory"
)

// capturingNotifier guarda los avisos recibidos para asertarlos.
type capturingNotifier struct {
	sales []*entity.Sale
}

func (n *capturingNotifier) SaleCompleted(sale *entity.Sale) {
	n.sales = append(n.sales, sale)
}

type settleFixture struct {
	store    *memory.Store
	uc       *sales.SettleUseCase
	notifier *capturingNotifier
}

func newSettleFixture(t *testing.T) *settleFixture {
	t.Helper()
	store := memory.New()
	issuer := appinventory.NewApplyMovementUseCase(store)
	notifier := &capturingNotifier{}
	return &settleFixture{
		store:    store,
		uc:       sales.NewSettleUseCase(store, issuer, notifier),
		notifier: notifier,
	}
}

func (f *settleFixture) seedProduct(t *testing.T, id, name string, stock int64, salePrice, unitCost string) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()
	product := &entity.Product{
		ID:            id,
		Name:          name,
		SalePrice:     decimal.RequireFromString(salePrice),
		PurchasePrice: decimal.RequireFromString(unitCost),
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, memory.NewProductRepository(f.store).Create(ctx, product))

	if stock > 0 {
		cost := decimal.RequireFromString(unitCost)
		_, err := appinventory.NewApplyMovementUseCase(f.store).ApplyMovement(ctx, appinventory.MovementInput{
			ProductID:     id,
			QuantityDelta: stock,
			Type:          entity.MovementTypeEntrada,
			UnitCost:      &cost,
		})
		require.NoError(t, err)
	}
}

// TestSettle_VentaCompleta liquida una venta de dos líneas: descuenta stock,
// anexa kardex, guarda la venta con líneas denormalizadas y notifica.
func TestSettle_VentaCompleta(t *testing.T) {
	f := newSettleFixture(t)
	f.seedProduct(t, "p1", "Arroz 1kg", 10, "4.50", "3.00")
	f.seedProduct(t, "p2", "Aceite 1L", 5, "9.00", "7.00")
	ctx := context.Background()

	sale, err := f.uc.Settle(ctx, sales.SettleInput{
		ClientName:    "Mostrador",
		PaymentMethod: "efectivo",
		Items: []sales.SettleLine{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.SaleStatusCompleted, sale.Status)
	assert.True(t, sale.TotalAmount.Equal(decimal.RequireFromString("18.00")), "2*4.50 + 1*9.00")
	require.Len(t, sale.Items, 2)
	assert.Equal(t, "Arroz 1kg", sale.Items[0].ProductName)
	assert.True(t, sale.Items[0].UnitPurchaseCost.Equal(decimal.RequireFromString("3.00")),
		"la línea guarda el costo promedio al momento de la venta")

	// Stock descontado en la misma unidad.
	p1, err := memory.NewProductRepository(f.store).GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(8), p1.CurrentStock)

	// La venta quedó persistida y el aviso salió tras confirmar.
	persisted, err := memory.NewSaleRepository(f.store).GetByID(ctx, sale.ID)
	require.NoError(t, err)
	require.NotNil(t, persisted)
	require.Len(t, f.notifier.sales, 1)
	assert.Equal(t, sale.ID, f.notifier.sales[0].ID)
}

// TestSettle_PrecioManualPorLinea una línea puede vender a un precio distinto
// del vigente (descuento de mostrador).
func TestSettle_PrecioManualPorLinea(t *testing.T) {
	f := newSettleFixture(t)
	f.seedProduct(t, "p1", "Arroz 1kg", 10, "4.50", "3.00")

	precio := decimal.RequireFromString("4.00")
	sale, err := f.uc.Settle(context.Background(), sales.SettleInput{
		PaymentMethod: "efectivo",
		Items:         []sales.SettleLine{{ProductID: "p1", Quantity: 3, UnitPrice: &precio}},
	})
	require.NoError(t, err)

	assert.True(t, sale.TotalAmount.Equal(decimal.RequireFromString("12.00")))
	assert.True(t, sale.Items[0].UnitSalePrice.Equal(precio))
}

// TestSettle_OrdenVacia liquidar sin líneas retorna ErrEmptyOrder.
func TestSettle_OrdenVacia(t *testing.T) {
	f := newSettleFixture(t)

	_, err := f.uc.Settle(context.Background(), sales.SettleInput{PaymentMethod: "efectivo"})
	require.ErrorIs(t, err, domain.ErrEmptyOrder)
	assert.Empty(t, f.notifier.sales)
}

// TestSettle_StockInsuficienteAMitadDeOrden si la segunda línea no tiene
// stock, la primera tampoco descuenta: rollback total, sin venta ni aviso.
func TestSettle_StockInsuficienteAMitadDeOrden(t *testing.T) {
	f := newSettleFixture(t)
	f.seedProduct(t, "p1", "Arroz 1kg", 10, "4.50", "3.00")
	f.seedProduct(t, "p2", "Aceite 1L", 1, "9.00", "7.00")
	ctx := context.Background()

	_, err := f.uc.Settle(ctx, sales.SettleInput{
		PaymentMethod: "efectivo",
		Items: []sales.SettleLine{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 5}, // solo hay 1
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	repo := memory.NewProductRepository(f.store)
	p1, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), p1.CurrentStock, "la línea buena tampoco descuenta")
	p2, err := repo.GetByID(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), p2.CurrentStock)

	// Ni kardex de la venta ni venta ni aviso.
	entries, err := memory.NewKardexRepository(f.store).ListByProduct(ctx, "p1", 10, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "solo la entrada del seed")
	ventas, err := memory.NewSaleRepository(f.store).List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, ventas)
	assert.Empty(t, f.notifier.sales)
}

// TestSettle_ProductoInexistente una línea con producto desconocido aborta la
// liquidación completa.
func TestSettle_ProductoInexistente(t *testing.T) {
	f := newSettleFixture(t)
	f.seedProduct(t, "p1", "Arroz 1kg", 10, "4.50", "3.00")

	_, err := f.uc.Settle(context.Background(), sales.SettleInput{
		PaymentMethod: "efectivo",
		Items: []sales.SettleLine{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "fantasma", Quantity: 1},
		},
	})
	require.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Empty(t, f.notifier.sales)
}

// TestSettle_TotalCeroSeRechaza una venta cuyo total no es positivo no se
// persiste (ej: precio manual 0).
func TestSettle_TotalCeroSeRechaza(t *testing.T) {
	f := newSettleFixture(t)
	f.seedProduct(t, "p1", "Arroz 1kg", 10, "4.50", "3.00")
	ctx := context.Background()

	gratis := decimal.Zero
	_, err := f.uc.Settle(ctx, sales.SettleInput{
		PaymentMethod: "efectivo",
		Items:         []sales.SettleLine{{ProductID: "p1", Quantity: 1, UnitPrice: &gratis}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	p1, err := memory.NewProductRepository(f.store).GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), p1.CurrentStock, "el rechazo tampoco deja descuento de stock")
}

// unavailableSaleTxRunner simula un almacenamiento caído durante la liquidación.
type unavailableSaleTxRunner struct{}

func (unavailableSaleTxRunner) RunSale(context.Context, func(
	repository.ProductRepository,
	repository.KardexRepository,
	repository.SaleRepository,
) error) error {
	return fmt.Errorf("%w: begin transaction: dial tcp: i/o timeout", domain.ErrStorageUnavailable)
}

// TestSettle_AlmacenamientoNoDisponible con el almacenamiento caído la
// liquidación surge como ErrStorageUnavailable, sin venta ni aviso.
func TestSettle_AlmacenamientoNoDisponible(t *testing.T) {
	store := memory.New()
	notifier := &capturingNotifier{}
	uc := sales.NewSettleUseCase(unavailableSaleTxRunner{}, appinventory.NewApplyMovementUseCase(store), notifier)

	_, err := uc.Settle(context.Background(), sales.SettleInput{
		PaymentMethod: "efectivo",
		Items:         []sales.SettleLine{{ProductID: "p1", Quantity: 1}},
	})
	require.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.NotErrorIs(t, err, domain.ErrConflictRetryExhausted)
	assert.Empty(t, notifier.sales, "sin confirmación no hay aviso")
}

// TestSettle_LineasInvalidas cantidades o precios inválidos se rechazan antes
// de abrir la transacción.
func TestSettle_LineasInvalidas(t *testing.T) {
	f := newSettleFixture(t)
	negativo := decimal.NewFromInt(-1)

	cases := []struct {
		name  string
		items []sales.SettleLine
	}{
		{"cantidad cero", []sales.SettleLine{{ProductID: "p1", Quantity: 0}}},
		{"cantidad negativa", []sales.SettleLine{{ProductID: "p1", Quantity: -2}}},
		{"sin producto", []sales.SettleLine{{Quantity: 1}}},
		{"precio negativo", []sales.SettleLine{{ProductID: "p1", Quantity: 1, UnitPrice: &negativo}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Settle(context.Background(), sales.SettleInput{Items: tc.items})
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
