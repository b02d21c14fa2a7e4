package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del punto de venta.
// CurrentStock siempre coincide con el saldo del último registro del kardex
// (invariante del motor de inventario); solo lo muta el coordinador de stock.
// El costo promedio ponderado vive en el kardex, no aquí.
type Product struct {
	ID            string
	Name          string
	Description   string
	Barcode       string // clave natural única cuando no está vacío
	SalePrice     decimal.Decimal
	PurchasePrice decimal.Decimal
	CurrentStock  int64 // siempre >= 0
	MinStock      int64
	UnitOfMeasure string
	IsActive      bool // baja lógica; nunca se elimina físicamente
	CategoryID    string
	CategoryName  string // denormalizado
	SupplierID    string
	SupplierName  string // denormalizado
	ImageURL      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
