package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusCompleted = "Completada"
	SaleStatusPending   = "Pendiente"
	SaleStatusCancelled = "Cancelada"
)

// SaleItem es una línea de venta con datos denormalizados al momento de la venta.
type SaleItem struct {
	ProductID        string
	ProductName      string // denormalizado
	Quantity         int64
	UnitSalePrice    decimal.Decimal
	UnitPurchaseCost decimal.Decimal // costo promedio al momento de la venta
	LineSubtotal     decimal.Decimal
}

// Sale representa una venta liquidada. Inmutable una vez confirmada: se crea
// una sola vez junto con las salidas de stock de cada línea y nunca se actualiza.
type Sale struct {
	ID            string
	ClientID      string // vacío para venta anónima
	ClientName    string // denormalizado
	Items         []SaleItem
	TotalAmount   decimal.Decimal
	PaymentMethod string
	Status        string
	SaleDate      time.Time
	CreatedAt     time.Time
}
