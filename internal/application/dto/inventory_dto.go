package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-kardex/internal/domain/entity"
)

// ApplyMovementRequest entrada para aplicar un movimiento de stock.
// quantity_delta es con signo: positivo entra, negativo sale.
// unit_cost es obligatorio cuando quantity_delta > 0.
type ApplyMovementRequest struct {
	ProductID     string           `json:"product_id" validate:"required"`
	QuantityDelta int64            `json:"quantity_delta"`
	Type          string           `json:"type" validate:"required,oneof=entrada salida ajuste devolucion"`
	UnitCost      *decimal.Decimal `json:"unit_cost"`
}

// KardexEntryResponse salida de un registro del kardex.
type KardexEntryResponse struct {
	ID                string           `json:"id"`
	ProductID         string           `json:"product_id"`
	ProductName       string           `json:"product_name"`
	MovementDate      time.Time        `json:"movement_date"`
	MovementType      string           `json:"movement_type"`
	QuantityIn        *int64           `json:"quantity_in,omitempty"`
	CostIn            *decimal.Decimal `json:"cost_in,omitempty"`
	QuantityOut       *int64           `json:"quantity_out,omitempty"`
	CostOut           *decimal.Decimal `json:"cost_out,omitempty"`
	BalanceQuantity   int64            `json:"balance_quantity"`
	BalanceAvgCost    decimal.Decimal  `json:"balance_avg_cost"`
	BalanceTotalValue decimal.Decimal  `json:"balance_total_value"`
}

// SnapshotResponse foto actual de stock de un producto.
type SnapshotResponse struct {
	ProductID       string          `json:"product_id"`
	Quantity        int64           `json:"quantity"`
	WeightedAvgCost decimal.Decimal `json:"weighted_avg_cost"`
	TotalValue      decimal.Decimal `json:"total_value"`
}

// ToKardexEntryResponse mapea la entidad a su DTO de salida.
func ToKardexEntryResponse(e *entity.KardexEntry) *KardexEntryResponse {
	if e == nil {
		return nil
	}
	return &KardexEntryResponse{
		ID:                e.ID,
		ProductID:         e.ProductID,
		ProductName:       e.ProductName,
		MovementDate:      e.MovementDate,
		MovementType:      e.MovementType,
		QuantityIn:        e.QuantityIn,
		CostIn:            e.CostIn,
		QuantityOut:       e.QuantityOut,
		CostOut:           e.CostOut,
		BalanceQuantity:   e.BalanceQuantity,
		BalanceAvgCost:    e.BalanceAvgCost,
		BalanceTotalValue: e.BalanceTotalValue,
	}
}
