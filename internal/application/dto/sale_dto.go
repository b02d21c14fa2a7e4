package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-kardex/internal/domain/entity"
)

// CreateSaleLineRequest una línea de la venta.
// unit_price nil usa el precio de venta vigente del producto.
type CreateSaleLineRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Quantity  int64            `json:"quantity" validate:"required,min=1"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// CreateSaleRequest entrada para liquidar una venta.
type CreateSaleRequest struct {
	ClientID      string                  `json:"client_id"`
	ClientName    string                  `json:"client_name" validate:"max=200"`
	PaymentMethod string                  `json:"payment_method" validate:"max=50"`
	Items         []CreateSaleLineRequest `json:"items" validate:"required,min=1,dive"`
}

// SaleItemResponse línea de venta persistida.
type SaleItemResponse struct {
	ProductID        string          `json:"product_id"`
	ProductName      string          `json:"product_name"`
	Quantity         int64           `json:"quantity"`
	UnitSalePrice    decimal.Decimal `json:"unit_sale_price"`
	UnitPurchaseCost decimal.Decimal `json:"unit_purchase_cost"`
	LineSubtotal     decimal.Decimal `json:"line_subtotal"`
}

// SaleResponse venta liquidada.
type SaleResponse struct {
	ID            string             `json:"id"`
	ClientID      string             `json:"client_id,omitempty"`
	ClientName    string             `json:"client_name,omitempty"`
	Items         []SaleItemResponse `json:"items"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	PaymentMethod string             `json:"payment_method"`
	Status        string             `json:"status"`
	SaleDate      time.Time          `json:"sale_date"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// ToSaleResponse mapea la entidad a su DTO de salida.
func ToSaleResponse(s *entity.Sale) *SaleResponse {
	if s == nil {
		return nil
	}
	items := make([]SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, SaleItemResponse{
			ProductID:        it.ProductID,
			ProductName:      it.ProductName,
			Quantity:         it.Quantity,
			UnitSalePrice:    it.UnitSalePrice,
			UnitPurchaseCost: it.UnitPurchaseCost,
			LineSubtotal:     it.LineSubtotal,
		})
	}
	return &SaleResponse{
		ID:            s.ID,
		ClientID:      s.ClientID,
		ClientName:    s.ClientName,
		Items:         items,
		TotalAmount:   s.TotalAmount,
		PaymentMethod: s.PaymentMethod,
		Status:        s.Status,
		SaleDate:      s.SaleDate,
	}
}
