package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-kardex/internal/domain/entity"
)

// UpsertProductRequest entrada para crear o actualizar un producto por código
// de barras, con la cantidad entrante (stock inicial o recepción).
type UpsertProductRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Description   string          `json:"description" validate:"max=1000"`
	Barcode       string          `json:"barcode" validate:"max=64"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Quantity      int64           `json:"quantity" validate:"min=0"`
	MinStock      int64           `json:"min_stock" validate:"min=0"`
	UnitOfMeasure string          `json:"unit_of_measure" validate:"max=20"`
	CategoryID    string          `json:"category_id"`
	CategoryName  string          `json:"category_name" validate:"max=100"`
	SupplierID    string          `json:"supplier_id"`
	SupplierName  string          `json:"supplier_name" validate:"max=200"`
	ImageURL      string          `json:"image_url" validate:"omitempty,url"`
}

// UpdateProductRequest entrada para actualizar campos descriptivos (sin stock).
type UpdateProductRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Description   string          `json:"description" validate:"max=1000"`
	Barcode       string          `json:"barcode" validate:"max=64"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	MinStock      int64           `json:"min_stock" validate:"min=0"`
	UnitOfMeasure string          `json:"unit_of_measure" validate:"max=20"`
	CategoryID    string          `json:"category_id"`
	CategoryName  string          `json:"category_name" validate:"max=100"`
	SupplierID    string          `json:"supplier_id"`
	SupplierName  string          `json:"supplier_name" validate:"max=200"`
	ImageURL      string          `json:"image_url" validate:"omitempty,url"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Barcode       string          `json:"barcode,omitempty"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	CurrentStock  int64           `json:"current_stock"`
	MinStock      int64           `json:"min_stock"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	IsActive      bool            `json:"is_active"`
	CategoryID    string          `json:"category_id"`
	CategoryName  string          `json:"category_name"`
	SupplierID    string          `json:"supplier_id"`
	SupplierName  string          `json:"supplier_name"`
	ImageURL      string          `json:"image_url,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ToProductResponse mapea la entidad a su DTO de salida.
func ToProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Barcode:       p.Barcode,
		SalePrice:     p.SalePrice,
		PurchasePrice: p.PurchasePrice,
		CurrentStock:  p.CurrentStock,
		MinStock:      p.MinStock,
		UnitOfMeasure: p.UnitOfMeasure,
		IsActive:      p.IsActive,
		CategoryID:    p.CategoryID,
		CategoryName:  p.CategoryName,
		SupplierID:    p.SupplierID,
		SupplierName:  p.SupplierName,
		ImageURL:      p.ImageURL,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
