package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pos-kardex/internal/application/dto"
	"github.com/tu-usuario/pos-kardex/internal/application/sales"
	"github.com/tu-usuario/pos-kardex/internal/domain"
	"github.com/tu-usuario/pos-kardex/internal/domain/repository"
)

// SaleHandler maneja la liquidación y consulta de ventas.
type SaleHandler struct {
	settleUC *sales.SettleUseCase
	saleRepo repository.SaleRepository
}

// NewSaleHandler construye el handler.
func NewSaleHandler(settleUC *sales.SettleUseCase, saleRepo repository.SaleRepository) *SaleHandler {
	return &SaleHandler{settleUC: settleUC, saleRepo: saleRepo}
}

// Create liquida una venta: descarga stock, anexa kardex y persiste la venta
// en una sola transacción.
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}

	items := make([]sales.SettleLine, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, sales.SettleLine{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	sale, err := h.settleUC.Settle(c.Context(), sales.SettleInput{
		ClientID:      in.ClientID,
		ClientName:    in.ClientName,
		PaymentMethod: in.PaymentMethod,
		Items:         items,
	})
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToSaleResponse(sale))
}

// GetByID obtiene una venta por ID.
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.saleRepo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	if sale == nil {
		return mapError(c, domain.ErrNotFound)
	}
	return c.JSON(dto.ToSaleResponse(sale))
}

// List lista ventas de la más reciente a la más antigua.
func (h *SaleHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 || limit > 50 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	list, err := h.saleRepo.List(c.Context(), limit, offset)
	if err != nil {
		return mapError(c, err)
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *dto.ToSaleResponse(s))
	}
	return c.JSON(dto.SaleListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}})
}
