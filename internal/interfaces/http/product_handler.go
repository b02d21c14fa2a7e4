package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pos-kardex/internal/application/catalog"
	"github.com/tu-usuario/pos-kardex/internal/application/dto"
	"github.com/tu-usuario/pos-kardex/internal/domain/entity"
	"github.com/tu-usuario/pos-kardex/internal/infrastructure/cache"
	"github.com/tu-usuario/pos-kardex/pkg/logger"
)

// productListTTL vigencia de una página cacheada del listado.
const productListTTL = 30 * time.Second

// ProductHandler maneja las peticiones HTTP del catálogo de productos.
type ProductHandler struct {
	upsertUC  *catalog.UpsertUseCase
	productUC *catalog.ProductUseCase
	listCache cache.ProductListCache
	log       *logger.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(upsertUC *catalog.UpsertUseCase, productUC *catalog.ProductUseCase, listCache cache.ProductListCache, log *logger.Logger) *ProductHandler {
	return &ProductHandler{upsertUC: upsertUC, productUC: productUC, listCache: listCache, log: log}
}

// Upsert crea el producto o, si el código de barras ya existe, actualiza sus
// datos y registra la entrada de stock.
func (h *ProductHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertProductRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}

	draft := catalog.ProductDraft{
		Name:          in.Name,
		Description:   in.Description,
		Barcode:       in.Barcode,
		SalePrice:     in.SalePrice,
		PurchasePrice: in.PurchasePrice,
		MinStock:      in.MinStock,
		UnitOfMeasure: in.UnitOfMeasure,
		CategoryID:    in.CategoryID,
		CategoryName:  in.CategoryName,
		SupplierID:    in.SupplierID,
		SupplierName:  in.SupplierName,
		ImageURL:      in.ImageURL,
	}
	productID, err := h.upsertUC.Upsert(c.Context(), draft, in.Quantity)
	if err != nil {
		return mapError(c, err)
	}

	h.invalidateListCache(c)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": productID})
}

// GetByID obtiene un producto por ID.
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	product, err := h.productUC.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(dto.ToProductResponse(product))
}

// List lista productos ordenados por nombre (máx. 50 por página), con caché.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 || limit > 50 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	key := fmt.Sprintf("%d:%d", limit, offset)
	if cached, ok, err := h.listCache.Get(c.Context(), key); err == nil && ok {
		return c.JSON(toProductListResponse(cached, limit, offset))
	} else if err != nil {
		h.log.Warn().Err(err).Msg("caché de productos no disponible")
	}

	products, err := h.productUC.List(c.Context(), limit, offset)
	if err != nil {
		return mapError(c, err)
	}
	if err := h.listCache.Set(c.Context(), key, products, productListTTL); err != nil {
		h.log.Warn().Err(err).Msg("no se pudo cachear el listado de productos")
	}
	return c.JSON(toProductListResponse(products, limit, offset))
}

// Update actualiza los campos descriptivos de un producto.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	draft := catalog.ProductDraft{
		Name:          in.Name,
		Description:   in.Description,
		Barcode:       in.Barcode,
		SalePrice:     in.SalePrice,
		PurchasePrice: in.PurchasePrice,
		MinStock:      in.MinStock,
		UnitOfMeasure: in.UnitOfMeasure,
		CategoryID:    in.CategoryID,
		CategoryName:  in.CategoryName,
		SupplierID:    in.SupplierID,
		SupplierName:  in.SupplierName,
		ImageURL:      in.ImageURL,
	}
	product, err := h.productUC.UpdateDetails(c.Context(), c.Params("id"), draft)
	if err != nil {
		return mapError(c, err)
	}
	h.invalidateListCache(c)
	return c.JSON(dto.ToProductResponse(product))
}

// Deactivate baja lógica del producto.
func (h *ProductHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.productUC.Deactivate(c.Context(), c.Params("id")); err != nil {
		return mapError(c, err)
	}
	h.invalidateListCache(c)
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ProductHandler) invalidateListCache(c *fiber.Ctx) {
	if err := h.listCache.InvalidateAll(c.Context()); err != nil {
		h.log.Warn().Err(err).Msg("no se pudo invalidar la caché de productos")
	}
}

func toProductListResponse(products []*entity.Product, limit, offset int) *dto.ProductListResponse {
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *dto.ToProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}
}
