package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pos-kardex/internal/application/dto"
	appinventory "github.com/tu-usuario/pos-kardex/internal/application/inventory"
)

// InventoryHandler maneja movimientos de stock y consultas del kardex.
type InventoryHandler struct {
	movementUC *appinventory.ApplyMovementUseCase
	projector  *appinventory.Projector
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(movementUC *appinventory.ApplyMovementUseCase, projector *appinventory.Projector) *InventoryHandler {
	return &InventoryHandler{movementUC: movementUC, projector: projector}
}

// ApplyMovement aplica un movimiento de stock y devuelve el registro de kardex
// resultante con los saldos plegados.
func (h *InventoryHandler) ApplyMovement(c *fiber.Ctx) error {
	var in dto.ApplyMovementRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}

	entry, err := h.movementUC.ApplyMovement(c.Context(), appinventory.MovementInput{
		ProductID:     in.ProductID,
		QuantityDelta: in.QuantityDelta,
		Type:          in.Type,
		UnitCost:      in.UnitCost,
	})
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToKardexEntryResponse(entry))
}

// History lista el kardex de un producto, del más reciente al más antiguo.
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	entries, err := h.projector.History(c.Context(), c.Params("id"), limit, offset)
	if err != nil {
		return mapError(c, err)
	}
	items := make([]dto.KardexEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, *dto.ToKardexEntryResponse(e))
	}
	return c.JSON(fiber.Map{
		"items": items,
		"page":  dto.PageResponse{Limit: limit, Offset: offset},
	})
}

// Snapshot devuelve la foto de stock actual derivada del último registro del
// kardex (fuente de verdad ante cualquier divergencia con el catálogo).
func (h *InventoryHandler) Snapshot(c *fiber.Ctx) error {
	productID := c.Params("id")
	snap, err := h.projector.CurrentSnapshot(c.Context(), productID)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(dto.SnapshotResponse{
		ProductID:       productID,
		Quantity:        snap.Quantity,
		WeightedAvgCost: snap.AvgCost,
		TotalValue:      snap.TotalValue(),
	})
}
