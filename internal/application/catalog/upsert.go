package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appinventory "github.com/tu-usuario/pos-kardex/internal/application/inventory"
	"github.com/tu-usuario/pos-kardex/internal/domain"
	"github.com/tu-usuario/pos-kardex/internal/domain/entity"
	"github.com/tu-usuario/pos-kardex/internal/domain/repository"
)

// UpsertUseCase resuelve un alta de producto contra el catálogo por clave
// natural (código de barras): si ya existe, actualiza los campos descriptivos
// y registra una entrada de stock vía el coordinador; si no existe, crea el
// producto con su stock inicial y el registro de apertura del kardex, todo en
// una sola transacción.
type UpsertUseCase struct {
	txRunner    appinventory.TxRunner
	productRepo repository.ProductRepository
	coordinator *appinventory.ApplyMovementUseCase
}

// NewUpsertUseCase construye el caso de uso.
func NewUpsertUseCase(
	txRunner appinventory.TxRunner,
	productRepo repository.ProductRepository,
	coordinator *appinventory.ApplyMovementUseCase,
) *UpsertUseCase {
	return &UpsertUseCase{txRunner: txRunner, productRepo: productRepo, coordinator: coordinator}
}

// ProductDraft datos descriptivos del producto entrante.
type ProductDraft struct {
	Name          string
	Description   string
	Barcode       string
	SalePrice     decimal.Decimal
	PurchasePrice decimal.Decimal
	MinStock      int64
	UnitOfMeasure string
	CategoryID    string
	CategoryName  string
	SupplierID    string
	SupplierName  string
	ImageURL      string
}

func (d ProductDraft) validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return domain.ErrInvalidInput
	}
	if d.SalePrice.LessThan(decimal.Zero) || d.PurchasePrice.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if d.MinStock < 0 {
		return domain.ErrInvalidInput
	}
	return nil
}

// Upsert resuelve crear vs actualizar+entrada y devuelve el ID del producto.
// Toda validación descriptiva ocurre antes de cualquier escritura.
func (uc *UpsertUseCase) Upsert(ctx context.Context, draft ProductDraft, incomingQty int64) (string, error) {
	if err := draft.validate(); err != nil {
		return "", err
	}
	if incomingQty < 0 {
		return "", domain.ErrInvalidInput
	}

	draft.Barcode = strings.TrimSpace(draft.Barcode)
	if draft.Barcode != "" {
		existing, err := uc.productRepo.GetByBarcode(ctx, draft.Barcode)
		if err != nil {
			return "", err
		}
		if existing != nil {
			if err := uc.updateExisting(ctx, existing, draft, incomingQty); err != nil {
				return "", err
			}
			return existing.ID, nil
		}
	}
	return uc.createNew(ctx, draft, incomingQty)
}

// updateExisting actualiza los campos descriptivos y registra la entrada de
// mercancía en la misma transacción.
func (uc *UpsertUseCase) updateExisting(ctx context.Context, existing *entity.Product, draft ProductDraft, incomingQty int64) error {
	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		kardexRepo repository.KardexRepository,
	) error {
		product, err := productRepo.GetByIDForUpdate(ctx, existing.ID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}

		applyDraft(product, draft, now)
		if err := productRepo.Update(ctx, product); err != nil {
			return err
		}

		if incomingQty == 0 {
			return nil
		}
		cost := draft.PurchasePrice
		_, err = uc.coordinator.ApplyMovementInTx(ctx, productRepo, kardexRepo, appinventory.MovementInput{
			ProductID:     product.ID,
			QuantityDelta: incomingQty,
			Type:          entity.MovementTypeEntrada,
			UnitCost:      &cost,
		}, now)
		return err
	})
}

// createNew crea el producto con su stock inicial y anexa el registro de
// apertura del kardex (saldo = cantidad entrante al costo de compra).
// La escritura inicial no pasa por el coordinador: no hay foto previa que plegar.
func (uc *UpsertUseCase) createNew(ctx context.Context, draft ProductDraft, incomingQty int64) (string, error) {
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		CurrentStock: incomingQty,
		IsActive:     true,
		CreatedAt:    now,
	}
	applyDraft(product, draft, now)

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		kardexRepo repository.KardexRepository,
	) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		if incomingQty == 0 {
			// Sin movimiento inicial no hay registro que anexar: el kardex
			// vacío proyecta foto cero, consistente con CurrentStock = 0.
			return nil
		}
		qty := incomingQty
		cost := draft.PurchasePrice
		entry := &entity.KardexEntry{
			ProductID:         product.ID,
			ProductName:       product.Name,
			MovementDate:      now,
			MovementType:      entity.MovementTypeEntrada,
			QuantityIn:        &qty,
			CostIn:            &cost,
			BalanceQuantity:   incomingQty,
			BalanceAvgCost:    draft.PurchasePrice,
			BalanceTotalValue: decimal.NewFromInt(incomingQty).Mul(draft.PurchasePrice),
			CreatedAt:         now,
		}
		return kardexRepo.Append(ctx, entry)
	})
	if err != nil {
		return "", err
	}
	return product.ID, nil
}

func applyDraft(product *entity.Product, draft ProductDraft, now time.Time) {
	product.Name = strings.TrimSpace(draft.Name)
	product.Description = draft.Description
	product.Barcode = draft.Barcode
	product.SalePrice = draft.SalePrice
	product.PurchasePrice = draft.PurchasePrice
	product.MinStock = draft.MinStock
	product.UnitOfMeasure = draft.UnitOfMeasure
	product.CategoryID = draft.CategoryID
	product.CategoryName = draft.CategoryName
	product.SupplierID = draft.SupplierID
	product.SupplierName = draft.SupplierName
	if draft.ImageURL != "" {
		product.ImageURL = draft.ImageURL
	}
	product.UpdatedAt = now
}
