package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/tu-usuario/pos-kardex/internal/domain"
	"github.com/tu-usuario/pos-kardex/internal/domain/entity"
	"github.com/tu-usuario/pos-kardex/internal/domain/repository"
)

// maxPageSize tope de página para listados (máx. 50 productos por página).
const maxPageSize = 50

// ProductUseCase lecturas y mutaciones descriptivas del catálogo.
// El stock nunca se toca por aquí: se maneja vía movimientos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

// List lista productos ordenados por nombre con paginación acotada.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	if limit <= 0 || limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return uc.repo.List(ctx, limit, offset)
}

// UpdateDetails actualiza los campos descriptivos de un producto existente.
func (uc *ProductUseCase) UpdateDetails(ctx context.Context, id string, draft ProductDraft) (*entity.Product, error) {
	if err := draft.validate(); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	draft.Barcode = strings.TrimSpace(draft.Barcode)
	applyDraft(product, draft, time.Now())
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Deactivate da de baja lógica un producto (nunca se elimina físicamente).
func (uc *ProductUseCase) Deactivate(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	return uc.repo.Deactivate(ctx, id)
}
