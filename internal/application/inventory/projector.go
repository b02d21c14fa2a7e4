package inventory

import (
	"context"

	"github.com/tu-usuario/pos-kardex/internal/domain/entity"
	"github.com/tu-usuario/pos-kardex/internal/domain/inventory"
	"github.com/tu-usuario/pos-kardex/internal/domain/repository"
)

// Projector deriva la foto actual de stock (cantidad + costo promedio)
// desde el último registro del kardex.
type Projector struct {
	kardexRepo repository.KardexRepository
}

// NewProjector construye el proyector sobre el repositorio de kardex.
func NewProjector(kardexRepo repository.KardexRepository) *Projector {
	return &Projector{kardexRepo: kardexRepo}
}

// CurrentSnapshot devuelve {cantidad, costo promedio} del producto.
// Si el producto nunca se ha movido, la foto es cero.
func (p *Projector) CurrentSnapshot(ctx context.Context, productID string) (inventory.Snapshot, error) {
	last, err := p.kardexRepo.Latest(ctx, productID)
	if err != nil {
		return inventory.Snapshot{}, err
	}
	return inventory.SnapshotOf(last), nil
}

// History lista el kardex del producto, del más reciente al más antiguo.
func (p *Projector) History(ctx context.Context, productID string, limit, offset int) ([]*entity.KardexEntry, error) {
	if limit <= 0 || limit > 50 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return p.kardexRepo.ListByProduct(ctx, productID, limit, offset)
}
