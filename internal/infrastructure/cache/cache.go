package cache

import (
	"context"
	"time"

	"github.com/tu-usuario/pos-kardex/internal/domain/entity"
)

// ProductListCache cachea páginas del listado de productos. Tras una venta la
// caché se invalida para que los terminales vean el stock actualizado.
type ProductListCache interface {
	Get(ctx context.Context, key string) ([]*entity.Product, bool, error)
	Set(ctx context.Context, key string, products []*entity.Product, ttl time.Duration) error
	// InvalidateAll descarta todas las páginas cacheadas.
	InvalidateAll(ctx context.Context) error
}

// NoopProductListCache no cachea nada (modo desarrollo sin Redis).
type NoopProductListCache struct{}

func (NoopProductListCache) Get(_ context.Context, _ string) ([]*entity.Product, bool, error) {
	return nil, false, nil
}

func (NoopProductListCache) Set(_ context.Context, _ string, _ []*entity.Product, _ time.Duration) error {
	return nil
}

func (NoopProductListCache) InvalidateAll(_ context.Context) error {
	return nil
}
