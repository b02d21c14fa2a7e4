package cache

import (
	"context"
	"time"

	"github.com/tu-usuario/pos-kardex/internal/application/sales"
	"github.com/tu-usuario/pos-kardex/internal/domain/entity"
	"github.com/tu-usuario/pos-kardex/pkg/logger"
)

var _ sales.Notifier = (*Invalidator)(nil)

// Invalidator descarta la caché del listado de productos cuando se completa
// una venta (el stock mostrado quedó viejo). Es mejor esfuerzo y asíncrono:
// un Redis lento o caído solo genera un warn, nunca demora ni afecta la venta
// ya confirmada.
type Invalidator struct {
	cache ProductListCache
	log   *logger.Logger
}

// NewInvalidator construye el notifier.
func NewInvalidator(cache ProductListCache, log *logger.Logger) *Invalidator {
	return &Invalidator{cache: cache, log: log}
}

func (i *Invalidator) SaleCompleted(sale *entity.Sale) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := i.cache.InvalidateAll(ctx); err != nil {
			i.log.Warn().Err(err).Str("sale_id", sale.ID).Msg("no se pudo invalidar la caché de productos")
		}
	}()
}
