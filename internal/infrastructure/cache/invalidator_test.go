package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-kardex/internal/domain/entity"
	"github.com/tu-usuario/pos-kardex/internal/infrastructure/cache"
	"github.com/tu-usuario/pos-kardex/pkg/logger"
)

// bloqueanteCache se queda colgado en InvalidateAll hasta que el test lo
// libere, y avisa por canal cuando la invalidación llegó.
type bloqueanteCache struct {
	cache.NoopProductListCache
	llamado chan struct{}
	liberar chan struct{}
}

func (b *bloqueanteCache) InvalidateAll(ctx context.Context) error {
	close(b.llamado)
	select {
	case <-b.liberar:
	case <-ctx.Done():
	}
	return nil
}

// La invalidación tras una venta no debe retener la respuesta: aunque Redis
// esté colgado, SaleCompleted tiene que volver de inmediato y la invalidación
// ejecutarse igual en segundo plano.
func TestInvalidator_SaleCompletedNoBloquea(t *testing.T) {
	c := &bloqueanteCache{
		llamado: make(chan struct{}),
		liberar: make(chan struct{}),
	}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	inv := cache.NewInvalidator(c, log)

	inicio := time.Now()
	inv.SaleCompleted(&entity.Sale{ID: "venta-1"})
	transcurrido := time.Since(inicio)

	// El método retorna sin esperar a Redis.
	assert.Less(t, transcurrido, 500*time.Millisecond)

	// La invalidación igual se dispara en segundo plano.
	select {
	case <-c.llamado:
	case <-time.After(2 * time.Second):
		require.Fail(t, "la invalidación nunca se ejecutó")
	}
	close(c.liberar)
}
