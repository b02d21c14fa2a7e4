package repository

import (
	"context"

	"github.com/tu-usuario/pos-kardex/internal/domain/entity"
)

// KardexRepository define el puerto del libro de movimientos (append-only).
// Un registro se escribe completo o no se escribe; jamás se edita ni se borra.
type KardexRepository interface {
	// Append persiste un registro inmutable y le asigna identidad.
	Append(ctx context.Context, entry *entity.KardexEntry) error
	// Latest devuelve el registro más reciente del producto, o (nil, nil)
	// si el producto nunca se ha movido.
	Latest(ctx context.Context, productID string) (*entity.KardexEntry, error)
	// ListByProduct lista el historial del producto, del más reciente al más antiguo.
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.KardexEntry, error)
}
