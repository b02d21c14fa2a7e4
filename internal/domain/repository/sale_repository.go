package repository

import (
	"context"

	"github.com/tu-usuario/pos-kardex/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas.
// Las ventas se crean una vez (cabecera + líneas) y nunca se actualizan.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Sale, error)
}
