package repository

import (
	"context"

	"github.com/tu-usuario/pos-kardex/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las lecturas devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetByIDForUpdate lee el producto bloqueando la fila dentro de la
	// transacción en curso (SELECT FOR UPDATE o equivalente).
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// GetByBarcode busca por clave natural; cero o un producto.
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	// Update actualiza solo campos descriptivos; nunca toca CurrentStock.
	Update(ctx context.Context, product *entity.Product) error
	// UpdateStock fija CurrentStock; solo lo invoca el coordinador de stock
	// dentro de la misma transacción que escribe el kardex.
	UpdateStock(ctx context.Context, productID string, quantity int64) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	// Deactivate baja lógica (IsActive = false); no hay borrado físico.
	Deactivate(ctx context.Context, id string) error
}
