package inventory

import (
	"context"

	"github.com/tu-usuario/pos-kardex/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que producto y kardex se escriban
// juntos o no se escriba ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		kardexRepo repository.KardexRepository,
	) error) error
}
