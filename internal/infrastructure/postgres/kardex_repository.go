package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/pos-kardex/internal/domain/entity"
	"github.com/tu-usuario/pos-kardex/internal/domain/repository"
)

var _ repository.KardexRepository = (*KardexRepo)(nil)

const kardexColumns = `id, product_id, product_name, movement_date, movement_type,
	quantity_in, cost_in, quantity_out, cost_out,
	balance_quantity, balance_avg_cost, balance_total_value, created_at`

// KardexRepo implementación del libro de movimientos sobre PostgreSQL (usable con pool o tx).
// Solo inserta y lee: no existe UPDATE ni DELETE sobre la tabla kardex.
type KardexRepo struct {
	q Querier
}

// NewKardexRepository construye el adaptador. Pasar pool o tx (Querier).
func NewKardexRepository(q Querier) *KardexRepo {
	return &KardexRepo{q: q}
}

// Append persiste un registro inmutable del kardex. El registro se escribe
// entero o no se escribe.
func (r *KardexRepo) Append(ctx context.Context, entry *entity.KardexEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO kardex (id, product_id, product_name, movement_date, movement_type,
			quantity_in, cost_in, quantity_out, cost_out,
			balance_quantity, balance_avg_cost, balance_total_value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		entry.ID, entry.ProductID, entry.ProductName, entry.MovementDate, entry.MovementType,
		entry.QuantityIn, entry.CostIn, entry.QuantityOut, entry.CostOut,
		entry.BalanceQuantity, entry.BalanceAvgCost, entry.BalanceTotalValue, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append kardex entry: %w", err)
	}
	return nil
}

// Latest devuelve el registro más reciente del producto (orden por fecha de
// escritura), o (nil, nil) si el producto nunca se ha movido.
func (r *KardexRepo) Latest(ctx context.Context, productID string) (*entity.KardexEntry, error) {
	query := `SELECT ` + kardexColumns + `
		FROM kardex WHERE product_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1`
	e, err := scanKardexEntry(r.q.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

// ListByProduct lista el historial del producto, del más reciente al más antiguo.
func (r *KardexRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.KardexEntry, error) {
	query := `SELECT ` + kardexColumns + `
		FROM kardex WHERE product_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list kardex: %w", err)
	}
	defer rows.Close()
	var list []*entity.KardexEntry
	for rows.Next() {
		e, err := scanKardexEntry(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func scanKardexEntry(row rowScanner) (*entity.KardexEntry, error) {
	var e entity.KardexEntry
	err := row.Scan(
		&e.ID, &e.ProductID, &e.ProductName, &e.MovementDate, &e.MovementType,
		&e.QuantityIn, &e.CostIn, &e.QuantityOut, &e.CostOut,
		&e.BalanceQuantity, &e.BalanceAvgCost, &e.BalanceTotalValue, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan kardex entry: %w", err)
	}
	return &e, nil
}
