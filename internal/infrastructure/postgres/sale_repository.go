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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
// Las ventas se insertan una vez (cabecera + líneas) y jamás se actualizan.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la venta y sus líneas. Se espera que el caller lo invoque
// dentro de la misma transacción que descuenta el stock.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	query := `
		INSERT INTO sales (id, client_id, client_name, total_amount, payment_method, status, sale_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, nullIfEmpty(sale.ClientID), sale.ClientName,
		sale.TotalAmount, sale.PaymentMethod, sale.Status, sale.SaleDate, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}

	itemQuery := `
		INSERT INTO sale_items (sale_id, position, product_id, product_name, quantity, unit_sale_price, unit_purchase_cost, line_subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for i, item := range sale.Items {
		_, err := r.q.Exec(ctx, itemQuery,
			sale.ID, i, item.ProductID, item.ProductName, item.Quantity,
			item.UnitSalePrice, item.UnitPurchaseCost, item.LineSubtotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una venta con sus líneas en orden.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	query := `
		SELECT id, client_id, client_name, total_amount, payment_method, status, sale_date, created_at
		FROM sales WHERE id = $1`
	sale, err := scanSale(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	items, err := r.loadItems(ctx, sale.ID)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return sale, nil
}

// List lista ventas, de la más reciente a la más antigua.
func (r *SaleRepo) List(ctx context.Context, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT id, client_id, client_name, total_amount, payment_method, status, sale_date, created_at
		FROM sales ORDER BY sale_date DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, s := range list {
		items, err := r.loadItems(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		s.Items = items
	}
	return list, nil
}

func (r *SaleRepo) loadItems(ctx context.Context, saleID string) ([]entity.SaleItem, error) {
	query := `
		SELECT product_id, product_name, quantity, unit_sale_price, unit_purchase_cost, line_subtotal
		FROM sale_items WHERE sale_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var items []entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ProductID, &it.ProductName, &it.Quantity,
			&it.UnitSalePrice, &it.UnitPurchaseCost, &it.LineSubtotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanSale(row rowScanner) (*entity.Sale, error) {
	var s entity.Sale
	var clientID *string
	err := row.Scan(&s.ID, &clientID, &s.ClientName, &s.TotalAmount,
		&s.PaymentMethod, &s.Status, &s.SaleDate, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan sale: %w", err)
	}
	if clientID != nil {
		s.ClientID = *clientID
	}
	return &s, nil
}
