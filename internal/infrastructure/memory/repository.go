package memory

import (
	"context"

	"github.com/tu-usuario/pos-kardex/internal/domain/entity"
	"github.com/tu-usuario/pos-kardex/internal/domain/repository"
)

// Vistas transaccionales: operan sobre la copia de estado de la transacción,
// sin tomar el mutex (la transacción entera ya corre bajo él).

type productView struct{ st *state }

var _ repository.ProductRepository = (*productView)(nil)

func (v *productView) Create(_ context.Context, product *entity.Product) error {
	return createProduct(v.st, product)
}

func (v *productView) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return getProduct(v.st, id), nil
}

// GetByIDForUpdate en memoria no necesita bloquear fila: el mutex global ya
// serializa la transacción completa.
func (v *productView) GetByIDForUpdate(_ context.Context, id string) (*entity.Product, error) {
	return getProduct(v.st, id), nil
}

func (v *productView) GetByBarcode(_ context.Context, barcode string) (*entity.Product, error) {
	return getProductByBarcode(v.st, barcode), nil
}

func (v *productView) Update(_ context.Context, product *entity.Product) error {
	return updateProduct(v.st, product)
}

func (v *productView) UpdateStock(_ context.Context, productID string, quantity int64) error {
	return updateStock(v.st, productID, quantity)
}

func (v *productView) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	return listProducts(v.st, limit, offset), nil
}

func (v *productView) Deactivate(_ context.Context, id string) error {
	return deactivateProduct(v.st, id)
}

type kardexView struct{ st *state }

var _ repository.KardexRepository = (*kardexView)(nil)

func (v *kardexView) Append(_ context.Context, entry *entity.KardexEntry) error {
	return appendEntry(v.st, entry)
}

func (v *kardexView) Latest(_ context.Context, productID string) (*entity.KardexEntry, error) {
	return latestEntry(v.st, productID), nil
}

func (v *kardexView) ListByProduct(_ context.Context, productID string, limit, offset int) ([]*entity.KardexEntry, error) {
	return listEntries(v.st, productID, limit, offset), nil
}

type saleView struct{ st *state }

var _ repository.SaleRepository = (*saleView)(nil)

func (v *saleView) Create(_ context.Context, sale *entity.Sale) error {
	return createSale(v.st, sale)
}

func (v *saleView) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	return getSale(v.st, id), nil
}

func (v *saleView) List(_ context.Context, limit, offset int) ([]*entity.Sale, error) {
	return listSales(v.st, limit, offset), nil
}

// Repos directos (fuera de transacción): toman el mutex por operación sobre el
// estado vivo. Equivalen a los repos atados al pool en PostgreSQL.

// ProductRepo adaptador directo de productos.
type ProductRepo struct{ store *Store }

var _ repository.ProductRepository = (*ProductRepo)(nil)

// NewProductRepository construye el adaptador directo.
func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{store: store}
}

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	return r.store.withLock(func(st *state) error { return createProduct(st, product) })
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var p *entity.Product
	_ = r.store.withLock(func(st *state) error { p = getProduct(st, id); return nil })
	return p, nil
}

func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) GetByBarcode(_ context.Context, barcode string) (*entity.Product, error) {
	var p *entity.Product
	_ = r.store.withLock(func(st *state) error { p = getProductByBarcode(st, barcode); return nil })
	return p, nil
}

func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	return r.store.withLock(func(st *state) error { return updateProduct(st, product) })
}

func (r *ProductRepo) UpdateStock(_ context.Context, productID string, quantity int64) error {
	return r.store.withLock(func(st *state) error { return updateStock(st, productID, quantity) })
}

func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	_ = r.store.withLock(func(st *state) error { out = listProducts(st, limit, offset); return nil })
	return out, nil
}

func (r *ProductRepo) Deactivate(_ context.Context, id string) error {
	return r.store.withLock(func(st *state) error { return deactivateProduct(st, id) })
}

// KardexRepo adaptador directo del kardex.
type KardexRepo struct{ store *Store }

var _ repository.KardexRepository = (*KardexRepo)(nil)

// NewKardexRepository construye el adaptador directo.
func NewKardexRepository(store *Store) *KardexRepo {
	return &KardexRepo{store: store}
}

func (r *KardexRepo) Append(_ context.Context, entry *entity.KardexEntry) error {
	return r.store.withLock(func(st *state) error { return appendEntry(st, entry) })
}

func (r *KardexRepo) Latest(_ context.Context, productID string) (*entity.KardexEntry, error) {
	var e *entity.KardexEntry
	_ = r.store.withLock(func(st *state) error { e = latestEntry(st, productID); return nil })
	return e, nil
}

func (r *KardexRepo) ListByProduct(_ context.Context, productID string, limit, offset int) ([]*entity.KardexEntry, error) {
	var out []*entity.KardexEntry
	_ = r.store.withLock(func(st *state) error { out = listEntries(st, productID, limit, offset); return nil })
	return out, nil
}

// SaleRepo adaptador directo de ventas.
type SaleRepo struct{ store *Store }

var _ repository.SaleRepository = (*SaleRepo)(nil)

// NewSaleRepository construye el adaptador directo.
func NewSaleRepository(store *Store) *SaleRepo {
	return &SaleRepo{store: store}
}

func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	return r.store.withLock(func(st *state) error { return createSale(st, sale) })
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var s *entity.Sale
	_ = r.store.withLock(func(st *state) error { s = getSale(st, id); return nil })
	return s, nil
}

func (r *SaleRepo) List(_ context.Context, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	_ = r.store.withLock(func(st *state) error { out = listSales(st, limit, offset); return nil })
	return out, nil
}
