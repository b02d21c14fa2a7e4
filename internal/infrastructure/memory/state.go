package memory

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/pos-kardex/internal/domain"
	"github.com/tu-usuario/pos-kardex/internal/domain/entity"
)

// Operaciones puras sobre el estado. Los callers (vistas de tx y repos
// directos) garantizan la exclusión mutua.

func getProduct(st *state, id string) *entity.Product {
	p, ok := st.products[id]
	if !ok {
		return nil
	}
	cp := p
	return &cp
}

func getProductByBarcode(st *state, barcode string) *entity.Product {
	if barcode == "" {
		return nil
	}
	for _, p := range st.products {
		if p.Barcode == barcode {
			cp := p
			return &cp
		}
	}
	return nil
}

func createProduct(st *state, product *entity.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if _, exists := st.products[product.ID]; exists {
		return domain.ErrDuplicate
	}
	if product.Barcode != "" && getProductByBarcode(st, product.Barcode) != nil {
		return domain.ErrDuplicate
	}
	st.products[product.ID] = *product
	return nil
}

func updateProduct(st *state, product *entity.Product) error {
	current, ok := st.products[product.ID]
	if !ok {
		return domain.ErrProductNotFound
	}
	// Solo campos descriptivos: el stock se preserva tal cual está.
	updated := *product
	updated.CurrentStock = current.CurrentStock
	st.products[product.ID] = updated
	return nil
}

func updateStock(st *state, productID string, quantity int64) error {
	p, ok := st.products[productID]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.CurrentStock = quantity
	p.UpdatedAt = time.Now()
	st.products[productID] = p
	return nil
}

func listProducts(st *state, limit, offset int) []*entity.Product {
	all := make([]*entity.Product, 0, len(st.products))
	for id := range st.products {
		all = append(all, getProduct(st, id))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	if offset >= len(all) {
		return nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all
}

func deactivateProduct(st *state, id string) error {
	p, ok := st.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.IsActive = false
	p.UpdatedAt = time.Now()
	st.products[id] = p
	return nil
}

func appendEntry(st *state, entry *entity.KardexEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	st.kardex[entry.ProductID] = append(st.kardex[entry.ProductID], *entry)
	return nil
}

func latestEntry(st *state, productID string) *entity.KardexEntry {
	entries := st.kardex[productID]
	if len(entries) == 0 {
		return nil
	}
	cp := entries[len(entries)-1]
	return &cp
}

func listEntries(st *state, productID string, limit, offset int) []*entity.KardexEntry {
	entries := st.kardex[productID]
	// Del más reciente al más antiguo.
	out := make([]*entity.KardexEntry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		cp := entries[i]
		out = append(out, &cp)
	}
	if offset >= len(out) {
		return nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func createSale(st *state, sale *entity.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	if _, exists := st.sales[sale.ID]; exists {
		return domain.ErrDuplicate
	}
	cp := *sale
	cp.Items = append([]entity.SaleItem(nil), sale.Items...)
	st.sales[sale.ID] = cp
	st.saleOrder = append(st.saleOrder, sale.ID)
	return nil
}

func getSale(st *state, id string) *entity.Sale {
	s, ok := st.sales[id]
	if !ok {
		return nil
	}
	cp := s
	cp.Items = append([]entity.SaleItem(nil), s.Items...)
	return &cp
}

func listSales(st *state, limit, offset int) []*entity.Sale {
	// Del más reciente al más antiguo.
	out := make([]*entity.Sale, 0, len(st.saleOrder))
	for i := len(st.saleOrder) - 1; i >= 0; i-- {
		out = append(out, getSale(st, st.saleOrder[i]))
	}
	if offset >= len(out) {
		return nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
