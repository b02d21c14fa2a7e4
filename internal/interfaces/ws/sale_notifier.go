package ws

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-kardex/internal/application/sales"
	"github.com/tu-usuario/pos-kardex/internal/domain/entity"
	"github.com/tu-usuario/pos-kardex/pkg/logger"
)

var _ sales.Notifier = (*SaleNotifier)(nil)

// SaleNotifier difunde el evento de venta completada a los terminales
// conectados, para que refresquen su listado de productos. Mejor esfuerzo:
// no forma parte de la unidad atómica de la liquidación.
type SaleNotifier struct {
	hub *Hub
	log *logger.Logger
}

// NewSaleNotifier construye el notifier sobre el hub.
func NewSaleNotifier(hub *Hub, log *logger.Logger) *SaleNotifier {
	return &SaleNotifier{hub: hub, log: log}
}

type saleCompletedEvent struct {
	Type        string          `json:"type"`
	SaleID      string          `json:"sale_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ItemCount   int             `json:"item_count"`
	SaleDate    time.Time       `json:"sale_date"`
}

func (n *SaleNotifier) SaleCompleted(sale *entity.Sale) {
	payload, err := json.Marshal(saleCompletedEvent{
		Type:        "sale_completed",
		SaleID:      sale.ID,
		TotalAmount: sale.TotalAmount,
		ItemCount:   len(sale.Items),
		SaleDate:    sale.SaleDate,
	})
	if err != nil {
		n.log.Error().Err(err).Msg("serializar evento de venta")
		return
	}
	n.hub.Broadcast(payload)
}
