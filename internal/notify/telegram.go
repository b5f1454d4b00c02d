// Package notify pushes order events to the staff chat. Notifications are
// best-effort: a failed send is logged, never surfaced to the customer.
package notify

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/MikeMC777/pizzeria-storefront/internal/order"
)

type Notifier interface {
	OrderCreated(o *order.Order)
	OrderStatusChanged(o *order.Order)
}

// Nop is used when no Telegram token is configured.
type Nop struct{}

func (Nop) OrderCreated(*order.Order)       {}
func (Nop) OrderStatusChanged(*order.Order) {}

type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return &Telegram{api: api, chatID: chatID}, nil
}

func (t *Telegram) OrderCreated(o *order.Order) {
	t.send(fmt.Sprintf("🍕 Nuevo pedido %s\n%s — %s\nTotal: %d Gs. (%s)",
		shortID(o.ID), o.Delivery.CustomerName, o.Delivery.Zone, o.Total, o.PaymentMethod))
}

func (t *Telegram) OrderStatusChanged(o *order.Order) {
	t.send(fmt.Sprintf("Pedido %s → %s", shortID(o.ID), o.Status))
}

func (t *Telegram) send(text string) {
	if _, err := t.api.Send(tgbotapi.NewMessage(t.chatID, text)); err != nil {
		log.Printf("[notify] telegram send failed: %v", err)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return "#" + id[:8]
	}
	return "#" + id
}
