package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const EventOrderCreated = "order.created"

type Order struct {
	ID           int64           `json:"id"`
	CustomerName string          `json:"customer_name"`
	Amount       decimal.Decimal `json:"amount"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type OrderCreated struct {
	Order   Order
	Message string
}

// WebhookPayload is the body sent to the webhook receiver. Amount is encoded
// as a JSON string to keep the submitted precision.
type WebhookPayload struct {
	Event        string          `json:"event"`
	OrderID      int64           `json:"order_id"`
	CustomerName string          `json:"customer_name"`
	Amount       decimal.Decimal `json:"amount"`
}

func NewOrderCreatedPayload(o Order) WebhookPayload {
	return WebhookPayload{
		Event:        EventOrderCreated,
		OrderID:      o.ID,
		CustomerName: o.CustomerName,
		Amount:       o.Amount,
	}
}

// Flash is carried between a POST and the next page render only.
type Flash struct {
	Success string              `json:"success,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Old     map[string]string   `json:"old,omitempty"`
}

func (f Flash) IsEmpty() bool {
	return f.Success == "" && len(f.Errors) == 0 && len(f.Old) == 0
}
