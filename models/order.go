package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusPreparing  OrderStatus = "preparing"
	StatusReady      OrderStatus = "ready"
	StatusDelivering OrderStatus = "delivering"
	StatusDelivered  OrderStatus = "delivered"
	StatusCanceled   OrderStatus = "canceled"
)

func (s OrderStatus) IsValid() bool {
	_, ok := statusInfo[s]
	return ok
}

// Terminal reports whether the status is conventionally final. Transitions out
// of a terminal status are still permitted.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCanceled
}

// StatusInfo is the display metadata for a status: a human label and a color
// token for UIs to render badges with.
type StatusInfo struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var statusInfo = map[OrderStatus]StatusInfo{
	StatusPending:    {Label: "Pending", Color: "yellow"},
	StatusConfirmed:  {Label: "Confirmed", Color: "blue"},
	StatusPreparing:  {Label: "Preparing", Color: "orange"},
	StatusReady:      {Label: "Ready", Color: "teal"},
	StatusDelivering: {Label: "Delivering", Color: "purple"},
	StatusDelivered:  {Label: "Delivered", Color: "green"},
	StatusCanceled:   {Label: "Canceled", Color: "red"},
}

// Describe returns the display metadata for the status. Unknown statuses get
// the raw value as label and no color.
func (s OrderStatus) Describe() StatusInfo {
	if info, ok := statusInfo[s]; ok {
		return info
	}
	return StatusInfo{Label: string(s)}
}

type CustomerInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Email   string `json:"email,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// Order is an immutable snapshot of a checked-out cart plus the customer's
// contact details. Only Status and UpdatedAt change after creation.
type Order struct {
	ID          string          `json:"id"`
	ClientID    string          `json:"client_id"`
	Items       []CartLineItem  `json:"items"`
	Customer    CustomerInfo    `json:"customer_info"`
	Status      OrderStatus     `json:"status"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
