package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StandardOrderItemRequest references a catalog product by SKU.
type StandardOrderItemRequest struct {
	SKU string `json:"sku"`
	Qty int    `json:"qty"`
}

// StandardOrderRequest is the payload of a new pickup order.
type StandardOrderRequest struct {
	Customer    CustomerRequest            `json:"customer"`
	Items       []StandardOrderItemRequest `json:"items"`
	PickupNotes string                     `json:"pickup_notes,omitempty"`
}

// StatusRequest carries a lifecycle status target.
type StatusRequest struct {
	Status string `json:"status"`
}

// BulkStatusRequest applies one status target to many orders.
type BulkStatusRequest struct {
	IDs    []int64 `json:"ids"`
	Status string  `json:"status"`
}

// BulkStatusOutcome is the per-order result of a bulk status change.
type BulkStatusOutcome struct {
	ID     int64  `json:"id"`
	Status string `json:"status,omitempty"`
	Error  string `json:"error,omitempty"`
}

// StandardOrderItemResponse is one order line with its frozen unit price.
type StandardOrderItemResponse struct {
	ProductID  int64           `json:"product_id"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	Qty        int             `json:"qty"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// StandardOrderResponse describes a pickup order.
type StandardOrderResponse struct {
	ID          int64                       `json:"id"`
	Status      string                      `json:"status"`
	Customer    *CustomerResponse           `json:"customer,omitempty"`
	Items       []StandardOrderItemResponse `json:"items"`
	Total       decimal.Decimal             `json:"total"`
	Currency    string                      `json:"currency"`
	PickupNotes string                      `json:"pickup_notes,omitempty"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}
