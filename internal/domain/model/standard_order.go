package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StandardOrderStatus describes the pickup order lifecycle.
type StandardOrderStatus string

const (
	StandardOrderStatusNew       StandardOrderStatus = "new"
	StandardOrderStatusConfirmed StandardOrderStatus = "confirmed"
	StandardOrderStatusReady     StandardOrderStatus = "ready_for_pickup"
	StandardOrderStatusCompleted StandardOrderStatus = "completed"
	StandardOrderStatusCancelled StandardOrderStatus = "cancelled"
)

// StockEffect tells the storage layer what the ledger must do alongside a
// status change, inside the same transaction.
type StockEffect int

const (
	StockEffectNone StockEffect = iota
	StockEffectReserve
	StockEffectRelease
)

// StandardOrderAllowedPrev lists the statuses a standard order may hold
// immediately before moving to the given target.
var StandardOrderAllowedPrev = map[StandardOrderStatus][]StandardOrderStatus{
	StandardOrderStatusConfirmed: {StandardOrderStatusNew},
	StandardOrderStatusReady:     {StandardOrderStatusConfirmed},
	StandardOrderStatusCompleted: {StandardOrderStatusConfirmed, StandardOrderStatusReady},
	StandardOrderStatusCancelled: {StandardOrderStatusNew, StandardOrderStatusConfirmed, StandardOrderStatusReady},
}

// ValidStandardOrderStatus reports whether s is a known status code.
func ValidStandardOrderStatus(s StandardOrderStatus) bool {
	switch s {
	case StandardOrderStatusNew, StandardOrderStatusConfirmed, StandardOrderStatusReady,
		StandardOrderStatusCompleted, StandardOrderStatusCancelled:
		return true
	}
	return false
}

// StandardOrder is an order for in-stock catalog products fulfilled by pickup.
type StandardOrder struct {
	ID          int64
	CustomerID  int64
	Customer    *Customer
	Status      StandardOrderStatus
	Total       decimal.Decimal
	Currency    string
	PickupNotes string
	Items       []StandardOrderItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StandardOrderItem carries the quantity and the unit price frozen at order
// creation time, decoupled from later catalog price changes.
type StandardOrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	SKU       string
	Name      string
	Qty       int
	UnitPrice decimal.Decimal
}

// TotalPrice is qty times the frozen unit price.
func (i StandardOrderItem) TotalPrice() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Qty)))
}

// ItemsTotal sums the line totals of the order.
func (o *StandardOrder) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.TotalPrice())
	}
	return total
}

// StockItems converts the order items into ledger reservation pairs.
func (o *StandardOrder) StockItems() []StockItem {
	items := make([]StockItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, StockItem{ProductID: item.ProductID, SKU: item.SKU, Qty: item.Qty})
	}
	return items
}

// BatchOutcome is the per-order result of a bulk status operation.
type BatchOutcome struct {
	OrderID int64
	Order   *StandardOrder
	Err     error
}
