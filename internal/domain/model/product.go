package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item tracked by the inventory ledger.
// Stock is mutated only through ledger reserve/release operations.
type Product struct {
	ID        int64
	SKU       string
	Name      string
	Price     decimal.Decimal
	Stock     int
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StockItem is a (product, quantity) pair handed to the inventory ledger.
type StockItem struct {
	ProductID int64
	SKU       string
	Qty       int
}
