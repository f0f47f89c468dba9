package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest describes a new catalog item.
type ProductRequest struct {
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	IsActive *bool           `json:"is_active,omitempty"`
}

// ProductUpdateRequest carries the updatable product fields. Stock is
// absent on purpose: it moves only through orders and stock receipts.
type ProductUpdateRequest struct {
	Name     *string          `json:"name,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	IsActive *bool            `json:"is_active,omitempty"`
}

// ReceiveStockRequest records an incoming delivery for a product.
type ReceiveStockRequest struct {
	Qty int `json:"qty"`
}

// ProductResponse describes a catalog item.
type ProductResponse struct {
	ID        int64           `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
