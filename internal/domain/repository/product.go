package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/zaidkh/tijara/internal/domain/model"
)

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	SKU        string
	Query      string
	OnlyActive bool
}

// ProductUpdate carries the catalog-editable fields. Stock is absent by
// contract: only the inventory ledger mutates it.
type ProductUpdate struct {
	Name     *string
	Price    *decimal.Decimal
	IsActive *bool
}

// ProductRepository describes catalog persistence. Reads by SKU are the
// lifecycle's view of the catalog collaborator.
type ProductRepository interface {
	Create(ctx context.Context, product model.Product) (*model.Product, error)
	Update(ctx context.Context, id int64, update ProductUpdate) (*model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	GetActiveBySKU(ctx context.Context, sku string) (*model.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]model.Product, error)
}

// InventoryLedger is the sole authority over product stock. Both operations
// lock every referenced product row in ascending product-id order and apply
// all quantity changes in one transaction, or none at all.
type InventoryLedger interface {
	Reserve(ctx context.Context, items []model.StockItem) error
	Release(ctx context.Context, items []model.StockItem) error
}
