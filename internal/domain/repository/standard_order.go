package repository

import (
	"context"

	"github.com/zaidkh/tijara/internal/domain/model"
)

// NewStandardOrderItem is an item request at order creation time.
type NewStandardOrderItem struct {
	SKU string
	Qty int
}

// StandardOrderFilter narrows order listings.
type StandardOrderFilter struct {
	Status model.StandardOrderStatus
}

// StandardOrderRepository persists standard orders. Create freezes current
// catalog prices into the items; it verifies availability but reserves
// nothing. Transition is the single transactional primitive behind every
// status change: it re-checks the current status under a row lock, applies
// the requested stock effect through the ledger in the same transaction,
// and persists the target status.
type StandardOrderRepository interface {
	Create(ctx context.Context, customerID int64, items []NewStandardOrderItem, currency, pickupNotes string) (*model.StandardOrder, error)
	GetByID(ctx context.Context, id int64) (*model.StandardOrder, error)
	List(ctx context.Context, filter StandardOrderFilter) ([]model.StandardOrder, error)
	Transition(ctx context.Context, id int64, target model.StandardOrderStatus, allowedPrev []model.StandardOrderStatus, effect model.StockEffect) (*model.StandardOrder, error)
	UpdateTotal(ctx context.Context, id int64) (*model.StandardOrder, error)
}
