package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/zaidkh/tijara/internal/domain/model"
)

// CustomOrderDraft carries the customer-supplied fields of a new request.
type CustomOrderDraft struct {
	RequirementSummary   string
	SiteAddress          string
	SiteCity             string
	SiteGeoLat           *decimal.Decimal
	SiteGeoLng           *decimal.Decimal
	PreferredContactTime string
}

// CustomOrderFilter narrows custom order listings.
type CustomOrderFilter struct {
	Status model.CustomOrderStatus
	City   string
}

// CustomOrderRepository persists installation orders and their quotes.
// SetStatus guards the transition under a row lock; ReplaceQuote swaps the
// whole line set and the quote figures in one transaction, clearing any
// previously rendered document reference.
type CustomOrderRepository interface {
	Create(ctx context.Context, customerID int64, draft CustomOrderDraft, currency string) (*model.CustomOrder, error)
	GetByID(ctx context.Context, id int64) (*model.CustomOrder, error)
	List(ctx context.Context, filter CustomOrderFilter) ([]model.CustomOrder, error)
	SetStatus(ctx context.Context, id int64, target model.CustomOrderStatus, allowedPrev []model.CustomOrderStatus) (*model.CustomOrder, error)
	ReplaceQuote(ctx context.Context, id int64, lines []model.CustomOrderLine, subtotal, discount, total decimal.Decimal) (*model.CustomOrder, error)
	SetQuoteDocumentURL(ctx context.Context, id int64, url string) error
	SelectQuotesForRendering(ctx context.Context, limit int) ([]model.CustomOrder, error)
}
