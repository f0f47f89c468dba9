package usecase

import (
	"context"

	domainErrors "github.com/zaidkh/tijara/internal/domain/errors"
	"github.com/zaidkh/tijara/internal/domain/model"
	"github.com/zaidkh/tijara/internal/domain/repository"
)

// CustomOrderUseCase drives the installation workflow from survey to
// handover. Every forward edge goes through the generic guarded status set;
// quote_sent is reachable only through the quote engine.
type CustomOrderUseCase struct {
	orders    repository.CustomOrderRepository
	customers repository.CustomerRepository
	currency  string
}

// NewCustomOrderUseCase constructs CustomOrderUseCase.
func NewCustomOrderUseCase(orders repository.CustomOrderRepository, customers repository.CustomerRepository, currency string) *CustomOrderUseCase {
	return &CustomOrderUseCase{orders: orders, customers: customers, currency: currency}
}

// Create registers a new installation request.
func (u *CustomOrderUseCase) Create(ctx context.Context, customer CustomerInput, draft repository.CustomOrderDraft) (*model.CustomOrder, error) {
	resolved, err := resolveCustomer(ctx, u.customers, customer)
	if err != nil {
		return nil, err
	}
	return u.orders.Create(ctx, resolved.ID, draft, u.currency)
}

// Get returns the order snapshot with lines and customer.
func (u *CustomOrderUseCase) Get(ctx context.Context, id int64) (*model.CustomOrder, error) {
	return u.orders.GetByID(ctx, id)
}

// List returns custom orders, newest first, filtered by status and city.
func (u *CustomOrderUseCase) List(ctx context.Context, filter repository.CustomOrderFilter) ([]model.CustomOrder, error) {
	return u.orders.List(ctx, filter)
}

// Advance moves the order to target if the current status is an allowed
// predecessor. Setting quote_sent directly is rejected: that edge belongs
// to the quote engine.
func (u *CustomOrderUseCase) Advance(ctx context.Context, id int64, target model.CustomOrderStatus) (*model.CustomOrder, error) {
	allowedPrev, ok := model.CustomOrderAllowedPrev[target]
	if !ok {
		return nil, domainErrors.ErrInvalidTransition
	}
	return u.orders.SetStatus(ctx, id, target, allowedPrev)
}

// RequireLinesForQuote verifies the order has at least one quote line. It is
// the precondition callers must satisfy before requesting a quote document.
func (u *CustomOrderUseCase) RequireLinesForQuote(ctx context.Context, id int64) (*model.CustomOrder, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(order.Lines) == 0 {
		return nil, domainErrors.ErrMissingLines
	}
	return order, nil
}

// SetQuoteDocumentURL stores the collaborator-rendered document reference.
func (u *CustomOrderUseCase) SetQuoteDocumentURL(ctx context.Context, id int64, url string) error {
	return u.orders.SetQuoteDocumentURL(ctx, id, url)
}

// SelectQuotesForRendering picks quote_sent orders still missing a rendered
// document, locking them against concurrent pollers.
func (u *CustomOrderUseCase) SelectQuotesForRendering(ctx context.Context, limit int) ([]model.CustomOrder, error) {
	return u.orders.SelectQuotesForRendering(ctx, limit)
}
