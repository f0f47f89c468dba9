package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainErrors "github.com/zaidkh/tijara/internal/domain/errors"
	"github.com/zaidkh/tijara/internal/domain/model"
	"github.com/zaidkh/tijara/internal/domain/repository"
)

// StandardOrderUseCase drives the pickup order lifecycle. It owns the
// transition policy; the repository executes each transition as one
// transactional unit together with its stock effect.
type StandardOrderUseCase struct {
	orders    repository.StandardOrderRepository
	customers repository.CustomerRepository
	currency  string
}

// NewStandardOrderUseCase constructs StandardOrderUseCase.
func NewStandardOrderUseCase(orders repository.StandardOrderRepository, customers repository.CustomerRepository, currency string) *StandardOrderUseCase {
	return &StandardOrderUseCase{orders: orders, customers: customers, currency: currency}
}

// Create registers a new order for in-stock products. Prices are frozen at
// this moment; stock is only verified, reservation happens at confirm.
func (u *StandardOrderUseCase) Create(ctx context.Context, customer CustomerInput, items []repository.NewStandardOrderItem, pickupNotes string) (*model.StandardOrder, error) {
	if len(items) == 0 {
		return nil, domainErrors.ErrMissingLines
	}

	seen := make(map[string]struct{}, len(items))
	for i := range items {
		sku := strings.TrimSpace(items[i].SKU)
		if sku == "" {
			return nil, domainErrors.ErrProductNotFound
		}
		if items[i].Qty <= 0 {
			return nil, fmt.Errorf("%w: %s", domainErrors.ErrInvalidQuantity, sku)
		}
		key := strings.ToLower(sku)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: %s", domainErrors.ErrDuplicateSKU, sku)
		}
		seen[key] = struct{}{}
		items[i].SKU = sku
	}

	resolved, err := resolveCustomer(ctx, u.customers, customer)
	if err != nil {
		return nil, err
	}

	return u.orders.Create(ctx, resolved.ID, items, u.currency, pickupNotes)
}

// Get returns the order snapshot with items and customer.
func (u *StandardOrderUseCase) Get(ctx context.Context, id int64) (*model.StandardOrder, error) {
	return u.orders.GetByID(ctx, id)
}

// List returns orders, newest first, optionally filtered by status.
func (u *StandardOrderUseCase) List(ctx context.Context, filter repository.StandardOrderFilter) ([]model.StandardOrder, error) {
	return u.orders.List(ctx, filter)
}

// SetStatus advances the order to target. Confirm reserves stock, cancel
// after confirm releases it; both happen inside the transition transaction.
// A cancel of an already cancelled order is a no-op.
func (u *StandardOrderUseCase) SetStatus(ctx context.Context, id int64, target model.StandardOrderStatus) (*model.StandardOrder, error) {
	if !model.ValidStandardOrderStatus(target) || target == model.StandardOrderStatusNew {
		return nil, domainErrors.ErrInvalidTransition
	}

	if target == model.StandardOrderStatusCancelled {
		return u.cancel(ctx, id)
	}

	allowedPrev := model.StandardOrderAllowedPrev[target]
	effect := model.StockEffectNone
	if target == model.StandardOrderStatusConfirmed {
		effect = model.StockEffectReserve
	}
	return u.orders.Transition(ctx, id, target, allowedPrev, effect)
}

func (u *StandardOrderUseCase) cancel(ctx context.Context, id int64) (*model.StandardOrder, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch order.Status {
	case model.StandardOrderStatusCancelled:
		return order, nil
	case model.StandardOrderStatusNew:
		return u.orders.Transition(ctx, id, model.StandardOrderStatusCancelled,
			[]model.StandardOrderStatus{model.StandardOrderStatusNew}, model.StockEffectNone)
	case model.StandardOrderStatusConfirmed, model.StandardOrderStatusReady:
		updated, err := u.orders.Transition(ctx, id, model.StandardOrderStatusCancelled,
			[]model.StandardOrderStatus{model.StandardOrderStatusConfirmed, model.StandardOrderStatusReady},
			model.StockEffectRelease)
		if errors.Is(err, domainErrors.ErrInvalidTransition) {
			// A concurrent cancel may have won the row lock; releasing twice
			// is prevented by the in-transaction guard. Treat it as the no-op
			// the caller asked for.
			if current, getErr := u.orders.GetByID(ctx, id); getErr == nil && current.Status == model.StandardOrderStatusCancelled {
				return current, nil
			}
		}
		return updated, err
	default:
		return nil, domainErrors.ErrInvalidTransition
	}
}

// BulkSetStatus applies the same transition to many orders, one at a time.
// Each order succeeds or fails on its own; a failure never blocks the rest.
func (u *StandardOrderUseCase) BulkSetStatus(ctx context.Context, ids []int64, target model.StandardOrderStatus) []model.BatchOutcome {
	outcomes := make([]model.BatchOutcome, 0, len(ids))
	for _, id := range ids {
		order, err := u.SetStatus(ctx, id, target)
		outcomes = append(outcomes, model.BatchOutcome{OrderID: id, Order: order, Err: err})
	}
	return outcomes
}

// RecalculateTotal re-derives the order total from its items. It is
// bookkeeping only and plays no part in transition guards.
func (u *StandardOrderUseCase) RecalculateTotal(ctx context.Context, id int64) (*model.StandardOrder, error) {
	return u.orders.UpdateTotal(ctx, id)
}
