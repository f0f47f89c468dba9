package usecase

import (
	"strings"

	"context"

	"github.com/shopspring/decimal"

	domainErrors "github.com/zaidkh/tijara/internal/domain/errors"
	"github.com/zaidkh/tijara/internal/domain/model"
	"github.com/zaidkh/tijara/internal/domain/repository"
)

// QuoteLineInput is one requested quote line. UnitPrice may be nil for
// service work priced later.
type QuoteLineInput struct {
	Type      model.LineType
	Name      string
	SKU       string
	Qty       decimal.Decimal
	UnitPrice *decimal.Decimal
}

// QuoteUseCase recomputes a custom order's quote as one atomic replacement.
// Subsequent calls fully supersede earlier ones.
type QuoteUseCase struct {
	orders repository.CustomOrderRepository
}

// NewQuoteUseCase constructs QuoteUseCase.
func NewQuoteUseCase(orders repository.CustomOrderRepository) *QuoteUseCase {
	return &QuoteUseCase{orders: orders}
}

// SetLines replaces the order's line set, recomputes subtotal/discount/total
// and moves the order to quote_sent in a single commit. Unpriced lines
// contribute nothing to the subtotal.
func (u *QuoteUseCase) SetLines(ctx context.Context, orderID int64, lines []QuoteLineInput, discount decimal.Decimal) (*model.CustomOrder, error) {
	if len(lines) == 0 {
		return nil, domainErrors.ErrMissingLines
	}

	subtotal := decimal.Zero
	rows := make([]model.CustomOrderLine, 0, len(lines))
	for _, line := range lines {
		lineType := line.Type
		if lineType != model.LineTypeProduct && lineType != model.LineTypeService {
			lineType = model.LineTypeService
		}
		if line.UnitPrice != nil {
			subtotal = subtotal.Add(line.Qty.Mul(*line.UnitPrice))
		}
		rows = append(rows, model.CustomOrderLine{
			Type:      lineType,
			Name:      strings.TrimSpace(line.Name),
			SKU:       strings.TrimSpace(line.SKU),
			Qty:       line.Qty,
			UnitPrice: line.UnitPrice,
		})
	}

	subtotal = subtotal.Round(2)
	discount = discount.Round(2)
	if discount.GreaterThan(subtotal) {
		return nil, domainErrors.ErrDiscountExceedsSubtotal
	}
	total := subtotal.Sub(discount)

	return u.orders.ReplaceQuote(ctx, orderID, rows, subtotal, discount, total)
}
