package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomOrderStatus describes the installation workflow from first contact
// to handover.
type CustomOrderStatus string

const (
	CustomOrderStatusNew              CustomOrderStatus = "new"
	CustomOrderStatusSurveyScheduled  CustomOrderStatus = "site_survey_scheduled"
	CustomOrderStatusSurveyed         CustomOrderStatus = "surveyed"
	CustomOrderStatusQuoteSent        CustomOrderStatus = "quote_sent"
	CustomOrderStatusApproved         CustomOrderStatus = "approved"
	CustomOrderStatusScheduledInstall CustomOrderStatus = "scheduled_install"
	CustomOrderStatusInstalled        CustomOrderStatus = "installed"
	CustomOrderStatusHandedOver       CustomOrderStatus = "handed_over"
	CustomOrderStatusCompleted        CustomOrderStatus = "completed"
	CustomOrderStatusCancelled        CustomOrderStatus = "cancelled"
)

// CustomOrderAllowedPrev maps each reachable target status to the statuses
// an order may hold immediately before it. QuoteSent is absent on purpose:
// it is reached only through the quote engine, never as a bare status set.
// Cancellation stops being available once installation work begins.
var CustomOrderAllowedPrev = map[CustomOrderStatus][]CustomOrderStatus{
	CustomOrderStatusSurveyScheduled:  {CustomOrderStatusNew},
	CustomOrderStatusSurveyed:         {CustomOrderStatusSurveyScheduled},
	CustomOrderStatusApproved:         {CustomOrderStatusQuoteSent},
	CustomOrderStatusScheduledInstall: {CustomOrderStatusApproved},
	CustomOrderStatusInstalled:        {CustomOrderStatusScheduledInstall},
	CustomOrderStatusHandedOver:       {CustomOrderStatusInstalled},
	CustomOrderStatusCompleted:        {CustomOrderStatusHandedOver},
	CustomOrderStatusCancelled: {
		CustomOrderStatusNew,
		CustomOrderStatusSurveyScheduled,
		CustomOrderStatusSurveyed,
		CustomOrderStatusQuoteSent,
		CustomOrderStatusApproved,
		CustomOrderStatusScheduledInstall,
	},
}

// LineType tags a quote line as a catalog product or a free-text service.
type LineType string

const (
	LineTypeProduct LineType = "product"
	LineTypeService LineType = "service"
)

// CustomOrder is a bespoke installation order priced through a quote.
// Quote fields are either all null (no quote yet) or satisfy
// total = subtotal - discount.
type CustomOrder struct {
	ID                   int64
	CustomerID           int64
	Customer             *Customer
	Status               CustomOrderStatus
	RequirementSummary   string
	SiteAddress          string
	SiteCity             string
	SiteGeoLat           *decimal.Decimal
	SiteGeoLng           *decimal.Decimal
	PreferredContactTime string
	QuoteSubtotal        *decimal.Decimal
	QuoteDiscount        *decimal.Decimal
	QuoteTotal           *decimal.Decimal
	Currency             string
	QuoteDocumentURL     string
	Lines                []CustomOrderLine
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// CustomOrderLine is one quote line. Quantity is fractional (meters of
// cable, hours of labour); service lines may be priced later, so the unit
// price is optional.
type CustomOrderLine struct {
	ID        int64
	OrderID   int64
	Type      LineType
	Name      string
	SKU       string
	Qty       decimal.Decimal
	UnitPrice *decimal.Decimal
}

// TotalPrice of a line; unpriced lines contribute zero.
func (l CustomOrderLine) TotalPrice() decimal.Decimal {
	if l.UnitPrice == nil {
		return decimal.Zero
	}
	return l.Qty.Mul(*l.UnitPrice)
}
