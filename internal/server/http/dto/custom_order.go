package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomOrderRequest is the payload of a new installation request.
type CustomOrderRequest struct {
	Customer             CustomerRequest  `json:"customer"`
	RequirementSummary   string           `json:"requirement_summary"`
	SiteAddress          string           `json:"site_address"`
	SiteCity             string           `json:"site_city,omitempty"`
	SiteGeoLat           *decimal.Decimal `json:"site_geo_lat,omitempty"`
	SiteGeoLng           *decimal.Decimal `json:"site_geo_lng,omitempty"`
	PreferredContactTime string           `json:"preferred_contact_time,omitempty"`
}

// QuoteLineRequest is one requested quote line; unit_price may be omitted
// for service work priced later.
type QuoteLineRequest struct {
	Type      string           `json:"type"`
	Name      string           `json:"name"`
	SKU       string           `json:"sku,omitempty"`
	Qty       decimal.Decimal  `json:"qty"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// QuoteRequest replaces the full quote of an installation order.
type QuoteRequest struct {
	Lines    []QuoteLineRequest `json:"lines"`
	Discount decimal.Decimal    `json:"discount"`
}

// CustomOrderLineResponse is one quote line.
type CustomOrderLineResponse struct {
	Type       string           `json:"type"`
	Name       string           `json:"name"`
	SKU        string           `json:"sku,omitempty"`
	Qty        decimal.Decimal  `json:"qty"`
	UnitPrice  *decimal.Decimal `json:"unit_price,omitempty"`
	TotalPrice decimal.Decimal  `json:"total_price"`
}

// CustomOrderResponse describes an installation order and its quote.
type CustomOrderResponse struct {
	ID                   int64                     `json:"id"`
	Status               string                    `json:"status"`
	Customer             *CustomerResponse         `json:"customer,omitempty"`
	RequirementSummary   string                    `json:"requirement_summary"`
	SiteAddress          string                    `json:"site_address"`
	SiteCity             string                    `json:"site_city,omitempty"`
	SiteGeoLat           *decimal.Decimal          `json:"site_geo_lat,omitempty"`
	SiteGeoLng           *decimal.Decimal          `json:"site_geo_lng,omitempty"`
	PreferredContactTime string                    `json:"preferred_contact_time,omitempty"`
	QuoteSubtotal        *decimal.Decimal          `json:"quote_subtotal,omitempty"`
	QuoteDiscount        *decimal.Decimal          `json:"quote_discount,omitempty"`
	QuoteTotal           *decimal.Decimal          `json:"quote_total,omitempty"`
	Currency             string                    `json:"currency"`
	QuoteDocumentURL     string                    `json:"quote_document_url,omitempty"`
	Lines                []CustomOrderLineResponse `json:"lines"`
	CreatedAt            time.Time                 `json:"created_at"`
	UpdatedAt            time.Time                 `json:"updated_at"`
}
