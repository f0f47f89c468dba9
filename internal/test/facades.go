package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zaidkh/tijara/internal/domain/model"
	"github.com/zaidkh/tijara/internal/domain/repository"
	"github.com/zaidkh/tijara/internal/usecase"
)

// CatalogFacadeStub provides controllable behaviour for catalog endpoints.
type CatalogFacadeStub struct {
	CreateProductFn func(context.Context, model.Product) (*model.Product, error)
	UpdateProductFn func(context.Context, int64, repository.ProductUpdate) (*model.Product, error)
	ProductFn       func(context.Context, int64) (*model.Product, error)
	ProductsFn      func(context.Context, repository.ProductFilter) ([]model.Product, error)
	ReceiveStockFn  func(context.Context, int64, int) (*model.Product, error)
}

// CreateProduct delegates to the override or returns the product as stored.
func (s CatalogFacadeStub) CreateProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	if s.CreateProductFn != nil {
		return s.CreateProductFn(ctx, product)
	}
	product.ID = 1
	return &product, nil
}

// UpdateProduct delegates to the override or returns a default product.
func (s CatalogFacadeStub) UpdateProduct(ctx context.Context, id int64, update repository.ProductUpdate) (*model.Product, error) {
	if s.UpdateProductFn != nil {
		return s.UpdateProductFn(ctx, id, update)
	}
	return &model.Product{ID: id}, nil
}

// Product returns the configured product.
func (s CatalogFacadeStub) Product(ctx context.Context, id int64) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return &model.Product{ID: id, SKU: "sku-1", IsActive: true}, nil
}

// Products returns the configured listing.
func (s CatalogFacadeStub) Products(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx, filter)
	}
	return []model.Product{{ID: 1, SKU: "sku-1", IsActive: true}}, nil
}

// ReceiveStock delegates to the override or returns a default product.
func (s CatalogFacadeStub) ReceiveStock(ctx context.Context, productID int64, qty int) (*model.Product, error) {
	if s.ReceiveStockFn != nil {
		return s.ReceiveStockFn(ctx, productID, qty)
	}
	return &model.Product{ID: productID, Stock: qty}, nil
}

// StandardOrderFacadeStub provides controllable behaviour for pickup order endpoints.
type StandardOrderFacadeStub struct {
	PlaceFn   func(context.Context, usecase.CustomerInput, []repository.NewStandardOrderItem, string) (*model.StandardOrder, error)
	GetFn     func(context.Context, int64) (*model.StandardOrder, error)
	ListFn    func(context.Context, repository.StandardOrderFilter) ([]model.StandardOrder, error)
	SetFn     func(context.Context, int64, model.StandardOrderStatus) (*model.StandardOrder, error)
	BulkSetFn func(context.Context, []int64, model.StandardOrderStatus) []model.BatchOutcome
}

// PlaceStandardOrder delegates to the override or returns a default order.
func (s StandardOrderFacadeStub) PlaceStandardOrder(ctx context.Context, customer usecase.CustomerInput, items []repository.NewStandardOrderItem, pickupNotes string) (*model.StandardOrder, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, customer, items, pickupNotes)
	}
	return &model.StandardOrder{ID: 1, Status: model.StandardOrderStatusNew}, nil
}

// StandardOrder returns the configured order.
func (s StandardOrderFacadeStub) StandardOrder(ctx context.Context, id int64) (*model.StandardOrder, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return &model.StandardOrder{ID: id, Status: model.StandardOrderStatusNew}, nil
}

// StandardOrders returns the configured listing.
func (s StandardOrderFacadeStub) StandardOrders(ctx context.Context, filter repository.StandardOrderFilter) ([]model.StandardOrder, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	return []model.StandardOrder{{ID: 1, Status: model.StandardOrderStatusNew}}, nil
}

// SetStandardOrderStatus delegates to the override or echoes the target.
func (s StandardOrderFacadeStub) SetStandardOrderStatus(ctx context.Context, id int64, target model.StandardOrderStatus) (*model.StandardOrder, error) {
	if s.SetFn != nil {
		return s.SetFn(ctx, id, target)
	}
	return &model.StandardOrder{ID: id, Status: target}, nil
}

// BulkSetStandardOrderStatus delegates to the override or succeeds for every id.
func (s StandardOrderFacadeStub) BulkSetStandardOrderStatus(ctx context.Context, ids []int64, target model.StandardOrderStatus) []model.BatchOutcome {
	if s.BulkSetFn != nil {
		return s.BulkSetFn(ctx, ids, target)
	}
	outcomes := make([]model.BatchOutcome, 0, len(ids))
	for _, id := range ids {
		outcomes = append(outcomes, model.BatchOutcome{OrderID: id, Order: &model.StandardOrder{ID: id, Status: target}})
	}
	return outcomes
}

// CustomOrderFacadeStub provides controllable behaviour for installation endpoints.
type CustomOrderFacadeStub struct {
	PlaceFn    func(context.Context, usecase.CustomerInput, repository.CustomOrderDraft) (*model.CustomOrder, error)
	GetFn      func(context.Context, int64) (*model.CustomOrder, error)
	ListFn     func(context.Context, repository.CustomOrderFilter) ([]model.CustomOrder, error)
	AdvanceFn  func(context.Context, int64, model.CustomOrderStatus) (*model.CustomOrder, error)
	SetQuoteFn func(context.Context, int64, []usecase.QuoteLineInput, decimal.Decimal) (*model.CustomOrder, error)
	RenderFn   func(context.Context, int64) (*model.CustomOrder, error)
}

// PlaceCustomOrder delegates to the override or returns a default order.
func (s CustomOrderFacadeStub) PlaceCustomOrder(ctx context.Context, customer usecase.CustomerInput, draft repository.CustomOrderDraft) (*model.CustomOrder, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, customer, draft)
	}
	return &model.CustomOrder{ID: 1, Status: model.CustomOrderStatusNew}, nil
}

// CustomOrder returns the configured order.
func (s CustomOrderFacadeStub) CustomOrder(ctx context.Context, id int64) (*model.CustomOrder, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return &model.CustomOrder{ID: id, Status: model.CustomOrderStatusNew}, nil
}

// CustomOrders returns the configured listing.
func (s CustomOrderFacadeStub) CustomOrders(ctx context.Context, filter repository.CustomOrderFilter) ([]model.CustomOrder, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	return []model.CustomOrder{{ID: 1, Status: model.CustomOrderStatusNew}}, nil
}

// AdvanceCustomOrder delegates to the override or echoes the target.
func (s CustomOrderFacadeStub) AdvanceCustomOrder(ctx context.Context, id int64, target model.CustomOrderStatus) (*model.CustomOrder, error) {
	if s.AdvanceFn != nil {
		return s.AdvanceFn(ctx, id, target)
	}
	return &model.CustomOrder{ID: id, Status: target}, nil
}

// SetQuoteLines delegates to the override or returns a sent quote.
func (s CustomOrderFacadeStub) SetQuoteLines(ctx context.Context, orderID int64, lines []usecase.QuoteLineInput, discount decimal.Decimal) (*model.CustomOrder, error) {
	if s.SetQuoteFn != nil {
		return s.SetQuoteFn(ctx, orderID, lines, discount)
	}
	return &model.CustomOrder{ID: orderID, Status: model.CustomOrderStatusQuoteSent}, nil
}

// RenderQuote delegates to the override or returns an order with a document.
func (s CustomOrderFacadeStub) RenderQuote(ctx context.Context, orderID int64) (*model.CustomOrder, error) {
	if s.RenderFn != nil {
		return s.RenderFn(ctx, orderID)
	}
	return &model.CustomOrder{ID: orderID, Status: model.CustomOrderStatusQuoteSent, QuoteDocumentURL: "https://docs.example.com/quote.pdf"}, nil
}

// StoreFacadeStub aggregates facade dependencies for HTTP layer tests.
type StoreFacadeStub struct {
	AuthFacadeStub
	CatalogFacadeStub
	StandardOrderFacadeStub
	CustomOrderFacadeStub
}

// PublishCall stores information about PublishQuoteDocument invocations.
type PublishCall struct {
	OrderID int64
	URL     string
}

// WorkerFacadeStub mimics worker interactions with the store facade.
type WorkerFacadeStub struct {
	Quotes          [][]model.CustomOrder
	QuotesFn        func(context.Context, int) ([]model.CustomOrder, error)
	RenderFn        func(context.Context, *model.CustomOrder) (string, error)
	PublishFn       func(context.Context, int64, string) error
	Published       []PublishCall
	mu              sync.Mutex
	quotesCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// QuotesForRendering returns batches from configured queue.
func (s *WorkerFacadeStub) QuotesForRendering(ctx context.Context, limit int) ([]model.CustomOrder, error) {
	if s.QuotesFn != nil {
		return s.QuotesFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.quotesCallCount, 1)
	if int(call) <= len(s.Quotes) {
		return s.Quotes[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// RenderQuoteDocument returns the configured document URL.
func (s *WorkerFacadeStub) RenderQuoteDocument(ctx context.Context, order *model.CustomOrder) (string, error) {
	if s.RenderFn != nil {
		return s.RenderFn(ctx, order)
	}
	return "https://docs.example.com/quote.pdf", nil
}

// PublishQuoteDocument records publish requests.
func (s *WorkerFacadeStub) PublishQuoteDocument(ctx context.Context, orderID int64, url string) error {
	if s.PublishFn != nil {
		return s.PublishFn(ctx, orderID, url)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Published = append(s.Published, PublishCall{OrderID: orderID, URL: url})
	return nil
}

// RendererStub renders quote documents for tests.
type RendererStub struct {
	RenderFn func(context.Context, *model.CustomOrder) (string, error)
	URL      string
	Err      error
	Rendered []int64
}

// Render returns the configured URL or error.
func (s *RendererStub) Render(ctx context.Context, order *model.CustomOrder) (string, error) {
	s.Rendered = append(s.Rendered, order.ID)
	if s.RenderFn != nil {
		return s.RenderFn(ctx, order)
	}
	if s.Err != nil {
		return "", s.Err
	}
	if s.URL != "" {
		return s.URL, nil
	}
	return "https://docs.example.com/quote.pdf", nil
}
