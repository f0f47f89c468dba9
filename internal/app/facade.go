package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/zaidkh/tijara/internal/domain/model"
	"github.com/zaidkh/tijara/internal/domain/repository"
	"github.com/zaidkh/tijara/internal/usecase"
)

// QuoteRenderer produces a printable quote document for a custom order
// and returns the URL where it is published.
type QuoteRenderer interface {
	Render(ctx context.Context, order *model.CustomOrder) (string, error)
}

// StoreFacade is the single entry point the HTTP layer and the
// background worker talk to.
type StoreFacade struct {
	auth     *usecase.AuthUseCase
	catalog  *usecase.CatalogUseCase
	standard *usecase.StandardOrderUseCase
	custom   *usecase.CustomOrderUseCase
	quotes   *usecase.QuoteUseCase
	renderer QuoteRenderer
}

func NewStoreFacade(
	auth *usecase.AuthUseCase,
	catalog *usecase.CatalogUseCase,
	standard *usecase.StandardOrderUseCase,
	custom *usecase.CustomOrderUseCase,
	quotes *usecase.QuoteUseCase,
	renderer QuoteRenderer,
) *StoreFacade {
	return &StoreFacade{
		auth:     auth,
		catalog:  catalog,
		standard: standard,
		custom:   custom,
		quotes:   quotes,
		renderer: renderer,
	}
}

func (f *StoreFacade) Register(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password)
	return token, err
}

func (f *StoreFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *StoreFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *StoreFacade) CreateProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	return f.catalog.Create(ctx, product)
}

func (f *StoreFacade) UpdateProduct(ctx context.Context, id int64, update repository.ProductUpdate) (*model.Product, error) {
	return f.catalog.Update(ctx, id, update)
}

func (f *StoreFacade) Product(ctx context.Context, id int64) (*model.Product, error) {
	return f.catalog.Get(ctx, id)
}

func (f *StoreFacade) Products(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	return f.catalog.List(ctx, filter)
}

func (f *StoreFacade) ReceiveStock(ctx context.Context, productID int64, qty int) (*model.Product, error) {
	return f.catalog.ReceiveStock(ctx, productID, qty)
}

func (f *StoreFacade) PlaceStandardOrder(ctx context.Context, customer usecase.CustomerInput, items []repository.NewStandardOrderItem, pickupNotes string) (*model.StandardOrder, error) {
	return f.standard.Create(ctx, customer, items, pickupNotes)
}

func (f *StoreFacade) StandardOrder(ctx context.Context, id int64) (*model.StandardOrder, error) {
	return f.standard.Get(ctx, id)
}

func (f *StoreFacade) StandardOrders(ctx context.Context, filter repository.StandardOrderFilter) ([]model.StandardOrder, error) {
	return f.standard.List(ctx, filter)
}

func (f *StoreFacade) SetStandardOrderStatus(ctx context.Context, id int64, target model.StandardOrderStatus) (*model.StandardOrder, error) {
	return f.standard.SetStatus(ctx, id, target)
}

func (f *StoreFacade) BulkSetStandardOrderStatus(ctx context.Context, ids []int64, target model.StandardOrderStatus) []model.BatchOutcome {
	return f.standard.BulkSetStatus(ctx, ids, target)
}

func (f *StoreFacade) RecalculateStandardOrderTotal(ctx context.Context, id int64) (*model.StandardOrder, error) {
	return f.standard.RecalculateTotal(ctx, id)
}

func (f *StoreFacade) PlaceCustomOrder(ctx context.Context, customer usecase.CustomerInput, draft repository.CustomOrderDraft) (*model.CustomOrder, error) {
	return f.custom.Create(ctx, customer, draft)
}

func (f *StoreFacade) CustomOrder(ctx context.Context, id int64) (*model.CustomOrder, error) {
	return f.custom.Get(ctx, id)
}

func (f *StoreFacade) CustomOrders(ctx context.Context, filter repository.CustomOrderFilter) ([]model.CustomOrder, error) {
	return f.custom.List(ctx, filter)
}

func (f *StoreFacade) AdvanceCustomOrder(ctx context.Context, id int64, target model.CustomOrderStatus) (*model.CustomOrder, error) {
	return f.custom.Advance(ctx, id, target)
}

func (f *StoreFacade) SetQuoteLines(ctx context.Context, orderID int64, lines []usecase.QuoteLineInput, discount decimal.Decimal) (*model.CustomOrder, error) {
	return f.quotes.SetLines(ctx, orderID, lines, discount)
}

// RenderQuote produces the quote document immediately and stores its URL.
// The order must already carry quote lines.
func (f *StoreFacade) RenderQuote(ctx context.Context, orderID int64) (*model.CustomOrder, error) {
	order, err := f.custom.RequireLinesForQuote(ctx, orderID)
	if err != nil {
		return nil, err
	}
	url, err := f.renderer.Render(ctx, order)
	if err != nil {
		return nil, err
	}
	if err := f.custom.SetQuoteDocumentURL(ctx, orderID, url); err != nil {
		return nil, err
	}
	return f.custom.Get(ctx, orderID)
}

func (f *StoreFacade) QuotesForRendering(ctx context.Context, limit int) ([]model.CustomOrder, error) {
	return f.custom.SelectQuotesForRendering(ctx, limit)
}

func (f *StoreFacade) PublishQuoteDocument(ctx context.Context, orderID int64, url string) error {
	return f.custom.SetQuoteDocumentURL(ctx, orderID, url)
}

func (f *StoreFacade) RenderQuoteDocument(ctx context.Context, order *model.CustomOrder) (string, error) {
	return f.renderer.Render(ctx, order)
}
