package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/zaidkh/tijara/internal/domain/model"
	"github.com/zaidkh/tijara/internal/domain/repository"
	"github.com/zaidkh/tijara/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// CatalogFacade encapsulates catalog operations exposed via HTTP.
type CatalogFacade interface {
	CreateProduct(ctx context.Context, product model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, id int64, update repository.ProductUpdate) (*model.Product, error)
	Product(ctx context.Context, id int64) (*model.Product, error)
	Products(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error)
	ReceiveStock(ctx context.Context, productID int64, qty int) (*model.Product, error)
}

// StandardOrderFacade covers the pickup order lifecycle.
type StandardOrderFacade interface {
	PlaceStandardOrder(ctx context.Context, customer usecase.CustomerInput, items []repository.NewStandardOrderItem, pickupNotes string) (*model.StandardOrder, error)
	StandardOrder(ctx context.Context, id int64) (*model.StandardOrder, error)
	StandardOrders(ctx context.Context, filter repository.StandardOrderFilter) ([]model.StandardOrder, error)
	SetStandardOrderStatus(ctx context.Context, id int64, target model.StandardOrderStatus) (*model.StandardOrder, error)
	BulkSetStandardOrderStatus(ctx context.Context, ids []int64, target model.StandardOrderStatus) []model.BatchOutcome
}

// CustomOrderFacade covers the installation workflow and its quote.
type CustomOrderFacade interface {
	PlaceCustomOrder(ctx context.Context, customer usecase.CustomerInput, draft repository.CustomOrderDraft) (*model.CustomOrder, error)
	CustomOrder(ctx context.Context, id int64) (*model.CustomOrder, error)
	CustomOrders(ctx context.Context, filter repository.CustomOrderFilter) ([]model.CustomOrder, error)
	AdvanceCustomOrder(ctx context.Context, id int64, target model.CustomOrderStatus) (*model.CustomOrder, error)
	SetQuoteLines(ctx context.Context, orderID int64, lines []usecase.QuoteLineInput, discount decimal.Decimal) (*model.CustomOrder, error)
	RenderQuote(ctx context.Context, orderID int64) (*model.CustomOrder, error)
}

// StoreFacade aggregates the full set of operations used across handlers.
type StoreFacade interface {
	AuthFacade
	CatalogFacade
	StandardOrderFacade
	CustomOrderFacade
}
