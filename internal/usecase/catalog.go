package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/zaidkh/tijara/internal/domain/errors"
	"github.com/zaidkh/tijara/internal/domain/model"
	"github.com/zaidkh/tijara/internal/domain/repository"
)

// CatalogUseCase covers product plumbing around the core: listing, lookup
// and staff edits of price/name/active flag. Stock changes go through the
// ledger, never through catalog updates.
type CatalogUseCase struct {
	products repository.ProductRepository
	ledger   repository.InventoryLedger
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(products repository.ProductRepository, ledger repository.InventoryLedger) *CatalogUseCase {
	return &CatalogUseCase{products: products, ledger: ledger}
}

// Create adds a product to the catalog.
func (u *CatalogUseCase) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	product.SKU = strings.TrimSpace(product.SKU)
	if product.SKU == "" || strings.TrimSpace(product.Name) == "" {
		return nil, domainErrors.ErrInvalidProduct
	}
	if product.Stock < 0 {
		return nil, domainErrors.ErrInsufficientStock
	}
	return u.products.Create(ctx, product)
}

// Update edits the catalog-owned fields of a product.
func (u *CatalogUseCase) Update(ctx context.Context, id int64, update repository.ProductUpdate) (*model.Product, error) {
	return u.products.Update(ctx, id, update)
}

// Get fetches one product by identifier.
func (u *CatalogUseCase) Get(ctx context.Context, id int64) (*model.Product, error) {
	return u.products.GetByID(ctx, id)
}

// List returns catalog products matching the filter.
func (u *CatalogUseCase) List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	return u.products.List(ctx, filter)
}

// ReceiveStock books incoming goods through the ledger, the only party
// allowed to move the stock counter.
func (u *CatalogUseCase) ReceiveStock(ctx context.Context, productID int64, qty int) (*model.Product, error) {
	if qty <= 0 {
		return nil, domainErrors.ErrInvalidQuantity
	}
	product, err := u.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := u.ledger.Release(ctx, []model.StockItem{{ProductID: product.ID, SKU: product.SKU, Qty: qty}}); err != nil {
		return nil, err
	}
	return u.products.GetByID(ctx, productID)
}
