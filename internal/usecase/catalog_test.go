package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/zaidkh/tijara/internal/domain/errors"
	"github.com/zaidkh/tijara/internal/domain/model"
	"github.com/zaidkh/tijara/internal/domain/repository"
	testhelpers "github.com/zaidkh/tijara/internal/test"
	"github.com/zaidkh/tijara/internal/usecase"
)

func newCatalogUseCase() (*usecase.CatalogUseCase, *testhelpers.ProductRepositoryStub, *testhelpers.InventoryLedgerStub) {
	products := testhelpers.NewProductRepositoryStub()
	ledger := &testhelpers.InventoryLedgerStub{}
	return usecase.NewCatalogUseCase(products, ledger), products, ledger
}

func TestCatalogCreate(t *testing.T) {
	uc, _, _ := newCatalogUseCase()

	product, err := uc.Create(context.Background(), model.Product{
		SKU:      " CAM-01 ",
		Name:     "Dome camera",
		Price:    decimal.RequireFromString("35.50"),
		Stock:    12,
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.SKU != "CAM-01" {
		t.Fatalf("sku not trimmed: %q", product.SKU)
	}
}

func TestCatalogCreateValidation(t *testing.T) {
	uc, _, _ := newCatalogUseCase()
	ctx := context.Background()

	if _, err := uc.Create(ctx, model.Product{Name: "no sku"}); !errors.Is(err, domainErrors.ErrInvalidProduct) {
		t.Fatalf("expected ErrInvalidProduct for missing sku, got %v", err)
	}
	if _, err := uc.Create(ctx, model.Product{SKU: "X"}); !errors.Is(err, domainErrors.ErrInvalidProduct) {
		t.Fatalf("expected ErrInvalidProduct for missing name, got %v", err)
	}
	if _, err := uc.Create(ctx, model.Product{SKU: "X", Name: "x", Stock: -1}); !errors.Is(err, domainErrors.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock for negative stock, got %v", err)
	}
}

func TestCatalogCreateDuplicateSKU(t *testing.T) {
	uc, products, _ := newCatalogUseCase()
	products.Add(model.Product{SKU: "CAM-01", Name: "existing", IsActive: true})

	if _, err := uc.Create(context.Background(), model.Product{SKU: "CAM-01", Name: "dup"}); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestCatalogUpdate(t *testing.T) {
	uc, products, _ := newCatalogUseCase()
	seeded := products.Add(model.Product{SKU: "CAM-01", Name: "Dome camera", IsActive: true})

	name := "Dome camera v2"
	price := decimal.RequireFromString("29.90")
	updated, err := uc.Update(context.Background(), seeded.ID, repository.ProductUpdate{Name: &name, Price: &price})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != name || !updated.Price.Equal(price) {
		t.Fatalf("update not applied: %+v", updated)
	}

	if _, err := uc.Update(context.Background(), 999, repository.ProductUpdate{Name: &name}); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCatalogReceiveStock(t *testing.T) {
	uc, products, ledger := newCatalogUseCase()
	seeded := products.Add(model.Product{SKU: "CAM-01", Name: "Dome camera", Stock: 3, IsActive: true})

	if _, err := uc.ReceiveStock(context.Background(), seeded.ID, 5); err != nil {
		t.Fatalf("receive failed: %v", err)
	}
	if len(ledger.Calls) != 1 || ledger.Calls[0].Op != "release" {
		t.Fatalf("stock intake must go through the ledger release path: %+v", ledger.Calls)
	}
	if ledger.Calls[0].Items[0].Qty != 5 {
		t.Fatalf("unexpected quantity %d", ledger.Calls[0].Items[0].Qty)
	}
}

func TestCatalogReceiveStockValidation(t *testing.T) {
	uc, _, _ := newCatalogUseCase()

	if _, err := uc.ReceiveStock(context.Background(), 1, 0); !errors.Is(err, domainErrors.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := uc.ReceiveStock(context.Background(), 999, 5); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
