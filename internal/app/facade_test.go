package app

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

type facadeFixture struct {
	facade    *StoreFacade
	staff     *testhelpers.StaffRepositoryStub
	customers *testhelpers.CustomerRepositoryStub
	products  *testhelpers.ProductRepositoryStub
	ledger    *testhelpers.InventoryLedgerStub
	standard  *testhelpers.StandardOrderRepositoryStub
	custom    *testhelpers.CustomOrderRepositoryStub
	renderer  *testhelpers.RendererStub
}

func newFacade() *facadeFixture {
	f := &facadeFixture{
		staff:     testhelpers.NewStaffRepositoryStub(),
		customers: testhelpers.NewCustomerRepositoryStub(),
		products:  testhelpers.NewProductRepositoryStub(),
		ledger:    &testhelpers.InventoryLedgerStub{},
		standard:  testhelpers.NewStandardOrderRepositoryStub(),
		custom:    testhelpers.NewCustomOrderRepositoryStub(),
		renderer:  &testhelpers.RendererStub{URL: "https://docs.example.com/q.pdf"},
	}

	strategy := testhelpers.StrategyStub{ParseFn: func(string) (int64, error) { return 99, nil }}
	authUC := usecase.NewAuthUseCase(f.staff, testhelpers.HasherStub{}, strategy)
	catalogUC := usecase.NewCatalogUseCase(f.products, f.ledger)
	standardUC := usecase.NewStandardOrderUseCase(f.standard, f.customers, "JOD")
	customUC := usecase.NewCustomOrderUseCase(f.custom, f.customers, "JOD")
	quoteUC := usecase.NewQuoteUseCase(f.custom)

	f.facade = NewStoreFacade(authUC, catalogUC, standardUC, customUC, quoteUC, f.renderer)
	return f
}

func customerInput() usecase.CustomerInput {
	return usecase.CustomerInput{Name: "Ahmad", Phone: "0791234567", City: "Amman"}
}

func TestStoreFacadeAuth(t *testing.T) {
	f := newFacade()

	token, err := f.facade.Register(context.Background(), "staff", "pass")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if token != "token" {
		t.Fatalf("unexpected token %q", token)
	}

	token, err = f.facade.Authenticate(context.Background(), "staff", "pass")
	if err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	if token != "token" {
		t.Fatalf("unexpected token %q", token)
	}

	id, err := f.facade.ParseToken("anything")
	if err != nil {
		t.Fatalf("parse token returned error: %v", err)
	}
	if id != 99 {
		t.Fatalf("expected id 99, got %d", id)
	}
}

func TestStoreFacadeCatalog(t *testing.T) {
	f := newFacade()

	created, err := f.facade.CreateProduct(context.Background(), model.Product{SKU: "CAM-01", Name: "Dome camera", Price: decimal.RequireFromString("35.50"), Stock: 10, IsActive: true})
	if err != nil {
		t.Fatalf("create product returned error: %v", err)
	}

	fetched, err := f.facade.Product(context.Background(), created.ID)
	if err != nil || fetched.SKU != "CAM-01" {
		t.Fatalf("unexpected fetch result: %v err=%v", fetched, err)
	}

	name := "IP dome camera"
	updated, err := f.facade.UpdateProduct(context.Background(), created.ID, repository.ProductUpdate{Name: &name})
	if err != nil || updated.Name != name {
		t.Fatalf("unexpected update result: %v err=%v", updated, err)
	}

	listed, err := f.facade.Products(context.Background(), repository.ProductFilter{OnlyActive: true})
	if err != nil || len(listed) != 1 {
		t.Fatalf("expected one product, got %v err=%v", listed, err)
	}

	if _, err := f.facade.ReceiveStock(context.Background(), created.ID, 5); err != nil {
		t.Fatalf("receive stock returned error: %v", err)
	}
	if len(f.ledger.Calls) != 1 || f.ledger.Calls[0].Op != "release" {
		t.Fatalf("expected stock intake through ledger, got %+v", f.ledger.Calls)
	}
}

func TestStoreFacadeStandardOrders(t *testing.T) {
	f := newFacade()

	order, err := f.facade.PlaceStandardOrder(context.Background(), customerInput(), []repository.NewStandardOrderItem{{SKU: "CAM-01", Qty: 2}}, "after 5pm")
	if err != nil {
		t.Fatalf("place order returned error: %v", err)
	}
	if order.Status != model.StandardOrderStatusNew {
		t.Fatalf("unexpected status %q", order.Status)
	}

	fetched, err := f.facade.StandardOrder(context.Background(), order.ID)
	if err != nil || fetched.ID != order.ID {
		t.Fatalf("unexpected fetch result: %v err=%v", fetched, err)
	}

	listed, err := f.facade.StandardOrders(context.Background(), repository.StandardOrderFilter{})
	if err != nil || len(listed) != 1 {
		t.Fatalf("expected one order, got %v err=%v", listed, err)
	}

	confirmed, err := f.facade.SetStandardOrderStatus(context.Background(), order.ID, model.StandardOrderStatusConfirmed)
	if err != nil {
		t.Fatalf("confirm returned error: %v", err)
	}
	if confirmed.Status != model.StandardOrderStatusConfirmed {
		t.Fatalf("unexpected status %q", confirmed.Status)
	}
	if len(f.standard.Transitions) != 1 || f.standard.Transitions[0].Effect != model.StockEffectReserve {
		t.Fatalf("expected reserving transition, got %+v", f.standard.Transitions)
	}

	outcomes := f.facade.BulkSetStandardOrderStatus(context.Background(), []int64{order.ID, 999}, model.StandardOrderStatusReady)
	if len(outcomes) != 2 {
		t.Fatalf("expected two outcomes, got %d", len(outcomes))
	}
	if outcomes[0].Err != nil {
		t.Fatalf("first order should transition: %v", outcomes[0].Err)
	}
	if !errors.Is(outcomes[1].Err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for unknown id, got %v", outcomes[1].Err)
	}

	if _, err := f.facade.RecalculateStandardOrderTotal(context.Background(), order.ID); err != nil {
		t.Fatalf("recalculate returned error: %v", err)
	}
}

func TestStoreFacadeCustomOrders(t *testing.T) {
	f := newFacade()

	order, err := f.facade.PlaceCustomOrder(context.Background(), customerInput(), repository.CustomOrderDraft{RequirementSummary: "8 cameras", SiteAddress: "Amman", SiteCity: "Amman"})
	if err != nil {
		t.Fatalf("place custom order returned error: %v", err)
	}
	if order.Status != model.CustomOrderStatusNew {
		t.Fatalf("unexpected status %q", order.Status)
	}

	advanced, err := f.facade.AdvanceCustomOrder(context.Background(), order.ID, model.CustomOrderStatusSurveyScheduled)
	if err != nil || advanced.Status != model.CustomOrderStatusSurveyScheduled {
		t.Fatalf("unexpected advance result: %v err=%v", advanced, err)
	}

	price := decimal.RequireFromString("35.50")
	quoted, err := f.facade.SetQuoteLines(context.Background(), order.ID, []usecase.QuoteLineInput{
		{Type: model.LineTypeProduct, Name: "Dome camera", SKU: "CAM-01", Qty: decimal.NewFromInt(4), UnitPrice: &price},
	}, decimal.Zero)
	if err != nil {
		t.Fatalf("set quote returned error: %v", err)
	}
	if quoted.Status != model.CustomOrderStatusQuoteSent {
		t.Fatalf("unexpected status %q", quoted.Status)
	}

	listed, err := f.facade.CustomOrders(context.Background(), repository.CustomOrderFilter{Status: model.CustomOrderStatusQuoteSent})
	if err != nil || len(listed) != 1 {
		t.Fatalf("expected one quoted order, got %v err=%v", listed, err)
	}
}

func TestStoreFacadeRenderQuote(t *testing.T) {
	f := newFacade()

	price := decimal.RequireFromString("35.50")
	order := f.custom.Add(model.CustomOrder{
		Status: model.CustomOrderStatusQuoteSent,
		Lines: []model.CustomOrderLine{
			{Type: model.LineTypeProduct, Name: "Dome camera", Qty: decimal.NewFromInt(4), UnitPrice: &price},
		},
	})

	rendered, err := f.facade.RenderQuote(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("render quote returned error: %v", err)
	}
	if rendered.QuoteDocumentURL != "https://docs.example.com/q.pdf" {
		t.Fatalf("document url not stored: %q", rendered.QuoteDocumentURL)
	}
	if len(f.renderer.Rendered) != 1 || f.renderer.Rendered[0] != order.ID {
		t.Fatalf("renderer not invoked for order: %+v", f.renderer.Rendered)
	}
}

func TestStoreFacadeRenderQuoteWithoutLines(t *testing.T) {
	f := newFacade()
	order := f.custom.Add(model.CustomOrder{Status: model.CustomOrderStatusNew})

	if _, err := f.facade.RenderQuote(context.Background(), order.ID); !errors.Is(err, domainErrors.ErrMissingLines) {
		t.Fatalf("expected missing lines error, got %v", err)
	}
	if len(f.renderer.Rendered) != 0 {
		t.Fatal("renderer must not run without quote lines")
	}
}

func TestStoreFacadeWorkerSurface(t *testing.T) {
	f := newFacade()

	price := decimal.RequireFromString("35.50")
	order := f.custom.Add(model.CustomOrder{
		Status: model.CustomOrderStatusQuoteSent,
		Lines: []model.CustomOrderLine{
			{Type: model.LineTypeProduct, Name: "Dome camera", Qty: decimal.NewFromInt(4), UnitPrice: &price},
		},
	})

	pending, err := f.facade.QuotesForRendering(context.Background(), 10)
	if err != nil || len(pending) != 1 {
		t.Fatalf("expected one pending quote, got %v err=%v", pending, err)
	}

	url, err := f.facade.RenderQuoteDocument(context.Background(), &pending[0])
	if err != nil || url == "" {
		t.Fatalf("unexpected render result: %q err=%v", url, err)
	}

	if err := f.facade.PublishQuoteDocument(context.Background(), order.ID, url); err != nil {
		t.Fatalf("publish returned error: %v", err)
	}
	if f.custom.DocumentURLs[order.ID] != url {
		t.Fatalf("document url not persisted: %q", f.custom.DocumentURLs[order.ID])
	}

	pending, err = f.facade.QuotesForRendering(context.Background(), 10)
	if err != nil || len(pending) != 0 {
		t.Fatalf("published quote must leave the queue, got %v err=%v", pending, err)
	}
}
