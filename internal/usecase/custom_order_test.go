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

func newCustomOrderUseCase() (*usecase.CustomOrderUseCase, *testhelpers.CustomOrderRepositoryStub) {
	orders := testhelpers.NewCustomOrderRepositoryStub()
	customers := testhelpers.NewCustomerRepositoryStub()
	return usecase.NewCustomOrderUseCase(orders, customers, "JOD"), orders
}

func TestCustomOrderCreate(t *testing.T) {
	uc, _ := newCustomOrderUseCase()

	order, err := uc.Create(context.Background(), validCustomerInput(), repository.CustomOrderDraft{
		RequirementSummary: "8 camera system, two floors",
		SiteAddress:        "Mecca St 12",
		SiteCity:           "Amman",
	})
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if order.Status != model.CustomOrderStatusNew {
		t.Fatalf("new request must start in status new, got %s", order.Status)
	}
	if order.Currency != "JOD" {
		t.Fatalf("unexpected currency %q", order.Currency)
	}
}

func TestCustomOrderCreateInvalidPhone(t *testing.T) {
	uc, _ := newCustomOrderUseCase()

	_, err := uc.Create(context.Background(), usecase.CustomerInput{Name: "x", Phone: "555"}, repository.CustomOrderDraft{})
	if !errors.Is(err, domainErrors.ErrInvalidPhone) {
		t.Fatalf("expected ErrInvalidPhone, got %v", err)
	}
}

func TestCustomOrderAdvanceHappyPath(t *testing.T) {
	uc, orders := newCustomOrderUseCase()
	seeded := orders.Add(model.CustomOrder{Status: model.CustomOrderStatusNew})

	steps := []model.CustomOrderStatus{
		model.CustomOrderStatusSurveyScheduled,
		model.CustomOrderStatusSurveyed,
	}
	for _, target := range steps {
		updated, err := uc.Advance(context.Background(), seeded.ID, target)
		if err != nil {
			t.Fatalf("advance to %s failed: %v", target, err)
		}
		if updated.Status != target {
			t.Fatalf("expected %s, got %s", target, updated.Status)
		}
	}
}

func TestCustomOrderAdvanceAfterQuote(t *testing.T) {
	uc, orders := newCustomOrderUseCase()
	seeded := orders.Add(model.CustomOrder{Status: model.CustomOrderStatusQuoteSent})

	steps := []model.CustomOrderStatus{
		model.CustomOrderStatusApproved,
		model.CustomOrderStatusScheduledInstall,
		model.CustomOrderStatusInstalled,
		model.CustomOrderStatusHandedOver,
		model.CustomOrderStatusCompleted,
	}
	for _, target := range steps {
		if _, err := uc.Advance(context.Background(), seeded.ID, target); err != nil {
			t.Fatalf("advance to %s failed: %v", target, err)
		}
	}
}

func TestCustomOrderQuoteSentNeverSetDirectly(t *testing.T) {
	uc, orders := newCustomOrderUseCase()
	seeded := orders.Add(model.CustomOrder{Status: model.CustomOrderStatusSurveyed})

	if _, err := uc.Advance(context.Background(), seeded.ID, model.CustomOrderStatusQuoteSent); !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestCustomOrderAdvanceSkippingStepsRejected(t *testing.T) {
	uc, orders := newCustomOrderUseCase()
	seeded := orders.Add(model.CustomOrder{Status: model.CustomOrderStatusNew})

	for _, target := range []model.CustomOrderStatus{
		model.CustomOrderStatusSurveyed,
		model.CustomOrderStatusApproved,
		model.CustomOrderStatusInstalled,
		"bogus",
	} {
		if _, err := uc.Advance(context.Background(), seeded.ID, target); !errors.Is(err, domainErrors.ErrInvalidTransition) {
			t.Fatalf("target %q: expected ErrInvalidTransition, got %v", target, err)
		}
	}
}

func TestCustomOrderCancelWindow(t *testing.T) {
	uc, orders := newCustomOrderUseCase()

	cancellable := []model.CustomOrderStatus{
		model.CustomOrderStatusNew,
		model.CustomOrderStatusSurveyScheduled,
		model.CustomOrderStatusSurveyed,
		model.CustomOrderStatusQuoteSent,
		model.CustomOrderStatusApproved,
		model.CustomOrderStatusScheduledInstall,
	}
	for _, status := range cancellable {
		seeded := orders.Add(model.CustomOrder{Status: status})
		if _, err := uc.Advance(context.Background(), seeded.ID, model.CustomOrderStatusCancelled); err != nil {
			t.Fatalf("cancel from %s failed: %v", status, err)
		}
	}

	for _, status := range []model.CustomOrderStatus{
		model.CustomOrderStatusInstalled,
		model.CustomOrderStatusHandedOver,
		model.CustomOrderStatusCompleted,
	} {
		seeded := orders.Add(model.CustomOrder{Status: status})
		if _, err := uc.Advance(context.Background(), seeded.ID, model.CustomOrderStatusCancelled); !errors.Is(err, domainErrors.ErrInvalidTransition) {
			t.Fatalf("cancel from %s: expected ErrInvalidTransition, got %v", status, err)
		}
	}
}

func TestCustomOrderAdvanceNotFound(t *testing.T) {
	uc, _ := newCustomOrderUseCase()

	if _, err := uc.Advance(context.Background(), 404, model.CustomOrderStatusSurveyScheduled); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCustomOrderRequireLinesForQuote(t *testing.T) {
	uc, orders := newCustomOrderUseCase()
	price := decimal.NewFromInt(30)
	withLines := orders.Add(model.CustomOrder{
		Status: model.CustomOrderStatusQuoteSent,
		Lines: []model.CustomOrderLine{
			{Type: model.LineTypeProduct, Name: "Dome camera", Qty: decimal.NewFromInt(4), UnitPrice: &price},
		},
	})
	bare := orders.Add(model.CustomOrder{Status: model.CustomOrderStatusSurveyed})

	if _, err := uc.RequireLinesForQuote(context.Background(), withLines.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.RequireLinesForQuote(context.Background(), bare.ID); !errors.Is(err, domainErrors.ErrMissingLines) {
		t.Fatalf("expected ErrMissingLines, got %v", err)
	}
}

func TestCustomOrderSelectQuotesForRendering(t *testing.T) {
	uc, orders := newCustomOrderUseCase()
	orders.Add(model.CustomOrder{Status: model.CustomOrderStatusQuoteSent})
	orders.Add(model.CustomOrder{Status: model.CustomOrderStatusQuoteSent, QuoteDocumentURL: "https://docs.example.com/1.pdf"})
	orders.Add(model.CustomOrder{Status: model.CustomOrderStatusSurveyed})

	picked, err := uc.SelectQuotesForRendering(context.Background(), 10)
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if len(picked) != 1 {
		t.Fatalf("expected one quote pending rendering, got %d", len(picked))
	}
}
