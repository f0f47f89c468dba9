package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"

	domainErrors "github.com/zaidkh/tijara/internal/domain/errors"
	"github.com/zaidkh/tijara/internal/domain/model"
)

const customStatusLockQuery = "SELECT status FROM custom_orders WHERE id=\\$1 FOR UPDATE"

func customOrderRows(id int64, status model.CustomOrderStatus) *pgxmockv3.Rows {
	now := time.Now()
	return pgxmockv3.NewRows([]string{
		"id", "customer_id", "status", "requirement_summary", "site_address", "site_city",
		"site_geo_lat", "site_geo_lng", "preferred_contact_time",
		"quote_subtotal", "quote_discount", "quote_total", "currency", "quote_doc_url",
		"created_at", "updated_at",
		"name", "phone", "whatsapp", "email", "address", "city", "notes",
	}).AddRow(
		id, int64(1), status, "8 cameras", "Mecca St 12", "Amman",
		decimal.NullDecimal{}, decimal.NullDecimal{}, "",
		decimal.NullDecimal{}, decimal.NullDecimal{}, decimal.NullDecimal{}, "JOD", "",
		now, now,
		"Ahmad", "+962791234567", "", "", "", "Amman", "",
	)
}

func emptyLineRows() *pgxmockv3.Rows {
	return pgxmockv3.NewRows([]string{"id", "order_id", "line_type", "name", "sku", "qty", "unit_price"})
}

func expectCustomOrderSnapshot(mock pgxmockv3.PgxPoolIface, id int64, status model.CustomOrderStatus) {
	mock.ExpectQuery("SELECT o.id, o.customer_id, o.status, o.requirement_summary").WithArgs(id).
		WillReturnRows(customOrderRows(id, status))
	mock.ExpectQuery("SELECT id, order_id, line_type, name, sku, qty, unit_price").WithArgs(id).
		WillReturnRows(emptyLineRows())
}

func TestCustomOrderSetStatusGuard(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := storage.CustomOrders()

	mock.ExpectBegin()
	mock.ExpectQuery(customStatusLockQuery).WithArgs(int64(1)).
		WillReturnRows(pgxmockv3.NewRows([]string{"status"}).AddRow(model.CustomOrderStatusNew))
	mock.ExpectRollback()

	_, err := repo.SetStatus(context.Background(), 1, model.CustomOrderStatusApproved,
		[]model.CustomOrderStatus{model.CustomOrderStatusQuoteSent})
	if !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCustomOrderSetStatusSuccess(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := storage.CustomOrders()

	mock.ExpectBegin()
	mock.ExpectQuery(customStatusLockQuery).WithArgs(int64(1)).
		WillReturnRows(pgxmockv3.NewRows([]string{"status"}).AddRow(model.CustomOrderStatusNew))
	mock.ExpectExec("UPDATE custom_orders SET status=").
		WithArgs(model.CustomOrderStatusSurveyScheduled, int64(1)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	mock.ExpectCommit()
	expectCustomOrderSnapshot(mock, 1, model.CustomOrderStatusSurveyScheduled)

	order, err := repo.SetStatus(context.Background(), 1, model.CustomOrderStatusSurveyScheduled,
		[]model.CustomOrderStatus{model.CustomOrderStatusNew})
	if err != nil {
		t.Fatalf("set status failed: %v", err)
	}
	if order.Status != model.CustomOrderStatusSurveyScheduled {
		t.Fatalf("unexpected status %s", order.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCustomOrderSetStatusNotFound(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := storage.CustomOrders()

	mock.ExpectBegin()
	mock.ExpectQuery(customStatusLockQuery).WithArgs(int64(404)).WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.SetStatus(context.Background(), 404, model.CustomOrderStatusSurveyScheduled,
		[]model.CustomOrderStatus{model.CustomOrderStatusNew})
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCustomOrderReplaceQuote(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := storage.CustomOrders()

	price := decimal.RequireFromString("35.50")
	lines := []model.CustomOrderLine{
		{Type: model.LineTypeProduct, Name: "Dome camera", SKU: "CAM-01", Qty: decimal.NewFromInt(4), UnitPrice: &price},
		{Type: model.LineTypeService, Name: "Configuration", Qty: decimal.NewFromInt(1)},
	}
	subtotal := decimal.RequireFromString("142.00")
	discount := decimal.RequireFromString("2.00")
	total := decimal.RequireFromString("140.00")

	mock.ExpectBegin()
	mock.ExpectQuery(customStatusLockQuery).WithArgs(int64(1)).
		WillReturnRows(pgxmockv3.NewRows([]string{"status"}).AddRow(model.CustomOrderStatusSurveyed))
	mock.ExpectExec("DELETE FROM custom_order_lines").WithArgs(int64(1)).
		WillReturnResult(pgxmockv3.NewResult("DELETE", 2))
	mock.ExpectExec("INSERT INTO custom_order_lines").
		WithArgs(int64(1), model.LineTypeProduct, "Dome camera", "CAM-01", decimal.NewFromInt(4), &price).
		WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO custom_order_lines").
		WithArgs(int64(1), model.LineTypeService, "Configuration", "", decimal.NewFromInt(1), (*decimal.Decimal)(nil)).
		WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	mock.ExpectExec("UPDATE custom_orders SET").
		WithArgs(subtotal, discount, total, model.CustomOrderStatusQuoteSent, int64(1)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	mock.ExpectCommit()
	expectCustomOrderSnapshot(mock, 1, model.CustomOrderStatusQuoteSent)

	order, err := repo.ReplaceQuote(context.Background(), 1, lines, subtotal, discount, total)
	if err != nil {
		t.Fatalf("replace quote failed: %v", err)
	}
	if order.Status != model.CustomOrderStatusQuoteSent {
		t.Fatalf("unexpected status %s", order.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCustomOrderReplaceQuoteNotFound(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := storage.CustomOrders()

	mock.ExpectBegin()
	mock.ExpectQuery(customStatusLockQuery).WithArgs(int64(404)).WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.ReplaceQuote(context.Background(), 404, nil, decimal.Zero, decimal.Zero, decimal.Zero)
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCustomOrderSetQuoteDocumentURL(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := storage.CustomOrders()

	mock.ExpectExec("UPDATE custom_orders SET quote_doc_url=").
		WithArgs("https://docs.example.com/q1.pdf", int64(1)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))

	if err := repo.SetQuoteDocumentURL(context.Background(), 1, "https://docs.example.com/q1.pdf"); err != nil {
		t.Fatalf("set url failed: %v", err)
	}

	mock.ExpectExec("UPDATE custom_orders SET quote_doc_url=").
		WithArgs("https://docs.example.com/q1.pdf", int64(404)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))

	if err := repo.SetQuoteDocumentURL(context.Background(), 404, "https://docs.example.com/q1.pdf"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCustomOrderSelectQuotesForRendering(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := storage.CustomOrders()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM custom_orders").
		WithArgs(model.CustomOrderStatusQuoteSent, 5).
		WillReturnRows(pgxmockv3.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectExec("UPDATE custom_orders SET quote_doc_requested_at=").WithArgs(int64(7)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	mock.ExpectCommit()
	expectCustomOrderSnapshot(mock, 7, model.CustomOrderStatusQuoteSent)

	orders, err := repo.SelectQuotesForRendering(context.Background(), 5)
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != 7 {
		t.Fatalf("unexpected selection: %+v", orders)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
