package renderer

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/zaidkh/tijara/internal/config"
	"github.com/zaidkh/tijara/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func quoteOrder() *model.CustomOrder {
	price := decimal.RequireFromString("35.50")
	subtotal := decimal.RequireFromString("142.00")
	total := decimal.RequireFromString("142.00")
	zero := decimal.Zero
	return &model.CustomOrder{
		ID:       7,
		Status:   model.CustomOrderStatusQuoteSent,
		Currency: "JOD",
		Customer: &model.Customer{Name: "Ahmad", Phone: "+962791234567", City: "Amman"},
		Lines: []model.CustomOrderLine{
			{Type: model.LineTypeProduct, Name: "Dome camera", SKU: "CAM-01", Qty: decimal.NewFromInt(4), UnitPrice: &price},
		},
		QuoteSubtotal: &subtotal,
		QuoteDiscount: &zero,
		QuoteTotal:    &total,
	}
}

func TestNewHTTPClient(t *testing.T) {
	if _, err := NewHTTPClient("://bad", config.StoreInfo{}, testLogger()); err == nil {
		t.Fatal("expected error for malformed url")
	}
	if _, err := NewHTTPClient("renderer.local", config.StoreInfo{}, testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
	if _, err := NewHTTPClient("http://renderer.local", config.StoreInfo{}, testLogger()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRenderSuccess(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/quotes/render" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"url": "https://docs.example.com/q7.pdf"})
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, config.StoreInfo{Name: "Tijara", Phone: "+962791111111", Address: "Amman"}, testLogger())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	url, err := client.Render(context.Background(), quoteOrder())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if url != "https://docs.example.com/q7.pdf" {
		t.Fatalf("unexpected url %q", url)
	}
	if captured["order_id"].(float64) != 7 {
		t.Fatalf("order id not forwarded: %v", captured["order_id"])
	}
	store := captured["store"].(map[string]any)
	if store["name"] != "Tijara" {
		t.Fatalf("store metadata not forwarded: %v", store)
	}
	if len(captured["lines"].([]any)) != 1 {
		t.Fatalf("lines not forwarded: %v", captured["lines"])
	}
}

func TestRenderServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, config.StoreInfo{}, testLogger())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.Render(context.Background(), quoteOrder()); err == nil {
		t.Fatal("expected error")
	}
}

func TestRenderEmptyURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"url": ""})
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, config.StoreInfo{}, testLogger())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.Render(context.Background(), quoteOrder()); err != ErrEmptyDocumentURL {
		t.Fatalf("expected ErrEmptyDocumentURL, got %v", err)
	}
}
