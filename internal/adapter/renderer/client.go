package renderer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zaidkh/tijara/internal/config"
	"github.com/zaidkh/tijara/internal/domain/model"
)

// ErrEmptyDocumentURL indicates the renderer answered without a usable URL.
var ErrEmptyDocumentURL = errors.New("renderer returned empty document url")

// Client renders a quote snapshot into a durable document and returns its
// URL. The document itself is owned by the collaborator; the core only
// keeps the reference.
type Client interface {
	Render(ctx context.Context, order *model.CustomOrder) (string, error)
}

// HTTPClient implements Client against the rendering service HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	store      config.StoreInfo
	httpClient *http.Client
	logger     *slog.Logger
}

type request struct {
	OrderID  int64           `json:"order_id"`
	Customer customerPayload `json:"customer"`
	Lines    []linePayload   `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
	Currency string          `json:"currency"`
	Store    storePayload    `json:"store"`
}

type customerPayload struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	City  string `json:"city"`
}

type linePayload struct {
	Type      string           `json:"type"`
	Name      string           `json:"name"`
	SKU       string           `json:"sku,omitempty"`
	Qty       decimal.Decimal  `json:"qty"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	Total     decimal.Decimal  `json:"total"`
}

type storePayload struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type response struct {
	URL string `json:"url"`
}

// NewHTTPClient creates a renderer client with default timeout. Store
// metadata is injected here; the core never reads it from ambient state.
func NewHTTPClient(baseURL string, store config.StoreInfo, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse renderer url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("renderer url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		store:   store,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Render posts the quote snapshot and returns the rendered document URL.
func (c *HTTPClient) Render(ctx context.Context, order *model.CustomOrder) (string, error) {
	payload := request{
		OrderID:  order.ID,
		Subtotal: valueOrZero(order.QuoteSubtotal),
		Discount: valueOrZero(order.QuoteDiscount),
		Total:    valueOrZero(order.QuoteTotal),
		Currency: order.Currency,
		Store:    storePayload{Name: c.store.Name, Phone: c.store.Phone, Address: c.store.Address},
	}
	if order.Customer != nil {
		payload.Customer = customerPayload{
			Name:  order.Customer.Name,
			Phone: order.Customer.Phone,
			City:  order.Customer.City,
		}
	}
	for _, line := range order.Lines {
		payload.Lines = append(payload.Lines, linePayload{
			Type:      string(line.Type),
			Name:      line.Name,
			SKU:       line.SKU,
			Qty:       line.Qty,
			UnitPrice: line.UnitPrice,
			Total:     line.TotalPrice(),
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/quotes/render")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		c.logger.Error("quote render failed", slog.Int("status", resp.StatusCode), slog.String("body", string(raw)))
		return "", fmt.Errorf("renderer error: %s", resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	var data response
	if err := json.Unmarshal(raw, &data); err != nil {
		return "", err
	}
	if data.URL == "" {
		return "", ErrEmptyDocumentURL
	}
	return data.URL, nil
}

func valueOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
