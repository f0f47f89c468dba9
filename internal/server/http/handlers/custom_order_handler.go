package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/zaidkh/tijara/internal/domain/errors"
	"github.com/zaidkh/tijara/internal/domain/model"
	"github.com/zaidkh/tijara/internal/domain/repository"
	"github.com/zaidkh/tijara/internal/server/http/dto"
	"github.com/zaidkh/tijara/internal/usecase"
)

// CustomOrderHandler manages installation order endpoints.
type CustomOrderHandler struct {
	facade CustomOrderFacade
}

// NewCustomOrderHandler constructs CustomOrderHandler.
func NewCustomOrderHandler(facade CustomOrderFacade) *CustomOrderHandler {
	return &CustomOrderHandler{facade: facade}
}

// Create handles POST /api/custom-orders.
func (h *CustomOrderHandler) Create(c *gin.Context) {
	var req dto.CustomOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.PlaceCustomOrder(c.Request.Context(), toCustomerInput(req.Customer), repository.CustomOrderDraft{
		RequirementSummary:   req.RequirementSummary,
		SiteAddress:          req.SiteAddress,
		SiteCity:             req.SiteCity,
		SiteGeoLat:           req.SiteGeoLat,
		SiteGeoLng:           req.SiteGeoLng,
		PreferredContactTime: req.PreferredContactTime,
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidPhone) {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusCreated, toCustomOrderResponse(*order))
}

// List handles GET /api/custom-orders.
func (h *CustomOrderHandler) List(c *gin.Context) {
	filter := repository.CustomOrderFilter{
		Status: model.CustomOrderStatus(strings.TrimSpace(c.Query("status"))),
		City:   strings.TrimSpace(c.Query("city")),
	}

	orders, err := h.facade.CustomOrders(c.Request.Context(), filter)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.CustomOrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toCustomOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/custom-orders/:id.
func (h *CustomOrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.CustomOrder(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toCustomOrderResponse(*order))
}

// Advance handles PATCH /api/custom-orders/:id/status.
func (h *CustomOrderHandler) Advance(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.AdvanceCustomOrder(c.Request.Context(), id, model.CustomOrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidTransition):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, toCustomOrderResponse(*order))
}

// SetQuote handles PUT /api/custom-orders/:id/quote.
func (h *CustomOrderHandler) SetQuote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	lines := make([]usecase.QuoteLineInput, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, usecase.QuoteLineInput{
			Type:      model.LineType(line.Type),
			Name:      line.Name,
			SKU:       line.SKU,
			Qty:       line.Qty,
			UnitPrice: line.UnitPrice,
		})
	}

	order, err := h.facade.SetQuoteLines(c.Request.Context(), id, lines, req.Discount)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrMissingLines),
			errors.Is(err, domainErrors.ErrDiscountExceedsSubtotal):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, toCustomOrderResponse(*order))
}

// RenderQuote handles POST /api/custom-orders/:id/quote/render.
func (h *CustomOrderHandler) RenderQuote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.RenderQuote(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrMissingLines):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusBadGateway)
		}
		return
	}
	c.JSON(http.StatusOK, toCustomOrderResponse(*order))
}

func toCustomOrderResponse(order model.CustomOrder) dto.CustomOrderResponse {
	lines := make([]dto.CustomOrderLineResponse, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, dto.CustomOrderLineResponse{
			Type:       string(line.Type),
			Name:       line.Name,
			SKU:        line.SKU,
			Qty:        line.Qty,
			UnitPrice:  line.UnitPrice,
			TotalPrice: line.TotalPrice(),
		})
	}
	return dto.CustomOrderResponse{
		ID:                   order.ID,
		Status:               string(order.Status),
		Customer:             toCustomerResponse(order.Customer),
		RequirementSummary:   order.RequirementSummary,
		SiteAddress:          order.SiteAddress,
		SiteCity:             order.SiteCity,
		SiteGeoLat:           order.SiteGeoLat,
		SiteGeoLng:           order.SiteGeoLng,
		PreferredContactTime: order.PreferredContactTime,
		QuoteSubtotal:        order.QuoteSubtotal,
		QuoteDiscount:        order.QuoteDiscount,
		QuoteTotal:           order.QuoteTotal,
		Currency:             order.Currency,
		QuoteDocumentURL:     order.QuoteDocumentURL,
		Lines:                lines,
		CreatedAt:            order.CreatedAt,
		UpdatedAt:            order.UpdatedAt,
	}
}
