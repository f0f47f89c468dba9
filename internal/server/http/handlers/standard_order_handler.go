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

// StandardOrderHandler manages pickup order endpoints.
type StandardOrderHandler struct {
	facade StandardOrderFacade
}

// NewStandardOrderHandler constructs StandardOrderHandler.
func NewStandardOrderHandler(facade StandardOrderFacade) *StandardOrderHandler {
	return &StandardOrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *StandardOrderHandler) Create(c *gin.Context) {
	var req dto.StandardOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	items := make([]repository.NewStandardOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, repository.NewStandardOrderItem{SKU: item.SKU, Qty: item.Qty})
	}

	order, err := h.facade.PlaceStandardOrder(c.Request.Context(), toCustomerInput(req.Customer), items, req.PickupNotes)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrMissingLines),
			errors.Is(err, domainErrors.ErrInvalidQuantity),
			errors.Is(err, domainErrors.ErrDuplicateSKU),
			errors.Is(err, domainErrors.ErrInvalidPhone):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrProductNotFound):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrInsufficientStock):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusCreated, toStandardOrderResponse(*order))
}

// List handles GET /api/orders.
func (h *StandardOrderHandler) List(c *gin.Context) {
	status := model.StandardOrderStatus(strings.TrimSpace(c.Query("status")))
	if status != "" && !model.ValidStandardOrderStatus(status) {
		c.Status(http.StatusBadRequest)
		return
	}

	orders, err := h.facade.StandardOrders(c.Request.Context(), repository.StandardOrderFilter{Status: status})
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.StandardOrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toStandardOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:id.
func (h *StandardOrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.StandardOrder(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toStandardOrderResponse(*order))
}

// SetStatus handles PATCH /api/orders/:id/status.
func (h *StandardOrderHandler) SetStatus(c *gin.Context) {
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

	order, err := h.facade.SetStandardOrderStatus(c.Request.Context(), id, model.StandardOrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidTransition):
			c.Status(http.StatusConflict)
		case errors.Is(err, domainErrors.ErrInsufficientStock):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, toStandardOrderResponse(*order))
}

// BulkSetStatus handles POST /api/orders/bulk-status.
func (h *StandardOrderHandler) BulkSetStatus(c *gin.Context) {
	var req dto.BulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if len(req.IDs) == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	outcomes := h.facade.BulkSetStandardOrderStatus(c.Request.Context(), req.IDs, model.StandardOrderStatus(req.Status))

	response := make([]dto.BulkStatusOutcome, 0, len(outcomes))
	for _, outcome := range outcomes {
		entry := dto.BulkStatusOutcome{ID: outcome.OrderID}
		if outcome.Err != nil {
			entry.Error = outcome.Err.Error()
		} else if outcome.Order != nil {
			entry.Status = string(outcome.Order.Status)
		}
		response = append(response, entry)
	}
	c.JSON(http.StatusOK, response)
}

func toCustomerInput(req dto.CustomerRequest) usecase.CustomerInput {
	return usecase.CustomerInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Whatsapp: req.Whatsapp,
		Email:    req.Email,
		Address:  req.Address,
		City:     req.City,
		Notes:    req.Notes,
	}
}

func toCustomerResponse(customer *model.Customer) *dto.CustomerResponse {
	if customer == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:       customer.ID,
		Name:     customer.Name,
		Phone:    customer.Phone,
		Whatsapp: customer.Whatsapp,
		Email:    customer.Email,
		Address:  customer.Address,
		City:     customer.City,
	}
}

func toStandardOrderResponse(order model.StandardOrder) dto.StandardOrderResponse {
	items := make([]dto.StandardOrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.StandardOrderItemResponse{
			ProductID:  item.ProductID,
			SKU:        item.SKU,
			Name:       item.Name,
			Qty:        item.Qty,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice(),
		})
	}
	return dto.StandardOrderResponse{
		ID:          order.ID,
		Status:      string(order.Status),
		Customer:    toCustomerResponse(order.Customer),
		Items:       items,
		Total:       order.Total,
		Currency:    order.Currency,
		PickupNotes: order.PickupNotes,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}
