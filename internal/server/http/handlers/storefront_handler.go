package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/interviewprep/internal/domain/errors"
	"github.com/polkiloo/interviewprep/internal/domain/model"
	"github.com/polkiloo/interviewprep/internal/server/http/dto"
	"github.com/polkiloo/interviewprep/internal/server/http/middleware"
	"github.com/polkiloo/interviewprep/internal/usecase"
)

// StorefrontHandler serves the catalog, checkout and order lookup.
type StorefrontHandler struct {
	facade StorefrontFacade
	logger *slog.Logger
}

// NewStorefrontHandler constructs StorefrontHandler.
func NewStorefrontHandler(facade StorefrontFacade, logger *slog.Logger) *StorefrontHandler {
	return &StorefrontHandler{facade: facade, logger: logger}
}

// Offerings handles GET /api/offerings.
func (h *StorefrontHandler) Offerings(c *gin.Context) {
	offerings := h.facade.Offerings()
	response := make([]dto.OfferingResponse, 0, len(offerings))
	for _, o := range offerings {
		response = append(response, dto.OfferingResponse{
			ID:       o.ID,
			Name:     o.Name,
			Amount:   o.Amount,
			Currency: o.Currency,
			Price:    usecase.FormatAmount(o.Amount),
		})
	}
	c.JSON(http.StatusOK, response)
}

// Checkout handles POST /api/checkout.
func (h *StorefrontHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "checkout failed", "malformed request body")
		return
	}

	redirectURL, err := h.facade.Checkout(c.Request.Context(), strings.TrimSpace(req.OfferingID), middleware.ExtractToken(c))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidOffering):
			fail(c, http.StatusBadRequest, "checkout failed", "invalid offering")
		case errors.Is(err, domainErrors.ErrPaymentProvider):
			h.logger.Error("checkout session failed", slog.String("offering", req.OfferingID), slog.String("error", err.Error()))
			fail(c, http.StatusBadGateway, "checkout failed", "payment provider unavailable")
		default:
			h.logger.Error("checkout failed", slog.String("offering", req.OfferingID), slog.String("error", err.Error()))
			fail(c, http.StatusInternalServerError, "checkout failed", "could not record order")
		}
		return
	}

	c.JSON(http.StatusOK, dto.CheckoutResponse{RedirectURL: redirectURL})
}

// LookupOrder handles POST /api/orders/lookup.
func (h *StorefrontHandler) LookupOrder(c *gin.Context) {
	var req dto.LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "order lookup failed", "malformed request body")
		return
	}

	order, err := h.facade.LookupOrder(c.Request.Context(), req.Reference())
	if err != nil {
		if field, message, ok := validationField(err); ok {
			failField(c, http.StatusBadRequest, field, message)
			return
		}
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, dto.ErrorResponse{Error: "order not found"})
			return
		}
		h.logger.Error("order lookup failed", slog.String("error", err.Error()))
		fail(c, http.StatusInternalServerError, "order lookup failed", "please retry")
		return
	}

	c.JSON(http.StatusOK, dto.LookupResponse{Order: toOrderResponse(order)})
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:           order.ID,
		Email:        order.CustomerEmail,
		OfferingName: order.OfferingName,
		Amount:       order.Amount,
		Currency:     order.Currency,
		Status:       string(order.Status),
		CreatedAt:    order.CreatedAt,
	}
}
