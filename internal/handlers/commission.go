package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"bazari/internal/models"
	"bazari/internal/services/fee"
	"bazari/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type CommissionHandler struct {
	feeService fee.Service
}

func NewCommissionHandler(feeService fee.Service) *CommissionHandler {
	return &CommissionHandler{feeService: feeService}
}

// Calculate quotes the marketplace commission for an order amount. Without an
// amount it returns the active configuration instead.
func (h *CommissionHandler) Calculate(c *fiber.Ctx) error {
	raw := c.Query("amount", c.Query("orderAmount"))
	if raw == "" {
		cfg, err := h.feeService.ActiveConfig(c.Context(), models.FeeConfigMarketplaceCommission, "")
		if err != nil {
			if errors.Is(err, fee.ErrConfigNotFound) {
				return response.NotFound(c, "No commission configuration found")
			}
			return response.ServerError(c, "Failed to fetch commission configuration")
		}
		return response.Success(c, fiber.Map{"config": cfg})
	}

	orderAmount, err := strconv.ParseFloat(raw, 64)
	if err != nil || orderAmount < 0 {
		return response.BadRequest(c, "amount must be a positive number")
	}

	result, cfg, err := h.feeService.Quote(c.Context(), models.FeeConfigMarketplaceCommission, orderAmount, fee.Context{
		UserType: c.Query("userType"),
		Category: c.Query("category"),
	})
	if err != nil {
		if errors.Is(err, fee.ErrConfigNotFound) {
			return response.NotFound(c, "No commission configuration found")
		}
		if errors.Is(err, fee.ErrInvalidAmount) {
			return response.BadRequest(c, err.Error())
		}
		return response.ServerError(c, "Failed to calculate commission")
	}

	return response.Success(c, fiber.Map{
		"orderAmount":      result.BaseAmount,
		"commissionAmount": result.FeeAmount,
		"commissionRate":   result.FeeRate,
		"netAmount":        result.NetAmount,
		"currency":         cfg.Currency,
		"breakdown":        result.Breakdown,
	})
}

// Record persists the commission taken on a completed order.
func (h *CommissionHandler) Record(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}

	var input struct {
		OrderID          string  `json:"orderId"`
		SellerID         uint    `json:"sellerId"`
		OrderAmount      float64 `json:"orderAmount"`
		CommissionAmount float64 `json:"commissionAmount"`
		CommissionRate   float64 `json:"commissionRate"`
		Currency         string  `json:"currency"`
		Category         string  `json:"category"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if input.OrderID == "" {
		return response.BadRequest(c, "Order ID is required")
	}
	if input.OrderAmount < 0 || input.CommissionAmount < 0 {
		return response.BadRequest(c, "Amounts must be positive")
	}
	if input.Currency == "" {
		input.Currency = "USD"
	}

	sellerID := input.SellerID
	if sellerID == 0 {
		sellerID = claims.UserID
	}

	record, err := h.feeService.Record(c.Context(), fee.RecordInput{
		TransactionID: "ORDER_" + input.OrderID,
		UserID:        sellerID,
		FeeType:       models.FeeRecordCommission,
		BaseAmount:    input.OrderAmount,
		FeeAmount:     input.CommissionAmount,
		FeeRate:       input.CommissionRate,
		Currency:      input.Currency,
		Description:   fmt.Sprintf("Marketplace commission for order %s", input.OrderID),
		Metadata: map[string]interface{}{
			"orderId":  input.OrderID,
			"category": input.Category,
		},
	})
	if err != nil {
		if errors.Is(err, fee.ErrDuplicateRecord) {
			return response.BadRequest(c, "Commission already recorded for this order")
		}
		return response.ServerError(c, "Failed to record commission")
	}
	return response.Created(c, record)
}
