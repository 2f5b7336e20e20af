package handlers

import (
	"errors"

	"bazari/internal/models"
	"bazari/internal/repositories"
	"bazari/internal/services/fee"
	"bazari/internal/utils/pagination"
	"bazari/internal/utils/response"
	"bazari/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type TransactionFeeHandler struct {
	feeService fee.Service
	records    repositories.FeeRecordRepository
}

func NewTransactionFeeHandler(feeService fee.Service, records repositories.FeeRecordRepository) *TransactionFeeHandler {
	return &TransactionFeeHandler{
		feeService: feeService,
		records:    records,
	}
}

// Calculate quotes the transaction fee for an amount. Nothing is persisted.
func (h *TransactionFeeHandler) Calculate(c *fiber.Ctx) error {
	var input struct {
		Amount          float64 `json:"amount"`
		Currency        string  `json:"currency"`
		TransactionType string  `json:"transactionType"`
		UserType        string  `json:"userType"`
		UserID          uint    `json:"userId"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if input.Amount < 0 {
		return response.BadRequest(c, "Amount must be positive")
	}
	if input.Currency == "" || !validation.ValidCurrency(input.Currency) {
		return response.BadRequest(c, "Currency is required")
	}
	if input.TransactionType == "" {
		return response.BadRequest(c, "Transaction type is required")
	}

	result, cfg, err := h.feeService.Quote(c.Context(), models.FeeConfigTransaction, input.Amount, fee.Context{
		UserType: input.UserType,
	})
	if err != nil {
		if errors.Is(err, fee.ErrConfigNotFound) {
			return response.NotFound(c, "No fee configuration found")
		}
		if errors.Is(err, fee.ErrInvalidAmount) {
			return response.BadRequest(c, err.Error())
		}
		return response.ServerError(c, "Failed to calculate transaction fee")
	}

	return response.Success(c, fiber.Map{
		"baseAmount":  result.BaseAmount,
		"feeAmount":   result.FeeAmount,
		"feeRate":     result.FeeRate,
		"currency":    input.Currency,
		"totalAmount": result.TotalAmount,
		"breakdown":   result.Breakdown,
		"feeConfig": fiber.Map{
			"name":    cfg.Name,
			"feeType": cfg.FeeType,
			"minFee":  cfg.MinFee,
			"maxFee":  cfg.MaxFee,
		},
	})
}

// List returns recorded transaction fees, newest first.
func (h *TransactionFeeHandler) List(c *fiber.Ctx) error {
	filter := repositories.FeeRecordFilter{
		UserID:  uint(c.QueryInt("userId", 0)),
		FeeType: c.Query("feeType"),
	}
	p := pagination.ParseFromRequest(c)

	fees, err := h.records.List(filter, p)
	if err != nil {
		return response.ServerError(c, "Failed to fetch transaction fees")
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       fees,
		"pagination": pagination.Meta(p),
	})
}

// Record persists one applied fee. Idempotent on transactionId.
func (h *TransactionFeeHandler) Record(c *fiber.Ctx) error {
	var input struct {
		TransactionID string                 `json:"transactionId"`
		UserID        uint                   `json:"userId"`
		FeeType       string                 `json:"feeType"`
		BaseAmount    float64                `json:"baseAmount"`
		FeeAmount     float64                `json:"feeAmount"`
		FeeRate       float64                `json:"feeRate"`
		Currency      string                 `json:"currency"`
		Description   string                 `json:"description"`
		Metadata      map[string]interface{} `json:"metadata"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if input.TransactionID == "" {
		return response.BadRequest(c, "Transaction ID is required")
	}
	if input.UserID == 0 {
		return response.BadRequest(c, "User ID is required")
	}
	if !models.ValidFeeRecordType(input.FeeType) {
		return response.BadRequest(c, "Invalid fee type")
	}
	if input.BaseAmount < 0 || input.FeeAmount < 0 || input.FeeRate < 0 {
		return response.BadRequest(c, "Amounts must be positive")
	}
	if input.Currency == "" {
		return response.BadRequest(c, "Currency is required")
	}

	record, err := h.feeService.Record(c.Context(), fee.RecordInput{
		TransactionID: input.TransactionID,
		UserID:        input.UserID,
		FeeType:       input.FeeType,
		BaseAmount:    input.BaseAmount,
		FeeAmount:     input.FeeAmount,
		FeeRate:       input.FeeRate,
		Currency:      input.Currency,
		Description:   input.Description,
		Metadata:      input.Metadata,
	})
	if err != nil {
		if errors.Is(err, fee.ErrDuplicateRecord) {
			return response.BadRequest(c, "Transaction fee already exists for this transaction")
		}
		return response.ServerError(c, "Failed to create transaction fee")
	}

	return response.Created(c, record)
}
