package handlers

import (
	"errors"
	"strconv"
	"strings"

	"bazari/internal/models"
	"bazari/internal/repositories"
	"bazari/internal/services/fee"
	"bazari/internal/utils/response"
	"bazari/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type FeeConfigHandler struct {
	feeService fee.Service
}

func NewFeeConfigHandler(feeService fee.Service) *FeeConfigHandler {
	return &FeeConfigHandler{feeService: feeService}
}

// List returns fee configurations, optionally filtered by type and active flag.
func (h *FeeConfigHandler) List(c *fiber.Ctx) error {
	filter := repositories.FeeConfigFilter{
		Type: strings.ToUpper(c.Query("type")),
	}
	if raw := c.Query("isActive"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return response.BadRequest(c, "isActive must be true or false")
		}
		filter.IsActive = &active
	}

	configs, err := h.feeService.ListConfigs(filter)
	if err != nil {
		return response.ServerError(c, "Failed to fetch fee configurations")
	}
	return response.Success(c, configs)
}

type feeConfigInput struct {
	Name       string                 `json:"name"`
	Type       string                 `json:"type"`
	FeeType    string                 `json:"feeType"`
	FeeValue   float64                `json:"feeValue"`
	MinFee     *float64               `json:"minFee"`
	MaxFee     *float64               `json:"maxFee"`
	Currency   string                 `json:"currency"`
	Conditions map[string]interface{} `json:"conditions"`
	AppliesTo  *string                `json:"appliesTo"`
}

func (in *feeConfigInput) validate() error {
	if in.Name == "" {
		return errors.New("name is required")
	}
	in.Type = strings.ToUpper(in.Type)
	if !models.ValidFeeConfigType(in.Type) {
		return errors.New("invalid fee configuration type")
	}
	in.FeeType = strings.ToUpper(in.FeeType)
	if !models.ValidFeeMode(in.FeeType) {
		return errors.New("invalid fee calculation mode")
	}
	if in.FeeValue < 0 {
		return errors.New("feeValue must be positive")
	}
	if in.MinFee != nil && *in.MinFee < 0 {
		return errors.New("minFee must be positive")
	}
	if in.MaxFee != nil && *in.MaxFee < 0 {
		return errors.New("maxFee must be positive")
	}
	if in.MinFee != nil && in.MaxFee != nil && *in.MinFee > *in.MaxFee {
		return errors.New("minFee cannot exceed maxFee")
	}
	if in.Currency == "" {
		in.Currency = "USD"
	}
	if !validation.ValidCurrency(in.Currency) {
		return errors.New("invalid currency")
	}
	if in.AppliesTo != nil {
		upper := strings.ToUpper(*in.AppliesTo)
		in.AppliesTo = &upper
	}
	return nil
}

// Create registers a new fee configuration.
func (h *FeeConfigHandler) Create(c *fiber.Ctx) error {
	var input feeConfigInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if err := input.validate(); err != nil {
		return response.BadRequest(c, err.Error())
	}

	cfg := &models.FeeConfiguration{
		Name:       input.Name,
		Type:       input.Type,
		FeeType:    input.FeeType,
		FeeValue:   input.FeeValue,
		MinFee:     input.MinFee,
		MaxFee:     input.MaxFee,
		Currency:   strings.ToUpper(input.Currency),
		Conditions: models.JSON(input.Conditions),
		IsActive:   true,
		AppliesTo:  input.AppliesTo,
	}
	if err := h.feeService.CreateConfig(c.Context(), cfg); err != nil {
		if errors.Is(err, repositories.ErrDuplicateFeeConfig) {
			return response.BadRequest(c, "A fee configuration with this name already exists")
		}
		return response.ServerError(c, "Failed to create fee configuration")
	}
	return response.Created(c, cfg)
}

// Update replaces the mutable fields of an existing configuration.
func (h *FeeConfigHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid configuration id")
	}

	var input feeConfigInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if err := input.validate(); err != nil {
		return response.BadRequest(c, err.Error())
	}

	cfg := &models.FeeConfiguration{
		ID:         uint(id),
		Name:       input.Name,
		Type:       input.Type,
		FeeType:    input.FeeType,
		FeeValue:   input.FeeValue,
		MinFee:     input.MinFee,
		MaxFee:     input.MaxFee,
		Currency:   strings.ToUpper(input.Currency),
		Conditions: models.JSON(input.Conditions),
		IsActive:   true,
		AppliesTo:  input.AppliesTo,
	}
	if err := h.feeService.UpdateConfig(c.Context(), cfg); err != nil {
		if errors.Is(err, repositories.ErrFeeConfigNotFound) {
			return response.NotFound(c, "Fee configuration not found")
		}
		if errors.Is(err, repositories.ErrDuplicateFeeConfig) {
			return response.BadRequest(c, "A fee configuration with this name already exists")
		}
		return response.ServerError(c, "Failed to update fee configuration")
	}
	return response.Success(c, cfg)
}

// Deactivate soft-disables a configuration. Configurations are never deleted.
func (h *FeeConfigHandler) Deactivate(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid configuration id")
	}

	cfg, err := h.feeService.DeactivateConfig(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, fee.ErrConfigNotFound) {
			return response.NotFound(c, "Fee configuration not found")
		}
		return response.ServerError(c, "Failed to deactivate fee configuration")
	}
	return response.Success(c, fiber.Map{
		"message": "Fee configuration deactivated",
		"config":  cfg,
	})
}
