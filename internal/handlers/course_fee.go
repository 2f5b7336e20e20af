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

type CourseFeeHandler struct {
	feeService fee.Service
}

func NewCourseFeeHandler(feeService fee.Service) *CourseFeeHandler {
	return &CourseFeeHandler{feeService: feeService}
}

// Calculate quotes the platform fee on a course price and the revenue the
// instructor keeps after it. Without an amount it returns the active
// configuration instead.
func (h *CourseFeeHandler) Calculate(c *fiber.Ctx) error {
	raw := c.Query("amount", c.Query("coursePrice"))
	if raw == "" {
		cfg, err := h.feeService.ActiveConfig(c.Context(), models.FeeConfigCoursePlatform, "")
		if err != nil {
			if errors.Is(err, fee.ErrConfigNotFound) {
				return response.NotFound(c, "No course fee configuration found")
			}
			return response.ServerError(c, "Failed to fetch course fee configuration")
		}
		return response.Success(c, fiber.Map{"config": cfg})
	}

	coursePrice, err := strconv.ParseFloat(raw, 64)
	if err != nil || coursePrice < 0 {
		return response.BadRequest(c, "amount must be a positive number")
	}

	result, cfg, err := h.feeService.Quote(c.Context(), models.FeeConfigCoursePlatform, coursePrice, fee.Context{
		UserType:    c.Query("userType", c.Query("instructorType")),
		Category:    c.Query("category"),
		CourseLevel: c.Query("level", c.Query("courseLevel")),
	})
	if err != nil {
		if errors.Is(err, fee.ErrConfigNotFound) {
			return response.NotFound(c, "No course fee configuration found")
		}
		if errors.Is(err, fee.ErrInvalidAmount) {
			return response.BadRequest(c, err.Error())
		}
		return response.ServerError(c, "Failed to calculate course fee")
	}

	return response.Success(c, fiber.Map{
		"coursePrice":       result.BaseAmount,
		"platformFee":       result.FeeAmount,
		"instructorRevenue": result.NetAmount,
		"feeRate":           result.FeeRate,
		"currency":          cfg.Currency,
		"breakdown":         result.Breakdown,
	})
}

// Record persists the platform fee taken on a course enrollment.
func (h *CourseFeeHandler) Record(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}

	var input struct {
		EnrollmentID string  `json:"enrollmentId"`
		InstructorID uint    `json:"instructorId"`
		CoursePrice  float64 `json:"coursePrice"`
		PlatformFee  float64 `json:"platformFee"`
		FeeRate      float64 `json:"feeRate"`
		Currency     string  `json:"currency"`
		CourseID     string  `json:"courseId"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if input.EnrollmentID == "" {
		return response.BadRequest(c, "Enrollment ID is required")
	}
	if input.CoursePrice < 0 || input.PlatformFee < 0 {
		return response.BadRequest(c, "Amounts must be positive")
	}
	if input.Currency == "" {
		input.Currency = "USD"
	}

	instructorID := input.InstructorID
	if instructorID == 0 {
		instructorID = claims.UserID
	}

	record, err := h.feeService.Record(c.Context(), fee.RecordInput{
		TransactionID: "ENROLLMENT_" + input.EnrollmentID,
		UserID:        instructorID,
		FeeType:       models.FeeRecordCourse,
		BaseAmount:    input.CoursePrice,
		FeeAmount:     input.PlatformFee,
		FeeRate:       input.FeeRate,
		Currency:      input.Currency,
		Description:   fmt.Sprintf("Platform fee for enrollment %s", input.EnrollmentID),
		Metadata: map[string]interface{}{
			"enrollmentId": input.EnrollmentID,
			"courseId":     input.CourseID,
		},
	})
	if err != nil {
		if errors.Is(err, fee.ErrDuplicateRecord) {
			return response.BadRequest(c, "Course fee already recorded for this enrollment")
		}
		return response.ServerError(c, "Failed to record course fee")
	}
	return response.Created(c, record)
}
