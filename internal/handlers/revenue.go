package handlers

import (
	"strings"
	"time"

	"bazari/internal/services/revenue"
	"bazari/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type RevenueHandler struct {
	revenueService revenue.Service
}

func NewRevenueHandler(revenueService revenue.Service) *RevenueHandler {
	return &RevenueHandler{revenueService: revenueService}
}

// GetReport returns the aggregated revenue report for a date range.
// Dates are parsed as YYYY-MM-DD; the window defaults to the last 30 days.
func (h *RevenueHandler) GetReport(c *fiber.Ctx) error {
	q := revenue.Query{
		Period: strings.ToUpper(c.Query("period")),
		Source: strings.ToUpper(c.Query("source")),
	}

	if raw := c.Query("startDate"); raw != "" {
		start, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return response.BadRequest(c, "startDate must be YYYY-MM-DD")
		}
		q.Start = start
	}
	if raw := c.Query("endDate"); raw != "" {
		end, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return response.BadRequest(c, "endDate must be YYYY-MM-DD")
		}
		// include the whole end day
		q.End = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if !q.Start.IsZero() && !q.End.IsZero() && q.End.Before(q.Start) {
		return response.BadRequest(c, "endDate must not be before startDate")
	}

	report, err := h.revenueService.GetReport(c.Context(), q)
	if err != nil {
		return response.ServerError(c, "Failed to generate revenue report")
	}
	return response.Success(c, report)
}
