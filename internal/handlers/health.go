package handlers

import (
	"bazari/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

// Health reports the status of the service and its backing stores.
func Health(c *fiber.Ctx) error {
	dbStatus := "ok"
	if sqlDB, err := repositories.DB.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "unavailable"
	}

	cacheStatus := "ok"
	if repositories.CacheService == nil || repositories.CacheService.HealthCheck(c.Context()) != nil {
		cacheStatus = "unavailable"
	}

	status := fiber.StatusOK
	if dbStatus != "ok" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status":   dbStatus,
		"database": dbStatus,
		"cache":    cacheStatus,
	})
}
