package pagination

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type Pagination struct {
	Page   int
	Limit  int
	Offset int
	Total  int64
}

// ParseFromRequest handles pagination parameters from Fiber context
func ParseFromRequest(c *fiber.Ctx) *Pagination {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return &Pagination{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// Meta creates a standardized pagination block for responses
func Meta(p *Pagination) fiber.Map {
	pages := p.Total / int64(p.Limit)
	if p.Total%int64(p.Limit) > 0 {
		pages++
	}

	return fiber.Map{
		"page":  p.Page,
		"limit": p.Limit,
		"total": p.Total,
		"pages": pages,
	}
}
