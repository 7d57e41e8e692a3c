package controllers

import (
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// actorID returns the authenticated user's ID for CreatedBy/UpdatedBy
// stamping, 0 when the request carries none.
func actorID(ctx *fiber.Ctx) int {
	if v, ok := ctx.Locals("userID").(float64); ok {
		return int(v)
	}
	return 0
}

func pageParams(ctx *fiber.Ctx) (page, limit, offset int) {
	page, _ = strconv.Atoi(ctx.Query("page", "1"))
	limit, _ = strconv.Atoi(ctx.Query("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset = (page - 1) * limit
	return
}

func paginationMeta(total int64, page, limit int) fiber.Map {
	return fiber.Map{
		"total":       total,
		"page":        page,
		"limit":       limit,
		"total_pages": (total + int64(limit) - 1) / int64(limit),
	}
}
