package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/social-network/internal/service"
	apperrors "github.com/spec-kit/social-network/pkg/util"
)

// StatsHandler exposes admin-only aggregation endpoints.
type StatsHandler struct {
	stats *service.StatsService
}

// NewStatsHandler constructs the handler.
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: statsService}
}

// PostsPerUser handles GET /stats/posts-per-user?from=...&to=...
func (h *StatsHandler) PostsPerUser(c *fiber.Ctx) error {
	from, to, err := dateRange(c)
	if err != nil {
		return err
	}

	counts, err := h.stats.PostsPerUser(c.Context(), from, to)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": counts})
}

// CommentsTotal handles GET /stats/comments-total?from=...&to=...
func (h *StatsHandler) CommentsTotal(c *fiber.Ctx) error {
	from, to, err := dateRange(c)
	if err != nil {
		return err
	}

	total, err := h.stats.CommentsTotal(c.Context(), from, to)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"total_comments": total}})
}

// CommentsPerPost handles GET /stats/comments-per-post?from=...&to=...
func (h *StatsHandler) CommentsPerPost(c *fiber.Ctx) error {
	from, to, err := dateRange(c)
	if err != nil {
		return err
	}

	counts, err := h.stats.CommentsPerPost(c.Context(), from, to)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": counts})
}

// dateRange parses the from/to query params. Dates are inclusive; a
// date-only "to" covers the whole day.
func dateRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	from, err := parseDate(c.Query("from"))
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("from must be YYYY-MM-DD or RFC3339", nil)
	}
	to, err := parseDate(c.Query("to"))
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("to must be YYYY-MM-DD or RFC3339", nil)
	}
	if to.Equal(to.Truncate(24 * time.Hour)) {
		to = to.Add(24*time.Hour - time.Nanosecond)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("to must not precede from", nil)
	}
	return from, to, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
