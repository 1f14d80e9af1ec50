package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/rentcar-service/internal/api/dto"
	"github.com/spec-kit/rentcar-service/internal/service"
)

// StatsHandler serves the dashboard counters.
type StatsHandler struct {
	stats *service.StatsService
}

// NewStatsHandler constructs handler.
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: statsService}
}

// Get handles GET /api/stats.
func (h *StatsHandler) Get(c *fiber.Ctx) error {
	s, err := h.stats.Snapshot(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.StatsResponse{
		Users:    s.Users,
		Orders:   s.Orders,
		Messages: s.Messages,
		Active:   s.Active,
		Cars:     s.Cars,
	})
}
