package handler

import (
	"log"
	"strconv"

	"notable/usecase"
	"notable/utils"

	"github.com/gin-gonic/gin"
)

// StatsHandler serves the admin dashboard. Role enforcement happens in
// the admin middleware; every aggregation is computed on demand.
type StatsHandler struct {
	statsService *usecase.StatsService
}

func NewStatsHandler(statsService *usecase.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (h *StatsHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.statsService.TotalCounts(c.Request.Context())
	if err != nil {
		log.Printf("Error computing dashboard totals: %v", err)
		utils.InternalError(c, "failed to compute stats")
		return
	}

	utils.Success(c, stats)
}

func (h *StatsHandler) GetUserStats(c *gin.Context) {
	stats, err := h.statsService.PerUserStats(c.Request.Context())
	if err != nil {
		log.Printf("Error computing per-user stats: %v", err)
		utils.InternalError(c, "failed to compute stats")
		return
	}

	utils.Success(c, stats)
}

func (h *StatsHandler) GetNotesPerDay(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", strconv.Itoa(usecase.DefaultStatsWindowDays)))
	if err != nil || days <= 0 {
		utils.BadRequest(c, "days must be a positive integer")
		return
	}

	counts, err := h.statsService.NotesPerDay(c.Request.Context(), days)
	if err != nil {
		log.Printf("Error computing notes per day: %v", err)
		utils.InternalError(c, "failed to compute stats")
		return
	}

	utils.Success(c, counts)
}

func (h *StatsHandler) GetNotesPerUser(c *gin.Context) {
	distribution, err := h.statsService.NotesPerUser(c.Request.Context())
	if err != nil {
		log.Printf("Error computing notes per user: %v", err)
		utils.InternalError(c, "failed to compute stats")
		return
	}

	utils.Success(c, distribution)
}

func (h *StatsHandler) GetSystemStats(c *gin.Context) {
	utils.Success(c, h.statsService.SystemStats())
}
