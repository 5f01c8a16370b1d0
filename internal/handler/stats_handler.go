package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AdmiralGufi/real-estate-app/internal/repository"
	"github.com/AdmiralGufi/real-estate-app/internal/stats"
)

type StatsHandler struct {
	Repo repository.ListingRepository
}

func (h *StatsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats", h.GetStats)
}

// GET /api/stats — медианные и средние цены по районам и типам объектов.
func (h *StatsHandler) GetStats(c *gin.Context) {
	list, err := h.Repo.GetAll(c.Request.Context())
	if err != nil {
		log.Printf("[GetStats] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Ошибка сервера"})
		return
	}

	c.JSON(http.StatusOK, stats.ByDistrict(list))
}
