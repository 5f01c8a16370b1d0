package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AdmiralGufi/real-estate-app/internal/currency"
)

type CurrencyHandler struct {
	Converter *currency.Converter
}

func (h *CurrencyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/rate", h.GetRate)
}

// GET /api/rate — текущий курс сома к доллару. Обновление курса выполняется
// по TTL внутри конвертера, при недоступных провайдерах отдается прежний курс.
func (h *CurrencyHandler) GetRate(c *gin.Context) {
	rate := h.Converter.Refresh(c.Request.Context())

	resp := gin.H{"rate": rate, "base": "KGS", "quote": "USD"}
	if t := h.Converter.LastRefreshed(); !t.IsZero() {
		resp["updatedAt"] = t
	}
	c.JSON(http.StatusOK, resp)
}
