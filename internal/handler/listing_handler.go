package handler

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AdmiralGufi/real-estate-app/internal/currency"
	"github.com/AdmiralGufi/real-estate-app/internal/geo"
	"github.com/AdmiralGufi/real-estate-app/internal/listings"
	"github.com/AdmiralGufi/real-estate-app/internal/model"
	"github.com/AdmiralGufi/real-estate-app/internal/repository"
)

// ListingHandler управляет всеми операциями над объектами недвижимости.
type ListingHandler struct {
	Repo      repository.ListingRepository
	Converter *currency.Converter
}

// RegisterRoutes регистрирует все роуты для Listings.
func (h *ListingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/properties", h.GetProperties)
	rg.GET("/properties/:id", h.GetPropertyByID)
	rg.POST("/properties", h.CreateProperty)
	rg.PUT("/properties/:id", h.UpdateProperty)
	rg.DELETE("/properties/:id", h.DeleteProperty)
	rg.GET("/districts", h.GetDistricts)
}

// GET /api/properties?type=&district=&minPrice=&maxPrice=&currency=&sort=&bbox=
func (h *ListingHandler) GetProperties(c *gin.Context) {
	spec := listings.FilterSpec{
		Type:     c.Query("type"),
		District: c.Query("district"),
		MinPrice: listings.ParsePrice(c.Query("minPrice")),
		MaxPrice: listings.ParsePrice(c.Query("maxPrice")),
	}

	// Если клиент показывает цены в долларах, границы приходят в долларах.
	// Переводим их в сомы до фильтрации, а не после.
	if c.Query("currency") == "usd" {
		h.Converter.Refresh(c.Request.Context())
		if spec.MinPrice != nil {
			v := h.Converter.ToSom(*spec.MinPrice)
			spec.MinPrice = &v
		}
		if spec.MaxPrice != nil {
			v := h.Converter.ToSom(*spec.MaxPrice)
			spec.MaxPrice = &v
		}
	}

	list, err := h.Repo.GetAll(c.Request.Context())
	if err != nil {
		log.Printf("[GetProperties] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Ошибка сервера"})
		return
	}

	list = listings.Filter(list, spec)

	if raw := c.Query("bbox"); raw != "" {
		bound, err := geo.ParseBound(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		list = geo.FilterByBound(list, bound)
	}

	if raw := c.Query("sort"); raw != "" {
		list = listings.Sort(list, listings.ParseSortOrder(raw))
	}

	c.JSON(http.StatusOK, list)
}

// GET /api/properties/:id
func (h *ListingHandler) GetPropertyByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Объект не найден"})
		return
	}

	listing, err := h.Repo.GetByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Объект не найден"})
		return
	}
	if err != nil {
		log.Printf("[GetPropertyByID] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Ошибка сервера"})
		return
	}

	c.JSON(http.StatusOK, listing)
}

// POST /api/properties
func (h *ListingHandler) CreateProperty(c *gin.Context) {
	var listing model.Listing
	if err := c.ShouldBindJSON(&listing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Некорректный payload"})
		return
	}

	if err := h.Repo.Create(c.Request.Context(), &listing); err != nil {
		log.Printf("[CreateProperty] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Ошибка сервера"})
		return
	}

	c.JSON(http.StatusCreated, listing)
}

// PUT /api/properties/:id
func (h *ListingHandler) UpdateProperty(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Объект не найден"})
		return
	}

	patch, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Некорректный payload"})
		return
	}

	updated, err := h.Repo.Update(c.Request.Context(), id, patch)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Объект не найден"})
	case errors.Is(err, repository.ErrInvalidPayload):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Некорректный payload"})
	case err != nil:
		log.Printf("[UpdateProperty] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Ошибка сервера"})
	default:
		c.JSON(http.StatusOK, updated)
	}
}

// DELETE /api/properties/:id
func (h *ListingHandler) DeleteProperty(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Объект не найден"})
		return
	}

	deleted, err := h.Repo.Delete(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Объект не найден"})
		return
	}
	if err != nil {
		log.Printf("[DeleteProperty] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Ошибка сервера"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Объект удален", "property": deleted})
}

// GET /api/districts — список районов для выпадающего фильтра.
func (h *ListingHandler) GetDistricts(c *gin.Context) {
	list, err := h.Repo.GetAll(c.Request.Context())
	if err != nil {
		log.Printf("[GetDistricts] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Ошибка сервера"})
		return
	}

	c.JSON(http.StatusOK, listings.Districts(list))
}
