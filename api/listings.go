package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/staybooking/internal/apperrors"
	"github.com/Domenick1991/staybooking/internal/service/listings"
	"github.com/gin-gonic/gin"
)

type ListingHandler struct {
	service listings.ListingUseCase
}

func NewListingHandler(service listings.ListingUseCase) *ListingHandler {
	return &ListingHandler{service: service}
}

func (h *ListingHandler) Register(router *gin.RouterGroup) {
	router.GET("/listings", h.list)
	router.GET("/hotels", h.list)
	router.GET("/listings/:id", h.get)
}

// list accepts both the current parameter names and the older limit/search/minPrice/maxPrice.
func (h *ListingHandler) list(c *gin.Context) {
	page, err := h.service.List(c.Request.Context(), listings.ListingsRequest{
		Page:      c.Query("page"),
		PageSize:  queryAny(c, "pageSize", "limit"),
		Text:      queryAny(c, "text", "search"),
		MinRate:   queryAny(c, "minRate", "minPrice"),
		MaxRate:   queryAny(c, "maxRate", "maxPrice"),
		MinRating: c.Query("minRating"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ListingHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, apperrors.Validation("invalid id"))
		return
	}
	listing, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

func queryAny(c *gin.Context, keys ...string) string {
	for _, k := range keys {
		if v := c.Query(k); v != "" {
			return v
		}
	}
	return ""
}
