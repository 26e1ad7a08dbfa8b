package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hotel-reservation/middleware"
	"hotel-reservation/services"
	"hotel-reservation/utils"
)

type SearchController struct {
	SearchSvc *services.SearchService
	MaxNights int
}

func NewSearchController(svc *services.SearchService, maxNights int) *SearchController {
	return &SearchController{SearchSvc: svc, MaxNights: maxNights}
}

// GET /api/hotels/search
func (sc *SearchController) SearchHotels(c *gin.Context) {
	stay, err := services.ParseDateRange(c.Query("check_in"), c.Query("check_out"), sc.MaxNights)
	if err != nil {
		respondError(c, err)
		return
	}
	cityID, ok := queryUint(c, "city_id")
	if !ok {
		return
	}
	adults, ok := queryUint(c, "adults")
	if !ok {
		return
	}
	children, ok := queryUint(c, "children")
	if !ok {
		return
	}
	minPrice, ok := queryUint(c, "min_price")
	if !ok {
		return
	}
	maxPrice, ok := queryUint(c, "max_price")
	if !ok {
		return
	}
	minStars, ok := queryUint(c, "min_stars")
	if !ok {
		return
	}
	if adults == 0 {
		adults = 1
	}

	q := services.SearchQuery{
		CityID:   uint(cityID),
		Stay:     stay,
		Adults:   int(adults),
		Children: int(children),
		MinPrice: int64(minPrice),
		MaxPrice: int64(maxPrice),
		MinStars: int(minStars),
	}
	if raw := strings.TrimSpace(c.Query("amenities")); raw != "" {
		q.Amenities = strings.Split(raw, ",")
	}

	hotels, err := sc.SearchSvc.SearchHotels(c.Request.Context(), q, middleware.CurrentCustomer(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotels)
}

// GET /api/rates
func (sc *SearchController) GetRate(c *gin.Context) {
	roomTypeID, ok := queryUint(c, "room_type_id")
	if !ok {
		return
	}
	boardTypeID, ok := queryUint(c, "board_type_id")
	if !ok {
		return
	}
	if roomTypeID == 0 || boardTypeID == 0 {
		badRequest(c, "room_type_id and board_type_id are required")
		return
	}
	day, err := services.ParseDay(c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	roomType, err := sc.SearchSvc.Catalog().GetRoomType(ctx, uint(roomTypeID))
	if err != nil {
		respondError(c, err)
		return
	}
	price, err := sc.SearchSvc.Rates().ResolvePrice(ctx, roomType, uint(boardTypeID), day, middleware.CurrentCustomer(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"room_type_id":      roomTypeID,
		"board_type_id":     boardTypeID,
		"date":              day.Format("2006-01-02"),
		"base_price":        price.Base,
		"extra_adult_price": price.ExtraAdult,
		"child_price":       price.Child,
	})
}

// GET /api/availability
func (sc *SearchController) GetAvailability(c *gin.Context) {
	roomTypeID, ok := queryUint(c, "room_type_id")
	if !ok {
		return
	}
	if roomTypeID == 0 {
		badRequest(c, "room_type_id is required")
		return
	}
	stay, err := services.ParseDateRange(c.Query("check_in"), c.Query("check_out"), sc.MaxNights)
	if err != nil {
		respondError(c, err)
		return
	}
	available, err := sc.SearchSvc.Ledger().IsAvailable(c.Request.Context(), uint(roomTypeID), stay)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"room_type_id": roomTypeID,
		"check_in":     stay.CheckIn.Format("2006-01-02"),
		"check_out":    stay.CheckOut.Format("2006-01-02"),
		"available":    available,
	})
}

type CartRequest struct {
	CheckIn  string              `json:"check_in" binding:"required"`
	CheckOut string              `json:"check_out" binding:"required"`
	Items    []services.CartItem `json:"items" binding:"required"`
}

// POST /api/quotes
func (sc *SearchController) CreateQuote(c *gin.Context) {
	var req CartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	stay, err := services.ParseDateRange(req.CheckIn, req.CheckOut, sc.MaxNights)
	if err != nil {
		respondError(c, err)
		return
	}
	quote, err := sc.SearchSvc.QuoteCart(c.Request.Context(), req.Items, stay, middleware.CurrentCustomer(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, quote)
}
