package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nived-gurung/trekbooking/internal/domain"
	"github.com/nived-gurung/trekbooking/internal/service/booking"
)

const dateLayout = "2006-01-02"

type BookingHandler struct {
	service booking.BookingUseCase
}

type createTrekBookingRequest struct {
	TrekID          int64  `json:"trek_id"`
	TrekDate        string `json:"trek_date"` // YYYY-MM-DD
	People          int    `json:"people"`
	SpecialRequests string `json:"special_requests"`
}

type createTravelBookingRequest struct {
	PackageID  int64  `json:"package_id"`
	TravelDate string `json:"travel_date"` // YYYY-MM-DD
	People     int    `json:"people"`
}

type trekBookingResponse struct {
	ID              int64  `json:"id"`
	Reference       string `json:"reference"`
	TrekID          int64  `json:"trek_id"`
	TrekDate        string `json:"trek_date"`
	People          int    `json:"people"`
	TotalCents      int64  `json:"total_cents"`
	Status          string `json:"status"`
	SpecialRequests string `json:"special_requests,omitempty"`
	CreatedAt       string `json:"created_at"`
}

type travelBookingResponse struct {
	ID         int64  `json:"id"`
	Reference  string `json:"reference"`
	PackageID  int64  `json:"package_id"`
	TravelDate string `json:"travel_date"`
	People     int    `json:"people"`
	TotalCents int64  `json:"total_cents"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
}

type bookingsResponse struct {
	TrekBookings   []trekBookingResponse   `json:"trek_bookings"`
	TravelBookings []travelBookingResponse `json:"travel_bookings"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

// Register expects the router group to carry the RequireUser middleware;
// the booking owner is always the authenticated user, never request input.
func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("/treks", h.createTrek)
	router.POST("/travel", h.createTravel)
	router.DELETE("/treks/:id", h.cancelTrek)
	router.DELETE("/travel/:id", h.cancelTravel)
}

func (h *BookingHandler) createTrek(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req createTrekBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	trekDate, err := time.Parse(dateLayout, req.TrekDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "trek_date must be YYYY-MM-DD"})
		return
	}

	created, err := h.service.CreateTrekBooking(c.Request.Context(), booking.CreateTrekBookingInput{
		UserID:          user.ID,
		TrekID:          req.TrekID,
		TrekDate:        trekDate,
		People:          req.People,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toTrekBookingResponse(created))
}

func (h *BookingHandler) createTravel(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req createTravelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	travelDate, err := time.Parse(dateLayout, req.TravelDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "travel_date must be YYYY-MM-DD"})
		return
	}

	created, err := h.service.CreateTravelBooking(c.Request.Context(), booking.CreateTravelBookingInput{
		UserID:     user.ID,
		PackageID:  req.PackageID,
		TravelDate: travelDate,
		People:     req.People,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toTravelBookingResponse(created))
}

func (h *BookingHandler) cancelTrek(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	cancelled, err := h.service.CancelTrekBooking(c.Request.Context(), user.ID, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTrekBookingResponse(cancelled))
}

func (h *BookingHandler) cancelTravel(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	cancelled, err := h.service.CancelTravelBooking(c.Request.Context(), user.ID, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTravelBookingResponse(cancelled))
}

func (h *BookingHandler) list(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	trekBookings, travelBookings, err := h.service.ListForUser(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := bookingsResponse{
		TrekBookings:   make([]trekBookingResponse, 0, len(trekBookings)),
		TravelBookings: make([]travelBookingResponse, 0, len(travelBookings)),
	}
	for i := range trekBookings {
		resp.TrekBookings = append(resp.TrekBookings, toTrekBookingResponse(&trekBookings[i]))
	}
	for i := range travelBookings {
		resp.TravelBookings = append(resp.TravelBookings, toTravelBookingResponse(&travelBookings[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func toTrekBookingResponse(b *domain.TrekBooking) trekBookingResponse {
	return trekBookingResponse{
		ID:              b.ID,
		Reference:       b.Reference,
		TrekID:          b.TrekID,
		TrekDate:        b.TrekDate.Format(dateLayout),
		People:          b.People,
		TotalCents:      b.TotalCents,
		Status:          string(b.Status),
		SpecialRequests: b.SpecialRequests,
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
	}
}

func toTravelBookingResponse(b *domain.TravelBooking) travelBookingResponse {
	return travelBookingResponse{
		ID:         b.ID,
		Reference:  b.Reference,
		PackageID:  b.PackageID,
		TravelDate: b.TravelDate.Format(dateLayout),
		People:     b.People,
		TotalCents: b.TotalCents,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt.Format(time.RFC3339),
	}
}
