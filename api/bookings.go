package api

import (
	"net/http"

	"github.com/Domenick1991/staybooking/internal/apperrors"
	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/Domenick1991/staybooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

const bookingConfirmedMessage = "Booking successful! Confirmation email sent."

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	ListingID  int64  `json:"listingId"`
	GuestName  string `json:"guestName"`
	GuestEmail string `json:"guestEmail"`
	StayDate   string `json:"stayDate"`
}

type bookingResponse struct {
	Message string          `json:"message"`
	Booking *domain.Booking `json:"booking"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/bookings", h.create)
	router.GET("/admin/bookings", h.adminList)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperrors.Validation("malformed booking request").WithDetails(map[string]any{"body": err.Error()}))
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), domain.BookingDraft{
		ListingID:  req.ListingID,
		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
		StayDate:   req.StayDate,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bookingResponse{Message: bookingConfirmedMessage, Booking: b})
}

func (h *BookingHandler) adminList(c *gin.Context) {
	bookings, err := h.service.ListBookingsEnriched(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}
