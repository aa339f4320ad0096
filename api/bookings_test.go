package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Domenick1991/staybooking/internal/apperrors"
	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) CreateBooking(ctx context.Context, draft domain.BookingDraft) (*domain.Booking, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ListBookingsEnriched(ctx context.Context) ([]domain.EnrichedBooking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EnrichedBooking), args.Error(1)
}

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := newTestContext("POST", "/api/bookings", `{"listingId":7,"guestName":"Alice","guestEmail":"a@x.com","stayDate":"2025-01-01"}`)

	draft := domain.BookingDraft{ListingID: 7, GuestName: "Alice", GuestEmail: "a@x.com", StayDate: "2025-01-01"}
	mockService.On("CreateBooking", c.Request.Context(), draft).Return(&domain.Booking{ID: 1700000000000, ListingID: 7, GuestName: "Alice", GuestEmail: "a@x.com", StayDate: "2025-01-01"}, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp bookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, bookingConfirmedMessage, resp.Message)
	assert.Equal(t, int64(1700000000000), resp.Booking.ID)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_ValidationError(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := newTestContext("POST", "/api/bookings", `{"listingId":7}`)
	mockService.On("CreateBooking", mock.Anything, mock.Anything).Return(nil, apperrors.Validation("All fields are required"))

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, apperrors.CodeValidation, resp.Code)
	assert.Equal(t, "All fields are required", resp.Message)
}

func TestBookingHandler_create_MalformedBody(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := newTestContext("POST", "/api/bookings", `{"listingId":"seven"`)

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestBookingHandler_create_PersistenceError(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := newTestContext("POST", "/api/bookings", `{"listingId":7,"guestName":"A","guestEmail":"a@x.com","stayDate":"d"}`)
	mockService.On("CreateBooking", mock.Anything, mock.Anything).Return(nil, apperrors.Persistence(errors.New("disk full"), "write booking"))

	handler.create(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "disk full")
}

func TestBookingHandler_adminList(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := newTestContext("GET", "/api/admin/bookings", "")
	mockService.On("ListBookingsEnriched", c.Request.Context()).Return([]domain.EnrichedBooking{
		{Booking: domain.Booking{ID: 1, ListingID: 999}, ListingName: domain.UnknownListingName, ListingLocality: domain.UnknownListingLocality},
	}, nil)

	handler.adminList(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"listingName":"Unknown Hotel"`)
	assert.Contains(t, w.Body.String(), `"listingLocality":"Unknown City"`)

	mockService.AssertExpectations(t)
}
