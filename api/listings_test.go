package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/Domenick1991/staybooking/internal/apperrors"
	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/Domenick1991/staybooking/internal/service/listings"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockListingUseCase is a mock implementation of listings.ListingUseCase
type MockListingUseCase struct {
	mock.Mock
}

func (m *MockListingUseCase) List(ctx context.Context, req listings.ListingsRequest) (*domain.ListingsPage, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ListingsPage), args.Error(1)
}

func (m *MockListingUseCase) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func TestListingHandler_list(t *testing.T) {
	mockService := &MockListingUseCase{}
	handler := NewListingHandler(mockService)

	c, w := newTestContext("GET", "/api/listings?page=2&pageSize=5&text=tokyo&minRate=100&maxRate=300&minRating=4", "")

	page := &domain.ListingsPage{Items: []domain.Listing{{ID: 1, Name: "Grand Tokyo Resort"}}, Total: 6, TotalPages: 2, CurrentPage: 2, PageSize: 5}
	mockService.On("List", c.Request.Context(), listings.ListingsRequest{
		Page: "2", PageSize: "5", Text: "tokyo", MinRate: "100", MaxRate: "300", MinRating: "4",
	}).Return(page, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalPages":2`)
	mockService.AssertExpectations(t)
}

func TestListingHandler_list_LegacyParams(t *testing.T) {
	mockService := &MockListingUseCase{}
	handler := NewListingHandler(mockService)

	c, w := newTestContext("GET", "/api/hotels?limit=10&search=paris&minPrice=150&maxPrice=200", "")
	mockService.On("List", c.Request.Context(), listings.ListingsRequest{
		PageSize: "10", Text: "paris", MinRate: "150", MaxRate: "200",
	}).Return(&domain.ListingsPage{Items: []domain.Listing{}}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestListingHandler_list_ValidationError(t *testing.T) {
	mockService := &MockListingUseCase{}
	handler := NewListingHandler(mockService)

	c, w := newTestContext("GET", "/api/listings?minRate=abc", "")
	mockService.On("List", mock.Anything, mock.Anything).Return(nil, apperrors.Validation(`minRate must be a number, got "abc"`))

	handler.list(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), apperrors.CodeValidation)
}

func TestListingHandler_get(t *testing.T) {
	mockService := &MockListingUseCase{}
	handler := NewListingHandler(mockService)

	c, w := newTestContext("GET", "/api/listings/1", "")
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	mockService.On("GetByID", c.Request.Context(), int64(1)).Return(&domain.Listing{ID: 1, Name: "Grand Tokyo Resort"}, nil)

	handler.get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestListingHandler_get_NotFoundAndBadID(t *testing.T) {
	mockService := &MockListingUseCase{}
	handler := NewListingHandler(mockService)

	c, w := newTestContext("GET", "/api/listings/42", "")
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	mockService.On("GetByID", mock.Anything, int64(42)).Return(nil, apperrors.NotFound("listing 42 not found"))
	handler.get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	c, w = newTestContext("GET", "/api/listings/x", "")
	c.Params = gin.Params{{Key: "id", Value: "x"}}
	handler.get(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
