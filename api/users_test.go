package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/Domenick1991/staybooking/internal/apperrors"
	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockUserUseCase is a mock implementation of users.UserUseCase
type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) RegisterUser(ctx context.Context, draft domain.UserDraft) (*domain.User, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func TestUserHandler_register_PasswordAlias(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewUserHandler(mockService)

	c, w := newTestContext("POST", "/api/register", `{"name":"Bob","email":"bob@x.com","password":"pw"}`)
	mockService.On("RegisterUser", c.Request.Context(), domain.UserDraft{Name: "Bob", Email: "bob@x.com", Credential: "pw"}).
		Return(&domain.User{ID: 1, Name: "Bob", Email: "bob@x.com", Credential: "pw"}, nil)

	handler.register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), registeredMessage)
	mockService.AssertExpectations(t)
}

func TestUserHandler_register_Conflict(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewUserHandler(mockService)

	c, w := newTestContext("POST", "/api/register", `{"name":"Bob","email":"bob@x.com","credential":"pw"}`)
	mockService.On("RegisterUser", mock.Anything, mock.Anything).Return(nil, apperrors.Conflict("User already exists"))

	handler.register(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "User already exists")
}

func TestUserHandler_adminList(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewUserHandler(mockService)

	c, w := newTestContext("GET", "/api/admin/users", "")
	mockService.On("ListUsers", c.Request.Context()).Return([]domain.User{{ID: 1, Email: "bob@x.com"}}, nil)

	handler.adminList(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bob@x.com")
}
