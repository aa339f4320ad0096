package api

import (
	"net/http"

	"github.com/Domenick1991/staybooking/internal/apperrors"
	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/Domenick1991/staybooking/internal/service/users"
	"github.com/gin-gonic/gin"
)

const registeredMessage = "Registration successful"

type UserHandler struct {
	service users.UserUseCase
}

// registerRequest accepts "password" from older clients as the credential.
type registerRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Credential string `json:"credential"`
	Password   string `json:"password"`
}

type registerResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

func NewUserHandler(service users.UserUseCase) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Register(router *gin.RouterGroup) {
	router.POST("/register", h.register)
	router.GET("/admin/users", h.adminList)
}

func (h *UserHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperrors.Validation("malformed registration request").WithDetails(map[string]any{"body": err.Error()}))
		return
	}

	credential := req.Credential
	if credential == "" {
		credential = req.Password
	}

	u, err := h.service.RegisterUser(c.Request.Context(), domain.UserDraft{
		Name:       req.Name,
		Email:      req.Email,
		Credential: credential,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, registerResponse{Message: registeredMessage, User: u})
}

func (h *UserHandler) adminList(c *gin.Context) {
	list, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
