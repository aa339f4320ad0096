package api

import (
	"net/http"

	"github.com/Domenick1991/staybooking/internal/apperrors"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func writeError(c *gin.Context, err error) {
	appErr, ok := apperrors.As(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Code: apperrors.CodeInternal, Message: "internal error"})
		return
	}
	c.JSON(apperrors.HTTPStatus(err), errorResponse{Code: appErr.Code, Message: appErr.Message, Details: appErr.Details})
}
