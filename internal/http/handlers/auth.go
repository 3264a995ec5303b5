package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/megamind-app/megamind-backend/internal/http/response"
	"github.com/megamind-app/megamind-backend/internal/pkg/apperr"
	"github.com/megamind-app/megamind-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Invalid(apperr.CodeInvalidBody, "Request body must be valid JSON"))
		return
	}
	result, err := ah.authService.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, http.StatusCreated, result)
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req services.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Invalid(apperr.CodeInvalidBody, "Request body must be valid JSON"))
		return
	}
	result, err := ah.authService.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, http.StatusOK, result)
}
