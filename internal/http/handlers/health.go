package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/megamind-app/megamind-backend/internal/http/response"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	response.Data(c, http.StatusOK, gin.H{"status": "ok"})
}
