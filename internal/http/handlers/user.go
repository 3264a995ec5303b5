package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/megamind-app/megamind-backend/internal/http/response"
	"github.com/megamind-app/megamind-backend/internal/pkg/apperr"
	"github.com/megamind-app/megamind-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
	user, err := uh.userService.GetMe(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, http.StatusOK, user)
}

func (uh *UserHandler) UpdateProfile(c *gin.Context) {
	var req struct {
		DisplayName string `json:"displayName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Invalid(apperr.CodeInvalidBody, "Request body must be valid JSON"))
		return
	}
	user, err := uh.userService.UpdateProfile(c.Request.Context(), currentUserID(c), req.DisplayName)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, http.StatusOK, user)
}

func (uh *UserHandler) SetFocusCourse(c *gin.Context) {
	var req struct {
		CourseID *string `json:"courseId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Invalid(apperr.CodeInvalidBody, "Request body must be valid JSON"))
		return
	}
	var courseID *uuid.UUID
	if req.CourseID != nil {
		id, err := uuid.Parse(*req.CourseID)
		if err != nil {
			response.Error(c, apperr.NotFound(apperr.CodeCourseNotFound, "Course not found"))
			return
		}
		courseID = &id
	}
	user, err := uh.userService.SetFocusCourse(c.Request.Context(), currentUserID(c), courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, http.StatusOK, user)
}

func (uh *UserHandler) ExportData(c *gin.Context) {
	export, err := uh.userService.Export(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, http.StatusOK, export)
}
