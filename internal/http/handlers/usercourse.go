package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/megamind-app/megamind-backend/internal/http/response"
	"github.com/megamind-app/megamind-backend/internal/pkg/apperr"
	"github.com/megamind-app/megamind-backend/internal/services"
)

// UserCourseHandler manages per-user progress: enrollment plus partial
// updates at course, lecture and assignment level.
type UserCourseHandler struct {
	progressService services.ProgressService
}

func NewUserCourseHandler(progressService services.ProgressService) *UserCourseHandler {
	return &UserCourseHandler{progressService: progressService}
}

func (uch *UserCourseHandler) Enroll(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, apperr.NotFound(apperr.CodeCourseNotFound, "Course not found"))
		return
	}
	record, err := uch.progressService.Enroll(c.Request.Context(), currentUserID(c), courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, http.StatusCreated, record)
}

func (uch *UserCourseHandler) UpdateCourseData(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, apperr.NotFound(apperr.CodeCourseNotFound, "Course not found"))
		return
	}
	var req services.CourseProgressUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Invalid(apperr.CodeInvalidBody, "Request body must be valid JSON"))
		return
	}
	record, err := uch.progressService.UpdateCourseProgress(c.Request.Context(), currentUserID(c), courseID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, http.StatusOK, record)
}

func (uch *UserCourseHandler) UpdateLectureData(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, apperr.NotFound(apperr.CodeCourseNotFound, "Course not found"))
		return
	}
	lectureID, ok := parseIDParam(c, "lectureId")
	if !ok {
		response.Error(c, apperr.NotFound(apperr.CodeLectureNotFound, "Lecture not found"))
		return
	}
	var req services.LectureProgressUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Invalid(apperr.CodeInvalidBody, "Request body must be valid JSON"))
		return
	}
	record, err := uch.progressService.UpdateLectureProgress(c.Request.Context(), currentUserID(c), courseID, lectureID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, http.StatusOK, record)
}

func (uch *UserCourseHandler) UpdateAssignmentData(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, apperr.NotFound(apperr.CodeCourseNotFound, "Course not found"))
		return
	}
	assignmentID, ok := parseIDParam(c, "assignmentId")
	if !ok {
		response.Error(c, apperr.NotFound(apperr.CodeAssignmentNotFound, "Assignment not found"))
		return
	}
	var req services.AssignmentProgressUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Invalid(apperr.CodeInvalidBody, "Request body must be valid JSON"))
		return
	}
	record, err := uch.progressService.UpdateAssignmentProgress(c.Request.Context(), currentUserID(c), courseID, assignmentID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, http.StatusOK, record)
}
