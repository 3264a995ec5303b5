package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/megamind-app/megamind-backend/internal/http/response"
	"github.com/megamind-app/megamind-backend/internal/pkg/apperr"
	"github.com/megamind-app/megamind-backend/internal/services"
)

// CourseHandler serves the shared catalog. Reads are public but come
// back enriched with the caller's progress when a token is presented.
type CourseHandler struct {
	catalogService services.CatalogService
	enrichService  services.EnrichmentService
}

func NewCourseHandler(catalogService services.CatalogService, enrichService services.EnrichmentService) *CourseHandler {
	return &CourseHandler{catalogService: catalogService, enrichService: enrichService}
}

func (ch *CourseHandler) ListCourses(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		courses, err := ch.catalogService.GetCourses(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Data(c, http.StatusOK, courses)
		return
	}
	courses, err := ch.enrichService.EnrichedCourses(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, http.StatusOK, courses)
}

func (ch *CourseHandler) GetCourse(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, apperr.NotFound(apperr.CodeCourseNotFound, "Course not found"))
		return
	}
	userID := currentUserID(c)
	if userID == uuid.Nil {
		course, err := ch.catalogService.GetCourse(c.Request.Context(), courseID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Data(c, http.StatusOK, course)
		return
	}
	course, err := ch.enrichService.EnrichedCourse(c.Request.Context(), userID, courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, http.StatusOK, course)
}

func (ch *CourseHandler) CreateCourse(c *gin.Context) {
	var req services.CourseCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Invalid(apperr.CodeInvalidBody, "Request body must be valid JSON"))
		return
	}
	course, err := ch.catalogService.CreateCourse(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, http.StatusCreated, course)
}

func (ch *CourseHandler) UpdateCourse(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, apperr.NotFound(apperr.CodeCourseNotFound, "Course not found"))
		return
	}
	var req services.CourseUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Invalid(apperr.CodeInvalidBody, "Request body must be valid JSON"))
		return
	}
	course, err := ch.catalogService.UpdateCourse(c.Request.Context(), courseID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, http.StatusOK, course)
}

func (ch *CourseHandler) DeleteCourse(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, apperr.NotFound(apperr.CodeCourseNotFound, "Course not found"))
		return
	}
	if err := ch.catalogService.DeleteCourse(c.Request.Context(), courseID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (ch *CourseHandler) CreateLecture(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, apperr.NotFound(apperr.CodeCourseNotFound, "Course not found"))
		return
	}
	var req services.LectureCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Invalid(apperr.CodeInvalidBody, "Request body must be valid JSON"))
		return
	}
	lecture, err := ch.catalogService.AddLecture(c.Request.Context(), courseID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, http.StatusCreated, lecture)
}

func (ch *CourseHandler) UpdateLecture(c *gin.Context) {
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
	var req services.LectureUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Invalid(apperr.CodeInvalidBody, "Request body must be valid JSON"))
		return
	}
	lecture, err := ch.catalogService.UpdateLecture(c.Request.Context(), courseID, lectureID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, http.StatusOK, lecture)
}

func (ch *CourseHandler) DeleteLecture(c *gin.Context) {
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
	if err := ch.catalogService.DeleteLecture(c.Request.Context(), courseID, lectureID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (ch *CourseHandler) CreateAssignment(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, apperr.NotFound(apperr.CodeCourseNotFound, "Course not found"))
		return
	}
	var req services.AssignmentCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Invalid(apperr.CodeInvalidBody, "Request body must be valid JSON"))
		return
	}
	assignment, err := ch.catalogService.AddAssignment(c.Request.Context(), courseID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, http.StatusCreated, assignment)
}

func (ch *CourseHandler) UpdateAssignment(c *gin.Context) {
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
	var req services.AssignmentUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Invalid(apperr.CodeInvalidBody, "Request body must be valid JSON"))
		return
	}
	assignment, err := ch.catalogService.UpdateAssignment(c.Request.Context(), courseID, assignmentID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, http.StatusOK, assignment)
}

func (ch *CourseHandler) DeleteAssignment(c *gin.Context) {
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
	if err := ch.catalogService.DeleteAssignment(c.Request.Context(), courseID, assignmentID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
