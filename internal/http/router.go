package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/megamind-app/megamind-backend/internal/http/handlers"
	httpMW "github.com/megamind-app/megamind-backend/internal/http/middleware"
)

type RouterConfig struct {
	AuthMiddleware *httpMW.AuthMiddleware

	AuthHandler       *httpH.AuthHandler
	UserHandler       *httpH.UserHandler
	CourseHandler     *httpH.CourseHandler
	UserCourseHandler *httpH.UserCourseHandler
	HealthHandler     *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(otelgin.Middleware("megamind-backend"))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.CORS())

	api := r.Group("/api/v1")

	// Health
	if cfg.HealthHandler != nil {
		api.GET("/health", cfg.HealthHandler.HealthCheck)
	}

	// Auth (public)
	if cfg.AuthHandler != nil {
		api.POST("/auth/register", cfg.AuthHandler.Register)
		api.POST("/auth/login", cfg.AuthHandler.Login)
	}

	// Catalog reads are public but pick up user enrichment when a
	// token is presented.
	if cfg.CourseHandler != nil && cfg.AuthMiddleware != nil {
		public := api.Group("/")
		public.Use(cfg.AuthMiddleware.OptionalAuth())
		public.GET("/courses", cfg.CourseHandler.ListCourses)
		public.GET("/courses/:id", cfg.CourseHandler.GetCourse)
	}

	protected := api.Group("/")
	if cfg.AuthMiddleware != nil {
		protected.Use(cfg.AuthMiddleware.RequireAuth())
	}

	// User (me)
	if cfg.UserHandler != nil {
		protected.GET("/users/me", cfg.UserHandler.GetMe)
		protected.PATCH("/users/me", cfg.UserHandler.UpdateProfile)
		protected.PATCH("/users/me/focus-course", cfg.UserHandler.SetFocusCourse)
		protected.GET("/users/me/export", cfg.UserHandler.ExportData)
	}

	// Catalog writes
	if cfg.CourseHandler != nil {
		protected.POST("/courses", cfg.CourseHandler.CreateCourse)
		protected.PATCH("/courses/:id", cfg.CourseHandler.UpdateCourse)
		protected.DELETE("/courses/:id", cfg.CourseHandler.DeleteCourse)

		protected.POST("/courses/:id/lectures", cfg.CourseHandler.CreateLecture)
		protected.PATCH("/courses/:id/lectures/:lectureId", cfg.CourseHandler.UpdateLecture)
		protected.DELETE("/courses/:id/lectures/:lectureId", cfg.CourseHandler.DeleteLecture)

		protected.POST("/courses/:id/assignments", cfg.CourseHandler.CreateAssignment)
		protected.PATCH("/courses/:id/assignments/:assignmentId", cfg.CourseHandler.UpdateAssignment)
		protected.DELETE("/courses/:id/assignments/:assignmentId", cfg.CourseHandler.DeleteAssignment)
	}

	// Per-user progress
	if cfg.UserCourseHandler != nil {
		protected.POST("/courses/:id/enroll", cfg.UserCourseHandler.Enroll)
		protected.PATCH("/courses/:id/user-data", cfg.UserCourseHandler.UpdateCourseData)
		protected.PATCH("/courses/:id/lectures/:lectureId/user-data", cfg.UserCourseHandler.UpdateLectureData)
		protected.PATCH("/courses/:id/assignments/:assignmentId/user-data", cfg.UserCourseHandler.UpdateAssignmentData)
	}

	return r
}
