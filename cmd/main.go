package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/megamind-app/megamind-backend/internal/db"
	httpS "github.com/megamind-app/megamind-backend/internal/http"
	httpH "github.com/megamind-app/megamind-backend/internal/http/handlers"
	httpMW "github.com/megamind-app/megamind-backend/internal/http/middleware"
	"github.com/megamind-app/megamind-backend/internal/observability"
	"github.com/megamind-app/megamind-backend/internal/pkg/logger"
	"github.com/megamind-app/megamind-backend/internal/services"
	"github.com/megamind-app/megamind-backend/internal/utils"
)

func main() {
	_ = godotenv.Load()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()
	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "megamind-backend",
		Environment: os.Getenv("APP_ENV"),
		Version:     os.Getenv("APP_VERSION"),
	})
	if otelShutdown != nil {
		defer otelShutdown(ctx)
	}

	// Store
	log.Info("Setting up store from main...")
	store, err := db.NewStore(log)
	if err != nil {
		log.Error("Store init failed", "error", err)
		os.Exit(1)
	}

	// Services
	log.Info("Setting up services from main...")
	authService := services.NewAuthService(log, store.Users)
	enrichService := services.NewEnrichmentService(log, store.Courses, store.UserCourseData)
	catalogService := services.NewCatalogService(log, store.Courses, store.UserCourseData)
	progressService := services.NewProgressService(log, store.Courses, store.UserCourseData)
	userService := services.NewUserService(log, store.Users, store.Courses, enrichService)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := httpH.NewAuthHandler(authService)
	userHandler := httpH.NewUserHandler(userService)
	courseHandler := httpH.NewCourseHandler(catalogService, enrichService)
	userCourseHandler := httpH.NewUserCourseHandler(progressService)
	healthHandler := httpH.NewHealthHandler()

	authMiddleware := httpMW.NewAuthMiddleware(log, authService)

	server := httpS.NewServer(httpS.RouterConfig{
		AuthMiddleware:    authMiddleware,
		AuthHandler:       authHandler,
		UserHandler:       userHandler,
		CourseHandler:     courseHandler,
		UserCourseHandler: userCourseHandler,
		HealthHandler:     healthHandler,
	})

	port := utils.GetEnv("SERVER_PORT", "8080", log)
	log.Info("Starting server", "port", port)
	if err := server.Run(":" + port); err != nil {
		log.Error("Server exited", "error", err)
		os.Exit(1)
	}
}
