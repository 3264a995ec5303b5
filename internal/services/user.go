package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/megamind-app/megamind-backend/internal/pkg/apperr"
	"github.com/megamind-app/megamind-backend/internal/pkg/logger"
	"github.com/megamind-app/megamind-backend/internal/repos"
	"github.com/megamind-app/megamind-backend/internal/sanitize"
	"github.com/megamind-app/megamind-backend/internal/types"
	"github.com/megamind-app/megamind-backend/internal/utils"
)

// UserExport is the backup document returned by the export endpoint.
type UserExport struct {
	User       *types.User           `json:"user"`
	Courses    []types.EnrichedCourse `json:"courses"`
	ExportedAt time.Time             `json:"exportedAt"`
	Version    string                `json:"version"`
}

const exportVersion = "2.0"

type UserService interface {
	GetMe(ctx context.Context, userID uuid.UUID) (*types.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, displayName string) (*types.User, error)
	SetFocusCourse(ctx context.Context, userID uuid.UUID, courseID *uuid.UUID) (*types.User, error)
	Export(ctx context.Context, userID uuid.UUID) (*UserExport, error)
}

type userService struct {
	log        *logger.Logger
	userRepo   repos.UserRepo
	courseRepo repos.CourseRepo
	enricher   EnrichmentService
}

func NewUserService(baseLog *logger.Logger, userRepo repos.UserRepo, courseRepo repos.CourseRepo, enricher EnrichmentService) UserService {
	return &userService{
		log:        baseLog.With("service", "UserService"),
		userRepo:   userRepo,
		courseRepo: courseRepo,
		enricher:   enricher,
	}
}

func (s *userService) GetMe(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch user", err)
	}
	if user == nil {
		return nil, apperr.NotFound(apperr.CodeUserNotFound, "User not found")
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, displayName string) (*types.User, error) {
	if displayName == "" {
		return nil, apperr.InvalidFields("displayName is required", map[string]string{"displayName": "required"})
	}

	user, err := s.GetMe(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.DisplayName = sanitize.Text(displayName)
	user.UpdatedAt = utils.NowUTC()
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.log.Error("UpdateProfile failed", "error", err, "user_id", userID)
		return nil, apperr.Internal("failed to update user", err)
	}
	return user, nil
}

func (s *userService) SetFocusCourse(ctx context.Context, userID uuid.UUID, courseID *uuid.UUID) (*types.User, error) {
	if courseID != nil {
		course, err := s.courseRepo.GetByID(ctx, *courseID)
		if err != nil {
			return nil, apperr.Internal("failed to fetch course", err)
		}
		if course == nil {
			return nil, apperr.NotFound(apperr.CodeCourseNotFound, "Course not found")
		}
	}

	user, err := s.GetMe(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.FocusCourseID = courseID
	user.UpdatedAt = utils.NowUTC()
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.log.Error("SetFocusCourse failed", "error", err, "user_id", userID)
		return nil, apperr.Internal("failed to update focus course", err)
	}
	return user, nil
}

func (s *userService) Export(ctx context.Context, userID uuid.UUID) (*UserExport, error) {
	user, err := s.GetMe(ctx, userID)
	if err != nil {
		return nil, err
	}
	courses, err := s.enricher.EnrichedCourses(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserExport{
		User:       user,
		Courses:    courses,
		ExportedAt: utils.NowUTC(),
		Version:    exportVersion,
	}, nil
}
