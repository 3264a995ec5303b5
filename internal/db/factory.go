package db

import (
	"fmt"

	"github.com/megamind-app/megamind-backend/internal/docstore"
	"github.com/megamind-app/megamind-backend/internal/pkg/logger"
	"github.com/megamind-app/megamind-backend/internal/repos"
	"github.com/megamind-app/megamind-backend/internal/utils"
)

// Store bundles one repository per aggregate. Callers hold the
// interfaces and never learn which backend is underneath.
type Store struct {
	Users          repos.UserRepo
	Courses        repos.CourseRepo
	UserCourseData repos.UserCourseDataRepo
}

// NewStore picks the persistence backend from DB_BACKEND:
// postgres (default), sqlite, or redis.
func NewStore(log *logger.Logger) (*Store, error) {
	backend := utils.GetEnv("DB_BACKEND", "postgres", log)

	switch backend {
	case "postgres", "sqlite":
		var (
			svc *SQLService
			err error
		)
		if backend == "postgres" {
			svc, err = NewPostgresService(log)
		} else {
			svc, err = NewSQLiteService(log)
		}
		if err != nil {
			return nil, err
		}
		if err := svc.AutoMigrateAll(); err != nil {
			return nil, err
		}
		gdb := svc.DB()
		return &Store{
			Users:          repos.NewUserRepo(gdb, log),
			Courses:        repos.NewCourseRepo(gdb, log),
			UserCourseData: repos.NewUserCourseDataRepo(gdb, log),
		}, nil
	case "redis":
		client, err := NewRedisClient(log)
		if err != nil {
			return nil, err
		}
		return &Store{
			Users:          docstore.NewUserStore(client, log),
			Courses:        docstore.NewCourseStore(client, log),
			UserCourseData: docstore.NewUserCourseDataStore(client, log),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported DB_BACKEND %q", backend)
	}
}
