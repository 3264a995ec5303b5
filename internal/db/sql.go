package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/megamind-app/megamind-backend/internal/pkg/logger"
	"github.com/megamind-app/megamind-backend/internal/types"
	"github.com/megamind-app/megamind-backend/internal/utils"
)

type SQLService struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewPostgresService connects to Postgres using the POSTGRES_* env vars.
func NewPostgresService(log *logger.Logger) (*SQLService, error) {
	serviceLog := log.With("service", "SQLService", "driver", "postgres")

	host := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	port := utils.GetEnv("POSTGRES_PORT", "5432", log)
	user := utils.GetEnv("POSTGRES_USER", "postgres", log)
	password := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	name := utils.GetEnv("POSTGRES_NAME", "megamind", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)

	serviceLog.Info("Connecting to Postgres...")
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	return &SQLService{db: gdb, log: serviceLog}, nil
}

// NewSQLiteService opens the single-file dev profile of the relational
// backend. Same schema, same repos.
func NewSQLiteService(log *logger.Logger) (*SQLService, error) {
	serviceLog := log.With("service", "SQLService", "driver", "sqlite")

	path := utils.GetEnv("SQLITE_PATH", "megamind.db", log)

	serviceLog.Info("Opening SQLite database...", "path", path)
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return &SQLService{db: gdb, log: serviceLog}, nil
}

func (s *SQLService) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.Course{},
		&types.Lecture{},
		&types.Assignment{},
		&types.UserCourseData{},
		&types.UserLectureData{},
		&types.UserAssignmentData{},
	)
	if err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}

func (s *SQLService) DB() *gorm.DB {
	return s.db
}
