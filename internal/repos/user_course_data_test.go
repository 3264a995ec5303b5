package repos_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/megamind-app/megamind-backend/internal/repos"
	"github.com/megamind-app/megamind-backend/internal/testsupport"
	"github.com/megamind-app/megamind-backend/internal/types"
	"github.com/megamind-app/megamind-backend/internal/utils"
)

func openProgressDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	err = gdb.AutoMigrate(
		&types.UserCourseData{},
		&types.UserLectureData{},
		&types.UserAssignmentData{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return gdb
}

func freshProgressRecord(userID, courseID uuid.UUID) *types.UserCourseData {
	now := utils.NowUTC()
	return &types.UserCourseData{
		ID:          uuid.New(),
		UserID:      userID,
		CourseID:    courseID,
		Status:      types.CourseStatusActive,
		Lectures:    []types.UserLectureData{},
		Assignments: []types.UserAssignmentData{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestCreateIfAbsentReusesExistingRow(t *testing.T) {
	gdb := openProgressDB(t)

	// Each call hands in a record with a fresh primary key; the lookup
	// must still land on the stored (user_id, course_id) row without
	// attempting a second insert.
	inserts := 0
	err := gdb.Callback().Create().Before("gorm:create").Register("count_progress_inserts", func(tx *gorm.DB) {
		if tx.Statement.Table == "user_course_data" {
			inserts++
		}
	})
	if err != nil {
		t.Fatalf("failed to register callback: %v", err)
	}

	repo := repos.NewUserCourseDataRepo(gdb, testsupport.Logger(t))
	ctx := context.Background()
	userID := uuid.New()
	courseID := uuid.New()

	first, err := repo.CreateIfAbsent(ctx, freshProgressRecord(userID, courseID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := repo.CreateIfAbsent(ctx, freshProgressRecord(userID, courseID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected the stored record %s, got %s", first.ID, second.ID)
	}
	if inserts != 1 {
		t.Fatalf("expected exactly one insert attempt, got %d", inserts)
	}

	var count int64
	if err := gdb.Model(&types.UserCourseData{}).Count(&count).Error; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one stored row, got %d", count)
	}
}

func TestCreateIfAbsentReturnsEmbeddedEntries(t *testing.T) {
	gdb := openProgressDB(t)
	repo := repos.NewUserCourseDataRepo(gdb, testsupport.Logger(t))
	ctx := context.Background()
	userID := uuid.New()
	courseID := uuid.New()
	lectureID := uuid.New()

	record, err := repo.CreateIfAbsent(ctx, freshProgressRecord(userID, courseID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	record.Lectures = append(record.Lectures, types.UserLectureData{
		ID:               uuid.New(),
		UserCourseDataID: record.ID,
		LectureID:        lectureID,
		Status:           types.LectureStatusInProgress,
	})
	if err := repo.Save(ctx, record); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.CreateIfAbsent(ctx, freshProgressRecord(userID, courseID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entry := got.LectureEntry(lectureID)
	if entry == nil || entry.Status != types.LectureStatusInProgress {
		t.Fatalf("expected stored lecture entry, got %+v", entry)
	}
}
