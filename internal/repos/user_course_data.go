package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/megamind-app/megamind-backend/internal/pkg/logger"
	"github.com/megamind-app/megamind-backend/internal/types"
)

// UserCourseDataRepo is the progress store: one record per (user, course)
// pair with embedded per-lecture and per-assignment entries.
type UserCourseDataRepo interface {
	GetByUser(ctx context.Context, userID uuid.UUID) ([]types.UserCourseData, error)
	GetByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*types.UserCourseData, error)
	Create(ctx context.Context, record *types.UserCourseData) error
	// CreateIfAbsent is the auto-enroll primitive: it returns the record
	// that survives, whether the given one was inserted or a concurrent
	// writer got there first. Backed by the unique (user_id, course_id)
	// index rather than any external lock.
	CreateIfAbsent(ctx context.Context, record *types.UserCourseData) (*types.UserCourseData, error)
	Save(ctx context.Context, record *types.UserCourseData) error
	DeleteByCourse(ctx context.Context, courseID uuid.UUID) error
}

type userCourseDataRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserCourseDataRepo(db *gorm.DB, baseLog *logger.Logger) UserCourseDataRepo {
	return &userCourseDataRepo{db: db, log: baseLog.With("repo", "UserCourseDataRepo")}
}

func (r *userCourseDataRepo) GetByUser(ctx context.Context, userID uuid.UUID) ([]types.UserCourseData, error) {
	var records []types.UserCourseData
	err := r.db.WithContext(ctx).
		Preload("Lectures").
		Preload("Assignments").
		Where("user_id = ?", userID).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *userCourseDataRepo) GetByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*types.UserCourseData, error) {
	var record types.UserCourseData
	err := r.db.WithContext(ctx).
		Preload("Lectures").
		Preload("Assignments").
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *userCourseDataRepo) Create(ctx context.Context, record *types.UserCourseData) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *userCourseDataRepo) CreateIfAbsent(ctx context.Context, record *types.UserCourseData) (*types.UserCourseData, error) {
	// Look up by the unique pair only. The incoming record carries a
	// fresh primary key, so handing it to First/FirstOrCreate would add
	// an id condition that can never match the stored row.
	existing, err := r.GetByUserAndCourse(ctx, record.UserID, record.CourseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	if createErr := r.db.WithContext(ctx).Create(record).Error; createErr != nil {
		// A concurrent first-touch can lose the insert race against the
		// unique index; the surviving row is the answer either way.
		existing, getErr := r.GetByUserAndCourse(ctx, record.UserID, record.CourseID)
		if getErr == nil && existing != nil {
			return existing, nil
		}
		return nil, createErr
	}
	return record, nil
}

func (r *userCourseDataRepo) Save(ctx context.Context, record *types.UserCourseData) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(record).Error
}

func (r *userCourseDataRepo) DeleteByCourse(ctx context.Context, courseID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uuid.UUID
		if err := tx.Model(&types.UserCourseData{}).Where("course_id = ?", courseID).Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Where("user_course_data_id IN ?", ids).Delete(&types.UserLectureData{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_course_data_id IN ?", ids).Delete(&types.UserAssignmentData{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&types.UserCourseData{}).Error
	})
}
