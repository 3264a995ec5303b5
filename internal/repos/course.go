package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/megamind-app/megamind-backend/internal/pkg/logger"
	"github.com/megamind-app/megamind-backend/internal/types"
	"github.com/megamind-app/megamind-backend/internal/utils"
)

// CourseRepo is the shared catalog store. Lectures and assignments are
// embedded children of a course; child writes bump the parent's
// updatedAt the way the catalog always has.
type CourseRepo interface {
	Create(ctx context.Context, course *types.Course) error
	GetAll(ctx context.Context) ([]types.Course, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Course, error)
	Update(ctx context.Context, course *types.Course) error
	Delete(ctx context.Context, id uuid.UUID) error

	AddLecture(ctx context.Context, lecture *types.Lecture) error
	UpdateLecture(ctx context.Context, lecture *types.Lecture) error
	DeleteLecture(ctx context.Context, courseID, lectureID uuid.UUID) error

	AddAssignment(ctx context.Context, assignment *types.Assignment) error
	UpdateAssignment(ctx context.Context, assignment *types.Assignment) error
	DeleteAssignment(ctx context.Context, courseID, assignmentID uuid.UUID) error
}

type courseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return &courseRepo{db: db, log: baseLog.With("repo", "CourseRepo")}
}

func orderedLectures(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC")
}

func orderedAssignments(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

func (r *courseRepo) Create(ctx context.Context, course *types.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepo) GetAll(ctx context.Context) ([]types.Course, error) {
	var courses []types.Course
	err := r.db.WithContext(ctx).
		Preload("Lectures", orderedLectures).
		Preload("Assignments", orderedAssignments).
		Order("created_at ASC").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.Course, error) {
	var course types.Course
	err := r.db.WithContext(ctx).
		Preload("Lectures", orderedLectures).
		Preload("Assignments", orderedAssignments).
		Where("id = ?", id).
		First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) Update(ctx context.Context, course *types.Course) error {
	// Children are managed through the lecture/assignment methods.
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(course).Error
}

func (r *courseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", id).Delete(&types.Lecture{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&types.Assignment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&types.Course{}).Error
	})
}

func (r *courseRepo) AddLecture(ctx context.Context, lecture *types.Lecture) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(lecture).Error; err != nil {
			return err
		}
		return r.touchCourse(tx, lecture.CourseID, lecture.UpdatedAt)
	})
}

func (r *courseRepo) UpdateLecture(ctx context.Context, lecture *types.Lecture) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(lecture).Error; err != nil {
			return err
		}
		return r.touchCourse(tx, lecture.CourseID, lecture.UpdatedAt)
	})
}

func (r *courseRepo) DeleteLecture(ctx context.Context, courseID, lectureID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND course_id = ?", lectureID, courseID).Delete(&types.Lecture{}).Error
		if err != nil {
			return err
		}
		return r.touchCourse(tx, courseID, utils.NowUTC())
	})
}

func (r *courseRepo) AddAssignment(ctx context.Context, assignment *types.Assignment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(assignment).Error; err != nil {
			return err
		}
		return r.touchCourse(tx, assignment.CourseID, assignment.UpdatedAt)
	})
}

func (r *courseRepo) UpdateAssignment(ctx context.Context, assignment *types.Assignment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(assignment).Error; err != nil {
			return err
		}
		return r.touchCourse(tx, assignment.CourseID, assignment.UpdatedAt)
	})
}

func (r *courseRepo) DeleteAssignment(ctx context.Context, courseID, assignmentID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND course_id = ?", assignmentID, courseID).Delete(&types.Assignment{}).Error
		if err != nil {
			return err
		}
		return r.touchCourse(tx, courseID, utils.NowUTC())
	})
}

func (r *courseRepo) touchCourse(tx *gorm.DB, courseID uuid.UUID, at time.Time) error {
	return tx.Model(&types.Course{}).Where("id = ?", courseID).Update("updated_at", at).Error
}
