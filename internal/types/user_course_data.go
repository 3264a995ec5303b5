package types

import (
	"time"

	"github.com/google/uuid"
)

// UserCourseData is the per-user progress record for one catalog course.
// At most one row exists per (user, course) pair; the unique index backs
// the create-if-absent path used by auto-enroll.
type UserCourseData struct {
	ID          uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex:idx_user_course" json:"userId"`
	CourseID    uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex:idx_user_course" json:"courseId"`
	Status      string               `gorm:"not null;default:active;column:status" json:"status"`
	Notes       string               `gorm:"column:notes" json:"notes"`
	Lectures    []UserLectureData    `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserCourseDataID;references:ID" json:"lectures"`
	Assignments []UserAssignmentData `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserCourseDataID;references:ID" json:"assignments"`
	CreatedAt   time.Time            `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time            `gorm:"not null" json:"updatedAt"`
}

func (UserCourseData) TableName() string { return "user_course_data" }

type UserLectureData struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	UserCourseDataID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ucd_lecture" json:"-"`
	LectureID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ucd_lecture" json:"lectureId"`
	Status           string    `gorm:"not null;default:not_started;column:status" json:"status"`
	Note             string    `gorm:"column:note" json:"note"`
}

func (UserLectureData) TableName() string { return "user_lecture_data" }

type UserAssignmentData struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	UserCourseDataID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ucd_assignment" json:"-"`
	AssignmentID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ucd_assignment" json:"assignmentId"`
	Status           string    `gorm:"not null;default:not_started;column:status" json:"status"`
	Note             string    `gorm:"column:note" json:"note"`
	// Empty string means "no due date"; values are literal YYYY-MM-DD dates.
	DueDate string `gorm:"column:due_date" json:"dueDate"`
}

func (UserAssignmentData) TableName() string { return "user_assignment_data" }

// LectureEntry returns the embedded per-lecture entry, or nil.
func (d *UserCourseData) LectureEntry(lectureID uuid.UUID) *UserLectureData {
	for i := range d.Lectures {
		if d.Lectures[i].LectureID == lectureID {
			return &d.Lectures[i]
		}
	}
	return nil
}

// AssignmentEntry returns the embedded per-assignment entry, or nil.
func (d *UserCourseData) AssignmentEntry(assignmentID uuid.UUID) *UserAssignmentData {
	for i := range d.Assignments {
		if d.Assignments[i].AssignmentID == assignmentID {
			return &d.Assignments[i]
		}
	}
	return nil
}
