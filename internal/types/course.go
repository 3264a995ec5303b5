package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Course is the shared catalog aggregate. Lectures and assignments are
// embedded children owned by the course; none of this is user-specific.
type Course struct {
	ID          uuid.UUID                  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string                     `gorm:"not null;column:title" json:"title"`
	Description string                     `gorm:"column:description" json:"description"`
	Source      string                     `gorm:"not null;column:source" json:"source"`
	Status      string                     `gorm:"column:status;default:active" json:"status"`
	Notes       string                     `gorm:"column:notes" json:"notes"`
	Tags        datatypes.JSONSlice[string] `gorm:"column:tags" json:"tags"`
	Lectures    []Lecture                  `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"lectures"`
	Assignments []Assignment               `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"assignments"`
	CreatedAt   time.Time                  `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time                  `gorm:"not null" json:"updatedAt"`
}

func (Course) TableName() string { return "courses" }

type Lecture struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID        uuid.UUID `gorm:"type:uuid;not null;index" json:"courseId"`
	Order           int       `gorm:"not null;column:sort_order" json:"order"`
	Title           string    `gorm:"not null;column:title" json:"title"`
	VideoURL        string    `gorm:"not null;column:video_url" json:"videoUrl"`
	DurationMinutes *int      `gorm:"column:duration_minutes" json:"durationMinutes,omitempty"`
	CreatedAt       time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"not null" json:"updatedAt"`
}

func (Lecture) TableName() string { return "lectures" }

type Assignment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID  uuid.UUID `gorm:"type:uuid;not null;index" json:"courseId"`
	Title     string    `gorm:"not null;column:title" json:"title"`
	Link      *string   `gorm:"column:link" json:"link,omitempty"`
	DueDate   *string   `gorm:"column:due_date" json:"dueDate,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (Assignment) TableName() string { return "assignments" }
