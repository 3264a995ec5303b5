package types

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email         string     `gorm:"uniqueIndex;not null;column:email" json:"email"`
	PasswordHash  string     `gorm:"not null;column:password_hash" json:"-"`
	DisplayName   string     `gorm:"column:display_name" json:"displayName"`
	FocusCourseID *uuid.UUID `gorm:"type:uuid;column:focus_course_id" json:"focusCourseId"`
	CreatedAt     time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt     time.Time  `gorm:"not null" json:"updatedAt"`
}

func (User) TableName() string { return "users" }
