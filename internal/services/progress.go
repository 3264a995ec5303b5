package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/megamind-app/megamind-backend/internal/pkg/apperr"
	"github.com/megamind-app/megamind-backend/internal/pkg/logger"
	"github.com/megamind-app/megamind-backend/internal/repos"
	"github.com/megamind-app/megamind-backend/internal/sanitize"
	"github.com/megamind-app/megamind-backend/internal/types"
	"github.com/megamind-app/megamind-backend/internal/utils"
)

// Field updates bind with pointers so "absent" and "set to empty" stay
// distinguishable.

type CourseProgressUpdate struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

type LectureProgressUpdate struct {
	Status *string `json:"status"`
	Note   *string `json:"note"`
}

type AssignmentProgressUpdate struct {
	Status  *string `json:"status"`
	Note    *string `json:"note"`
	DueDate *string `json:"dueDate"`
}

// ProgressService applies validated partial updates to progress records.
// Course-level updates require explicit enrollment; lecture and
// assignment updates auto-enroll on first touch.
type ProgressService interface {
	Enroll(ctx context.Context, userID, courseID uuid.UUID) (*types.UserCourseData, error)
	UpdateCourseProgress(ctx context.Context, userID, courseID uuid.UUID, upd CourseProgressUpdate) (*types.UserCourseData, error)
	UpdateLectureProgress(ctx context.Context, userID, courseID, lectureID uuid.UUID, upd LectureProgressUpdate) (*types.UserCourseData, error)
	UpdateAssignmentProgress(ctx context.Context, userID, courseID, assignmentID uuid.UUID, upd AssignmentProgressUpdate) (*types.UserCourseData, error)
}

type progressService struct {
	log        *logger.Logger
	courseRepo repos.CourseRepo
	ucdRepo    repos.UserCourseDataRepo
}

func NewProgressService(baseLog *logger.Logger, courseRepo repos.CourseRepo, ucdRepo repos.UserCourseDataRepo) ProgressService {
	return &progressService{
		log:        baseLog.With("service", "ProgressService"),
		courseRepo: courseRepo,
		ucdRepo:    ucdRepo,
	}
}

func newProgressRecord(userID, courseID uuid.UUID) *types.UserCourseData {
	now := utils.NowUTC()
	return &types.UserCourseData{
		ID:          uuid.New(),
		UserID:      userID,
		CourseID:    courseID,
		Status:      types.CourseStatusActive,
		Notes:       "",
		Lectures:    []types.UserLectureData{},
		Assignments: []types.UserAssignmentData{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (s *progressService) Enroll(ctx context.Context, userID, courseID uuid.UUID) (*types.UserCourseData, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch course", err)
	}
	if course == nil {
		return nil, apperr.NotFound(apperr.CodeCourseNotFound, "Course not found")
	}

	existing, err := s.ucdRepo.GetByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return nil, apperr.Internal("failed to check enrollment", err)
	}
	if existing != nil {
		return nil, apperr.Conflict(apperr.CodeAlreadyEnrolled, "Already enrolled in this course")
	}

	record := newProgressRecord(userID, courseID)
	if err := s.ucdRepo.Create(ctx, record); err != nil {
		s.log.Error("Enroll failed", "error", err, "user_id", userID, "course_id", courseID)
		return nil, apperr.Internal("failed to enroll in course", err)
	}
	return record, nil
}

func (s *progressService) UpdateCourseProgress(ctx context.Context, userID, courseID uuid.UUID, upd CourseProgressUpdate) (*types.UserCourseData, error) {
	if upd.Status != nil && !types.ValidCourseStatus(*upd.Status) {
		return nil, apperr.Invalid(apperr.CodeInvalidStatus, "Invalid status. Must be one of: active, completed, parked")
	}
	if upd.Status == nil && upd.Notes == nil {
		return nil, apperr.Invalid(apperr.CodeNoUpdates, "No valid fields to update")
	}

	record, err := s.ucdRepo.GetByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch progress record", err)
	}
	if record == nil {
		// Course-level updates never auto-enroll.
		return nil, apperr.NotFound(apperr.CodeNotEnrolled, "Not enrolled in this course")
	}

	if upd.Status != nil {
		record.Status = *upd.Status
	}
	if upd.Notes != nil {
		record.Notes = sanitize.HTML(*upd.Notes)
	}
	record.UpdatedAt = utils.NowUTC()

	if err := s.ucdRepo.Save(ctx, record); err != nil {
		s.log.Error("UpdateCourseProgress failed", "error", err, "user_id", userID, "course_id", courseID)
		return nil, apperr.Internal("failed to update progress", err)
	}
	return record, nil
}

func (s *progressService) UpdateLectureProgress(ctx context.Context, userID, courseID, lectureID uuid.UUID, upd LectureProgressUpdate) (*types.UserCourseData, error) {
	if upd.Status != nil && !types.ValidLectureStatus(*upd.Status) {
		return nil, apperr.Invalid(apperr.CodeInvalidStatus, "Invalid status. Must be one of: not_started, in_progress, completed")
	}
	if upd.Status == nil && upd.Note == nil {
		return nil, apperr.Invalid(apperr.CodeNoUpdates, "No valid fields to update")
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch course", err)
	}
	if course == nil {
		return nil, apperr.NotFound(apperr.CodeCourseNotFound, "Course not found")
	}
	if !lectureInCatalog(course, lectureID) {
		return nil, apperr.NotFound(apperr.CodeLectureNotFound, "Lecture not found")
	}

	record, err := s.ucdRepo.CreateIfAbsent(ctx, newProgressRecord(userID, courseID))
	if err != nil {
		return nil, apperr.Internal("failed to auto-enroll", err)
	}

	entry := record.LectureEntry(lectureID)
	if entry == nil {
		record.Lectures = append(record.Lectures, types.UserLectureData{
			ID:               uuid.New(),
			UserCourseDataID: record.ID,
			LectureID:        lectureID,
			Status:           types.LectureStatusNotStarted,
			Note:             "",
		})
		entry = &record.Lectures[len(record.Lectures)-1]
	}
	if upd.Status != nil {
		entry.Status = *upd.Status
	}
	if upd.Note != nil {
		entry.Note = sanitize.HTML(*upd.Note)
	}
	record.UpdatedAt = utils.NowUTC()

	if err := s.ucdRepo.Save(ctx, record); err != nil {
		s.log.Error("UpdateLectureProgress failed", "error", err, "user_id", userID, "lecture_id", lectureID)
		return nil, apperr.Internal("failed to update progress", err)
	}
	return record, nil
}

func (s *progressService) UpdateAssignmentProgress(ctx context.Context, userID, courseID, assignmentID uuid.UUID, upd AssignmentProgressUpdate) (*types.UserCourseData, error) {
	if upd.Status != nil && !types.ValidAssignmentStatus(*upd.Status) {
		return nil, apperr.Invalid(apperr.CodeInvalidStatus, "Invalid status. Must be one of: not_started, in_progress, submitted, skipped")
	}
	if upd.DueDate != nil && *upd.DueDate != "" && !utils.IsCalendarDate(*upd.DueDate) {
		return nil, apperr.Invalid(apperr.CodeInvalidDate, "Invalid date format. Use YYYY-MM-DD")
	}
	if upd.Status == nil && upd.Note == nil && upd.DueDate == nil {
		return nil, apperr.Invalid(apperr.CodeNoUpdates, "No valid fields to update")
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch course", err)
	}
	if course == nil {
		return nil, apperr.NotFound(apperr.CodeCourseNotFound, "Course not found")
	}
	if !assignmentInCatalog(course, assignmentID) {
		return nil, apperr.NotFound(apperr.CodeAssignmentNotFound, "Assignment not found")
	}

	record, err := s.ucdRepo.CreateIfAbsent(ctx, newProgressRecord(userID, courseID))
	if err != nil {
		return nil, apperr.Internal("failed to auto-enroll", err)
	}

	entry := record.AssignmentEntry(assignmentID)
	if entry == nil {
		record.Assignments = append(record.Assignments, types.UserAssignmentData{
			ID:               uuid.New(),
			UserCourseDataID: record.ID,
			AssignmentID:     assignmentID,
			Status:           types.AssignmentStatusNotStarted,
			Note:             "",
			DueDate:          "",
		})
		entry = &record.Assignments[len(record.Assignments)-1]
	}
	if upd.Status != nil {
		entry.Status = *upd.Status
	}
	if upd.Note != nil {
		entry.Note = sanitize.HTML(*upd.Note)
	}
	if upd.DueDate != nil {
		// Empty string clears a previously set due date.
		entry.DueDate = *upd.DueDate
	}
	record.UpdatedAt = utils.NowUTC()

	if err := s.ucdRepo.Save(ctx, record); err != nil {
		s.log.Error("UpdateAssignmentProgress failed", "error", err, "user_id", userID, "assignment_id", assignmentID)
		return nil, apperr.Internal("failed to update progress", err)
	}
	return record, nil
}

func lectureInCatalog(course *types.Course, lectureID uuid.UUID) bool {
	for _, l := range course.Lectures {
		if l.ID == lectureID {
			return true
		}
	}
	return false
}

func assignmentInCatalog(course *types.Course, assignmentID uuid.UUID) bool {
	for _, a := range course.Assignments {
		if a.ID == assignmentID {
			return true
		}
	}
	return false
}
