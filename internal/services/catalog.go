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

type CourseCreate struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Source      string   `json:"source"`
	Notes       string   `json:"notes"`
	Tags        []string `json:"tags"`
}

type CourseUpdate struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Source      *string   `json:"source"`
	Status      *string   `json:"status"`
	Notes       *string   `json:"notes"`
	Tags        *[]string `json:"tags"`
}

type LectureCreate struct {
	Title           string `json:"title"`
	VideoURL        string `json:"videoUrl"`
	Order           *int   `json:"order"`
	DurationMinutes *int   `json:"durationMinutes"`
}

type LectureUpdate struct {
	Title           *string `json:"title"`
	VideoURL        *string `json:"videoUrl"`
	Order           *int    `json:"order"`
	DurationMinutes *int    `json:"durationMinutes"`
}

type AssignmentCreate struct {
	Title   string  `json:"title"`
	Link    *string `json:"link"`
	DueDate *string `json:"dueDate"`
}

type AssignmentUpdate struct {
	Title   *string `json:"title"`
	Link    *string `json:"link"`
	DueDate *string `json:"dueDate"`
}

// CatalogService manages the shared course catalog. Writes are
// validated and sanitized before they reach the store; deletes cascade
// to lectures, assignments and progress records.
type CatalogService interface {
	CreateCourse(ctx context.Context, in CourseCreate) (*types.Course, error)
	GetCourses(ctx context.Context) ([]types.Course, error)
	GetCourse(ctx context.Context, courseID uuid.UUID) (*types.Course, error)
	UpdateCourse(ctx context.Context, courseID uuid.UUID, in CourseUpdate) (*types.Course, error)
	DeleteCourse(ctx context.Context, courseID uuid.UUID) error

	AddLecture(ctx context.Context, courseID uuid.UUID, in LectureCreate) (*types.Lecture, error)
	UpdateLecture(ctx context.Context, courseID, lectureID uuid.UUID, in LectureUpdate) (*types.Lecture, error)
	DeleteLecture(ctx context.Context, courseID, lectureID uuid.UUID) error

	AddAssignment(ctx context.Context, courseID uuid.UUID, in AssignmentCreate) (*types.Assignment, error)
	UpdateAssignment(ctx context.Context, courseID, assignmentID uuid.UUID, in AssignmentUpdate) (*types.Assignment, error)
	DeleteAssignment(ctx context.Context, courseID, assignmentID uuid.UUID) error
}

type catalogService struct {
	log        *logger.Logger
	courseRepo repos.CourseRepo
	ucdRepo    repos.UserCourseDataRepo
}

func NewCatalogService(baseLog *logger.Logger, courseRepo repos.CourseRepo, ucdRepo repos.UserCourseDataRepo) CatalogService {
	return &catalogService{
		log:        baseLog.With("service", "CatalogService"),
		courseRepo: courseRepo,
		ucdRepo:    ucdRepo,
	}
}

func (s *catalogService) requireCourse(ctx context.Context, courseID uuid.UUID) (*types.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch course", err)
	}
	if course == nil {
		return nil, apperr.NotFound(apperr.CodeCourseNotFound, "Course not found")
	}
	return course, nil
}

func (s *catalogService) CreateCourse(ctx context.Context, in CourseCreate) (*types.Course, error) {
	fields := map[string]string{}
	if in.Title == "" {
		fields["title"] = "required"
	}
	if in.Source == "" {
		fields["source"] = "required"
	} else if !utils.IsHTTPURL(in.Source) {
		fields["source"] = "must be an http(s) URL"
	}
	if len(fields) > 0 {
		return nil, apperr.InvalidFields("Invalid course payload", fields)
	}

	now := utils.NowUTC()
	course := &types.Course{
		ID:          uuid.New(),
		Title:       sanitize.Text(in.Title),
		Description: sanitize.Text(in.Description),
		Source:      in.Source,
		Status:      types.CatalogStatusActive,
		Notes:       sanitize.HTML(in.Notes),
		Tags:        sanitize.TextSlice(in.Tags),
		Lectures:    []types.Lecture{},
		Assignments: []types.Assignment{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		s.log.Error("CreateCourse failed", "error", err)
		return nil, apperr.Internal("failed to create course", err)
	}
	return course, nil
}

func (s *catalogService) GetCourses(ctx context.Context) ([]types.Course, error) {
	courses, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to fetch courses", err)
	}
	return courses, nil
}

func (s *catalogService) GetCourse(ctx context.Context, courseID uuid.UUID) (*types.Course, error) {
	return s.requireCourse(ctx, courseID)
}

func (s *catalogService) UpdateCourse(ctx context.Context, courseID uuid.UUID, in CourseUpdate) (*types.Course, error) {
	fields := map[string]string{}
	if in.Source != nil && *in.Source != "" && !utils.IsHTTPURL(*in.Source) {
		fields["source"] = "must be an http(s) URL"
	}
	if in.Status != nil && !types.ValidCatalogStatus(*in.Status) {
		fields["status"] = "must be one of active, completed, archived"
	}
	if len(fields) > 0 {
		return nil, apperr.InvalidFields("Invalid course payload", fields)
	}

	course, err := s.requireCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		course.Title = sanitize.Text(*in.Title)
	}
	if in.Description != nil {
		course.Description = sanitize.Text(*in.Description)
	}
	if in.Source != nil {
		course.Source = *in.Source
	}
	if in.Status != nil {
		course.Status = *in.Status
	}
	if in.Notes != nil {
		course.Notes = sanitize.HTML(*in.Notes)
	}
	if in.Tags != nil {
		course.Tags = sanitize.TextSlice(*in.Tags)
	}
	course.UpdatedAt = utils.NowUTC()

	if err := s.courseRepo.Update(ctx, course); err != nil {
		s.log.Error("UpdateCourse failed", "error", err, "course_id", courseID)
		return nil, apperr.Internal("failed to update course", err)
	}
	return course, nil
}

func (s *catalogService) DeleteCourse(ctx context.Context, courseID uuid.UUID) error {
	if _, err := s.requireCourse(ctx, courseID); err != nil {
		return err
	}
	if err := s.courseRepo.Delete(ctx, courseID); err != nil {
		s.log.Error("DeleteCourse failed", "error", err, "course_id", courseID)
		return apperr.Internal("failed to delete course", err)
	}
	// Progress cleanup is best effort. A dangling record is invisible
	// once its course is gone.
	if err := s.ucdRepo.DeleteByCourse(ctx, courseID); err != nil {
		s.log.Warn("failed to delete progress records for course", "error", err, "course_id", courseID)
	}
	return nil
}

func (s *catalogService) AddLecture(ctx context.Context, courseID uuid.UUID, in LectureCreate) (*types.Lecture, error) {
	fields := map[string]string{}
	if in.Title == "" {
		fields["title"] = "required"
	}
	if in.VideoURL == "" {
		fields["videoUrl"] = "required"
	} else if !utils.IsHTTPURL(in.VideoURL) {
		fields["videoUrl"] = "must be an http(s) URL"
	}
	if in.Order == nil {
		fields["order"] = "required"
	} else if *in.Order < 1 {
		fields["order"] = "must be a positive integer"
	}
	if in.DurationMinutes != nil && *in.DurationMinutes < 1 {
		fields["durationMinutes"] = "must be a positive integer"
	}
	if len(fields) > 0 {
		return nil, apperr.InvalidFields("Invalid lecture payload", fields)
	}

	if _, err := s.requireCourse(ctx, courseID); err != nil {
		return nil, err
	}

	now := utils.NowUTC()
	lecture := &types.Lecture{
		ID:              uuid.New(),
		CourseID:        courseID,
		Title:           sanitize.Text(in.Title),
		VideoURL:        in.VideoURL,
		Order:           *in.Order,
		DurationMinutes: in.DurationMinutes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.courseRepo.AddLecture(ctx, lecture); err != nil {
		s.log.Error("AddLecture failed", "error", err, "course_id", courseID)
		return nil, apperr.Internal("failed to create lecture", err)
	}
	return lecture, nil
}

func (s *catalogService) UpdateLecture(ctx context.Context, courseID, lectureID uuid.UUID, in LectureUpdate) (*types.Lecture, error) {
	fields := map[string]string{}
	if in.VideoURL != nil && *in.VideoURL != "" && !utils.IsHTTPURL(*in.VideoURL) {
		fields["videoUrl"] = "must be an http(s) URL"
	}
	if in.Order != nil && *in.Order < 1 {
		fields["order"] = "must be a positive integer"
	}
	if in.DurationMinutes != nil && *in.DurationMinutes < 1 {
		fields["durationMinutes"] = "must be a positive integer"
	}
	if len(fields) > 0 {
		return nil, apperr.InvalidFields("Invalid lecture payload", fields)
	}

	course, err := s.requireCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	var lecture *types.Lecture
	for i := range course.Lectures {
		if course.Lectures[i].ID == lectureID {
			lecture = &course.Lectures[i]
			break
		}
	}
	if lecture == nil {
		return nil, apperr.NotFound(apperr.CodeLectureNotFound, "Lecture not found")
	}

	if in.Title != nil {
		lecture.Title = sanitize.Text(*in.Title)
	}
	if in.VideoURL != nil {
		lecture.VideoURL = *in.VideoURL
	}
	if in.Order != nil {
		lecture.Order = *in.Order
	}
	if in.DurationMinutes != nil {
		lecture.DurationMinutes = in.DurationMinutes
	}
	lecture.UpdatedAt = utils.NowUTC()

	if err := s.courseRepo.UpdateLecture(ctx, lecture); err != nil {
		s.log.Error("UpdateLecture failed", "error", err, "lecture_id", lectureID)
		return nil, apperr.Internal("failed to update lecture", err)
	}
	return lecture, nil
}

func (s *catalogService) DeleteLecture(ctx context.Context, courseID, lectureID uuid.UUID) error {
	course, err := s.requireCourse(ctx, courseID)
	if err != nil {
		return err
	}
	if !lectureInCatalog(course, lectureID) {
		return apperr.NotFound(apperr.CodeLectureNotFound, "Lecture not found")
	}
	if err := s.courseRepo.DeleteLecture(ctx, courseID, lectureID); err != nil {
		s.log.Error("DeleteLecture failed", "error", err, "lecture_id", lectureID)
		return apperr.Internal("failed to delete lecture", err)
	}
	return nil
}

func (s *catalogService) AddAssignment(ctx context.Context, courseID uuid.UUID, in AssignmentCreate) (*types.Assignment, error) {
	fields := map[string]string{}
	if in.Title == "" {
		fields["title"] = "required"
	}
	if in.DueDate != nil && *in.DueDate != "" && !utils.IsCalendarDate(*in.DueDate) {
		fields["dueDate"] = "must use YYYY-MM-DD"
	}
	if len(fields) > 0 {
		return nil, apperr.InvalidFields("Invalid assignment payload", fields)
	}

	if _, err := s.requireCourse(ctx, courseID); err != nil {
		return nil, err
	}

	now := utils.NowUTC()
	assignment := &types.Assignment{
		ID:        uuid.New(),
		CourseID:  courseID,
		Title:     sanitize.Text(in.Title),
		Link:      in.Link,
		DueDate:   in.DueDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.courseRepo.AddAssignment(ctx, assignment); err != nil {
		s.log.Error("AddAssignment failed", "error", err, "course_id", courseID)
		return nil, apperr.Internal("failed to create assignment", err)
	}
	return assignment, nil
}

func (s *catalogService) UpdateAssignment(ctx context.Context, courseID, assignmentID uuid.UUID, in AssignmentUpdate) (*types.Assignment, error) {
	fields := map[string]string{}
	if in.DueDate != nil && *in.DueDate != "" && !utils.IsCalendarDate(*in.DueDate) {
		fields["dueDate"] = "must use YYYY-MM-DD"
	}
	if len(fields) > 0 {
		return nil, apperr.InvalidFields("Invalid assignment payload", fields)
	}

	course, err := s.requireCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	var assignment *types.Assignment
	for i := range course.Assignments {
		if course.Assignments[i].ID == assignmentID {
			assignment = &course.Assignments[i]
			break
		}
	}
	if assignment == nil {
		return nil, apperr.NotFound(apperr.CodeAssignmentNotFound, "Assignment not found")
	}

	if in.Title != nil {
		assignment.Title = sanitize.Text(*in.Title)
	}
	if in.Link != nil {
		assignment.Link = in.Link
	}
	if in.DueDate != nil {
		assignment.DueDate = in.DueDate
	}
	assignment.UpdatedAt = utils.NowUTC()

	if err := s.courseRepo.UpdateAssignment(ctx, assignment); err != nil {
		s.log.Error("UpdateAssignment failed", "error", err, "assignment_id", assignmentID)
		return nil, apperr.Internal("failed to update assignment", err)
	}
	return assignment, nil
}

func (s *catalogService) DeleteAssignment(ctx context.Context, courseID, assignmentID uuid.UUID) error {
	course, err := s.requireCourse(ctx, courseID)
	if err != nil {
		return err
	}
	if !assignmentInCatalog(course, assignmentID) {
		return apperr.NotFound(apperr.CodeAssignmentNotFound, "Assignment not found")
	}
	if err := s.courseRepo.DeleteAssignment(ctx, courseID, assignmentID); err != nil {
		s.log.Error("DeleteAssignment failed", "error", err, "assignment_id", assignmentID)
		return apperr.Internal("failed to delete assignment", err)
	}
	return nil
}
