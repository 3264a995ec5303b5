package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/megamind-app/megamind-backend/internal/pkg/apperr"
	"github.com/megamind-app/megamind-backend/internal/pkg/logger"
	"github.com/megamind-app/megamind-backend/internal/repos"
	"github.com/megamind-app/megamind-backend/internal/types"
)

// EnrichmentService merges the shared catalog with one user's progress
// records at read time. Anonymous reads skip this service entirely and
// get the raw catalog.
type EnrichmentService interface {
	EnrichedCourses(ctx context.Context, userID uuid.UUID) ([]types.EnrichedCourse, error)
	EnrichedCourse(ctx context.Context, userID, courseID uuid.UUID) (*types.EnrichedCourse, error)
}

type enrichmentService struct {
	log        *logger.Logger
	courseRepo repos.CourseRepo
	ucdRepo    repos.UserCourseDataRepo
}

func NewEnrichmentService(baseLog *logger.Logger, courseRepo repos.CourseRepo, ucdRepo repos.UserCourseDataRepo) EnrichmentService {
	return &enrichmentService{
		log:        baseLog.With("service", "EnrichmentService"),
		courseRepo: courseRepo,
		ucdRepo:    ucdRepo,
	}
}

func (s *enrichmentService) EnrichedCourses(ctx context.Context, userID uuid.UUID) ([]types.EnrichedCourse, error) {
	courses, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to fetch courses", err)
	}
	records, err := s.ucdRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch progress records", err)
	}
	return EnrichCourses(courses, records), nil
}

func (s *enrichmentService) EnrichedCourse(ctx context.Context, userID, courseID uuid.UUID) (*types.EnrichedCourse, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch course", err)
	}
	if course == nil {
		return nil, apperr.NotFound(apperr.CodeCourseNotFound, "Course not found")
	}
	record, err := s.ucdRepo.GetByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch progress record", err)
	}
	enriched := enrichCourse(*course, record)
	return &enriched, nil
}

// EnrichCourses overlays each catalog course with the matching progress
// record. Output order follows the catalog; catalog structs are copied,
// never written through. Same inputs always give the same output.
func EnrichCourses(courses []types.Course, records []types.UserCourseData) []types.EnrichedCourse {
	byCourse := make(map[uuid.UUID]*types.UserCourseData, len(records))
	for i := range records {
		byCourse[records[i].CourseID] = &records[i]
	}

	enriched := make([]types.EnrichedCourse, 0, len(courses))
	for _, course := range courses {
		enriched = append(enriched, enrichCourse(course, byCourse[course.ID]))
	}
	return enriched
}

func enrichCourse(course types.Course, record *types.UserCourseData) types.EnrichedCourse {
	out := types.EnrichedCourse{
		Course: course,
		Status: types.CourseStatusActive,
		Notes:  "",
	}
	if record != nil {
		if record.Status != "" {
			out.Status = record.Status
		}
		out.Notes = record.Notes
	}

	out.Lectures = make([]types.EnrichedLecture, 0, len(course.Lectures))
	for _, lecture := range course.Lectures {
		el := types.EnrichedLecture{
			Lecture: lecture,
			Status:  types.LectureStatusNotStarted,
			Note:    "",
		}
		if record != nil {
			if entry := record.LectureEntry(lecture.ID); entry != nil {
				if entry.Status != "" {
					el.Status = entry.Status
				}
				el.Note = entry.Note
			}
		}
		out.Lectures = append(out.Lectures, el)
	}

	out.Assignments = make([]types.EnrichedAssignment, 0, len(course.Assignments))
	for _, assignment := range course.Assignments {
		ea := types.EnrichedAssignment{
			Assignment: assignment,
			Status:     types.AssignmentStatusNotStarted,
			Note:       "",
			// Catalog due date stands until the user sets their own.
			DueDate: assignment.DueDate,
		}
		if record != nil {
			if entry := record.AssignmentEntry(assignment.ID); entry != nil {
				if entry.Status != "" {
					ea.Status = entry.Status
				}
				ea.Note = entry.Note
				due := entry.DueDate
				ea.DueDate = &due
			}
		}
		out.Assignments = append(out.Assignments, ea)
	}

	return out
}
