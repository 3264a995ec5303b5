package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/megamind-app/megamind-backend/internal/pkg/apperr"
	"github.com/megamind-app/megamind-backend/internal/types"
	"github.com/megamind-app/megamind-backend/internal/utils"
)

func buildCatalogCourse() types.Course {
	now := utils.NowUTC()
	courseID := uuid.New()
	catalogDue := "2026-10-01"
	return types.Course{
		ID:        courseID,
		Title:     "Linear Algebra",
		Source:    "https://example.com/la",
		Status:    types.CatalogStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
		Lectures: []types.Lecture{
			{ID: uuid.New(), CourseID: courseID, Order: 1, Title: "Vectors", VideoURL: "https://example.com/v1"},
			{ID: uuid.New(), CourseID: courseID, Order: 2, Title: "Matrices", VideoURL: "https://example.com/v2"},
		},
		Assignments: []types.Assignment{
			{ID: uuid.New(), CourseID: courseID, Title: "Problem set 1", DueDate: &catalogDue},
			{ID: uuid.New(), CourseID: courseID, Title: "Problem set 2"},
		},
	}
}

func TestEnrichCoursesDefaultsWithoutRecord(t *testing.T) {
	course := buildCatalogCourse()

	enriched := EnrichCourses([]types.Course{course}, nil)
	if len(enriched) != 1 {
		t.Fatalf("expected 1 course, got %d", len(enriched))
	}
	got := enriched[0]

	if got.Status != types.CourseStatusActive {
		t.Fatalf("expected default status %q, got %q", types.CourseStatusActive, got.Status)
	}
	if got.Notes != "" {
		t.Fatalf("expected empty notes, got %q", got.Notes)
	}
	for _, l := range got.Lectures {
		if l.Status != types.LectureStatusNotStarted || l.Note != "" {
			t.Fatalf("expected lecture defaults, got status=%q note=%q", l.Status, l.Note)
		}
	}
	// Catalog due dates survive untouched when the user has no entry.
	if got.Assignments[0].DueDate == nil || *got.Assignments[0].DueDate != "2026-10-01" {
		t.Fatalf("expected catalog due date preserved, got %v", got.Assignments[0].DueDate)
	}
	if got.Assignments[1].DueDate != nil {
		t.Fatalf("expected nil due date, got %v", *got.Assignments[1].DueDate)
	}
}

func TestEnrichCoursesOverlaysUserRecord(t *testing.T) {
	course := buildCatalogCourse()
	userID := uuid.New()

	record := types.UserCourseData{
		ID:       uuid.New(),
		UserID:   userID,
		CourseID: course.ID,
		Status:   types.CourseStatusCompleted,
		Notes:    "<strong>done</strong>",
		Lectures: []types.UserLectureData{
			{LectureID: course.Lectures[0].ID, Status: types.LectureStatusCompleted, Note: "rewatch"},
		},
		Assignments: []types.UserAssignmentData{
			{AssignmentID: course.Assignments[0].ID, Status: types.AssignmentStatusSubmitted, DueDate: "2026-11-15"},
		},
	}

	enriched := EnrichCourses([]types.Course{course}, []types.UserCourseData{record})
	got := enriched[0]

	if got.Status != types.CourseStatusCompleted {
		t.Fatalf("expected status overlay, got %q", got.Status)
	}
	if got.Notes != "<strong>done</strong>" {
		t.Fatalf("expected notes overlay, got %q", got.Notes)
	}
	if got.Lectures[0].Status != types.LectureStatusCompleted || got.Lectures[0].Note != "rewatch" {
		t.Fatalf("expected lecture overlay, got status=%q note=%q", got.Lectures[0].Status, got.Lectures[0].Note)
	}
	// The second lecture has no entry and keeps defaults.
	if got.Lectures[1].Status != types.LectureStatusNotStarted {
		t.Fatalf("expected untouched lecture default, got %q", got.Lectures[1].Status)
	}
	if got.Assignments[0].DueDate == nil || *got.Assignments[0].DueDate != "2026-11-15" {
		t.Fatalf("expected user due date override, got %v", got.Assignments[0].DueDate)
	}
}

func TestEnrichCoursesEmptyUserDueDateWins(t *testing.T) {
	course := buildCatalogCourse()
	record := types.UserCourseData{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		CourseID: course.ID,
		Status:   types.CourseStatusActive,
		Assignments: []types.UserAssignmentData{
			// Cleared due date: the entry exists, so its empty value wins
			// over the catalog default.
			{AssignmentID: course.Assignments[0].ID, Status: types.AssignmentStatusInProgress, DueDate: ""},
		},
	}

	got := EnrichCourses([]types.Course{course}, []types.UserCourseData{record})[0]
	if got.Assignments[0].DueDate == nil {
		t.Fatal("expected explicit empty due date, got nil")
	}
	if *got.Assignments[0].DueDate != "" {
		t.Fatalf("expected empty due date, got %q", *got.Assignments[0].DueDate)
	}
}

func TestEnrichedCourseNotFound(t *testing.T) {
	svc := NewEnrichmentService(testLogger(t), newFakeCourseRepo(), newFakeUCDRepo())

	_, err := svc.EnrichedCourse(context.Background(), uuid.New(), uuid.New())
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected apperr, got %v", err)
	}
	if appErr.Code != apperr.CodeCourseNotFound || appErr.Status != 404 {
		t.Fatalf("expected course_not_found 404, got %q %d", appErr.Code, appErr.Status)
	}
}

func TestEnrichedCoursesIgnoresRecordsForOtherCourses(t *testing.T) {
	courseRepo := newFakeCourseRepo()
	ucdRepo := newFakeUCDRepo()
	course := buildCatalogCourse()
	courseRepo.Create(context.Background(), &course)

	userID := uuid.New()
	ucdRepo.Create(context.Background(), &types.UserCourseData{
		ID:       uuid.New(),
		UserID:   userID,
		CourseID: uuid.New(),
		Status:   types.CourseStatusParked,
	})

	svc := NewEnrichmentService(testLogger(t), courseRepo, ucdRepo)
	enriched, err := svc.EnrichedCourses(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enriched[0].Status != types.CourseStatusActive {
		t.Fatalf("expected defaults for unrelated record, got %q", enriched[0].Status)
	}
}
