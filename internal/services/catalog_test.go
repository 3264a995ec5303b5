package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/megamind-app/megamind-backend/internal/pkg/apperr"
	"github.com/megamind-app/megamind-backend/internal/types"
)

func intPtr(n int) *int { return &n }

func catalogFixture(t *testing.T) (CatalogService, *fakeCourseRepo, *fakeUCDRepo) {
	t.Helper()
	courseRepo := newFakeCourseRepo()
	ucdRepo := newFakeUCDRepo()
	return NewCatalogService(testLogger(t), courseRepo, ucdRepo), courseRepo, ucdRepo
}

func TestCreateCourseDefaults(t *testing.T) {
	svc, _, _ := catalogFixture(t)

	course, err := svc.CreateCourse(context.Background(), CourseCreate{
		Title:  "Databases",
		Source: "https://example.com/db",
		Tags:   []string{"sql", "storage"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if course.Status != types.CatalogStatusActive {
		t.Fatalf("expected active, got %q", course.Status)
	}
	if course.ID == uuid.Nil {
		t.Fatal("expected generated id")
	}
	if len(course.Lectures) != 0 || len(course.Assignments) != 0 {
		t.Fatal("expected empty children")
	}
	if course.CreatedAt != course.UpdatedAt {
		t.Fatal("expected matching timestamps on create")
	}
}

func TestCreateCourseValidation(t *testing.T) {
	svc, _, _ := catalogFixture(t)

	_, err := svc.CreateCourse(context.Background(), CourseCreate{Source: "ftp://example.com"})
	appErr := assertAppErr(t, err, apperr.CodeInvalidFields, 400)
	if appErr.Fields["title"] != "required" {
		t.Fatalf("expected title required, got %q", appErr.Fields["title"])
	}
	if appErr.Fields["source"] != "must be an http(s) URL" {
		t.Fatalf("expected source message, got %q", appErr.Fields["source"])
	}
}

func TestUpdateCourseRejectsBadCatalogStatus(t *testing.T) {
	svc, _, _ := catalogFixture(t)
	course, _ := svc.CreateCourse(context.Background(), CourseCreate{Title: "C", Source: "https://c.example.com"})

	_, err := svc.UpdateCourse(context.Background(), course.ID, CourseUpdate{Status: strPtr("parked")})
	appErr := assertAppErr(t, err, apperr.CodeInvalidFields, 400)
	if appErr.Fields["status"] == "" {
		t.Fatal("expected status field error")
	}
}

func TestUpdateCoursePartial(t *testing.T) {
	svc, courseRepo, _ := catalogFixture(t)
	course, _ := svc.CreateCourse(context.Background(), CourseCreate{Title: "C", Source: "https://c.example.com"})

	updated, err := svc.UpdateCourse(context.Background(), course.ID, CourseUpdate{
		Description: strPtr("a survey course"),
		Status:      strPtr(types.CatalogStatusArchived),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "C" {
		t.Fatalf("expected untouched title, got %q", updated.Title)
	}
	if updated.Description != "a survey course" || updated.Status != types.CatalogStatusArchived {
		t.Fatalf("unexpected update: %+v", updated)
	}

	stored, _ := courseRepo.GetByID(context.Background(), course.ID)
	if stored.Status != types.CatalogStatusArchived {
		t.Fatalf("expected persisted status, got %q", stored.Status)
	}
}

func TestDeleteCourseCascadesToProgress(t *testing.T) {
	svc, _, ucdRepo := catalogFixture(t)
	course, _ := svc.CreateCourse(context.Background(), CourseCreate{Title: "C", Source: "https://c.example.com"})

	userID := uuid.New()
	ucdRepo.Create(context.Background(), &types.UserCourseData{
		ID: uuid.New(), UserID: userID, CourseID: course.ID, Status: types.CourseStatusActive,
	})

	if err := svc.DeleteCourse(context.Background(), course.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.GetCourse(context.Background(), course.ID); err == nil {
		t.Fatal("expected course gone")
	}
	records, _ := ucdRepo.GetByUser(context.Background(), userID)
	if len(records) != 0 {
		t.Fatalf("expected progress records removed, got %d", len(records))
	}
}

func TestAddLectureValidation(t *testing.T) {
	svc, _, _ := catalogFixture(t)
	course, _ := svc.CreateCourse(context.Background(), CourseCreate{Title: "C", Source: "https://c.example.com"})

	_, err := svc.AddLecture(context.Background(), course.ID, LectureCreate{
		Title:    "Intro",
		VideoURL: "https://example.com/v",
		Order:    intPtr(0),
	})
	appErr := assertAppErr(t, err, apperr.CodeInvalidFields, 400)
	if appErr.Fields["order"] != "must be a positive integer" {
		t.Fatalf("expected order message, got %q", appErr.Fields["order"])
	}

	_, err = svc.AddLecture(context.Background(), course.ID, LectureCreate{Title: "Intro", VideoURL: "https://example.com/v"})
	appErr = assertAppErr(t, err, apperr.CodeInvalidFields, 400)
	if appErr.Fields["order"] != "required" {
		t.Fatalf("expected order required, got %q", appErr.Fields["order"])
	}
}

func TestLectureLifecycle(t *testing.T) {
	svc, _, _ := catalogFixture(t)
	course, _ := svc.CreateCourse(context.Background(), CourseCreate{Title: "C", Source: "https://c.example.com"})

	lecture, err := svc.AddLecture(context.Background(), course.ID, LectureCreate{
		Title:    "Intro",
		VideoURL: "https://example.com/v",
		Order:    intPtr(1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := svc.UpdateLecture(context.Background(), course.ID, lecture.ID, LectureUpdate{
		Title:           strPtr("Introduction"),
		DurationMinutes: intPtr(45),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "Introduction" || updated.DurationMinutes == nil || *updated.DurationMinutes != 45 {
		t.Fatalf("unexpected lecture: %+v", updated)
	}

	if err := svc.DeleteLecture(context.Background(), course.ID, lecture.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.DeleteLecture(context.Background(), course.ID, lecture.ID); err == nil {
		t.Fatal("expected lecture_not_found on second delete")
	}
}

func TestAssignmentLifecycle(t *testing.T) {
	svc, _, _ := catalogFixture(t)
	course, _ := svc.CreateCourse(context.Background(), CourseCreate{Title: "C", Source: "https://c.example.com"})

	_, err := svc.AddAssignment(context.Background(), course.ID, AssignmentCreate{
		Title:   "PS1",
		DueDate: strPtr("next friday"),
	})
	appErr := assertAppErr(t, err, apperr.CodeInvalidFields, 400)
	if appErr.Fields["dueDate"] != "must use YYYY-MM-DD" {
		t.Fatalf("expected dueDate message, got %q", appErr.Fields["dueDate"])
	}

	assignment, err := svc.AddAssignment(context.Background(), course.ID, AssignmentCreate{
		Title:   "PS1",
		DueDate: strPtr("2026-10-15"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := svc.UpdateAssignment(context.Background(), course.ID, assignment.ID, AssignmentUpdate{
		Link: strPtr("https://example.com/ps1"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Link == nil || *updated.Link != "https://example.com/ps1" {
		t.Fatalf("unexpected assignment: %+v", updated)
	}
	if updated.DueDate == nil || *updated.DueDate != "2026-10-15" {
		t.Fatalf("expected due date preserved, got %v", updated.DueDate)
	}

	if err := svc.DeleteAssignment(context.Background(), course.ID, assignment.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
