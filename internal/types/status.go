package types

// Status vocabularies. Catalog-level course status is a legacy field kept
// for anonymous catalog reads; per-user course status is what the
// enrichment layer reports for authenticated callers.

const (
	CatalogStatusActive    = "active"
	CatalogStatusCompleted = "completed"
	CatalogStatusArchived  = "archived"
)

const (
	CourseStatusActive    = "active"
	CourseStatusCompleted = "completed"
	CourseStatusParked    = "parked"
)

const (
	LectureStatusNotStarted = "not_started"
	LectureStatusInProgress = "in_progress"
	LectureStatusCompleted  = "completed"
)

const (
	AssignmentStatusNotStarted = "not_started"
	AssignmentStatusInProgress = "in_progress"
	AssignmentStatusSubmitted  = "submitted"
	AssignmentStatusSkipped    = "skipped"
)

func ValidCatalogStatus(s string) bool {
	switch s {
	case CatalogStatusActive, CatalogStatusCompleted, CatalogStatusArchived:
		return true
	}
	return false
}

func ValidCourseStatus(s string) bool {
	switch s {
	case CourseStatusActive, CourseStatusCompleted, CourseStatusParked:
		return true
	}
	return false
}

func ValidLectureStatus(s string) bool {
	switch s {
	case LectureStatusNotStarted, LectureStatusInProgress, LectureStatusCompleted:
		return true
	}
	return false
}

func ValidAssignmentStatus(s string) bool {
	switch s {
	case AssignmentStatusNotStarted, AssignmentStatusInProgress, AssignmentStatusSubmitted, AssignmentStatusSkipped:
		return true
	}
	return false
}
