package types

// Enriched shapes are response-only: a catalog course with the caller's
// progress overlaid. They are never persisted. The outer fields shadow
// the embedded catalog fields of the same name during JSON encoding.

type EnrichedCourse struct {
	Course
	Status      string               `json:"status"`
	Notes       string               `json:"notes"`
	Lectures    []EnrichedLecture    `json:"lectures"`
	Assignments []EnrichedAssignment `json:"assignments"`
}

type EnrichedLecture struct {
	Lecture
	Status string `json:"status"`
	Note   string `json:"note"`
}

type EnrichedAssignment struct {
	Assignment
	Status  string  `json:"status"`
	Note    string  `json:"note"`
	DueDate *string `json:"dueDate,omitempty"`
}
