// Package docstore implements the aggregate repositories on top of a
// Redis document layout: each aggregate is one JSON document under a
// stable key, with small index sets for listing. It satisfies the same
// interfaces as the relational backend in internal/repos.
package docstore

import (
	"strings"

	"github.com/google/uuid"
)

const (
	courseIndexKey = "courses:index"
)

func userKey(id uuid.UUID) string {
	return "user:" + id.String()
}

func userEmailKey(email string) string {
	return "user:email:" + strings.ToLower(email)
}

func courseKey(id uuid.UUID) string {
	return "course:" + id.String()
}

func ucdKey(userID, courseID uuid.UUID) string {
	return "ucd:" + userID.String() + ":" + courseID.String()
}

func ucdUserIndexKey(userID uuid.UUID) string {
	return "ucd:user:" + userID.String()
}

func ucdCourseIndexKey(courseID uuid.UUID) string {
	return "ucd:course:" + courseID.String()
}
