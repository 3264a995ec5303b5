package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/megamind-app/megamind-backend/internal/pkg/logger"
	"github.com/megamind-app/megamind-backend/internal/types"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("failed to build logger: %v", err)
	}
	return log
}

type fakeUserRepo struct {
	users map[uuid.UUID]*types.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*types.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *types.User) error {
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.User, error) {
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*types.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	u, _ := r.GetByEmail(ctx, email)
	return u != nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *types.User) error {
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

type fakeCourseRepo struct {
	courses map[uuid.UUID]*types.Course
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: map[uuid.UUID]*types.Course{}}
}

func (r *fakeCourseRepo) Create(ctx context.Context, course *types.Course) error {
	cp := *course
	r.courses[course.ID] = &cp
	return nil
}

func (r *fakeCourseRepo) GetAll(ctx context.Context) ([]types.Course, error) {
	out := []types.Course{}
	for _, c := range r.courses {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCourseRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.Course, error) {
	if c, ok := r.courses[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeCourseRepo) Update(ctx context.Context, course *types.Course) error {
	existing, ok := r.courses[course.ID]
	if !ok {
		return nil
	}
	cp := *course
	cp.Lectures = existing.Lectures
	cp.Assignments = existing.Assignments
	r.courses[course.ID] = &cp
	return nil
}

func (r *fakeCourseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.courses, id)
	return nil
}

func (r *fakeCourseRepo) AddLecture(ctx context.Context, lecture *types.Lecture) error {
	c := r.courses[lecture.CourseID]
	c.Lectures = append(c.Lectures, *lecture)
	return nil
}

func (r *fakeCourseRepo) UpdateLecture(ctx context.Context, lecture *types.Lecture) error {
	c := r.courses[lecture.CourseID]
	for i := range c.Lectures {
		if c.Lectures[i].ID == lecture.ID {
			c.Lectures[i] = *lecture
		}
	}
	return nil
}

func (r *fakeCourseRepo) DeleteLecture(ctx context.Context, courseID, lectureID uuid.UUID) error {
	c := r.courses[courseID]
	kept := c.Lectures[:0]
	for _, l := range c.Lectures {
		if l.ID != lectureID {
			kept = append(kept, l)
		}
	}
	c.Lectures = kept
	return nil
}

func (r *fakeCourseRepo) AddAssignment(ctx context.Context, assignment *types.Assignment) error {
	c := r.courses[assignment.CourseID]
	c.Assignments = append(c.Assignments, *assignment)
	return nil
}

func (r *fakeCourseRepo) UpdateAssignment(ctx context.Context, assignment *types.Assignment) error {
	c := r.courses[assignment.CourseID]
	for i := range c.Assignments {
		if c.Assignments[i].ID == assignment.ID {
			c.Assignments[i] = *assignment
		}
	}
	return nil
}

func (r *fakeCourseRepo) DeleteAssignment(ctx context.Context, courseID, assignmentID uuid.UUID) error {
	c := r.courses[courseID]
	kept := c.Assignments[:0]
	for _, a := range c.Assignments {
		if a.ID != assignmentID {
			kept = append(kept, a)
		}
	}
	c.Assignments = kept
	return nil
}

type ucdKey struct {
	userID   uuid.UUID
	courseID uuid.UUID
}

type fakeUCDRepo struct {
	records map[ucdKey]*types.UserCourseData
	creates int
}

func newFakeUCDRepo() *fakeUCDRepo {
	return &fakeUCDRepo{records: map[ucdKey]*types.UserCourseData{}}
}

func (r *fakeUCDRepo) GetByUser(ctx context.Context, userID uuid.UUID) ([]types.UserCourseData, error) {
	out := []types.UserCourseData{}
	for k, rec := range r.records {
		if k.userID == userID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *fakeUCDRepo) GetByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*types.UserCourseData, error) {
	if rec, ok := r.records[ucdKey{userID, courseID}]; ok {
		cp := *rec
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUCDRepo) Create(ctx context.Context, record *types.UserCourseData) error {
	cp := *record
	r.records[ucdKey{record.UserID, record.CourseID}] = &cp
	r.creates++
	return nil
}

func (r *fakeUCDRepo) CreateIfAbsent(ctx context.Context, record *types.UserCourseData) (*types.UserCourseData, error) {
	key := ucdKey{record.UserID, record.CourseID}
	if existing, ok := r.records[key]; ok {
		cp := *existing
		return &cp, nil
	}
	cp := *record
	r.records[key] = &cp
	r.creates++
	out := cp
	return &out, nil
}

func (r *fakeUCDRepo) Save(ctx context.Context, record *types.UserCourseData) error {
	cp := *record
	r.records[ucdKey{record.UserID, record.CourseID}] = &cp
	return nil
}

func (r *fakeUCDRepo) DeleteByCourse(ctx context.Context, courseID uuid.UUID) error {
	for k := range r.records {
		if k.courseID == courseID {
			delete(r.records, k)
		}
	}
	return nil
}
