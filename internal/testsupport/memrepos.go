// Package testsupport provides in-memory repo implementations for
// tests that need a working store without a database.
package testsupport

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/megamind-app/megamind-backend/internal/pkg/logger"
	"github.com/megamind-app/megamind-backend/internal/repos"
	"github.com/megamind-app/megamind-backend/internal/types"
)

func Logger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("failed to build logger: %v", err)
	}
	return log
}

type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*types.User
}

func NewUserRepo() repos.UserRepo {
	return &memUserRepo{users: map[uuid.UUID]*types.User{}}
}

func (r *memUserRepo) Create(ctx context.Context, user *types.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	u, err := r.GetByEmail(ctx, email)
	return u != nil, err
}

func (r *memUserRepo) Update(ctx context.Context, user *types.User) error {
	return r.Create(ctx, user)
}

type memCourseRepo struct {
	mu      sync.Mutex
	courses map[uuid.UUID]*types.Course
}

func NewCourseRepo() repos.CourseRepo {
	return &memCourseRepo{courses: map[uuid.UUID]*types.Course{}}
}

func (r *memCourseRepo) Create(ctx context.Context, course *types.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *course
	r.courses[course.ID] = &cp
	return nil
}

func (r *memCourseRepo) GetAll(ctx context.Context) ([]types.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []types.Course{}
	for _, c := range r.courses {
		out = append(out, *c)
	}
	return out, nil
}

func (r *memCourseRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.courses[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *memCourseRepo) Update(ctx context.Context, course *types.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
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

func (r *memCourseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.courses, id)
	return nil
}

func (r *memCourseRepo) AddLecture(ctx context.Context, lecture *types.Lecture) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.courses[lecture.CourseID]; ok {
		c.Lectures = append(c.Lectures, *lecture)
	}
	return nil
}

func (r *memCourseRepo) UpdateLecture(ctx context.Context, lecture *types.Lecture) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[lecture.CourseID]
	if !ok {
		return nil
	}
	for i := range c.Lectures {
		if c.Lectures[i].ID == lecture.ID {
			c.Lectures[i] = *lecture
		}
	}
	return nil
}

func (r *memCourseRepo) DeleteLecture(ctx context.Context, courseID, lectureID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[courseID]
	if !ok {
		return nil
	}
	kept := c.Lectures[:0]
	for _, l := range c.Lectures {
		if l.ID != lectureID {
			kept = append(kept, l)
		}
	}
	c.Lectures = kept
	return nil
}

func (r *memCourseRepo) AddAssignment(ctx context.Context, assignment *types.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.courses[assignment.CourseID]; ok {
		c.Assignments = append(c.Assignments, *assignment)
	}
	return nil
}

func (r *memCourseRepo) UpdateAssignment(ctx context.Context, assignment *types.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[assignment.CourseID]
	if !ok {
		return nil
	}
	for i := range c.Assignments {
		if c.Assignments[i].ID == assignment.ID {
			c.Assignments[i] = *assignment
		}
	}
	return nil
}

func (r *memCourseRepo) DeleteAssignment(ctx context.Context, courseID, assignmentID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[courseID]
	if !ok {
		return nil
	}
	kept := c.Assignments[:0]
	for _, a := range c.Assignments {
		if a.ID != assignmentID {
			kept = append(kept, a)
		}
	}
	c.Assignments = kept
	return nil
}

type progressKey struct {
	userID   uuid.UUID
	courseID uuid.UUID
}

type memUCDRepo struct {
	mu      sync.Mutex
	records map[progressKey]*types.UserCourseData
}

func NewUserCourseDataRepo() repos.UserCourseDataRepo {
	return &memUCDRepo{records: map[progressKey]*types.UserCourseData{}}
}

func (r *memUCDRepo) GetByUser(ctx context.Context, userID uuid.UUID) ([]types.UserCourseData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []types.UserCourseData{}
	for k, rec := range r.records {
		if k.userID == userID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *memUCDRepo) GetByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*types.UserCourseData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.records[progressKey{userID, courseID}]; ok {
		cp := *rec
		return &cp, nil
	}
	return nil, nil
}

func (r *memUCDRepo) Create(ctx context.Context, record *types.UserCourseData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *record
	r.records[progressKey{record.UserID, record.CourseID}] = &cp
	return nil
}

func (r *memUCDRepo) CreateIfAbsent(ctx context.Context, record *types.UserCourseData) (*types.UserCourseData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := progressKey{record.UserID, record.CourseID}
	if existing, ok := r.records[key]; ok {
		cp := *existing
		return &cp, nil
	}
	cp := *record
	r.records[key] = &cp
	out := cp
	return &out, nil
}

func (r *memUCDRepo) Save(ctx context.Context, record *types.UserCourseData) error {
	return r.Create(ctx, record)
}

func (r *memUCDRepo) DeleteByCourse(ctx context.Context, courseID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k := range r.records {
		if k.courseID == courseID {
			delete(r.records, k)
		}
	}
	return nil
}
