package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/megamind-app/megamind-backend/internal/pkg/logger"
	"github.com/megamind-app/megamind-backend/internal/repos"
	"github.com/megamind-app/megamind-backend/internal/types"
	"github.com/megamind-app/megamind-backend/internal/utils"
)

type courseStore struct {
	rdb *redis.Client
	log *logger.Logger
}

func NewCourseStore(rdb *redis.Client, baseLog *logger.Logger) repos.CourseRepo {
	return &courseStore{rdb: rdb, log: baseLog.With("repo", "CourseStore")}
}

func (s *courseStore) Create(ctx context.Context, course *types.Course) error {
	raw, err := json.Marshal(course)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, courseKey(course.ID), raw, 0).Err(); err != nil {
		return err
	}
	// Scored by creation time so listing keeps catalog order.
	return s.rdb.ZAdd(ctx, courseIndexKey, redis.Z{
		Score:  float64(course.CreatedAt.Unix()),
		Member: course.ID.String(),
	}).Err()
}

func (s *courseStore) GetAll(ctx context.Context) ([]types.Course, error) {
	ids, err := s.rdb.ZRange(ctx, courseIndexKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	courses := make([]types.Course, 0, len(ids))
	for _, idStr := range ids {
		id, err := uuid.Parse(idStr)
		if err != nil {
			continue
		}
		course, err := s.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if course != nil {
			courses = append(courses, *course)
		}
	}
	return courses, nil
}

func (s *courseStore) GetByID(ctx context.Context, id uuid.UUID) (*types.Course, error) {
	raw, err := s.rdb.Get(ctx, courseKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var course types.Course
	if err := json.Unmarshal(raw, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (s *courseStore) Update(ctx context.Context, course *types.Course) error {
	// Re-read children so a metadata update cannot clobber them.
	current, err := s.GetByID(ctx, course.ID)
	if err != nil {
		return err
	}
	if current != nil {
		course.Lectures = current.Lectures
		course.Assignments = current.Assignments
	}
	return s.save(ctx, course)
}

func (s *courseStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.rdb.ZRem(ctx, courseIndexKey, id.String()).Err(); err != nil {
		return err
	}
	return s.rdb.Del(ctx, courseKey(id)).Err()
}

func (s *courseStore) AddLecture(ctx context.Context, lecture *types.Lecture) error {
	return s.mutate(ctx, lecture.CourseID, func(course *types.Course) {
		course.Lectures = append(course.Lectures, *lecture)
		sortLectures(course.Lectures)
	})
}

func (s *courseStore) UpdateLecture(ctx context.Context, lecture *types.Lecture) error {
	return s.mutate(ctx, lecture.CourseID, func(course *types.Course) {
		for i := range course.Lectures {
			if course.Lectures[i].ID == lecture.ID {
				course.Lectures[i] = *lecture
				break
			}
		}
		sortLectures(course.Lectures)
	})
}

func (s *courseStore) DeleteLecture(ctx context.Context, courseID, lectureID uuid.UUID) error {
	return s.mutate(ctx, courseID, func(course *types.Course) {
		kept := course.Lectures[:0]
		for _, l := range course.Lectures {
			if l.ID != lectureID {
				kept = append(kept, l)
			}
		}
		course.Lectures = kept
	})
}

func (s *courseStore) AddAssignment(ctx context.Context, assignment *types.Assignment) error {
	return s.mutate(ctx, assignment.CourseID, func(course *types.Course) {
		course.Assignments = append(course.Assignments, *assignment)
	})
}

func (s *courseStore) UpdateAssignment(ctx context.Context, assignment *types.Assignment) error {
	return s.mutate(ctx, assignment.CourseID, func(course *types.Course) {
		for i := range course.Assignments {
			if course.Assignments[i].ID == assignment.ID {
				course.Assignments[i] = *assignment
				break
			}
		}
	})
}

func (s *courseStore) DeleteAssignment(ctx context.Context, courseID, assignmentID uuid.UUID) error {
	return s.mutate(ctx, courseID, func(course *types.Course) {
		kept := course.Assignments[:0]
		for _, a := range course.Assignments {
			if a.ID != assignmentID {
				kept = append(kept, a)
			}
		}
		course.Assignments = kept
	})
}

func (s *courseStore) mutate(ctx context.Context, courseID uuid.UUID, fn func(*types.Course)) error {
	course, err := s.GetByID(ctx, courseID)
	if err != nil {
		return err
	}
	if course == nil {
		return errors.New("course document missing")
	}
	fn(course)
	course.UpdatedAt = utils.NowUTC()
	return s.save(ctx, course)
}

func (s *courseStore) save(ctx context.Context, course *types.Course) error {
	raw, err := json.Marshal(course)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, courseKey(course.ID), raw, 0).Err()
}

func sortLectures(lectures []types.Lecture) {
	sort.SliceStable(lectures, func(i, j int) bool {
		return lectures[i].Order < lectures[j].Order
	})
}
