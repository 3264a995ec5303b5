package docstore

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/megamind-app/megamind-backend/internal/pkg/logger"
	"github.com/megamind-app/megamind-backend/internal/repos"
	"github.com/megamind-app/megamind-backend/internal/types"
)

type userCourseDataStore struct {
	rdb *redis.Client
	log *logger.Logger
}

func NewUserCourseDataStore(rdb *redis.Client, baseLog *logger.Logger) repos.UserCourseDataRepo {
	return &userCourseDataStore{rdb: rdb, log: baseLog.With("repo", "UserCourseDataStore")}
}

func (s *userCourseDataStore) GetByUser(ctx context.Context, userID uuid.UUID) ([]types.UserCourseData, error) {
	courseIDs, err := s.rdb.SMembers(ctx, ucdUserIndexKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	records := make([]types.UserCourseData, 0, len(courseIDs))
	for _, idStr := range courseIDs {
		courseID, err := uuid.Parse(idStr)
		if err != nil {
			continue
		}
		record, err := s.GetByUserAndCourse(ctx, userID, courseID)
		if err != nil {
			return nil, err
		}
		if record != nil {
			records = append(records, *record)
		}
	}
	return records, nil
}

func (s *userCourseDataStore) GetByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*types.UserCourseData, error) {
	raw, err := s.rdb.Get(ctx, ucdKey(userID, courseID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var record types.UserCourseData
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *userCourseDataStore) Create(ctx context.Context, record *types.UserCourseData) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, ucdKey(record.UserID, record.CourseID), raw, 0).Err(); err != nil {
		return err
	}
	return s.index(ctx, record)
}

func (s *userCourseDataStore) CreateIfAbsent(ctx context.Context, record *types.UserCourseData) (*types.UserCourseData, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	// SETNX makes concurrent first-touch enrolls collapse to one record.
	created, err := s.rdb.SetNX(ctx, ucdKey(record.UserID, record.CourseID), raw, 0).Result()
	if err != nil {
		return nil, err
	}
	if !created {
		existing, err := s.GetByUserAndCourse(ctx, record.UserID, record.CourseID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
		// Deleted between SETNX and GET; treat our copy as authoritative.
	}
	if err := s.index(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *userCourseDataStore) Save(ctx context.Context, record *types.UserCourseData) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, ucdKey(record.UserID, record.CourseID), raw, 0).Err()
}

func (s *userCourseDataStore) DeleteByCourse(ctx context.Context, courseID uuid.UUID) error {
	userIDs, err := s.rdb.SMembers(ctx, ucdCourseIndexKey(courseID)).Result()
	if err != nil {
		return err
	}
	for _, idStr := range userIDs {
		userID, err := uuid.Parse(idStr)
		if err != nil {
			continue
		}
		if err := s.rdb.Del(ctx, ucdKey(userID, courseID)).Err(); err != nil {
			return err
		}
		if err := s.rdb.SRem(ctx, ucdUserIndexKey(userID), courseID.String()).Err(); err != nil {
			return err
		}
	}
	return s.rdb.Del(ctx, ucdCourseIndexKey(courseID)).Err()
}

func (s *userCourseDataStore) index(ctx context.Context, record *types.UserCourseData) error {
	if err := s.rdb.SAdd(ctx, ucdUserIndexKey(record.UserID), record.CourseID.String()).Err(); err != nil {
		return err
	}
	return s.rdb.SAdd(ctx, ucdCourseIndexKey(record.CourseID), record.UserID.String()).Err()
}
