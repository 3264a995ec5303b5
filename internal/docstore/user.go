package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/megamind-app/megamind-backend/internal/pkg/logger"
	"github.com/megamind-app/megamind-backend/internal/repos"
	"github.com/megamind-app/megamind-backend/internal/types"
)

type userStore struct {
	rdb *redis.Client
	log *logger.Logger
}

// storedUser re-attaches the credential digest, which the API-facing
// struct deliberately keeps out of JSON.
type storedUser struct {
	types.User
	PasswordHash string `json:"passwordHash"`
}

func encodeUser(user *types.User) ([]byte, error) {
	return json.Marshal(storedUser{User: *user, PasswordHash: user.PasswordHash})
}

func decodeUser(raw []byte) (*types.User, error) {
	var su storedUser
	if err := json.Unmarshal(raw, &su); err != nil {
		return nil, err
	}
	user := su.User
	user.PasswordHash = su.PasswordHash
	return &user, nil
}

func NewUserStore(rdb *redis.Client, baseLog *logger.Logger) repos.UserRepo {
	return &userStore{rdb: rdb, log: baseLog.With("repo", "UserStore")}
}

func (s *userStore) Create(ctx context.Context, user *types.User) error {
	raw, err := encodeUser(user)
	if err != nil {
		return err
	}
	// The email index doubles as the uniqueness guard.
	ok, err := s.rdb.SetNX(ctx, userEmailKey(user.Email), user.ID.String(), 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("email index already present for %s", user.Email)
	}
	return s.rdb.Set(ctx, userKey(user.ID), raw, 0).Err()
}

func (s *userStore) GetByID(ctx context.Context, id uuid.UUID) (*types.User, error) {
	raw, err := s.rdb.Get(ctx, userKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeUser(raw)
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*types.User, error) {
	idStr, err := s.rdb.Get(ctx, userEmailKey(strings.ToLower(email))).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *userStore) EmailExists(ctx context.Context, email string) (bool, error) {
	n, err := s.rdb.Exists(ctx, userEmailKey(strings.ToLower(email))).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *userStore) Update(ctx context.Context, user *types.User) error {
	raw, err := encodeUser(user)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, userKey(user.ID), raw, 0).Err()
}
