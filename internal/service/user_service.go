package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fittrack/internal/cache"
	"fittrack/internal/model"
	"fittrack/internal/protect"
	"fittrack/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes read operations over users.
type UserService interface {
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

type userService struct {
	repo      repository.UserRepository
	protector *protect.FieldProtector
	cache     *cache.Client
	timeout   time.Duration
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, protector *protect.FieldProtector, cache *cache.Client, timeout time.Duration) UserService {
	return &userService{repo: repo, protector: protector, cache: cache, timeout: timeout}
}

func (s *userService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id)
}

// GetUser returns the user with decrypted optional fields. Cached entries
// hold the record as stored, so sensitive values stay ciphertext in Redis.
func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			if err := s.protector.Reveal(&cached); err != nil {
				return nil, err
			}
			return &cached, nil
		}
	}

	findCtx, cancel := persistCtx(ctx, s.timeout)
	defer cancel()
	user, err := s.repo.FindByID(findCtx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}

	if err := s.protector.Reveal(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns all users with decrypted optional fields.
func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	listCtx, cancel := persistCtx(ctx, s.timeout)
	defer cancel()
	users, err := s.repo.List(listCtx)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	for i := range users {
		if err := s.protector.Reveal(&users[i]); err != nil {
			return nil, err
		}
	}
	return users, nil
}
