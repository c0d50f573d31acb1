package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"fittrack/internal/auth"
	"fittrack/internal/crypto"
	apperrors "fittrack/internal/errors"
	"fittrack/internal/model"
	"fittrack/internal/protect"
	"fittrack/internal/repository"
)

// RegisterInput carries the fields of a registration request. Optional
// free-text fields are encrypted before persistence.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	Age         int
	Nationality *string
	Description *string
	Hobbies     *string
}

// AuthService handles registration, login, logout and identity lookup.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*model.User, error)
}

type authService struct {
	userRepo  repository.UserRepository
	hasher    crypto.Hasher
	protector *protect.FieldProtector
	sessions  auth.SessionStore
	timeout   time.Duration
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, hasher crypto.Hasher, protector *protect.FieldProtector, sessions auth.SessionStore, timeout time.Duration) AuthService {
	return &authService{
		userRepo:  userRepo,
		hasher:    hasher,
		protector: protector,
		sessions:  sessions,
		timeout:   timeout,
	}
}

// Register creates a new user with a hashed password and encrypted optional
// fields. The returned user carries plaintext field values and never the
// password hash in its serialized form.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" || in.Age <= 0 {
		return nil, apperrors.ErrValidation
	}

	findCtx, cancel := persistCtx(ctx, s.timeout)
	existing, err := s.userRepo.FindByEmail(findCtx, in.Email)
	cancel()
	if err == nil && existing != nil {
		return nil, apperrors.ErrDuplicateEmail
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", mapRepoErr(err))
	}

	passwordHash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: passwordHash,
		Age:          in.Age,
		Nationality:  in.Nationality,
		Description:  in.Description,
		Hobbies:      in.Hobbies,
	}
	if err := s.protector.Protect(user); err != nil {
		return nil, fmt.Errorf("protect user fields: %w", err)
	}

	createCtx, cancel := persistCtx(ctx, s.timeout)
	defer cancel()
	if err := s.userRepo.Create(createCtx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", mapRepoErr(err))
	}

	if err := s.protector.Reveal(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and establishes a session. Unknown email
// and wrong password produce the same error.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	if email == "" || password == "" {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	findCtx, cancel := persistCtx(ctx, s.timeout)
	user, err := s.userRepo.FindByEmail(findCtx, email)
	cancel()
	// Only a missing user is masked as bad credentials; infrastructure
	// faults keep their own taxonomy.
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("find user: %w", mapRepoErr(err))
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("create session: %w", err)
	}

	if err := s.protector.Reveal(user); err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Logout removes the session binding. Unknown or empty tokens are not an
// error, so calling logout twice is harmless.
func (s *authService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// CurrentUser resolves the session token to its user, or (nil, nil) for an
// anonymous request.
func (s *authService) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	userID, ok, err := s.sessions.Lookup(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("lookup session: %w", err)
	}
	if !ok {
		return nil, nil
	}

	findCtx, cancel := persistCtx(ctx, s.timeout)
	defer cancel()
	user, err := s.userRepo.FindByID(findCtx, userID)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	if err := s.protector.Reveal(user); err != nil {
		return nil, err
	}
	return user, nil
}
