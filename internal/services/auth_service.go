package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"medgpt-backend/internal/auth"
	"medgpt-backend/internal/config"
	"medgpt-backend/internal/models"
	"medgpt-backend/internal/store"

	"github.com/google/uuid"
)

var (
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrHashingPassword    = errors.New("failed to hash password")
	ErrCreatingToken      = errors.New("failed to create access token")
	ErrCreatingUser       = errors.New("failed to create user")
	// ErrValidation marks errors whose message is safe to return as a 400.
	ErrValidation = errors.New("input validation failed")
)

// AuthService owns accounts. Accounts only gate bookmarks and stored chats;
// the catalog and interaction checker work anonymously.
type AuthService struct {
	store store.Store
	cfg   *config.Config
}

func NewAuthService(s store.Store, cfg *config.Config) *AuthService {
	return &AuthService{store: s, cfg: cfg}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates an account. Emails are compared case-insensitively.
func (s *AuthService) Signup(ctx context.Context, email, password string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password cannot be empty", ErrValidation)
	}

	hashed, err := auth.HashPassword(password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err != nil {
		return nil, ErrHashingPassword
	}

	user := &models.User{
		ID:             uuid.New(),
		Email:          email,
		HashedPassword: hashed,
	}
	// The store's unique email constraint decides duplicates, so two
	// concurrent signups cannot both succeed.
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, ErrUserAlreadyExists
		}
		log.Printf("ERROR [AuthService] Creating user %s: %v", user.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrCreatingUser, err)
	}

	log.Printf("[AuthService] Signed up user %s", user.ID)
	return user, nil
}

// Login checks credentials and issues an access token. Unknown emails and
// wrong passwords give the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		auth.BurnPasswordCheck(password)
		return "", nil, ErrInvalidCredentials
	case err != nil:
		log.Printf("ERROR [AuthService] Loading user for login: %v", err)
		return "", nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	if !auth.CheckPasswordHash(password, user.HashedPassword) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.NewAccessToken(user.ID, s.cfg.JWTSecret, s.cfg.TokenExpiration)
	if err != nil {
		log.Printf("ERROR [AuthService] Signing token for user %s: %v", user.ID, err)
		return "", nil, ErrCreatingToken
	}

	log.Printf("[AuthService] Logged in user %s", user.ID)
	return token, user, nil
}
