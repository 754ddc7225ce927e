package auth

import (
	"context"
	"errors"
	"fmt"

	"library-api/db"
	"library-api/models"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService handles registration and login against the user repository.
type AuthService struct {
	repo      db.UserRepository
	dbManager *db.DBManager
	tokens    *TokenService
}

func NewAuthService(repo db.UserRepository, dbManager *db.DBManager, tokens *TokenService) *AuthService {
	return &AuthService{
		repo:      repo,
		dbManager: dbManager,
		tokens:    tokens,
	}
}

// Register creates a new user. Any requested role other than ADMIN collapses
// to MEMBER.
//
// TODO: honoring role=ADMIN from an unauthenticated request lets any caller
// self-grant admin; require an admin token before accepting it.
func (s *AuthService) Register(ctx context.Context, username, password string, role models.Role) (*models.User, error) {
	exists, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, ErrDuplicateUsername
	}

	if role != models.RoleAdmin {
		role = models.RoleMember
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}

	return s.dbManager.CreateUser(s.repo, ctx, user)
}

// Login verifies the credentials and issues a signed token binding the
// username and role. Nothing is persisted; the token is stateless.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Generate(user.Username, user.Role)
}
