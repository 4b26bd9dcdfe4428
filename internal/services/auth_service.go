package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo repository.UserRepository
	users    *UserService
	tokens   *TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, users *UserService, tokens *TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		users:    users,
		tokens:   tokens,
	}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Register creates a user and issues a token for it.
func (s *AuthService) Register(input CreateUserInput) (*models.User, *IssuedToken, error) {
	user, err := s.users.Create(input)
	if err != nil {
		return nil, nil, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, nil, err
	}

	return user, token, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(input LoginInput) (*models.User, *IssuedToken, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, nil, err
	}

	return user, token, nil
}

// CurrentUser returns the user a validated token refers to.
func (s *AuthService) CurrentUser(claims *Claims) (*models.User, error) {
	return s.users.GetByID(claims.UserID)
}
