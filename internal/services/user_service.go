package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/project-management-api/internal/constants"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
	"github.com/yukikurage/project-management-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound         = fmt.Errorf("user %w", ErrNotFound)
	ErrEmailTaken           = fmt.Errorf("email %w", ErrConflict)
	ErrPasswordTooShort     = fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, constants.MinPasswordLength)
	ErrNameRequired         = fmt.Errorf("%w: firstname and lastname are required", ErrInvalidInput)
	ErrPasswordTooLong      = fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidInput, constants.MaxPasswordBytes)
	ErrNameTooLong          = fmt.Errorf("%w: firstname and lastname must be at most %d characters", ErrInvalidInput, constants.MaxNameLength)
	ErrFailedToHashPassword = fmt.Errorf("%w: failed to hash password", ErrInvalidInput)
)

// UserService handles user business logic
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput represents the information required to create a user
type CreateUserInput struct {
	Firstname string
	Lastname  string
	Email     string
	Password  string
}

// UpdateUserInput holds the fields to merge into a user. Nil fields are kept.
type UpdateUserInput struct {
	Firstname *string
	Lastname  *string
	Email     *string
}

// List returns one page of users
func (s *UserService) List(params utils.PaginationParams) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// GetBySlug returns the user with the given slug
func (s *UserService) GetBySlug(slug string) (*models.User, error) {
	user, err := s.userRepo.FindBySlug(slug)
	if err != nil {
		return nil, lookupError(err, ErrUserNotFound, fmt.Sprintf("slug %q", slug))
	}
	return user, nil
}

// GetByID returns the user with the given ID
func (s *UserService) GetByID(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, lookupError(err, ErrUserNotFound, fmt.Sprintf("id %d", id))
	}
	return user, nil
}

// Create registers a user with a hashed password and a unique slug derived
// from the full name
func (s *UserService) Create(input CreateUserInput) (*models.User, error) {
	firstname := strings.TrimSpace(input.Firstname)
	lastname := strings.TrimSpace(input.Lastname)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if err := validateNames(firstname, lastname); err != nil {
		return nil, err
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if len(input.Password) > constants.MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	if err := s.ensureEmailAvailable(email, 0); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToHashPassword, err)
	}

	slug, err := utils.UniqueSlug(firstname+" "+lastname, s.userRepo.SlugExists)
	if err != nil {
		return nil, fmt.Errorf("failed to generate slug: %w", err)
	}

	user := &models.User{
		Firstname:    firstname,
		Lastname:     lastname,
		Slug:         slug,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, writeError(err, ErrEmailTaken, "create user")
	}

	return user, nil
}

// Update merges the provided fields into the user. The slug is kept.
func (s *UserService) Update(id uint64, input UpdateUserInput) (*models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.Firstname != nil {
		user.Firstname = strings.TrimSpace(*input.Firstname)
	}
	if input.Lastname != nil {
		user.Lastname = strings.TrimSpace(*input.Lastname)
	}
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email != user.Email {
			if err := s.ensureEmailAvailable(email, user.ID); err != nil {
				return nil, err
			}
			user.Email = email
		}
	}

	if err := validateNames(user.Firstname, user.Lastname); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, writeError(err, ErrEmailTaken, "update user")
	}

	return user, nil
}

func validateNames(firstname, lastname string) error {
	if firstname == "" || lastname == "" {
		return ErrNameRequired
	}
	if utf8.RuneCountInString(firstname) > constants.MaxNameLength || utf8.RuneCountInString(lastname) > constants.MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

func (s *UserService) ensureEmailAvailable(email string, ownerID uint64) error {
	existing, err := s.userRepo.FindByEmail(email)
	if err == nil {
		if existing.ID != ownerID {
			return ErrEmailTaken
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}
	return nil
}
