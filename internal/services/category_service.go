package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound  = fmt.Errorf("category %w", ErrNotFound)
	ErrCategoryNameTaken = fmt.Errorf("category name %w", ErrConflict)
	ErrCategoryNameEmpty = fmt.Errorf("%w: category name cannot be empty", ErrInvalidInput)
)

// CategoryService handles category business logic
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// List returns every category
func (s *CategoryService) List() ([]models.Category, error) {
	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetByID returns the category with the given ID
func (s *CategoryService) GetByID(id uint64) (*models.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, lookupError(err, ErrCategoryNotFound, fmt.Sprintf("id %d", id))
	}
	return category, nil
}

// Create stores a category under a name that is not yet taken
func (s *CategoryService) Create(name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNameEmpty
	}
	if err := s.ensureNameAvailable(name, 0); err != nil {
		return nil, err
	}

	category := &models.Category{Name: name}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, writeError(err, ErrCategoryNameTaken, "create category")
	}

	return category, nil
}

// Update renames a category
func (s *CategoryService) Update(id uint64, name string) (*models.Category, error) {
	category, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNameEmpty
	}
	if err := s.ensureNameAvailable(name, category.ID); err != nil {
		return nil, err
	}

	category.Name = name
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, writeError(err, ErrCategoryNameTaken, "update category")
	}

	return category, nil
}

// Delete removes a category. Its projects keep existing without a category.
func (s *CategoryService) Delete(id uint64) error {
	if err := s.categoryRepo.Delete(id); err != nil {
		return lookupError(err, ErrCategoryNotFound, fmt.Sprintf("id %d", id))
	}
	return nil
}

func (s *CategoryService) ensureNameAvailable(name string, ownerID uint64) error {
	existing, err := s.categoryRepo.FindByName(name)
	if err == nil {
		if existing.ID != ownerID {
			return ErrCategoryNameTaken
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check category name: %w", err)
	}
	return nil
}
