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
	"gorm.io/gorm"
)

var (
	ErrTagNameTaken = fmt.Errorf("tag name %w", ErrConflict)
	ErrTagNameEmpty = fmt.Errorf("%w: tag name cannot be empty", ErrInvalidInput)
	ErrTagTooLong   = fmt.Errorf("%w: tag name must be at most %d characters", ErrInvalidInput, constants.MaxTagLength)
)

// TagService handles tag business logic
type TagService struct {
	tagRepo repository.TagRepository
}

// NewTagService creates a new TagService
func NewTagService(tagRepo repository.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

// List returns one page of tags
func (s *TagService) List(params utils.PaginationParams) ([]models.Tag, int64, error) {
	tags, total, err := s.tagRepo.List(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, total, nil
}

// Create stores a tag under a name that is not yet taken
func (s *TagService) Create(name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTagNameEmpty
	}
	if utf8.RuneCountInString(name) > constants.MaxTagLength {
		return nil, ErrTagTooLong
	}

	if _, err := s.tagRepo.FindByName(name); err == nil {
		return nil, ErrTagNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check tag name: %w", err)
	}

	tag := &models.Tag{Name: name}
	if err := s.tagRepo.Create(tag); err != nil {
		return nil, writeError(err, ErrTagNameTaken, "create tag")
	}

	return tag, nil
}

// Resolve returns a tag for every distinct non-blank name, creating the
// missing ones. Order follows the first occurrence of each name.
func (s *TagService) Resolve(names []string) ([]models.Tag, error) {
	distinct := NormalizeTagNames(names)
	for _, name := range distinct {
		if utf8.RuneCountInString(name) > constants.MaxTagLength {
			return nil, fmt.Errorf("%w: %q", ErrTagTooLong, name)
		}
	}

	tags := make([]models.Tag, 0, len(distinct))

	for _, name := range distinct {
		tag, err := s.tagRepo.FirstOrCreate(name)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tag %q: %w", name, err)
		}
		tags = append(tags, *tag)
	}

	return tags, nil
}

// NormalizeTagNames trims names and drops blanks and duplicates
func NormalizeTagNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	result := make([]string, 0, len(names))

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		result = append(result, name)
	}

	return result
}
