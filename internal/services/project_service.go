package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yukikurage/project-management-api/internal/constants"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
	"github.com/yukikurage/project-management-api/internal/utils"
)

var (
	ErrProjectNotFound    = fmt.Errorf("project %w", ErrNotFound)
	ErrOwnerNotFound      = fmt.Errorf("owner %w", ErrNotFound)
	ErrProjectNameTaken   = fmt.Errorf("project name %w", ErrConflict)
	ErrProjectNameEmpty   = fmt.Errorf("%w: project name cannot be empty", ErrInvalidInput)
	ErrProjectNameTooLong = fmt.Errorf("%w: project name must be at most %d characters", ErrInvalidInput, maxProjectNameLength)
	ErrEndBeforeStart     = fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	ErrProjectOwnerNeeded = fmt.Errorf("%w: ownerId is required", ErrInvalidInput)
)

// maxProjectNameLength matches the width of projects.name.
const maxProjectNameLength = 100

// projectRelations are the associations every project summary needs.
var projectRelations = []string{"Owner", "Participants", "Category"}

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo  repository.ProjectRepository
	userRepo     repository.UserRepository
	categoryRepo repository.CategoryRepository
	taskRepo     repository.TaskRepository
	now          func() time.Time
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	categoryRepo repository.CategoryRepository,
	taskRepo repository.TaskRepository,
) *ProjectService {
	return &ProjectService{
		projectRepo:  projectRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		taskRepo:     taskRepo,
		now:          time.Now,
	}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Name        string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	OwnerID     uint64
	CategoryID  *uint64
}

// UpdateProjectInput represents input for updating a project. EndDate and
// CategoryID are only applied when their Set flag is true; a Set flag with a
// nil value clears the column.
type UpdateProjectInput struct {
	Name          *string
	Description   *string
	StartDate     *time.Time
	EndDate       *time.Time
	EndDateSet    bool
	CategoryID    *uint64
	CategoryIDSet bool
}

// List returns one page of every project
func (s *ProjectService) List(params utils.PaginationParams) ([]models.Project, int64, error) {
	return s.list(repository.ProjectFilter{}, params)
}

// ListByOwner returns one page of the projects owned by ownerID
func (s *ProjectService) ListByOwner(ownerID uint64, params utils.PaginationParams) ([]models.Project, int64, error) {
	return s.list(repository.ProjectFilter{OwnerID: &ownerID}, params)
}

// ListByParticipant returns one page of the projects userID owns or participates in
func (s *ProjectService) ListByParticipant(userID uint64, params utils.PaginationParams) ([]models.Project, int64, error) {
	return s.list(repository.ProjectFilter{MemberID: &userID}, params)
}

// ListByCategory returns one page of the projects in a category
func (s *ProjectService) ListByCategory(categoryID uint64, params utils.PaginationParams) ([]models.Project, int64, error) {
	if _, err := s.categoryRepo.FindByID(categoryID); err != nil {
		return nil, 0, lookupError(err, ErrCategoryNotFound, fmt.Sprintf("id %d", categoryID))
	}
	return s.list(repository.ProjectFilter{CategoryID: &categoryID}, params)
}

func (s *ProjectService) list(filter repository.ProjectFilter, params utils.PaginationParams) ([]models.Project, int64, error) {
	projects, total, err := s.projectRepo.List(filter, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// GetBySlug returns a project with owner, participants and category loaded
func (s *ProjectService) GetBySlug(slug string) (*models.Project, error) {
	project, err := s.projectRepo.FindBySlug(slug, projectRelations...)
	if err != nil {
		return nil, lookupError(err, ErrProjectNotFound, fmt.Sprintf("slug %q", slug))
	}
	return project, nil
}

// GetByID returns a project with owner, participants and category loaded
func (s *ProjectService) GetByID(id uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id, projectRelations...)
	if err != nil {
		return nil, lookupError(err, ErrProjectNotFound, fmt.Sprintf("id %d", id))
	}
	return project, nil
}

// Create validates the owner and optional category, then stores a project
// under a unique slug
func (s *ProjectService) Create(input CreateProjectInput) (*models.Project, error) {
	name, err := normalizeProjectName(input.Name)
	if err != nil {
		return nil, err
	}
	if input.OwnerID == 0 {
		return nil, ErrProjectOwnerNeeded
	}

	if _, err := s.userRepo.FindByID(input.OwnerID); err != nil {
		return nil, lookupError(err, ErrOwnerNotFound, fmt.Sprintf("id %d", input.OwnerID))
	}
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*input.CategoryID); err != nil {
			return nil, lookupError(err, ErrCategoryNotFound, fmt.Sprintf("id %d", *input.CategoryID))
		}
	}

	if err := s.ensureNameAvailable(name); err != nil {
		return nil, err
	}

	startDate := s.today()
	if input.StartDate != nil {
		startDate = *input.StartDate
	}
	if input.EndDate != nil && input.EndDate.Before(startDate) {
		return nil, ErrEndBeforeStart
	}

	slug, err := utils.UniqueSlug(name, s.projectRepo.SlugExists)
	if err != nil {
		return nil, fmt.Errorf("failed to generate slug: %w", err)
	}

	project := &models.Project{
		Name:        name,
		Slug:        slug,
		Description: input.Description,
		StartDate:   startDate,
		EndDate:     input.EndDate,
		OwnerID:     input.OwnerID,
		CategoryID:  input.CategoryID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, writeError(err, ErrProjectNameTaken, "create project")
	}

	return s.GetByID(project.ID)
}

// Update merges the provided fields into a project. The slug is never regenerated.
func (s *ProjectService) Update(id uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		return nil, lookupError(err, ErrProjectNotFound, fmt.Sprintf("id %d", id))
	}

	if input.Name != nil {
		name, err := normalizeProjectName(*input.Name)
		if err != nil {
			return nil, err
		}
		if name != project.Name {
			if err := s.ensureNameAvailable(name); err != nil {
				return nil, err
			}
			project.Name = name
		}
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.StartDate != nil {
		project.StartDate = *input.StartDate
	}
	if input.EndDateSet {
		project.EndDate = input.EndDate
	}
	if input.CategoryIDSet {
		if input.CategoryID != nil {
			if _, err := s.categoryRepo.FindByID(*input.CategoryID); err != nil {
				return nil, lookupError(err, ErrCategoryNotFound, fmt.Sprintf("id %d", *input.CategoryID))
			}
		}
		project.CategoryID = input.CategoryID
	}

	if project.EndDate != nil && project.EndDate.Before(project.StartDate) {
		return nil, ErrEndBeforeStart
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, writeError(err, ErrProjectNameTaken, "update project")
	}

	return s.GetByID(project.ID)
}

// DeleteBySlug removes a project along with all of its tasks
func (s *ProjectService) DeleteBySlug(slug string) error {
	project, err := s.projectRepo.FindBySlug(slug)
	if err != nil {
		return lookupError(err, ErrProjectNotFound, fmt.Sprintf("slug %q", slug))
	}

	if err := s.projectRepo.Delete(project.ID); err != nil {
		return lookupError(err, ErrProjectNotFound, fmt.Sprintf("slug %q", slug))
	}

	return nil
}

// Duplicate copies a project, its participants and its live tasks under a
// fresh name and slug
func (s *ProjectService) Duplicate(id uint64) (*models.Project, error) {
	source, err := s.projectRepo.FindByID(id, "Participants", "Tasks", "Tasks.Tags")
	if err != nil {
		return nil, lookupError(err, ErrProjectNotFound, fmt.Sprintf("id %d", id))
	}

	name, err := utils.FirstFree(func(attempt int) string {
		return copyName(source.Name, attempt)
	}, s.projectRepo.NameExists)
	if err != nil {
		return nil, fmt.Errorf("failed to generate project name: %w", err)
	}

	slug, err := utils.UniqueSlug(name, s.projectRepo.SlugExists)
	if err != nil {
		return nil, fmt.Errorf("failed to generate slug: %w", err)
	}

	copied := &models.Project{
		Name:         name,
		Slug:         slug,
		Description:  source.Description,
		StartDate:    source.StartDate,
		EndDate:      source.EndDate,
		OwnerID:      source.OwnerID,
		CategoryID:   source.CategoryID,
		Participants: source.Participants,
	}

	tasks := make([]models.Task, 0, len(source.Tasks))
	reserved := make(map[string]bool, len(source.Tasks))
	taskSlugTaken := func(candidate string) (bool, error) {
		if reserved[candidate] {
			return true, nil
		}
		return s.taskRepo.SlugExists(candidate)
	}

	for _, task := range source.Tasks {
		taskSlug, err := utils.UniqueSlug(task.Title, taskSlugTaken)
		if err != nil {
			return nil, fmt.Errorf("failed to generate task slug: %w", err)
		}
		reserved[taskSlug] = true

		tasks = append(tasks, models.Task{
			Title:       task.Title,
			Slug:        taskSlug,
			Description: task.Description,
			IsCompleted: task.IsCompleted,
			Tags:        task.Tags,
		})
	}

	if err := s.projectRepo.CreateWithTasks(copied, tasks); err != nil {
		return nil, writeError(err, ErrProjectNameTaken, "duplicate project")
	}

	return s.GetByID(copied.ID)
}

// AddParticipant links a user to a project. Adding an existing participant is a no-op.
func (s *ProjectService) AddParticipant(slug string, userID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindBySlug(slug, "Participants")
	if err != nil {
		return nil, lookupError(err, ErrProjectNotFound, fmt.Sprintf("slug %q", slug))
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, lookupError(err, ErrUserNotFound, fmt.Sprintf("id %d", userID))
	}

	if !project.HasParticipant(user.ID) {
		if err := s.projectRepo.AddParticipant(project, user); err != nil {
			return nil, fmt.Errorf("failed to add participant: %w", err)
		}
	}

	return s.GetByID(project.ID)
}

func normalizeProjectName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrProjectNameEmpty
	}
	if utf8.RuneCountInString(name) > maxProjectNameLength {
		return "", ErrProjectNameTooLong
	}
	return name, nil
}

// copyName names the attempt-th copy of a project: "<name> (Copy)", then
// "<name> (Copy) 1", ... The source name is shortened so the result fits
// in maxProjectNameLength characters.
func copyName(source string, attempt int) string {
	suffix := constants.CopySuffix
	if attempt > 0 {
		suffix += " " + strconv.Itoa(attempt)
	}
	base := utils.TruncateRunes(source, maxProjectNameLength-utf8.RuneCountInString(suffix))
	return base + suffix
}

func (s *ProjectService) ensureNameAvailable(name string) error {
	taken, err := s.projectRepo.NameExists(name)
	if err != nil {
		return fmt.Errorf("failed to check project name: %w", err)
	}
	if taken {
		return ErrProjectNameTaken
	}
	return nil
}

func (s *ProjectService) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
