package services

import (
	"fmt"
	"strings"

	"github.com/yukikurage/project-management-api/internal/constants"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
	"github.com/yukikurage/project-management-api/internal/utils"
)

var (
	ErrTaskNotFound        = fmt.Errorf("task %w", ErrNotFound)
	ErrTaskNotDeleted      = fmt.Errorf("deleted task %w", ErrNotFound)
	ErrProjectSlugRequired = fmt.Errorf("%w: projectSlug is required to create a task", ErrInvalidInput)
	ErrNoUserSlugsProvided = fmt.Errorf("%w: at least one user slug is required", ErrInvalidInput)
	ErrNoTagsProvided      = fmt.Errorf("%w: at least one tag name is required", ErrInvalidInput)
	ErrTaskTitleTooLong    = fmt.Errorf("%w: title must be at most %d characters", ErrInvalidInput, maxTaskTitleLength)
)

const maxTaskTitleLength = 100

var taskRelations = []string{"Project", "AssignedUsers", "Tags"}

// TaskService handles task business logic
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	tags        *TagService
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskRepo repository.TaskRepository,
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	tags *TagService,
) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		tags:        tags,
	}
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	Title       string
	IsCompleted *bool
	Descending  bool
	Pagination  utils.PaginationParams
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	ProjectSlug string
	Title       string
	Description *string
	Tags        []string
}

// List returns one page of live tasks ordered by title
func (s *TaskService) List(input ListTasksInput) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.List(repository.TaskFilter{
		Title:       input.Title,
		IsCompleted: input.IsCompleted,
		Descending:  input.Descending,
		Pagination:  input.Pagination,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// GetBySlug returns a live task with its project, assignees and tags loaded
func (s *TaskService) GetBySlug(slug string) (*models.Task, error) {
	task, err := s.taskRepo.FindBySlug(slug, taskRelations...)
	if err != nil {
		return nil, lookupError(err, ErrTaskNotFound, fmt.Sprintf("slug %q", slug))
	}
	return task, nil
}

// Create stores a task in the project named by ProjectSlug. Tags are created
// on first use.
func (s *TaskService) Create(input CreateTaskInput) (*models.Task, error) {
	projectSlug := strings.TrimSpace(input.ProjectSlug)
	if projectSlug == "" {
		return nil, ErrProjectSlugRequired
	}

	project, err := s.projectRepo.FindBySlug(projectSlug)
	if err != nil {
		return nil, lookupError(err, ErrProjectNotFound, fmt.Sprintf("slug %q", projectSlug))
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = constants.DefaultTaskTitle
	}
	if len([]rune(title)) > maxTaskTitleLength {
		return nil, ErrTaskTitleTooLong
	}

	tags, err := s.tags.Resolve(input.Tags)
	if err != nil {
		return nil, err
	}

	slug, err := utils.UniqueSlug(title, s.taskRepo.SlugExists)
	if err != nil {
		return nil, fmt.Errorf("failed to generate slug: %w", err)
	}

	task := &models.Task{
		Title:       title,
		Slug:        slug,
		Description: input.Description,
		ProjectID:   project.ID,
		Tags:        tags,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.GetBySlug(task.Slug)
}

// AssignUsers links the users named by userSlugs to a task. Every slug is
// resolved before anything is written; users already assigned are skipped.
func (s *TaskService) AssignUsers(slug string, userSlugs []string) (*models.Task, error) {
	if len(userSlugs) == 0 {
		return nil, ErrNoUserSlugsProvided
	}

	task, err := s.taskRepo.FindBySlug(slug, "AssignedUsers")
	if err != nil {
		return nil, lookupError(err, ErrTaskNotFound, fmt.Sprintf("slug %q", slug))
	}

	var toAssign []models.User
	queued := make(map[uint64]bool, len(userSlugs))
	for _, userSlug := range userSlugs {
		user, err := s.userRepo.FindBySlug(userSlug)
		if err != nil {
			return nil, lookupError(err, ErrUserNotFound, fmt.Sprintf("slug %q", userSlug))
		}
		if task.HasAssignee(user.ID) || queued[user.ID] {
			continue
		}
		queued[user.ID] = true
		toAssign = append(toAssign, *user)
	}

	if err := s.taskRepo.AssignUsers(task, toAssign); err != nil {
		return nil, fmt.Errorf("failed to assign users: %w", err)
	}

	return s.GetBySlug(slug)
}

// AssignTags links tags to a task, creating unknown names. Tags already
// linked are skipped.
func (s *TaskService) AssignTags(slug string, names []string) (*models.Task, error) {
	if len(NormalizeTagNames(names)) == 0 {
		return nil, ErrNoTagsProvided
	}

	task, err := s.taskRepo.FindBySlug(slug, "Tags")
	if err != nil {
		return nil, lookupError(err, ErrTaskNotFound, fmt.Sprintf("slug %q", slug))
	}

	tags, err := s.tags.Resolve(names)
	if err != nil {
		return nil, err
	}

	var toAssign []models.Tag
	for _, tag := range tags {
		if !task.HasTag(tag.ID) {
			toAssign = append(toAssign, tag)
		}
	}

	if err := s.taskRepo.AssignTags(task, toAssign); err != nil {
		return nil, fmt.Errorf("failed to assign tags: %w", err)
	}

	return s.GetBySlug(slug)
}

// SoftDelete marks a live task as deleted
func (s *TaskService) SoftDelete(slug string) error {
	task, err := s.taskRepo.FindBySlug(slug)
	if err != nil {
		return lookupError(err, ErrTaskNotFound, fmt.Sprintf("slug %q", slug))
	}

	if err := s.taskRepo.SoftDelete(task.ID); err != nil {
		return lookupError(err, ErrTaskNotFound, fmt.Sprintf("slug %q", slug))
	}

	return nil
}

// Restore clears the deletion marker of a soft-deleted task
func (s *TaskService) Restore(slug string) error {
	task, err := s.taskRepo.FindBySlugWithDeleted(slug)
	if err != nil {
		return lookupError(err, ErrTaskNotDeleted, fmt.Sprintf("slug %q", slug))
	}
	if !task.IsDeleted() {
		return fmt.Errorf("%w: slug %q", ErrTaskNotDeleted, slug)
	}

	if err := s.taskRepo.Restore(task.ID); err != nil {
		return lookupError(err, ErrTaskNotDeleted, fmt.Sprintf("slug %q", slug))
	}

	return nil
}
