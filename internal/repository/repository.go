package repository

import (
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindBySlug finds a user by slug
	FindBySlug(slug string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// List retrieves one page of users ordered by ID
	List(params utils.PaginationParams) ([]models.User, int64, error)

	// Update persists every column of the user
	Update(user *models.User) error

	// SlugExists reports whether a user already owns the slug
	SlugExists(slug string) (bool, error)
}

// ProjectFilter narrows project listings. Nil fields are ignored.
type ProjectFilter struct {
	OwnerID    *uint64
	MemberID   *uint64 // owner or participant
	CategoryID *uint64
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// CreateWithTasks creates a project and its tasks in a single transaction
	CreateWithTasks(project *models.Project, tasks []models.Task) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// FindBySlug finds a project by slug with optional preloading
	FindBySlug(slug string, preload ...string) (*models.Project, error)

	// List retrieves projects with owner, participants and category loaded
	List(filter ProjectFilter, params utils.PaginationParams) ([]models.Project, int64, error)

	// Update persists the project columns without touching its associations
	Update(project *models.Project) error

	// Delete removes a project together with its tasks and join rows
	Delete(id uint64) error

	// AddParticipant links a user to a project
	AddParticipant(project *models.Project, user *models.User) error

	// SlugExists reports whether a project already owns the slug
	SlugExists(slug string) (bool, error)

	// NameExists reports whether a project already owns the name
	NameExists(name string) (bool, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	Title       string
	IsCompleted *bool
	Descending  bool
	Pagination  utils.PaginationParams
}

// TaskRepository defines the interface for task data access. Soft-deleted
// tasks are invisible unless a method says otherwise.
type TaskRepository interface {
	// Create creates a new task and links its tags
	Create(task *models.Task) error

	// FindBySlug finds a live task by slug with optional preloading
	FindBySlug(slug string, preload ...string) (*models.Task, error)

	// FindBySlugWithDeleted finds a task by slug whether or not it is soft-deleted
	FindBySlugWithDeleted(slug string) (*models.Task, error)

	// List retrieves tasks with filtering, ordering by title and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// AssignUsers links users to a task
	AssignUsers(task *models.Task, users []models.User) error

	// AssignTags links tags to a task
	AssignTags(task *models.Task, tags []models.Tag) error

	// SoftDelete sets the deletion marker of a task
	SoftDelete(id uint64) error

	// Restore clears the deletion marker of a task
	Restore(id uint64) error

	// SlugExists reports whether any task, deleted or not, owns the slug
	SlugExists(slug string) (bool, error)
}

// TagRepository defines the interface for tag data access
type TagRepository interface {
	// Create creates a new tag
	Create(tag *models.Tag) error

	// FindByName finds a tag by its exact name
	FindByName(name string) (*models.Tag, error)

	// FirstOrCreate returns the tag with the given name, creating it if needed
	FirstOrCreate(name string) (*models.Tag, error)

	// List retrieves one page of tags ordered by ID
	List(params utils.PaginationParams) ([]models.Tag, int64, error)
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	// Create creates a new category
	Create(category *models.Category) error

	// FindByID finds a category by ID
	FindByID(id uint64) (*models.Category, error)

	// FindByName finds a category by its exact name
	FindByName(name string) (*models.Category, error)

	// List retrieves every category ordered by name
	List() ([]models.Category, error)

	// Update updates a category
	Update(category *models.Category) error

	// Delete detaches the category from its projects and removes it
	Delete(id uint64) error
}
