package repository

import (
	"strings"

	"github.com/yukikurage/project-management-api/internal/database"
	"github.com/yukikurage/project-management-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task. Tags must already exist; only the join rows are written.
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Omit("Project", "AssignedUsers.*", "Tags.*").Create(task).Error
}

// FindBySlug finds a live task by slug with optional preloading
func (r *GormTaskRepository) FindBySlug(slug string, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.Where("slug = ?", slug).First(&task).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// FindBySlugWithDeleted finds a task by slug whether or not it is soft-deleted
func (r *GormTaskRepository) FindBySlugWithDeleted(slug string) (*models.Task, error) {
	var task models.Task
	if err := r.db.Unscoped().Where("slug = ?", slug).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func taskFilterScope(filter TaskFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if title := strings.TrimSpace(filter.Title); title != "" {
			db = db.Where("tasks.title LIKE ?", "%"+title+"%")
		}
		if filter.IsCompleted != nil {
			db = db.Where("tasks.is_completed = ?", *filter.IsCompleted)
		}
		return db
	}
}

// List retrieves tasks with filtering, ordering by title and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	scope := taskFilterScope(filter)

	var total int64
	if err := r.db.Model(&models.Task{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []models.Task
	if err := r.db.
		Scopes(scope, database.OrderBy("tasks", "title", filter.Descending), database.Paginate(filter.Pagination)).
		Preload("Project").
		Preload("AssignedUsers").
		Preload("Tags").
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// AssignUsers links users to a task. Existing links are left untouched.
func (r *GormTaskRepository) AssignUsers(task *models.Task, users []models.User) error {
	if len(users) == 0 {
		return nil
	}
	return r.db.Model(task).Omit("AssignedUsers.*").Association("AssignedUsers").Append(users)
}

// AssignTags links tags to a task. Existing links are left untouched.
func (r *GormTaskRepository) AssignTags(task *models.Task, tags []models.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	return r.db.Model(task).Omit("Tags.*").Association("Tags").Append(tags)
}

// SoftDelete sets the deletion marker of a task
func (r *GormTaskRepository) SoftDelete(id uint64) error {
	result := r.db.Delete(&models.Task{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Restore clears the deletion marker of a task
func (r *GormTaskRepository) Restore(id uint64) error {
	result := r.db.Unscoped().
		Model(&models.Task{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SlugExists reports whether any task, deleted or not, owns the slug
func (r *GormTaskRepository) SlugExists(slug string) (bool, error) {
	return exists(r.db.Unscoped().Model(&models.Task{}).Where("slug = ?", slug))
}
