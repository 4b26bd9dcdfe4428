package repository

import (
	"github.com/yukikurage/project-management-api/internal/database"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/utils"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project. Owner, category and participants must already
// exist; only foreign keys and join rows are written.
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Omit("Owner", "Category", "Participants.*", "Tasks").Create(project).Error
}

// CreateWithTasks creates a project and its tasks atomically
func (r *GormProjectRepository) CreateWithTasks(project *models.Project, tasks []models.Task) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Owner", "Category", "Participants.*", "Tasks").Create(project).Error; err != nil {
			return err
		}

		if len(tasks) == 0 {
			return nil
		}

		for i := range tasks {
			tasks[i].ProjectID = project.ID
		}

		return tx.Omit("Project", "AssignedUsers", "Tags.*").Create(&tasks).Error
	})
}

// FindByID finds a project by ID with optional preloading
func (r *GormProjectRepository) FindByID(id uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&project, id).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// FindBySlug finds a project by slug with optional preloading
func (r *GormProjectRepository) FindBySlug(slug string, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.Where("slug = ?", slug).First(&project).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

func (r *GormProjectRepository) filterScope(filter ProjectFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.OwnerID != nil {
			db = db.Where("projects.owner_id = ?", *filter.OwnerID)
		}
		if filter.CategoryID != nil {
			db = db.Where("projects.category_id = ?", *filter.CategoryID)
		}
		if filter.MemberID != nil {
			participantSubQuery := r.db.Table("project_participants").
				Select("1").
				Where("project_participants.project_id = projects.id").
				Where("project_participants.user_id = ?", *filter.MemberID)
			db = db.Where(
				r.db.Where("projects.owner_id = ?", *filter.MemberID).
					Or("EXISTS (?)", participantSubQuery),
			)
		}
		return db
	}
}

// List retrieves projects with owner, participants and category loaded
func (r *GormProjectRepository) List(filter ProjectFilter, params utils.PaginationParams) ([]models.Project, int64, error) {
	scope := r.filterScope(filter)

	var total int64
	if err := r.db.Model(&models.Project{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []models.Project
	if err := r.db.
		Scopes(scope, database.Paginate(params)).
		Order("projects.id ASC").
		Preload("Owner").
		Preload("Participants").
		Preload("Category").
		Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// Update persists the project columns without touching its associations
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Omit("Owner", "Category", "Participants", "Tasks").Save(project).Error
}

// Delete removes a project, its tasks (soft-deleted ones included) and every
// join row that references them
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var taskIDs []uint64
		if err := tx.Unscoped().
			Model(&models.Task{}).
			Where("project_id = ?", id).
			Pluck("id", &taskIDs).Error; err != nil {
			return err
		}

		if len(taskIDs) > 0 {
			if err := tx.Exec("DELETE FROM task_tags WHERE task_id IN ?", taskIDs).Error; err != nil {
				return err
			}
			if err := tx.Exec("DELETE FROM task_assigned_users WHERE task_id IN ?", taskIDs).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("id IN ?", taskIDs).Delete(&models.Task{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Exec("DELETE FROM project_participants WHERE project_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Project{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// AddParticipant links a user to a project. An existing link is left untouched.
func (r *GormProjectRepository) AddParticipant(project *models.Project, user *models.User) error {
	return r.db.Model(project).Omit("Participants.*").Association("Participants").Append(user)
}

// SlugExists reports whether a project already owns the slug
func (r *GormProjectRepository) SlugExists(slug string) (bool, error) {
	return exists(r.db.Model(&models.Project{}).Where("slug = ?", slug))
}

// NameExists reports whether a project already owns the name
func (r *GormProjectRepository) NameExists(name string) (bool, error) {
	return exists(r.db.Model(&models.Project{}).Where("name = ?", name))
}
