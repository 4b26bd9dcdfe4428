package repository

import (
	"github.com/yukikurage/project-management-api/internal/database"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/utils"
	"gorm.io/gorm"
)

// GormTagRepository is a GORM implementation of TagRepository
type GormTagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &GormTagRepository{db: db}
}

// Create creates a new tag
func (r *GormTagRepository) Create(tag *models.Tag) error {
	return r.db.Create(tag).Error
}

// FindByName finds a tag by its exact name
func (r *GormTagRepository) FindByName(name string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// FirstOrCreate returns the tag with the given name, creating it if needed
func (r *GormTagRepository) FirstOrCreate(name string) (*models.Tag, error) {
	tag := models.Tag{Name: name}
	if err := r.db.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// List retrieves one page of tags ordered by ID
func (r *GormTagRepository) List(params utils.PaginationParams) ([]models.Tag, int64, error) {
	var total int64
	if err := r.db.Model(&models.Tag{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tags []models.Tag
	if err := r.db.
		Scopes(database.OrderBy("tags", "id", false), database.Paginate(params)).
		Find(&tags).Error; err != nil {
		return nil, 0, err
	}

	return tags, total, nil
}
