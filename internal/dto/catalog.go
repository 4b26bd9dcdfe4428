package dto

import (
	"time"

	"github.com/yukikurage/project-management-api/internal/models"
)

// TagDTO represents a tag in API responses
type TagDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// CategoryDTO represents a category in API responses
type CategoryDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NameRequest is the body of tag and category creation or renaming
type NameRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// ToTagDTO converts a Tag model to TagDTO
func ToTagDTO(tag models.Tag) TagDTO {
	return TagDTO{ID: tag.ID, Name: tag.Name}
}

// ToTagList converts tags to DTOs
func ToTagList(tags []models.Tag) []TagDTO {
	items := make([]TagDTO, len(tags))
	for i, tag := range tags {
		items[i] = ToTagDTO(tag)
	}
	return items
}

// ToCategoryDTO converts a Category model to CategoryDTO
func ToCategoryDTO(category models.Category) CategoryDTO {
	return CategoryDTO{
		ID:        category.ID,
		Name:      category.Name,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

// ToCategoryList converts categories to DTOs
func ToCategoryList(categories []models.Category) []CategoryDTO {
	items := make([]CategoryDTO, len(categories))
	for i, category := range categories {
		items[i] = ToCategoryDTO(category)
	}
	return items
}
