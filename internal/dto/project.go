package dto

import (
	"github.com/yukikurage/project-management-api/internal/models"
)

// CategoryRefDTO is how a category appears inside a project
type CategoryRefDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ProjectSummaryDTO is the flattened view of a project and its direct relations
type ProjectSummaryDTO struct {
	ID           uint64           `json:"id"`
	Name         string           `json:"name"`
	Slug         string           `json:"slug"`
	Description  string           `json:"description"`
	StartDate    Date             `json:"startDate"`
	EndDate      *Date            `json:"endDate"`
	Owner        UserSummaryDTO   `json:"owner"`
	Participants []UserSummaryDTO `json:"participants"`
	Category     *CategoryRefDTO  `json:"category"`
}

// CreateProjectRequest is the body of project creation. OwnerID defaults to
// the authenticated user and StartDate to today.
type CreateProjectRequest struct {
	Name        string  `json:"name" binding:"required,min=3,max=100"`
	Description string  `json:"description" binding:"required,min=3,max=255"`
	StartDate   *Date   `json:"startDate"`
	EndDate     *Date   `json:"endDate"`
	OwnerID     *uint64 `json:"ownerId"`
	CategoryID  *uint64 `json:"categoryId"`
}

// UpdateProjectRequest carries the fields to merge into an existing project.
// A null endDate or categoryId clears the value.
type UpdateProjectRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=3,max=100"`
	Description *string          `json:"description" binding:"omitempty,min=3,max=255"`
	StartDate   *Date            `json:"startDate"`
	EndDate     Nullable[Date]   `json:"endDate"`
	CategoryID  Nullable[uint64] `json:"categoryId"`
}

// AddUserToProjectRequest is the body of add-user
type AddUserToProjectRequest struct {
	UserID uint64 `json:"userId" binding:"required"`
}

// ToProjectSummaryDTO converts a Project model with owner, participants and
// category loaded to ProjectSummaryDTO
func ToProjectSummaryDTO(project models.Project) ProjectSummaryDTO {
	dto := ProjectSummaryDTO{
		ID:           project.ID,
		Name:         project.Name,
		Slug:         project.Slug,
		Description:  project.Description,
		StartDate:    NewDate(project.StartDate),
		EndDate:      DatePtr(project.EndDate),
		Owner:        ToUserSummaryDTO(project.Owner),
		Participants: make([]UserSummaryDTO, len(project.Participants)),
	}

	for i, participant := range project.Participants {
		dto.Participants[i] = ToUserSummaryDTO(participant)
	}

	if project.Category != nil {
		dto.Category = &CategoryRefDTO{ID: project.Category.ID, Name: project.Category.Name}
	}

	return dto
}

// ToProjectSummaryList converts projects to their summary projection
func ToProjectSummaryList(projects []models.Project) []ProjectSummaryDTO {
	items := make([]ProjectSummaryDTO, len(projects))
	for i, project := range projects {
		items[i] = ToProjectSummaryDTO(project)
	}
	return items
}
