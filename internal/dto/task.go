package dto

import (
	"time"

	"github.com/yukikurage/project-management-api/internal/models"
)

// ProjectRefDTO is how the parent project appears inside a task
type ProjectRefDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// TaskIndexDTO represents a task in list responses
type TaskIndexDTO struct {
	ID            uint64        `json:"id"`
	Title         string        `json:"title"`
	Slug          string        `json:"slug"`
	Description   *string       `json:"description"`
	IsCompleted   bool          `json:"isCompleted"`
	Project       ProjectRefDTO `json:"project"`
	AssignedUsers []AssigneeDTO `json:"assignedUsers"`
	Tags          []string      `json:"tags"`
}

// TaskDetailsDTO represents a single task with its timestamps
type TaskDetailsDTO struct {
	TaskIndexDTO
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateTaskRequest is the body of task creation. An empty title falls back
// to a placeholder.
type CreateTaskRequest struct {
	ProjectSlug string   `json:"projectSlug"`
	Title       string   `json:"title" binding:"max=100"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags" binding:"dive,max=100"`
}

// AssignUsersRequest is the body of assign-users
type AssignUsersRequest struct {
	UserSlugs []string `json:"userSlugs"`
}

// AssignTagsRequest is the body of assign-tags
type AssignTagsRequest struct {
	Tags []string `json:"tags" binding:"dive,max=100"`
}

// ToTaskIndexDTO converts a Task model with project, assignees and tags loaded
// to TaskIndexDTO
func ToTaskIndexDTO(task models.Task) TaskIndexDTO {
	dto := TaskIndexDTO{
		ID:          task.ID,
		Title:       task.Title,
		Slug:        task.Slug,
		Description: task.Description,
		IsCompleted: task.IsCompleted,
		Project: ProjectRefDTO{
			ID:   task.Project.ID,
			Name: task.Project.Name,
			Slug: task.Project.Slug,
		},
		AssignedUsers: make([]AssigneeDTO, len(task.AssignedUsers)),
		Tags:          make([]string, len(task.Tags)),
	}

	for i, user := range task.AssignedUsers {
		dto.AssignedUsers[i] = ToAssigneeDTO(user)
	}
	for i, tag := range task.Tags {
		dto.Tags[i] = tag.Name
	}

	return dto
}

// ToTaskDetailsDTO converts a Task model to TaskDetailsDTO
func ToTaskDetailsDTO(task models.Task) TaskDetailsDTO {
	return TaskDetailsDTO{
		TaskIndexDTO: ToTaskIndexDTO(task),
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}
}

// ToTaskIndexList converts tasks to their index projection
func ToTaskIndexList(tasks []models.Task) []TaskIndexDTO {
	items := make([]TaskIndexDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskIndexDTO(task)
	}
	return items
}
