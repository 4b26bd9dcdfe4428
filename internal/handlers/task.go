package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/dto"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/services"
	"github.com/yukikurage/project-management-api/internal/utils"
)

// TaskHandler serves the task endpoints
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// ListTasks returns one page of live tasks.
// Supports title (substring), isCompleted (true|false) and orderBy (ASC|DESC).
func (h *TaskHandler) ListTasks(c *gin.Context) {
	input := services.ListTasksInput{
		Title:      c.Query("title"),
		Pagination: utils.GetPaginationParams(c),
	}

	if raw := c.Query("isCompleted"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			apierrors.BadRequest(c, "isCompleted must be true or false")
			return
		}
		input.IsCompleted = &completed
	}

	switch strings.ToUpper(c.DefaultQuery("orderBy", "ASC")) {
	case "ASC":
	case "DESC":
		input.Descending = true
	default:
		apierrors.BadRequest(c, "orderBy must be ASC or DESC")
		return
	}

	tasks, total, err := h.taskService.List(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewPage(dto.ToTaskIndexList(tasks), total))
}

// GetTask returns a task by slug
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.taskService.GetBySlug(c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDetailsDTO(*task))
}

// CreateTask creates a task in a project
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	task, err := h.taskService.Create(services.CreateTaskInput{
		ProjectSlug: req.ProjectSlug,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDetailsDTO(*task))
}

// AssignUsers assigns users to a task by slug
func (h *TaskHandler) AssignUsers(c *gin.Context) {
	var req dto.AssignUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	task, err := h.taskService.AssignUsers(c.Param("slug"), req.UserSlugs)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDetailsDTO(*task))
}

// AssignTags attaches tags to a task, creating unknown ones
func (h *TaskHandler) AssignTags(c *gin.Context) {
	var req dto.AssignTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	task, err := h.taskService.AssignTags(c.Param("slug"), req.Tags)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDetailsDTO(*task))
}

// DeleteTask soft-deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.taskService.SoftDelete(c.Param("slug")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RestoreTask restores a soft-deleted task
func (h *TaskHandler) RestoreTask(c *gin.Context) {
	if err := h.taskService.Restore(c.Param("slug")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
