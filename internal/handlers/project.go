package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/dto"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/middleware"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/services"
	"github.com/yukikurage/project-management-api/internal/utils"
)

// projectParam is shared by every /projects/:project route. It holds an ID for
// update and duplicate, and a slug everywhere else.
const projectParam = "project"

// ProjectHandler serves the project endpoints
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

type projectLister func(params utils.PaginationParams) ([]models.Project, int64, error)

func respondProjectPage(c *gin.Context, list projectLister) {
	projects, total, err := list(utils.GetPaginationParams(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewPage(dto.ToProjectSummaryList(projects), total))
}

// ListProjects returns one page of every project
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	respondProjectPage(c, h.projectService.List)
}

// ListOwnedProjects returns the projects owned by the current user
func (h *ProjectHandler) ListOwnedProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	respondProjectPage(c, func(params utils.PaginationParams) ([]models.Project, int64, error) {
		return h.projectService.ListByOwner(userID, params)
	})
}

// ListParticipatingProjects returns the projects the current user owns or participates in
func (h *ProjectHandler) ListParticipatingProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	respondProjectPage(c, func(params utils.PaginationParams) ([]models.Project, int64, error) {
		return h.projectService.ListByParticipant(userID, params)
	})
}

// ListCategoryProjects returns the projects of a category
func (h *ProjectHandler) ListCategoryProjects(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "categoryId")
	if !ok {
		return
	}
	respondProjectPage(c, func(params utils.PaginationParams) ([]models.Project, int64, error) {
		return h.projectService.ListByCategory(categoryID, params)
	})
}

// GetProject returns a project by slug
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, err := h.projectService.GetBySlug(c.Param(projectParam))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectSummaryDTO(*project))
}

// GetProjectByID returns a project by ID
func (h *ProjectHandler) GetProjectByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectSummaryDTO(*project))
}

// CreateProject creates a project. The owner defaults to the current user.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	input := services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   dateTime(req.StartDate),
		EndDate:     dateTime(req.EndDate),
		CategoryID:  req.CategoryID,
	}
	if req.OwnerID != nil {
		input.OwnerID = *req.OwnerID
	} else if userID, exists := middleware.GetUserID(c); exists {
		input.OwnerID = userID
	}

	project, err := h.projectService.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectSummaryDTO(*project))
}

// UpdateProject merges the provided fields into a project
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := parseIDParam(c, projectParam)
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	input := services.UpdateProjectInput{
		Name:          req.Name,
		Description:   req.Description,
		StartDate:     dateTime(req.StartDate),
		EndDateSet:    req.EndDate.Set,
		CategoryIDSet: req.CategoryID.Set,
	}
	if req.EndDate.Valid {
		input.EndDate = &req.EndDate.Value.Time
	}
	if req.CategoryID.Valid {
		input.CategoryID = &req.CategoryID.Value
	}

	project, err := h.projectService.Update(id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectSummaryDTO(*project))
}

// DeleteProject removes a project and its tasks
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	if err := h.projectService.DeleteBySlug(c.Param(projectParam)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DuplicateProject copies a project with its participants and tasks
func (h *ProjectHandler) DuplicateProject(c *gin.Context) {
	id, ok := parseIDParam(c, projectParam)
	if !ok {
		return
	}

	project, err := h.projectService.Duplicate(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectSummaryDTO(*project))
}

// AddUserToProject adds a participant to a project
func (h *ProjectHandler) AddUserToProject(c *gin.Context) {
	var req dto.AddUserToProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	project, err := h.projectService.AddParticipant(c.Param(projectParam), req.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectSummaryDTO(*project))
}

func dateTime(d *dto.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
