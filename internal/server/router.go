// Package server assembles the HTTP API from its repositories, services and handlers.
package server

import (
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/config"
	"github.com/yukikurage/project-management-api/internal/handlers"
	"github.com/yukikurage/project-management-api/internal/metrics"
	"github.com/yukikurage/project-management-api/internal/middleware"
	"github.com/yukikurage/project-management-api/internal/repository"
	"github.com/yukikurage/project-management-api/internal/services"
	"gorm.io/gorm"
)

// Options carries everything the router needs. Metrics may be nil.
type Options struct {
	DB      *gorm.DB
	Auth    config.AuthConfig
	Logger  *log.Logger
	Metrics *metrics.Metrics
}

// NewRouter wires repositories, services and handlers into a gin engine
func NewRouter(opts Options) (*gin.Engine, error) {
	tokens, err := services.NewTokenService(opts.Auth)
	if err != nil {
		return nil, err
	}

	// Repositories
	userRepo := repository.NewUserRepository(opts.DB)
	projectRepo := repository.NewProjectRepository(opts.DB)
	taskRepo := repository.NewTaskRepository(opts.DB)
	tagRepo := repository.NewTagRepository(opts.DB)
	categoryRepo := repository.NewCategoryRepository(opts.DB)

	// Services
	userService := services.NewUserService(userRepo)
	tagService := services.NewTagService(tagRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	projectService := services.NewProjectService(projectRepo, userRepo, categoryRepo, taskRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo, userRepo, tagService)
	authService := services.NewAuthService(userRepo, userService, tokens)

	// Handlers
	healthHandler := handlers.NewHealthHandler(opts.DB)
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	tagHandler := handlers.NewTagHandler(tagService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(opts.Logger))
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}
	r.Use(middleware.RequireAuth(tokens, middleware.PublicRoutes...))

	r.GET("/health", healthHandler.Check)

	auth := r.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", authHandler.Register)
		auth.GET("/me", authHandler.GetCurrentUser)
	}

	users := r.Group("/users")
	{
		users.GET("", userHandler.ListUsers)
		users.POST("", userHandler.CreateUser)
		users.GET("/:slug", userHandler.GetUser)
		users.PUT("/:id", userHandler.UpdateUser)
	}

	projects := r.Group("/projects")
	{
		projects.GET("", projectHandler.ListProjects)
		projects.POST("", projectHandler.CreateProject)
		projects.GET("/owner", projectHandler.ListOwnedProjects)
		projects.GET("/participant", projectHandler.ListParticipatingProjects)
		projects.GET("/category/:categoryId", projectHandler.ListCategoryProjects)
		projects.GET("/id/:id", projectHandler.GetProjectByID)
		projects.GET("/:project", projectHandler.GetProject)
		projects.PUT("/:project", projectHandler.UpdateProject)
		projects.DELETE("/:project", projectHandler.DeleteProject)
		projects.POST("/:project/duplicate", projectHandler.DuplicateProject)
		projects.POST("/:project/add-user", projectHandler.AddUserToProject)
	}

	tasks := r.Group("/tasks")
	{
		tasks.GET("", taskHandler.ListTasks)
		tasks.POST("", taskHandler.CreateTask)
		tasks.GET("/:slug", taskHandler.GetTask)
		tasks.DELETE("/:slug", taskHandler.DeleteTask)
		tasks.POST("/:slug/assign-users", taskHandler.AssignUsers)
		tasks.POST("/:slug/assign-tags", taskHandler.AssignTags)
		tasks.PUT("/:slug/restore", taskHandler.RestoreTask)
	}

	tags := r.Group("/tags")
	{
		tags.GET("", tagHandler.ListTags)
		tags.POST("", tagHandler.CreateTag)
	}

	categories := r.Group("/categories")
	{
		categories.GET("", categoryHandler.ListCategories)
		categories.POST("", categoryHandler.CreateCategory)
		categories.GET("/:id", categoryHandler.GetCategory)
		categories.PUT("/:id", categoryHandler.UpdateCategory)
		categories.DELETE("/:id", categoryHandler.DeleteCategory)
	}

	return r, nil
}
