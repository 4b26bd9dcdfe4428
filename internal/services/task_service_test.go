package services

import (
	"strings"

	"github.com/yukikurage/project-management-api/internal/constants"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/utils"
)

func (suite *ServiceTestSuite) TestTaskCreate() {
	owner := suite.createUser("Ada", "Lovelace", "ada@example.com")
	project := suite.createProject("Website Redesign", owner.ID)
	description := "First pass"

	task, err := suite.tasks.Create(CreateTaskInput{
		ProjectSlug: project.Slug,
		Title:       "Write Docs",
		Description: &description,
		Tags:        []string{" urgent ", "urgent", "docs", ""},
	})
	suite.Require().NoError(err)

	suite.Equal("write-docs", task.Slug)
	suite.False(task.IsCompleted)
	suite.Equal(project.ID, task.Project.ID)
	suite.Require().NotNil(task.Description)
	suite.Equal("First pass", *task.Description)
	suite.Len(task.Tags, 2)
	suite.Equal(int64(2), suite.countRows("tags"))
}

func (suite *ServiceTestSuite) TestTaskCreate_DefaultTitleAndSlugCollisions() {
	owner := suite.createUser("Ada", "Lovelace", "ada@example.com")
	project := suite.createProject("Website Redesign", owner.ID)

	untitled := suite.createTask(project.Slug, "   ")
	suite.Equal(constants.DefaultTaskTitle, untitled.Title)
	suite.Equal("default-task-title", untitled.Slug)

	first := suite.createTask(project.Slug, "Write Docs")
	suite.Require().NoError(suite.tasks.SoftDelete(first.Slug))

	second := suite.createTask(project.Slug, "Write Docs")
	suite.Equal("write-docs-1", second.Slug)
}

func (suite *ServiceTestSuite) TestTaskCreate_Failures() {
	_, err := suite.tasks.Create(CreateTaskInput{Title: "Orphan"})
	suite.ErrorIs(err, ErrProjectSlugRequired)
	suite.ErrorIs(err, ErrInvalidInput)

	_, err = suite.tasks.Create(CreateTaskInput{ProjectSlug: "missing", Title: "Orphan"})
	suite.ErrorIs(err, ErrProjectNotFound)
}

func (suite *ServiceTestSuite) TestTaskList_FiltersAndOrders() {
	owner := suite.createUser("Ada", "Lovelace", "ada@example.com")
	project := suite.createProject("Website Redesign", owner.ID)

	for _, title := range []string{"Alpha", "Bravo", "Charlie", "Delta"} {
		suite.createTask(project.Slug, title)
	}
	suite.Require().NoError(suite.db.Model(&models.Task{}).
		Where("title IN ?", []string{"Alpha", "Charlie", "Delta"}).
		Update("is_completed", true).Error)
	suite.Require().NoError(suite.tasks.SoftDelete("delta"))

	completed := true
	tasks, total, err := suite.tasks.List(ListTasksInput{
		IsCompleted: &completed,
		Descending:  true,
		Pagination:  utils.NewPaginationParams(1, 10),
	})
	suite.Require().NoError(err)
	suite.Equal(int64(2), total)
	suite.Require().Len(tasks, 2)
	suite.Equal("Charlie", tasks[0].Title)
	suite.Equal("Alpha", tasks[1].Title)
	suite.Equal(project.Slug, tasks[0].Project.Slug)

	tasks, total, err = suite.tasks.List(ListTasksInput{
		Title:      "rav",
		Pagination: utils.NewPaginationParams(1, 10),
	})
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Equal("Bravo", tasks[0].Title)

	tasks, total, err = suite.tasks.List(ListTasksInput{Pagination: utils.NewPaginationParams(2, 2)})
	suite.Require().NoError(err)
	suite.Equal(int64(3), total)
	suite.Require().Len(tasks, 1)
	suite.Equal("Charlie", tasks[0].Title)
}

func (suite *ServiceTestSuite) TestTaskAssignUsers_IsIdempotent() {
	owner := suite.createUser("Ada", "Lovelace", "ada@example.com")
	grace := suite.createUser("Grace", "Hopper", "grace@example.com")
	project := suite.createProject("Website Redesign", owner.ID)
	task := suite.createTask(project.Slug, "Write Docs")

	updated, err := suite.tasks.AssignUsers(task.Slug, []string{owner.Slug, grace.Slug, owner.Slug})
	suite.Require().NoError(err)
	suite.Len(updated.AssignedUsers, 2)

	updated, err = suite.tasks.AssignUsers(task.Slug, []string{grace.Slug})
	suite.Require().NoError(err)
	suite.Len(updated.AssignedUsers, 2)
	suite.Equal(int64(2), suite.countRows("task_assigned_users"))
}

func (suite *ServiceTestSuite) TestTaskAssignUsers_UnknownUserChangesNothing() {
	owner := suite.createUser("Ada", "Lovelace", "ada@example.com")
	project := suite.createProject("Website Redesign", owner.ID)
	task := suite.createTask(project.Slug, "Write Docs")

	_, err := suite.tasks.AssignUsers(task.Slug, []string{owner.Slug, "ghost"})
	suite.ErrorIs(err, ErrUserNotFound)
	suite.Contains(err.Error(), `"ghost"`)
	suite.Equal(int64(0), suite.countRows("task_assigned_users"))

	_, err = suite.tasks.AssignUsers(task.Slug, nil)
	suite.ErrorIs(err, ErrNoUserSlugsProvided)

	_, err = suite.tasks.AssignUsers("missing", []string{owner.Slug})
	suite.ErrorIs(err, ErrTaskNotFound)
}

func (suite *ServiceTestSuite) TestTaskAssignTags() {
	owner := suite.createUser("Ada", "Lovelace", "ada@example.com")
	project := suite.createProject("Website Redesign", owner.ID)
	task := suite.createTask(project.Slug, "Write Docs", "docs")

	updated, err := suite.tasks.AssignTags(task.Slug, []string{"docs", "urgent", " urgent"})
	suite.Require().NoError(err)
	suite.Len(updated.Tags, 2)
	suite.Equal(int64(2), suite.countRows("task_tags"))
	suite.Equal(int64(2), suite.countRows("tags"))

	_, err = suite.tasks.AssignTags(task.Slug, []string{" ", ""})
	suite.ErrorIs(err, ErrNoTagsProvided)

	_, err = suite.tasks.AssignTags(task.Slug, []string{strings.Repeat("t", 101)})
	suite.ErrorIs(err, ErrTagTooLong)
	suite.Equal(int64(2), suite.countRows("tags"))
}

func (suite *ServiceTestSuite) TestTaskSoftDeleteAndRestore() {
	owner := suite.createUser("Ada", "Lovelace", "ada@example.com")
	project := suite.createProject("Website Redesign", owner.ID)
	task := suite.createTask(project.Slug, "Write Docs")

	suite.ErrorIs(suite.tasks.Restore(task.Slug), ErrNotFound)

	suite.Require().NoError(suite.tasks.SoftDelete(task.Slug))
	_, err := suite.tasks.GetBySlug(task.Slug)
	suite.ErrorIs(err, ErrTaskNotFound)
	suite.ErrorIs(suite.tasks.SoftDelete(task.Slug), ErrTaskNotFound)

	_, total, err := suite.tasks.List(ListTasksInput{Pagination: utils.NewPaginationParams(1, 10)})
	suite.Require().NoError(err)
	suite.Equal(int64(0), total)

	suite.Require().NoError(suite.tasks.Restore(task.Slug))
	restored, err := suite.tasks.GetBySlug(task.Slug)
	suite.Require().NoError(err)
	suite.Equal(task.ID, restored.ID)

	suite.ErrorIs(suite.tasks.Restore(task.Slug), ErrTaskNotDeleted)
	suite.ErrorIs(suite.tasks.Restore("missing"), ErrNotFound)
}
