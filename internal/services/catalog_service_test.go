package services

import (
	"strings"

	"github.com/yukikurage/project-management-api/internal/utils"
)

func (suite *ServiceTestSuite) TestTagCreateAndList() {
	for _, name := range []string{"urgent", "docs", "backend"} {
		_, err := suite.tags.Create(name)
		suite.Require().NoError(err)
	}

	_, err := suite.tags.Create(" urgent ")
	suite.ErrorIs(err, ErrTagNameTaken)
	suite.ErrorIs(err, ErrConflict)

	_, err = suite.tags.Create("  ")
	suite.ErrorIs(err, ErrTagNameEmpty)

	tags, total, err := suite.tags.List(utils.NewPaginationParams(1, 2))
	suite.Require().NoError(err)
	suite.Equal(int64(3), total)
	suite.Require().Len(tags, 2)
	suite.Equal("urgent", tags[0].Name)
	suite.Equal("docs", tags[1].Name)
}

func (suite *ServiceTestSuite) TestTagResolve_ReusesExistingTags() {
	existing, err := suite.tags.Create("docs")
	suite.Require().NoError(err)

	tags, err := suite.tags.Resolve([]string{"docs", " new ", "new"})
	suite.Require().NoError(err)
	suite.Require().Len(tags, 2)
	suite.Equal(existing.ID, tags[0].ID)
	suite.Equal("new", tags[1].Name)
}

func (suite *ServiceTestSuite) TestTagNamesWiderThanColumn() {
	long := strings.Repeat("t", 101)

	_, err := suite.tags.Create(long)
	suite.ErrorIs(err, ErrTagTooLong)

	_, err = suite.tags.Resolve([]string{"ok", long})
	suite.ErrorIs(err, ErrTagTooLong)
	suite.ErrorIs(err, ErrInvalidInput)
	suite.Equal(int64(0), suite.countRows("tags"))
}

func (suite *ServiceTestSuite) TestCategoryLifecycle() {
	created, err := suite.categories.Create("Marketing")
	suite.Require().NoError(err)
	_, err = suite.categories.Create("Engineering")
	suite.Require().NoError(err)

	_, err = suite.categories.Create("Marketing")
	suite.ErrorIs(err, ErrCategoryNameTaken)

	found, err := suite.categories.GetByID(created.ID)
	suite.Require().NoError(err)
	suite.Equal("Marketing", found.Name)

	renamed, err := suite.categories.Update(created.ID, "Growth")
	suite.Require().NoError(err)
	suite.Equal("Growth", renamed.Name)

	_, err = suite.categories.Update(created.ID, "Engineering")
	suite.ErrorIs(err, ErrCategoryNameTaken)

	categories, err := suite.categories.List()
	suite.Require().NoError(err)
	suite.Require().Len(categories, 2)
	suite.Equal("Engineering", categories[0].Name)
	suite.Equal("Growth", categories[1].Name)

	_, err = suite.categories.GetByID(999)
	suite.ErrorIs(err, ErrCategoryNotFound)
}

func (suite *ServiceTestSuite) TestCategoryDelete_DetachesProjects() {
	owner := suite.createUser("Ada", "Lovelace", "ada@example.com")
	category, err := suite.categories.Create("Marketing")
	suite.Require().NoError(err)

	project, err := suite.projects.Create(CreateProjectInput{
		Name:        "Website Redesign",
		Description: "Test Description",
		OwnerID:     owner.ID,
		CategoryID:  &category.ID,
	})
	suite.Require().NoError(err)
	suite.Require().NotNil(project.Category)

	suite.Require().NoError(suite.categories.Delete(category.ID))

	reloaded, err := suite.projects.GetBySlug(project.Slug)
	suite.Require().NoError(err)
	suite.Nil(reloaded.CategoryID)
	suite.Nil(reloaded.Category)

	suite.ErrorIs(suite.categories.Delete(category.ID), ErrCategoryNotFound)
}
