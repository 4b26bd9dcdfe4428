package services

import (
	"strings"

	"github.com/yukikurage/project-management-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

func (suite *ServiceTestSuite) TestUserCreate_GeneratesUniqueSlugs() {
	first := suite.createUser("Ada", "Lovelace", "ada@example.com")
	second := suite.createUser("Ada", "Lovelace", "ada.l@example.com")
	third := suite.createUser("ada", "LOVELACE", "ada.lovelace@example.com")

	suite.Equal("ada-lovelace", first.Slug)
	suite.Equal("ada-lovelace-1", second.Slug)
	suite.Equal("ada-lovelace-2", third.Slug)
}

func (suite *ServiceTestSuite) TestUserCreate_HashesPassword() {
	user := suite.createUser("Grace", "Hopper", "grace@example.com")

	suite.NotEqual(testPassword, user.PasswordHash)
	suite.NoError(bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(testPassword)))
}

func (suite *ServiceTestSuite) TestUserCreate_DuplicateEmail() {
	suite.createUser("Ada", "Lovelace", "ada@example.com")

	_, err := suite.users.Create(CreateUserInput{
		Firstname: "Other",
		Lastname:  "Person",
		Email:     " ADA@example.com ",
		Password:  testPassword,
	})
	suite.ErrorIs(err, ErrEmailTaken)
	suite.ErrorIs(err, ErrConflict)
}

func (suite *ServiceTestSuite) TestUserCreate_RejectsInvalidInput() {
	_, err := suite.users.Create(CreateUserInput{
		Firstname: "Ada",
		Lastname:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "short",
	})
	suite.ErrorIs(err, ErrInvalidInput)

	_, err = suite.users.Create(CreateUserInput{
		Firstname: "  ",
		Lastname:  "Lovelace",
		Email:     "ada@example.com",
		Password:  testPassword,
	})
	suite.ErrorIs(err, ErrNameRequired)
}

func (suite *ServiceTestSuite) TestUserCreate_RejectsOversizedInput() {
	testCases := []struct {
		name  string
		input CreateUserInput
		want  error
	}{
		{
			name:  "password over bcrypt limit",
			input: CreateUserInput{Firstname: "Ada", Lastname: "Lovelace", Email: "ada@example.com", Password: strings.Repeat("p", 73)},
			want:  ErrPasswordTooLong,
		},
		{
			name:  "multibyte password over bcrypt limit",
			input: CreateUserInput{Firstname: "Ada", Lastname: "Lovelace", Email: "ada@example.com", Password: strings.Repeat("é", 40)},
			want:  ErrPasswordTooLong,
		},
		{
			name:  "firstname wider than column",
			input: CreateUserInput{Firstname: strings.Repeat("a", 51), Lastname: "Lovelace", Email: "ada@example.com", Password: testPassword},
			want:  ErrNameTooLong,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			_, err := suite.users.Create(tc.input)
			suite.ErrorIs(err, tc.want)
			suite.ErrorIs(err, ErrInvalidInput)
		})
	}

	user, err := suite.users.Create(CreateUserInput{
		Firstname: "Ada",
		Lastname:  "Lovelace",
		Email:     "ada@example.com",
		Password:  strings.Repeat("p", 72),
	})
	suite.Require().NoError(err)
	suite.Equal(int64(1), suite.countRows("users"))

	long := strings.Repeat("b", 51)
	_, err = suite.users.Update(user.ID, UpdateUserInput{Lastname: &long})
	suite.ErrorIs(err, ErrNameTooLong)
}

func (suite *ServiceTestSuite) TestUserGetBySlug() {
	created := suite.createUser("Ada", "Lovelace", "ada@example.com")

	found, err := suite.users.GetBySlug("ada-lovelace")
	suite.Require().NoError(err)
	suite.Equal(created.ID, found.ID)

	_, err = suite.users.GetBySlug("nobody")
	suite.ErrorIs(err, ErrUserNotFound)
	suite.ErrorIs(err, ErrNotFound)
	suite.Contains(err.Error(), `"nobody"`)
}

func (suite *ServiceTestSuite) TestUserUpdate_MergesProvidedFields() {
	user := suite.createUser("Ada", "Lovelace", "ada@example.com")
	firstname := "Augusta"

	updated, err := suite.users.Update(user.ID, UpdateUserInput{Firstname: &firstname})
	suite.Require().NoError(err)

	suite.Equal("Augusta", updated.Firstname)
	suite.Equal("Lovelace", updated.Lastname)
	suite.Equal("ada@example.com", updated.Email)
	suite.Equal("ada-lovelace", updated.Slug)
}

func (suite *ServiceTestSuite) TestUserUpdate_EmailConflictsAndMissingUser() {
	suite.createUser("Ada", "Lovelace", "ada@example.com")
	grace := suite.createUser("Grace", "Hopper", "grace@example.com")

	taken := "ada@example.com"
	_, err := suite.users.Update(grace.ID, UpdateUserInput{Email: &taken})
	suite.ErrorIs(err, ErrEmailTaken)

	own := "grace@example.com"
	_, err = suite.users.Update(grace.ID, UpdateUserInput{Email: &own})
	suite.NoError(err)

	_, err = suite.users.Update(999, UpdateUserInput{Email: &own})
	suite.ErrorIs(err, ErrUserNotFound)
}

func (suite *ServiceTestSuite) TestUserList_Paginates() {
	suite.createUser("Ada", "Lovelace", "ada@example.com")
	suite.createUser("Grace", "Hopper", "grace@example.com")
	suite.createUser("Alan", "Turing", "alan@example.com")

	users, total, err := suite.users.List(utils.NewPaginationParams(2, 2))
	suite.Require().NoError(err)
	suite.Equal(int64(3), total)
	suite.Require().Len(users, 1)
	suite.Equal("alan-turing", users[0].Slug)
}
