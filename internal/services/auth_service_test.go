package services

func (suite *ServiceTestSuite) TestAuthRegister_IssuesToken() {
	user, token, err := suite.auth.Register(CreateUserInput{
		Firstname: "Ada",
		Lastname:  "Lovelace",
		Email:     "ada@example.com",
		Password:  testPassword,
	})
	suite.Require().NoError(err)
	suite.NotEmpty(token.AccessToken)

	claims, err := suite.tokens.Validate(token.AccessToken)
	suite.Require().NoError(err)
	suite.Equal(user.ID, claims.UserID)
	suite.Equal("ada@example.com", claims.Email)

	_, _, err = suite.auth.Register(CreateUserInput{
		Firstname: "Ada",
		Lastname:  "Again",
		Email:     "ada@example.com",
		Password:  testPassword,
	})
	suite.ErrorIs(err, ErrEmailTaken)
}

func (suite *ServiceTestSuite) TestAuthLogin() {
	created := suite.createUser("Ada", "Lovelace", "ada@example.com")

	user, token, err := suite.auth.Login(LoginInput{Email: "ADA@example.com", Password: testPassword})
	suite.Require().NoError(err)
	suite.Equal(created.ID, user.ID)
	suite.NotEmpty(token.AccessToken)

	_, _, err = suite.auth.Login(LoginInput{Email: "ada@example.com", Password: "wrong-password"})
	suite.ErrorIs(err, ErrInvalidCredentials)

	_, _, err = suite.auth.Login(LoginInput{Email: "nobody@example.com", Password: testPassword})
	suite.ErrorIs(err, ErrInvalidCredentials)
	suite.Equal("invalid email or password", err.Error())
}

func (suite *ServiceTestSuite) TestAuthCurrentUser() {
	created := suite.createUser("Ada", "Lovelace", "ada@example.com")

	user, err := suite.auth.CurrentUser(&Claims{UserID: created.ID})
	suite.Require().NoError(err)
	suite.Equal("ada-lovelace", user.Slug)

	_, err = suite.auth.CurrentUser(&Claims{UserID: 999})
	suite.ErrorIs(err, ErrUserNotFound)
}
