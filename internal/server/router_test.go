package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/project-management-api/internal/config"
	"github.com/yukikurage/project-management-api/internal/database"
	"github.com/yukikurage/project-management-api/internal/metrics"
	"gorm.io/gorm"
)

// RouterTestSuite drives the full HTTP stack against an in-memory database
type RouterTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

// SetupTest runs before each test
func (suite *RouterTestSuite) SetupTest() {
	var err error

	gin.SetMode(gin.TestMode)

	suite.db, err = database.OpenInMemory()
	suite.Require().NoError(err)

	suite.router, err = NewRouter(Options{
		DB:      suite.db,
		Auth:    config.AuthConfig{JWTSecret: "router-secret", TokenTTL: time.Hour},
		Logger:  log.New(io.Discard),
		Metrics: metrics.New(),
	})
	suite.Require().NoError(err)
}

// TearDownTest runs after each test
func (suite *RouterTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *RouterTestSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *RouterTestSuite) decode(w *httptest.ResponseRecorder, v any) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (suite *RouterTestSuite) register(firstname, lastname, email string) string {
	w := suite.do("POST", "/auth/register", "", map[string]any{
		"firstname": firstname,
		"lastname":  lastname,
		"email":     email,
		"password":  "password123",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var response struct {
		AccessToken string `json:"accessToken"`
		TokenType   string `json:"tokenType"`
	}
	suite.decode(w, &response)
	suite.Require().Equal("Bearer", response.TokenType)
	return response.AccessToken
}

// TestPublicRoutes tests the endpoints reachable without a token
func (suite *RouterTestSuite) TestPublicRoutes() {
	w := suite.do("GET", "/health", "", nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do("GET", "/metrics", "", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "http_requests_total")
}

// TestProtectedRoutesRequireToken tests that every resource rejects anonymous calls
func (suite *RouterTestSuite) TestProtectedRoutesRequireToken() {
	for _, path := range []string{"/users", "/projects", "/tasks", "/tags", "/categories", "/auth/me"} {
		w := suite.do("GET", path, "", nil)
		suite.Equal(http.StatusUnauthorized, w.Code, path)
	}

	w := suite.do("GET", "/projects", "not-a-jwt", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

// TestRegisterLoginAndMe tests the authentication flow end to end
func (suite *RouterTestSuite) TestRegisterLoginAndMe() {
	suite.register("Ada", "Lovelace", "ada@example.com")

	w := suite.do("POST", "/auth/login", "", map[string]any{"email": "ada@example.com", "password": "wrong-password"})
	suite.Equal(http.StatusUnauthorized, w.Code)
	var failure map[string]any
	suite.decode(w, &failure)
	suite.Equal("invalid email or password", failure["message"])

	w = suite.do("POST", "/auth/login", "", map[string]any{"email": "ada@example.com", "password": "password123"})
	suite.Require().Equal(http.StatusOK, w.Code)
	var login struct {
		AccessToken string `json:"accessToken"`
	}
	suite.decode(w, &login)

	w = suite.do("GET", "/auth/me", login.AccessToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var me map[string]any
	suite.decode(w, &me)
	suite.Equal("ada@example.com", me["email"])
	suite.Equal("ada-lovelace", me["slug"])
	suite.NotContains(me, "password")
}

// TestUnknownRoute tests that authenticated calls to unknown paths are 404
func (suite *RouterTestSuite) TestUnknownRoute() {
	token := suite.register("Ada", "Lovelace", "ada@example.com")

	w := suite.do("GET", "/nowhere", token, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

// TestProjectLifecycle tests create, participate, duplicate and delete
func (suite *RouterTestSuite) TestProjectLifecycle() {
	token := suite.register("Ada", "Lovelace", "ada@example.com")
	suite.register("Grace", "Hopper", "grace@example.com")

	w := suite.do("POST", "/categories", token, map[string]any{"name": "Marketing"})
	suite.Require().Equal(http.StatusCreated, w.Code)
	var category struct {
		ID uint64 `json:"id"`
	}
	suite.decode(w, &category)

	w = suite.do("POST", "/projects", token, map[string]any{
		"name":        "Website Redesign",
		"description": "New landing pages",
		"startDate":   "2030-01-01",
		"categoryId":  category.ID,
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var project struct {
		ID   uint64 `json:"id"`
		Slug string `json:"slug"`
	}
	suite.decode(w, &project)
	suite.Equal("website-redesign", project.Slug)

	w = suite.do("POST", "/projects", token, map[string]any{"name": "Website Redesign", "description": "Again"})
	suite.Equal(http.StatusConflict, w.Code)

	w = suite.do("POST", "/projects/website-redesign/add-user", token, map[string]any{"userId": 2})
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.do("POST", "/tasks", token, map[string]any{
		"projectSlug": "website-redesign",
		"title":       "Draft",
		"tags":        []string{"design"},
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = suite.do("POST", "/tasks/draft/assign-users", token, map[string]any{"userSlugs": []string{"grace-hopper"}})
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.do("GET", "/projects/category/1", token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"total":1`)

	w = suite.do("POST", "/projects/1/duplicate", token, nil)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var copied struct {
		Name         string `json:"name"`
		Slug         string `json:"slug"`
		Participants []struct {
			Slug string `json:"slug"`
		} `json:"participants"`
	}
	suite.decode(w, &copied)
	suite.Equal("Website Redesign (Copy)", copied.Name)
	suite.NotEqual(project.Slug, copied.Slug)
	suite.Require().Len(copied.Participants, 1)
	suite.Equal("grace-hopper", copied.Participants[0].Slug)

	w = suite.do("GET", "/tasks", token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"total":2`)

	w = suite.do("DELETE", "/projects/website-redesign", token, nil)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.do("GET", "/projects/website-redesign", token, nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do("GET", "/tasks/draft", token, nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do("GET", "/projects/participant", token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), copied.Slug)
	suite.Contains(w.Body.String(), `"total":1`)
}

// TestCategoryDeleteDetachesProjects tests the category endpoints
func (suite *RouterTestSuite) TestCategoryDeleteDetachesProjects() {
	token := suite.register("Ada", "Lovelace", "ada@example.com")

	w := suite.do("POST", "/categories", token, map[string]any{"name": "Ops"})
	suite.Require().Equal(http.StatusCreated, w.Code)

	w = suite.do("POST", "/categories", token, map[string]any{"name": "Ops"})
	suite.Equal(http.StatusConflict, w.Code)

	w = suite.do("POST", "/projects", token, map[string]any{
		"name":        "Migration",
		"description": "Move the database",
		"categoryId":  1,
	})
	suite.Require().Equal(http.StatusCreated, w.Code)

	w = suite.do("DELETE", "/categories/1", token, nil)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.do("GET", "/projects/migration", token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var project map[string]any
	suite.decode(w, &project)
	suite.Nil(project["category"])

	w = suite.do("GET", "/categories/1", token, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

// TestTags tests the tag endpoints
func (suite *RouterTestSuite) TestTags() {
	token := suite.register("Ada", "Lovelace", "ada@example.com")

	w := suite.do("POST", "/tags", token, map[string]any{"name": "urgent"})
	suite.Require().Equal(http.StatusCreated, w.Code)

	w = suite.do("POST", "/tags", token, map[string]any{"name": "urgent"})
	suite.Equal(http.StatusConflict, w.Code)

	w = suite.do("GET", "/tags", token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "urgent")
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func TestNewRouterRejectsEmptySecret(t *testing.T) {
	db, err := database.OpenInMemory()
	if err != nil {
		t.Fatal(err)
	}

	_, err = NewRouter(Options{DB: db, Auth: config.AuthConfig{TokenTTL: time.Hour}, Logger: log.New(io.Discard)})
	if err == nil {
		t.Fatal("expected an error for an empty signing secret")
	}
}
