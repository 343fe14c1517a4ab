package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"storyhive/internal/db"
	"storyhive/internal/handlers"
	"storyhive/internal/middleware"
	"storyhive/internal/models"
	"storyhive/internal/router"
	"storyhive/internal/utils"
)

// envelope mirrors the JSON body every endpoint returns.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    *handlers.Meta  `json:"meta"`
}

// setupRouter gives each test a fresh in-memory database and a fully wired
// engine. The cache is purged because row ids repeat across databases.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	db.DB = gdb

	utils.GetCache().Purge()

	r := gin.New()
	r.Use(middleware.LoadUser())
	router.RegisterRoutes(r)
	return r
}

func createUser(t *testing.T, name, role string) *models.User {
	t.Helper()
	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)
	user := models.User{
		Name:     name,
		Email:    fmt.Sprintf("%s@example.test", name),
		Password: hash,
		Role:     role,
	}
	require.NoError(t, db.DB.Create(&user).Error)
	return &user
}

func authToken(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := middleware.GenerateToken(user.ID)
	require.NoError(t, err)
	return token
}

func createStory(t *testing.T, author *models.User, title string, published bool) *models.Story {
	t.Helper()
	story := models.Story{
		UserID:      author.ID,
		Title:       title,
		Body:        "Once upon a time.",
		IsPublished: published,
	}
	require.NoError(t, db.DB.Create(&story).Error)
	return &story
}

func createComment(t *testing.T, story *models.Story, author *models.User, parentID *uint, depth int, body string) *models.Comment {
	t.Helper()
	comment := models.Comment{
		StoryID:  story.ID,
		UserID:   author.ID,
		ParentID: parentID,
		Body:     body,
		Depth:    depth,
	}
	require.NoError(t, db.DB.Create(&comment).Error)
	return &comment
}

// doJSON performs a request against the engine and decodes the envelope.
func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env),
			"response was not a JSON envelope: %s", w.Body.String())
	}
	return w, env
}

func decodeData(t *testing.T, env envelope, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, out))
}
