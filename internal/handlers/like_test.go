package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storyhive/internal/db"
	"storyhive/internal/models"
)

type likeResult struct {
	StoryID    uint  `json:"story_id"`
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}

func TestLikeToggleAlternates(t *testing.T) {
	r := setupRouter(t)
	author := createUser(t, "alice", models.RoleMember)
	story := createStory(t, author, "story", true)
	token := authToken(t, author)

	w, env := doJSON(t, r, "POST", "/api/stories/1/likes/toggle", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Like added", env.Message)

	var result likeResult
	decodeData(t, env, &result)
	assert.True(t, result.Liked)
	assert.Equal(t, int64(1), result.LikesCount)

	var fresh models.Story
	require.NoError(t, db.DB.First(&fresh, story.ID).Error)
	assert.Equal(t, 1, fresh.LikesCount)

	w, env = doJSON(t, r, "POST", "/api/stories/1/likes/toggle", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Like removed", env.Message)

	decodeData(t, env, &result)
	assert.False(t, result.Liked)
	assert.Equal(t, int64(0), result.LikesCount)

	require.NoError(t, db.DB.First(&fresh, story.ID).Error)
	assert.Equal(t, 0, fresh.LikesCount)

	var likeRows int64
	db.DB.Model(&models.Like{}).Where("story_id = ?", story.ID).Count(&likeRows)
	assert.Equal(t, int64(0), likeRows)
}

func TestLikeCountsMultipleUsers(t *testing.T) {
	r := setupRouter(t)
	author := createUser(t, "alice", models.RoleMember)
	createStory(t, author, "story", true)

	// Both users like their own visible story; the count reflects distinct
	// likers, one row each.
	w, env := doJSON(t, r, "POST", "/api/stories/1/likes/toggle", nil, authToken(t, author))
	require.Equal(t, http.StatusOK, w.Code)

	bob := createUser(t, "bob", models.RoleMember)
	w, env = doJSON(t, r, "POST", "/api/stories/1/likes/toggle", nil, authToken(t, bob))
	require.Equal(t, http.StatusOK, w.Code)

	var result likeResult
	decodeData(t, env, &result)
	assert.True(t, result.Liked)
	assert.Equal(t, int64(2), result.LikesCount)
}

func TestLikeRequiresAuth(t *testing.T) {
	r := setupRouter(t)
	author := createUser(t, "alice", models.RoleMember)
	createStory(t, author, "story", true)

	w, _ := doJSON(t, r, "POST", "/api/stories/1/likes/toggle", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLikeMissingStory(t *testing.T) {
	r := setupRouter(t)
	user := createUser(t, "alice", models.RoleMember)

	w, _ := doJSON(t, r, "POST", "/api/stories/42/likes/toggle", nil, authToken(t, user))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
