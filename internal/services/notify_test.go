package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"storyhive/internal/db"
	"storyhive/internal/models"
)

func notifyTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func seedStoryWithOwner(t *testing.T, gdb *gorm.DB) (*models.Story, *models.User, *models.User) {
	t.Helper()
	owner := models.User{Name: "owner", Email: "owner@example.test", Password: "x", Role: models.RoleMember}
	actor := models.User{Name: "actor", Email: "actor@example.test", Password: "x", Role: models.RoleMember}
	require.NoError(t, gdb.Create(&owner).Error)
	require.NoError(t, gdb.Create(&actor).Error)
	story := models.Story{UserID: owner.ID, Title: "a story", Body: "text", IsPublished: true}
	require.NoError(t, gdb.Create(&story).Error)
	return &story, &owner, &actor
}

func TestNotifyStoryLiked(t *testing.T) {
	gdb := notifyTestDB(t)
	story, owner, actor := seedStoryWithOwner(t, gdb)

	require.NoError(t, NotifyStoryLiked(gdb, story, actor))

	var notification models.Notification
	require.NoError(t, gdb.First(&notification).Error)
	assert.Equal(t, owner.ID, notification.UserID)
	assert.Equal(t, actor.ID, *notification.ActorID)
	assert.Equal(t, models.NotificationTypeStoryLiked, notification.Type)
	assert.Contains(t, notification.Message, actor.Name)
	assert.Contains(t, notification.Message, story.Title)
}

func TestNotifyStoryLikedSkipsSelf(t *testing.T) {
	gdb := notifyTestDB(t)
	story, owner, _ := seedStoryWithOwner(t, gdb)

	require.NoError(t, NotifyStoryLiked(gdb, story, owner))

	var count int64
	gdb.Model(&models.Notification{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestNotifyTopLevelCommentGoesToStoryOwner(t *testing.T) {
	gdb := notifyTestDB(t)
	story, owner, actor := seedStoryWithOwner(t, gdb)

	comment := models.Comment{StoryID: story.ID, UserID: actor.ID, Body: "nice"}
	require.NoError(t, gdb.Create(&comment).Error)

	require.NoError(t, NotifyCommentCreated(gdb, &comment, story, actor))

	var notification models.Notification
	require.NoError(t, gdb.First(&notification).Error)
	assert.Equal(t, owner.ID, notification.UserID)
	assert.Equal(t, models.NotificationTypeCommentCreated, notification.Type)
}

func TestNotifyReplyGoesToParentAuthor(t *testing.T) {
	gdb := notifyTestDB(t)
	story, _, actor := seedStoryWithOwner(t, gdb)

	parentAuthor := models.User{Name: "parent", Email: "parent@example.test", Password: "x", Role: models.RoleMember}
	require.NoError(t, gdb.Create(&parentAuthor).Error)
	parent := models.Comment{StoryID: story.ID, UserID: parentAuthor.ID, Body: "root"}
	require.NoError(t, gdb.Create(&parent).Error)
	reply := models.Comment{StoryID: story.ID, UserID: actor.ID, ParentID: &parent.ID, Body: "reply", Depth: 1}
	require.NoError(t, gdb.Create(&reply).Error)

	require.NoError(t, NotifyCommentCreated(gdb, &reply, story, actor))

	var notification models.Notification
	require.NoError(t, gdb.First(&notification).Error)
	assert.Equal(t, parentAuthor.ID, notification.UserID)
	assert.Equal(t, models.NotificationTypeCommentReplied, notification.Type)
}

func TestNotifyReplySkipsSelfReply(t *testing.T) {
	gdb := notifyTestDB(t)
	story, _, actor := seedStoryWithOwner(t, gdb)

	parent := models.Comment{StoryID: story.ID, UserID: actor.ID, Body: "root"}
	require.NoError(t, gdb.Create(&parent).Error)
	reply := models.Comment{StoryID: story.ID, UserID: actor.ID, ParentID: &parent.ID, Body: "self reply", Depth: 1}
	require.NoError(t, gdb.Create(&reply).Error)

	require.NoError(t, NotifyCommentCreated(gdb, &reply, story, actor))

	var count int64
	gdb.Model(&models.Notification{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
