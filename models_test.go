package bloglist_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bloglist "github.com/goliatone/go-bloglist"
)

func TestUserOwns(t *testing.T) {
	mine := uuid.New()
	user := &bloglist.User{ID: uuid.New(), BlogIDs: []uuid.UUID{mine}}

	assert.True(t, user.Owns(mine))
	assert.False(t, user.Owns(uuid.New()))

	empty := &bloglist.User{ID: uuid.New()}
	assert.False(t, empty.Owns(mine))
}

func TestUserSerializationHidesCredentials(t *testing.T) {
	user := &bloglist.User{
		ID:           uuid.New(),
		Username:     "mluukkai",
		Name:         "Matti Luukkainen",
		PasswordHash: "$2a$10$secret",
		BlogIDs:      []uuid.UUID{uuid.New()},
	}

	raw, err := json.Marshal(user)
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))

	assert.Equal(t, "mluukkai", payload["username"])
	assert.NotContains(t, payload, "password_hash")
	assert.NotContains(t, payload, "passwordHash")
	assert.NotContains(t, payload, "blog_ids")
	assert.NotContains(t, string(raw), "secret")
}

func TestBlogSerializationKeepsZeroLikes(t *testing.T) {
	blog := &bloglist.Blog{
		ID:    uuid.New(),
		Title: "TDD harms architecture",
		URL:   "http://blog.cleancoder.com/",
		Likes: 0,
	}

	raw, err := json.Marshal(blog)
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))

	likes, ok := payload["likes"]
	require.True(t, ok, "likes should serialize even at zero")
	assert.Equal(t, float64(0), likes)
}
