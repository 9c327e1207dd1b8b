package controllers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"Yatube/models"

	"github.com/stretchr/testify/assert"
)

func TestGroupFeedPagination(t *testing.T) {
	server, r := newTestServer(t)
	authorID, _ := signupAndLogin(t, r, "writer", "writer@example.com", "password123")

	group := models.Group{Title: "Тестовая группа", Slug: "test-group", Description: "Описание"}
	if err := server.DB.Create(&group).Error; err != nil {
		t.Fatalf("cannot create group: %v", err)
	}

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 13; i++ {
		post := models.Post{
			Text:      fmt.Sprintf("Пост %d", i+1),
			AuthorID:  &authorID,
			GroupID:   &group.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := server.DB.Create(&post).Error; err != nil {
			t.Fatalf("cannot create post %d: %v", i+1, err)
		}
	}

	w, parsed := getJSON(t, r, "/group/test-group/?page=1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	response := parsed["response"].(map[string]interface{})
	assert.Len(t, response["posts"].([]interface{}), 10)
	pagination := response["pagination"].(map[string]interface{})
	assert.Equal(t, float64(2), pagination["num_pages"])
	assert.Equal(t, float64(13), pagination["total"])

	w, parsed = getJSON(t, r, "/group/test-group/?page=2", "")
	assert.Equal(t, http.StatusOK, w.Code)
	response = parsed["response"].(map[string]interface{})
	assert.Len(t, response["posts"].([]interface{}), 3)

	// Out-of-range pages are clamped to the last page, not returned empty.
	w, parsed = getJSON(t, r, "/group/test-group/?page=99", "")
	assert.Equal(t, http.StatusOK, w.Code)
	response = parsed["response"].(map[string]interface{})
	assert.Len(t, response["posts"].([]interface{}), 3)
	pagination = response["pagination"].(map[string]interface{})
	assert.Equal(t, float64(2), pagination["page"])

	// Malformed page values fall back to the first page.
	w, parsed = getJSON(t, r, "/group/test-group/?page=abc", "")
	assert.Equal(t, http.StatusOK, w.Code)
	response = parsed["response"].(map[string]interface{})
	assert.Len(t, response["posts"].([]interface{}), 10)
}

func TestGroupFeedUnknownSlug(t *testing.T) {
	_, r := newTestServer(t)

	w, _ := getJSON(t, r, "/group/no-such-group/", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIndexOrdersNewestFirst(t *testing.T) {
	server, r := newTestServer(t)
	authorID, _ := signupAndLogin(t, r, "writer", "writer@example.com", "password123")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		post := models.Post{
			Text:      fmt.Sprintf("Пост %d", i+1),
			AuthorID:  &authorID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := server.DB.Create(&post).Error; err != nil {
			t.Fatalf("cannot create post %d: %v", i+1, err)
		}
	}

	w, parsed := getJSON(t, r, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	response := parsed["response"].(map[string]interface{})
	posts := response["posts"].([]interface{})
	if assert.Len(t, posts, 5) {
		var previous time.Time
		for i, raw := range posts {
			entry := raw.(map[string]interface{})
			createdAt, err := time.Parse(time.RFC3339Nano, entry["created_at"].(string))
			if err != nil {
				t.Fatalf("cannot parse created_at: %v", err)
			}
			if i > 0 {
				assert.False(t, createdAt.After(previous), "posts should be ordered newest first")
			}
			previous = createdAt
		}
		newest := posts[0].(map[string]interface{})
		assert.Equal(t, "Пост 5", newest["text"])
	}
}
