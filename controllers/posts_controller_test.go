package controllers_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"Yatube/models"

	"github.com/stretchr/testify/assert"
)

func TestCreatePostWithGroupAndImage(t *testing.T) {
	server, r := newTestServer(t)
	_, token := signupAndLogin(t, r, "testuser", "testuser@example.com", "password123")

	group := models.Group{Title: "Тестовая группа", Slug: "test-group", Description: "Описание"}
	if err := server.DB.Create(&group).Error; err != nil {
		t.Fatalf("cannot create group: %v", err)
	}

	w := postForm(t, r, "/create/", token, map[string]string{
		"text":  "Тестовый текст 2",
		"group": fmt.Sprintf("%d", group.ID),
	}, "picture.png", pngBytes)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/testuser/", w.Header().Get("Location"))

	var posts []models.Post
	if err := server.DB.Find(&posts).Error; err != nil {
		t.Fatalf("cannot load posts: %v", err)
	}
	assert.Len(t, posts, 1)
	assert.Equal(t, "Тестовый текст 2", posts[0].Text)
	if assert.NotNil(t, posts[0].GroupID) {
		assert.Equal(t, group.ID, *posts[0].GroupID)
	}
	assert.True(t, strings.HasPrefix(posts[0].ImagePath, "posts/"), "image should be stored under posts/, got %q", posts[0].ImagePath)
	assert.True(t, strings.HasSuffix(posts[0].ImagePath, ".png"))
}

func TestCreatePostRequiresText(t *testing.T) {
	server, r := newTestServer(t)
	_, token := signupAndLogin(t, r, "testuser", "testuser@example.com", "password123")

	w := postForm(t, r, "/create/", token, map[string]string{"text": "   "}, "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var count int64
	server.DB.Model(&models.Post{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestEditPostByAuthor(t *testing.T) {
	server, r := newTestServer(t)
	authorID, token := signupAndLogin(t, r, "author", "author@example.com", "password123")

	post := models.Post{Text: "Исходный текст", AuthorID: &authorID}
	if err := server.DB.Create(&post).Error; err != nil {
		t.Fatalf("cannot create post: %v", err)
	}

	w := postForm(t, r, fmt.Sprintf("/posts/%d/edit/", post.ID), token, map[string]string{
		"text": "Изменённый текст",
	}, "", nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("/posts/%d/", post.ID), w.Header().Get("Location"))

	var reloaded models.Post
	server.DB.First(&reloaded, post.ID)
	assert.Equal(t, "Изменённый текст", reloaded.Text)
}

func TestEditPostByNonAuthorLeavesPostUntouched(t *testing.T) {
	server, r := newTestServer(t)
	authorID, _ := signupAndLogin(t, r, "author", "author@example.com", "password123")
	_, strangerToken := signupAndLogin(t, r, "stranger", "stranger@example.com", "password123")

	post := models.Post{Text: "Исходный текст", AuthorID: &authorID}
	if err := server.DB.Create(&post).Error; err != nil {
		t.Fatalf("cannot create post: %v", err)
	}

	w := postForm(t, r, fmt.Sprintf("/posts/%d/edit/", post.ID), strangerToken, map[string]string{
		"text": "Попытка перезаписи",
	}, "", nil)

	// A non-author is sent back to the detail view, not an error page.
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("/posts/%d/", post.ID), w.Header().Get("Location"))

	var reloaded models.Post
	server.DB.First(&reloaded, post.ID)
	assert.Equal(t, "Исходный текст", reloaded.Text)
}

func TestCreatePostRejectsNonImageUpload(t *testing.T) {
	server, r := newTestServer(t)
	_, token := signupAndLogin(t, r, "testuser", "testuser@example.com", "password123")

	w := postForm(t, r, "/create/", token, map[string]string{
		"text": "Пост с неправильным файлом",
	}, "notes.txt", []byte("just some plain text, not an image at all"))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var count int64
	server.DB.Model(&models.Post{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
