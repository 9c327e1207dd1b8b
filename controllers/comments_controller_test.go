package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"Yatube/models"

	"github.com/stretchr/testify/assert"
)

func TestAddComment(t *testing.T) {
	server, r := newTestServer(t)
	authorID, _ := signupAndLogin(t, r, "author", "author@example.com", "password123")
	commenterID, token := signupAndLogin(t, r, "commenter", "commenter@example.com", "password123")

	post := models.Post{Text: "Пост для комментариев", AuthorID: &authorID}
	if err := server.DB.Create(&post).Error; err != nil {
		t.Fatalf("cannot create post: %v", err)
	}

	w := postForm(t, r, fmt.Sprintf("/posts/%d/comment", post.ID), token, map[string]string{
		"text": "Отличный пост!",
	}, "", nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("/posts/%d/", post.ID), w.Header().Get("Location"))

	var comments []models.Comment
	server.DB.Find(&comments)
	if assert.Len(t, comments, 1) {
		assert.Equal(t, "Отличный пост!", comments[0].Text)
		if assert.NotNil(t, comments[0].AuthorID) {
			assert.Equal(t, commenterID, *comments[0].AuthorID)
		}
	}
}

func TestAddCommentRedirectsAnonymousToLogin(t *testing.T) {
	server, r := newTestServer(t)
	authorID, _ := signupAndLogin(t, r, "author", "author@example.com", "password123")

	post := models.Post{Text: "Пост для комментариев", AuthorID: &authorID}
	if err := server.DB.Create(&post).Error; err != nil {
		t.Fatalf("cannot create post: %v", err)
	}

	w := postForm(t, r, fmt.Sprintf("/posts/%d/comment", post.ID), "", map[string]string{
		"text": "Анонимный комментарий",
	}, "", nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("/auth/login/?next=/posts/%d/comment", post.ID), w.Header().Get("Location"))

	var count int64
	server.DB.Model(&models.Comment{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAddCommentRequiresText(t *testing.T) {
	server, r := newTestServer(t)
	authorID, token := signupAndLogin(t, r, "author", "author@example.com", "password123")

	post := models.Post{Text: "Пост для комментариев", AuthorID: &authorID}
	if err := server.DB.Create(&post).Error; err != nil {
		t.Fatalf("cannot create post: %v", err)
	}

	w := postForm(t, r, fmt.Sprintf("/posts/%d/comment", post.ID), token, map[string]string{
		"text": "",
	}, "", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var count int64
	server.DB.Model(&models.Comment{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestPostDetailListsComments(t *testing.T) {
	server, r := newTestServer(t)
	authorID, token := signupAndLogin(t, r, "author", "author@example.com", "password123")

	post := models.Post{Text: "Пост для комментариев", AuthorID: &authorID}
	if err := server.DB.Create(&post).Error; err != nil {
		t.Fatalf("cannot create post: %v", err)
	}

	for _, text := range []string{"Первый", "Второй"} {
		w := postForm(t, r, fmt.Sprintf("/posts/%d/comment", post.ID), token, map[string]string{"text": text}, "", nil)
		assert.Equal(t, http.StatusFound, w.Code)
	}

	w, parsed := getJSON(t, r, fmt.Sprintf("/posts/%d/", post.ID), "")
	assert.Equal(t, http.StatusOK, w.Code)
	response := parsed["response"].(map[string]interface{})
	comments := response["comments"].([]interface{})
	assert.Len(t, comments, 2)
}
