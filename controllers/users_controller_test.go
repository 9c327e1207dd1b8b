package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"Yatube/models"

	"github.com/stretchr/testify/assert"
)

func TestCreateUserValidation(t *testing.T) {
	_, r := newTestServer(t)

	body, _ := json.Marshal(map[string]string{
		"username": "shorty",
		"email":    "shorty@example.com",
		"password": "123",
	})
	req, _ := http.NewRequest(http.MethodPost, "/auth/signup/", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	_, r := newTestServer(t)
	signupAndLogin(t, r, "taken", "first@example.com", "password123")

	body, _ := json.Marshal(map[string]string{
		"username": "taken",
		"email":    "second@example.com",
		"password": "password123",
	})
	req, _ := http.NewRequest(http.MethodPost, "/auth/signup/", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	_, r := newTestServer(t)
	signupAndLogin(t, r, "someone", "someone@example.com", "password123")

	body, _ := json.Marshal(map[string]string{
		"email":    "someone@example.com",
		"password": "wrong-password",
	})
	req, _ := http.NewRequest(http.MethodPost, "/auth/login/", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestLoginFormCarriesNext(t *testing.T) {
	_, r := newTestServer(t)

	w, parsed := getJSON(t, r, "/auth/login/?next=/posts/1/comment", "")
	assert.Equal(t, http.StatusOK, w.Code)
	response := parsed["response"].(map[string]interface{})
	assert.Equal(t, "/posts/1/comment", response["next"])
}

func TestGetUserByIDOrUsername(t *testing.T) {
	_, r := newTestServer(t)
	userID, _ := signupAndLogin(t, r, "finder", "finder@example.com", "password123")

	w, parsed := getJSON(t, r, fmt.Sprintf("/users/%d", userID), "")
	assert.Equal(t, http.StatusOK, w.Code)
	response := parsed["response"].(map[string]interface{})
	assert.Equal(t, "finder", response["username"])

	w, parsed = getJSON(t, r, "/users/finder", "")
	assert.Equal(t, http.StatusOK, w.Code)
	response = parsed["response"].(map[string]interface{})
	assert.Equal(t, float64(userID), response["id"])
}

func TestUpdateUserRejectsOtherAccounts(t *testing.T) {
	_, r := newTestServer(t)
	targetID, _ := signupAndLogin(t, r, "target", "target@example.com", "password123")
	_, strangerToken := signupAndLogin(t, r, "stranger", "stranger@example.com", "password123")

	body, _ := json.Marshal(map[string]string{"email": "hijacked@example.com"})
	req, _ := http.NewRequest(http.MethodPut, fmt.Sprintf("/users/%d", targetID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+strangerToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeleteUserOrphansContent(t *testing.T) {
	server, r := newTestServer(t)
	writerID, writerToken := signupAndLogin(t, r, "writer", "writer@example.com", "password123")
	commenterID, _ := signupAndLogin(t, r, "commenter", "commenter@example.com", "password123")

	post := models.Post{Text: "Запись останется", AuthorID: &writerID}
	if err := server.DB.Create(&post).Error; err != nil {
		t.Fatalf("cannot create post: %v", err)
	}
	comment := models.Comment{Text: "И комментарий тоже", AuthorID: &writerID, PostID: &post.ID}
	if err := server.DB.Create(&comment).Error; err != nil {
		t.Fatalf("cannot create comment: %v", err)
	}
	follow := models.Follow{UserID: &commenterID, AuthorID: &writerID}
	if err := server.DB.Create(&follow).Error; err != nil {
		t.Fatalf("cannot create follow: %v", err)
	}

	req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("/users/%d", writerID), nil)
	req.Header.Set("Authorization", "Bearer "+writerToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var users int64
	server.DB.Model(&models.User{}).Where("id = ?", writerID).Count(&users)
	assert.Equal(t, int64(0), users)

	var reloadedPost models.Post
	server.DB.First(&reloadedPost, post.ID)
	assert.Equal(t, "Запись останется", reloadedPost.Text)
	assert.Nil(t, reloadedPost.AuthorID)

	var reloadedComment models.Comment
	server.DB.First(&reloadedComment, comment.ID)
	assert.Nil(t, reloadedComment.AuthorID)
}
