package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"Yatube/controllers"
	"Yatube/middlewares"
	"Yatube/models"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// pngBytes is a minimal payload http.DetectContentType reports as image/png.
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)

// newTestServer wires a server against an in-memory SQLite database with
// the same routes and middlewares the real router carries.
func newTestServer(t *testing.T) (*controllers.Server, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	os.Setenv("API_SECRET", "test-secret")
	os.Setenv("MEDIA_ROOT", t.TempDir())
	os.Unsetenv("S3_BUCKET")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Group{}, &models.Post{}, &models.Comment{}, &models.Follow{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	r := gin.Default()
	server := &controllers.Server{DB: db, Router: r}

	r.GET("/", server.Index)
	r.GET("/group/:slug/", server.GroupPosts)
	r.GET("/profile/:username/", server.Profile)
	r.GET("/posts/:id/", server.PostDetail)
	r.GET("/follow/", middlewares.LoginRequiredMiddleware(db), server.FollowIndex)
	r.POST("/create/", middlewares.LoginRequiredMiddleware(db), server.CreatePost)
	r.POST("/posts/:id/edit/", middlewares.LoginRequiredMiddleware(db), server.EditPost)
	r.POST("/posts/:id/comment", middlewares.LoginRequiredMiddleware(db), server.AddComment)
	r.POST("/profile/:username/follow/", middlewares.LoginRequiredMiddleware(db), server.ProfileFollow)
	r.POST("/profile/:username/unfollow/", middlewares.LoginRequiredMiddleware(db), server.ProfileUnfollow)
	r.POST("/auth/signup/", server.CreateUser)
	r.POST("/auth/login/", server.Login)
	r.GET("/auth/login/", server.LoginForm)
	r.GET("/users/", server.GetUsers)
	r.GET("/users/:id", server.GetUser)
	r.PUT("/users/:id", middlewares.TokenAuthMiddleware(db), server.UpdateUser)
	r.PUT("/users/:id/avatar", middlewares.TokenAuthMiddleware(db), server.UpdateAvatar)
	r.DELETE("/users/:id", middlewares.TokenAuthMiddleware(db), server.DeleteUser)

	return server, r
}

func signupAndLogin(t *testing.T, r *gin.Engine, username, email, password string) (uint, string) {
	t.Helper()

	signupBody, _ := json.Marshal(map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	req, _ := http.NewRequest(http.MethodPost, "/auth/signup/", bytes.NewBuffer(signupBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("signup for %s failed with status %d: %s", username, w.Code, w.Body.String())
	}

	var signupResponse map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &signupResponse)
	userID := uint(signupResponse["response"].(map[string]interface{})["id"].(float64))

	loginBody, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	loginReq, _ := http.NewRequest(http.MethodPost, "/auth/login/", bytes.NewBuffer(loginBody))
	loginReq.Header.Set("Content-Type", "application/json")
	loginW := httptest.NewRecorder()
	r.ServeHTTP(loginW, loginReq)
	if loginW.Code != http.StatusOK {
		t.Fatalf("login for %s failed with status %d: %s", username, loginW.Code, loginW.Body.String())
	}

	var loginResponse map[string]interface{}
	_ = json.Unmarshal(loginW.Body.Bytes(), &loginResponse)
	token, ok := loginResponse["response"].(map[string]interface{})["token"].(string)
	if !ok {
		t.Fatalf("Token not found in login response")
	}
	return userID, token
}

// buildForm assembles a multipart form body, optionally attaching an
// image file under the "image" field.
func buildForm(t *testing.T, fields map[string]string, imageName string, image []byte) (io.Reader, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write form field %s: %v", key, err)
		}
	}
	if imageName != "" {
		part, err := writer.CreateFormFile("image", imageName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(image); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func postForm(t *testing.T, r *gin.Engine, path, token string, fields map[string]string, imageName string, image []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := buildForm(t, fields, imageName, image)
	req, _ := http.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getJSON(t *testing.T, r *gin.Engine, path, token string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &parsed)
	return w, parsed
}
