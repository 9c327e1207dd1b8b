package controllers

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"os"
	"strings"

	"Yatube/models"
	"Yatube/utils/fileformat"
	"Yatube/utils/formaterror"
	httpctx "Yatube/utils/httpctx"

	aws2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
)

// CreateUser godoc
// @Summary      Sign up
// @Tags         users
// @Accept       json
// @Produce      json
// @Router       /auth/signup/ [post]
func (server *Server) CreateUser(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user.Prepare()
	errorMessages := user.Validate("")
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errorMessages})
		return
	}

	userCreated, err := user.SaveUser(server.DB)
	if err != nil {
		formattedError := formaterror.FormatError(err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"errors": formattedError})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":   http.StatusCreated,
		"response": userToResponse(userCreated),
	})
}

// GetUsers godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Router       /users/ [get]
func (server *Server) GetUsers(c *gin.Context) {
	user := models.User{}
	users, err := user.FindAllUsers(server.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No users found"})
		return
	}

	userResponses := make([]UserDTO, len(*users))
	for i := range *users {
		userResponses[i] = userToResponse(&(*users)[i])
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": userResponses,
	})
}

// GetUser godoc
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id  path  string  true  "User ID or username"
// @Router       /users/{id} [get]
func (server *Server) GetUser(c *gin.Context) {
	user, err := resolveUserByIdentifier(server.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": userToResponse(user),
	})
}

// UpdateUser godoc
// @Summary      Update own account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "User ID"
// @Router       /users/{id} [put]
// @Security     BearerAuth
func (server *Server) UpdateUser(c *gin.Context) {
	target, err := resolveUserByIdentifier(server.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	requestorID, ok := httpctx.CurrentUserID(c)
	if !ok || requestorID != target.ID {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Cannot unmarshal body"})
		return
	}

	user.Prepare()
	errorMessages := user.Validate("update")
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}

	userUpdated, err := user.UpdateAUser(server.DB, target.ID)
	if err != nil {
		formattedError := formaterror.FormatError(err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  formattedError,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": userToResponse(userUpdated),
	})
}

// UpdateAvatar godoc
// @Summary      Upload an avatar
// @Tags         users
// @Accept       mpfd
// @Produce      json
// @Param        id  path  string  true  "User ID"
// @Router       /users/{id}/avatar [put]
// @Security     BearerAuth
func (server *Server) UpdateAvatar(c *gin.Context) {
	target, err := resolveUserByIdentifier(server.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	requestorID, ok := httpctx.CurrentUserID(c)
	if !ok || requestorID != target.ID {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file"})
		return
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot open file"})
		return
	}
	defer f.Close()

	if file.Size > 512_000 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large (<500KB)"})
		return
	}

	buf := make([]byte, file.Size)
	if _, err := f.Read(buf); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read file"})
		return
	}
	fileType := http.DetectContentType(buf)
	if !strings.HasPrefix(fileType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Not an image"})
		return
	}

	key := "avatars/" + fileformat.UniqueFormat(file.Filename)

	rawBucket := os.Getenv("S3_BUCKET")
	if rawBucket == "" {
		if err := writeMediaFile(key, buf); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
			return
		}
	} else {
		bucketName := strings.SplitN(rawBucket, "/", 2)[0]
		region := os.Getenv("AWS_REGION")
		if region == "" {
			region = "us-east-2"
		}
		cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(region))
		if err != nil {
			log.Printf("AWS config load error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "AWS configuration error"})
			return
		}
		s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
			o.UsePathStyle = true
		})
		_, err = s3Client.PutObject(context.TODO(), &s3.PutObjectInput{
			Bucket:        aws2.String(bucketName),
			Key:           aws2.String(key),
			Body:          bytes.NewReader(buf),
			ContentLength: aws2.Int64(file.Size),
			ContentType:   aws2.String(fileType),
		})
		if err != nil {
			log.Printf("S3 upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
			return
		}
	}

	user := models.User{AvatarPath: key}
	updatedUser, err := user.UpdateAUserAvatar(server.DB, target.ID)
	if err != nil {
		log.Printf("DB update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot save image, please try again later"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": userToResponse(updatedUser),
	})
}

// DeleteUser godoc
// @Summary      Delete an account
// @Description  Self or admin. The account's posts and comments survive with a null author.
// @Tags         users
// @Produce      json
// @Param        id  path  string  true  "User ID"
// @Router       /users/{id} [delete]
// @Security     BearerAuth
func (server *Server) DeleteUser(c *gin.Context) {
	target, err := resolveUserByIdentifier(server.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	requestorID, ok := httpctx.CurrentUserID(c)
	if !ok || (requestorID != target.ID && !httpctx.IsAdminRequest(c)) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user := models.User{}
	if _, err := user.DeleteAUser(server.DB, target.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting user"})
		return
	}

	// The account's posts are now authorless everywhere.
	invalidateIndexFeed()
	invalidateAllFollowFeeds()

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "User deleted",
	})
}
