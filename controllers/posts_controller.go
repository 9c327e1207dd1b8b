package controllers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"Yatube/models"
	"Yatube/utils/fileformat"
	httpctx "Yatube/utils/httpctx"

	aws2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const maxPostImageSize = 5 << 20

// PostDetail godoc
// @Summary      Post detail
// @Description  A single post with its comments, newest comment first
// @Tags         posts
// @Produce      json
// @Param        id  path  int  true  "Post ID"
// @Router       /posts/{id}/ [get]
func (server *Server) PostDetail(c *gin.Context) {
	errList := map[string]string{}

	post, err := resolvePostByID(server.DB, c.Param("id"))
	if err != nil {
		respondPostLookupError(c, err, errList)
		return
	}

	comment := models.Comment{}
	comments, err := comment.GetPostComments(server.DB, post.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"post":     postToDTO(post),
			"comments": commentsToDTOs(*comments),
		},
	})
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Create a post from form fields: text (required), group (optional ID), image (optional file)
// @Tags         posts
// @Accept       mpfd
// @Produce      json
// @Router       /create/ [post]
// @Security     BearerAuth
func (server *Server) CreatePost(c *gin.Context) {
	errList := map[string]string{}

	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user := models.User{}
	author, err := user.FindUserByID(server.DB, uid)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	post := models.Post{}
	post.Text = c.PostForm("text")
	post.AuthorID = &author.ID

	groupID, ok := server.bindGroupField(c, errList)
	if !ok {
		return
	}
	post.GroupID = groupID

	post.Prepare()
	errorMessages := post.Validate()
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}

	if file, err := c.FormFile("image"); err == nil {
		imagePath, err := server.savePostImage(file)
		if err != nil {
			errList["Invalid_image"] = err.Error()
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"status": http.StatusUnprocessableEntity,
				"error":  errList,
			})
			return
		}
		post.ImagePath = imagePath
	}

	if _, err := post.SavePost(server.DB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving post"})
		return
	}

	server.invalidateAuthorFeeds(author.ID)
	c.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
}

// EditPost godoc
// @Summary      Edit a post
// @Description  Edit a post's text, group and image. A non-author is sent back to the detail view untouched.
// @Tags         posts
// @Accept       mpfd
// @Produce      json
// @Param        id  path  int  true  "Post ID"
// @Router       /posts/{id}/edit/ [post]
// @Security     BearerAuth
func (server *Server) EditPost(c *gin.Context) {
	errList := map[string]string{}

	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	post, err := resolvePostByID(server.DB, c.Param("id"))
	if err != nil {
		respondPostLookupError(c, err, errList)
		return
	}

	detailPath := fmt.Sprintf("/posts/%d/", post.ID)

	// Long-standing behavior: a non-author lands back on the detail page
	// with no change and no error.
	if post.AuthorID == nil || *post.AuthorID != uid {
		c.Redirect(http.StatusFound, detailPath)
		return
	}

	updated := models.Post{}
	updated.ID = post.ID
	updated.Text = c.PostForm("text")
	updated.ImagePath = post.ImagePath

	groupID, ok := server.bindGroupField(c, errList)
	if !ok {
		return
	}
	updated.GroupID = groupID

	updated.Prepare()
	errorMessages := updated.Validate()
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}

	if file, err := c.FormFile("image"); err == nil {
		imagePath, err := server.savePostImage(file)
		if err != nil {
			errList["Invalid_image"] = err.Error()
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"status": http.StatusUnprocessableEntity,
				"error":  errList,
			})
			return
		}
		updated.ImagePath = imagePath
	}

	if _, err := updated.UpdateAPost(server.DB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating post"})
		return
	}

	server.invalidateAuthorFeeds(uid)
	c.Redirect(http.StatusFound, detailPath)
}

// bindGroupField parses the optional "group" form field and checks the
// group exists. Writes the error response itself when the value is bad.
func (server *Server) bindGroupField(c *gin.Context, errList map[string]string) (*uint, bool) {
	raw := strings.TrimSpace(c.PostForm("group"))
	if raw == "" {
		return nil, true
	}
	gid, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		errList["Invalid_group"] = "Group must be a numeric ID"
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errList,
		})
		return nil, false
	}
	var group models.Group
	if err := server.DB.First(&group, uint(gid)).Error; err != nil {
		errList["Invalid_group"] = "No such group"
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errList,
		})
		return nil, false
	}
	id := uint(gid)
	return &id, true
}

// savePostImage stores the uploaded image under posts/ and returns the
// stored object name. Uploads go to S3 when S3_BUCKET is configured and
// to the local media directory otherwise.
func (server *Server) savePostImage(file *multipart.FileHeader) (string, error) {
	if file.Size > maxPostImageSize {
		return "", errors.New("image too large (max 5MB)")
	}
	f, err := file.Open()
	if err != nil {
		return "", errors.New("cannot open uploaded file")
	}
	defer f.Close()

	buf := make([]byte, file.Size)
	if _, err := f.Read(buf); err != nil {
		return "", errors.New("cannot read uploaded file")
	}
	fileType := http.DetectContentType(buf)
	if !strings.HasPrefix(fileType, "image/") {
		return "", errors.New("not an image")
	}

	key := "posts/" + fileformat.UniqueFormat(file.Filename)

	rawBucket := os.Getenv("S3_BUCKET")
	if rawBucket == "" {
		return key, writeMediaFile(key, buf)
	}
	bucketName := strings.SplitN(rawBucket, "/", 2)[0]

	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-2"
	}
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(region))
	if err != nil {
		log.Printf("AWS config load error: %v", err)
		return "", errors.New("storage configuration error")
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
		return "", errors.New("failed to upload image")
	}
	return key, nil
}

func writeMediaFile(key string, data []byte) error {
	root := os.Getenv("MEDIA_ROOT")
	if root == "" {
		root = "media"
	}
	target := filepath.Join(root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return errors.New("cannot create media directory")
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return errors.New("cannot write media file")
	}
	return nil
}

func respondPostLookupError(c *gin.Context, err error, errList map[string]string) {
	if errors.Is(err, errInvalidIdentifier) {
		errList["Invalid_request"] = "Invalid Request"
		c.JSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"error":  errList,
		})
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		errList["No_post"] = "No post found"
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  errList,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve post"})
}
