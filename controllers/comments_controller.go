package controllers

import (
	"fmt"
	"net/http"

	"Yatube/models"
	httpctx "Yatube/utils/httpctx"

	"github.com/gin-gonic/gin"
)

// AddComment godoc
// @Summary      Comment on a post
// @Description  Attach a comment (form field "text") to a post, then return to the detail view
// @Tags         comments
// @Accept       mpfd
// @Produce      json
// @Param        id  path  int  true  "Post ID"
// @Router       /posts/{id}/comment [post]
// @Security     BearerAuth
func (server *Server) AddComment(c *gin.Context) {
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

	comment := models.Comment{}
	comment.Text = c.PostForm("text")
	comment.AuthorID = &uid
	comment.PostID = &post.ID

	comment.Prepare()
	errorMessages := comment.Validate()
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}

	if _, err := comment.SaveComment(server.DB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving comment"})
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
}
