package controllers

import (
	"net/http"

	"Yatube/models"

	"github.com/gin-gonic/gin"
)

// Profile godoc
// @Summary      Profile feed
// @Description  An author's posts, newest first, with a flag telling the viewer whether they follow this author
// @Tags         feeds
// @Produce      json
// @Param        username  path   string  true   "Author username"
// @Param        page      query  int     false  "Page number (1-indexed)"
// @Router       /profile/{username}/ [get]
func (server *Server) Profile(c *gin.Context) {
	author, err := resolveUserByUsername(server.DB, c.Param("username"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// Anonymous viewers always get following=false.
	following := false
	if viewerID, hasViewer := optionalViewerID(c); hasViewer {
		follow := models.Follow{}
		exists, err := follow.FollowExists(server.DB, viewerID, author.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking subscription"})
			return
		}
		following = exists
	}

	post := models.Post{}
	total, err := post.CountAuthorPosts(server.DB, author.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading posts"})
		return
	}
	page, pagination := resolvePage(c, total)
	posts, err := post.FindAuthorPosts(server.DB, author.ID, PageSize, pageOffset(page))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"author":     userToResponse(author),
			"following":  following,
			"posts":      postsToDTOs(*posts),
			"pagination": pagination,
		},
	})
}
