package controllers

import (
	"errors"
	"net/http"

	"Yatube/models"
	"Yatube/utils/formaterror"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GroupPosts godoc
// @Summary      Group feed
// @Description  Posts attached to the group identified by its slug, newest first
// @Tags         feeds
// @Produce      json
// @Param        slug  path   string  true   "Group slug"
// @Param        page  query  int     false  "Page number (1-indexed)"
// @Router       /group/{slug}/ [get]
func (server *Server) GroupPosts(c *gin.Context) {
	errList := map[string]string{}

	group, err := resolveGroupBySlug(server.DB, c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, errInvalidIdentifier) {
			errList["No_group"] = "No group found"
			c.JSON(http.StatusNotFound, gin.H{
				"status": http.StatusNotFound,
				"error":  errList,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve group"})
		return
	}

	post := models.Post{}
	total, err := post.CountGroupPosts(server.DB, group.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading posts"})
		return
	}
	page, pagination := resolvePage(c, total)
	posts, err := post.FindGroupPosts(server.DB, group.ID, PageSize, pageOffset(page))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"group":      groupToDTO(group),
			"posts":      postsToDTOs(*posts),
			"pagination": pagination,
		},
	})
}

// GetGroups godoc
// @Summary      List groups
// @Tags         groups
// @Produce      json
// @Router       /groups/ [get]
func (server *Server) GetGroups(c *gin.Context) {
	group := models.Group{}
	groups, err := group.FindAllGroups(server.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading groups"})
		return
	}

	groupResponses := make([]*GroupDTO, len(*groups))
	for i := range *groups {
		groupResponses[i] = groupToDTO(&(*groups)[i])
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": groupResponses,
	})
}

// CreateGroup godoc
// @Summary      Create a group
// @Description  Admin-only: create a topic with a unique URL slug
// @Tags         groups
// @Accept       json
// @Produce      json
// @Router       /groups/ [post]
// @Security     BearerAuth
func (server *Server) CreateGroup(c *gin.Context) {
	var group models.Group
	if err := c.ShouldBindJSON(&group); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Cannot unmarshal body"})
		return
	}

	group.Prepare()
	errorMessages := group.Validate()
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}

	groupCreated, err := group.SaveGroup(server.DB)
	if err != nil {
		formattedError := formaterror.FormatError(err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  formattedError,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":   http.StatusCreated,
		"response": groupToDTO(groupCreated),
	})
}

// UpdateGroup godoc
// @Summary      Edit a group
// @Description  Admin-only: explicit edit of a group's title, slug and description
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        slug  path  string  true  "Group slug"
// @Router       /group/{slug}/ [put]
// @Security     BearerAuth
func (server *Server) UpdateGroup(c *gin.Context) {
	group, err := resolveGroupBySlug(server.DB, c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No group found"})
		return
	}

	var changes models.Group
	if err := c.ShouldBindJSON(&changes); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Cannot unmarshal body"})
		return
	}

	changes.ID = group.ID
	changes.Prepare()
	errorMessages := changes.Validate()
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}

	groupUpdated, err := changes.UpdateAGroup(server.DB)
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
		"response": groupToDTO(groupUpdated),
	})
}

// DeleteGroup godoc
// @Summary      Delete a group
// @Description  Admin-only: delete a group. Its posts survive with a null group reference.
// @Tags         groups
// @Produce      json
// @Param        slug  path  string  true  "Group slug"
// @Router       /group/{slug}/ [delete]
// @Security     BearerAuth
func (server *Server) DeleteGroup(c *gin.Context) {
	group, err := resolveGroupBySlug(server.DB, c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No group found"})
		return
	}

	if _, err := group.DeleteAGroup(server.DB, group.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting group"})
		return
	}

	// Orphaned posts render without a group now, so cached feed pages
	// are stale.
	invalidateIndexFeed()
	invalidateAllFollowFeeds()

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Group deleted",
	})
}
