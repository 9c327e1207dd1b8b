package controllers

import (
	"errors"
	"net/http"

	"Yatube/models"
	httpctx "Yatube/utils/httpctx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProfileFollow godoc
// @Summary      Follow an author
// @Description  Subscribe the current user to an author. Following twice is a no-op.
// @Tags         follows
// @Produce      json
// @Param        username  path  string  true  "Author username"
// @Router       /profile/{username}/follow/ [post]
// @Security     BearerAuth
func (server *Server) ProfileFollow(c *gin.Context) {
	requestorID, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	author, err := resolveUserByUsername(server.DB, c.Param("username"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	created := false
	err = server.DB.Transaction(func(tx *gorm.DB) error {
		follow := models.Follow{
			UserID:   &requestorID,
			AuthorID: &author.ID,
		}
		rowCreated, err := follow.SaveFollow(tx)
		if err != nil {
			return err
		}
		if !rowCreated {
			// Duplicate pair: nothing inserted, nothing to count.
			return nil
		}
		created = true

		if err := tx.Model(&models.User{}).
			Where("id = ?", requestorID).
			UpdateColumn("following_count", gorm.Expr("following_count + 1")).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", author.ID).
			UpdateColumn("followers_count", gorm.Expr("followers_count + 1")).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error following user"})
		return
	}

	if created {
		invalidateFollowFeed(requestorID)
	}
	c.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
}

// ProfileUnfollow godoc
// @Summary      Unfollow an author
// @Description  Remove the current user's subscription to an author. 404 when not subscribed.
// @Tags         follows
// @Produce      json
// @Param        username  path  string  true  "Author username"
// @Router       /profile/{username}/unfollow/ [post]
// @Security     BearerAuth
func (server *Server) ProfileUnfollow(c *gin.Context) {
	errList := map[string]string{}

	requestorID, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	author, err := resolveUserByUsername(server.DB, c.Param("username"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	err = server.DB.Transaction(func(tx *gorm.DB) error {
		follow := models.Follow{}
		deleted, err := follow.DeleteFollow(tx, requestorID, author.ID)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Model(&models.User{}).
			Where("id = ? AND following_count > 0", requestorID).
			UpdateColumn("following_count", gorm.Expr("following_count - 1")).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ? AND followers_count > 0", author.ID).
			UpdateColumn("followers_count", gorm.Expr("followers_count - 1")).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		errList["No_follow"] = "Not following this author"
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  errList,
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error unfollowing user"})
		return
	}

	invalidateFollowFeed(requestorID)
	c.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
}
