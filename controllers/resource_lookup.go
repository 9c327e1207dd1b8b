package controllers

import (
	"errors"
	"strconv"
	"strings"

	"Yatube/auth"
	"Yatube/models"
	httpctx "Yatube/utils/httpctx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var errInvalidIdentifier = errors.New("invalid identifier")

func resolvePostByID(db *gorm.DB, identifier string) (*models.Post, error) {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return nil, errInvalidIdentifier
	}
	pid, err := strconv.ParseUint(trimmed, 10, 32)
	if err != nil {
		return nil, errInvalidIdentifier
	}
	post := models.Post{}
	return post.FindPostByID(db, uint(pid))
}

func resolveGroupBySlug(db *gorm.DB, slug string) (*models.Group, error) {
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return nil, errInvalidIdentifier
	}
	group := models.Group{}
	return group.FindGroupBySlug(db, trimmed)
}

func resolveUserByUsername(db *gorm.DB, username string) (*models.User, error) {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" {
		return nil, errInvalidIdentifier
	}
	user := models.User{}
	return user.FindUserByUsername(db, trimmed)
}

// resolveUserByIdentifier accepts either a numeric ID or a username, for
// the /users/:id routes.
func resolveUserByIdentifier(db *gorm.DB, identifier string) (*models.User, error) {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return nil, errInvalidIdentifier
	}
	if uid, err := strconv.ParseUint(trimmed, 10, 32); err == nil {
		user := models.User{}
		return user.FindUserByID(db, uint(uid))
	}
	return resolveUserByUsername(db, trimmed)
}

// optionalViewerID identifies the requester on routes that work both
// authenticated and anonymous, like the profile page.
func optionalViewerID(c *gin.Context) (uint, bool) {
	if uid, ok := httpctx.CurrentUserID(c); ok {
		return uid, true
	}
	uid, err := auth.ExtractTokenID(c.Request)
	if err != nil {
		return 0, false
	}
	return uid, true
}
