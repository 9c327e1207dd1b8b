package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"Yatube/cache"
	"Yatube/models"
	httpctx "Yatube/utils/httpctx"

	"github.com/gin-gonic/gin"
)

// Index godoc
// @Summary      Global feed
// @Description  All posts, newest first, paginated
// @Tags         feeds
// @Produce      json
// @Param        page  query  int  false  "Page number (1-indexed)"
// @Router       / [get]
func (server *Server) Index(c *gin.Context) {
	pageParam := c.DefaultQuery("page", "1")
	cacheKey := indexFeedCacheKey(pageParam)
	ctx := context.Background()
	if cached, err := cache.Get(ctx, cacheKey); err == nil && cached != "" {
		c.Data(http.StatusOK, "application/json", []byte(cached))
		return
	}

	post := models.Post{}
	total, err := post.CountAllPosts(server.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading posts"})
		return
	}
	page, pagination := resolvePage(c, total)
	posts, err := post.FindAllPosts(server.DB, PageSize, pageOffset(page))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading posts"})
		return
	}

	envelope := gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"title":      "Latest updates",
			"text":       "Recent posts from every author",
			"posts":      postsToDTOs(*posts),
			"pagination": pagination,
		},
	}
	if jsonBytes, err := json.Marshal(envelope); err == nil {
		_ = cache.Set(ctx, cacheKey, jsonBytes, feedCacheTTL)
	}
	c.JSON(http.StatusOK, envelope)
}

// FollowIndex godoc
// @Summary      Follow feed
// @Description  Posts by authors the current user follows, newest first
// @Tags         feeds
// @Produce      json
// @Param        page  query  int  false  "Page number (1-indexed)"
// @Router       /follow/ [get]
// @Security     BearerAuth
func (server *Server) FollowIndex(c *gin.Context) {
	uid, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	pageParam := c.DefaultQuery("page", "1")
	cacheKey := followFeedCacheKey(uid, pageParam)
	ctx := context.Background()
	if cached, err := cache.Get(ctx, cacheKey); err == nil && cached != "" {
		c.Data(http.StatusOK, "application/json", []byte(cached))
		return
	}

	post := models.Post{}
	total, err := post.CountFollowPosts(server.DB, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading posts"})
		return
	}
	page, pagination := resolvePage(c, total)
	posts, err := post.FindFollowPosts(server.DB, uid, PageSize, pageOffset(page))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading posts"})
		return
	}

	envelope := gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"title":      "News feed",
			"text":       "Latest posts from authors you follow",
			"posts":      postsToDTOs(*posts),
			"pagination": pagination,
		},
	}
	if jsonBytes, err := json.Marshal(envelope); err == nil {
		_ = cache.Set(ctx, cacheKey, jsonBytes, feedCacheTTL)
	}
	c.JSON(http.StatusOK, envelope)
}
