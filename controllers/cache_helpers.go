package controllers

import (
	"context"
	"fmt"
	"time"

	"Yatube/cache"
	"Yatube/models"
)

const feedCacheTTL = 60 * time.Second

// Feed pages are cached read-through and invalidated on the write path:
// a post mutation clears the global feed and the follow feeds of the
// author's followers; a subscription change clears only that follower's
// feed. Pages may be up to feedCacheTTL stale only if an invalidation is
// missed (e.g. redis restart); the database is always authoritative.

func indexFeedCacheKey(pageParam string) string {
	return "feed:index:" + pageParam
}

func followFeedCacheKey(userID uint, pageParam string) string {
	return fmt.Sprintf("feed:follow:%d:%s", userID, pageParam)
}

func invalidateIndexFeed() {
	_ = cache.DeleteByPrefix(context.Background(), "feed:index:")
}

func invalidateFollowFeed(userID uint) {
	if userID == 0 {
		return
	}
	_ = cache.DeleteByPrefix(context.Background(), fmt.Sprintf("feed:follow:%d:", userID))
}

func invalidateAllFollowFeeds() {
	_ = cache.DeleteByPrefix(context.Background(), "feed:follow:")
}

// invalidateAuthorFeeds runs after a change to an author's posts.
func (server *Server) invalidateAuthorFeeds(authorID uint) {
	invalidateIndexFeed()
	if authorID == 0 {
		return
	}
	followerIDs, err := (&models.Follow{}).FollowerIDs(server.DB, authorID)
	if err != nil {
		// Losing track of exact followers makes the blanket clear the
		// safe fallback.
		invalidateAllFollowFeeds()
		return
	}
	for _, id := range followerIDs {
		invalidateFollowFeed(id)
	}
}
