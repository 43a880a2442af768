package redisrepo

import "fmt"

const (
	POST_KEY           = "post:%d"             // <postID>
	VIEWER_PROFILE_KEY = "viewer-profile:%s"   // <userID>
	FEED_PAGE_KEY      = "feed:%s:%s:%s:%d:%d" // <viewerID>:<mode>:<timeRange>:<page>:<limit>
	FEED_VIEWER_GLOB   = "feed:%s:*"           // <viewerID>
	USER_CACHE_KEY     = "user-cache:%s"       // <userID>
)

func PostKey(postID int64) string {
	return fmt.Sprintf(POST_KEY, postID)
}

func ViewerProfileKey(userID string) string {
	return fmt.Sprintf(VIEWER_PROFILE_KEY, userID)
}

func FeedPageKey(viewerID string, mode string, timeRange string, page int, limit int) string {
	return fmt.Sprintf(FEED_PAGE_KEY, viewerID, mode, timeRange, page, limit)
}

func FeedViewerGlob(viewerID string) string {
	return fmt.Sprintf(FEED_VIEWER_GLOB, viewerID)
}

func UserCacheKey(userID string) string {
	return fmt.Sprintf(USER_CACHE_KEY, userID)
}
