package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	POST_TYPE_TEXT  = "text"
	POST_TYPE_IMAGE = "image"
	POST_TYPE_VIDEO = "video"
	POST_TYPE_AUDIO = "audio"
)

type Post struct {
	ID            int64     `json:"id"`
	AuthorID      uuid.UUID `json:"author_id"`
	Content       string    `json:"content"`
	Type          string    `json:"type"`
	Tags          []string  `json:"tags"`
	LikesCount    int64     `json:"likes_count"`
	CommentsCount int64     `json:"comments_count"`
	SharesCount   int64     `json:"shares_count"`
	IsPinned      bool      `json:"is_pinned"`
	AIGenerated   bool      `json:"ai_generated"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type FullPost struct {
	Post   Post       `json:"post"`
	Author UserAuthor `json:"author"`
}
