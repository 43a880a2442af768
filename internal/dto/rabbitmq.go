package dto

import "github.com/google/uuid"

type MQUserRelationsUpdatedMsg struct {
	UserID   uuid.UUID `json:"user_id"`
	Relation string    `json:"relation"` // follow | block | mute | interest
}

type MQCommentCreatedMsg struct {
	PostID int64 `json:"post_id"`
}
