package dto

import "github.com/Twinen/feed-service/internal/model"

type GetPost struct {
	Post    model.FullPost `json:"post"`
	IsLiked bool           `json:"is_liked"`
}
