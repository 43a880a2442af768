package service

import (
	"context"

	"github.com/Twinen/feed-service/internal/dto"
	"github.com/Twinen/feed-service/internal/feed"
	"github.com/Twinen/feed-service/internal/model"
	"github.com/Twinen/feed-service/internal/rabbitmq"
	"github.com/Twinen/feed-service/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DEFAULT_LIMIT = 10
	MAX_LIMIT     = 50
)

func maxLimit(limit *int) {
	if *limit > MAX_LIMIT {
		*limit = MAX_LIMIT
	}
}

type Feed interface {
	GetFeed(ctx context.Context, viewerID *uuid.UUID, mode feed.Mode, timeRange string, page int, limit int) (*dto.FeedResponse, error)
	StartConsumeRelationUpdates(ctx context.Context)
}

type Post interface {
	Create(ctx context.Context, authorID uuid.UUID, dto dto.CreatePostRequest) (*model.Post, error)
	FindByID(ctx context.Context, id int64) (*model.FullPost, error)
	IsLiked(ctx context.Context, postID int64, userID uuid.UUID) bool
	Like(ctx context.Context, postID int64, userID uuid.UUID, unlike bool) error
	Repost(ctx context.Context, postID int64, userID uuid.UUID) error
	Bookmark(ctx context.Context, postID int64, userID uuid.UUID) error
	StartConsumeCommentEvents(ctx context.Context)
}

type UserCache interface {
	CreateOrGet(ctx context.Context, id uuid.UUID, accessToken string) (*model.CachedUser, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.CachedUser, error)
	StartConsumeUpdates(ctx context.Context)
}

type Service struct {
	Feed
	Post
	UserCache
}

func New(logger *zap.Logger, repo *repository.Repository, rabbitmq *rabbitmq.MQConn) *Service {
	return &Service{
		Feed:      newFeedService(logger, repo, rabbitmq, feed.NewEngine()),
		Post:      newPostService(logger, repo, rabbitmq),
		UserCache: newUserCacheService(logger, repo, rabbitmq),
	}
}

func (s *Service) StartConsumeAll(ctx context.Context) {
	go s.Feed.StartConsumeRelationUpdates(ctx)
	go s.Post.StartConsumeCommentEvents(ctx)
	go s.UserCache.StartConsumeUpdates(ctx)
}
