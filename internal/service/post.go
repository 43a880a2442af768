package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Twinen/feed-service/internal/dto"
	"github.com/Twinen/feed-service/internal/model"
	"github.com/Twinen/feed-service/internal/rabbitmq"
	"github.com/Twinen/feed-service/internal/repository"
	"github.com/Twinen/feed-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type postService struct {
	logger   *zap.Logger
	repo     *repository.Repository
	rabbitmq *rabbitmq.MQConn
}

func newPostService(logger *zap.Logger, repo *repository.Repository, rabbitmq *rabbitmq.MQConn) Post {
	return &postService{
		logger:   logger,
		repo:     repo,
		rabbitmq: rabbitmq,
	}
}

func (s *postService) Create(ctx context.Context, authorID uuid.UUID, dto dto.CreatePostRequest) (*model.Post, error) {
	post := model.Post{
		AuthorID:    authorID,
		Content:     dto.Content,
		Type:        dto.Type,
		Tags:        dto.Tags,
		AIGenerated: dto.AIGenerated,
	}

	createdPost, err := s.repo.Postgres.Post.Create(ctx, post)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) post: %s", authorID.String(), err.Error())
		return nil, ErrInternal
	}

	return createdPost, nil
}

func (s *postService) FindByID(ctx context.Context, id int64) (*model.FullPost, error) {
	cachedPost, err := redisrepo.Get[model.FullPost](s.repo.Redis.Default, ctx, redisrepo.PostKey(id))
	if err == nil {
		return cachedPost, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get post(%d) from redis: %s", id, err.Error())
		return nil, ErrInternal
	}

	post, err := s.repo.Postgres.Post.FindByID(ctx, id)
	if err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to find post(%d) from postgres: %s", id, err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.PostKey(id), post, time.Hour); err != nil {
		s.logger.Sugar().Errorf("failed to set post(%d) in redis: %s", id, err.Error())
		return nil, ErrInternal
	}

	return post, nil
}

func (s *postService) IsLiked(ctx context.Context, postID int64, userID uuid.UUID) bool {
	return s.repo.Postgres.Post.IsLiked(ctx, postID, userID)
}

func (s *postService) Like(ctx context.Context, postID int64, userID uuid.UUID, unlike bool) error {
	if err := s.repo.Postgres.Post.Like(ctx, postID, userID, unlike); err != nil {
		s.logger.Sugar().Errorf("failed to like post(%d) by user(%s): %s", postID, userID.String(), err.Error())
		return ErrInternal
	}

	s.invalidatePost(ctx, postID)
	return nil
}

func (s *postService) Repost(ctx context.Context, postID int64, userID uuid.UUID) error {
	if err := s.repo.Postgres.Post.Repost(ctx, postID, userID); err != nil {
		s.logger.Sugar().Errorf("failed to repost post(%d) by user(%s): %s", postID, userID.String(), err.Error())
		return ErrInternal
	}

	s.invalidatePost(ctx, postID)
	return nil
}

func (s *postService) Bookmark(ctx context.Context, postID int64, userID uuid.UUID) error {
	if err := s.repo.Postgres.Post.Bookmark(ctx, postID, userID); err != nil {
		s.logger.Sugar().Errorf("failed to bookmark post(%d) by user(%s): %s", postID, userID.String(), err.Error())
		return ErrInternal
	}

	return nil
}

func (s *postService) handleCommentCreated(ctx context.Context, data dto.MQCommentCreatedMsg) error {
	if data.PostID < 1 {
		s.logger.Sugar().Errorf("provided an invalid post_id: %d", data.PostID)
		return ErrInvalidMessage
	}

	if err := s.repo.Postgres.Post.IncrCommentsCount(ctx, data.PostID); err != nil {
		s.logger.Sugar().Errorf("failed to increment comments count of post(%d): %s", data.PostID, err.Error())
		return ErrInternal
	}

	s.invalidatePost(ctx, data.PostID)
	return nil
}

// StartConsumeCommentEvents keeps comments_count in step with the comment
// service so the comment engagement signal stays live.
func (s *postService) StartConsumeCommentEvents(ctx context.Context) {
	queue := rabbitmq.POST_COMMENT_CREATED_QUEUE
	msgs, err := s.rabbitmq.Consume(queue)
	if err != nil {
		s.logger.Sugar().Fatalf("failed to start consume comment events from queue(%s): %s", queue, err.Error())
	}

	for msg := range msgs {
		var data dto.MQCommentCreatedMsg
		if err := json.Unmarshal(msg.Body, &data); err != nil {
			s.logger.Sugar().Errorf("failed to unmarshal json in queue(%s): %s", queue, err.Error())
			msg.Nack(false, false)
			continue
		}

		if err := s.handleCommentCreated(ctx, data); err != nil {
			msg.Nack(false, err == ErrInternal)
			continue
		}

		msg.Ack(false)
	}
}

// invalidatePost drops the cached single-post view after an engagement
// write. Cached feed pages keep their short TTL instead of being chased.
func (s *postService) invalidatePost(ctx context.Context, postID int64) {
	if err := s.repo.Redis.Default.Del(ctx, redisrepo.PostKey(postID)).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete post(%d) from redis: %s", postID, err.Error())
	}
}
