package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Twinen/feed-service/internal/dto"
	"github.com/Twinen/feed-service/internal/feed"
	"github.com/Twinen/feed-service/internal/model"
	"github.com/Twinen/feed-service/internal/rabbitmq"
	"github.com/Twinen/feed-service/internal/repository"
	"github.com/Twinen/feed-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	TIME_RANGE_ALL   = "all"
	TIME_RANGE_TODAY = "today"
	TIME_RANGE_WEEK  = "week"
	TIME_RANGE_MONTH = "month"
)

type feedService struct {
	logger   *zap.Logger
	repo     *repository.Repository
	rabbitmq *rabbitmq.MQConn
	engine   *feed.Engine
}

func newFeedService(logger *zap.Logger, repo *repository.Repository, rabbitmq *rabbitmq.MQConn, engine *feed.Engine) Feed {
	return &feedService{
		logger:   logger,
		repo:     repo,
		rabbitmq: rabbitmq,
		engine:   engine,
	}
}

// GetFeed produces one ranked page for the viewer. A nil viewerID serves an
// anonymous feed with an empty profile.
func (s *feedService) GetFeed(ctx context.Context, viewerID *uuid.UUID, mode feed.Mode, timeRange string, page int, limit int) (*dto.FeedResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DEFAULT_LIMIT
	}
	maxLimit(&limit)

	viewerKey := "anon"
	if viewerID != nil {
		viewerKey = viewerID.String()
	}

	cacheKey := redisrepo.FeedPageKey(viewerKey, string(mode), timeRange, page, limit)
	cached, err := redisrepo.Get[dto.FeedResponse](s.repo.Redis.Default, ctx, cacheKey)
	if err == nil && cached != nil {
		return cached, nil
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get feed page for viewer(%s) from redis: %s", viewerKey, err.Error())
	}

	var profile *model.ViewerProfile
	if viewerID != nil {
		profile, err = s.getViewerProfile(ctx, *viewerID)
		if err != nil {
			return nil, err
		}
	}

	candidates, err := s.repo.Postgres.Post.FindCandidates(ctx, timeRangeSince(timeRange, time.Now()), candidateLimit())
	if err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to find feed candidates: %s", err.Error())
		return nil, ErrInternal
	}

	ranked := s.engine.RankAll(candidates, profile, mode)
	pageItems := feed.Paginate(ranked, page, limit)

	posts := make([]model.Post, len(pageItems))
	for i, rp := range pageItems {
		posts[i] = rp.Post
	}

	total := len(ranked)
	totalPages := feed.TotalPages(total, limit)
	resp := &dto.FeedResponse{
		Posts: posts,
		Pagination: dto.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1 && total > 0,
		},
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, cacheKey, resp, feedCacheTTL()); err != nil {
		s.logger.Sugar().Errorf("failed to set feed page for viewer(%s) in redis: %s", viewerKey, err.Error())
	}

	return resp, nil
}

func (s *feedService) getViewerProfile(ctx context.Context, viewerID uuid.UUID) (*model.ViewerProfile, error) {
	cachedProfile, err := redisrepo.Get[model.ViewerProfile](s.repo.Redis.Default, ctx, redisrepo.ViewerProfileKey(viewerID.String()))
	if err == nil {
		return cachedProfile, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get viewer(%s) profile from redis: %s", viewerID.String(), err.Error())
		return nil, ErrInternal
	}

	profile, err := s.repo.Postgres.Profile.FindByUserID(ctx, viewerID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find viewer(%s) profile from postgres: %s", viewerID.String(), err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.ViewerProfileKey(viewerID.String()), profile, time.Hour); err != nil {
		s.logger.Sugar().Errorf("failed to set viewer(%s) profile in redis: %s", viewerID.String(), err.Error())
		return nil, ErrInternal
	}

	return profile, nil
}

// StartConsumeRelationUpdates invalidates cached viewer profiles and feed
// pages when the user service reports a follow/block/mute/interest change.
func (s *feedService) StartConsumeRelationUpdates(ctx context.Context) {
	queue := rabbitmq.USER_RELATIONS_UPDATED_QUEUE
	msgs, err := s.rabbitmq.Consume(queue)
	if err != nil {
		s.logger.Sugar().Fatalf("failed to start consume updates from queue(%s): %s", queue, err.Error())
	}

	for msg := range msgs {
		var data dto.MQUserRelationsUpdatedMsg
		if err := json.Unmarshal(msg.Body, &data); err != nil {
			s.logger.Sugar().Errorf("failed to unmarshal json in queue(%s): %s", queue, err.Error())
			msg.Nack(false, false)
			continue
		}

		if data.UserID == uuid.Nil {
			s.logger.Sugar().Errorf("'user_id' field is not provided in queue(%s)", queue)
			msg.Nack(false, false)
			continue
		}

		if err := s.repo.Redis.Default.Del(ctx, redisrepo.ViewerProfileKey(data.UserID.String())).Err(); err != nil {
			s.logger.Sugar().Errorf("failed to delete viewer(%s) profile from redis: %s", data.UserID.String(), err.Error())
			msg.Nack(false, true)
			continue
		}
		if err := s.repo.Redis.Default.DelByPattern(ctx, redisrepo.FeedViewerGlob(data.UserID.String())); err != nil {
			s.logger.Sugar().Errorf("failed to delete viewer(%s) feed pages from redis: %s", data.UserID.String(), err.Error())
		}

		msg.Ack(false)
	}
}

func timeRangeSince(timeRange string, now time.Time) time.Time {
	switch timeRange {
	case TIME_RANGE_TODAY:
		return now.Add(-24 * time.Hour)
	case TIME_RANGE_WEEK:
		return now.Add(-7 * 24 * time.Hour)
	case TIME_RANGE_MONTH:
		return now.Add(-30 * 24 * time.Hour)
	default:
		return time.Time{}
	}
}

func candidateLimit() int {
	limit := viper.GetInt("feed.candidate-limit")
	if limit < 1 {
		limit = 500
	}
	return limit
}

func feedCacheTTL() time.Duration {
	seconds := viper.GetInt("feed.cache-ttl-seconds")
	if seconds < 1 {
		seconds = 60
	}
	return time.Duration(seconds) * time.Second
}
