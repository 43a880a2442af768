package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Twinen/feed-service/internal/config"
	"github.com/Twinen/feed-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Post interface {
	Create(ctx context.Context, post model.Post) (*model.Post, error)
	FindByID(ctx context.Context, id int64) (*model.FullPost, error)
	FindCandidates(ctx context.Context, since time.Time, limit int) ([]model.Post, error)
	Like(ctx context.Context, postID int64, userID uuid.UUID, unlike bool) error
	IsLiked(ctx context.Context, postID int64, userID uuid.UUID) bool
	Repost(ctx context.Context, postID int64, userID uuid.UUID) error
	Bookmark(ctx context.Context, postID int64, userID uuid.UUID) error
	IncrCommentsCount(ctx context.Context, postID int64) error
}

type Profile interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.ViewerProfile, error)
}

type UserCache interface {
	Create(ctx context.Context, cachedUser model.CachedUser) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CachedUser, error)
}

type PostgresRepository struct {
	Post
	Profile
	UserCache
}

func New(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		Post:      newPostRepo(db),
		Profile:   newProfileRepo(db),
		UserCache: newUserCacheRepo(db),
	}
}

// DB opens a pgx connection pool from the given config.
func DB(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.Username,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.SSLMode,
	)
	return pgxpool.New(ctx, dsn)
}
