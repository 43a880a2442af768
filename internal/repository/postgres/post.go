package postgres

import (
	"context"
	"time"

	"github.com/Twinen/feed-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postRepo struct {
	db *pgxpool.Pool
}

func newPostRepo(db *pgxpool.Pool) Post {
	return &postRepo{
		db: db,
	}
}

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(
		ctx,
		`INSERT INTO posts(author_id, content, type, ai_generated, created_at, updated_at)
		VALUES($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		post.AuthorID,
		post.Content,
		post.Type,
		post.AIGenerated,
		post.CreatedAt,
		post.UpdatedAt,
	).Scan(&post.ID); err != nil {
		return nil, err
	}

	for _, tag := range post.Tags {
		if _, err := tx.Exec(
			ctx,
			"INSERT INTO post_tags(post_id, tag) VALUES($1, LOWER($2)) ON CONFLICT DO NOTHING",
			post.ID,
			tag,
		); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) FindByID(ctx context.Context, id int64) (*model.FullPost, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT
		p.id, p.author_id, p.content, p.type, p.likes_count, p.comments_count, p.shares_count,
		p.is_pinned, p.ai_generated, p.created_at, p.updated_at,
		u.username, u.display_name, u.avatar_url, t.tag
		FROM posts p
		JOIN cached_users u ON p.author_id = u.id
		LEFT JOIN post_tags t ON p.id = t.post_id
		WHERE p.id = $1`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fullPost *model.FullPost
	for rows.Next() {
		var (
			post   model.Post
			author model.UserAuthor
			tag    *string
		)
		if err := rows.Scan(
			&post.ID,
			&post.AuthorID,
			&post.Content,
			&post.Type,
			&post.LikesCount,
			&post.CommentsCount,
			&post.SharesCount,
			&post.IsPinned,
			&post.AIGenerated,
			&post.CreatedAt,
			&post.UpdatedAt,
			&author.Username,
			&author.DisplayName,
			&author.AvatarURL,
			&tag,
		); err != nil {
			return nil, err
		}

		if fullPost == nil {
			fullPost = &model.FullPost{
				Post:   post,
				Author: author,
			}
		}
		if tag != nil {
			fullPost.Post.Tags = append(fullPost.Post.Tags, *tag)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if fullPost == nil {
		return nil, pgx.ErrNoRows
	}

	return fullPost, nil
}

// FindCandidates returns the unranked candidate batch for the ranking
// engine: posts created at or after since (the zero time means no window),
// newest first, capped at limit. Tags ride along for interest matching.
func (r *postRepo) FindCandidates(ctx context.Context, since time.Time, limit int) ([]model.Post, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT
		p.id, p.author_id, p.content, p.type, p.likes_count, p.comments_count, p.shares_count,
		p.is_pinned, p.ai_generated, p.created_at, p.updated_at, t.tag
		FROM (
			SELECT * FROM posts
			WHERE created_at >= $1
			ORDER BY created_at DESC
			LIMIT $2
		) p
		LEFT JOIN post_tags t ON p.id = t.post_id
		ORDER BY p.created_at DESC`,
		since,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	postsMap := make(map[int64]*model.Post)
	var order []int64
	for rows.Next() {
		var (
			post model.Post
			tag  *string
		)
		if err := rows.Scan(
			&post.ID,
			&post.AuthorID,
			&post.Content,
			&post.Type,
			&post.LikesCount,
			&post.CommentsCount,
			&post.SharesCount,
			&post.IsPinned,
			&post.AIGenerated,
			&post.CreatedAt,
			&post.UpdatedAt,
			&tag,
		); err != nil {
			return nil, err
		}

		existing, exists := postsMap[post.ID]
		if !exists {
			existing = &post
			postsMap[post.ID] = existing
			order = append(order, post.ID)
		}
		if tag != nil {
			existing.Tags = append(existing.Tags, *tag)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	posts := make([]model.Post, 0, len(order))
	for _, id := range order {
		posts = append(posts, *postsMap[id])
	}

	return posts, nil
}

// Like inserts or removes the like row and adjusts the counter inside one
// transaction, so the counter the ranking engine reads never drifts from
// the rows.
func (r *postRepo) Like(ctx context.Context, postID int64, userID uuid.UUID, unlike bool) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if unlike {
		tag, err := tx.Exec(ctx, "DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2", postID, userID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() > 0 {
			if _, err := tx.Exec(ctx, "UPDATE posts SET likes_count = GREATEST(likes_count - 1, 0) WHERE id = $1", postID); err != nil {
				return err
			}
		}
	} else {
		tag, err := tx.Exec(ctx, "INSERT INTO post_likes(post_id, user_id) VALUES($1, $2) ON CONFLICT DO NOTHING", postID, userID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() > 0 {
			if _, err := tx.Exec(ctx, "UPDATE posts SET likes_count = likes_count + 1 WHERE id = $1", postID); err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

func (r *postRepo) IsLiked(ctx context.Context, postID int64, userID uuid.UUID) bool {
	var exists bool
	if err := r.db.QueryRow(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM post_likes WHERE post_id = $1 AND user_id = $2)",
		postID,
		userID,
	).Scan(&exists); err != nil {
		return false
	}
	return exists
}

func (r *postRepo) Repost(ctx context.Context, postID int64, userID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, "INSERT INTO post_reposts(post_id, user_id) VALUES($1, $2) ON CONFLICT DO NOTHING", postID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		if _, err := tx.Exec(ctx, "UPDATE posts SET shares_count = shares_count + 1 WHERE id = $1", postID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Bookmark is private to the viewer and carries no ranking weight, so there
// is no counter to keep in step.
func (r *postRepo) Bookmark(ctx context.Context, postID int64, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, "INSERT INTO post_bookmarks(post_id, user_id) VALUES($1, $2) ON CONFLICT DO NOTHING", postID, userID)
	return err
}

func (r *postRepo) IncrCommentsCount(ctx context.Context, postID int64) error {
	_, err := r.db.Exec(ctx, "UPDATE posts SET comments_count = comments_count + 1 WHERE id = $1", postID)
	return err
}
