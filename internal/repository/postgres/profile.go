package postgres

import (
	"context"

	"github.com/Twinen/feed-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type profileRepo struct {
	db *pgxpool.Pool
}

func newProfileRepo(db *pgxpool.Pool) Profile {
	return &profileRepo{
		db: db,
	}
}

// FindByUserID assembles the viewer profile snapshot the ranking engine
// consumes: interests, follows and suppression lists.
func (r *profileRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.ViewerProfile, error) {
	profile := model.ViewerProfile{
		UserID: userID,
	}

	interests, err := r.selectStrings(ctx, "SELECT LOWER(interest) FROM user_interests WHERE user_id = $1", userID)
	if err != nil {
		return nil, err
	}
	profile.Interests = interests

	following, err := r.selectUUIDs(ctx, "SELECT following_id FROM user_follows WHERE follower_id = $1", userID)
	if err != nil {
		return nil, err
	}
	profile.FollowingIDs = following

	blocked, err := r.selectUUIDs(ctx, "SELECT blocked_id FROM user_blocks WHERE user_id = $1", userID)
	if err != nil {
		return nil, err
	}
	profile.BlockedIDs = blocked

	muted, err := r.selectUUIDs(ctx, "SELECT muted_id FROM user_mutes WHERE user_id = $1", userID)
	if err != nil {
		return nil, err
	}
	profile.MutedIDs = muted

	return &profile, nil
}

func (r *profileRepo) selectStrings(ctx context.Context, query string, userID uuid.UUID) ([]string, error) {
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		values = append(values, value)
	}

	return values, rows.Err()
}

func (r *profileRepo) selectUUIDs(ctx context.Context, query string, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
