package feed

import (
	"sort"
	"time"

	"github.com/Twinen/feed-service/internal/model"
	"github.com/google/uuid"
)

type Mode string

const (
	ModeFollowing Mode = "following"
	ModeLatest    Mode = "latest"
	ModeTrending  Mode = "trending"
	ModeAICurated Mode = "ai_curated"
)

// ParseMode maps a request string to a ranking mode. Unknown values fall
// back to the following mode.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeLatest, ModeTrending, ModeAICurated:
		return Mode(s)
	default:
		return ModeFollowing
	}
}

// RankedPost wraps a candidate with its computed score. Instances live only
// for the duration of a single ranking call.
type RankedPost struct {
	Post  model.Post `json:"post"`
	Score float64    `json:"score"`
}

// Engine ranks candidate posts for a viewer. It holds no state between
// calls and is safe for concurrent use.
type Engine struct {
	now func() time.Time
}

func NewEngine() *Engine {
	return &Engine{
		now: time.Now,
	}
}

// RankAll filters and scores the candidate batch and returns the full
// ordered result, before pagination. A nil profile behaves as a profile with
// no interests, follows or blocks.
func (e *Engine) RankAll(candidates []model.Post, profile *model.ViewerProfile, mode Mode) []RankedPost {
	mode = ParseMode(string(mode))
	idx := newProfileIndex(profile)
	now := e.now()

	ranked := make([]RankedPost, 0, len(candidates))
	for _, post := range candidates {
		if idx.isBlocked(post.AuthorID) {
			continue
		}
		if mode == ModeFollowing && !idx.isFollowing(post.AuthorID) {
			continue
		}

		ranked = append(ranked, RankedPost{
			Post:  post,
			Score: score(post, idx, mode, now),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if !ranked[i].Post.CreatedAt.Equal(ranked[j].Post.CreatedAt) {
			return ranked[i].Post.CreatedAt.After(ranked[j].Post.CreatedAt)
		}
		return ranked[i].Post.ID < ranked[j].Post.ID
	})

	return ranked
}

// Rank returns one page of the ranked feed.
func (e *Engine) Rank(candidates []model.Post, profile *model.ViewerProfile, mode Mode, page int, pageSize int) []model.Post {
	ranked := Paginate(e.RankAll(candidates, profile, mode), page, pageSize)

	posts := make([]model.Post, len(ranked))
	for i, rp := range ranked {
		posts[i] = rp.Post
	}
	return posts
}

// profileIndex holds set-shaped views of a viewer profile for O(1) lookups
// during scoring.
type profileIndex struct {
	interests map[string]struct{}
	following map[uuid.UUID]struct{}
	blocked   map[uuid.UUID]struct{}
}

func newProfileIndex(profile *model.ViewerProfile) profileIndex {
	idx := profileIndex{
		interests: make(map[string]struct{}),
		following: make(map[uuid.UUID]struct{}),
		blocked:   make(map[uuid.UUID]struct{}),
	}
	if profile == nil {
		return idx
	}

	for _, interest := range profile.Interests {
		idx.interests[normalizeTag(interest)] = struct{}{}
	}
	for _, id := range profile.FollowingIDs {
		idx.following[id] = struct{}{}
	}
	for _, id := range profile.BlockedIDs {
		idx.blocked[id] = struct{}{}
	}
	return idx
}

func (idx profileIndex) isBlocked(authorID uuid.UUID) bool {
	_, ok := idx.blocked[authorID]
	return ok
}

func (idx profileIndex) isFollowing(authorID uuid.UUID) bool {
	_, ok := idx.following[authorID]
	return ok
}
