package feed

import (
	"math"
	"testing"
	"time"

	"github.com/Twinen/feed-service/internal/model"
	"github.com/google/uuid"
)

var (
	testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	u1 = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	u2 = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	u3 = uuid.MustParse("33333333-3333-3333-3333-333333333333")
)

func testEngine() *Engine {
	return &Engine{now: func() time.Time { return testNow }}
}

// testCandidates mirrors the canonical two-post scenario: post "a" by u1
// with heavy engagement one hour old, post "b" by u2 pinned and thirty
// minutes old.
func testCandidates() []model.Post {
	return []model.Post{
		{
			ID:            1,
			AuthorID:      u1,
			Tags:          []string{"ai"},
			LikesCount:    10,
			CommentsCount: 2,
			SharesCount:   1,
			CreatedAt:     testNow.Add(-time.Hour),
		},
		{
			ID:         2,
			AuthorID:   u2,
			IsPinned:   true,
			LikesCount: 5,
			CreatedAt:  testNow.Add(-30 * time.Minute),
		},
	}
}

func testProfile() *model.ViewerProfile {
	return &model.ViewerProfile{
		UserID:       u3,
		Interests:    []string{"ai"},
		FollowingIDs: []uuid.UUID{u1, u2},
	}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRankAllFollowingScores(t *testing.T) {
	ranked := testEngine().RankAll(testCandidates(), testProfile(), ModeFollowing)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 ranked posts, got %d", len(ranked))
	}

	// a = 10*1 + 2*3 + 1*5 + (1-0.1)*0.5 = 21.45
	if ranked[0].Post.ID != 1 || !approxEqual(ranked[0].Score, 21.45) {
		t.Fatalf("expected post 1 first with score 21.45, got post %d score %v", ranked[0].Post.ID, ranked[0].Score)
	}
	// b = 5*1 + 10 (pin) + (1-0.05)*0.5 = 15.475
	if ranked[1].Post.ID != 2 || !approxEqual(ranked[1].Score, 15.475) {
		t.Fatalf("expected post 2 second with score 15.475, got post %d score %v", ranked[1].Post.ID, ranked[1].Score)
	}
}

func TestRankAllAICuratedScores(t *testing.T) {
	ranked := testEngine().RankAll(testCandidates(), testProfile(), ModeAICurated)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 ranked posts, got %d", len(ranked))
	}

	// a = 2*1 (tag match) + 10 + 6 + 5 = 23; no pin bonus in this mode
	if ranked[0].Post.ID != 1 || !approxEqual(ranked[0].Score, 23) {
		t.Fatalf("expected post 1 first with score 23, got post %d score %v", ranked[0].Post.ID, ranked[0].Score)
	}
	if ranked[1].Post.ID != 2 || !approxEqual(ranked[1].Score, 5) {
		t.Fatalf("expected post 2 second with score 5, got post %d score %v", ranked[1].Post.ID, ranked[1].Score)
	}
}

func TestRankAllTrendingScores(t *testing.T) {
	ranked := testEngine().RankAll(testCandidates(), testProfile(), ModeTrending)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 ranked posts, got %d", len(ranked))
	}

	// a = 13/1 = 13; b = 5/0.5 = 10
	if ranked[0].Post.ID != 1 || !approxEqual(ranked[0].Score, 13) {
		t.Fatalf("expected post 1 first with score 13, got post %d score %v", ranked[0].Post.ID, ranked[0].Score)
	}
	if ranked[1].Post.ID != 2 || !approxEqual(ranked[1].Score, 10) {
		t.Fatalf("expected post 2 second with score 10, got post %d score %v", ranked[1].Post.ID, ranked[1].Score)
	}
}

func TestRankLatestOrdersByCreatedAt(t *testing.T) {
	posts := testEngine().Rank(testCandidates(), testProfile(), ModeLatest, 1, 10)
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if posts[0].ID != 2 || posts[1].ID != 1 {
		t.Fatalf("expected newest-first order [2 1], got [%d %d]", posts[0].ID, posts[1].ID)
	}
}

func TestTrendingZeroAgeUsesRawEngagement(t *testing.T) {
	candidates := []model.Post{
		{ID: 1, AuthorID: u1, LikesCount: 3, CommentsCount: 2, SharesCount: 1, CreatedAt: testNow},
	}

	ranked := testEngine().RankAll(candidates, nil, ModeTrending)
	if len(ranked) != 1 {
		t.Fatalf("expected 1 ranked post, got %d", len(ranked))
	}
	if math.IsNaN(ranked[0].Score) || math.IsInf(ranked[0].Score, 0) {
		t.Fatalf("zero-age post produced invalid score %v", ranked[0].Score)
	}
	if !approxEqual(ranked[0].Score, 6) {
		t.Fatalf("expected raw engagement 6, got %v", ranked[0].Score)
	}
}

func TestFutureDatedPostTreatedAsAgeZero(t *testing.T) {
	candidates := []model.Post{
		{ID: 1, AuthorID: u1, LikesCount: 4, CreatedAt: testNow.Add(2 * time.Hour)},
	}
	profile := &model.ViewerProfile{FollowingIDs: []uuid.UUID{u1}}

	ranked := testEngine().RankAll(candidates, profile, ModeFollowing)
	if len(ranked) != 1 {
		t.Fatalf("expected 1 ranked post, got %d", len(ranked))
	}
	// full recency bonus, never a negative age
	if !approxEqual(ranked[0].Score, 4.5) {
		t.Fatalf("expected score 4.5, got %v", ranked[0].Score)
	}
}

func TestBlockedAuthorExcludedFromAllModes(t *testing.T) {
	profile := testProfile()
	profile.BlockedIDs = []uuid.UUID{u2}

	for _, mode := range []Mode{ModeFollowing, ModeLatest, ModeTrending, ModeAICurated} {
		posts := testEngine().Rank(testCandidates(), profile, mode, 1, 10)
		for _, p := range posts {
			if p.AuthorID == u2 {
				t.Fatalf("mode %s: blocked author's post %d appeared in output", mode, p.ID)
			}
		}
	}
}

func TestMutedAuthorStillRanked(t *testing.T) {
	profile := testProfile()
	profile.MutedIDs = []uuid.UUID{u2}

	posts := testEngine().Rank(testCandidates(), profile, ModeFollowing, 1, 10)
	found := false
	for _, p := range posts {
		if p.AuthorID == u2 {
			found = true
		}
	}
	if !found {
		t.Fatal("muted author's post was filtered out of the feed")
	}
}

func TestFollowingModeAuthorshipInvariant(t *testing.T) {
	profile := &model.ViewerProfile{FollowingIDs: []uuid.UUID{u1}}
	candidates := append(testCandidates(), model.Post{
		ID:        3,
		AuthorID:  u3,
		CreatedAt: testNow.Add(-time.Minute),
	})

	posts := testEngine().Rank(candidates, profile, ModeFollowing, 1, 10)
	if len(posts) != 1 {
		t.Fatalf("expected 1 post from followed authors, got %d", len(posts))
	}
	if posts[0].AuthorID != u1 {
		t.Fatalf("returned post authored by unfollowed user %s", posts[0].AuthorID)
	}
}

func TestNilProfileDegrades(t *testing.T) {
	e := testEngine()

	if got := e.Rank(testCandidates(), nil, ModeFollowing, 1, 10); len(got) != 0 {
		t.Fatalf("nil profile follows no one, expected empty following feed, got %d posts", len(got))
	}
	if got := e.Rank(testCandidates(), nil, ModeLatest, 1, 10); len(got) != 2 {
		t.Fatalf("nil profile latest feed should include all candidates, got %d", len(got))
	}
}

func TestUnknownModeFallsBackToFollowing(t *testing.T) {
	e := testEngine()
	profile := testProfile()

	want := e.Rank(testCandidates(), profile, ModeFollowing, 1, 10)
	got := e.Rank(testCandidates(), profile, Mode("popular"), 1, 10)

	if len(want) != len(got) {
		t.Fatalf("expected fallback to following (%d posts), got %d", len(want), len(got))
	}
	for i := range want {
		if want[i].ID != got[i].ID {
			t.Fatalf("fallback order diverged at index %d: %d vs %d", i, want[i].ID, got[i].ID)
		}
	}
}

func TestRankIsDeterministic(t *testing.T) {
	e := testEngine()
	profile := testProfile()

	first := e.Rank(testCandidates(), profile, ModeTrending, 1, 10)
	for i := 0; i < 10; i++ {
		again := e.Rank(testCandidates(), profile, ModeTrending, 1, 10)
		if len(again) != len(first) {
			t.Fatalf("run %d returned %d posts, expected %d", i, len(again), len(first))
		}
		for j := range first {
			if first[j].ID != again[j].ID {
				t.Fatalf("run %d diverged at index %d", i, j)
			}
		}
	}
}

func TestTieBreakers(t *testing.T) {
	older := testNow.Add(-2 * time.Hour)
	newer := testNow.Add(-time.Hour)
	candidates := []model.Post{
		{ID: 30, AuthorID: u1, CreatedAt: older},
		{ID: 10, AuthorID: u1, CreatedAt: newer},
		{ID: 20, AuthorID: u1, CreatedAt: newer},
	}

	// ai_curated with no interests and no engagement scores everything 0,
	// leaving only the tiebreaker chain.
	ranked := testEngine().RankAll(candidates, nil, ModeAICurated)
	got := []int64{ranked[0].Post.ID, ranked[1].Post.ID, ranked[2].Post.ID}
	want := []int64{10, 20, 30}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected tiebreak order %v, got %v", want, got)
		}
	}
}

func TestPaginationCompleteness(t *testing.T) {
	e := testEngine()
	var candidates []model.Post
	for i := 1; i <= 23; i++ {
		candidates = append(candidates, model.Post{
			ID:         int64(i),
			AuthorID:   u1,
			LikesCount: int64(i % 7),
			CreatedAt:  testNow.Add(-time.Duration(i) * time.Minute),
		})
	}

	seen := make(map[int64]int)
	var order []int64
	for page := 1; ; page++ {
		posts := e.Rank(candidates, nil, ModeTrending, page, 5)
		if len(posts) == 0 {
			break
		}
		for _, p := range posts {
			seen[p.ID]++
			order = append(order, p.ID)
		}
	}

	if len(order) != len(candidates) {
		t.Fatalf("concatenated pages hold %d posts, expected %d", len(order), len(candidates))
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("post %d appeared %d times across pages", id, n)
		}
	}

	full := e.Rank(candidates, nil, ModeTrending, 1, len(candidates))
	for i, p := range full {
		if order[i] != p.ID {
			t.Fatalf("page concatenation order diverged at index %d", i)
		}
	}
}

func TestClampingIsIdempotent(t *testing.T) {
	e := testEngine()
	profile := testProfile()

	clamped := e.Rank(testCandidates(), profile, ModeFollowing, -5, 0)
	normal := e.Rank(testCandidates(), profile, ModeFollowing, 1, 1)

	if len(clamped) != len(normal) {
		t.Fatalf("clamped call returned %d posts, normal returned %d", len(clamped), len(normal))
	}
	for i := range normal {
		if clamped[i].ID != normal[i].ID {
			t.Fatalf("clamped and normal calls diverged at index %d", i)
		}
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	candidates := testCandidates()
	ids := []int64{candidates[0].ID, candidates[1].ID}

	testEngine().Rank(candidates, testProfile(), ModeFollowing, 1, 10)

	if candidates[0].ID != ids[0] || candidates[1].ID != ids[1] {
		t.Fatal("candidate slice was reordered or mutated")
	}
}
