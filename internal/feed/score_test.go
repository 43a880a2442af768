package feed

import (
	"testing"
	"time"

	"github.com/Twinen/feed-service/internal/model"
	"github.com/google/uuid"
)

func TestEngagementSubtotalPinThenPenalty(t *testing.T) {
	post := model.Post{
		LikesCount:    10,
		CommentsCount: 2,
		SharesCount:   1,
		IsPinned:      true,
		AIGenerated:   true,
	}

	// penalty applies after the pin bonus: (21+10)*0.8
	if got := engagementSubtotal(post); !approxEqual(got, 24.8) {
		t.Fatalf("expected 24.8, got %v", got)
	}
}

func TestRecencyBonusFloorsAtTenHours(t *testing.T) {
	cases := []struct {
		ageHours float64
		want     float64
	}{
		{0, 0.5},
		{1, 0.45},
		{5, 0.25},
		{10, 0},
		{24, 0},
	}
	for _, c := range cases {
		if got := recencyBonus(c.ageHours); !approxEqual(got, c.want) {
			t.Fatalf("age %v: expected bonus %v, got %v", c.ageHours, c.want, got)
		}
	}
}

func TestInterestMatchingIsCaseInsensitive(t *testing.T) {
	profile := &model.ViewerProfile{Interests: []string{"AI", "golang"}}
	post := model.Post{
		ID:        1,
		AuthorID:  uuid.MustParse("44444444-4444-4444-4444-444444444444"),
		Tags:      []string{"ai", "GoLang", "misc"},
		CreatedAt: testNow.Add(-time.Hour),
	}

	ranked := testEngine().RankAll([]model.Post{post}, profile, ModeAICurated)
	if len(ranked) != 1 {
		t.Fatalf("expected 1 ranked post, got %d", len(ranked))
	}
	if !approxEqual(ranked[0].Score, 4) {
		t.Fatalf("expected 2 matches worth 4 points, got score %v", ranked[0].Score)
	}
}

func TestAICuratedDoesNotPenalizeAIContent(t *testing.T) {
	post := model.Post{
		ID:          1,
		AuthorID:    u1,
		LikesCount:  10,
		AIGenerated: true,
		IsPinned:    true,
		CreatedAt:   testNow.Add(-time.Hour),
	}

	ranked := testEngine().RankAll([]model.Post{post}, nil, ModeAICurated)
	if !approxEqual(ranked[0].Score, 10) {
		t.Fatalf("expected score 10 (no pin bonus, no AI penalty), got %v", ranked[0].Score)
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{
		"following":  ModeFollowing,
		"latest":     ModeLatest,
		"trending":   ModeTrending,
		"ai_curated": ModeAICurated,
		"popular":    ModeFollowing,
		"":           ModeFollowing,
	}
	for in, want := range cases {
		if got := ParseMode(in); got != want {
			t.Fatalf("ParseMode(%q) = %q, expected %q", in, got, want)
		}
	}
}
