package feed

import (
	"strings"
	"time"

	"github.com/Twinen/feed-service/internal/model"
)

const (
	likeWeight    = 1.0
	commentWeight = 3.0
	shareWeight   = 5.0

	pinnedBonus = 10.0
	aiPenalty   = 0.8

	recencyWeight       = 0.5
	recencyDecayPerHour = 0.1

	interestMatchWeight = 2.0
)

func score(post model.Post, idx profileIndex, mode Mode, now time.Time) float64 {
	switch mode {
	case ModeLatest:
		// Pure recency: the timestamp itself is the score. float64
		// conversion of UnixNano is monotonic, and the createdAt
		// tiebreaker covers posts that round to the same value.
		return float64(post.CreatedAt.UnixNano())
	case ModeTrending:
		return velocityScore(post, now)
	case ModeAICurated:
		return interestScore(post, idx)
	default:
		return engagementScore(post, now)
	}
}

// engagementScore is the following-mode strategy: weighted engagement plus a
// linearly decaying recency bonus.
func engagementScore(post model.Post, now time.Time) float64 {
	return engagementSubtotal(post) + recencyBonus(ageInHours(post, now))
}

// engagementSubtotal is the weighted like/comment/share sum, with the pin
// bonus added before the AI-generated penalty is applied.
func engagementSubtotal(post model.Post) float64 {
	subtotal := float64(post.LikesCount)*likeWeight +
		float64(post.CommentsCount)*commentWeight +
		float64(post.SharesCount)*shareWeight

	if post.IsPinned {
		subtotal += pinnedBonus
	}
	if post.AIGenerated {
		subtotal *= aiPenalty
	}
	return subtotal
}

// recencyBonus decays linearly from recencyWeight to zero over
// 1/recencyDecayPerHour hours of age.
func recencyBonus(ageHours float64) float64 {
	decayed := (1 - ageHours*recencyDecayPerHour) * recencyWeight
	if decayed < 0 {
		return 0
	}
	return decayed
}

// velocityScore is the trending-mode strategy: unweighted engagement per
// hour of age. Posts with zero age score their raw engagement sum rather
// than an undefined velocity.
func velocityScore(post model.Post, now time.Time) float64 {
	total := float64(post.LikesCount + post.CommentsCount + post.SharesCount)

	age := ageInHours(post, now)
	if age <= 0 {
		return total
	}
	return total / age
}

// interestScore is the ai_curated-mode strategy: interest-tag matches plus
// the weighted engagement sum, without the pin bonus or AI penalty.
func interestScore(post model.Post, idx profileIndex) float64 {
	matches := 0
	for _, tag := range post.Tags {
		if _, ok := idx.interests[normalizeTag(tag)]; ok {
			matches++
		}
	}

	engagement := float64(post.LikesCount)*likeWeight +
		float64(post.CommentsCount)*commentWeight +
		float64(post.SharesCount)*shareWeight

	return float64(matches)*interestMatchWeight + engagement
}

// ageInHours never returns a negative age: future-dated posts are treated
// as created now.
func ageInHours(post model.Post, now time.Time) float64 {
	age := now.Sub(post.CreatedAt).Hours()
	if age < 0 {
		return 0
	}
	return age
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
