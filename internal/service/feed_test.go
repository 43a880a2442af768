package service

import (
	"testing"
	"time"
)

func TestTimeRangeSince(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		timeRange string
		want      time.Time
	}{
		{TIME_RANGE_ALL, time.Time{}},
		{TIME_RANGE_TODAY, now.Add(-24 * time.Hour)},
		{TIME_RANGE_WEEK, now.Add(-7 * 24 * time.Hour)},
		{TIME_RANGE_MONTH, now.Add(-30 * 24 * time.Hour)},
		{"bogus", time.Time{}},
		{"", time.Time{}},
	}

	for _, c := range cases {
		if got := timeRangeSince(c.timeRange, now); !got.Equal(c.want) {
			t.Fatalf("timeRangeSince(%q) = %v, expected %v", c.timeRange, got, c.want)
		}
	}
}

func TestMaxLimit(t *testing.T) {
	limit := 200
	maxLimit(&limit)
	if limit != MAX_LIMIT {
		t.Fatalf("expected limit clamped to %d, got %d", MAX_LIMIT, limit)
	}

	limit = 20
	maxLimit(&limit)
	if limit != 20 {
		t.Fatalf("limit under the cap should be untouched, got %d", limit)
	}
}
