package feed

import "testing"

func rankedFixture(n int) []RankedPost {
	ranked := make([]RankedPost, n)
	for i := range ranked {
		ranked[i].Post.ID = int64(i + 1)
	}
	return ranked
}

func TestPaginate(t *testing.T) {
	ranked := rankedFixture(5)

	cases := []struct {
		name     string
		page     int
		pageSize int
		wantIDs  []int64
	}{
		{"first page", 1, 2, []int64{1, 2}},
		{"middle page", 2, 2, []int64{3, 4}},
		{"partial last page", 3, 2, []int64{5}},
		{"past the end", 4, 2, []int64{}},
		{"page clamps to 1", -3, 2, []int64{1, 2}},
		{"page size clamps to 1", 1, 0, []int64{1}},
		{"oversized page", 1, 50, []int64{1, 2, 3, 4, 5}},
	}

	for _, c := range cases {
		got := Paginate(ranked, c.page, c.pageSize)
		if got == nil {
			t.Fatalf("%s: Paginate returned nil", c.name)
		}
		if len(got) != len(c.wantIDs) {
			t.Fatalf("%s: expected %d posts, got %d", c.name, len(c.wantIDs), len(got))
		}
		for i, id := range c.wantIDs {
			if got[i].Post.ID != id {
				t.Fatalf("%s: expected post %d at index %d, got %d", c.name, id, i, got[i].Post.ID)
			}
		}
	}
}

func TestPaginateEmptyInput(t *testing.T) {
	if got := Paginate(nil, 1, 10); len(got) != 0 {
		t.Fatalf("expected empty page over empty input, got %d entries", len(got))
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total    int
		pageSize int
		want     int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{23, 5, 5},
		{7, 0, 7},
	}
	for _, c := range cases {
		if got := TotalPages(c.total, c.pageSize); got != c.want {
			t.Fatalf("TotalPages(%d, %d) = %d, expected %d", c.total, c.pageSize, got, c.want)
		}
	}
}
