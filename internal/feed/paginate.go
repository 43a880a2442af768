package feed

// Paginate returns the 1-indexed page window over an already-ordered result.
// Page and pageSize below 1 are clamped to 1; pages past the end return an
// empty slice.
func Paginate(ranked []RankedPost, page int, pageSize int) []RankedPost {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}

	start := (page - 1) * pageSize
	if start >= len(ranked) {
		return []RankedPost{}
	}

	end := start + pageSize
	if end > len(ranked) {
		end = len(ranked)
	}
	return ranked[start:end]
}

// TotalPages reports how many pages of the given size cover total items.
func TotalPages(total int, pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	if total == 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
