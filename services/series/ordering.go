package series

import (
	"sort"

	"github.com/velog-io/velog-api/interfaces"
	"github.com/velog-io/velog-api/internal/models"
)

// NextIndex returns the index a new post appended to seriesPosts would get.
// It is one past the highest index, so a gap left by a removed post is never reused.
func NextIndex(seriesPosts []*models.SeriesPost) int {
	highest := 0
	for _, seriesPost := range seriesPosts {
		if seriesPost.Index > highest {
			highest = seriesPost.Index
		}
	}
	return highest + 1
}

func ContainsPost(seriesPosts []*models.SeriesPost, postID string) bool {
	for _, seriesPost := range seriesPosts {
		if seriesPost.FkPostID == postID {
			return true
		}
	}
	return false
}

// ThumbnailPostID returns the post at index 1, or "" when there is none.
func ThumbnailPostID(seriesPosts []*models.SeriesPost) string {
	for _, seriesPost := range seriesPosts {
		if seriesPost.Index == 1 {
			return seriesPost.FkPostID
		}
	}
	return ""
}

// FindOrderingIssue returns nil when indexes is exactly {1..n}.
func FindOrderingIssue(seriesID string, indexes []int) *interfaces.SeriesOrderingIssue {
	n := len(indexes)
	seen := make(map[int]int, n)
	for _, index := range indexes {
		seen[index]++
	}

	var missing []int
	for i := 1; i <= n; i++ {
		if seen[i] == 0 {
			missing = append(missing, i)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var duplicates []int
	for index, count := range seen {
		if count > 1 {
			duplicates = append(duplicates, index)
		}
	}
	sort.Ints(duplicates)

	sorted := append([]int(nil), indexes...)
	sort.Ints(sorted)

	return &interfaces.SeriesOrderingIssue{
		SeriesID:   seriesID,
		Indexes:    sorted,
		Missing:    missing,
		Duplicates: duplicates,
	}
}
