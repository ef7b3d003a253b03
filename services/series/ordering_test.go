package series

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velog-io/velog-api/internal/models"
)

func seriesPostsWithIndexes(indexes ...int) []*models.SeriesPost {
	result := make([]*models.SeriesPost, 0, len(indexes))
	for _, index := range indexes {
		result = append(result, &models.SeriesPost{Index: index})
	}
	return result
}

func TestNextIndex(t *testing.T) {
	assert.Equal(t, 1, NextIndex(nil))
	assert.Equal(t, 4, NextIndex(seriesPostsWithIndexes(1, 2, 3)))
	// max + 1, not count + 1
	assert.Equal(t, 6, NextIndex(seriesPostsWithIndexes(1, 5)))
	assert.Equal(t, 6, NextIndex(seriesPostsWithIndexes(5, 1)))
}

func TestContainsPost(t *testing.T) {
	seriesPosts := []*models.SeriesPost{{FkPostID: "p1", Index: 1}, {FkPostID: "p2", Index: 2}}
	assert.True(t, ContainsPost(seriesPosts, "p2"))
	assert.False(t, ContainsPost(seriesPosts, "p3"))
	assert.False(t, ContainsPost(nil, "p1"))
}

func TestFindOrderingIssue(t *testing.T) {
	assert.Nil(t, FindOrderingIssue("s", nil))
	assert.Nil(t, FindOrderingIssue("s", []int{1, 2, 3}))
	assert.Nil(t, FindOrderingIssue("s", []int{3, 1, 2}))

	issue := FindOrderingIssue("s", []int{1, 3})
	require.NotNil(t, issue)
	assert.Equal(t, "s", issue.SeriesID)
	assert.Equal(t, []int{1, 3}, issue.Indexes)
	assert.Equal(t, []int{2}, issue.Missing)
	assert.Empty(t, issue.Duplicates)

	issue = FindOrderingIssue("s", []int{2, 1, 1})
	require.NotNil(t, issue)
	assert.Equal(t, []int{1, 1, 2}, issue.Indexes)
	assert.Equal(t, []int{3}, issue.Missing)
	assert.Equal(t, []int{1}, issue.Duplicates)

	issue = FindOrderingIssue("s", []int{0, 1})
	require.NotNil(t, issue)
	assert.Equal(t, []int{2}, issue.Missing)
}

func TestThumbnailPostID(t *testing.T) {
	assert.Empty(t, ThumbnailPostID(nil))

	seriesPosts := []*models.SeriesPost{
		{FkPostID: "second", Index: 2},
		{FkPostID: "first", Index: 1},
	}
	assert.Equal(t, "first", ThumbnailPostID(seriesPosts))

	// a series whose first index was removed has no thumbnail
	assert.Empty(t, ThumbnailPostID([]*models.SeriesPost{{FkPostID: "second", Index: 2}}))
}
