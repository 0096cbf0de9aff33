package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginateCeiling(t *testing.T) {
	cases := []struct {
		name       string
		totalRows  int64
		pageSize   int
		page       int
		totalPages int
	}{
		{"exact multiple", 20, 10, 1, 2},
		{"remainder rounds up", 21, 10, 1, 3},
		{"single short page", 3, 10, 1, 1},
		{"empty set still has one page", 0, 10, 1, 1},
		{"size one", 5, 1, 3, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, err := Paginate(tc.totalRows, tc.pageSize, tc.page)
			require.NoError(t, err)
			assert.Equal(t, tc.totalPages, page.TotalPages)
			assert.Equal(t, tc.page, page.CurrentPage)
			assert.Equal(t, tc.totalRows, page.TotalRecords)
		})
	}
}

func TestPaginateRejectsBadInput(t *testing.T) {
	_, err := Paginate(10, 0, 1)
	assert.Error(t, err)

	_, err = Paginate(10, -5, 1)
	assert.Error(t, err)

	_, err = Paginate(10, 10, 0)
	assert.Error(t, err)

	_, err = Paginate(10, 10, -1)
	assert.Error(t, err)
}

func TestPaginatePastTheEnd(t *testing.T) {
	// Requesting a page past the data is not an error; the query just
	// returns no rows at that offset.
	page, err := Paginate(5, 10, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, page.CurrentPage)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 30, page.Offset(10))
}

func TestOffset(t *testing.T) {
	page, err := Paginate(100, 10, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, page.Offset(10))

	page, err = Paginate(100, 10, 7)
	require.NoError(t, err)
	assert.Equal(t, 60, page.Offset(10))
}
