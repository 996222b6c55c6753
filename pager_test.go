package hdns

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageMeta(page, lastPage, total int) *Meta {
	return &Meta{Pagination: Pagination{
		Page:         page,
		PerPage:      2,
		LastPage:     lastPage,
		TotalEntries: total,
	}}
}

func TestPager_WalksAllPagesInOrder(t *testing.T) {
	calls := map[int]int{}
	fetch := func(ctx context.Context, page int) ([]int, *Meta, error) {
		calls[page]++
		switch page {
		case 1:
			return []int{1, 2}, pageMeta(1, 3, 6), nil
		case 2:
			return []int{3, 4}, pageMeta(2, 3, 6), nil
		case 3:
			return []int{5, 6}, pageMeta(3, 3, 6), nil
		default:
			return nil, nil, errors.New("unexpected page")
		}
	}

	pager := newPager(context.Background(), 0, fetch)
	var got []int
	for pager.Next() {
		got = append(got, pager.Current())
	}

	require.NoError(t, pager.Err())
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, got)
	assert.Len(t, calls, 3)
	for page, n := range calls {
		assert.Equal(t, 1, n, "page %d fetched %d times", page, n)
	}
}

func TestPager_IsLazy(t *testing.T) {
	fetches := 0
	fetch := func(ctx context.Context, page int) ([]int, *Meta, error) {
		fetches++
		return []int{1}, nil, nil
	}

	pager := newPager(context.Background(), 0, fetch)
	assert.Equal(t, 0, fetches, "no fetch before the first Next call")

	require.True(t, pager.Next())
	assert.Equal(t, 1, fetches)
}

func TestPager_MissingMetaMeansSinglePage(t *testing.T) {
	fetches := 0
	fetch := func(ctx context.Context, page int) ([]string, *Meta, error) {
		fetches++
		return []string{"a", "b"}, nil, nil
	}

	pager := newPager(context.Background(), 0, fetch)
	var got []string
	for pager.Next() {
		got = append(got, pager.Current())
	}

	require.NoError(t, pager.Err())
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, 1, fetches)
}

func TestPager_ErrorStopsIteration(t *testing.T) {
	boom := errors.New("boom")
	fetches := 0
	fetch := func(ctx context.Context, page int) ([]int, *Meta, error) {
		fetches++
		if page == 1 {
			return []int{1, 2}, pageMeta(1, 3, 6), nil
		}
		return nil, nil, boom
	}

	pager := newPager(context.Background(), 0, fetch)
	var got []int
	for pager.Next() {
		got = append(got, pager.Current())
	}

	assert.Equal(t, []int{1, 2}, got, "elements before the failure are still yielded")
	assert.ErrorIs(t, pager.Err(), boom)

	// Exhausted pagers stay exhausted without refetching.
	assert.False(t, pager.Next())
	assert.Equal(t, 2, fetches)
}

func TestPager_EmptyListing(t *testing.T) {
	fetch := func(ctx context.Context, page int) ([]int, *Meta, error) {
		return nil, pageMeta(1, 1, 0), nil
	}

	pager := newPager(context.Background(), 0, fetch)
	assert.False(t, pager.Next())
	assert.NoError(t, pager.Err())
}

func TestPager_StartsAtRequestedPage(t *testing.T) {
	var first int
	fetch := func(ctx context.Context, page int) ([]int, *Meta, error) {
		if first == 0 {
			first = page
		}
		return []int{page}, pageMeta(page, 4, 4), nil
	}

	pager := newPager(context.Background(), 3, fetch)
	var got []int
	for pager.Next() {
		got = append(got, pager.Current())
	}

	require.NoError(t, pager.Err())
	assert.Equal(t, 3, first)
	assert.Equal(t, []int{3, 4}, got)
}

func TestPager_MetaExposed(t *testing.T) {
	fetch := func(ctx context.Context, page int) ([]int, *Meta, error) {
		return []int{1}, pageMeta(1, 1, 1), nil
	}

	pager := newPager(context.Background(), 0, fetch)
	assert.Nil(t, pager.Meta())
	require.True(t, pager.Next())
	require.NotNil(t, pager.Meta())
	assert.Equal(t, 1, pager.Meta().Pagination.TotalEntries)
}

func TestCollect(t *testing.T) {
	fetch := func(ctx context.Context, page int) ([]int, *Meta, error) {
		if page == 1 {
			return []int{1, 2}, pageMeta(1, 2, 3), nil
		}
		return []int{3}, pageMeta(2, 2, 3), nil
	}

	got, err := Collect(newPager(context.Background(), 0, fetch))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestCollect_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	fetch := func(ctx context.Context, page int) ([]int, *Meta, error) {
		return nil, nil, boom
	}

	got, err := Collect(newPager(context.Background(), 0, fetch))
	assert.Nil(t, got)
	assert.ErrorIs(t, err, boom)
}
