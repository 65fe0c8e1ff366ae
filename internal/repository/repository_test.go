package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Mangum87/Charis/internal/domain/models"
	"github.com/Mangum87/Charis/internal/store"
)

// testRepos bundles the repositories every test needs, all backed by one
// in-memory store.
type testRepos struct {
	store      *store.MemStore
	users      *UserRepository
	categories *CategoryRepository
	locations  *LocationRepository
	items      *ItemRepository
}

func newTestRepos(t *testing.T) *testRepos {
	t.Helper()

	st := store.NewMemStore()
	cats := NewCategoryRepository(st, nil)
	locs := NewLocationRepository(st, nil)

	return &testRepos{
		store:      st,
		users:      NewUserRepository(st, nil),
		categories: cats,
		locations:  locs,
		items:      NewItemRepository(st, cats, locs, nil),
	}
}

// newCatalog seeds a category and a location and fails the test if either
// write does not go through.
func (r *testRepos) newCatalog(t *testing.T) (*models.Category, *models.Location) {
	t.Helper()

	cat := r.categories.Create("clothing")
	require.NotNil(t, cat)
	loc := r.locations.Create("back room")
	require.NotNil(t, loc)
	return cat, loc
}

func testDate() time.Time {
	return time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)
}
