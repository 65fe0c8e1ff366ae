package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryLifecycle(t *testing.T) {
	r := newTestRepos(t)

	cat := r.categories.Create("clothing")
	require.NotNil(t, cat)
	assert.NotEmpty(t, cat.ID)

	got := r.categories.Get(cat.ID)
	require.NotNil(t, got)
	assert.Equal(t, "clothing", got.Name)

	cat.Name = "outerwear"
	require.True(t, r.categories.Update(cat))
	assert.Equal(t, "outerwear", r.categories.Get(cat.ID).Name)

	assert.Nil(t, r.categories.Get("missing"))
	assert.False(t, r.categories.Update(nil))
}

func TestGetAllCategoriesNeverNil(t *testing.T) {
	r := newTestRepos(t)

	cats := r.categories.GetAll()
	assert.NotNil(t, cats)
	assert.Empty(t, cats)

	r.categories.Create("clothing")
	r.categories.Create("toys")
	assert.Len(t, r.categories.GetAll(), 2)
}

func TestLocationLifecycle(t *testing.T) {
	r := newTestRepos(t)

	loc := r.locations.Create("back room")
	require.NotNil(t, loc)

	got := r.locations.Get(loc.ID)
	require.NotNil(t, got)
	assert.Equal(t, "back room", got.Name)

	loc.Name = "front shelf"
	require.True(t, r.locations.Update(loc))
	assert.Equal(t, "front shelf", r.locations.Get(loc.ID).Name)

	locs := r.locations.GetAll()
	assert.NotNil(t, locs)
	assert.Len(t, locs, 1)
}

func TestLocationMissingNameReadsEmpty(t *testing.T) {
	r := newTestRepos(t)

	// A location written with no name field at all still reads back, its
	// name collapsed to "".
	loc := r.locations.Create("")
	require.NotNil(t, loc)
	assert.Equal(t, "", r.locations.Get(loc.ID).Name)
}
