package distribution

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mangum87/Charis/internal/domain/models"
	"github.com/Mangum87/Charis/internal/repository"
	"github.com/Mangum87/Charis/internal/store"
)

type fixture struct {
	store *store.MemStore
	items *repository.ItemRepository
	svc   *Service

	user *models.User
	cat  *models.Category
	loc  *models.Location
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st := store.NewMemStore()
	cats := repository.NewCategoryRepository(st, nil)
	locs := repository.NewLocationRepository(st, nil)
	items := repository.NewItemRepository(st, cats, locs, nil)
	users := repository.NewUserRepository(st, nil)

	user := users.CreateUser("jody", "hunter2", false, true, "Jody", "Smith")
	require.NotNil(t, user)
	cat := cats.Create("clothing")
	require.NotNil(t, cat)
	loc := locs.Create("back room")
	require.NotNil(t, loc)

	return &fixture{
		store: st,
		items: items,
		svc:   NewService(st, items, users, nil),
		user:  user,
		cat:   cat,
		loc:   loc,
	}
}

func (f *fixture) newSellable(t *testing.T, id string, qty int) *models.SellableItem {
	t.Helper()

	item := models.NewSellableItem(id, saleDate(), "item "+id, qty, models.ConditionGood, 5, f.cat, f.loc)
	require.True(t, f.items.CreateSellable(item))
	return item
}

func (f *fixture) newNonSellable(t *testing.T, id string, qty int) *models.NonSellableItem {
	t.Helper()

	item := models.NewNonSellableItem(id, saleDate(), "item "+id, qty, models.ConditionGood, 0, f.cat, "donor", f.loc)
	require.True(t, f.items.CreateNonSellable(item))
	return item
}

func saleDate() time.Time {
	return time.Date(2024, time.June, 12, 14, 30, 0, 0, time.UTC)
}

func TestCreateDistribution(t *testing.T) {
	f := newFixture(t)

	dist := f.svc.CreateDistribution(31.50, saleDate(), f.user)
	require.NotNil(t, dist)
	assert.NotEmpty(t, dist.ID)
	assert.Equal(t, 31.50, dist.Amount)
	assert.Equal(t, 1, f.store.Count("Distribution"))

	assert.Nil(t, f.svc.CreateDistribution(10, saleDate(), nil))
}

func TestRecordDistributionMismatchWritesNothing(t *testing.T) {
	f := newFixture(t)
	item := f.newSellable(t, "1111111111111", 5)

	ok := f.svc.RecordDistribution(
		[]*models.SellableItem{item}, []int{1, 2},
		nil, nil, 10, saleDate(), f.user)
	assert.False(t, ok)

	ok = f.svc.RecordDistribution(
		nil, nil,
		[]*models.NonSellableItem{}, []int{1}, 10, saleDate(), f.user)
	assert.False(t, ok)

	// Validation failed before any remote call, so no event row exists.
	assert.Equal(t, 0, f.store.Count("Distribution"))
	assert.Equal(t, 0, f.store.Count("Dist_Item"))
}

func TestRecordDistribution(t *testing.T) {
	f := newFixture(t)
	sell := f.newSellable(t, "1111111111111", 5)
	free := f.newNonSellable(t, "2222222222222", 8)

	ok := f.svc.RecordDistribution(
		[]*models.SellableItem{sell}, []int{2},
		[]*models.NonSellableItem{free}, []int{3},
		31.50, saleDate(), f.user)
	require.True(t, ok)

	assert.Equal(t, 1, f.store.Count("Distribution"))
	assert.Equal(t, 2, f.store.Count("Dist_Item"))

	gotSell := f.items.GetSellable("1111111111111")
	require.NotNil(t, gotSell)
	assert.Equal(t, 3, gotSell.Quantity)

	gotFree := f.items.GetNonSellable("2222222222222")
	require.NotNil(t, gotFree)
	assert.Equal(t, 5, gotFree.Quantity)
}

func TestRecordDistributionBelowZero(t *testing.T) {
	f := newFixture(t)
	sell := f.newSellable(t, "1111111111111", 1)

	// Decrement is unconditional once requested; stock goes negative.
	ok := f.svc.RecordDistribution(
		[]*models.SellableItem{sell}, []int{4},
		nil, nil, 0, saleDate(), f.user)
	require.True(t, ok)

	got := f.items.GetSellable("1111111111111")
	require.NotNil(t, got)
	assert.Equal(t, -3, got.Quantity)
}

func TestRecordDistributionPartialFailureKeepsCommittedWrites(t *testing.T) {
	f := newFixture(t)
	sell := f.newSellable(t, "1111111111111", 5)
	free := f.newNonSellable(t, "2222222222222", 8)

	// Non-sellable lines run first, so failing the Sellable quantity
	// write fails the second line only.
	f.store.FailNext("Sellable", "update")

	ok := f.svc.RecordDistribution(
		[]*models.SellableItem{sell}, []int{2},
		[]*models.NonSellableItem{free}, []int{3},
		31.50, saleDate(), f.user)
	assert.False(t, ok)

	// The event row and both join rows were already written and stay
	// committed; only the failing line's stock write is missing. Nothing
	// is rolled back.
	assert.Equal(t, 1, f.store.Count("Distribution"))
	assert.Equal(t, 2, f.store.Count("Dist_Item"))

	gotFree := f.items.GetNonSellable("2222222222222")
	require.NotNil(t, gotFree)
	assert.Equal(t, 5, gotFree.Quantity)

	gotSell := f.items.GetSellable("1111111111111")
	require.NotNil(t, gotSell)
	assert.Equal(t, 5, gotSell.Quantity)
}

func TestRecordDistributionCreateFailureStopsLines(t *testing.T) {
	f := newFixture(t)
	sell := f.newSellable(t, "1111111111111", 5)

	f.store.FailNext("Distribution", "add")
	ok := f.svc.RecordDistribution(
		[]*models.SellableItem{sell}, []int{2},
		nil, nil, 10, saleDate(), f.user)
	assert.False(t, ok)

	assert.Equal(t, 0, f.store.Count("Dist_Item"))
	got := f.items.GetSellable("1111111111111")
	require.NotNil(t, got)
	assert.Equal(t, 5, got.Quantity)
}

func TestGetDistributionsByMonth(t *testing.T) {
	f := newFixture(t)

	require.NotNil(t, f.svc.CreateDistribution(10, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), f.user))
	require.NotNil(t, f.svc.CreateDistribution(20, time.Date(2024, time.June, 30, 23, 59, 0, 0, time.UTC), f.user))
	require.NotNil(t, f.svc.CreateDistribution(30, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), f.user))

	june := f.svc.GetDistributionsByMonth(time.June, 2024)
	require.Len(t, june, 2)
	for _, d := range june {
		require.NotNil(t, d.User)
		assert.Equal(t, "jody", d.User.Username)
	}

	assert.Len(t, f.svc.GetDistributionsByMonth(time.July, 2024), 1)

	empty := f.svc.GetDistributionsByMonth(time.January, 2024)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

// Quantity bookkeeping carries no optimistic-concurrency check: two
// sessions that both read stock before either writes will overwrite each
// other. The layer assumes a single active writer; this test pins the
// lost-update behavior down as a fact rather than asserting safety that
// does not exist.
func TestConcurrentDecrementLosesUpdate(t *testing.T) {
	f := newFixture(t)
	f.newSellable(t, "1111111111111", 10)

	first := f.items.GetSellable("1111111111111")
	second := f.items.GetSellable("1111111111111")
	require.NotNil(t, first)
	require.NotNil(t, second)

	first.DecreaseQuantity(2)
	require.True(t, f.items.UpdateQuantity(first))

	second.DecreaseQuantity(3)
	require.True(t, f.items.UpdateQuantity(second))

	got := f.items.GetSellable("1111111111111")
	require.NotNil(t, got)
	// 10-2-3 would be 5; the second writer clobbers the first.
	assert.Equal(t, 7, got.Quantity)
}
