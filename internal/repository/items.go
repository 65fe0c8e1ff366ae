package repository

import (
	"go.uber.org/zap"

	"github.com/Mangum87/Charis/internal/domain/models"
	"github.com/Mangum87/Charis/internal/store"
)

const (
	itemCollection        = "Item"
	sellableCollection    = "Sellable"
	nonSellableCollection = "NonSellable"
)

// ItemRepository keeps the two halves of a logical item consistent by
// convention: the shared fields live in the Item collection and the
// subtype fields in Sellable or NonSellable, both keyed by the same
// 13-digit barcode. The halves are written with separate remote calls;
// there is no multi-document transaction to lean on, so a failure between
// them leaves the item split. That gap is documented, not hidden.
type ItemRepository struct {
	store      store.Store
	categories *CategoryRepository
	locations  *LocationRepository
	logger     *zap.Logger
}

// NewItemRepository wires an item repository over the store and the
// catalog repositories it resolves references through.
func NewItemRepository(st store.Store, cats *CategoryRepository, locs *LocationRepository, logger *zap.Logger) *ItemRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ItemRepository{store: st, categories: cats, locations: locs, logger: logger}
}

// CreateSellable writes the base document and then the Sellable subtype
// document. When the base write fails the subtype write is skipped and the
// create fails as a whole.
func (r *ItemRepository) CreateSellable(item *models.SellableItem) bool {
	if item == nil {
		return false
	}
	if !r.createBase(&item.Item) {
		return false
	}

	op := r.store.Set(sellableCollection, item.ID, store.Fields{
		"quantity": item.Quantity,
		"location": locationID(item.Location),
	})
	if !store.Await(op) {
		r.logger.Error("create sellable", zap.String("id", item.ID), zap.Error(op.Err()))
		return false
	}
	return true
}

// CreateNonSellable writes the base document and then the NonSellable
// subtype document, with the same ordering rule as CreateSellable.
func (r *ItemRepository) CreateNonSellable(item *models.NonSellableItem) bool {
	if item == nil {
		return false
	}
	if !r.createBase(&item.Item) {
		return false
	}

	op := r.store.Set(nonSellableCollection, item.ID, store.Fields{
		"source":   item.Source,
		"quantity": item.Quantity,
		"location": locationID(item.Location),
	})
	if !store.Await(op) {
		r.logger.Error("create nonsellable", zap.String("id", item.ID), zap.Error(op.Err()))
		return false
	}
	return true
}

// GetSellable joins the base and Sellable documents for id into one item.
// Nil when either half is missing or a read fails.
func (r *ItemRepository) GetSellable(id string) *models.SellableItem {
	base := r.getBase(id)
	if base == nil {
		return nil
	}

	op := r.store.Get(sellableCollection, id)
	if !store.Await(op) {
		r.logger.Error("get sellable", zap.String("id", id), zap.Error(op.Err()))
		return nil
	}
	snap := op.Snapshot()
	if !snap.Exists() {
		return nil
	}

	return models.NewSellableItem(
		id,
		base.Time("received"),
		base.Str("description"),
		snap.Int("quantity"),
		models.ConditionFromInt(base.Int("condition")),
		base.Float("price"),
		r.categories.Get(base.Str("category")),
		r.locations.Get(snap.Str("location")),
	)
}

// GetNonSellable joins the base and NonSellable documents for id into one
// item. Nil when either half is missing or a read fails. A null source
// reads back as "".
func (r *ItemRepository) GetNonSellable(id string) *models.NonSellableItem {
	base := r.getBase(id)
	if base == nil {
		return nil
	}

	op := r.store.Get(nonSellableCollection, id)
	if !store.Await(op) {
		r.logger.Error("get nonsellable", zap.String("id", id), zap.Error(op.Err()))
		return nil
	}
	snap := op.Snapshot()
	if !snap.Exists() {
		return nil
	}

	return models.NewNonSellableItem(
		id,
		base.Time("received"),
		base.Str("description"),
		snap.Int("quantity"),
		models.ConditionFromInt(base.Int("condition")),
		base.Float("price"),
		r.categories.Get(base.Str("category")),
		snap.Str("source"),
		r.locations.Get(snap.Str("location")),
	)
}

// UpdateSellable persists the subtype fields and then the base fields as
// separate sequential writes. A failure between the two leaves the halves
// inconsistent.
func (r *ItemRepository) UpdateSellable(item *models.SellableItem) bool {
	if item == nil {
		return false
	}

	op1 := r.store.Update(sellableCollection, item.ID, store.Fields{"quantity": item.Quantity})
	op2 := r.store.Update(sellableCollection, item.ID, store.Fields{"location": locationID(item.Location)})
	if !store.AwaitAll(op1, op2) {
		r.logger.Error("update sellable", zap.String("id", item.ID))
		return false
	}

	return r.updateBase(&item.Item)
}

// UpdateNonSellable persists the subtype fields and then the base fields,
// with the same ordering and the same inconsistency window as
// UpdateSellable.
func (r *ItemRepository) UpdateNonSellable(item *models.NonSellableItem) bool {
	if item == nil {
		return false
	}

	op1 := r.store.Update(nonSellableCollection, item.ID, store.Fields{"source": item.Source})
	op2 := r.store.Update(nonSellableCollection, item.ID, store.Fields{"quantity": item.Quantity})
	op3 := r.store.Update(nonSellableCollection, item.ID, store.Fields{"location": locationID(item.Location)})
	if !store.AwaitAll(op1, op2, op3) {
		r.logger.Error("update nonsellable", zap.String("id", item.ID))
		return false
	}

	return r.updateBase(&item.Item)
}

// UpdateQuantity writes only the subtype document's quantity, sparing the
// base document a write during sales.
func (r *ItemRepository) UpdateQuantity(item models.InventoryItem) bool {
	if item == nil {
		return false
	}

	col := nonSellableCollection
	if item.Sellable() {
		col = sellableCollection
	}

	op := r.store.Update(col, item.Base().ID, store.Fields{"quantity": item.Base().Quantity})
	if !store.Await(op) {
		r.logger.Error("update quantity", zap.String("id", item.Base().ID), zap.Error(op.Err()))
		return false
	}
	return true
}

// createBase writes the shared Item document. A negative price is coerced
// to 0.0 at the write boundary.
func (r *ItemRepository) createBase(item *models.Item) bool {
	price := item.Price
	if price < 0 {
		price = 0.0
	}

	op := r.store.Set(itemCollection, item.ID, store.Fields{
		"ID":          item.ID,
		"received":    item.Received,
		"description": item.Description,
		"condition":   item.Condition.Int(),
		"price":       price,
		"category":    categoryID(item.Category),
	})
	if !store.Await(op) {
		r.logger.Error("create item", zap.String("id", item.ID), zap.Error(op.Err()))
		return false
	}
	return true
}

// updateBase writes the shared fields, one update per field combined into
// a single outcome.
func (r *ItemRepository) updateBase(item *models.Item) bool {
	price := item.Price
	if price < 0 {
		price = 0.0
	}

	op1 := r.store.Update(itemCollection, item.ID, store.Fields{"received": item.Received})
	op2 := r.store.Update(itemCollection, item.ID, store.Fields{"description": item.Description})
	op3 := r.store.Update(itemCollection, item.ID, store.Fields{"condition": item.Condition.Int()})
	op4 := r.store.Update(itemCollection, item.ID, store.Fields{"price": price})

	if !store.AwaitAll(op1, op2, op3, op4) {
		r.logger.Error("update item", zap.String("id", item.ID))
		return false
	}
	return true
}

// getBase reads the shared half of an item. Nil when missing or failed.
func (r *ItemRepository) getBase(id string) *store.Snapshot {
	op := r.store.Get(itemCollection, id)
	if !store.Await(op) {
		r.logger.Error("get item", zap.String("id", id), zap.Error(op.Err()))
		return nil
	}

	snap := op.Snapshot()
	if !snap.Exists() {
		return nil
	}
	return &snap
}

func categoryID(c *models.Category) string {
	if c == nil {
		return ""
	}
	return c.ID
}

func locationID(l *models.Location) string {
	if l == nil {
		return ""
	}
	return l.ID
}
