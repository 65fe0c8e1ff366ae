// Package kits manages kits and their item composition. A kit's own
// document carries only its name and description; what it contains lives
// entirely in Kit_Item join documents, one per item, each recording how
// many of that item make up one kit.
package kits

import (
	"go.uber.org/zap"

	"github.com/Mangum87/Charis/internal/barcode"
	"github.com/Mangum87/Charis/internal/domain/models"
	"github.com/Mangum87/Charis/internal/repository"
	"github.com/Mangum87/Charis/internal/store"
)

const (
	kitCollection     = "Kit"
	kitItemCollection = "Kit_Item"
)

// Service is the kit relation manager.
type Service struct {
	store  store.Store
	items  *repository.ItemRepository
	logger *zap.Logger
}

// NewService wires the kit service over the store and the item repository
// it resolves kit contents through.
func NewService(st store.Store, items *repository.ItemRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: st, items: items, logger: logger}
}

// GetAllKits returns every kit. Never nil; empty when none exist or the
// read fails.
func (s *Service) GetAllKits() []models.Kit {
	op := s.store.Find(kitCollection)
	if !store.Await(op) {
		s.logger.Error("list kits", zap.Error(op.Err()))
		return []models.Kit{}
	}

	snaps := op.Snapshots()
	kits := make([]models.Kit, 0, len(snaps))
	for _, snap := range snaps {
		kits = append(kits, models.Kit{
			ID:          snap.Str("ID"),
			Name:        snap.Str("name"),
			Description: snap.Str("description"),
		})
	}
	return kits
}

// GetItemsFromKit resolves the kit's join rows into full items. Each
// returned item carries the join row's quantity — how many go into one
// kit — in place of its live stock count; the stock documents themselves
// are untouched. Join rows whose item can no longer be resolved are
// skipped.
func (s *Service) GetItemsFromKit(kit *models.Kit) []models.InventoryItem {
	if kit == nil {
		return []models.InventoryItem{}
	}

	op := s.store.Find(kitItemCollection, store.Eq("kit", kit.ID))
	if !store.Await(op) {
		s.logger.Error("list kit items", zap.String("kit", kit.ID), zap.Error(op.Err()))
		return []models.InventoryItem{}
	}

	snaps := op.Snapshots()
	items := make([]models.InventoryItem, 0, len(snaps))
	for _, snap := range snaps {
		var item models.InventoryItem
		if snap.Bool("sellable") {
			if it := s.items.GetSellable(snap.Str("item")); it != nil {
				item = it
			}
		} else {
			if it := s.items.GetNonSellable(snap.Str("item")); it != nil {
				item = it
			}
		}
		if item == nil {
			s.logger.Warn("kit references missing item",
				zap.String("kit", kit.ID), zap.String("item", snap.Str("item")))
			continue
		}

		item.Base().Quantity = snap.Int("quantity")
		items = append(items, item)
	}
	return items
}

// SaveKit stores a kit's metadata and rewrites its composition in full:
// every existing Kit_Item row for the id is deleted, then one fresh row is
// written per submitted item. No diffing; compositions are small and only
// their current state matters. A nil kit, or one whose id is not a valid
// barcode, becomes a new kit; otherwise only the name and description are
// updated. The three parallel slices must pair up or nothing is written.
func (s *Service) SaveKit(kit *models.Kit, name, desc string, items []models.InventoryItem, sellable []bool, quantities []int) bool {
	if items == nil || sellable == nil || quantities == nil {
		return false
	}
	if len(items) != len(sellable) || len(items) != len(quantities) {
		return false
	}

	if kit == nil || !barcode.Valid(kit.ID) {
		kit = s.createKit(name, desc)
		if kit == nil {
			return false
		}
	} else if !s.updateKit(kit.ID, name, desc) {
		return false
	}

	s.DeleteKitItems(kit.ID)

	for i := range items {
		if !s.createKitItem(kit.ID, items[i].Base().ID, quantities[i], sellable[i]) {
			return false
		}
	}
	return true
}

// DeleteKitItems removes every Kit_Item row for the kit id, one delete per
// row. True only when at least one row existed and all deletes succeeded.
func (s *Service) DeleteKitItems(kitID string) bool {
	op := s.store.Find(kitItemCollection, store.Eq("kit", kitID))
	if !store.Await(op) {
		s.logger.Error("find kit items", zap.String("kit", kitID), zap.Error(op.Err()))
		return false
	}

	snaps := op.Snapshots()
	if len(snaps) == 0 {
		return false
	}

	for _, snap := range snaps {
		del := s.store.Delete(kitItemCollection, snap.ID)
		if !store.Await(del) {
			s.logger.Error("delete kit item", zap.String("kit", kitID), zap.Error(del.Err()))
			return false
		}
	}
	return true
}

// createKit writes a new kit under a generated barcode. Nil on failure.
func (s *Service) createKit(name, desc string) *models.Kit {
	id := barcode.New()

	op := s.store.Set(kitCollection, id, store.Fields{
		"ID":          id,
		"name":        name,
		"description": desc,
	})
	if !store.Await(op) {
		s.logger.Error("create kit", zap.String("id", id), zap.Error(op.Err()))
		return nil
	}
	return &models.Kit{ID: id, Name: name, Description: desc}
}

// updateKit writes only the kit's name and description. Fails when the kit
// does not exist.
func (s *Service) updateKit(id, name, desc string) bool {
	op1 := s.store.Update(kitCollection, id, store.Fields{"name": name})
	op2 := s.store.Update(kitCollection, id, store.Fields{"description": desc})
	if !store.AwaitAll(op1, op2) {
		s.logger.Error("update kit", zap.String("id", id))
		return false
	}
	return true
}

// createKitItem writes one join row.
func (s *Service) createKitItem(kitID, itemID string, quantity int, sellable bool) bool {
	op := s.store.Add(kitItemCollection, store.Fields{
		"kit":      kitID,
		"item":     itemID,
		"quantity": quantity,
		"sellable": sellable,
	})
	if !store.Await(op) {
		s.logger.Error("create kit item",
			zap.String("kit", kitID), zap.String("item", itemID), zap.Error(op.Err()))
		return false
	}
	return true
}
