// Package distribution records sale and give-away events. An event is one
// Distribution document plus one Dist_Item join document per line; each
// line also decrements its item's stock. The steps are individual remote
// writes with no surrounding transaction: a failure partway leaves every
// earlier write, including the Distribution document itself, committed.
// Callers get a bare false and reconcile the remainder by hand.
package distribution

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Mangum87/Charis/internal/domain/models"
	"github.com/Mangum87/Charis/internal/repository"
	"github.com/Mangum87/Charis/internal/store"
)

const (
	distCollection     = "Distribution"
	distItemCollection = "Dist_Item"
)

// Service is the distribution orchestrator.
type Service struct {
	store  store.Store
	items  *repository.ItemRepository
	users  *repository.UserRepository
	logger *zap.Logger
}

// NewService wires the distribution service.
func NewService(st store.Store, items *repository.ItemRepository, users *repository.UserRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: st, items: items, users: users, logger: logger}
}

// CreateDistribution writes one event document and returns it with its
// store-assigned id. Amount is the tax-inclusive total exactly as entered;
// it is never recomputed from the event's lines. Nil on failure.
func (s *Service) CreateDistribution(amount float64, date time.Time, user *models.User) *models.Distribution {
	if user == nil {
		return nil
	}

	op := s.store.Add(distCollection, store.Fields{
		"amount": amount,
		"date":   date,
		"user":   strings.ToLower(user.Username),
	})
	if !store.Await(op) {
		s.logger.Error("create distribution", zap.Error(op.Err()))
		return nil
	}

	return &models.Distribution{ID: op.ID(), Amount: amount, Date: date, User: user}
}

// RecordDistribution validates the line pairings, writes the event, then
// writes each line and decrements its item's stock. Non-sellable lines are
// processed before sellable ones. A pairing mismatch fails before anything
// is written. A line failure aborts the rest, but lines already processed
// and the Distribution document itself stay committed; there is no
// compensating transaction.
func (s *Service) RecordDistribution(sell []*models.SellableItem, sellQty []int, nonSell []*models.NonSellableItem, nonSellQty []int, amount float64, date time.Time, user *models.User) bool {
	if len(sell) != len(sellQty) || len(nonSell) != len(nonSellQty) {
		return false
	}

	dist := s.CreateDistribution(amount, date, user)
	if dist == nil {
		return false
	}

	for i, item := range nonSell {
		if !s.saveLine(item, nonSellQty[i], dist.ID) {
			return false
		}
	}
	for i, item := range sell {
		if !s.saveLine(item, sellQty[i], dist.ID) {
			return false
		}
	}
	return true
}

// GetDistributionsByMonth returns every distribution dated inside the
// given month, each with its user resolved. Never nil; empty when none
// match or the read fails.
func (s *Service) GetDistributionsByMonth(month time.Month, year int) []models.Distribution {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	op := s.store.Find(distCollection, store.Gte("date", start), store.Lt("date", end))
	if !store.Await(op) {
		s.logger.Error("list distributions", zap.Error(op.Err()))
		return []models.Distribution{}
	}

	snaps := op.Snapshots()
	dists := make([]models.Distribution, 0, len(snaps))
	for _, snap := range snaps {
		dists = append(dists, models.Distribution{
			ID:     snap.ID,
			Amount: snap.Float("amount"),
			Date:   snap.Time("date"),
			User:   s.users.GetUser(snap.Str("user")),
		})
	}
	return dists
}

// saveLine writes one Dist_Item row, decrements the in-memory quantity,
// and persists the new quantity to the item's subtype document.
func (s *Service) saveLine(item models.InventoryItem, qty int, distID string) bool {
	op := s.store.Add(distItemCollection, store.Fields{
		"dist":     distID,
		"item":     item.Base().ID,
		"quantity": qty,
	})
	if !store.Await(op) {
		s.logger.Error("create distribution line",
			zap.String("dist", distID), zap.String("item", item.Base().ID), zap.Error(op.Err()))
		return false
	}

	item.Base().DecreaseQuantity(qty)
	return s.items.UpdateQuantity(item)
}
