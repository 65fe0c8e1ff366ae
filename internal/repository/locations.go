package repository

import (
	"go.uber.org/zap"

	"github.com/Mangum87/Charis/internal/domain/models"
	"github.com/Mangum87/Charis/internal/store"
)

const locationCollection = "Location"

// LocationRepository persists storage locations under store-assigned ids.
// A document with a missing name reads back as "".
type LocationRepository struct {
	store  store.Store
	logger *zap.Logger
}

// NewLocationRepository wires a location repository.
func NewLocationRepository(st store.Store, logger *zap.Logger) *LocationRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocationRepository{store: st, logger: logger}
}

// Create writes a location and returns it with its assigned id. Nil on
// failure.
func (r *LocationRepository) Create(name string) *models.Location {
	op := r.store.Add(locationCollection, store.Fields{"name": name})
	if !store.Await(op) {
		r.logger.Error("create location", zap.Error(op.Err()))
		return nil
	}
	return &models.Location{ID: op.ID(), Name: name}
}

// Get returns the location with the given id, or nil when it does not
// exist or the read fails.
func (r *LocationRepository) Get(id string) *models.Location {
	op := r.store.Get(locationCollection, id)
	if !store.Await(op) {
		r.logger.Error("get location", zap.String("id", id), zap.Error(op.Err()))
		return nil
	}

	snap := op.Snapshot()
	if !snap.Exists() {
		return nil
	}
	return &models.Location{ID: id, Name: snap.Str("name")}
}

// Update writes the location's name.
func (r *LocationRepository) Update(loc *models.Location) bool {
	if loc == nil {
		return false
	}

	op := r.store.Update(locationCollection, loc.ID, store.Fields{"name": loc.Name})
	if !store.Await(op) {
		r.logger.Error("update location", zap.String("id", loc.ID), zap.Error(op.Err()))
		return false
	}
	return true
}

// GetAll returns every location. Never nil; empty when none exist or the
// read fails.
func (r *LocationRepository) GetAll() []models.Location {
	op := r.store.Find(locationCollection)
	if !store.Await(op) {
		r.logger.Error("list locations", zap.Error(op.Err()))
		return []models.Location{}
	}

	snaps := op.Snapshots()
	locs := make([]models.Location, 0, len(snaps))
	for _, snap := range snaps {
		locs = append(locs, models.Location{ID: snap.ID, Name: snap.Str("name")})
	}
	return locs
}
