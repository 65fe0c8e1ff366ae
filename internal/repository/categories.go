package repository

import (
	"go.uber.org/zap"

	"github.com/Mangum87/Charis/internal/domain/models"
	"github.com/Mangum87/Charis/internal/store"
)

const categoryCollection = "Category"

// CategoryRepository persists item categories under store-assigned ids.
type CategoryRepository struct {
	store  store.Store
	logger *zap.Logger
}

// NewCategoryRepository wires a category repository.
func NewCategoryRepository(st store.Store, logger *zap.Logger) *CategoryRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CategoryRepository{store: st, logger: logger}
}

// Create writes a category and returns it with its assigned id. Nil on
// failure.
func (r *CategoryRepository) Create(name string) *models.Category {
	op := r.store.Add(categoryCollection, store.Fields{"name": name})
	if !store.Await(op) {
		r.logger.Error("create category", zap.Error(op.Err()))
		return nil
	}
	return &models.Category{ID: op.ID(), Name: name}
}

// Get returns the category with the given id, or nil when it does not
// exist or the read fails.
func (r *CategoryRepository) Get(id string) *models.Category {
	op := r.store.Get(categoryCollection, id)
	if !store.Await(op) {
		r.logger.Error("get category", zap.String("id", id), zap.Error(op.Err()))
		return nil
	}

	snap := op.Snapshot()
	if !snap.Exists() {
		return nil
	}
	return &models.Category{ID: id, Name: snap.Str("name")}
}

// Update writes the category's name.
func (r *CategoryRepository) Update(c *models.Category) bool {
	if c == nil {
		return false
	}

	op := r.store.Update(categoryCollection, c.ID, store.Fields{"name": c.Name})
	if !store.Await(op) {
		r.logger.Error("update category", zap.String("id", c.ID), zap.Error(op.Err()))
		return false
	}
	return true
}

// GetAll returns every category. Never nil; empty when none exist or the
// read fails.
func (r *CategoryRepository) GetAll() []models.Category {
	op := r.store.Find(categoryCollection)
	if !store.Await(op) {
		r.logger.Error("list categories", zap.Error(op.Err()))
		return []models.Category{}
	}

	snaps := op.Snapshots()
	cats := make([]models.Category, 0, len(snaps))
	for _, snap := range snaps {
		cats = append(cats, models.Category{ID: snap.ID, Name: snap.Str("name")})
	}
	return cats
}
