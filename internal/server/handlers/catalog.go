package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Mangum87/Charis/internal/repository"
)

// CatalogHandler exposes categories and locations.
type CatalogHandler struct {
	categories *repository.CategoryRepository
	locations  *repository.LocationRepository
	logger     *zap.Logger
}

// NewCatalogHandler constructs the catalog HTTP adapter.
func NewCatalogHandler(cats *repository.CategoryRepository, locs *repository.LocationRepository, logger *zap.Logger) *CatalogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogHandler{categories: cats, locations: locs, logger: logger}
}

type nameRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateCategory adds a category.
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	cat := h.categories.Create(req.Name)
	if cat == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "category not saved"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": cat.ID, "name": cat.Name})
}

// ListCategories returns every category.
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	cats := h.categories.GetAll()
	out := make([]gin.H, 0, len(cats))
	for _, cat := range cats {
		out = append(out, gin.H{"id": cat.ID, "name": cat.Name})
	}
	c.JSON(http.StatusOK, out)
}

// CreateLocation adds a storage location.
func (h *CatalogHandler) CreateLocation(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	loc := h.locations.Create(req.Name)
	if loc == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "location not saved"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": loc.ID, "name": loc.Name})
}

// ListLocations returns every location.
func (h *CatalogHandler) ListLocations(c *gin.Context) {
	locs := h.locations.GetAll()
	out := make([]gin.H, 0, len(locs))
	for _, loc := range locs {
		out = append(out, gin.H{"id": loc.ID, "name": loc.Name})
	}
	c.JSON(http.StatusOK, out)
}
