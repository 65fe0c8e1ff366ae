package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Mangum87/Charis/internal/barcode"
	"github.com/Mangum87/Charis/internal/domain/models"
	"github.com/Mangum87/Charis/internal/repository"
)

// ItemsHandler exposes item creation, lookup and update.
type ItemsHandler struct {
	items      *repository.ItemRepository
	categories *repository.CategoryRepository
	locations  *repository.LocationRepository
	logger     *zap.Logger
}

// NewItemsHandler constructs the item HTTP adapter.
func NewItemsHandler(items *repository.ItemRepository, cats *repository.CategoryRepository, locs *repository.LocationRepository, logger *zap.Logger) *ItemsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ItemsHandler{items: items, categories: cats, locations: locs, logger: logger}
}

type itemRequest struct {
	ID          string    `json:"id"`
	Sellable    *bool     `json:"sellable" binding:"required"`
	Received    time.Time `json:"received" binding:"required"`
	Description string    `json:"description"`
	Condition   int       `json:"condition"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	Category    string    `json:"category" binding:"required"`
	Location    string    `json:"location" binding:"required"`
	Source      string    `json:"source"`
}

type itemResponse struct {
	ID          string    `json:"id"`
	Sellable    bool      `json:"sellable"`
	Received    time.Time `json:"received"`
	Description string    `json:"description"`
	Condition   string    `json:"condition"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Source      string    `json:"source,omitempty"`
}

func itemToResponse(item models.InventoryItem) itemResponse {
	base := item.Base()
	resp := itemResponse{
		ID:          base.ID,
		Sellable:    item.Sellable(),
		Received:    base.Received,
		Description: base.Description,
		Condition:   base.Condition.String(),
		Quantity:    base.Quantity,
		Price:       base.Price,
	}
	if base.Category != nil {
		resp.Category = base.Category.ID
	}
	if base.Location != nil {
		resp.Location = base.Location.ID
	}
	if ns, ok := item.(*models.NonSellableItem); ok {
		resp.Source = ns.Source
	}
	return resp
}

// Create registers a new item. The barcode is generated when the request
// does not carry one.
func (h *ItemsHandler) Create(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id := req.ID
	if id == "" {
		id = barcode.New()
	} else if !barcode.Valid(id) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a 13-digit barcode"})
		return
	}

	cat := h.categories.Get(req.Category)
	if cat == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return
	}
	loc := h.locations.Get(req.Location)
	if loc == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown location"})
		return
	}

	cond := models.ConditionFromInt(req.Condition)

	var created models.InventoryItem
	if *req.Sellable {
		item := models.NewSellableItem(id, req.Received, req.Description, req.Quantity, cond, req.Price, cat, loc)
		if !h.items.CreateSellable(item) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "item not saved"})
			return
		}
		created = item
	} else {
		item := models.NewNonSellableItem(id, req.Received, req.Description, req.Quantity, cond, req.Price, cat, req.Source, loc)
		if !h.items.CreateNonSellable(item) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "item not saved"})
			return
		}
		created = item
	}

	c.JSON(http.StatusCreated, itemToResponse(created))
}

// Get looks up one item by barcode. The sellable query flag picks the
// subtype collection; it defaults to sellable.
func (h *ItemsHandler) Get(c *gin.Context) {
	id := c.Param("id")
	sellable, err := strconv.ParseBool(c.DefaultQuery("sellable", "true"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sellable must be a boolean"})
		return
	}

	var item models.InventoryItem
	if sellable {
		if it := h.items.GetSellable(id); it != nil {
			item = it
		}
	} else {
		if it := h.items.GetNonSellable(id); it != nil {
			item = it
		}
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}

	c.JSON(http.StatusOK, itemToResponse(item))
}

// Update rewrites an existing item's fields.
func (h *ItemsHandler) Update(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id := c.Param("id")
	cat := h.categories.Get(req.Category)
	loc := h.locations.Get(req.Location)
	if cat == nil || loc == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category or location"})
		return
	}

	cond := models.ConditionFromInt(req.Condition)

	var ok bool
	var updated models.InventoryItem
	if *req.Sellable {
		item := models.NewSellableItem(id, req.Received, req.Description, req.Quantity, cond, req.Price, cat, loc)
		ok = h.items.UpdateSellable(item)
		updated = item
	} else {
		item := models.NewNonSellableItem(id, req.Received, req.Description, req.Quantity, cond, req.Price, cat, req.Source, loc)
		ok = h.items.UpdateNonSellable(item)
		updated = item
	}
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "item not updated"})
		return
	}

	c.JSON(http.StatusOK, itemToResponse(updated))
}
