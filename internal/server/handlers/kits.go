package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Mangum87/Charis/internal/domain/models"
	"github.com/Mangum87/Charis/internal/repository"
	"github.com/Mangum87/Charis/internal/service/kits"
)

// KitsHandler exposes kit listing, composition and saving.
type KitsHandler struct {
	kits   *kits.Service
	items  *repository.ItemRepository
	logger *zap.Logger
}

// NewKitsHandler constructs the kit HTTP adapter.
func NewKitsHandler(svc *kits.Service, items *repository.ItemRepository, logger *zap.Logger) *KitsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KitsHandler{kits: svc, items: items, logger: logger}
}

type kitLine struct {
	ID       string `json:"id" binding:"required"`
	Sellable *bool  `json:"sellable" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

type saveKitRequest struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Items       []kitLine `json:"items" binding:"required"`
}

// List returns every kit.
func (h *KitsHandler) List(c *gin.Context) {
	all := h.kits.GetAllKits()
	out := make([]gin.H, 0, len(all))
	for _, kit := range all {
		out = append(out, gin.H{"id": kit.ID, "name": kit.Name, "description": kit.Description})
	}
	c.JSON(http.StatusOK, out)
}

// Items returns a kit's composition, each line with its per-kit quantity.
func (h *KitsHandler) Items(c *gin.Context) {
	kit := &models.Kit{ID: c.Param("id")}
	items := h.kits.GetItemsFromKit(kit)

	out := make([]itemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, itemToResponse(item))
	}
	c.JSON(http.StatusOK, out)
}

// Save creates or updates a kit and replaces its composition with the
// submitted lines.
func (h *KitsHandler) Save(c *gin.Context) {
	var req saveKitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	items := make([]models.InventoryItem, 0, len(req.Items))
	sellable := make([]bool, 0, len(req.Items))
	quantities := make([]int, 0, len(req.Items))
	for _, line := range req.Items {
		var item models.InventoryItem
		if *line.Sellable {
			if it := h.items.GetSellable(line.ID); it != nil {
				item = it
			}
		} else {
			if it := h.items.GetNonSellable(line.ID); it != nil {
				item = it
			}
		}
		if item == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown item " + line.ID})
			return
		}
		items = append(items, item)
		sellable = append(sellable, *line.Sellable)
		quantities = append(quantities, line.Quantity)
	}

	var kit *models.Kit
	if req.ID != "" {
		kit = &models.Kit{ID: req.ID}
	}

	if !h.kits.SaveKit(kit, req.Name, req.Description, items, sellable, quantities) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "kit not saved"})
		return
	}
	c.Status(http.StatusNoContent)
}
