package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Mangum87/Charis/internal/domain/models"
	"github.com/Mangum87/Charis/internal/repository"
	"github.com/Mangum87/Charis/internal/service/distribution"
)

// DistributionsHandler exposes sale recording and the monthly report
// query.
type DistributionsHandler struct {
	dists  *distribution.Service
	items  *repository.ItemRepository
	users  *repository.UserRepository
	logger *zap.Logger
}

// NewDistributionsHandler constructs the distribution HTTP adapter.
func NewDistributionsHandler(svc *distribution.Service, items *repository.ItemRepository, users *repository.UserRepository, logger *zap.Logger) *DistributionsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DistributionsHandler{dists: svc, items: items, users: users, logger: logger}
}

type distLine struct {
	ID       string `json:"id" binding:"required"`
	Sellable *bool  `json:"sellable" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

type recordDistributionRequest struct {
	Amount float64    `json:"amount"`
	Date   time.Time  `json:"date" binding:"required"`
	Lines  []distLine `json:"lines" binding:"required"`
}

// Record writes a distribution for the authenticated operator. The amount
// is stored as submitted, tax included; it is not reconciled against the
// lines.
func (h *DistributionsHandler) Record(c *gin.Context) {
	var req recordDistributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user := h.users.GetUser(c.GetString(ctxUsername))
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown operator"})
		return
	}

	var sell []*models.SellableItem
	var sellQty []int
	var nonSell []*models.NonSellableItem
	var nonSellQty []int
	for _, line := range req.Lines {
		if *line.Sellable {
			item := h.items.GetSellable(line.ID)
			if item == nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown item " + line.ID})
				return
			}
			sell = append(sell, item)
			sellQty = append(sellQty, line.Quantity)
		} else {
			item := h.items.GetNonSellable(line.ID)
			if item == nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown item " + line.ID})
				return
			}
			nonSell = append(nonSell, item)
			nonSellQty = append(nonSellQty, line.Quantity)
		}
	}

	if !h.dists.RecordDistribution(sell, sellQty, nonSell, nonSellQty, req.Amount, req.Date, user) {
		// Earlier lines may already be committed; the caller reconciles.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "distribution not fully recorded"})
		return
	}
	c.Status(http.StatusCreated)
}

// ListByMonth returns the distributions recorded in one calendar month.
func (h *DistributionsHandler) ListByMonth(c *gin.Context) {
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be 1-12"})
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year is required"})
		return
	}

	dists := h.dists.GetDistributionsByMonth(time.Month(month), year)
	out := make([]gin.H, 0, len(dists))
	for _, d := range dists {
		entry := gin.H{"id": d.ID, "amount": d.Amount, "date": d.Date}
		if d.User != nil {
			entry["user"] = d.User.Username
		}
		out = append(out, entry)
	}
	c.JSON(http.StatusOK, out)
}
