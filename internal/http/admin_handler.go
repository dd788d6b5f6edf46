package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lottery-secretary/internal/domain"
	"lottery-secretary/internal/repository"
)

const (
	defaultStatisticsLimit = 12
	maxStatisticsLimit     = 120
)

type StatisticsReader interface {
	GetByMonth(ctx context.Context, month string) (domain.MonthlyStatistic, error)
	List(ctx context.Context, limit int) ([]domain.MonthlyStatistic, error)
}

type PricingInvalidator interface {
	Invalidate(ctx context.Context) error
}

// AdminHandler serves the operator endpoints under /admin.
type AdminHandler struct {
	stats   StatisticsReader
	pricing PricingInvalidator
	logger  *zap.Logger
}

func NewAdminHandler(stats StatisticsReader, pricing PricingInvalidator, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{stats: stats, pricing: pricing, logger: logger}
}

// ListStatistics handles GET /admin/statistics.
func (h *AdminHandler) ListStatistics(c *gin.Context) {
	limit := defaultStatisticsLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxStatisticsLimit {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "description": "invalid limit"})
			return
		}
		limit = n
	}

	stats, err := h.stats.List(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("list statistics failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "description": "could not list statistics"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "statistics": stats})
}

// GetStatistic handles GET /admin/statistics/:month.
func (h *AdminHandler) GetStatistic(c *gin.Context) {
	month := c.Param("month")
	if !domain.ValidMonthKey(month) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "description": "month must be YYYY-MM"})
		return
	}

	stat, err := h.stats.GetByMonth(c.Request.Context(), month)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "description": "no statistics for month"})
			return
		}
		h.logger.Error("get statistic failed", zap.Error(err), zap.String("month", month))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "description": "could not load statistics"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "statistic": stat})
}

// InvalidatePricing handles POST /admin/pricing/invalidate.
func (h *AdminHandler) InvalidatePricing(c *gin.Context) {
	if err := h.pricing.Invalidate(c.Request.Context()); err != nil {
		h.logger.Error("pricing invalidation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "description": "could not invalidate pricing cache"})
		return
	}
	if claims, ok := GetAdminClaims(c); ok {
		h.logger.Info("pricing cache invalidated", zap.String("subject", claims.Subject))
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
