package restapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio_aggregator/internal/app/port"
	"portfolio_aggregator/internal/domain/entity"
)

// APIValuationResponse wraps the aggregated valuation for the HTTP surface.
type APIValuationResponse struct {
	Data          entity.AggregatedValuation `json:"data"`
	StatusMessage string                     `json:"status_message"`
}

// ValuationHandler serves the portfolio valuation endpoints.
type ValuationHandler struct {
	aggregator port.Aggregator
	wallets    port.WalletProvider
	logger     port.Logger
}

// NewValuationHandler creates a new ValuationHandler.
func NewValuationHandler(aggregator port.Aggregator, wallets port.WalletProvider, logger port.Logger) *ValuationHandler {
	return &ValuationHandler{
		aggregator: aggregator,
		wallets:    wallets,
		logger:     logger,
	}
}

// GetValuationHandler values every registered wallet across all of its
// networks. Degraded legs are reported in data.skipped, not as an HTTP error.
func (h *ValuationHandler) GetValuationHandler(c *gin.Context) {
	ctx := c.Request.Context()

	wallets, err := h.wallets.Wallets()
	if err != nil {
		h.logger.Error("failed to load wallets", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load wallet registry"})
		return
	}

	valuation, err := h.aggregator.Aggregate(ctx, wallets)
	if err != nil {
		h.logger.Error("aggregation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "aggregation failed"})
		return
	}

	response := APIValuationResponse{Data: valuation}
	switch {
	case len(valuation.Skipped) > 0 && len(valuation.Assets) == 0:
		response.StatusMessage = "No balances could be retrieved; every source degraded."
	case len(valuation.Skipped) > 0:
		response.StatusMessage = "Valuation retrieved. Some sources degraded to zero contributions."
	default:
		response.StatusMessage = "Valuation retrieved successfully."
	}
	c.JSON(http.StatusOK, response)
}

// GetWalletBalancesHandler values a single registered wallet. The optional
// networks query parameter narrows the run to a comma-separated subset of the
// wallet's configured networks.
func (h *ValuationHandler) GetWalletBalancesHandler(c *gin.Context) {
	ctx := c.Request.Context()

	wallet, ok := h.wallets.WalletByAddress(c.Param("address"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "wallet is not registered"})
		return
	}

	if raw := c.Query("networks"); raw != "" {
		configured := make(map[entity.ChainID]struct{}, len(wallet.Networks))
		for _, id := range wallet.Networks {
			configured[id] = struct{}{}
		}
		var selected []entity.ChainID
		for _, part := range strings.Split(raw, ",") {
			id := entity.ChainID(strings.TrimSpace(part))
			if _, ok := configured[id]; !ok {
				c.JSON(http.StatusBadRequest, gin.H{
					"error": "network " + string(id) + " is not configured for this wallet",
				})
				return
			}
			selected = append(selected, id)
		}
		wallet.Networks = selected
	}

	valuation, err := h.aggregator.Aggregate(ctx, []entity.Wallet{wallet})
	if err != nil {
		h.logger.Error("aggregation failed", "wallet", wallet.Address, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "aggregation failed"})
		return
	}
	c.JSON(http.StatusOK, APIValuationResponse{
		Data:          valuation,
		StatusMessage: "Valuation retrieved successfully.",
	})
}
