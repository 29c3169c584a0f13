package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio_aggregator/internal/app/port"
	"portfolio_aggregator/internal/domain/entity"
)

// APIDeFiResponse wraps protocol positions for the HTTP surface.
type APIDeFiResponse struct {
	Data          []entity.DeFiPosition `json:"data"`
	StatusMessage string                `json:"status_message"`
}

// DeFiHandler serves protocol position endpoints.
type DeFiHandler struct {
	adapters map[entity.DeFiProtocol]port.ProtocolAdapter
	logger   port.Logger
}

// NewDeFiHandler creates a new DeFiHandler.
func NewDeFiHandler(logger port.Logger, adapters ...port.ProtocolAdapter) *DeFiHandler {
	byProtocol := make(map[entity.DeFiProtocol]port.ProtocolAdapter, len(adapters))
	for _, adapter := range adapters {
		byProtocol[adapter.Protocol()] = adapter
	}
	return &DeFiHandler{adapters: byProtocol, logger: logger}
}

// GetPositionsHandler lists a wallet's positions on one protocol. The wallet
// does not have to be registered; any address can be queried.
func (h *DeFiHandler) GetPositionsHandler(c *gin.Context) {
	ctx := c.Request.Context()

	protocol := entity.DeFiProtocol(c.Param("protocol"))
	adapter, ok := h.adapters[protocol]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown protocol " + string(protocol)})
		return
	}

	walletAddress := c.Param("address")
	positions, err := adapter.Positions(ctx, walletAddress)
	if err != nil {
		h.logger.Error("failed to fetch protocol positions",
			"protocol", protocol, "wallet", walletAddress, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "protocol API unavailable"})
		return
	}

	if positions == nil {
		positions = []entity.DeFiPosition{}
	}
	c.JSON(http.StatusOK, APIDeFiResponse{
		Data:          positions,
		StatusMessage: "Positions retrieved successfully.",
	})
}
