package restapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// SetupRouter configures the Gin router with the API surface.
func SetupRouter(valuationHandler *ValuationHandler, defiHandler *DeFiHandler, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(ZapLoggerMiddleware(logger))
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/valuation", valuationHandler.GetValuationHandler)
		v1.GET("/wallets/:address/balances", valuationHandler.GetWalletBalancesHandler)
		v1.GET("/defi/:protocol/:address", defiHandler.GetPositionsHandler)
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
