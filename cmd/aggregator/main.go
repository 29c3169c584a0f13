package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"

	"portfolio_aggregator/internal/app/port"
	"portfolio_aggregator/internal/app/service"
	"portfolio_aggregator/internal/domain/entity"
	"portfolio_aggregator/internal/infrastructure/chain"
	"portfolio_aggregator/internal/infrastructure/chain/evm"
	"portfolio_aggregator/internal/infrastructure/chain/klaytn"
	"portfolio_aggregator/internal/infrastructure/chain/solana"
	"portfolio_aggregator/internal/infrastructure/chain/tendermint"
	"portfolio_aggregator/internal/infrastructure/configloader"
	"portfolio_aggregator/internal/infrastructure/covalent"
	"portfolio_aggregator/internal/infrastructure/defi/kokonutswap"
	"portfolio_aggregator/internal/infrastructure/priceoracle"
	"portfolio_aggregator/internal/infrastructure/restapi"
	"portfolio_aggregator/internal/infrastructure/tokenregistry"
	"portfolio_aggregator/internal/infrastructure/walletloader"
	"portfolio_aggregator/internal/pkg/keypool"
	"portfolio_aggregator/internal/pkg/logger"
	"portfolio_aggregator/internal/pkg/utils"
	"portfolio_aggregator/pkg/metrics"
)

func main() {
	// .env is optional; real deployments set variables in the environment.
	_ = godotenv.Load()

	zapLogger, err := zap.NewProduction()
	if err != nil {
		logger.Fatal("failed to initialize zap logger", "error", err)
	}
	defer zapLogger.Sync()

	logger.InitWithHandler(zapslog.NewHandler(zapLogger.Core()))
	appLogger := logger.NewSlogAdapter()

	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yaml")
	cfg, err := configloader.Load(cfgPath)
	if err != nil {
		logger.Fatal("failed to load configuration", "path", cfgPath, "error", err)
	}
	logger.Info("configuration loaded", "path", cfgPath, "chains", len(cfg.Chains))

	metrics.MustRegisterMetrics()

	registry, err := tokenregistry.Load(cfg.Files.TokensDir)
	if err != nil {
		logger.Fatal("failed to load token registry", "dir", cfg.Files.TokensDir, "error", err)
	}

	wallets, err := walletloader.Load(cfg.Files.Wallets)
	if err != nil {
		logger.Fatal("failed to load wallets", "path", cfg.Files.Wallets, "error", err)
	}

	oracle := priceoracle.NewClient(
		cfg.CoinGecko.BaseURL,
		time.Duration(cfg.CoinGecko.ClientTimeoutSeconds)*time.Second,
		time.Duration(cfg.CoinGecko.CacheTTLMinutes)*time.Minute,
		cfg.CoinGecko.RequestsPerSecond,
		zapLogger,
	)

	var indexer klaytn.Indexer
	if len(cfg.Covalent.APIKeys) > 0 {
		keys, err := keypool.New(cfg.Covalent.APIKeys)
		if err != nil {
			logger.Fatal("failed to build covalent key pool", "error", err)
		}
		indexer = covalent.NewClient(
			cfg.Covalent.BaseURL,
			time.Duration(cfg.Covalent.ClientTimeoutSeconds)*time.Second,
			keys,
			zapLogger,
		)
	}

	clients, err := buildChainClients(cfg, indexer, registry, oracle, appLogger)
	if err != nil {
		logger.Fatal("failed to build chain adapters", "error", err)
	}
	chainRegistry, err := chain.NewRegistry(clients...)
	if err != nil {
		logger.Fatal("failed to build chain registry", "error", err)
	}

	// Warm the oracle cache so the first valuation request does not pay for
	// every quote sequentially.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		ids := registry.CoinGeckoIDs()
		for _, client := range clients {
			if id := client.Currency().CoinGeckoID; id != "" {
				ids = append(ids, id)
			}
		}
		oracle.Prefetch(ctx, ids, cfg.CoinGecko.VsCurrency)
	}()

	aggregator := service.NewAggregatorService(
		chainRegistry,
		cfg.CoinGecko.VsCurrency,
		cfg.Performance.MaxConcurrentRequests,
		time.Duration(cfg.Performance.UnitTimeoutSeconds)*time.Second,
		appLogger,
	)

	kokonutClient := kokonutswap.NewClient(
		cfg.KokonutSwap.BaseURL,
		time.Duration(cfg.KokonutSwap.ClientTimeoutSeconds)*time.Second,
		zapLogger,
	)
	kokonutAdapter := kokonutswap.NewAdapter(kokonutClient, registry, appLogger)

	valuationHandler := restapi.NewValuationHandler(aggregator, wallets, appLogger)
	defiHandler := restapi.NewDeFiHandler(appLogger, kokonutAdapter)
	router := restapi.SetupRouter(valuationHandler, defiHandler, zapLogger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}
	logger.Info("server exited")
}

// buildChainClients turns the chain config entries into adapters. Klaytn gets
// the token indexer and the staking-pool pricing on top of the plain EVM
// adapter when an indexer is configured.
func buildChainClients(
	cfg *configloader.Config,
	indexer klaytn.Indexer,
	registry port.TokenRegistry,
	oracle port.PriceOracle,
	appLogger port.Logger,
) ([]port.ChainClient, error) {
	connectionTimeout := time.Duration(cfg.Performance.ConnectionTimeoutSeconds) * time.Second
	rpcCallTimeout := time.Duration(cfg.Performance.RPCCallTimeoutSeconds) * time.Second

	var clients []port.ChainClient
	for _, chainCfg := range cfg.Chains {
		id := entity.ChainID(chainCfg.ID)
		currency := entity.ChainCurrency{
			Symbol:       chainCfg.Currency.Symbol,
			Decimals:     chainCfg.Currency.Decimals,
			CoinGeckoID:  chainCfg.Currency.CoinGeckoID,
			MinimalDenom: chainCfg.Currency.MinimalDenom,
		}

		switch chainCfg.Kind {
		case "evm":
			base, err := evm.New(id, currency, chainCfg.RPCURL, chainCfg.FallbackRPCURLs,
				connectionTimeout, rpcCallTimeout, oracle, appLogger)
			if err != nil {
				return nil, err
			}
			if id == entity.ChainKlaytn && indexer != nil {
				clients = append(clients, klaytn.New(base, indexer, registry, oracle,
					cfg.CoinGecko.VsCurrency, appLogger))
				continue
			}
			clients = append(clients, base)
		case "solana":
			clients = append(clients, solana.New(currency, chainCfg.RPCURL, rpcCallTimeout, oracle))
		case "cosmos-sdk":
			clients = append(clients, tendermint.New(id, currency, chainCfg.Bech32Prefix,
				chainCfg.LCDURL, tendermint.DelegationsAPI(chainCfg.DelegationsAPI),
				rpcCallTimeout, oracle, appLogger))
		default:
			logger.Warn("skipping chain with unknown kind", "id", chainCfg.ID, "kind", chainCfg.Kind)
		}
	}
	return clients, nil
}
