package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/chainge"
	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/clock"
	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/kaspa"
	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/kasplex"
	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/metrics"
	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/model"
	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/repository/clickhouse"
	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/repository/postgres"
	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/service"
	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/transport"
	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/uphold"
)

const nodeReadinessInterval = 5 * time.Second

type config struct {
	Network            string        `long:"network" env:"SETTLEMENT_NETWORK" description:"kaspa network name" default:"mainnet"`
	RPCAddress         string        `long:"kaspad-rpc-address" env:"KASPAD_RPC_ADDRESS" description:"kaspad gRPC address" default:"127.0.0.1:16110"`
	TreasuryPrivateKey string        `long:"treasury-private-key" env:"TREASURY_PRIVATE_KEY" description:"hex-encoded treasury private key" required:"true"`
	PostgresDSN        string        `long:"postgres-dsn" env:"SETTLEMENT_POSTGRES_DSN" description:"miner ledger DSN" required:"true"`
	ClickhouseDSN      string        `long:"clickhouse-dsn" env:"SETTLEMENT_CLICKHOUSE_DSN" description:"audit event DSN, empty disables the audit sink"`
	HTTPAddr           string        `long:"http-addr" env:"SETTLEMENT_HTTP_ADDR" description:"public HTTP listen address" default:":8080"`
	SettleInterval     time.Duration `long:"settle-interval" env:"SETTLEMENT_INTERVAL" description:"delay between settlement cycles" default:"10m"`
	UseCustodial       bool          `long:"use-custodial" env:"SETTLEMENT_USE_CUSTODIAL" description:"route KAS payouts through the custodial account"`

	Indexer kasplex.Config `group:"indexer"`
	Swap    chainge.Config `group:"swap"`
	Uphold  uphold.Config  `group:"uphold"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewProduction()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("settlement daemon failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	network, err := parseNetwork(cfg.Network)
	if err != nil {
		return err
	}

	signer, err := kaspa.NewSigner(cfg.TreasuryPrivateKey, network)
	if err != nil {
		return fmt.Errorf("init treasury signer: %w", err)
	}
	logger.Info("treasury address derived", zap.String("address", signer.Address()))

	chain, err := kaspa.NewClient(cfg.RPCAddress, signer, metrics.NewRPCClient(network))
	if err != nil {
		return fmt.Errorf("connect kaspad: %w", err)
	}
	defer func() {
		_ = chain.Close()
	}()

	if err := awaitNodeReady(ctx, chain, logger); err != nil {
		return err
	}

	tracker := kaspa.NewTracker(chain, signer.Address(), logger)
	if err := tracker.Start(ctx); err != nil {
		return fmt.Errorf("start utxo tracker: %w", err)
	}
	defer func() {
		if err := tracker.Stop(); err != nil {
			logger.Warn("stop utxo tracker", zap.Error(err))
		}
	}()

	ledger, err := postgres.NewRepository(ctx, cfg.PostgresDSN, signer.Address(), metrics.NewLedgerRepository(network))
	if err != nil {
		return fmt.Errorf("connect ledger: %w", err)
	}
	defer ledger.Close()

	var audit service.AuditSink = noopAudit{}
	if cfg.ClickhouseDSN != "" {
		sink, err := clickhouse.NewAuditSink(cfg.ClickhouseDSN, logger, metrics.NewAuditSink(network))
		if err != nil {
			return fmt.Errorf("connect audit sink: %w", err)
		}
		sink.Start(ctx)
		defer func() {
			if err := sink.Stop(); err != nil {
				logger.Warn("stop audit sink", zap.Error(err))
			}
		}()
		audit = sink
	}

	indexer := kasplex.NewClient(cfg.Indexer, logger, metrics.NewIndexerAPI(network))
	swapper := chainge.NewClient(cfg.Swap, signer, logger)

	var custodian service.Custodian
	if cfg.Uphold.Enabled() {
		custodian = uphold.NewClient(cfg.Uphold, logger)
	}

	engineCfg := service.DefaultConfig(network)
	engineCfg.UseCustodial = cfg.UseCustodial
	engine, err := service.NewEngine(engineCfg, chain, tracker, ledger, indexer, swapper, custodian,
		audit, metrics.NewSettlement(network), logger)
	if err != nil {
		return err
	}

	if err := engine.RecoverPendingTransfers(ctx); err != nil {
		return fmt.Errorf("recover pending transfers: %w", err)
	}

	server := newHTTPServer(cfg.HTTPAddr, engine, ledger, logger)
	go func() {
		<-ctx.Done()
		logger.Info("shutting down the http server")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("failed to shutdown http server", zap.Error(err))
		}
	}()
	go func() {
		logger.Info("starting HTTP server", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to listen and serve", zap.Error(err))
		}
	}()

	return settleLoop(ctx, engine, cfg.SettleInterval, logger)
}

// settleLoop runs cycles back to back with a fixed delay between them.
// Cycles never overlap; a slow cycle simply delays the next one.
func settleLoop(ctx context.Context, engine *service.Engine, interval time.Duration, logger *zap.Logger) error {
	for {
		if err := engine.Settle(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logger.Error("settlement cycle failed", zap.Error(err))
		}
		if err := clock.SleepWithContext(ctx, interval); err != nil {
			return nil
		}
	}
}

func newHTTPServer(addr string, engine *service.Engine, ledger *postgres.Repository, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	transport.NewRebateHandler(engine, ledger, logger).Register(mux)
	mux.Handle("/metrics", promhttp.Handler())

	return &http.Server{
		Addr:              addr,
		Handler:           cors.Default().Handler(mux),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
}

// awaitNodeReady blocks until kaspad is synced with its UTXO index enabled.
// Settling against an unsynced node would pay from a stale UTXO view.
func awaitNodeReady(ctx context.Context, chain *kaspa.Client, logger *zap.Logger) error {
	for {
		info, err := chain.ServerInfo(ctx)
		if err != nil {
			return fmt.Errorf("query node info: %w", err)
		}
		if !info.HasUTXOIndex {
			return errors.New("kaspad must run with --utxoindex")
		}
		if info.IsSynced {
			logger.Info("kaspad ready", zap.String("version", info.ServerVersion))
			return nil
		}
		logger.Info("waiting for kaspad to sync", zap.String("version", info.ServerVersion))
		if err := clock.SleepWithContext(ctx, nodeReadinessInterval); err != nil {
			return err
		}
	}
}

func parseNetwork(name string) (model.Network, error) {
	switch model.Network(name) {
	case model.Mainnet, model.Testnet10, model.Testnet11:
		return model.Network(name), nil
	default:
		return "", fmt.Errorf("unknown network %q", name)
	}
}

// noopAudit drops events when no audit store is configured.
type noopAudit struct{}

func (noopAudit) Record(context.Context, model.SettlementEvent) error { return nil }
