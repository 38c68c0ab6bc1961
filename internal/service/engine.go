// Package service implements the settlement engine: periodic KAS payouts,
// krc-20 rebate transfers, and treasury swaps, driven off the miner ledger.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/model"
)

// Config carries the settlement engine's thresholds and poll tuning. Amounts
// are in sompi unless noted.
type Config struct {
	Network model.Network

	// Ticker of the krc-20 rebate token.
	Ticker string
	// NFTCollection whose holders earn a full rebate.
	NFTCollection string
	// ClaimCollection whose tokens in ClaimIDFirst..ClaimIDLast also earn a
	// full rebate.
	ClaimCollection string
	ClaimIDFirst    uint64
	ClaimIDLast     uint64

	// PayoutThreshold gates KAS payouts; balances below it roll over.
	PayoutThreshold uint64
	// RebateThreshold gates token rebates the same way.
	RebateThreshold uint64
	// RebateBuffer is held back from the treasury token balance so the
	// budget can never be fully drained by rounding.
	RebateBuffer uint64
	// FullRebateTokenBalance is the token holding, in token base units, at
	// which an address earns the full rebate multiplier.
	FullRebateTokenBalance uint64
	// SwapFractionPercent of the pool's retained balance is swapped into
	// the rebate token each cycle.
	SwapFractionPercent uint64

	// UseCustodial routes KAS payouts through the custodial account instead
	// of treasury UTXOs.
	UseCustodial bool

	MaturityPollInterval time.Duration
	MaturityPollAttempts int
	CommitPollInterval   time.Duration
	CommitPollAttempts   int
	SwapPollInterval     time.Duration
	SwapPollAttempts     int
	RecipientDelay       time.Duration
	WatchdogInterval     time.Duration
}

// DefaultConfig returns the production settlement parameters for a network.
func DefaultConfig(network model.Network) Config {
	return Config{
		Network:                network,
		Ticker:                 "NACHO",
		NFTCollection:          "NACHO",
		ClaimCollection:        "KATCLAIM",
		ClaimIDFirst:           736,
		ClaimIDLast:            843,
		PayoutThreshold:        5 * model.SompiPerKas,
		RebateThreshold:        1_000 * model.SompiPerKas,
		RebateBuffer:           5 * model.SompiPerKas,
		FullRebateTokenBalance: 10_000_000_000_000_000,
		SwapFractionPercent:    95,
		MaturityPollInterval:   5 * time.Second,
		MaturityPollAttempts:   60,
		CommitPollInterval:     time.Minute,
		CommitPollAttempts:     30,
		SwapPollInterval:       time.Minute,
		SwapPollAttempts:       30,
		RecipientDelay:         3 * time.Second,
		WatchdogInterval:       3 * time.Minute,
	}
}

func (c Config) validate() error {
	if c.Ticker == "" {
		return fmt.Errorf("rebate ticker is required")
	}
	if c.SwapFractionPercent > 100 {
		return fmt.Errorf("swap fraction %d%% out of range", c.SwapFractionPercent)
	}
	if c.MaturityPollAttempts <= 0 || c.CommitPollAttempts <= 0 || c.SwapPollAttempts <= 0 {
		return fmt.Errorf("poll attempts must be positive")
	}
	return nil
}

// Engine runs settlement cycles against the chain, ledger and indexer.
type Engine struct {
	cfg       Config
	chain     ChainClient
	tracker   UTXOTracker
	ledger    Ledger
	indexer   Indexer
	swapper   SwapProvider
	custodian Custodian
	audit     AuditSink
	metrics   Metrics
	logger    *zap.Logger

	// transferFn indirects transferToken so rebate distribution can be
	// tested without a full commit/reveal pipeline behind it.
	transferFn func(ctx context.Context, wallet string, kasAmount, tokenAmount uint64, fullRebate bool) error

	// cycle counts completed Settle calls; the engine is driven by a single
	// goroutine so no synchronization is needed.
	cycle uint64
}

// NewEngine wires the settlement engine. The custodian may be nil when
// payouts are issued from treasury UTXOs.
func NewEngine(
	cfg Config,
	chain ChainClient,
	tracker UTXOTracker,
	ledger Ledger,
	indexer Indexer,
	swapper SwapProvider,
	custodian Custodian,
	audit AuditSink,
	metrics Metrics,
	logger *zap.Logger,
) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("settlement config: %w", err)
	}
	if cfg.UseCustodial && custodian == nil {
		return nil, fmt.Errorf("custodial payouts enabled without a custodian")
	}
	e := &Engine{
		cfg:       cfg,
		chain:     chain,
		tracker:   tracker,
		ledger:    ledger,
		indexer:   indexer,
		swapper:   swapper,
		custodian: custodian,
		audit:     audit,
		metrics:   metrics,
		logger:    logger,
	}
	e.transferFn = e.transferToken
	return e, nil
}

// Settle runs one full settlement cycle: KAS payouts for wallets over the
// payout threshold, a treasury swap converting retained KAS into the rebate
// token, and token rebates for wallets over the rebate threshold, funded by
// what the swap obtained. Each stage is isolated so one wallet's failure does
// not block the rest of the cycle.
func (e *Engine) Settle(ctx context.Context) (err error) {
	started := time.Now()
	defer func() {
		e.metrics.ObserveCycle(err, started)
	}()

	e.cycle++
	e.recordEvent(ctx, model.SettlementEvent{Kind: model.EventCycleStarted})
	e.logger.Info("settlement cycle started",
		zap.Uint64("cycle", e.cycle),
		zap.String("network", string(e.cfg.Network)))

	if err = e.tracker.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh treasury utxo set: %w", err)
	}

	// Interrupted transfers are resumed ahead of new work every cycle, not
	// just at startup; a wallet whose reveal stalled last cycle must not
	// wait for the next restart. Failures are logged and retried next time.
	if recoverErr := e.RecoverPendingTransfers(ctx); recoverErr != nil {
		e.logger.Warn("pending transfer recovery incomplete", zap.Error(recoverErr))
	}

	balances, err := e.ledger.MinerBalances(ctx)
	if err != nil {
		return fmt.Errorf("load miner balances: %w", err)
	}

	e.checkSolvency(ctx, balances)

	if err = e.payoutKAS(ctx, balances); err != nil {
		return fmt.Errorf("kas payouts: %w", err)
	}

	swapProceeds, err := e.swapTreasury(ctx)
	if err != nil {
		return fmt.Errorf("treasury swap: %w", err)
	}

	if err = e.distributeRebates(ctx, balances, swapProceeds); err != nil {
		return fmt.Errorf("token rebates: %w", err)
	}

	e.recordEvent(ctx, model.SettlementEvent{Kind: model.EventCycleFinished})
	e.logger.Info("settlement cycle finished",
		zap.Uint64("cycle", e.cycle),
		zap.Duration("elapsed", time.Since(started)))
	return nil
}

// checkSolvency compares what the chain says the treasury holds against what
// the ledger says miners are owed. An underfunded treasury does not stop the
// cycle, payouts below the shortfall still go through, but it is the one
// condition an operator must act on before the gap grows.
func (e *Engine) checkSolvency(ctx context.Context, balances []model.MinerBalanceRow) {
	var owed uint64
	for _, row := range balances {
		owed += row.Balance
	}
	if owed == 0 {
		return
	}

	held, err := e.indexer.AddressBalance(ctx, e.chain.TreasuryAddress())
	if err != nil {
		e.logger.Debug("treasury balance lookup failed, skipping solvency check", zap.Error(err))
		return
	}
	if held < owed {
		e.logger.Warn("treasury underfunded",
			zap.Uint64("owed_sompi", owed),
			zap.Uint64("held_sompi", held))
		e.recordEvent(ctx, model.SettlementEvent{
			Kind:   model.EventTreasuryUnderfunded,
			Amount: owed - held,
		})
	}
}

// recordEvent stamps the cycle number and ships the event; audit failures are
// logged rather than propagated so bookkeeping never blocks settlement.
func (e *Engine) recordEvent(ctx context.Context, event model.SettlementEvent) {
	event.Network = e.cfg.Network
	event.Cycle = e.cycle
	if err := e.audit.Record(ctx, event); err != nil {
		e.logger.Warn("audit event dropped",
			zap.String("kind", string(event.Kind)),
			zap.Error(err))
	}
}
