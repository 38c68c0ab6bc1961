package service

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/chainge"
	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/clock"
	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/kaspa"
	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/model"
)

// ErrSwapNotSettled means the aggregator never confirmed the swap within the
// poll budget. The vault payment is on-chain at that point, so the error is
// surfaced for operator follow-up rather than silently retried.
var ErrSwapNotSettled = errors.New("swap order not settled in time")

// swapTreasury converts the configured fraction of the pool's retained KAS
// into the rebate token and returns the token amount obtained, which funds
// the rebate distribution that follows in the same cycle. A skipped swap
// returns zero. The pool's ledger balance is reduced only after the
// aggregator confirms.
func (e *Engine) swapTreasury(ctx context.Context) (uint64, error) {
	if e.swapper == nil || e.cfg.SwapFractionPercent == 0 {
		return 0, nil
	}

	poolBalance, err := e.ledger.PoolBalance(ctx)
	if err != nil {
		return 0, fmt.Errorf("load pool balance: %w", err)
	}
	fromAmount := fractionOf(poolBalance, e.cfg.SwapFractionPercent)
	if fromAmount == 0 || fromAmount > e.tracker.Balance() {
		e.logger.Info("skipping treasury swap",
			zap.Uint64("pool_balance", poolBalance),
			zap.Uint64("swap_amount", fromAmount),
			zap.Uint64("treasury_balance", e.tracker.Balance()))
		return 0, nil
	}

	quote, err := e.swapper.Quote(ctx, fromAmount)
	if err != nil {
		return 0, fmt.Errorf("quote swap: %w", err)
	}
	if quote.AmountOut == 0 {
		e.logger.Warn("swap pair unserved, skipping cycle",
			zap.Uint64("from_amount", fromAmount))
		return 0, nil
	}

	e.logQuoteAgainstFloor(ctx, fromAmount, quote)

	vault, err := e.swapper.VaultAddress(ctx)
	if err != nil {
		return 0, fmt.Errorf("resolve vault address: %w", err)
	}

	txID, err := e.payVault(ctx, vault, fromAmount)
	if err != nil {
		return 0, fmt.Errorf("fund swap: %w", err)
	}

	orderID, err := e.swapper.SubmitSwap(ctx, chainge.Order{TxHash: txID, Quote: quote})
	if err != nil {
		return 0, fmt.Errorf("submit swap order: %w", err)
	}
	e.logger.Info("swap order submitted",
		zap.String("order_id", orderID),
		zap.Uint64("from_amount", fromAmount),
		zap.Uint64("min_out", quote.AmountOutMin))

	status, err := e.waitForSwap(ctx, orderID)
	if err != nil {
		return 0, err
	}

	if err := e.ledger.DeductBalance(ctx, e.chain.TreasuryAddress(), fromAmount, model.FieldBalance); err != nil {
		return 0, fmt.Errorf("deduct swapped pool balance: %w", err)
	}

	e.recordEvent(ctx, model.SettlementEvent{
		Kind:   model.EventSwapExecuted,
		TxID:   status.Hash,
		Amount: fromAmount,
		Detail: orderID,
	})
	return quote.AmountOut, nil
}

// logQuoteAgainstFloor puts the marketplace floor price next to the
// aggregator's quote in the cycle log, so a consistently bad quote shows up
// in operator review. Floor-price lookups are best effort.
func (e *Engine) logQuoteAgainstFloor(ctx context.Context, fromAmount uint64, quote chainge.Quote) {
	floor, err := e.indexer.FloorPrice(ctx, e.cfg.Ticker)
	if err != nil {
		e.logger.Debug("floor price unavailable", zap.Error(err))
		return
	}
	e.logger.Info("swap quote received",
		zap.Uint64("from_amount", fromAmount),
		zap.Uint64("amount_out", quote.AmountOut),
		zap.Float64("floor_price_kas", floor))
}

func (e *Engine) payVault(ctx context.Context, vault string, amount uint64) (string, error) {
	pending, err := e.chain.BuildTransactions(kaspa.BuildParams{
		Entries:       e.tracker.Mature(),
		Outputs:       []kaspa.Output{{Address: vault, Amount: amount}},
		ChangeAddress: e.chain.TreasuryAddress(),
		PriorityFee:   standardPriorityFee,
	})
	if err != nil {
		return "", fmt.Errorf("build vault payment: %w", err)
	}
	payment := pending[0]

	if err := e.chain.SignTransaction(payment); err != nil {
		return "", fmt.Errorf("sign vault payment: %w", err)
	}
	txID, err := e.chain.SubmitTransaction(ctx, payment)
	if err != nil {
		return "", fmt.Errorf("submit vault payment: %w", err)
	}
	e.tracker.MarkSpent(payment.Inputs())
	return txID, nil
}

func (e *Engine) waitForSwap(ctx context.Context, orderID string) (chainge.SwapStatus, error) {
	watchdog := time.AfterFunc(e.cfg.WatchdogInterval, func() {
		e.logger.Warn("swap order still unsettled", zap.String("order_id", orderID))
	})
	defer watchdog.Stop()

	for attempt := 0; attempt < e.cfg.SwapPollAttempts; attempt++ {
		status, err := e.swapper.CheckSwap(ctx, orderID)
		if err != nil {
			return chainge.SwapStatus{}, fmt.Errorf("check swap order: %w", err)
		}
		if status.Succeeded {
			return status, nil
		}
		if err := clock.SleepWithContext(ctx, e.cfg.SwapPollInterval); err != nil {
			return chainge.SwapStatus{}, err
		}
	}
	return chainge.SwapStatus{}, fmt.Errorf("%w: %s", ErrSwapNotSettled, orderID)
}

// fractionOf computes amount * percent / 100 without overflow.
func fractionOf(amount, percent uint64) uint64 {
	result := new(big.Int).SetUint64(amount)
	result.Mul(result, new(big.Int).SetUint64(percent))
	result.Div(result, big.NewInt(100))
	if !result.IsUint64() {
		return amount
	}
	return result.Uint64()
}
