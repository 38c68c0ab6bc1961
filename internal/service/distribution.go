package service

import (
	"context"
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/clock"
	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/model"
)

// fullRebateMultiplier triples the entitlement of wallets holding the rebate
// token or one of the qualifying NFTs.
const fullRebateMultiplier = 3

// distributeRebates converts accrued KAS-equivalent rebates into token
// transfers, funded by what this cycle's treasury swap obtained. Each
// wallet's entitlement is its owed share of that budget, rounded down, with
// full-rebate wallets weighted at triple their owed amount before the share
// is taken; the running budget caps every grant so the sum of grants can
// never exceed what the swap produced.
func (e *Engine) distributeRebates(ctx context.Context, balances []model.MinerBalanceRow, swapProceeds uint64) error {
	due := make([]model.MinerBalanceRow, 0, len(balances))
	var owedTotal uint64
	for _, row := range balances {
		if row.NachoBalance >= e.cfg.RebateThreshold {
			due = append(due, row)
			owedTotal += row.NachoBalance
		}
	}
	if len(due) == 0 {
		e.logger.Info("no wallets above rebate threshold",
			zap.Uint64("threshold", e.cfg.RebateThreshold))
		return nil
	}

	budget := swapProceeds
	if budget == 0 {
		// No swap this cycle; fall back to tokens the treasury already
		// holds from earlier swaps.
		held, err := e.indexer.TokenBalance(ctx, e.chain.TreasuryAddress(), e.cfg.Ticker)
		if err != nil {
			return fmt.Errorf("load treasury token balance: %w", err)
		}
		budget = held
	}
	if budget <= e.cfg.RebateBuffer {
		budget = 0
	} else {
		budget -= e.cfg.RebateBuffer
	}
	if budget == 0 {
		e.logger.Warn("treasury token budget exhausted, rebates deferred",
			zap.Int("wallets_due", len(due)))
		return nil
	}

	poolBalance, err := e.ledger.PoolBalance(ctx)
	if err != nil {
		return fmt.Errorf("load pool balance: %w", err)
	}
	if poolBalance == 0 {
		poolBalance = owedTotal
	}

	remaining := budget
	for _, row := range due {
		if err := ctx.Err(); err != nil {
			return err
		}
		if remaining == 0 {
			e.logger.Warn("token budget drained mid-cycle, remaining rebates deferred",
				zap.String("wallet", row.Address))
			break
		}

		full, err := e.qualifiesForFullRebate(ctx, row.Address)
		if err != nil {
			full = false
			e.logger.Warn("full rebate check failed, assuming standard rate",
				zap.String("wallet", row.Address),
				zap.Error(err))
		}
		// The multiplier scales the owed amount going into the floor
		// division, not the floored share.
		owed := row.NachoBalance
		if full {
			owed *= fullRebateMultiplier
		}
		entitlement := proportionalShare(owed, budget, poolBalance)
		if entitlement > remaining {
			entitlement = remaining
		}
		if entitlement == 0 {
			continue
		}

		if err := e.transferFn(ctx, row.Address, row.NachoBalance, entitlement, full); err != nil {
			e.metrics.ObserveKRC20Transfer("failure")
			e.logger.Error("token rebate failed, balance kept for next cycle",
				zap.String("wallet", row.Address),
				zap.Error(err))
			e.recordEvent(ctx, model.SettlementEvent{
				Kind:    model.EventTransferFailed,
				Address: row.Address,
				Amount:  entitlement,
				Detail:  err.Error(),
			})
		} else {
			remaining -= entitlement
		}

		// Spacing out recipients keeps commit seeds from colliding before
		// the tracker sees the change back.
		if err := clock.SleepWithContext(ctx, e.cfg.RecipientDelay); err != nil {
			return err
		}
	}
	return nil
}

// proportionalShare computes floor(owed * budget / total) without overflow.
func proportionalShare(owed, budget, total uint64) uint64 {
	if total == 0 {
		return 0
	}
	share := new(big.Int).SetUint64(owed)
	share.Mul(share, new(big.Int).SetUint64(budget))
	share.Div(share, new(big.Int).SetUint64(total))
	if !share.IsUint64() {
		return budget
	}
	return share.Uint64()
}

// FullRebate reports whether a wallet currently earns the full rebate
// multiplier. It is the query behind the public rebate-eligibility endpoint.
func (e *Engine) FullRebate(ctx context.Context, wallet string) (bool, error) {
	return e.qualifiesForFullRebate(ctx, wallet)
}

// qualifiesForFullRebate reports whether a wallet earns the full rebate
// multiplier: a large enough token holding, any token of the rebate NFT
// collection, or a claim NFT inside the qualifying id window.
func (e *Engine) qualifiesForFullRebate(ctx context.Context, wallet string) (bool, error) {
	tokenBalance, err := e.indexer.TokenBalance(ctx, wallet, e.cfg.Ticker)
	if err != nil {
		return false, fmt.Errorf("token balance for %s: %w", wallet, err)
	}
	if tokenBalance >= e.cfg.FullRebateTokenBalance {
		return true, nil
	}

	nftIDs, err := e.indexer.NFTTokenIDs(ctx, wallet, e.cfg.NFTCollection)
	if err != nil {
		return false, fmt.Errorf("nft holdings for %s: %w", wallet, err)
	}
	if len(nftIDs) > 0 {
		return true, nil
	}

	claimIDs, err := e.indexer.NFTTokenIDs(ctx, wallet, e.cfg.ClaimCollection)
	if err != nil {
		return false, fmt.Errorf("claim holdings for %s: %w", wallet, err)
	}
	for _, id := range claimIDs {
		if id >= e.cfg.ClaimIDFirst && id <= e.cfg.ClaimIDLast {
			return true, nil
		}
	}
	return false, nil
}
