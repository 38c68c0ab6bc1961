package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/clock"
	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/kaspa"
	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/model"
)

// standardPriorityFee is attached to every settlement transaction.
const standardPriorityFee = 10_000

// ErrPaymentNotAccepted means a submitted payment never appeared in the
// recipient's UTXO set within the poll budget. The ledger keeps the balance
// owed so the next cycle retries.
var ErrPaymentNotAccepted = errors.New("payment transaction not accepted in time")

// payoutKAS pays every wallet at or above the payout threshold. Balances are
// reset only after the payment is visible on-chain, so a crash between
// submission and acceptance leaves the balance owed and the recovery path
// reconciles against payment history.
func (e *Engine) payoutKAS(ctx context.Context, balances []model.MinerBalanceRow) error {
	due := make([]model.MinerBalanceRow, 0, len(balances))
	for _, row := range balances {
		if row.Balance >= e.cfg.PayoutThreshold {
			due = append(due, row)
		}
	}
	if len(due) == 0 {
		e.logger.Info("no wallets above payout threshold",
			zap.Uint64("threshold", e.cfg.PayoutThreshold))
		return nil
	}

	if e.cfg.UseCustodial {
		return e.payoutCustodial(ctx, due)
	}
	return e.payoutOnChain(ctx, due)
}

func (e *Engine) payoutOnChain(ctx context.Context, due []model.MinerBalanceRow) error {
	outputs := make([]kaspa.Output, 0, len(due))
	for _, row := range due {
		outputs = append(outputs, kaspa.Output{Address: row.Address, Amount: row.Balance})
	}

	pending, err := e.chain.BuildTransactions(kaspa.BuildParams{
		Entries:       e.tracker.Mature(),
		Outputs:       outputs,
		ChangeAddress: e.chain.TreasuryAddress(),
		PriorityFee:   standardPriorityFee,
	})
	if err != nil {
		return fmt.Errorf("build payout transactions: %w", err)
	}

	for i, tx := range pending {
		row := due[i]
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.settleOnePayment(ctx, tx, row); err != nil {
			e.logger.Error("payout failed, balance kept for next cycle",
				zap.String("wallet", row.Address),
				zap.Uint64("amount", row.Balance),
				zap.Error(err))
			e.recordEvent(ctx, model.SettlementEvent{
				Kind:    model.EventPaymentFailed,
				Address: row.Address,
				Amount:  row.Balance,
				Detail:  err.Error(),
			})
		}
	}
	return nil
}

func (e *Engine) settleOnePayment(ctx context.Context, tx *kaspa.PendingTransaction, row model.MinerBalanceRow) error {
	if err := e.chain.SignTransaction(tx); err != nil {
		return fmt.Errorf("sign payment: %w", err)
	}
	txID, err := e.chain.SubmitTransaction(ctx, tx)
	if err != nil {
		return fmt.Errorf("submit payment: %w", err)
	}
	e.tracker.MarkSpent(tx.Inputs())

	e.logger.Info("payment submitted",
		zap.String("wallet", row.Address),
		zap.Uint64("amount", row.Balance),
		zap.String("tx_id", txID))

	if err := e.waitForAcceptance(ctx, row.Address, txID); err != nil {
		return err
	}

	if err := e.ledger.RecordPaymentAndReset(ctx, model.Payment{
		WalletAddress:   row.Address,
		Amount:          row.Balance,
		Timestamp:       time.Now().UTC(),
		TransactionHash: txID,
	}); err != nil {
		return fmt.Errorf("record payment: %w", err)
	}

	e.metrics.ObservePayment("kas", row.Balance)
	e.recordEvent(ctx, model.SettlementEvent{
		Kind:    model.EventPaymentSent,
		Address: row.Address,
		TxID:    txID,
		Amount:  row.Balance,
	})
	return nil
}

func (e *Engine) payoutCustodial(ctx context.Context, due []model.MinerBalanceRow) error {
	for _, row := range due {
		if err := ctx.Err(); err != nil {
			return err
		}
		txID, err := e.custodian.SendKAS(ctx, row.Address, row.Balance)
		if err != nil {
			e.logger.Error("custodial payout failed, balance kept for next cycle",
				zap.String("wallet", row.Address),
				zap.Uint64("amount", row.Balance),
				zap.Error(err))
			e.recordEvent(ctx, model.SettlementEvent{
				Kind:    model.EventPaymentFailed,
				Address: row.Address,
				Amount:  row.Balance,
				Detail:  err.Error(),
			})
			continue
		}

		if err := e.ledger.RecordPaymentAndReset(ctx, model.Payment{
			WalletAddress:   row.Address,
			Amount:          row.Balance,
			Timestamp:       time.Now().UTC(),
			TransactionHash: txID,
		}); err != nil {
			return fmt.Errorf("record custodial payment for %s: %w", row.Address, err)
		}

		e.metrics.ObservePayment("custodial", row.Balance)
		e.recordEvent(ctx, model.SettlementEvent{
			Kind:    model.EventPaymentSent,
			Address: row.Address,
			TxID:    txID,
			Amount:  row.Balance,
		})
	}
	return nil
}

// waitForAcceptance polls the recipient's UTXO set until the payment appears.
// A watchdog logs when the wait runs long so a stuck cycle is visible in the
// logs before the poll budget is exhausted.
func (e *Engine) waitForAcceptance(ctx context.Context, address, txID string) error {
	watchdog := time.AfterFunc(e.cfg.WatchdogInterval, func() {
		e.logger.Warn("payment still unaccepted",
			zap.String("wallet", address),
			zap.String("tx_id", txID),
			zap.Duration("waited", e.cfg.WatchdogInterval))
	})
	defer watchdog.Stop()

	for attempt := 0; attempt < e.cfg.MaturityPollAttempts; attempt++ {
		entries, err := e.chain.UTXOsByAddress(ctx, address)
		if err != nil {
			// The payment is already on-chain or in flight; a failed read
			// of the recipient's set is no verdict on it. Keep polling.
			e.logger.Warn("recipient poll failed, still waiting",
				zap.String("wallet", address),
				zap.Error(err))
		}
		for _, entry := range entries {
			if entry.Outpoint.TransactionID == txID {
				return nil
			}
		}
		if err := clock.SleepWithContext(ctx, e.cfg.MaturityPollInterval); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w: %s", ErrPaymentNotAccepted, txID)
}
