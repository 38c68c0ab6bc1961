package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/kaspa"
	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/model"
)

// RecoverPendingTransfers resumes commit/reveal cycles that were interrupted
// by a crash or restart. Each pending record is re-derived from its stored
// fields; a record whose rebuilt commit address no longer matches is marked
// failed for operator review instead of being blindly spent.
func (e *Engine) RecoverPendingTransfers(ctx context.Context) error {
	records, err := e.ledger.PendingTransfers(ctx)
	if err != nil {
		return fmt.Errorf("load pending transfers: %w", err)
	}
	if len(records) == 0 {
		return nil
	}
	e.logger.Info("recovering interrupted token transfers", zap.Int("count", len(records)))

	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.recoverTransfer(ctx, record); err != nil {
			e.metrics.ObserveKRC20Transfer("failure")
			e.logger.Error("transfer recovery failed",
				zap.String("commit_tx_id", record.FirstTxnID),
				zap.String("wallet", record.Address),
				zap.Error(err))
			e.recordEvent(ctx, model.SettlementEvent{
				Kind:    model.EventTransferFailed,
				Address: record.Address,
				TxID:    record.FirstTxnID,
				Detail:  err.Error(),
			})
		}
	}
	return nil
}

func (e *Engine) recoverTransfer(ctx context.Context, record model.KRC20TransferRecord) error {
	// A completed token leg means only bookkeeping is outstanding. The
	// reveal hash was not persisted, so history records the commit id.
	if record.NachoTransferStatus == model.TransferCompleted {
		return e.finishTransfer(ctx, record.P2SHAddress, record.FirstTxnID, record.Address, record.NachoAmount)
	}

	inscription, err := kaspa.NewTransferInscription(
		e.chain.TreasuryPublicKey(), e.cfg.Ticker, record.NachoAmount, record.Address)
	if err != nil {
		return fmt.Errorf("rebuild inscription: %w", err)
	}
	p2shAddress, err := inscription.P2SHAddress(kaspa.PrefixForNetwork(e.cfg.Network))
	if err != nil {
		return fmt.Errorf("derive commit address: %w", err)
	}
	if p2shAddress != record.P2SHAddress {
		if err := e.ledger.UpdateTransferStatus(ctx, record.P2SHAddress, model.FieldNachoTransferStatus, model.TransferFailed); err != nil {
			return fmt.Errorf("mark mismatched transfer failed: %w", err)
		}
		return fmt.Errorf("rebuilt commit address %s does not match recorded %s", p2shAddress, record.P2SHAddress)
	}

	entries, err := e.chain.UTXOsByAddress(ctx, p2shAddress)
	if err != nil {
		return fmt.Errorf("inspect commit address: %w", err)
	}

	if len(entries) == 0 {
		count, err := e.indexer.TransactionCount(ctx, p2shAddress)
		if err != nil {
			return fmt.Errorf("count commit address transactions: %w", err)
		}
		if count%2 == 0 && count > 0 {
			// Reveal already landed before the crash.
			return e.finishTransfer(ctx, record.P2SHAddress, record.FirstTxnID, record.Address, record.NachoAmount)
		}
		// Commit never landed; nothing moved, so clear the anchor and let
		// the still-owed balance retry next cycle.
		if err := e.ledger.UpdateTransferStatus(ctx, record.P2SHAddress, model.FieldNachoTransferStatus, model.TransferFailed); err != nil {
			return fmt.Errorf("mark unfunded transfer failed: %w", err)
		}
		e.logger.Warn("commit never funded, transfer abandoned",
			zap.String("commit_tx_id", record.FirstTxnID),
			zap.String("wallet", record.Address))
		return nil
	}

	// The commit output is still locked; finish the reveal.
	revealTxID, err := e.submitReveal(ctx, inscription, entries[0])
	if err != nil {
		return fmt.Errorf("reveal for %s: %w", record.Address, err)
	}
	e.recordEvent(ctx, model.SettlementEvent{
		Kind:    model.EventRevealSubmitted,
		Address: record.Address,
		TxID:    revealTxID,
	})
	if err := e.waitForReveal(ctx, p2shAddress, revealTxID); err != nil {
		return err
	}
	if err := e.confirmRevealAccepted(ctx, revealTxID); err != nil {
		return err
	}
	return e.finishTransfer(ctx, record.P2SHAddress, revealTxID, record.Address, record.NachoAmount)
}
