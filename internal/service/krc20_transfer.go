package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/clock"
	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/kaspa"
	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/model"
)

// commitAmount funds the inscription's P2SH output. It covers the reveal
// transaction's mass with room to spare; the surplus returns to treasury as
// part of the reveal.
const commitAmount = 3 * model.SompiPerKas

var (
	// ErrCommitNotAccepted means the commit transaction never funded the
	// P2SH address within the poll budget.
	ErrCommitNotAccepted = errors.New("commit transaction not accepted in time")
	// ErrRevealNotAccepted means the reveal transaction never drained the
	// P2SH address within the poll budget.
	ErrRevealNotAccepted = errors.New("reveal transaction not accepted in time")
)

// transferToken moves tokenAmount of the rebate token to the wallet through
// an inscription commit/reveal pair, recording a recovery anchor before any
// funds move and settling the ledger only after the reveal is on-chain.
// kasAmount is the KAS-equivalent rebate being discharged; fullRebate wallets
// have it recorded at the tripled rate their entitlement was computed with.
func (e *Engine) transferToken(ctx context.Context, wallet string, kasAmount, tokenAmount uint64, fullRebate bool) error {
	inscription, err := kaspa.NewTransferInscription(e.chain.TreasuryPublicKey(), e.cfg.Ticker, tokenAmount, wallet)
	if err != nil {
		return fmt.Errorf("build transfer inscription: %w", err)
	}
	p2shAddress, err := inscription.P2SHAddress(kaspa.PrefixForNetwork(e.cfg.Network))
	if err != nil {
		return fmt.Errorf("derive commit address: %w", err)
	}

	commitTxID, err := e.submitCommit(ctx, p2shAddress)
	if err != nil {
		return fmt.Errorf("commit for %s: %w", wallet, err)
	}

	recordedKAS := kasAmount
	if fullRebate {
		recordedKAS = kasAmount * fullRebateMultiplier
	}

	// The anchor is persisted before the balances move so a crash leaves a
	// resumable record rather than silently lost funds.
	if err := e.ledger.InsertPendingTransfer(ctx, model.KRC20TransferRecord{
		FirstTxnID:          commitTxID,
		SompiToMiner:        recordedKAS,
		NachoAmount:         tokenAmount,
		Address:             wallet,
		P2SHAddress:         p2shAddress,
		NachoTransferStatus: model.TransferPending,
		DBEntryStatus:       model.TransferPending,
		Timestamp:           time.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("record pending transfer: %w", err)
	}
	if err := e.ledger.DeductBalance(ctx, wallet, kasAmount, model.FieldNachoRebateKas); err != nil {
		return fmt.Errorf("deduct rebate balance: %w", err)
	}
	if err := e.ledger.DeductBalance(ctx, e.chain.TreasuryAddress(), kasAmount*fullRebateMultiplier, model.FieldBalance); err != nil {
		return fmt.Errorf("deduct pool balance: %w", err)
	}

	e.recordEvent(ctx, model.SettlementEvent{
		Kind:    model.EventCommitSubmitted,
		Address: wallet,
		TxID:    commitTxID,
		Amount:  tokenAmount,
	})

	p2shEntry, err := e.waitForCommit(ctx, p2shAddress, commitTxID)
	if err != nil {
		return err
	}

	revealTxID, err := e.submitReveal(ctx, inscription, p2shEntry)
	if err != nil {
		return fmt.Errorf("reveal for %s: %w", wallet, err)
	}
	e.recordEvent(ctx, model.SettlementEvent{
		Kind:    model.EventRevealSubmitted,
		Address: wallet,
		TxID:    revealTxID,
	})

	if err := e.waitForReveal(ctx, p2shAddress, revealTxID); err != nil {
		return err
	}
	if err := e.confirmRevealAccepted(ctx, revealTxID); err != nil {
		return err
	}

	return e.finishTransfer(ctx, p2shAddress, revealTxID, wallet, tokenAmount)
}

// submitCommit pays the commit amount to the P2SH address from treasury
// funds, seeding the selection with an output sized for the spend.
func (e *Engine) submitCommit(ctx context.Context, p2shAddress string) (string, error) {
	mature := e.tracker.Mature()
	seed, err := selectSeedEntry(mature)
	if err != nil {
		return "", err
	}

	pending, err := e.chain.BuildTransactions(kaspa.BuildParams{
		PriorityEntries: []kaspa.UTXOEntry{seed},
		Entries:         mature,
		Outputs:         []kaspa.Output{{Address: p2shAddress, Amount: commitAmount}},
		ChangeAddress:   e.chain.TreasuryAddress(),
		PriorityFee:     standardPriorityFee,
	})
	if err != nil {
		return "", fmt.Errorf("build commit: %w", err)
	}
	commit := pending[0]

	if err := e.chain.SignTransaction(commit); err != nil {
		return "", fmt.Errorf("sign commit: %w", err)
	}
	txID, err := e.chain.SubmitTransaction(ctx, commit)
	if err != nil {
		return "", fmt.Errorf("submit commit: %w", err)
	}
	e.tracker.MarkSpent(commit.Inputs())
	return txID, nil
}

// waitForCommit waits until the commit output lands on the P2SH address and
// returns it for the reveal to spend. Two signals race: a change notification
// for the address and a polling loop backing it up. The first to carry the
// commit outpoint wins; poll errors are reported and waited through because
// the ledger already carries this transfer's deductions and abandoning it on
// a flaky node read would strand them.
func (e *Engine) waitForCommit(ctx context.Context, p2shAddress, commitTxID string) (kaspa.UTXOEntry, error) {
	watchdog := time.AfterFunc(e.cfg.WatchdogInterval, func() {
		e.logger.Warn("commit still unaccepted",
			zap.String("p2sh_address", p2shAddress),
			zap.String("tx_id", commitTxID))
	})
	defer watchdog.Stop()

	found := make(chan kaspa.UTXOEntry, 1)
	var once sync.Once
	deliver := func(entry kaspa.UTXOEntry) {
		once.Do(func() { found <- entry })
	}

	if err := e.chain.SubscribeUTXOsChanged([]string{p2shAddress}, func(change kaspa.UTXOChange) {
		for _, entry := range change.Added {
			if entry.Outpoint.TransactionID == commitTxID {
				deliver(entry)
				return
			}
		}
	}); err != nil {
		e.logger.Warn("commit address subscription failed, polling only",
			zap.String("p2sh_address", p2shAddress),
			zap.Error(err))
	} else {
		defer func() {
			if err := e.chain.UnsubscribeUTXOsChanged([]string{p2shAddress}); err != nil {
				e.logger.Warn("commit address unsubscribe failed", zap.Error(err))
			}
		}()
	}

	for attempt := 0; attempt < e.cfg.CommitPollAttempts; attempt++ {
		entries, err := e.chain.UTXOsByAddress(ctx, p2shAddress)
		if err != nil {
			e.logger.Warn("commit address poll failed, still waiting",
				zap.String("p2sh_address", p2shAddress),
				zap.Error(err))
		}
		for _, entry := range entries {
			if entry.Outpoint.TransactionID == commitTxID {
				return entry, nil
			}
		}

		select {
		case entry := <-found:
			return entry, nil
		case <-ctx.Done():
			return kaspa.UTXOEntry{}, ctx.Err()
		case <-time.After(e.cfg.CommitPollInterval):
		}
	}
	return kaspa.UTXOEntry{}, fmt.Errorf("%w: %s", ErrCommitNotAccepted, commitTxID)
}

// submitReveal spends the P2SH output back to treasury, exposing the
// inscription's redeem script on-chain.
func (e *Engine) submitReveal(ctx context.Context, inscription *kaspa.Inscription, p2shEntry kaspa.UTXOEntry) (string, error) {
	if p2shEntry.Amount <= standardPriorityFee {
		return "", fmt.Errorf("commit output of %d cannot cover reveal fee", p2shEntry.Amount)
	}

	pending, err := e.chain.BuildTransactions(kaspa.BuildParams{
		PriorityEntries: []kaspa.UTXOEntry{p2shEntry},
		Outputs: []kaspa.Output{{
			Address: e.chain.TreasuryAddress(),
			Amount:  p2shEntry.Amount - standardPriorityFee,
		}},
		ChangeAddress: e.chain.TreasuryAddress(),
		PriorityFee:   standardPriorityFee,
	})
	if err != nil {
		return "", fmt.Errorf("build reveal: %w", err)
	}
	reveal := pending[0]

	if err := e.chain.SignTransaction(reveal); err != nil {
		return "", fmt.Errorf("sign reveal: %w", err)
	}
	if err := e.chain.SignP2SHInput(reveal, inscription.RedeemScript()); err != nil {
		return "", fmt.Errorf("sign reveal commit input: %w", err)
	}
	txID, err := e.chain.SubmitTransaction(ctx, reveal)
	if err != nil {
		return "", fmt.Errorf("submit reveal: %w", err)
	}
	return txID, nil
}

// waitForReveal waits until the P2SH address is drained and its transaction
// count is even, meaning the reveal that pairs the commit was accepted. A
// change notification showing the commit output spent short-circuits the poll
// interval; check errors are reported and waited through for the same reason
// as in waitForCommit.
func (e *Engine) waitForReveal(ctx context.Context, p2shAddress, revealTxID string) error {
	watchdog := time.AfterFunc(e.cfg.WatchdogInterval, func() {
		e.logger.Warn("reveal still unaccepted",
			zap.String("p2sh_address", p2shAddress),
			zap.String("tx_id", revealTxID))
	})
	defer watchdog.Stop()

	drained := make(chan struct{}, 1)
	var once sync.Once
	nudge := func() {
		once.Do(func() { drained <- struct{}{} })
	}

	if err := e.chain.SubscribeUTXOsChanged([]string{p2shAddress}, func(change kaspa.UTXOChange) {
		if len(change.Removed) > 0 {
			nudge()
		}
	}); err != nil {
		e.logger.Warn("commit address subscription failed, polling only",
			zap.String("p2sh_address", p2shAddress),
			zap.Error(err))
	} else {
		defer func() {
			if err := e.chain.UnsubscribeUTXOsChanged([]string{p2shAddress}); err != nil {
				e.logger.Warn("commit address unsubscribe failed", zap.Error(err))
			}
		}()
	}

	for attempt := 0; attempt < e.cfg.CommitPollAttempts; attempt++ {
		if e.revealLanded(ctx, p2shAddress) {
			return nil
		}
		select {
		case <-drained:
			// The node saw the commit output spent; verify right away.
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(e.cfg.CommitPollInterval):
		}
	}
	return fmt.Errorf("%w: %s", ErrRevealNotAccepted, revealTxID)
}

// revealLanded checks the drained-and-even condition once. Transient check
// failures read as not-yet-landed.
func (e *Engine) revealLanded(ctx context.Context, p2shAddress string) bool {
	entries, err := e.chain.UTXOsByAddress(ctx, p2shAddress)
	if err != nil {
		e.logger.Warn("commit address poll failed, still waiting",
			zap.String("p2sh_address", p2shAddress),
			zap.Error(err))
		return false
	}
	if len(entries) != 0 {
		return false
	}
	count, err := e.indexer.TransactionCount(ctx, p2shAddress)
	if err != nil {
		e.logger.Warn("commit address transaction count failed, still waiting",
			zap.String("p2sh_address", p2shAddress),
			zap.Error(err))
		return false
	}
	return count%2 == 0
}

// confirmRevealAccepted waits for the reveal's change output to land back in
// the treasury. Only then is the transfer recorded as paid; a reveal the DAG
// never accepted would otherwise be booked as a completed payment.
func (e *Engine) confirmRevealAccepted(ctx context.Context, revealTxID string) error {
	for attempt := 0; attempt < e.cfg.MaturityPollAttempts; attempt++ {
		entries, err := e.chain.UTXOsByAddress(ctx, e.chain.TreasuryAddress())
		if err != nil {
			e.logger.Warn("treasury scan failed while confirming reveal",
				zap.String("tx_id", revealTxID),
				zap.Error(err))
		}
		for _, entry := range entries {
			if entry.Outpoint.TransactionID == revealTxID {
				return nil
			}
		}
		if err := clock.SleepWithContext(ctx, e.cfg.MaturityPollInterval); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w: reveal %s not in treasury utxo set", ErrRevealNotAccepted, revealTxID)
}

// finishTransfer settles the bookkeeping for a revealed transfer: the token
// leg first, then payment history, then the ledger leg. Each step is keyed by
// the commit address so recovery can resume from any point.
func (e *Engine) finishTransfer(ctx context.Context, p2shAddress, revealTxID, wallet string, tokenAmount uint64) error {
	if err := e.ledger.UpdateTransferStatus(ctx, p2shAddress, model.FieldNachoTransferStatus, model.TransferCompleted); err != nil {
		return fmt.Errorf("mark transfer complete: %w", err)
	}
	if err := e.ledger.RecordNachoPayment(ctx, model.NachoPayment{
		WalletAddress:   wallet,
		NachoAmount:     tokenAmount,
		Timestamp:       time.Now().UTC(),
		TransactionHash: revealTxID,
	}); err != nil {
		return fmt.Errorf("record token payment: %w", err)
	}
	if err := e.ledger.UpdateTransferStatus(ctx, p2shAddress, model.FieldDBEntryStatus, model.TransferCompleted); err != nil {
		return fmt.Errorf("mark bookkeeping complete: %w", err)
	}

	e.metrics.ObserveKRC20Transfer("success")
	e.metrics.ObservePayment("nacho", tokenAmount)
	e.recordEvent(ctx, model.SettlementEvent{
		Kind:    model.EventTransferDone,
		Address: wallet,
		TxID:    revealTxID,
		Amount:  tokenAmount,
	})
	e.logger.Info("token transfer complete",
		zap.String("wallet", wallet),
		zap.Uint64("token_amount", tokenAmount),
		zap.String("reveal_tx_id", revealTxID))
	return nil
}
