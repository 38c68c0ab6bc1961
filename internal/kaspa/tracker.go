package kaspa

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Coinbase outputs unlock this many DAA scores after inclusion. Regular
// outputs are spendable as soon as the node reports them.
const coinbaseMaturity = 100

// Tracker mirrors the treasury's spendable UTXO set. It is primed with a
// full scan and kept current by change notifications from the node; entries
// that cannot be proven mature are excluded until the next refresh.
type Tracker struct {
	client  *Client
	address string
	logger  *zap.Logger

	mu     sync.RWMutex
	mature map[Outpoint]UTXOEntry
	closed bool
}

// NewTracker builds a tracker for the given address. Call Start before use.
func NewTracker(client *Client, address string, logger *zap.Logger) *Tracker {
	return &Tracker{
		client:  client,
		address: address,
		logger:  logger,
		mature:  make(map[Outpoint]UTXOEntry),
	}
}

// Start primes the mature set and subscribes to change notifications for the
// tracked address. It must be paired with Stop.
func (t *Tracker) Start(ctx context.Context) error {
	if err := t.Refresh(ctx); err != nil {
		return fmt.Errorf("prime utxo tracker: %w", err)
	}
	if err := t.client.SubscribeUTXOsChanged([]string{t.address}, t.apply); err != nil {
		return fmt.Errorf("subscribe utxo changes: %w", err)
	}
	t.logger.Info("utxo tracker started",
		zap.String("address", t.address),
		zap.Int("mature_utxos", t.MatureLength()))
	return nil
}

// Stop unsubscribes from change notifications and freezes the set.
func (t *Tracker) Stop() error {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
	if err := t.client.UnsubscribeUTXOsChanged([]string{t.address}); err != nil {
		return fmt.Errorf("unsubscribe utxo changes: %w", err)
	}
	return nil
}

// Refresh replaces the mature set with a fresh scan of the node's UTXO index.
// Entries whose maturity cannot be established are dropped.
func (t *Tracker) Refresh(ctx context.Context) error {
	entries, err := t.client.UTXOsByAddress(ctx, t.address)
	if err != nil {
		return fmt.Errorf("fetch utxos for %s: %w", t.address, err)
	}
	virtualDAAScore, err := t.client.VirtualDAAScore(ctx)
	if err != nil {
		return fmt.Errorf("fetch virtual daa score: %w", err)
	}

	next := make(map[Outpoint]UTXOEntry, len(entries))
	skipped := 0
	for _, entry := range entries {
		if !isMature(entry, virtualDAAScore) {
			skipped++
			continue
		}
		next[entry.Outpoint] = entry
	}

	if !t.install(next) {
		t.logger.Warn("refresh produced no mature utxos, keeping previous set",
			zap.String("address", t.address),
			zap.Int("skipped", skipped))
		return nil
	}

	if skipped > 0 {
		t.logger.Debug("excluded immature utxos",
			zap.String("address", t.address),
			zap.Int("skipped", skipped))
	}
	return nil
}

// install swaps in a freshly scanned mature set. A scan that filters
// everything out would leave the treasury looking empty mid-cycle, so an
// empty result is rejected while a previous non-empty set exists.
func (t *Tracker) install(next map[Outpoint]UTXOEntry) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(next) == 0 && len(t.mature) > 0 {
		return false
	}
	t.mature = next
	return true
}

// apply folds one change notification into the set. Added entries are only
// admitted once mature, which for fresh notifications effectively defers
// coinbase outputs to the next Refresh.
func (t *Tracker) apply(change UTXOChange) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	for _, entry := range change.Removed {
		delete(t.mature, entry.Outpoint)
	}
	for _, entry := range change.Added {
		if entry.IsCoinbase {
			// No DAA reference at notification time; picked up by Refresh.
			continue
		}
		t.mature[entry.Outpoint] = entry
	}
}

// MarkSpent removes entries the engine has just consumed in a submitted
// transaction, ahead of the node's own removal notification.
func (t *Tracker) MarkSpent(outpoints []Outpoint) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, outpoint := range outpoints {
		delete(t.mature, outpoint)
	}
}

// MatureLength reports the size of the mature set.
func (t *Tracker) MatureLength() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.mature)
}

// Mature returns the mature entries ordered by descending amount.
func (t *Tracker) Mature() []UTXOEntry {
	t.mu.RLock()
	entries := make([]UTXOEntry, 0, len(t.mature))
	for _, entry := range t.mature {
		entries = append(entries, entry)
	}
	t.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Amount != entries[j].Amount {
			return entries[i].Amount > entries[j].Amount
		}
		return entries[i].Outpoint.TransactionID < entries[j].Outpoint.TransactionID
	})
	return entries
}

// Balance sums the mature set.
func (t *Tracker) Balance() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var total uint64
	for _, entry := range t.mature {
		total += entry.Amount
	}
	return total
}

func isMature(entry UTXOEntry, virtualDAAScore uint64) bool {
	if !entry.IsCoinbase {
		return true
	}
	return virtualDAAScore >= entry.BlockDAAScore+coinbaseMaturity
}
