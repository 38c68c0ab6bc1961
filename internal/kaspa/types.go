// Package kaspa adapts the kaspad node RPC surface and transaction
// primitives for the settlement services.
package kaspa

import (
	"encoding/hex"
	"fmt"

	"github.com/kaspanet/kaspad/app/appmessage"
	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
)

// Outpoint identifies a transaction output.
type Outpoint struct {
	TransactionID string
	Index         uint32
}

// UTXOEntry is a spendable output owned by a tracked address.
type UTXOEntry struct {
	Address         string
	Outpoint        Outpoint
	Amount          uint64
	ScriptPublicKey *externalapi.ScriptPublicKey
	BlockDAAScore   uint64
	IsCoinbase      bool
}

// Output is a destination/amount pair for transaction construction.
type Output struct {
	Address string
	Amount  uint64
}

// UTXOChange is one address-keyed UTXO-change notification.
type UTXOChange struct {
	Added   []UTXOEntry
	Removed []UTXOEntry
}

// ServerInfo reports node readiness consumed at startup.
type ServerInfo struct {
	ServerVersion string
	IsSynced      bool
	HasUTXOIndex  bool
}

// BuildParams describes one transaction-construction request. Priority
// entries are spent first; remaining entries fill in by descending amount.
type BuildParams struct {
	PriorityEntries []UTXOEntry
	Entries         []UTXOEntry
	Outputs         []Output
	ChangeAddress   string
	PriorityFee     uint64
}

// PendingTransaction is a constructed, not yet submitted transaction. Outputs
// mirrors the transaction's own outputs, change included, so callers can
// record what was actually paid rather than what was requested.
type PendingTransaction struct {
	ID      string
	Outputs []Output

	tx *externalapi.DomainTransaction
}

// Inputs lists the outpoints the transaction spends, so callers can retire
// them from local UTXO state once the transaction is submitted.
func (p *PendingTransaction) Inputs() []Outpoint {
	if p.tx == nil {
		return nil
	}
	outpoints := make([]Outpoint, 0, len(p.tx.Inputs))
	for _, input := range p.tx.Inputs {
		outpoints = append(outpoints, Outpoint{
			TransactionID: input.PreviousOutpoint.TransactionID.String(),
			Index:         input.PreviousOutpoint.Index,
		})
	}
	return outpoints
}

func entryFromRPC(e *appmessage.UTXOsByAddressesEntry) (UTXOEntry, error) {
	script, err := hex.DecodeString(e.UTXOEntry.ScriptPublicKey.Script)
	if err != nil {
		return UTXOEntry{}, fmt.Errorf("decode script public key: %w", err)
	}
	return UTXOEntry{
		Address: e.Address,
		Outpoint: Outpoint{
			TransactionID: e.Outpoint.TransactionID,
			Index:         e.Outpoint.Index,
		},
		Amount: e.UTXOEntry.Amount,
		ScriptPublicKey: &externalapi.ScriptPublicKey{
			Script:  script,
			Version: e.UTXOEntry.ScriptPublicKey.Version,
		},
		BlockDAAScore: e.UTXOEntry.BlockDAAScore,
		IsCoinbase:    e.UTXOEntry.IsCoinbase,
	}, nil
}

func entriesFromRPC(entries []*appmessage.UTXOsByAddressesEntry) ([]UTXOEntry, error) {
	out := make([]UTXOEntry, 0, len(entries))
	for _, e := range entries {
		converted, err := entryFromRPC(e)
		if err != nil {
			return nil, fmt.Errorf("outpoint %s:%d: %w", e.Outpoint.TransactionID, e.Outpoint.Index, err)
		}
		out = append(out, converted)
	}
	return out, nil
}
