package model

import (
	"fmt"
	"time"
)

type Network string

var (
	Mainnet   Network = "mainnet"
	Testnet10 Network = "testnet-10"
	Testnet11 Network = "testnet-11"
)

// SompiPerKas is the number of minor units in one KAS.
const SompiPerKas = 100_000_000

// MinerBalanceRow is one wallet's aggregated ledger state, excluding the pool
// treasury row. Balance is owed KAS in sompi; NachoBalance is the owed NACHO
// rebate expressed in KAS-equivalent sompi before conversion.
type MinerBalanceRow struct {
	MinerID      string
	Address      string
	Balance      uint64
	NachoBalance uint64
}

// TransferStatus tracks one leg of a pending KRC-20 transfer.
type TransferStatus string

const (
	TransferPending   TransferStatus = "PENDING"
	TransferFailed    TransferStatus = "FAILED"
	TransferCompleted TransferStatus = "COMPLETED"
)

// ParseTransferStatus rejects values outside the known set at the boundary.
func ParseTransferStatus(s string) (TransferStatus, error) {
	switch TransferStatus(s) {
	case TransferPending, TransferFailed, TransferCompleted:
		return TransferStatus(s), nil
	default:
		return "", fmt.Errorf("unknown transfer status %q", s)
	}
}

// TransferField selects which status column of pending_krc20_transfers to
// update. It is a closed set mapped to literal column names through an
// exhaustive switch; column names are never built from input strings.
type TransferField string

const (
	FieldNachoTransferStatus TransferField = "nacho_transfer_status"
	FieldDBEntryStatus       TransferField = "db_entry_status"
)

// BalanceField selects which ledger balance column a deduction applies to.
type BalanceField string

const (
	FieldBalance        BalanceField = "balance"
	FieldNachoRebateKas BalanceField = "nacho_rebate_kas"
)

// KRC20TransferRecord is the recovery anchor for one commit/reveal cycle,
// persisted as soon as the commit transaction is submitted. The two statuses
// track independently whether the token moved on-chain and whether the ledger
// bookkeeping completed, because either can fail without the other.
type KRC20TransferRecord struct {
	FirstTxnID          string
	SompiToMiner        uint64
	NachoAmount         uint64
	Address             string
	P2SHAddress         string
	NachoTransferStatus TransferStatus
	DBEntryStatus       TransferStatus
	Timestamp           time.Time
}

// Payment is a KAS payment-history row keyed by transaction hash.
type Payment struct {
	WalletAddress   string
	Amount          uint64
	Timestamp       time.Time
	TransactionHash string
}

// NachoPayment is a KRC-20 payment-history row keyed by transaction hash.
type NachoPayment struct {
	WalletAddress   string
	NachoAmount     uint64
	Timestamp       time.Time
	TransactionHash string
}

// SettlementEventKind labels an audit-sink event.
type SettlementEventKind string

const (
	EventCycleStarted    SettlementEventKind = "cycle_started"
	EventCycleFinished   SettlementEventKind = "cycle_finished"
	EventPaymentSent     SettlementEventKind = "payment_sent"
	EventPaymentFailed   SettlementEventKind = "payment_failed"
	EventCommitSubmitted SettlementEventKind = "commit_submitted"
	EventRevealSubmitted SettlementEventKind = "reveal_submitted"
	EventTransferDone    SettlementEventKind = "transfer_done"
	EventTransferFailed  SettlementEventKind = "transfer_failed"
	EventSwapExecuted    SettlementEventKind = "swap_executed"

	EventTreasuryUnderfunded SettlementEventKind = "treasury_underfunded"
)

// SettlementEvent is an append-only audit row shipped to ClickHouse.
type SettlementEvent struct {
	Network   Network
	Cycle     uint64
	Kind      SettlementEventKind
	Address   string
	TxID      string
	Amount    uint64
	Detail    string
	Timestamp time.Time
}
