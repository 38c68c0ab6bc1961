package service

import (
	"context"
	"time"

	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/chainge"
	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/kaspa"
	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// ChainClient is the kaspad surface the engine spends through.
	ChainClient interface {
		TreasuryAddress() string
		TreasuryPublicKey() []byte
		ServerInfo(ctx context.Context) (kaspa.ServerInfo, error)
		UTXOsByAddress(ctx context.Context, address string) ([]kaspa.UTXOEntry, error)
		VirtualDAAScore(ctx context.Context) (uint64, error)
		FeeEstimate(ctx context.Context) (float64, error)
		BuildTransactions(params kaspa.BuildParams) ([]*kaspa.PendingTransaction, error)
		SignTransaction(tx *kaspa.PendingTransaction) error
		SignP2SHInput(tx *kaspa.PendingTransaction, redeemScript []byte) error
		SubmitTransaction(ctx context.Context, tx *kaspa.PendingTransaction) (string, error)
		SubscribeUTXOsChanged(addresses []string, onChange func(kaspa.UTXOChange)) error
		UnsubscribeUTXOsChanged(addresses []string) error
	}

	// UTXOTracker mirrors the treasury's mature UTXO set.
	UTXOTracker interface {
		Refresh(ctx context.Context) error
		Mature() []kaspa.UTXOEntry
		MatureLength() int
		Balance() uint64
		MarkSpent(outpoints []kaspa.Outpoint)
	}

	// Ledger is the settlement database.
	Ledger interface {
		MinerBalances(ctx context.Context) ([]model.MinerBalanceRow, error)
		PoolBalance(ctx context.Context) (uint64, error)
		ResetBalanceByWallet(ctx context.Context, wallet string, field model.BalanceField) error
		DeductBalance(ctx context.Context, wallet string, amount uint64, field model.BalanceField) error
		RecordPaymentAndReset(ctx context.Context, payment model.Payment) error
		RecordNachoPayment(ctx context.Context, payment model.NachoPayment) error
		InsertPendingTransfer(ctx context.Context, record model.KRC20TransferRecord) error
		UpdateTransferStatus(ctx context.Context, p2shAddress string, field model.TransferField, status model.TransferStatus) error
		PendingTransfers(ctx context.Context) ([]model.KRC20TransferRecord, error)
	}

	// Indexer is the public krc-20/explorer API surface.
	Indexer interface {
		TokenBalance(ctx context.Context, address, ticker string) (uint64, error)
		NFTTokenIDs(ctx context.Context, address, collection string) ([]uint64, error)
		AddressBalance(ctx context.Context, address string) (uint64, error)
		TransactionCount(ctx context.Context, address string) (uint64, error)
		FloorPrice(ctx context.Context, ticker string) (float64, error)
	}

	// SwapProvider is the cross-chain aggregator used to convert treasury KAS
	// into the rebate token.
	SwapProvider interface {
		Quote(ctx context.Context, fromAmount uint64) (chainge.Quote, error)
		VaultAddress(ctx context.Context) (string, error)
		SubmitSwap(ctx context.Context, order chainge.Order) (string, error)
		CheckSwap(ctx context.Context, orderID string) (chainge.SwapStatus, error)
	}

	// Custodian issues payouts from a custodial account instead of treasury
	// UTXOs.
	Custodian interface {
		SendKAS(ctx context.Context, destination string, amount uint64) (string, error)
	}

	// AuditSink records append-only settlement events.
	AuditSink interface {
		Record(ctx context.Context, event model.SettlementEvent) error
	}

	// Metrics tracks settlement cycle outcomes.
	Metrics interface {
		ObserveCycle(err error, started time.Time)
		ObservePayment(kind string, amount uint64)
		ObserveKRC20Transfer(outcome string)
	}
)
