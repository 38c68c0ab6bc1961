package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/model"
)

const insertPendingTransferQuery = `
INSERT INTO pending_krc20_transfers
    (p2sh_address, first_txn_id, sompi_to_miner, nacho_amount, address,
     nacho_transfer_status, db_entry_status, timestamp)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (p2sh_address) DO NOTHING`

// InsertPendingTransfer persists the recovery anchor for a commit/reveal
// cycle. Written immediately after the commit submission, before the reveal.
func (r *Repository) InsertPendingTransfer(ctx context.Context, record model.KRC20TransferRecord) (err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("insert_pending_transfer", err, started)
	}()

	if _, err = r.db.Exec(ctx, insertPendingTransferQuery,
		record.P2SHAddress,
		record.FirstTxnID,
		int64(record.SompiToMiner),
		int64(record.NachoAmount),
		record.Address,
		string(record.NachoTransferStatus),
		string(record.DBEntryStatus),
		record.Timestamp,
	); err != nil {
		return fmt.Errorf("insert pending transfer %s: %w", record.P2SHAddress, err)
	}
	return nil
}

const updateTransferStatusQuery = `
UPDATE pending_krc20_transfers
SET %s = $2
WHERE p2sh_address = $1`

// UpdateTransferStatus advances one status column of a pending transfer,
// keyed by the commit address that uniquely identifies the inscription.
func (r *Repository) UpdateTransferStatus(ctx context.Context, p2shAddress string, field model.TransferField, status model.TransferStatus) (err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("update_transfer_status", err, started)
	}()

	column, err := transferColumn(field)
	if err != nil {
		return err
	}
	if _, err = r.db.Exec(ctx, fmt.Sprintf(updateTransferStatusQuery, column), p2shAddress, string(status)); err != nil {
		return fmt.Errorf("update %s of transfer %s: %w", column, p2shAddress, err)
	}
	return nil
}

const pendingTransfersQuery = `
SELECT first_txn_id, sompi_to_miner, nacho_amount, address, p2sh_address,
       nacho_transfer_status, db_entry_status, timestamp
FROM pending_krc20_transfers
WHERE nacho_transfer_status = 'PENDING' OR db_entry_status = 'PENDING'
ORDER BY timestamp`

// PendingTransfers lists transfers with at least one unfinished leg, oldest
// first, for crash recovery at startup.
func (r *Repository) PendingTransfers(ctx context.Context) (records []model.KRC20TransferRecord, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("pending_transfers", err, started)
	}()

	rows, err := r.db.Query(ctx, pendingTransfersQuery)
	if err != nil {
		return nil, fmt.Errorf("query pending transfers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var record model.KRC20TransferRecord
		var sompiToMiner, nachoAmount int64
		var nachoStatus, dbStatus string
		if err = rows.Scan(
			&record.FirstTxnID,
			&sompiToMiner,
			&nachoAmount,
			&record.Address,
			&record.P2SHAddress,
			&nachoStatus,
			&dbStatus,
			&record.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan pending transfer row: %w", err)
		}
		record.SompiToMiner = uint64(sompiToMiner)
		record.NachoAmount = uint64(nachoAmount)
		if record.NachoTransferStatus, err = model.ParseTransferStatus(nachoStatus); err != nil {
			return nil, fmt.Errorf("transfer %s: %w", record.FirstTxnID, err)
		}
		if record.DBEntryStatus, err = model.ParseTransferStatus(dbStatus); err != nil {
			return nil, fmt.Errorf("transfer %s: %w", record.FirstTxnID, err)
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending transfers: %w", err)
	}
	return records, nil
}

// transferColumn maps the closed TransferField set to literal column names.
func transferColumn(field model.TransferField) (string, error) {
	switch field {
	case model.FieldNachoTransferStatus:
		return "nacho_transfer_status", nil
	case model.FieldDBEntryStatus:
		return "db_entry_status", nil
	default:
		return "", fmt.Errorf("unknown transfer field %q", field)
	}
}
