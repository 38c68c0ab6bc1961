package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/model"
)

const insertPaymentQuery = `
INSERT INTO payments (wallet_address, amount, timestamp, transaction_hash)
VALUES ($1, $2, $3, $4)`

const resetAfterPaymentQuery = `
UPDATE miners_balance
SET balance = 0
WHERE wallet = $1`

// RecordPaymentAndReset stores a matured KAS payout and zeroes the wallet's
// owed balance in one transaction, so a crash cannot leave the payment
// recorded but the balance uncleared or vice versa.
func (r *Repository) RecordPaymentAndReset(ctx context.Context, payment model.Payment) (err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("record_payment_and_reset", err, started)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin payment transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, insertPaymentQuery,
		payment.WalletAddress, int64(payment.Amount), payment.Timestamp, payment.TransactionHash); err != nil {
		return fmt.Errorf("insert payment %s: %w", payment.TransactionHash, err)
	}
	if _, err = tx.Exec(ctx, resetAfterPaymentQuery, payment.WalletAddress); err != nil {
		return fmt.Errorf("reset balance for %s: %w", payment.WalletAddress, err)
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit payment transaction: %w", err)
	}
	return nil
}

const insertNachoPaymentQuery = `
INSERT INTO nacho_payments (wallet_address, nacho_amount, timestamp, transaction_hash)
VALUES ($1, $2, $3, $4)`

// RecordNachoPayment stores a completed krc-20 rebate payout.
func (r *Repository) RecordNachoPayment(ctx context.Context, payment model.NachoPayment) (err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("record_nacho_payment", err, started)
	}()

	if _, err = r.db.Exec(ctx, insertNachoPaymentQuery,
		payment.WalletAddress, int64(payment.NachoAmount), payment.Timestamp, payment.TransactionHash); err != nil {
		return fmt.Errorf("insert nacho payment %s: %w", payment.TransactionHash, err)
	}
	return nil
}

const paymentsByWalletQuery = `
SELECT wallet_address, amount, timestamp, transaction_hash
FROM payments
WHERE wallet_address = $1
ORDER BY timestamp DESC
LIMIT $2`

// PaymentsByWallet lists the most recent KAS payouts to a wallet.
func (r *Repository) PaymentsByWallet(ctx context.Context, wallet string, limit int) (payments []model.Payment, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("payments_by_wallet", err, started)
	}()

	rows, err := r.db.Query(ctx, paymentsByWalletQuery, wallet, limit)
	if err != nil {
		return nil, fmt.Errorf("query payments for %s: %w", wallet, err)
	}
	defer rows.Close()

	for rows.Next() {
		var payment model.Payment
		var amount int64
		if err = rows.Scan(&payment.WalletAddress, &amount, &payment.Timestamp, &payment.TransactionHash); err != nil {
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		payment.Amount = uint64(amount)
		payments = append(payments, payment)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payments: %w", err)
	}
	return payments, nil
}
