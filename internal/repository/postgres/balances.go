package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/model"
)

const minerBalancesQuery = `
SELECT min(miner_id) AS miner_id,
       wallet,
       coalesce(sum(balance), 0)::bigint AS balance,
       coalesce(sum(nacho_rebate_kas), 0)::bigint AS nacho_rebate_kas
FROM miners_balance
WHERE wallet <> $1
GROUP BY wallet
ORDER BY wallet`

// MinerBalances returns per-wallet aggregated owed balances, excluding the
// pool treasury wallet.
func (r *Repository) MinerBalances(ctx context.Context) (rows []model.MinerBalanceRow, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("miner_balances", err, started)
	}()

	result, err := r.db.Query(ctx, minerBalancesQuery, r.poolAddress)
	if err != nil {
		return nil, fmt.Errorf("query miner balances: %w", err)
	}
	defer result.Close()

	for result.Next() {
		var row model.MinerBalanceRow
		var balance, nachoBalance int64
		if err = result.Scan(&row.MinerID, &row.Address, &balance, &nachoBalance); err != nil {
			return nil, fmt.Errorf("scan miner balance row: %w", err)
		}
		row.Balance = uint64(balance)
		row.NachoBalance = uint64(nachoBalance)
		rows = append(rows, row)
	}
	if err = result.Err(); err != nil {
		return nil, fmt.Errorf("iterate miner balances: %w", err)
	}
	return rows, nil
}

const poolBalanceQuery = `
SELECT coalesce(sum(balance), 0)::bigint
FROM miners_balance
WHERE wallet = $1`

// PoolBalance returns the treasury's own accumulated balance in sompi.
func (r *Repository) PoolBalance(ctx context.Context) (balance uint64, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("pool_balance", err, started)
	}()

	var value int64
	if err = r.db.QueryRow(ctx, poolBalanceQuery, r.poolAddress).Scan(&value); err != nil {
		return 0, fmt.Errorf("query pool balance: %w", err)
	}
	return uint64(value), nil
}

const resetBalanceQuery = `
UPDATE miners_balance
SET %s = 0
WHERE wallet = $1`

// ResetBalanceByWallet zeroes one balance column for every row of a wallet.
// Called only after the corresponding payout transaction reached maturity.
func (r *Repository) ResetBalanceByWallet(ctx context.Context, wallet string, field model.BalanceField) (err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("reset_balance", err, started)
	}()

	column, err := balanceColumn(field)
	if err != nil {
		return err
	}
	if _, err = r.db.Exec(ctx, fmt.Sprintf(resetBalanceQuery, column), wallet); err != nil {
		return fmt.Errorf("reset %s for %s: %w", column, wallet, err)
	}
	return nil
}

const deductBalanceQuery = `
UPDATE miners_balance
SET %[1]s = CASE WHEN %[1]s >= $2 THEN %[1]s - $2 ELSE 0 END
WHERE wallet = $1`

// DeductBalance subtracts amount from one balance column of a wallet,
// clamping at zero instead of going negative.
func (r *Repository) DeductBalance(ctx context.Context, wallet string, amount uint64, field model.BalanceField) (err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("deduct_balance", err, started)
	}()

	column, err := balanceColumn(field)
	if err != nil {
		return err
	}
	if _, err = r.db.Exec(ctx, fmt.Sprintf(deductBalanceQuery, column), wallet, int64(amount)); err != nil {
		return fmt.Errorf("deduct %d from %s of %s: %w", amount, column, wallet, err)
	}
	return nil
}

// balanceColumn maps the closed BalanceField set to literal column names.
// Queries are never interpolated from caller strings.
func balanceColumn(field model.BalanceField) (string, error) {
	switch field {
	case model.FieldBalance:
		return "balance", nil
	case model.FieldNachoRebateKas:
		return "nacho_rebate_kas", nil
	default:
		return "", fmt.Errorf("unknown balance field %q", field)
	}
}
