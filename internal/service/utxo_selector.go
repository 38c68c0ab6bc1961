package service

import (
	"errors"

	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/kaspa"
	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/model"
)

const (
	preferredSeedAmount = 3 * model.SompiPerKas
	minimumSeedAmount   = 1 * model.SompiPerKas
)

// ErrNoSuitableUTXO means the treasury holds no single output large enough to
// seed an inscription commit.
var ErrNoSuitableUTXO = errors.New("no treasury utxo large enough to seed a commit")

// selectSeedEntry picks the output that funds an inscription commit. An
// output covering the whole commit is preferred so the commit spends a single
// input; anything at or above the minimum still works with extra inputs.
// Entries are assumed sorted by descending amount, so the smallest qualifying
// output is the last one over each bar.
func selectSeedEntry(entries []kaspa.UTXOEntry) (kaspa.UTXOEntry, error) {
	var (
		preferred kaspa.UTXOEntry
		fallback  kaspa.UTXOEntry
		hasPref   bool
		hasFall   bool
	)
	for _, entry := range entries {
		if entry.Amount >= preferredSeedAmount {
			preferred = entry
			hasPref = true
		} else if entry.Amount >= minimumSeedAmount {
			fallback = entry
			hasFall = true
		}
	}
	if hasPref {
		return preferred, nil
	}
	if hasFall {
		return fallback, nil
	}
	return kaspa.UTXOEntry{}, ErrNoSuitableUTXO
}
