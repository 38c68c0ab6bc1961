package kaspa

import (
	"errors"
	"fmt"
	"sort"

	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
	"github.com/kaspanet/kaspad/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/kaspad/domain/consensus/utils/subnetworks"
	"github.com/kaspanet/kaspad/domain/consensus/utils/transactionid"
	"github.com/kaspanet/kaspad/domain/consensus/utils/txscript"
	"github.com/kaspanet/kaspad/domain/consensus/utils/utxo"
	"github.com/kaspanet/kaspad/util"
)

const (
	// Change below this folds into the fee instead of producing a dust output.
	dustThreshold = 600

	// Input-count bound keeping the transaction under the network mass ceiling.
	maxInputsPerTransaction = 84

	transactionVersion = 0
)

// ErrInsufficientFunds reports that the provided entries cannot cover the
// requested outputs plus fee.
var ErrInsufficientFunds = errors.New("insufficient funds for transaction")

// BuildTransactions constructs one transaction per requested output, spending
// priority entries first and then the remaining entries by descending amount.
// Change above the dust floor returns to the change address.
func (c *Client) BuildTransactions(params BuildParams) ([]*PendingTransaction, error) {
	pool := make([]UTXOEntry, 0, len(params.PriorityEntries)+len(params.Entries))
	pool = append(pool, params.PriorityEntries...)

	rest := append([]UTXOEntry(nil), params.Entries...)
	sort.Slice(rest, func(i, j int) bool { return rest[i].Amount > rest[j].Amount })
	pool = append(pool, rest...)

	transactions := make([]*PendingTransaction, 0, len(params.Outputs))
	for _, output := range params.Outputs {
		tx, remaining, err := c.buildSingle(pool, output, params.ChangeAddress, params.PriorityFee)
		if err != nil {
			return nil, fmt.Errorf("build transaction for %s: %w", output.Address, err)
		}
		pool = remaining
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

func (c *Client) buildSingle(pool []UTXOEntry, output Output, changeAddress string, fee uint64) (*PendingTransaction, []UTXOEntry, error) {
	needed := output.Amount + fee

	var selected []UTXOEntry
	var total uint64
	for _, entry := range pool {
		if total >= needed {
			break
		}
		if len(selected) >= maxInputsPerTransaction {
			return nil, nil, fmt.Errorf("input count exceeds mass bound of %d", maxInputsPerTransaction)
		}
		selected = append(selected, entry)
		total += entry.Amount
	}
	if total < needed {
		return nil, nil, fmt.Errorf("%w: have %d sompi, need %d", ErrInsufficientFunds, total, needed)
	}

	inputs := make([]*externalapi.DomainTransactionInput, 0, len(selected))
	for _, entry := range selected {
		txID, err := transactionid.FromString(entry.Outpoint.TransactionID)
		if err != nil {
			return nil, nil, fmt.Errorf("parse outpoint id %s: %w", entry.Outpoint.TransactionID, err)
		}
		inputs = append(inputs, &externalapi.DomainTransactionInput{
			PreviousOutpoint: externalapi.DomainOutpoint{
				TransactionID: *txID,
				Index:         entry.Outpoint.Index,
			},
			SigOpCount: 1,
			UTXOEntry:  utxo.NewUTXOEntry(entry.Amount, entry.ScriptPublicKey, entry.IsCoinbase, entry.BlockDAAScore),
		})
	}

	outputs := []Output{output}
	domainOutputs := make([]*externalapi.DomainTransactionOutput, 0, 2)

	destScript, err := payToAddressScript(output.Address, c.signer.Prefix())
	if err != nil {
		return nil, nil, err
	}
	domainOutputs = append(domainOutputs, &externalapi.DomainTransactionOutput{
		Value:           output.Amount,
		ScriptPublicKey: destScript,
	})

	if change := total - needed; change > dustThreshold {
		changeScript, err := payToAddressScript(changeAddress, c.signer.Prefix())
		if err != nil {
			return nil, nil, err
		}
		domainOutputs = append(domainOutputs, &externalapi.DomainTransactionOutput{
			Value:           change,
			ScriptPublicKey: changeScript,
		})
		outputs = append(outputs, Output{Address: changeAddress, Amount: change})
	}

	tx := &externalapi.DomainTransaction{
		Version:      transactionVersion,
		Inputs:       inputs,
		Outputs:      domainOutputs,
		SubnetworkID: subnetworks.SubnetworkIDNative,
	}

	pending := &PendingTransaction{
		ID:      consensushashing.TransactionID(tx).String(),
		Outputs: outputs,
		tx:      tx,
	}
	return pending, pool[len(selected):], nil
}

// SignTransaction fills schnorr signature scripts for every input spendable
// by the treasury key. Inputs locked to other scripts (P2SH) are left empty
// for SignP2SHInput.
func (c *Client) SignTransaction(pending *PendingTransaction) error {
	treasuryScript, err := payToAddressScript(c.signer.Address(), c.signer.Prefix())
	if err != nil {
		return err
	}

	reused := &consensushashing.SighashReusedValues{}
	for i, input := range pending.tx.Inputs {
		if len(input.SignatureScript) > 0 {
			continue
		}
		if !input.UTXOEntry.ScriptPublicKey().Equal(treasuryScript) {
			continue
		}
		sigScript, err := txscript.SignatureScript(pending.tx, i, consensushashing.SigHashAll, c.signer.keyPair, reused)
		if err != nil {
			return fmt.Errorf("sign input %d of %s: %w", i, pending.ID, err)
		}
		input.SignatureScript = sigScript
	}
	return nil
}

// SignP2SHInput fulfils the OP_CHECKSIG branch of the redeem script on the
// first unsigned input, making the committed script spendable.
func (c *Client) SignP2SHInput(pending *PendingTransaction, redeemScript []byte) error {
	reused := &consensushashing.SighashReusedValues{}
	for i, input := range pending.tx.Inputs {
		if len(input.SignatureScript) > 0 {
			continue
		}
		signature, err := txscript.RawTxInSignature(pending.tx, i, consensushashing.SigHashAll, c.signer.keyPair, reused)
		if err != nil {
			return fmt.Errorf("sign p2sh input %d of %s: %w", i, pending.ID, err)
		}
		sigScript, err := txscript.PayToScriptHashSignatureScript(redeemScript, signature)
		if err != nil {
			return fmt.Errorf("encode p2sh signature script: %w", err)
		}
		input.SignatureScript = sigScript
		return nil
	}
	return errors.New("no unsigned input for p2sh redeem")
}

func payToAddressScript(address string, prefix util.Bech32Prefix) (*externalapi.ScriptPublicKey, error) {
	decoded, err := util.DecodeAddress(address, prefix)
	if err != nil {
		return nil, fmt.Errorf("decode address %s: %w", address, err)
	}
	script, err := txscript.PayToAddrScript(decoded)
	if err != nil {
		return nil, fmt.Errorf("script for address %s: %w", address, err)
	}
	return script, nil
}
