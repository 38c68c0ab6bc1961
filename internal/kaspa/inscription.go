package kaspa

import (
	"encoding/json"
	"fmt"

	"github.com/kaspanet/kaspad/domain/consensus/utils/txscript"
	"github.com/kaspanet/kaspad/util"
)

// protocolTag marks the envelope as a kasplex indexer payload.
const protocolTag = "kasplex"

// TransferPayload is the krc-20 transfer operation committed inside the
// inscription envelope.
type TransferPayload struct {
	Protocol  string `json:"p"`
	Operation string `json:"op"`
	Ticker    string `json:"tick"`
	Amount    string `json:"amt"`
	To        string `json:"to"`
}

// Inscription is a commit/reveal envelope bound to the treasury public key.
// The redeem script carries the payload; its P2SH address receives the commit
// output and the reveal spend exposes the script to the indexer.
type Inscription struct {
	payload      TransferPayload
	redeemScript []byte
}

// NewTransferInscription builds the envelope script for a krc-20 transfer of
// amount (token base units, decimal string) to the given address, spendable
// by the holder of publicKey.
func NewTransferInscription(publicKey []byte, ticker string, amount uint64, to string) (*Inscription, error) {
	payload := TransferPayload{
		Protocol:  "krc-20",
		Operation: "transfer",
		Ticker:    ticker,
		Amount:    fmt.Sprintf("%d", amount),
		To:        to,
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode transfer payload: %w", err)
	}

	builder := txscript.NewScriptBuilder()
	builder.AddData(publicKey)
	builder.AddOp(txscript.OpCheckSig)
	builder.AddOp(txscript.OpFalse)
	builder.AddOp(txscript.OpIf)
	builder.AddData([]byte(protocolTag))
	builder.AddOp(txscript.Op0)
	builder.AddData(encoded)
	builder.AddOp(txscript.OpEndIf)

	script, err := builder.Script()
	if err != nil {
		return nil, fmt.Errorf("build envelope script: %w", err)
	}
	return &Inscription{payload: payload, redeemScript: script}, nil
}

// RedeemScript returns the raw envelope script.
func (ins *Inscription) RedeemScript() []byte {
	return ins.redeemScript
}

// Payload returns the committed transfer operation.
func (ins *Inscription) Payload() TransferPayload {
	return ins.payload
}

// P2SHAddress derives the script-hash address the commit output pays to.
func (ins *Inscription) P2SHAddress(prefix util.Bech32Prefix) (string, error) {
	address, err := util.NewAddressScriptHash(ins.redeemScript, prefix)
	if err != nil {
		return "", fmt.Errorf("derive p2sh address: %w", err)
	}
	return address.EncodeAddress(), nil
}

// P2SHScript returns the script public key paying to the envelope hash.
func (ins *Inscription) P2SHScript() ([]byte, error) {
	script, err := txscript.PayToScriptHashScript(ins.redeemScript)
	if err != nil {
		return nil, fmt.Errorf("p2sh script: %w", err)
	}
	return script, nil
}

// ParseTransferPayload extracts the committed payload back out of an envelope
// script. Used by tests and by the audit trail to confirm what a reveal spent.
func ParseTransferPayload(redeemScript []byte) (TransferPayload, error) {
	var payload TransferPayload
	pushes, err := txscript.PushedData(redeemScript)
	if err != nil {
		return payload, fmt.Errorf("parse envelope: %w", err)
	}
	// OpFalse and Op0 surface as empty pushes, so locate the protocol tag
	// and take the next non-empty push as the payload.
	tagIndex := -1
	for i, push := range pushes {
		if string(push) == protocolTag {
			tagIndex = i
			break
		}
	}
	if tagIndex < 0 {
		return payload, fmt.Errorf("script is not a %s envelope", protocolTag)
	}
	for _, push := range pushes[tagIndex+1:] {
		if len(push) == 0 {
			continue
		}
		if err := json.Unmarshal(push, &payload); err != nil {
			return payload, fmt.Errorf("decode transfer payload: %w", err)
		}
		return payload, nil
	}
	return payload, fmt.Errorf("envelope carries no payload")
}
