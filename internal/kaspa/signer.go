package kaspa

import (
	"encoding/hex"
	"fmt"

	secp256k1 "github.com/kaspanet/go-secp256k1"
	"github.com/kaspanet/kaspad/util"
	"golang.org/x/crypto/blake2b"

	"github.com/goodnatureofminers/kaspa-settlement-backend/internal/model"
)

// personalMessageDomain keys the blake2b hash so message signatures can never
// collide with transaction sighashes.
const personalMessageDomain = "PersonalMessageSigningHash"

// Signer holds the treasury schnorr keypair and its derived address.
type Signer struct {
	keyPair *secp256k1.SchnorrKeyPair
	pubKey  []byte
	address string
	prefix  util.Bech32Prefix
}

// NewSigner derives the treasury address from a hex-encoded private key.
func NewSigner(privateKeyHex string, network model.Network) (*Signer, error) {
	raw, err := hex.DecodeString(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("decode treasury private key: %w", err)
	}

	keyPair, err := secp256k1.DeserializeSchnorrPrivateKeyFromSlice(raw)
	if err != nil {
		return nil, fmt.Errorf("deserialize treasury private key: %w", err)
	}

	pubKey, err := keyPair.SchnorrPublicKey()
	if err != nil {
		return nil, fmt.Errorf("derive treasury public key: %w", err)
	}
	serialized, err := pubKey.Serialize()
	if err != nil {
		return nil, fmt.Errorf("serialize treasury public key: %w", err)
	}

	prefix := PrefixForNetwork(network)
	address, err := util.NewAddressPublicKey(serialized[:], prefix)
	if err != nil {
		return nil, fmt.Errorf("derive treasury address: %w", err)
	}

	return &Signer{
		keyPair: keyPair,
		pubKey:  serialized[:],
		address: address.String(),
		prefix:  prefix,
	}, nil
}

// Address returns the bech32 treasury address.
func (s *Signer) Address() string {
	return s.address
}

// PublicKey returns the 32-byte x-only schnorr public key.
func (s *Signer) PublicKey() []byte {
	return s.pubKey
}

// PublicKeyHex returns the hex form of the x-only schnorr public key.
func (s *Signer) PublicKeyHex() string {
	return hex.EncodeToString(s.pubKey)
}

// SignMessage produces a hex-encoded schnorr signature over the
// domain-separated blake2b hash of an arbitrary message.
func (s *Signer) SignMessage(message []byte) (string, error) {
	hasher, err := blake2b.New256([]byte(personalMessageDomain))
	if err != nil {
		return "", fmt.Errorf("initialize message hasher: %w", err)
	}
	hasher.Write(message)

	var digest secp256k1.Hash
	if err := digest.SetBytes(hasher.Sum(nil)); err != nil {
		return "", fmt.Errorf("build message digest: %w", err)
	}

	signature, err := s.keyPair.SchnorrSign(&digest)
	if err != nil {
		return "", fmt.Errorf("sign message: %w", err)
	}
	serialized := signature.Serialize()
	return hex.EncodeToString(serialized[:]), nil
}

// Prefix returns the address prefix the signer operates under.
func (s *Signer) Prefix() util.Bech32Prefix {
	return s.prefix
}

// PrefixForNetwork maps a network name onto its bech32 address prefix.
func PrefixForNetwork(network model.Network) util.Bech32Prefix {
	switch network {
	case model.Testnet10, model.Testnet11:
		return util.Bech32PrefixKaspaTest
	default:
		return util.Bech32PrefixKaspa
	}
}
