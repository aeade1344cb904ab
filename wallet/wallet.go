// Package wallet supplies the identity collaborator for the ledger:
// secp256k1 key pairs, base58 addresses derived from the compressed
// public key, DER signatures over digests, and the matching verification
// function. Any scheme exposing the same three operations could stand in.
package wallet

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/mr-tron/base58"
)

// KeyPair holds a secp256k1 private key and its derived public identity.
type KeyPair struct {
	priv *btcec.PrivateKey
}

// New generates a fresh random key pair.
func New() (*KeyPair, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generate key pair: %w", err)
	}
	return &KeyPair{priv: priv}, nil
}

// FromSeed derives a key pair deterministically from 32 bytes of seed
// material. Deterministic keys are for fixtures and demos; production
// keys come from New.
func FromSeed(seed [32]byte) *KeyPair {
	priv, _ := btcec.PrivKeyFromBytes(seed[:])
	return &KeyPair{priv: priv}
}

// Address returns the public identity string: base58 of the compressed
// public key.
func (k *KeyPair) Address() string {
	return base58.Encode(k.priv.PubKey().SerializeCompressed())
}

// Sign signs a digest, returning a DER-encoded signature.
func (k *KeyPair) Sign(digest []byte) ([]byte, error) {
	sig := ecdsa.Sign(k.priv, digest)
	return sig.Serialize(), nil
}

// Save writes the private key to path as hex, readable only by the owner.
func (k *KeyPair) Save(path string) error {
	encoded := hex.EncodeToString(k.priv.Serialize())
	if err := os.WriteFile(path, []byte(encoded+"\n"), 0o600); err != nil {
		return fmt.Errorf("save key file: %w", err)
	}
	return nil
}

// Load reads a key pair back from a file written by Save.
func Load(path string) (*KeyPair, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}

	decoded, err := hex.DecodeString(strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("key file is not hex: %w", err)
	}
	if len(decoded) != btcec.PrivKeyBytesLen {
		return nil, fmt.Errorf("key file holds %d bytes, want %d", len(decoded), btcec.PrivKeyBytesLen)
	}

	priv, _ := btcec.PrivKeyFromBytes(decoded)
	return &KeyPair{priv: priv}, nil
}

// VerifySignature checks a DER signature over digest against the public
// identity it claims to come from. A malformed address or signature is an
// error; a well-formed signature that simply does not match returns
// (false, nil).
func VerifySignature(address string, digest, sig []byte) (bool, error) {
	raw, err := base58.Decode(address)
	if err != nil {
		return false, fmt.Errorf("decode address: %w", err)
	}

	pub, err := btcec.ParsePubKey(raw)
	if err != nil {
		return false, fmt.Errorf("parse public key: %w", err)
	}

	parsed, err := ecdsa.ParseDERSignature(sig)
	if err != nil {
		return false, fmt.Errorf("parse signature: %w", err)
	}

	return parsed.Verify(digest, pub), nil
}
