package blockchain

import (
	"fmt"

	"gocairn/wallet"
)

// Signer is the signing half of the identity collaborator. wallet.KeyPair
// implements it; anything exposing an address and a digest signature can
// substitute.
type Signer interface {
	Address() string
	Sign(digest []byte) ([]byte, error)
}

// SigningHash returns the digest a sender signs. Pure; excludes the
// signature itself.
func (t *Transaction) SigningHash() []byte {
	return transactionDigest(t)
}

// Sign stores the key's signature over SigningHash. The key must own the
// transaction's sender address; signing for anyone else, or for a
// system-issued transaction, fails with ErrUnauthorizedSigner.
func (t *Transaction) Sign(key Signer) error {
	if t.From.IsSystem() || key.Address() != t.From.Address() {
		return ErrUnauthorizedSigner
	}

	sig, err := key.Sign(t.SigningHash())
	if err != nil {
		return fmt.Errorf("sign transaction: %w", err)
	}
	t.Signature = sig
	return nil
}

// Verify checks the transaction's authorization. System-issued
// transactions are trusted unconditionally: the mining routine is the
// only code path that creates them, which is the intended trust boundary.
// For wallet transactions it returns ErrMissingSignature when unsigned
// and ErrInvalidSignature when the signature does not verify against the
// sender's public key.
func (t *Transaction) Verify() error {
	if t.From.IsSystem() {
		return nil
	}

	if len(t.Signature) == 0 {
		return ErrMissingSignature
	}

	ok, err := wallet.VerifySignature(t.From.Address(), t.SigningHash(), t.Signature)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if !ok {
		return ErrInvalidSignature
	}
	return nil
}
