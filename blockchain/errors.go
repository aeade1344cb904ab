package blockchain

import "errors"

var (
	// ErrUnauthorizedSigner is returned when a key tries to sign a
	// transaction whose sender is a different wallet.
	ErrUnauthorizedSigner = errors.New("cannot sign for a wallet you do not own")

	// ErrMissingSignature is returned when a non-reward transaction is
	// verified before it was ever signed.
	ErrMissingSignature = errors.New("transaction is not signed")

	// ErrMalformedTransaction rejects submissions without a sender or
	// recipient address.
	ErrMalformedTransaction = errors.New("transaction must name a sender and a recipient")

	// ErrInvalidSignature rejects submissions whose signature does not
	// verify against the sender's public key.
	ErrInvalidSignature = errors.New("transaction signature does not verify")
)
