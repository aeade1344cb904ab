package blockchain

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ComputeHash recomputes the block's digest from its current fields. The
// stored Hash is never trusted; validation always compares against this.
func (b *Block) ComputeHash() string {
	return blockDigest(b.PrevHash, b.Timestamp, transactionPayload(b.Transactions), b.Nonce)
}

// Mine searches for a nonce whose digest starts with difficulty zero hex
// digits. Expected work is 16^difficulty hash evaluations and the loop
// has no bound other than success; callers needing cancellation must run
// it on their own worker. The search runs on a local (nonce, hash) pair
// and both fields are assigned together, so no observer sees a nonce
// paired with a stale hash.
func (b *Block) Mine(difficulty int) {
	prefix := strings.Repeat("0", difficulty)
	payload := transactionPayload(b.Transactions)

	start := time.Now()
	nonce := b.Nonce
	hash := blockDigest(b.PrevHash, b.Timestamp, payload, nonce)
	for !strings.HasPrefix(hash, prefix) {
		nonce++
		hash = blockDigest(b.PrevHash, b.Timestamp, payload, nonce)
	}
	b.Nonce, b.Hash = nonce, hash

	log.Debug().
		Uint64("nonce", nonce).
		Str("hash", hash).
		Dur("took", time.Since(start)).
		Int("difficulty", difficulty).
		Msg("block mined")
}

// HasValidTransactions reports whether every contained transaction
// verifies. Short-circuits on the first failure.
func (b *Block) HasValidTransactions() bool {
	for _, tx := range b.Transactions {
		if err := tx.Verify(); err != nil {
			log.Debug().Err(err).Str("to", tx.To).Msg("transaction failed verification")
			return false
		}
	}
	return true
}
