// Package testing generates deterministic fixtures: seeded wallets,
// signed transfers, and pre-mined ledgers. Import it with an alias from
// _test.go files.
package testing

import (
	"gocairn/blockchain"
	"gocairn/wallet"
)

// TestWallet derives a deterministic key pair from a single seed byte.
// The same seed always yields the same address (testing only!).
func TestWallet(seed byte) *wallet.KeyPair {
	var material [32]byte
	for i := range material {
		material[i] = seed ^ byte(i)
	}
	// Indexes 0 and 1 always differ, so the material is never all zero.
	return wallet.FromSeed(material)
}

// SignedTransfer builds and signs a transfer from the given wallet.
func SignedTransfer(from *wallet.KeyPair, to string, amount uint64) *blockchain.Transaction {
	tx := blockchain.NewTransaction(from.Address(), to, amount)
	if err := tx.Sign(from); err != nil {
		panic("fixture transaction failed to sign: " + err.Error())
	}
	return tx
}

// MinedLedger builds a low-difficulty ledger and mines n blocks of
// fixture transfers into it, rewarding miner each time.
func MinedLedger(miner *wallet.KeyPair, n int) *blockchain.Ledger {
	ledger := blockchain.NewLedger(blockchain.Config{Difficulty: 1})

	sender := TestWallet(0x5e)
	for i := 0; i < n; i++ {
		tx := SignedTransfer(sender, miner.Address(), uint64(i+1))
		if err := ledger.AddTransaction(tx); err != nil {
			panic("fixture ledger rejected transaction: " + err.Error())
		}
		ledger.MinePendingTransactions(miner.Address())
	}
	return ledger
}
