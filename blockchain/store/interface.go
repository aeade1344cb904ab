// Package store persists committed blocks. The ledger itself stays pure
// in-memory; a node appends each mined block here and replays the store
// at boot.
package store

import (
	"gocairn/blockchain"
)

type ChainStore interface {

	// AppendBlock persists a block at the next height. Validation is the
	// caller's job; the store only keeps order.
	AppendBlock(block *blockchain.Block) error

	// Blocks returns every stored block in height order, genesis first.
	Blocks() ([]*blockchain.Block, error)

	// HeadBlock returns the newest block, or nil when the store is empty.
	HeadBlock() (*blockchain.Block, error)

	// Height returns the number of stored blocks.
	Height() (int, error)

	Close() error
}
