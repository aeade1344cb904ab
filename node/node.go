// Package node wraps one authoritative Ledger for concurrent callers.
// The core ledger is single-threaded by design; the node adds the lock,
// the persistence hook, and the metrics that a running process needs.
package node

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"gocairn/blockchain"
	"gocairn/blockchain/store"
)

// Config holds everything a node needs to start.
type Config struct {
	// RewardAddress receives mining rewards when Mine is called without
	// an explicit address.
	RewardAddress string

	// Chain parameters, passed through to the ledger.
	Chain blockchain.Config

	// Store persists mined blocks. Nil means a fresh in-memory store.
	Store store.ChainStore
}

// Node owns the ledger and serializes all access to it.
type Node struct {
	mu            sync.RWMutex
	ledger        *blockchain.Ledger
	store         store.ChainStore
	rewardAddress string
}

// New builds a node. If the store already holds blocks, the chain is
// replayed and re-validated from it; otherwise the fresh genesis block is
// persisted so store and ledger always mirror each other.
func New(cfg Config) (*Node, error) {
	chainStore := cfg.Store
	if chainStore == nil {
		chainStore = store.NewMemoryChainStore()
	}

	height, err := chainStore.Height()
	if err != nil {
		return nil, fmt.Errorf("read store height: %w", err)
	}

	var ledger *blockchain.Ledger
	if height > 0 {
		blocks, err := chainStore.Blocks()
		if err != nil {
			return nil, fmt.Errorf("replay stored chain: %w", err)
		}
		ledger, err = blockchain.LoadLedger(cfg.Chain, blocks)
		if err != nil {
			return nil, fmt.Errorf("replay stored chain: %w", err)
		}
		log.Info().Int("height", height).Msg("chain replayed from store")
	} else {
		ledger = blockchain.NewLedger(cfg.Chain)
		if err := chainStore.AppendBlock(ledger.LatestBlock()); err != nil {
			return nil, fmt.Errorf("persist genesis block: %w", err)
		}
		log.Info().Msg("initialized chain with genesis block")
	}

	return &Node{
		ledger:        ledger,
		store:         chainStore,
		rewardAddress: cfg.RewardAddress,
	}, nil
}

// SubmitTransaction runs the ledger's admission gate.
func (n *Node) SubmitTransaction(tx *blockchain.Transaction) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if err := n.ledger.AddTransaction(tx); err != nil {
		transactionsRejected.Inc()
		return err
	}
	transactionsAccepted.Inc()
	return nil
}

// Mine drains the pending buffer into a new block and persists it.
// rewardAddress overrides the configured one when non-empty. Mining is
// CPU-bound and holds the write lock for its whole duration: balance and
// chain queries observe either the chain before the block or after it,
// never a half-applied state.
func (n *Node) Mine(rewardAddress string) (*blockchain.Block, error) {
	if rewardAddress == "" {
		rewardAddress = n.rewardAddress
	}
	if rewardAddress == "" {
		return nil, errors.New("no reward address configured")
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	start := time.Now()
	block := n.ledger.MinePendingTransactions(rewardAddress)
	miningDuration.Observe(time.Since(start).Seconds())
	blocksMined.Inc()

	if err := n.store.AppendBlock(block); err != nil {
		// The block is already committed in memory; losing the persisted
		// copy is worth surfacing but not rolling back.
		return block, fmt.Errorf("block mined but not persisted: %w", err)
	}
	return block, nil
}

// Balance derives the address's balance from the committed chain.
func (n *Node) Balance(address string) int64 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.ledger.BalanceOf(address)
}

// Blocks returns the committed chain.
func (n *Node) Blocks() []*blockchain.Block {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.ledger.Blocks()
}

// Block returns the block at the given height.
func (n *Node) Block(index int) (*blockchain.Block, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	blocks := n.ledger.Blocks()
	if index < 0 || index >= len(blocks) {
		return nil, fmt.Errorf("no block at height %d (chain height %d)", index, len(blocks))
	}
	return blocks[index], nil
}

// Pending returns the transactions awaiting inclusion.
func (n *Node) Pending() []*blockchain.Transaction {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.ledger.Pending()
}

// Validate re-checks the whole chain.
func (n *Node) Validate() error {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.ledger.Validate()
}

// Close releases the store.
func (n *Node) Close() error {
	return n.store.Close()
}
