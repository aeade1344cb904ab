package store

import (
	"sync"

	"gocairn/blockchain"
)

// MemoryChainStore keeps the chain in a slice. It is the default store
// for nodes running without a data directory, and for tests.
type MemoryChainStore struct {
	mu     sync.RWMutex
	blocks []*blockchain.Block
}

func NewMemoryChainStore() *MemoryChainStore {
	return &MemoryChainStore{}
}

func (m *MemoryChainStore) AppendBlock(block *blockchain.Block) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blocks = append(m.blocks, block)
	return nil
}

func (m *MemoryChainStore) Blocks() ([]*blockchain.Block, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*blockchain.Block, len(m.blocks))
	copy(out, m.blocks)
	return out, nil
}

func (m *MemoryChainStore) HeadBlock() (*blockchain.Block, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Nil with no error: an empty store is a valid state, not a failure.
	if len(m.blocks) == 0 {
		return nil, nil
	}
	return m.blocks[len(m.blocks)-1], nil
}

func (m *MemoryChainStore) Height() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.blocks), nil
}

func (m *MemoryChainStore) Close() error { return nil }
