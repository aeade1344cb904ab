package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chaintest "gocairn/testing"
)

func TestMemoryChainStore(t *testing.T) {
	s := NewMemoryChainStore()
	defer s.Close()

	t.Run("initial state", func(t *testing.T) {
		height, err := s.Height()
		require.NoError(t, err)
		assert.Equal(t, 0, height)

		head, err := s.HeadBlock()
		require.NoError(t, err)
		assert.Nil(t, head)
	})

	ledger := chaintest.MinedLedger(chaintest.TestWallet(0x31), 2)

	t.Run("append and read back", func(t *testing.T) {
		for _, block := range ledger.Blocks() {
			require.NoError(t, s.AppendBlock(block))
		}

		height, err := s.Height()
		require.NoError(t, err)
		assert.Equal(t, 3, height)

		blocks, err := s.Blocks()
		require.NoError(t, err)
		require.Len(t, blocks, 3)
		for i, block := range blocks {
			assert.Equal(t, ledger.Blocks()[i].Hash, block.Hash)
		}

		head, err := s.HeadBlock()
		require.NoError(t, err)
		require.NotNil(t, head)
		assert.Equal(t, ledger.LatestBlock().Hash, head.Hash)
	})
}
