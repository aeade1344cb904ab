package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	badger "github.com/dgraph-io/badger/v3"

	"gocairn/blockchain"
)

const blockKeyPrefix = "block/"

// BadgerChainStore persists blocks in a Badger database, JSON-encoded
// under big-endian height keys so iteration order equals chain order.
type BadgerChainStore struct {
	db *badger.DB
}

// OpenBadgerChainStore opens (or creates) the database at path.
func OpenBadgerChainStore(path string) (*BadgerChainStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger store at %s: %w", path, err)
	}
	return &BadgerChainStore{db: db}, nil
}

func blockKey(height int) []byte {
	key := make([]byte, len(blockKeyPrefix)+8)
	copy(key, blockKeyPrefix)
	binary.BigEndian.PutUint64(key[len(blockKeyPrefix):], uint64(height))
	return key
}

func (s *BadgerChainStore) AppendBlock(block *blockchain.Block) error {
	raw, err := json.Marshal(block)
	if err != nil {
		return fmt.Errorf("encode block: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		height, err := heightTx(txn)
		if err != nil {
			return err
		}
		return txn.Set(blockKey(height), raw)
	})
}

func (s *BadgerChainStore) Blocks() ([]*blockchain.Block, error) {
	var blocks []*blockchain.Block

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(blockKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var block blockchain.Block
				if err := json.Unmarshal(val, &block); err != nil {
					return fmt.Errorf("decode stored block: %w", err)
				}
				blocks = append(blocks, &block)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

func (s *BadgerChainStore) HeadBlock() (*blockchain.Block, error) {
	var head *blockchain.Block

	err := s.db.View(func(txn *badger.Txn) error {
		height, err := heightTx(txn)
		if err != nil {
			return err
		}
		if height == 0 {
			return nil
		}

		item, err := txn.Get(blockKey(height - 1))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var block blockchain.Block
			if err := json.Unmarshal(val, &block); err != nil {
				return fmt.Errorf("decode stored block: %w", err)
			}
			head = &block
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return head, nil
}

func (s *BadgerChainStore) Height() (int, error) {
	var height int
	err := s.db.View(func(txn *badger.Txn) error {
		h, err := heightTx(txn)
		height = h
		return err
	})
	return height, err
}

// heightTx counts block keys inside a transaction. Key-only iteration,
// so the count stays cheap even with block bodies on disk.
func heightTx(txn *badger.Txn) (int, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(blockKeyPrefix)
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	count := 0
	for it.Rewind(); it.Valid(); it.Next() {
		count++
	}
	return count, nil
}

func (s *BadgerChainStore) Close() error {
	return s.db.Close()
}
