package blockchain

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// genesisTimestamp is fixed so every fresh ledger starts from an
// identical, deterministic seed block.
const genesisTimestamp int64 = 1735689600 // 2025-01-01T00:00:00Z

// Ledger is the append-only chain of blocks plus the buffer of
// transactions waiting to be mined. A Ledger is owned by exactly one
// caller and is not safe for concurrent use; wrap it (see the node
// package) before sharing.
type Ledger struct {
	chain        []*Block
	pending      []*Transaction
	difficulty   int
	miningReward uint64

	// now is swapped out in tests; blocks record its value at creation.
	now func() time.Time
}

// NewLedger builds a ledger holding only the genesis block. Zero config
// values take the package defaults.
func NewLedger(cfg Config) *Ledger {
	if cfg.Difficulty == 0 {
		cfg.Difficulty = DefaultDifficulty
	}
	if cfg.MiningReward == 0 {
		cfg.MiningReward = DefaultMiningReward
	}

	return &Ledger{
		chain:        []*Block{newGenesisBlock()},
		difficulty:   cfg.Difficulty,
		miningReward: cfg.MiningReward,
		now:          time.Now,
	}
}

// LoadLedger rebuilds a ledger from previously committed blocks, e.g.
// replayed from a store at boot. The chain is re-validated in full; a
// tampered or broken chain is rejected, never repaired.
func LoadLedger(cfg Config, blocks []*Block) (*Ledger, error) {
	if len(blocks) == 0 {
		return nil, errors.New("cannot load a ledger from zero blocks")
	}
	if blocks[0].PrevHash != GenesisPrevHash {
		return nil, fmt.Errorf("first block is not genesis: previous hash %q", blocks[0].PrevHash)
	}

	l := NewLedger(cfg)
	l.chain = blocks
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("stored chain is invalid: %w", err)
	}
	return l, nil
}

// newGenesisBlock builds the fixed seed block. Genesis is not mined; the
// proof-of-work requirement starts at block 1.
func newGenesisBlock() *Block {
	b := &Block{
		Timestamp: genesisTimestamp,
		PrevHash:  GenesisPrevHash,
	}
	b.Hash = b.ComputeHash()
	return b
}

// Blocks returns the committed chain, genesis first. The slice shares
// backing with the ledger; callers must treat it as read-only.
func (l *Ledger) Blocks() []*Block { return l.chain }

// LatestBlock returns the newest committed block. The chain always holds
// at least genesis.
func (l *Ledger) LatestBlock() *Block { return l.chain[len(l.chain)-1] }

// Pending returns the transactions accepted but not yet mined.
func (l *Ledger) Pending() []*Transaction { return l.pending }

// Difficulty returns the leading-zero requirement for mined blocks.
func (l *Ledger) Difficulty() int { return l.difficulty }

// MiningReward returns the amount credited per mined block.
func (l *Ledger) MiningReward() uint64 { return l.miningReward }

// AddTransaction is the sole admission gate for externally submitted
// transactions. It rejects transactions without a wallet sender or a
// recipient (ErrMalformedTransaction) and transactions that fail
// verification (ErrMissingSignature / ErrInvalidSignature). There is no
// funds-sufficiency check: a sender may commit to more than they hold
// and drive their balance negative.
func (l *Ledger) AddTransaction(tx *Transaction) error {
	if tx == nil || tx.From.IsSystem() || tx.From.Address() == "" || tx.To == "" {
		return ErrMalformedTransaction
	}

	if err := tx.Verify(); err != nil {
		log.Debug().Err(err).Str("from", tx.From.Address()).Msg("transaction rejected")
		return fmt.Errorf("reject transaction: %w", err)
	}

	l.pending = append(l.pending, tx)
	return nil
}

// MinePendingTransactions drains the pending buffer into a new block,
// together with a system-issued reward for rewardAddress, mines it at the
// ledger difficulty, and appends it to the chain. The reward rides in the
// block this very call produces, so the miner's balance reflects it as
// soon as the call returns. Pending transactions enter the block in
// submission order.
func (l *Ledger) MinePendingTransactions(rewardAddress string) *Block {
	reward := NewRewardTransaction(rewardAddress, l.miningReward)

	txs := make([]*Transaction, 0, len(l.pending)+1)
	txs = append(txs, l.pending...)
	txs = append(txs, reward)

	block := &Block{
		Timestamp:    l.now().Unix(),
		Transactions: txs,
		PrevHash:     l.LatestBlock().Hash,
	}
	block.Mine(l.difficulty)

	l.chain = append(l.chain, block)
	l.pending = nil

	log.Info().
		Int("height", len(l.chain)-1).
		Int("transactions", len(txs)).
		Str("hash", block.Hash).
		Msg("block appended")

	return block
}

// BalanceOf derives an address's balance by scanning every committed
// transaction: outgoing amounts subtract, incoming amounts add. Nothing
// is cached; the scan is O(total transactions) on every call. Addresses
// with no history read as zero, and balances may be negative since
// admission never checks funds.
func (l *Ledger) BalanceOf(address string) int64 {
	var balance int64
	for _, block := range l.chain {
		for _, tx := range block.Transactions {
			if !tx.From.IsSystem() && tx.From.Address() == address {
				balance -= int64(tx.Amount)
			}
			if tx.To == address {
				balance += int64(tx.Amount)
			}
		}
	}
	return balance
}

// Validate walks the chain from block 1 and checks, in order: every
// transaction verifies, the stored hash matches the recomputed digest,
// and the previous-hash link matches the predecessor's stored hash. The
// linkage check catches tampering that recomputed a block's own hash but
// did not cascade to its successor. Genesis is implicitly trusted. A nil
// return means the chain is intact; tampering is reported as data, never
// repaired.
func (l *Ledger) Validate() error {
	for i := 1; i < len(l.chain); i++ {
		current, previous := l.chain[i], l.chain[i-1]

		if !current.HasValidTransactions() {
			return fmt.Errorf("block %d contains an invalid transaction", i)
		}
		if current.Hash != current.ComputeHash() {
			return fmt.Errorf("block %d hash does not match its contents", i)
		}
		if current.PrevHash != previous.Hash {
			return fmt.Errorf("block %d is not linked to block %d", i, i-1)
		}
	}
	return nil
}

// IsValid is Validate without the reason.
func (l *Ledger) IsValid() bool { return l.Validate() == nil }
