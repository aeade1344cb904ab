package blockchain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	// DefaultDifficulty is the number of leading zero hex digits a mined
	// block hash must carry. Each extra digit multiplies the expected
	// search work by 16.
	DefaultDifficulty = 2

	// DefaultMiningReward is credited to the miner with every mined block.
	DefaultMiningReward = 100

	// GenesisPrevHash is the sentinel previous-hash of the genesis block.
	GenesisPrevHash = "0"
)

// Config carries the ledger parameters. Zero values fall back to the
// package defaults in NewLedger.
type Config struct {
	Difficulty   int
	MiningReward uint64
}

// Originator identifies who a transaction's value moves away from. It is
// either a wallet address or the system itself (mining rewards), so the
// trusted-issuance case is explicit at every call site instead of hiding
// behind an empty string.
type Originator struct {
	address string
	system  bool
}

// SystemIssued marks a transaction as minted by the ledger itself.
// System-issued transactions carry no signature and skip verification.
var SystemIssued = Originator{system: true}

// FromWallet builds an originator for a wallet address.
func FromWallet(address string) Originator {
	return Originator{address: address}
}

// IsSystem reports whether the originator is the ledger itself.
func (o Originator) IsSystem() bool { return o.system }

// Address returns the wallet address, or "" for system issuance.
func (o Originator) Address() string { return o.address }

func (o Originator) String() string {
	if o.system {
		return "<system>"
	}
	return o.address
}

// MarshalJSON encodes system issuance as JSON null and wallet origin as
// the address string.
func (o Originator) MarshalJSON() ([]byte, error) {
	if o.system {
		return []byte("null"), nil
	}
	return json.Marshal(o.address)
}

func (o *Originator) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = SystemIssued
		return nil
	}
	var address string
	if err := json.Unmarshal(data, &address); err != nil {
		return fmt.Errorf("originator must be null or an address string: %w", err)
	}
	*o = FromWallet(address)
	return nil
}

// Transaction is a single value transfer. It is constructed unsigned,
// signed by the sender's key, and becomes immutable once mined into a
// block (any later mutation breaks the owning block's hash).
type Transaction struct {
	From      Originator `json:"from"`
	To        string     `json:"to"`
	Amount    uint64     `json:"amount"`
	Signature []byte     `json:"signature,omitempty"`
}

// NewTransaction builds an unsigned wallet-to-wallet transfer.
func NewTransaction(from, to string, amount uint64) *Transaction {
	return &Transaction{
		From:   FromWallet(from),
		To:     to,
		Amount: amount,
	}
}

// NewRewardTransaction builds a system-issued mining reward. Reward
// transactions never pass through the admission gate; the mining routine
// injects them directly.
func NewRewardTransaction(to string, amount uint64) *Transaction {
	return &Transaction{
		From:   SystemIssued,
		To:     to,
		Amount: amount,
	}
}

// Block is an ordered batch of transactions plus the linkage metadata
// that chains it to its predecessor.
type Block struct {
	Timestamp    int64          `json:"timestamp"`
	Transactions []*Transaction `json:"transactions"`
	PrevHash     string         `json:"previous_hash"`
	Hash         string         `json:"hash"`
	Nonce        uint64         `json:"nonce"`
}
