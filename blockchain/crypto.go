package blockchain

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
)

func uint64ToBytes(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}

// transactionDigest hashes (sender, recipient, amount). The signature is
// deliberately excluded: this digest is the message that gets signed, so
// it must be identical before and after signing.
func transactionDigest(tx *Transaction) []byte {
	h := sha256.New()
	h.Write([]byte(tx.From.Address()))
	h.Write([]byte(tx.To))
	h.Write(uint64ToBytes(tx.Amount))
	return h.Sum(nil)
}

// transactionPayload serializes a block's transactions in order. Order
// matters: swapping two transactions changes the block hash.
func transactionPayload(txs []*Transaction) []byte {
	var buf bytes.Buffer
	for _, tx := range txs {
		// Marshal of a plain struct cannot fail.
		raw, _ := json.Marshal(tx)
		buf.Write(raw)
	}
	return buf.Bytes()
}

// blockDigest hashes (previousHash, timestamp, transactions, nonce) into
// a hex string. The nonce runs through SHA-256 like everything else, so
// consecutive nonces produce unrelated digests and the proof-of-work
// search cannot shortcut.
func blockDigest(prevHash string, timestamp int64, payload []byte, nonce uint64) string {
	h := sha256.New()
	h.Write([]byte(prevHash))
	h.Write(uint64ToBytes(uint64(timestamp)))
	h.Write(payload)
	h.Write(uint64ToBytes(nonce))
	return hex.EncodeToString(h.Sum(nil))
}
