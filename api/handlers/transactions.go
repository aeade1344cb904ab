package handlers

import (
	"encoding/hex"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"gocairn/blockchain"
	"gocairn/node"
)

// SubmitRequest is the wire form of a signed transfer. Clients sign
// offline and submit the DER signature as hex; the node never sees a
// private key.
type SubmitRequest struct {
	From      string `json:"from" binding:"required"`
	To        string `json:"to" binding:"required"`
	Amount    uint64 `json:"amount"`
	Signature string `json:"signature" binding:"required"`
}

// SubmitTransaction admits a signed transaction to the pending buffer.
func SubmitTransaction(n *node.Node) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SubmitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}

		sig, err := hex.DecodeString(req.Signature)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "signature must be hex"})
			return
		}

		tx := blockchain.NewTransaction(req.From, req.To, req.Amount)
		tx.Signature = sig

		if err := n.SubmitTransaction(tx); err != nil {
			log.Debug().Err(err).Str("from", req.From).Msg("transaction rejected")
			c.JSON(rejectionStatus(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusAccepted, gin.H{
			"status": "pending",
			"hash":   hex.EncodeToString(tx.SigningHash()),
		})
	}
}

// PendingTransactions lists the buffer awaiting the next mining cycle.
func PendingTransactions(n *node.Node) gin.HandlerFunc {
	return func(c *gin.Context) {
		pending := n.Pending()
		c.JSON(http.StatusOK, gin.H{
			"count":        len(pending),
			"transactions": pending,
		})
	}
}

// rejectionStatus maps admission errors onto HTTP statuses: malformed
// submissions are 400, failed authorization is 422.
func rejectionStatus(err error) int {
	switch {
	case errors.Is(err, blockchain.ErrMalformedTransaction):
		return http.StatusBadRequest
	case errors.Is(err, blockchain.ErrMissingSignature),
		errors.Is(err, blockchain.ErrInvalidSignature):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
