package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gocairn/node"
)

// MineRequest optionally overrides the node's configured reward address.
type MineRequest struct {
	RewardAddress string `json:"reward_address"`
}

// Mine drains the pending buffer into a new block. The request blocks for
// the whole proof-of-work search.
func Mine(n *node.Node) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MineRequest
		// Body is optional; ignore decode errors from an empty body.
		_ = c.ShouldBindJSON(&req)

		block, err := n.Mine(req.RewardAddress)
		if err != nil {
			if block != nil {
				// Mined but not persisted: report the block and the fault.
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "block": block})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, block)
	}
}
