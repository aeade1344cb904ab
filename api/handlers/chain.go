package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gocairn/node"
)

// Chain returns the full committed chain, genesis first.
func Chain(n *node.Node) gin.HandlerFunc {
	return func(c *gin.Context) {
		blocks := n.Blocks()
		c.JSON(http.StatusOK, gin.H{
			"height": len(blocks),
			"blocks": blocks,
		})
	}
}

// ChainHead returns the newest block.
func ChainHead(n *node.Node) gin.HandlerFunc {
	return func(c *gin.Context) {
		blocks := n.Blocks()
		c.JSON(http.StatusOK, blocks[len(blocks)-1])
	}
}

// ChainValid re-validates the chain and reports the result as data. A
// tampered chain is a 200 with valid=false, not an error: inspecting a
// broken chain is an expected operation.
func ChainValid(n *node.Node) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := n.Validate(); err != nil {
			c.JSON(http.StatusOK, gin.H{"valid": false, "reason": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"valid": true})
	}
}
