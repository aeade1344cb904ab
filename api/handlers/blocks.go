package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gocairn/node"
)

// BlockByIndex returns the block at a chain height.
func BlockByIndex(n *node.Node) gin.HandlerFunc {
	return func(c *gin.Context) {
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "block index must be an integer"})
			return
		}

		block, err := n.Block(index)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, block)
	}
}

// Balance returns the derived balance of an address. Unknown addresses
// read as zero.
func Balance(n *node.Node) gin.HandlerFunc {
	return func(c *gin.Context) {
		address := c.Param("address")
		c.JSON(http.StatusOK, gin.H{
			"address": address,
			"balance": n.Balance(address),
		})
	}
}
