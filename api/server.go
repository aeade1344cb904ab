// Package api exposes the node over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"gocairn/api/handlers"
	"gocairn/node"
)

// Server is the HTTP API server.
type Server struct {
	node   *node.Node
	engine *gin.Engine
	http   *http.Server
}

// NewServer wires the routes for a node on the given listen address.
func NewServer(n *node.Node, addr string) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		node:   n,
		engine: engine,
		http:   &http.Server{Addr: addr, Handler: engine},
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	root := s.engine.Group("/api")

	root.GET("/chain", handlers.Chain(s.node))
	root.GET("/chain/head", handlers.ChainHead(s.node))
	root.GET("/chain/valid", handlers.ChainValid(s.node))

	root.GET("/blocks/:index", handlers.BlockByIndex(s.node))

	root.GET("/addresses/:address/balance", handlers.Balance(s.node))

	root.GET("/transactions/pending", handlers.PendingTransactions(s.node))
	root.POST("/transactions", handlers.SubmitTransaction(s.node))

	root.POST("/mine", handlers.Mine(s.node))

	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Handler exposes the routed engine, mainly for httptest.
func (s *Server) Handler() http.Handler { return s.engine }

// Start serves until Shutdown or a listener error.
func (s *Server) Start() error {
	log.Info().Str("addr", s.http.Addr).Msg("starting HTTP API server")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
