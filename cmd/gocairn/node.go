package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"gocairn/api"
	"gocairn/blockchain"
	"gocairn/blockchain/store"
	"gocairn/node"
)

var (
	listenAddr    string
	dataDir       string
	rewardAddress string
)

var nodeCmd = &cobra.Command{
	Use:   "node",
	Short: "Run the ledger node with its HTTP API",
	RunE:  runNode,
}

func init() {
	nodeCmd.Flags().StringVar(&listenAddr, "listen", "", "HTTP listen address (overrides config)")
	nodeCmd.Flags().StringVar(&dataDir, "data-dir", "", "badger data directory (overrides config)")
	nodeCmd.Flags().StringVar(&rewardAddress, "reward-address", "", "address credited with mining rewards (overrides config)")
}

func runNode(cmd *cobra.Command, args []string) error {
	if listenAddr == "" {
		listenAddr = cfg.API.Listen
	}
	if dataDir == "" {
		dataDir = cfg.Node.DataDir
	}
	if rewardAddress == "" {
		rewardAddress = cfg.Node.RewardAddress
	}

	var chainStore store.ChainStore
	if dataDir != "" {
		badgerStore, err := store.OpenBadgerChainStore(dataDir)
		if err != nil {
			return err
		}
		chainStore = badgerStore
		log.Info().Str("data_dir", dataDir).Msg("using badger chain store")
	} else {
		chainStore = store.NewMemoryChainStore()
		log.Warn().Msg("no data directory configured, chain is in-memory only")
	}

	n, err := node.New(node.Config{
		RewardAddress: rewardAddress,
		Chain: blockchain.Config{
			Difficulty:   cfg.Chain.Difficulty,
			MiningReward: cfg.Chain.MiningReward,
		},
		Store: chainStore,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := n.Close(); err != nil {
			log.Error().Err(err).Msg("closing node")
		}
	}()

	server := api.NewServer(n, listenAddr)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
