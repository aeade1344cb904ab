package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gocairn/api/handlers"
	"gocairn/blockchain"
	"gocairn/wallet"
)

var (
	signKeyPath string
	signTo      string
	signAmount  uint64
)

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign a transfer offline and print the submission payload",
	Long: `Sign a transfer with a local key file and print the JSON body for
POST /api/transactions. The private key never leaves this machine.`,
	RunE: runSign,
}

func init() {
	signCmd.Flags().StringVar(&signKeyPath, "key", "gocairn.key", "private key file")
	signCmd.Flags().StringVar(&signTo, "to", "", "recipient address")
	signCmd.Flags().Uint64Var(&signAmount, "amount", 0, "amount to transfer")
	_ = signCmd.MarkFlagRequired("to")
}

func runSign(cmd *cobra.Command, args []string) error {
	key, err := wallet.Load(signKeyPath)
	if err != nil {
		return err
	}

	tx := blockchain.NewTransaction(key.Address(), signTo, signAmount)
	if err := tx.Sign(key); err != nil {
		return err
	}

	payload := handlers.SubmitRequest{
		From:      key.Address(),
		To:        signTo,
		Amount:    signAmount,
		Signature: hex.EncodeToString(tx.Signature),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	return nil
}
