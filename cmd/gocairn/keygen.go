package main

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"gocairn/wallet"
)

var keyOut string

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a wallet key pair and print its address",
	RunE:  runKeygen,
}

func init() {
	keygenCmd.Flags().StringVar(&keyOut, "out", "gocairn.key", "file to write the private key to")
}

func runKeygen(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(keyOut); err == nil {
		return fmt.Errorf("refusing to overwrite existing key file %s", keyOut)
	}

	key, err := wallet.New()
	if err != nil {
		return err
	}
	if err := key.Save(keyOut); err != nil {
		return err
	}

	pterm.Success.Printfln("key written to %s", keyOut)
	pterm.DefaultBox.WithTitle("address").Println(key.Address())
	return nil
}
