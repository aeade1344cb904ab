package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"gocairn/blockchain"
	"gocairn/wallet"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Walk through signing, mining, balances and tamper detection",
	RunE:  runDemo,
}

func runDemo(cmd *cobra.Command, args []string) error {
	alice, err := wallet.New()
	if err != nil {
		return err
	}
	bob, err := wallet.New()
	if err != nil {
		return err
	}
	miner, err := wallet.New()
	if err != nil {
		return err
	}

	ledger := blockchain.NewLedger(blockchain.Config{
		Difficulty:   cfg.Chain.Difficulty,
		MiningReward: cfg.Chain.MiningReward,
	})

	pterm.DefaultSection.Println("Wallets")
	pterm.Info.Printfln("alice  %s", alice.Address())
	pterm.Info.Printfln("bob    %s", bob.Address())
	pterm.Info.Printfln("miner  %s", miner.Address())

	pterm.DefaultSection.Println("Funding alice")
	ledger.MinePendingTransactions(alice.Address())
	pterm.Success.Printfln("alice mined a block, balance %d", ledger.BalanceOf(alice.Address()))

	pterm.DefaultSection.Println("Signed transfer alice -> bob")
	tx := blockchain.NewTransaction(alice.Address(), bob.Address(), 30)
	if err := tx.Sign(alice); err != nil {
		return err
	}
	if err := ledger.AddTransaction(tx); err != nil {
		return err
	}
	pterm.Info.Printfln("transaction pending, %d in buffer", len(ledger.Pending()))

	spinner, _ := pterm.DefaultSpinner.Start("mining pending transactions...")
	block := ledger.MinePendingTransactions(miner.Address())
	spinner.Success(fmt.Sprintf("mined block %s (nonce %d)", block.Hash[:16], block.Nonce))

	pterm.DefaultSection.Println("Balances")
	if err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"wallet", "balance"},
		{"alice", fmt.Sprint(ledger.BalanceOf(alice.Address()))},
		{"bob", fmt.Sprint(ledger.BalanceOf(bob.Address()))},
		{"miner", fmt.Sprint(ledger.BalanceOf(miner.Address()))},
	}).Render(); err != nil {
		return err
	}

	pterm.DefaultSection.Println("Tamper detection")
	if err := ledger.Validate(); err != nil {
		return fmt.Errorf("chain should be valid before tampering: %w", err)
	}
	pterm.Success.Println("chain valid")

	// Inflate the transfer after the fact, without re-mining anything.
	ledger.Blocks()[2].Transactions[0].Amount = 9000
	if err := ledger.Validate(); err != nil {
		pterm.Warning.Printfln("tampering detected: %v", err)
	} else {
		return fmt.Errorf("tampering went undetected")
	}

	return nil
}
