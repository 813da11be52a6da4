package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/corvuschain/corvus/amount"
	"github.com/corvuschain/corvus/config"
	"github.com/corvuschain/corvus/crypto"
	"github.com/corvuschain/corvus/crypto/address"
	"github.com/corvuschain/corvus/crypto/bip38"
	"github.com/corvuschain/corvus/handlers"
	"github.com/corvuschain/corvus/store"
)

const usage = `usage: corvus <command> [flags]

commands:
  encrypt   encrypt a private key under a passphrase
  decrypt   decrypt an encrypted key string
  verify    check whether a string is a well-formed encrypted key
  balance   print a wallet's balances
  node      open the store and bootstrap the transaction handlers
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	logger := cfg.Logger()

	var err error
	switch os.Args[1] {
	case "encrypt":
		err = runEncrypt(os.Args[2:])
	case "decrypt":
		err = runDecrypt(os.Args[2:])
	case "verify":
		err = runVerify(os.Args[2:])
	case "balance":
		err = runBalance(cfg, logger, os.Args[2:])
	case "node":
		err = runNode(cfg, logger)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		logger.Fatal(err)
	}
}

func runEncrypt(args []string) error {
	fs := flag.NewFlagSet("encrypt", flag.ExitOnError)
	keyHex := fs.String("key", "", "private key as 64 hex characters (omit to generate)")
	passphrase := fs.String("passphrase", "", "encryption passphrase")
	compressed := fs.Bool("compressed", true, "derive the compressed public key")
	fs.Parse(args)

	var key []byte
	var err error
	if *keyHex == "" {
		if key, err = crypto.NewPrivateKey(); err != nil {
			return err
		}
	} else if key, err = hex.DecodeString(*keyHex); err != nil {
		return fmt.Errorf("decoding private key: %w", err)
	}

	encoded, err := bip38.Encrypt(key, *compressed, *passphrase)
	if err != nil {
		return err
	}
	fmt.Println(encoded)
	return nil
}

func runDecrypt(args []string) error {
	fs := flag.NewFlagSet("decrypt", flag.ExitOnError)
	encoded := fs.String("key", "", "encrypted key string")
	passphrase := fs.String("passphrase", "", "encryption passphrase")
	fs.Parse(args)

	result, err := bip38.Decrypt(*encoded, *passphrase)
	if err != nil {
		return err
	}
	wif, err := crypto.WIFEncode(result.PrivateKey, result.Compressed)
	if err != nil {
		return err
	}
	fmt.Printf("private key: %x\ncompressed:  %v\nwif:         %s\n",
		result.PrivateKey, result.Compressed, wif)
	return nil
}

func runVerify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	encoded := fs.String("key", "", "encrypted key string")
	fs.Parse(args)

	if bip38.Verify(*encoded) {
		fmt.Println("valid")
		return nil
	}
	fmt.Println("invalid")
	os.Exit(1)
	return nil
}

func runBalance(cfg *config.Config, logger *logrus.Logger, args []string) error {
	fs := flag.NewFlagSet("balance", flag.ExitOnError)
	addr := fs.String("address", "", "wallet address")
	fs.Parse(args)

	if !address.Validate(*addr) {
		return fmt.Errorf("invalid address %q", *addr)
	}

	db, err := store.NewDatabase(cfg.DataDir)
	if err != nil {
		return err
	}
	defer db.Close()

	wallets, err := store.NewWalletStore(db, logger)
	if err != nil {
		return err
	}

	w := wallets.FindByAddress(*addr)
	fmt.Printf("balance: %s (%s)\n", w.Balance, w.Balance.Format(amount.NanoCorvus))
	fmt.Printf("locked:  %s\n", w.LockedBalance)
	fmt.Printf("nonce:   %d\n", w.Nonce)
	return nil
}

func runNode(cfg *config.Config, logger *logrus.Logger) error {
	db, err := store.NewDatabase(cfg.DataDir)
	if err != nil {
		return err
	}
	defer db.Close()

	wallets, err := store.NewWalletStore(db, logger)
	if err != nil {
		return err
	}
	txs := store.NewTransactionStore(db, logger)

	registry, err := handlers.NewRegistry(wallets, txs, logger)
	if err != nil {
		return err
	}
	if err := registry.Bootstrap(); err != nil {
		return err
	}
	if err := wallets.Flush(); err != nil {
		return err
	}

	logger.WithField("network", cfg.Network).Info("bootstrap complete")
	return nil
}
