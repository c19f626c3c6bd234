// Package cli provides command-line functionality for Ember Wallet:
// listing recent wallets and verifying that a wallet file opens, without
// launching the GUI.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"golang.org/x/term"

	"github.com/emberwallet/ember/common"
	"github.com/emberwallet/ember/keyring"
	"github.com/emberwallet/ember/storage"
	"github.com/emberwallet/ember/wallet"
)

// CLI represents the command-line interface.
type CLI struct {
	recent *storage.RecentStore
}

// New creates a new CLI instance.
func New() (*CLI, error) {
	recent, err := storage.OpenDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to open recent-wallet store: %w", err)
	}
	return &CLI{recent: recent}, nil
}

// Close releases the underlying store.
func (c *CLI) Close() error {
	return c.recent.Close()
}

// ListRecent lists recently opened wallets, most recent first.
func (c *CLI) ListRecent() error {
	wallets, err := c.recent.List(20)
	if err != nil {
		return err
	}

	if len(wallets) == 0 {
		fmt.Println("No wallets opened yet.")
		fmt.Println(styleHint.Render("Launch the GUI to create one: ember-wallet"))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WALLET\tLAST OPENED\tPATH")
	fmt.Fprintln(w, "------\t-----------\t----")

	for _, rw := range wallets {
		name := filepath.Base(rw.Path)
		exists := ""
		if !common.FileExists(rw.Path) {
			exists = styleError.Render(" (missing)")
		}
		fmt.Fprintf(w, "%s\t%s\t%s%s\n",
			styleValue.Render(name),
			styleLabel.Render(rw.LastOpened.Format(time.DateTime)),
			rw.Path, exists)
	}

	return w.Flush()
}

// Verify opens the wallet at path and reports its keystore composition.
// Encrypted wallets are unlocked from the keyring when possible,
// prompting for the password otherwise.
func (c *CLI) Verify(path string) error {
	path = wallet.StandardizePath(path)

	w, err := openWithPrompt(path)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", styleSuccess.Render("✓"), w.Basename())
	fmt.Printf("  %s %s\n", styleLabel.Render("path:"), path)
	for _, kind := range w.KeystoreKinds() {
		fmt.Printf("  %s %s\n", styleLabel.Render("keystore:"), string(kind))
	}
	if w.IsEncrypted() {
		fmt.Printf("  %s yes\n", styleLabel.Render("encrypted:"))
	}
	if w.HasHardware() {
		fmt.Println(styleError.Render("  hardware keystores are not supported by the GUI"))
	}
	return nil
}

func openWithPrompt(path string) (*wallet.FileWallet, error) {
	w, err := wallet.Open(path, "")
	if !errors.Is(err, common.ErrWalletEncrypted) {
		return w, err
	}

	// Stored credential first, then an interactive prompt
	if password, kerr := keyring.Get(path); kerr == nil {
		if w, err = wallet.Open(path, password); err == nil {
			return w, nil
		}
	}

	fmt.Print("Password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	return wallet.Open(path, string(raw))
}

// PrintVersion prints the version banner.
func PrintVersion(version string) {
	fmt.Printf("%s %s\n", styleBrand.Render(common.AppName), version)
}

// PrintHelp prints CLI usage help.
func PrintHelp() {
	fmt.Println(styleBrand.Render(common.AppName) + ` - Command Line Interface

Usage:
  ember-wallet [OPTIONS] [WALLET_PATH]

Options:
  --version         Show version and exit
  --verbose         Enable verbose logging
  --list            List recently opened wallets
  --verify PATH     Check that a wallet file opens, without the GUI
  --wallet PATH     Open a specific wallet file
  --uri URI         Route a payment URI to the wallet window
  --help            Show this help message

Examples:
  ember-wallet --list
  ember-wallet --wallet ~/.local/share/ember-wallet/wallets/default_wallet
  ember-wallet --uri "embercash:qq1234...?amount=0.5"

Notes:
  - Run without options to launch the GUI with the last used wallet
  - Encrypted wallets unlock from the system keyring when possible`)
}
