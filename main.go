// Package main provides the entry point for Ember Wallet.
// Ember Wallet is a GTK4 desktop client for the Ember cryptocurrency: it
// manages wallet windows, a system tray indicator, update checking, and
// theming over a background wallet daemon.
//
// Features:
//   - One window per wallet file, with a setup wizard for new wallets
//   - Secure password storage using the system keyring
//   - System tray with per-wallet show/hide and close actions
//   - Automatic update checks against GitHub releases
//   - Command-line interface for listing and verifying wallets
//
// Usage:
//
//	ember-wallet [options] [WALLET_PATH]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/emberwallet/ember/cli"
	"github.com/emberwallet/ember/common"
	"github.com/emberwallet/ember/config"
	"github.com/emberwallet/ember/keyring"
	"github.com/emberwallet/ember/plugins"
	"github.com/emberwallet/ember/shell"
	"github.com/emberwallet/ember/storage"
	"github.com/emberwallet/ember/ui"
	"github.com/emberwallet/ember/updater"
	"github.com/emberwallet/ember/wallet"
)

// Build-time variables injected via ldflags (-X main.appVersion=x.y.z)
// Default values are used for local development builds
var (
	appVersion = "0.0.0"
	buildTime  = "unknown"
	commitSHA  = "unknown"
)

var (
	// GUI/General flags
	showVersion = flag.Bool("version", false, "Show version and exit")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	showHelp    = flag.Bool("help", false, "Show help message")
	offline     = flag.Bool("offline", false, "Run without a network connection")

	// Wallet selection
	walletFlag = flag.String("wallet", "", "Open a specific wallet file")
	uriFlag    = flag.String("uri", "", "Route a payment URI to the wallet window")

	// CLI flags
	listRecent = flag.Bool("list", false, "List recently opened wallets")
	verifyPath = flag.String("verify", "", "Check that a wallet file opens, without the GUI")
)

func main() {
	flag.Parse()

	if *showHelp {
		cli.PrintHelp()
		os.Exit(0)
	}

	if *showVersion {
		cli.PrintVersion(appVersion)
		if buildTime != "unknown" {
			fmt.Printf("  Build:  %s\n", buildTime)
			fmt.Printf("  Commit: %s\n", commitSHA)
		}
		os.Exit(0)
	}

	// Initialize logger with structured logging and file output
	logLevel := common.LevelInfo
	if *verbose {
		logLevel = common.LevelDebug
	}

	if err := common.InitLogger(common.LogConfig{
		Level:       logLevel,
		EnableFile:  true,
		MaxFileSize: 5 * 1024 * 1024, // 5MB
		MaxBackups:  5,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not initialize file logging: %v\n", err)
	} else {
		common.LogDebug("Logging to %s", common.GetLogDir())
	}
	defer common.CloseLogger()

	// CLI mode
	if *listRecent || *verifyPath != "" {
		runCLI()
		return
	}

	// GUI mode
	common.LogInfo("Starting %s v%s", common.AppName, appVersion)
	os.Exit(runGUI())
}

// runCLI handles command-line interface operations.
func runCLI() {
	cliApp, err := cli.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cliApp.Close()

	var cliErr error
	switch {
	case *listRecent:
		cliErr = cliApp.ListRecent()
	case *verifyPath != "":
		cliErr = cliApp.Verify(*verifyPath)
	}

	if cliErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cliErr)
		os.Exit(1)
	}
}

// runGUI wires the collaborators together and runs the shell.
func runGUI() int {
	cfg, err := config.Load()
	if err != nil {
		common.LogWarn("Failed to load configuration, using defaults: %v", err)
		cfg = config.DefaultConfig()
	}

	var network *wallet.Network
	if !*offline {
		network = &wallet.Network{AutoConnect: cfg.AutoConnect != nil && *cfg.AutoConnect}
	}
	daemon := wallet.NewLocalDaemon(network, common.GetLogger())

	recent, err := storage.OpenDefault()
	if err != nil {
		common.LogWarn("Recent-wallet store unavailable: %v", err)
		recent = nil
	}

	app := ui.NewApp(cfg, recent, network == nil, appVersion)

	sh := shell.New(shell.Options{
		Config:      cfg,
		Daemon:      daemon,
		Frontend:    app,
		Hooks:       plugins.NewRegistry(common.GetLogger()),
		Checker:     updater.NewChecker(appVersion),
		Recent:      recent,
		Credentials: keyring.Credentials{},
		Logger:      common.GetLogger(),
		Invoke:      app.Invoke,
		Housekeep:   common.GetLogger().CheckRotation,
	})
	app.SetShell(sh)

	// Positional argument is a wallet path, matching --wallet
	walletPath := *walletFlag
	if walletPath == "" && flag.NArg() > 0 {
		walletPath = flag.Arg(0)
	}

	if err := sh.Run(walletPath, *uriFlag); err != nil {
		common.LogError("Shell exited with error: %v", err)
		return 1
	}
	return 0
}
