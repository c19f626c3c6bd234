package wallet

import (
	"sync"

	"github.com/emberwallet/ember/common"
)

// Network describes the daemon's server session. A nil *Network means the
// daemon is running offline and anything requiring connectivity must be
// skipped.
type Network struct {
	// Server is the address of the connected server.
	Server string
	// AutoConnect selects automatic server choice.
	AutoConnect bool
}

// Daemon owns loaded wallets and the network session. One daemon serves
// every window in the process; each wallet file is loaded at most once.
type Daemon interface {
	// LoadWallet opens the wallet at path, or returns the already-loaded
	// instance for the same normalized path.
	LoadWallet(path, password string) (Wallet, error)
	// AddWallet registers an externally created wallet (e.g. from the
	// install wizard) under its normalized path.
	AddWallet(w Wallet) error
	// GetWallet returns the loaded wallet for path, or nil.
	GetWallet(path string) Wallet
	// StopWallet unloads the wallet for path, reporting whether it was
	// loaded.
	StopWallet(path string) bool
	// Network returns the network session, nil when offline.
	Network() *Network
	// Stop shuts the daemon down, unloading every wallet.
	Stop()
}

// LocalDaemon is the in-process Daemon implementation.
type LocalDaemon struct {
	mu      sync.Mutex
	wallets map[string]Wallet
	network *Network
	logger  common.Logger
}

// NewLocalDaemon creates a daemon. Pass a nil network to run offline.
func NewLocalDaemon(network *Network, logger common.Logger) *LocalDaemon {
	return &LocalDaemon{
		wallets: make(map[string]Wallet),
		network: network,
		logger:  logger,
	}
}

// LoadWallet opens the wallet at path, or returns the already-loaded
// instance for the same normalized path.
func (d *LocalDaemon) LoadWallet(path, password string) (Wallet, error) {
	key := StandardizePath(path)

	d.mu.Lock()
	if w, ok := d.wallets[key]; ok {
		d.mu.Unlock()
		return w, nil
	}
	d.mu.Unlock()

	// Open outside the lock; file IO and KDF checks can be slow.
	w, err := Open(key, password)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	// Another caller may have won the race
	if existing, ok := d.wallets[key]; ok {
		return existing, nil
	}
	d.wallets[key] = w
	d.logger.Info("Loaded wallet: %s", w.Basename())
	return w, nil
}

// AddWallet registers an externally created wallet under its normalized path.
func (d *LocalDaemon) AddWallet(w Wallet) error {
	key := StandardizePath(w.StoragePath())

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.wallets[key]; ok {
		return common.ErrWalletAlreadyLoaded
	}
	d.wallets[key] = w
	d.logger.Info("Added wallet: %s", w.Basename())
	return nil
}

// GetWallet returns the loaded wallet for path, or nil.
func (d *LocalDaemon) GetWallet(path string) Wallet {
	key := StandardizePath(path)

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.wallets[key]
}

// StopWallet unloads the wallet for path, reporting whether it was loaded.
func (d *LocalDaemon) StopWallet(path string) bool {
	key := StandardizePath(path)

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.wallets[key]; !ok {
		return false
	}
	delete(d.wallets, key)
	d.logger.Info("Stopped wallet: %s", key)
	return true
}

// Network returns the network session, nil when offline.
func (d *LocalDaemon) Network() *Network {
	return d.network
}

// Stop shuts the daemon down, unloading every wallet.
func (d *LocalDaemon) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for key := range d.wallets {
		delete(d.wallets, key)
	}
	d.logger.Info("Daemon stopped")
}
