// Package config provides configuration management for the Ember Wallet
// desktop shell. It handles loading, saving, and managing application
// settings.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/emberwallet/ember/common"
)

// Config represents the application configuration.
// All settings are persisted to a YAML file in the user's config directory.
type Config struct {
	// Theme sets the color theme: "default" or "dark".
	Theme string `yaml:"theme"`
	// DarkTrayIcon selects the dark variant of the tray icon.
	DarkTrayIcon bool `yaml:"dark_tray_icon"`
	// AutoUpdateCheck enables the periodic release check.
	AutoUpdateCheck bool `yaml:"auto_update_check"`
	// AutoConnect records the network bootstrap decision. nil means the
	// user has never been asked; the shell resolves it on first run.
	AutoConnect *bool `yaml:"auto_connect,omitempty"`
	// WalletPath is the explicitly configured wallet file, if any.
	WalletPath string `yaml:"wallet_path,omitempty"`
	// LastWallet is the storage path of the most recently closed wallet.
	LastWallet string `yaml:"last_wallet,omitempty"`
	// OpenLastWallet reopens LastWallet on startup when no path is given.
	OpenLastWallet bool `yaml:"open_last_wallet"`
	// EnableHiDPI and DisableHiDPI control display scaling. Disable wins
	// and is intended as a per-run testing override.
	EnableHiDPI  bool `yaml:"enable_hidpi"`
	DisableHiDPI bool `yaml:"disable_hidpi,omitempty"`
	// ShowNotifications enables desktop notifications for shell events.
	ShowNotifications bool `yaml:"show_notifications"`

	// path is where this config was loaded from; empty means default.
	path string
}

// DefaultConfig returns the default configuration.
// These are sensible defaults for most users.
func DefaultConfig() *Config {
	return &Config{
		Theme:             common.ThemeDefault,
		DarkTrayIcon:      false,
		AutoUpdateCheck:   true,
		OpenLastWallet:    true,
		EnableHiDPI:       true,
		ShowNotifications: true,
	}
}

// Load loads the configuration from the default config file.
// If the file doesn't exist, it creates one with default values.
func Load() (*Config, error) {
	configPath, err := defaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(configPath)
}

// LoadFile loads the configuration from an explicit path.
func LoadFile(configPath string) (*Config, error) {
	// If it doesn't exist, return default configuration
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cfg.path = configPath
		if err := cfg.Save(); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, common.WrapError(err, "error opening configuration")
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true) // Strict validation: reject unknown fields

	var config Config
	if err := decoder.Decode(&config); err != nil {
		return nil, common.WrapError(err, "error parsing configuration")
	}

	config.path = configPath
	config.validate()
	return &config, nil
}

// validate normalizes configuration values, falling back to defaults for
// anything out of range.
func (c *Config) validate() {
	if c.Theme != common.ThemeDefault && c.Theme != common.ThemeDark {
		c.Theme = common.ThemeDefault
	}
}

// Save saves the configuration to its file.
func (c *Config) Save() error {
	configPath := c.path
	if configPath == "" {
		p, err := defaultConfigPath()
		if err != nil {
			return err
		}
		configPath = p
		c.path = p
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return common.WrapError(err, "error creating config directory")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return common.WrapError(err, "error serializing configuration")
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return common.WrapError(err, "error saving configuration")
	}

	return nil
}

// GetWalletPath returns the wallet file the shell should open: the
// explicitly configured path if set, otherwise the default wallet inside
// the wallet directory.
func (c *Config) GetWalletPath() (string, error) {
	if c.WalletPath != "" {
		return c.WalletPath, nil
	}
	dir, err := WalletDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, common.DefaultWalletName), nil
}

// OpenLast substitutes the last-used wallet for the configured wallet path,
// when that behavior is enabled and a last wallet is known.
func (c *Config) OpenLast() {
	if c.OpenLastWallet && c.LastWallet != "" {
		c.WalletPath = c.LastWallet
	}
}

// SaveLastWallet records the storage path of the wallet that should reopen
// on next startup and persists the change.
func (c *Config) SaveLastWallet(walletPath string) error {
	c.LastWallet = walletPath
	return c.Save()
}

// SetAutoConnect records the network bootstrap decision.
func (c *Config) SetAutoConnect(v bool) error {
	c.AutoConnect = &v
	return c.Save()
}

// HiDPIEnabled reports whether display scaling should be requested.
func (c *Config) HiDPIEnabled() bool {
	return c.EnableHiDPI && !c.DisableHiDPI
}

// WalletDir returns the directory holding wallet files, creating it if
// needed.
func WalletDir() (string, error) {
	dataDir, err := common.GetDataDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(dataDir, "wallets")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", common.WrapError(err, "failed to create wallet directory")
	}
	return dir, nil
}

func defaultConfigPath() (string, error) {
	configDir, err := common.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, common.ConfigFileName), nil
}
