package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/emberwallet/ember/common"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Theme != common.ThemeDefault {
		t.Errorf("Theme = %v, want %v", cfg.Theme, common.ThemeDefault)
	}
	if !cfg.AutoUpdateCheck {
		t.Error("AutoUpdateCheck should default to true")
	}
	if !cfg.OpenLastWallet {
		t.Error("OpenLastWallet should default to true")
	}
	if cfg.AutoConnect != nil {
		t.Error("AutoConnect should default to nil (unresolved)")
	}
	if cfg.DarkTrayIcon {
		t.Error("DarkTrayIcon should default to false")
	}
}

func TestLoadFile_CreatesDefault(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if cfg.Theme != common.ThemeDefault {
		t.Errorf("Theme = %v, want %v", cfg.Theme, common.ThemeDefault)
	}

	// The default config should have been written out
	if !common.FileExists(configPath) {
		t.Error("LoadFile() should create the config file when missing")
	}
}

func TestLoad_UsesConfigDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}

	dir, err := common.GetConfigDir()
	if err != nil {
		t.Fatal(err)
	}
	if !common.FileExists(filepath.Join(dir, common.ConfigFileName)) {
		t.Error("Load() should create the config file in the shared config directory")
	}
}

func TestLoadFile_RoundTrip(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	cfg := DefaultConfig()
	cfg.path = configPath
	cfg.Theme = common.ThemeDark
	cfg.DarkTrayIcon = true
	cfg.LastWallet = "/home/user/wallets/main"
	if err := cfg.SetAutoConnect(true); err != nil {
		t.Fatalf("SetAutoConnect() error = %v", err)
	}

	loaded, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if loaded.Theme != common.ThemeDark {
		t.Errorf("Theme = %v, want %v", loaded.Theme, common.ThemeDark)
	}
	if !loaded.DarkTrayIcon {
		t.Error("DarkTrayIcon should survive a round trip")
	}
	if loaded.LastWallet != "/home/user/wallets/main" {
		t.Errorf("LastWallet = %v", loaded.LastWallet)
	}
	if loaded.AutoConnect == nil || !*loaded.AutoConnect {
		t.Error("AutoConnect should round-trip as true")
	}
}

func TestLoadFile_RejectsUnknownFields(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	data := "theme: dark\nbogus_field: 42\n"
	if err := os.WriteFile(configPath, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFile(configPath); err == nil {
		t.Error("LoadFile() should reject unknown fields")
	}
}

func TestValidate_BadTheme(t *testing.T) {
	cfg := &Config{Theme: "neon"}
	cfg.validate()
	if cfg.Theme != common.ThemeDefault {
		t.Errorf("validate() should fall back to default theme, got %v", cfg.Theme)
	}
}

func TestOpenLast(t *testing.T) {
	tests := []struct {
		name       string
		openLast   bool
		lastWallet string
		wantPath   string
	}{
		{"enabled with last wallet", true, "/w/last", "/w/last"},
		{"enabled without last wallet", true, "", ""},
		{"disabled", false, "/w/last", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{OpenLastWallet: tt.openLast, LastWallet: tt.lastWallet}
			cfg.OpenLast()
			if cfg.WalletPath != tt.wantPath {
				t.Errorf("WalletPath = %q, want %q", cfg.WalletPath, tt.wantPath)
			}
		})
	}
}

func TestSaveLastWallet(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	cfg := DefaultConfig()
	cfg.path = configPath
	if err := cfg.SaveLastWallet("/w/main"); err != nil {
		t.Fatalf("SaveLastWallet() error = %v", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "last_wallet: /w/main") {
		t.Errorf("saved config missing last wallet: %s", data)
	}
}

func TestGetWalletPath_Explicit(t *testing.T) {
	cfg := &Config{WalletPath: "/w/explicit"}
	got, err := cfg.GetWalletPath()
	if err != nil {
		t.Fatalf("GetWalletPath() error = %v", err)
	}
	if got != "/w/explicit" {
		t.Errorf("GetWalletPath() = %v, want /w/explicit", got)
	}
}

func TestHiDPIEnabled(t *testing.T) {
	tests := []struct {
		name    string
		enable  bool
		disable bool
		want    bool
	}{
		{"enabled", true, false, true},
		{"disable override wins", true, true, false},
		{"off", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{EnableHiDPI: tt.enable, DisableHiDPI: tt.disable}
			if got := cfg.HiDPIEnabled(); got != tt.want {
				t.Errorf("HiDPIEnabled() = %v, want %v", got, tt.want)
			}
		})
	}
}
