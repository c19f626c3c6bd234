// Package common provides shared constants, types, and utilities
// used across the Ember Wallet desktop shell.
package common

import "time"

// Application metadata.
const (
	// AppID is the unique identifier for the application.
	AppID = "com.emberwallet.app"
	// AppName is the display name of the application.
	AppName = "Ember Wallet"
	// ConfigDirName is the name of the configuration directory.
	ConfigDirName = "ember-wallet"
	// ReleaseOwner and ReleaseRepo identify the GitHub project queried
	// for new releases.
	ReleaseOwner = "emberwallet"
	ReleaseRepo  = "ember"
)

// File names used by the application.
const (
	ConfigFileName      = "config.yaml"
	CredentialsFileName = ".credentials"
	LogFileName         = "ember-wallet.log"
	RecentDBFileName    = "recent.db"
	DefaultWalletName   = "default_wallet"
)

// Default timeouts and intervals.
const (
	// UpdateCheckFirstDelay brings the first automatic update check
	// forward so it runs shortly after startup.
	UpdateCheckFirstDelay = 10 * time.Second
	// UpdateCheckInterval is the steady-state automatic update check period.
	UpdateCheckInterval = time.Hour
	// UpdateCheckRecentWindow suppresses an automatic check that would
	// land right after a manual one.
	UpdateCheckRecentWindow = 10 * time.Minute
	// GCNudgeDelay is the debounce window for the post-close collection nudge.
	GCNudgeDelay = 500 * time.Millisecond
	// HousekeepingInterval drives periodic maintenance (log rotation checks).
	HousekeepingInterval = 500 * time.Millisecond
	// UpdateCheckTimeout bounds the release metadata request.
	UpdateCheckTimeout = 10 * time.Second
)

// UI constants.
const (
	// DefaultWindowWidth is the default wallet window width.
	DefaultWindowWidth = 840
	// DefaultWindowHeight is the default wallet window height.
	DefaultWindowHeight = 600
	// MinWindowWidth is the minimum window width.
	MinWindowWidth = 480
	// MinWindowHeight is the minimum window height.
	MinWindowHeight = 320
	// DialogMargin is the standard margin for dialog content.
	DialogMargin = 24
	// TrayIconSize is the size of the system tray icon.
	TrayIconSize = 22
)

// Theme values.
const (
	ThemeDefault = "default"
	ThemeDark    = "dark"
)

// URIScheme is the payment URI scheme routed to wallet windows.
const URIScheme = "embercash:"
