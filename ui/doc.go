// Package ui provides the GTK4 user interface for Ember Wallet: wallet
// windows, the system tray indicator, the setup wizard, theming, and
// desktop notifications. It implements the shell.Frontend interface; all
// application logic lives in the shell package.
package ui
