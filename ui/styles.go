// Package ui provides the GTK4 user interface for Ember Wallet.
// This file contains the CSS styles shared by all wallet windows.
package ui

import (
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// CSS styles for the wallet windows - theme-aware colors that work with
// system dark/light mode
const appCSS = `
/* ============================================
   Ember Wallet - Window Styles (GTK4)
   Theme-aware styles
   ============================================ */

/* Wallet header */
.wallet-title {
    font-weight: 600;
    font-size: 15px;
}

.wallet-path {
    font-family: monospace;
    font-size: 11px;
    opacity: 0.6;
}

/* Balance display */
.balance-amount {
    font-family: monospace;
    font-size: 24px;
    font-weight: 600;
}

.balance-positive {
    color: #2ec27e;
}

.balance-negative {
    color: #e01b24;
}

.balance-unconfirmed {
    color: #e5a50a;
}

/* Payment request banner */
.payment-banner {
    background-color: alpha(#3584e4, 0.12);
    border-radius: 8px;
    padding: 8px 12px;
    margin: 6px 12px;
}

/* Offline indicator */
.offline-badge {
    background-color: alpha(#e5a50a, 0.2);
    color: #e5a50a;
    font-size: 10px;
    font-weight: 600;
    padding: 2px 8px;
    border-radius: 10px;
}

/* Status Bar */
.status-bar {
    border-top: 1px solid alpha(currentColor, 0.15);
    padding: 6px 12px;
    opacity: 0.8;
}

/* Entry fields */
entry {
    border-radius: 6px;
    min-height: 34px;
}

/* Flat button */
button.flat {
    background-color: transparent;
}

button.flat:hover {
    background-color: alpha(currentColor, 0.1);
}
`

// LoadStyles loads the custom CSS styles for the application.
// Should be called during application startup.
func LoadStyles() {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return
	}

	provider := gtk.NewCSSProvider()
	provider.LoadFromString(appCSS)

	gtk.StyleContextAddProviderForDisplay(
		display,
		provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)
}
