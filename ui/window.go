// Package ui provides the GTK4 user interface for Ember Wallet.
// This file contains the wallet window.
package ui

import (
	"strings"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/diamondburned/gotk4/pkg/pango"

	"github.com/emberwallet/ember/common"
	"github.com/emberwallet/ember/storage"
	"github.com/emberwallet/ember/wallet"
)

// WalletWindow is one open wallet window. It implements shell.Window.
type WalletWindow struct {
	app    *App
	wlt    wallet.Wallet
	window *gtk.Window

	paymentBanner *gtk.Label
	statusLabel   *gtk.Label

	hidden    bool
	destroyed bool
}

// NewWalletWindow creates and shows a window for a loaded wallet.
func NewWalletWindow(app *App, wlt wallet.Wallet) *WalletWindow {
	w := &WalletWindow{app: app, wlt: wlt}

	w.window = gtk.NewWindow()
	w.window.SetTitle(wlt.Basename() + " - " + common.AppName)
	w.applySavedGeometry()

	w.window.SetChild(w.buildContent())

	// Closing goes through the shell so the registry, tray, and quit
	// policy stay consistent.
	w.window.ConnectCloseRequest(func() bool {
		if w.destroyed {
			return false
		}
		w.saveGeometry()
		w.app.sh.CloseWindow(w)
		return true
	})

	w.window.Show()
	return w
}

func (w *WalletWindow) buildContent() *gtk.Box {
	mainBox := gtk.NewBox(gtk.OrientationVertical, 0)

	content := gtk.NewBox(gtk.OrientationVertical, 12)
	content.SetMarginTop(common.DialogMargin)
	content.SetMarginBottom(common.DialogMargin)
	content.SetMarginStart(common.DialogMargin)
	content.SetMarginEnd(common.DialogMargin)
	content.SetVExpand(true)

	// Header: wallet name and storage path
	title := gtk.NewLabel(w.wlt.Basename())
	title.AddCSSClass("wallet-title")
	title.SetXAlign(0)
	content.Append(title)

	path := gtk.NewLabel(w.wlt.StoragePath())
	path.AddCSSClass("wallet-path")
	path.SetXAlign(0)
	path.SetEllipsize(pango.EllipsizeMiddle)
	content.Append(path)

	if w.app.offline {
		offline := gtk.NewLabel("OFFLINE")
		offline.AddCSSClass("offline-badge")
		offline.SetHAlign(gtk.AlignStart)
		content.Append(offline)
	}

	separator := gtk.NewSeparator(gtk.OrientationHorizontal)
	separator.SetMarginTop(8)
	separator.SetMarginBottom(8)
	content.Append(separator)

	// Balance display
	balance := gtk.NewLabel("0.00000000")
	balance.AddCSSClass("balance-amount")
	balance.AddCSSClass("balance-positive")
	balance.SetHAlign(gtk.AlignCenter)
	balance.SetMarginTop(12)
	balance.SetMarginBottom(12)
	content.Append(balance)

	// Payment request banner, hidden until a URI arrives
	w.paymentBanner = gtk.NewLabel("")
	w.paymentBanner.AddCSSClass("payment-banner")
	w.paymentBanner.SetWrap(true)
	w.paymentBanner.Hide()
	content.Append(w.paymentBanner)

	mainBox.Append(content)

	// Status bar
	w.statusLabel = gtk.NewLabel(w.statusText())
	w.statusLabel.AddCSSClass("status-bar")
	w.statusLabel.SetXAlign(0)
	mainBox.Append(w.statusLabel)

	return mainBox
}

func (w *WalletWindow) statusText() string {
	if w.app.offline {
		return "Offline - balance and history are not synchronized"
	}
	return "Synchronizing..."
}

func (w *WalletWindow) applySavedGeometry() {
	w.window.SetDefaultSize(common.DefaultWindowWidth, common.DefaultWindowHeight)
	w.window.SetSizeRequest(common.MinWindowWidth, common.MinWindowHeight)

	if w.app.recent == nil {
		return
	}
	g, ok, err := w.app.recent.Geometry(w.wlt.StoragePath())
	if err != nil || !ok {
		return
	}
	w.window.SetDefaultSize(g.Width, g.Height)
	if g.Maximized {
		w.window.Maximize()
	}
}

func (w *WalletWindow) saveGeometry() {
	if w.app.recent == nil {
		return
	}
	width, height := w.window.DefaultSize()
	err := w.app.recent.SaveGeometry(w.wlt.StoragePath(), storage.Geometry{
		Width:     width,
		Height:    height,
		Maximized: w.window.IsMaximized(),
	})
	if err != nil {
		common.LogWarn("Failed to save window geometry: %v", err)
	}
}

// Wallet returns the wallet this window displays.
func (w *WalletWindow) Wallet() wallet.Wallet {
	return w.wlt
}

// BringToFront raises the window and gives it input focus.
func (w *WalletWindow) BringToFront() {
	w.hidden = false
	w.window.Present()
}

// Show makes a hidden window visible again.
func (w *WalletWindow) Show() {
	w.hidden = false
	w.window.SetVisible(true)
}

// Hide hides the window without closing it.
func (w *WalletWindow) Hide() {
	w.hidden = true
	w.window.SetVisible(false)
}

// IsHidden reports whether the window is currently hidden.
func (w *WalletWindow) IsHidden() bool {
	return w.hidden
}

// Destroy tears down the toolkit window. Called by the shell after the
// window left the registry.
func (w *WalletWindow) Destroy() {
	if w.destroyed {
		return
	}
	w.destroyed = true
	w.window.Destroy()
}

// OpenPaymentURI shows an incoming payment request in the window.
func (w *WalletWindow) OpenPaymentURI(uri string) {
	request := strings.TrimPrefix(uri, common.URIScheme)
	w.paymentBanner.SetText("Payment request: " + request)
	w.paymentBanner.Show()
	if w.app.cfg.ShowNotifications {
		NotifyPaymentReceived(w.wlt.Basename(), request)
	}
}
