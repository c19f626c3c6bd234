// Package ui provides the GTK4 user interface for Ember Wallet.
// This file contains the wallet setup wizard.
package ui

import (
	"path/filepath"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/emberwallet/ember/common"
	"github.com/emberwallet/ember/keyring"
	"github.com/emberwallet/ember/wallet"
)

// wizardOutcome distinguishes how the wizard ended.
type wizardOutcome int

const (
	wizardCancelled wizardOutcome = iota
	wizardBack
	wizardCreate
	wizardRestore
)

// setupWizard creates or restores a wallet at a target path. It runs as a
// blocking modal flow and always destroys its window before returning,
// whatever the outcome.
type setupWizard struct {
	path   string
	window *gtk.Window
	stack  *gtk.Stack

	passwordEntry *gtk.PasswordEntry
	confirmEntry  *gtk.PasswordEntry
	seedView      *gtk.TextView
	mismatchLabel *gtk.Label

	outcome  wizardOutcome
	finished bool
}

// RunSetupWizard runs the create/restore flow for the wallet at path.
// It returns common.ErrUserCancelled or common.ErrWizardGoBack when the
// user backs out.
func RunSetupWizard(path string) (wallet.Wallet, error) {
	wiz := &setupWizard{path: path}
	defer wiz.terminate()

	wiz.build()
	runModal(wiz.window)

	if wiz.outcome == wizardBack {
		return nil, common.ErrWizardGoBack
	}
	// Dismissing the window at any point is a cancel; only an explicit
	// Finish creates the wallet.
	if !wiz.finished {
		return nil, common.ErrUserCancelled
	}
	return wiz.createWallet()
}

func (z *setupWizard) build() {
	z.window = gtk.NewWindow()
	z.window.SetTitle("Setup Wallet - " + common.AppName)
	z.window.SetModal(true)
	z.window.SetResizable(false)
	z.window.SetDefaultSize(460, 0)

	z.stack = gtk.NewStack()
	z.stack.SetTransitionType(gtk.StackTransitionTypeSlideLeftRight)
	z.stack.AddNamed(z.buildChoicePage(), "choice")
	z.stack.AddNamed(z.buildDetailsPage(), "details")
	z.stack.SetVisibleChildName("choice")

	z.window.SetChild(z.stack)
}

func (z *setupWizard) buildChoicePage() *gtk.Box {
	page := gtk.NewBox(gtk.OrientationVertical, 12)
	page.SetMarginTop(common.DialogMargin)
	page.SetMarginBottom(common.DialogMargin)
	page.SetMarginStart(common.DialogMargin)
	page.SetMarginEnd(common.DialogMargin)

	title := gtk.NewLabel("Create a new wallet")
	title.AddCSSClass("title-3")
	title.SetXAlign(0)
	page.Append(title)

	pathLabel := gtk.NewLabel(filepath.Base(z.path))
	pathLabel.AddCSSClass("wallet-path")
	pathLabel.SetXAlign(0)
	page.Append(pathLabel)

	createBtn := gtk.NewButtonWithLabel("Create a new seed")
	createBtn.ConnectClicked(func() {
		z.outcome = wizardCreate
		z.showDetails(false)
	})
	page.Append(createBtn)

	restoreBtn := gtk.NewButtonWithLabel("Restore from seed phrase")
	restoreBtn.ConnectClicked(func() {
		z.outcome = wizardRestore
		z.showDetails(true)
	})
	page.Append(restoreBtn)

	buttonBox := gtk.NewBox(gtk.OrientationHorizontal, 12)
	buttonBox.SetHAlign(gtk.AlignEnd)
	buttonBox.SetMarginTop(12)

	backBtn := gtk.NewButtonWithLabel("Back")
	backBtn.ConnectClicked(func() {
		z.outcome = wizardBack
		z.window.Close()
	})
	buttonBox.Append(backBtn)

	cancelBtn := gtk.NewButtonWithLabel("Cancel")
	cancelBtn.ConnectClicked(func() {
		z.outcome = wizardCancelled
		z.window.Close()
	})
	buttonBox.Append(cancelBtn)

	page.Append(buttonBox)
	return page
}

func (z *setupWizard) buildDetailsPage() *gtk.Box {
	page := gtk.NewBox(gtk.OrientationVertical, 8)
	page.SetMarginTop(common.DialogMargin)
	page.SetMarginBottom(common.DialogMargin)
	page.SetMarginStart(common.DialogMargin)
	page.SetMarginEnd(common.DialogMargin)

	seedLabel := gtk.NewLabel("Seed phrase")
	seedLabel.SetXAlign(0)
	seedLabel.AddCSSClass("dim-label")
	page.Append(seedLabel)

	z.seedView = gtk.NewTextView()
	z.seedView.SetWrapMode(gtk.WrapWord)
	z.seedView.SetSizeRequest(-1, 64)
	page.Append(z.seedView)

	passwordLabel := gtk.NewLabel("Password (optional)")
	passwordLabel.SetXAlign(0)
	passwordLabel.AddCSSClass("dim-label")
	passwordLabel.SetMarginTop(8)
	page.Append(passwordLabel)

	z.passwordEntry = gtk.NewPasswordEntry()
	z.passwordEntry.SetShowPeekIcon(true)
	page.Append(z.passwordEntry)

	z.confirmEntry = gtk.NewPasswordEntry()
	z.confirmEntry.SetShowPeekIcon(true)
	page.Append(z.confirmEntry)

	z.mismatchLabel = gtk.NewLabel("Passwords do not match")
	z.mismatchLabel.AddCSSClass("status-error")
	z.mismatchLabel.SetXAlign(0)
	z.mismatchLabel.Hide()
	page.Append(z.mismatchLabel)

	buttonBox := gtk.NewBox(gtk.OrientationHorizontal, 12)
	buttonBox.SetHAlign(gtk.AlignEnd)
	buttonBox.SetMarginTop(12)

	backBtn := gtk.NewButtonWithLabel("Back")
	backBtn.ConnectClicked(func() {
		z.stack.SetVisibleChildName("choice")
	})
	buttonBox.Append(backBtn)

	finishBtn := gtk.NewButtonWithLabel("Finish")
	finishBtn.AddCSSClass("suggested-action")
	finishBtn.ConnectClicked(func() {
		if z.passwordEntry.Text() != z.confirmEntry.Text() {
			z.mismatchLabel.Show()
			return
		}
		z.finished = true
		z.window.Close()
	})
	buttonBox.Append(finishBtn)

	page.Append(buttonBox)
	return page
}

func (z *setupWizard) showDetails(restoring bool) {
	z.seedView.SetVisible(restoring)
	z.stack.SetVisibleChildName("details")
}

func (z *setupWizard) createWallet() (wallet.Wallet, error) {
	password := z.passwordEntry.Text()
	w, err := wallet.Create(z.path, password)
	if err != nil {
		return nil, err
	}
	// Remember the password so the wallet reopens without prompting
	if password != "" {
		if err := keyring.Store(wallet.StandardizePath(z.path), password); err != nil {
			common.LogWarn("Failed to store wallet password in keyring: %v", err)
		}
	}
	return w, nil
}

// terminate tears the wizard window down. Dismissed wizards otherwise pin
// widget memory until finalizers run, so this must not be skipped.
func (z *setupWizard) terminate() {
	if z.window != nil {
		z.window.Destroy()
		z.window = nil
	}
}
