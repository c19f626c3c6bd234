// Package ui provides the GTK4 user interface for Ember Wallet.
// This file contains the modal alert dialogs and the network bootstrap
// dialog.
package ui

import (
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/emberwallet/ember/common"
)

// runModal shows the window and blocks in a nested main loop until the
// window is closed. GTK4 has no built-in blocking dialog run, so modality
// is driven by hand.
func runModal(window *gtk.Window) {
	loop := glib.NewMainLoop(nil, false)
	window.ConnectCloseRequest(func() bool {
		loop.Quit()
		return false
	})
	window.Show()
	loop.Run()
}

// presentAlert shows a blocking alert with a single dismiss button.
func presentAlert(title, message, iconName string) {
	window := gtk.NewWindow()
	window.SetTitle(title + " - " + common.AppName)
	window.SetModal(true)
	window.SetResizable(false)
	window.SetDefaultSize(420, 0)

	mainBox := gtk.NewBox(gtk.OrientationVertical, 0)

	contentBox := gtk.NewBox(gtk.OrientationHorizontal, 16)
	contentBox.SetMarginTop(common.DialogMargin)
	contentBox.SetMarginBottom(12)
	contentBox.SetMarginStart(common.DialogMargin)
	contentBox.SetMarginEnd(common.DialogMargin)

	icon := gtk.NewImage()
	icon.SetFromIconName(iconName)
	icon.SetPixelSize(32)
	icon.SetVAlign(gtk.AlignStart)
	contentBox.Append(icon)

	label := gtk.NewLabel(message)
	label.SetWrap(true)
	label.SetXAlign(0)
	label.SetMaxWidthChars(60)
	contentBox.Append(label)

	mainBox.Append(contentBox)

	buttonBox := gtk.NewBox(gtk.OrientationHorizontal, 12)
	buttonBox.SetHAlign(gtk.AlignEnd)
	buttonBox.SetMarginTop(12)
	buttonBox.SetMarginBottom(common.DialogMargin)
	buttonBox.SetMarginStart(common.DialogMargin)
	buttonBox.SetMarginEnd(common.DialogMargin)

	okBtn := gtk.NewButtonWithLabel("OK")
	okBtn.AddCSSClass("suggested-action")
	okBtn.ConnectClicked(func() {
		window.Close()
	})
	buttonBox.Append(okBtn)

	mainBox.Append(buttonBox)
	window.SetChild(mainBox)

	runModal(window)
	window.Destroy()
}

// ShowErrorDialog presents a blocking error dialog.
func ShowErrorDialog(message string) {
	presentAlert("Error", message, "dialog-error-symbolic")
}

// ShowWarningDialog presents a blocking warning dialog.
func ShowWarningDialog(message string) {
	presentAlert("Warning", message, "dialog-warning-symbolic")
}

// runAutoConnectDialog asks how the wallet should pick a server. It
// returns common.ErrUserCancelled when dismissed.
func runAutoConnectDialog() (bool, error) {
	window := gtk.NewWindow()
	window.SetTitle("Network - " + common.AppName)
	window.SetModal(true)
	window.SetResizable(false)
	window.SetDefaultSize(440, 0)

	mainBox := gtk.NewBox(gtk.OrientationVertical, 0)

	contentBox := gtk.NewBox(gtk.OrientationVertical, 12)
	contentBox.SetMarginTop(common.DialogMargin)
	contentBox.SetMarginBottom(12)
	contentBox.SetMarginStart(common.DialogMargin)
	contentBox.SetMarginEnd(common.DialogMargin)

	question := gtk.NewLabel("How do you want to connect to a server?")
	question.AddCSSClass("title-4")
	question.SetXAlign(0)
	contentBox.Append(question)

	info := gtk.NewLabel("Auto-connect keeps the wallet on the best available server. " +
		"You can pick a specific server later in the network settings.")
	info.AddCSSClass("dim-label")
	info.SetWrap(true)
	info.SetXAlign(0)
	contentBox.Append(info)

	autoCheck := gtk.NewCheckButtonWithLabel("Select server automatically")
	autoCheck.SetActive(true)
	autoCheck.SetMarginTop(8)
	contentBox.Append(autoCheck)

	mainBox.Append(contentBox)

	buttonBox := gtk.NewBox(gtk.OrientationHorizontal, 12)
	buttonBox.SetHAlign(gtk.AlignEnd)
	buttonBox.SetMarginTop(12)
	buttonBox.SetMarginBottom(common.DialogMargin)
	buttonBox.SetMarginStart(common.DialogMargin)
	buttonBox.SetMarginEnd(common.DialogMargin)

	confirmed := false

	cancelBtn := gtk.NewButtonWithLabel("Cancel")
	cancelBtn.ConnectClicked(func() {
		window.Close()
	})
	buttonBox.Append(cancelBtn)

	nextBtn := gtk.NewButtonWithLabel("Next")
	nextBtn.AddCSSClass("suggested-action")
	nextBtn.ConnectClicked(func() {
		confirmed = true
		window.Close()
	})
	buttonBox.Append(nextBtn)

	mainBox.Append(buttonBox)
	window.SetChild(mainBox)

	runModal(window)
	auto := autoCheck.Active()
	window.Destroy()

	if !confirmed {
		return false, common.ErrUserCancelled
	}
	return auto, nil
}
