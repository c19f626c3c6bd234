// Package ui provides the GTK4 user interface for Ember Wallet.
// This file contains the desktop notification system.
package ui

import (
	"os/exec"

	"github.com/godbus/dbus/v5"

	"github.com/emberwallet/ember/common"
)

// NotificationType represents the type of notification
type NotificationType int

const (
	NotificationInfo NotificationType = iota
	NotificationSuccess
	NotificationWarning
	NotificationError
)

// Notification represents a system notification
type Notification struct {
	Title   string
	Message string
	Type    NotificationType
	Icon    string
}

// ShowNotification displays a desktop notification over the session bus,
// falling back to notify-send when no bus is reachable.
func ShowNotification(n Notification) {
	icon := n.Icon
	if icon == "" {
		switch n.Type {
		case NotificationWarning:
			icon = "dialog-warning"
		case NotificationError:
			icon = "dialog-error"
		default:
			icon = "wallet-symbolic"
		}
	}

	// freedesktop urgency: 0 low, 1 normal, 2 critical
	var urgency byte = 1
	switch n.Type {
	case NotificationError:
		urgency = 2
	case NotificationInfo, NotificationSuccess:
		urgency = 0
	}

	if err := notifyOverBus(n, icon, urgency); err != nil {
		common.WarnOnce("dbus-notifications",
			"D-Bus notifications unavailable, falling back to notify-send: %v", err)
		notifyViaCommand(n, icon, urgency)
	}
}

func notifyOverBus(n Notification, icon string, urgency byte) error {
	conn, err := dbus.SessionBus()
	if err != nil {
		return err
	}

	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		common.AppName,
		uint32(0), // no notification replacement
		icon,
		n.Title,
		n.Message,
		[]string{},
		map[string]dbus.Variant{"urgency": dbus.MakeVariant(urgency)},
		int32(-1), // server-default expiry
	)
	return call.Err
}

func notifyViaCommand(n Notification, icon string, urgency byte) {
	level := "normal"
	switch urgency {
	case 0:
		level = "low"
	case 2:
		level = "critical"
	}

	cmd := exec.Command("notify-send",
		"--app-name="+common.AppName,
		"--icon="+icon,
		"--urgency="+level,
		n.Title,
		n.Message,
	)
	if err := cmd.Run(); err != nil {
		common.LogWarn("Error showing notification: %v", err)
	}
}

// NotifyPaymentReceived announces an incoming payment request to a wallet.
func NotifyPaymentReceived(walletName, request string) {
	ShowNotification(Notification{
		Title:   "Payment Request",
		Message: walletName + ": " + request,
		Type:    NotificationSuccess,
	})
}

// DesktopNotifier adapts package notifications to common.Notifier.
type DesktopNotifier struct{}

func (DesktopNotifier) Notify(title, message string) error {
	ShowNotification(Notification{Title: title, Message: message, Type: NotificationInfo})
	return nil
}

func (DesktopNotifier) NotifyWithIcon(title, message, icon string) error {
	ShowNotification(Notification{Title: title, Message: message, Type: NotificationInfo, Icon: icon})
	return nil
}
