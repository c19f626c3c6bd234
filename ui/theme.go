// Package ui provides the GTK4 user interface for Ember Wallet.
// This file applies the configured color theme and derives the semantic
// palette used for balance and status coloring.
package ui

import (
	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/emberwallet/ember/common"
)

// SemanticPalette holds the derived colors that depend on whether the
// effective style is dark. The host OS can impose dark mode regardless of
// our own preference, so this is recomputed from the active style, not
// from configuration.
type SemanticPalette struct {
	Positive    string
	Negative    string
	Unconfirmed string
	Link        string
}

func lightPalette() SemanticPalette {
	return SemanticPalette{
		Positive:    "#26a269",
		Negative:    "#c01c28",
		Unconfirmed: "#a57705",
		Link:        "#1c71d8",
	}
}

func darkPalette() SemanticPalette {
	return SemanticPalette{
		Positive:    "#2ec27e",
		Negative:    "#e01b24",
		Unconfirmed: "#e5a50a",
		Link:        "#3584e4",
	}
}

// ApplyTheme applies the configured theme before any windows exist. A
// failure to engage the dark style falls back to the default theme
// silently; startup must never abort over a stylesheet.
func ApplyTheme(theme string) {
	if theme != common.ThemeDark {
		return
	}
	if !applyDarkTheme() {
		common.WarnOnce("dark-theme", "Dark theme unavailable, falling back to default")
		applyGTKDarkFallback()
	}
}

// applyDarkTheme engages the libadwaita dark style. Returns false if the
// style manager is unavailable in this environment.
func applyDarkTheme() (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	mgr := adw.StyleManagerGetDefault()
	if mgr == nil {
		return false
	}
	mgr.SetColorScheme(adw.ColorSchemeForceDark)
	return true
}

// applyGTKDarkFallback asks plain GTK to prefer its dark variant.
func applyGTKDarkFallback() {
	settings := gtk.SettingsGetDefault()
	if settings == nil {
		return
	}
	settings.SetObjectProperty("gtk-application-prefer-dark-theme", true)
}

// EffectiveDark reports whether the active style is dark, whatever the
// source of that decision.
func EffectiveDark() (dark bool) {
	defer func() {
		if recover() != nil {
			dark = false
		}
	}()
	mgr := adw.StyleManagerGetDefault()
	if mgr == nil {
		return false
	}
	return mgr.Dark()
}

// ComputePalette derives the semantic palette from the effective style.
// Call it after ApplyTheme, and again if the style changes at runtime.
func ComputePalette() SemanticPalette {
	if EffectiveDark() {
		return darkPalette()
	}
	return lightPalette()
}
