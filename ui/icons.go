// Package ui provides the GTK4 user interface for Ember Wallet.
// This file contains icon generation utilities for the system tray.
package ui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"github.com/emberwallet/ember/common"
)

// IconConfig defines the configuration for tray icon generation.
type IconConfig struct {
	Size        int
	FillColor   color.RGBA
	BorderColor color.RGBA
	AccentColor color.RGBA
	SymbolColor color.RGBA
}

// LightIconConfig returns the config for the light icon variant, meant
// for dark panels.
func LightIconConfig() IconConfig {
	return IconConfig{
		Size:        common.TrayIconSize,
		FillColor:   color.RGBA{245, 166, 35, 255},  // Amber
		BorderColor: color.RGBA{255, 193, 94, 255},  // Light amber
		AccentColor: color.RGBA{255, 224, 178, 255}, // Pale amber
		SymbolColor: color.RGBA{255, 255, 255, 255}, // White
	}
}

// DarkIconConfig returns the config for the dark icon variant, meant for
// light panels.
func DarkIconConfig() IconConfig {
	return IconConfig{
		Size:        common.TrayIconSize,
		FillColor:   color.RGBA{99, 66, 14, 255},    // Dark amber
		BorderColor: color.RGBA{66, 44, 10, 255},    // Near-black amber
		AccentColor: color.RGBA{140, 94, 22, 255},   // Muted amber
		SymbolColor: color.RGBA{255, 224, 178, 255}, // Pale amber
	}
}

// IconGenerator generates PNG icons for the system tray.
type IconGenerator struct {
	config IconConfig
}

// NewIconGenerator creates a new icon generator with the given config.
func NewIconGenerator(config IconConfig) *IconGenerator {
	return &IconGenerator{config: config}
}

// Generate creates a PNG icon and returns the bytes.
func (g *IconGenerator) Generate() []byte {
	size := g.config.Size
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	g.drawCoin(img)
	g.drawFlame(img)

	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

// drawCoin draws the circular coin shape on the image.
func (g *IconGenerator) drawCoin(img *image.RGBA) {
	size := g.config.Size
	center := float64(size) / 2
	radius := float64(size)/2 - 1.5

	inCoin := func(x, y float64) bool {
		dx, dy := x-center, y-center
		return dx*dx+dy*dy <= radius*radius
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			fx, fy := float64(x)+0.5, float64(y)+0.5
			if !inCoin(fx, fy) {
				continue
			}
			isBorder := !inCoin(fx-1, fy) || !inCoin(fx+1, fy) ||
				!inCoin(fx, fy-1) || !inCoin(fx, fy+1)
			switch {
			case isBorder:
				img.Set(x, y, g.config.BorderColor)
			case float64(y) < center-radius/2:
				img.Set(x, y, g.config.AccentColor)
			default:
				img.Set(x, y, g.config.FillColor)
			}
		}
	}
}

// drawFlame draws the ember flame symbol on the image.
func (g *IconGenerator) drawFlame(img *image.RGBA) {
	c := g.config.SymbolColor

	// Flame outline, drawn for a 22px grid
	points := []struct{ x, y int }{
		{11, 5}, {10, 6}, {11, 6}, {12, 6},
		{10, 7}, {12, 7},
		{9, 8}, {13, 8},
		{8, 9}, {13, 9},
		{8, 10}, {14, 10},
		{7, 11}, {14, 11},
		{7, 12}, {15, 12},
		{7, 13}, {15, 13},
		{8, 14}, {14, 14},
		{9, 15}, {10, 15}, {11, 15}, {12, 15}, {13, 15},
		{11, 11}, {11, 12}, {10, 12}, {12, 12}, {11, 13},
	}
	for _, p := range points {
		if p.x >= 0 && p.x < g.config.Size && p.y >= 0 && p.y < g.config.Size {
			img.Set(p.x, p.y, c)
		}
	}
}

// GenerateLightIcon generates the light tray icon variant.
func GenerateLightIcon() []byte {
	gen := NewIconGenerator(LightIconConfig())
	return gen.Generate()
}

// GenerateDarkIcon generates the dark tray icon variant.
func GenerateDarkIcon() []byte {
	gen := NewIconGenerator(DarkIconConfig())
	return gen.Generate()
}
