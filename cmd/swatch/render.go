package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/jsvensson/swatch/color"
)

// chip renders the hex value of c on a background of c itself.
func chip(c color.Color) string {
	return chipWith(c, color.PreferNone)
}

func chipWith(c color.Color, pref color.Preference) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Foreground(lipgloss.Color(color.Foreground(c, pref).Hex())).
		Padding(0, 1).
		Render(c.Hex())
}
