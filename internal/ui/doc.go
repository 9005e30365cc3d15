// Package ui styles mixdeck's terminal output with lipgloss.
//
// [Palette] renders headings and status lines. [Palette.Source] colors a line by the source of the record it
// describes, so local, cloud and stream entries stand apart in library listings.
package ui
