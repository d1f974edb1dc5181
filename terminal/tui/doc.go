// Package tui provides interactive widgets drawn on terminal windows.
//
// LineEditor collects a single line of text at a fixed field position:
//
//	ed := tui.LineEditor{Position: geom.Point{X: 10, Y: 2}, MaxLength: 20, Highlight: "field", Palette: reg}
//	name, err := ed.Run(ctx, win, screen)
//
// Editing keys are printable runes, Backspace, Left and Right; Enter or Tab
// finishes. The window cursor saved on entry is restored on exit.
//
// Frame draws a titled border with the heavy box glyphs and returns the
// interior rectangle.
package tui
