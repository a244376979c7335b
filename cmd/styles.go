package cmd

import "github.com/grovetools/core/tui/theme"

// Common styles used across commands
var (
	successStyle = theme.DefaultTheme.Success
	errorStyle   = theme.DefaultTheme.Error
	warningStyle = theme.DefaultTheme.Warning
	chordStyle   = theme.DefaultTheme.Highlight
	faintStyle   = theme.DefaultTheme.Muted
	headerStyle  = theme.DefaultTheme.Bold
)
