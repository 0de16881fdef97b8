// Package styles provides the shared palette and styles for the chat UI.
package styles

import (
	"charm.land/lipgloss/v2"
)

// Color palette - ANSI 256 colors used throughout the application
var (
	// Primary accent color (blue)
	ColorAccent = lipgloss.Color("33")

	// Text colors
	ColorText       = lipgloss.Color("252") // Primary text
	ColorTextMuted  = lipgloss.Color("245") // Secondary/muted text
	ColorTextBright = lipgloss.Color("15")  // Bright/highlighted text

	// Semantic colors
	ColorError   = lipgloss.Color("196")
	ColorWarning = lipgloss.Color("214")
	ColorSuccess = lipgloss.Color("42")

	ColorCode        = lipgloss.Color("153")
	ColorCodeBg      = lipgloss.Color("235")
	ColorChipBg      = lipgloss.Color("237")
	ColorLink        = lipgloss.Color("75")

	// Border colors
	ColorBorder      = lipgloss.Color("33")
	ColorBorderMuted = lipgloss.Color("240")
	ColorUserBorder  = lipgloss.Color("69")
	ColorErrorBorder = lipgloss.Color("160")
)

// Panel/Box styles
var (
	// ModelBubbleStyle frames assistant replies
	ModelBubbleStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderMuted).
				Padding(0, 1)

	// UserBubbleStyle frames user messages
	UserBubbleStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorUserBorder).
			Padding(0, 1)

	// ErrorBubbleStyle frames failed replies
	ErrorBubbleStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorErrorBorder).
				Foreground(ColorError).
				Padding(0, 1)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	TextStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	TextMutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)

	TextBoldStyle = lipgloss.NewStyle().
			Foreground(ColorTextBright).
			Bold(true)

	TextItalicStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Italic(true)

	HeadingStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Underline(true)

	SubheadingStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	LinkStyle = lipgloss.NewStyle().
			Foreground(ColorLink).
			Underline(true)

	RoleStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Bold(true)
)

// Input and chip styles
var (
	// ChipStyle marks a key hint such as "Alt+1" in front of a suggestion
	ChipStyle = lipgloss.NewStyle().
			Foreground(ColorTextBright).
			Background(ColorAccent).
			Bold(true).
			Padding(0, 1)

	// AttachmentChipStyle is a single-line chip for attached files
	AttachmentChipStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Background(ColorChipBg).
				Padding(0, 1)

	InputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorderMuted)

	InputBoxFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorAccent)
)

// Feedback styles
var (
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)
)

// CodeStyle for inline and block code
var CodeStyle = lipgloss.NewStyle().
	Foreground(ColorCode).
	Background(ColorCodeBg)

// Header styles
var (
	HeaderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(ColorBorderMuted).
			Padding(0, 1)

	LogoStyle = lipgloss.NewStyle().
			Foreground(ColorTextBright).
			Background(ColorAccent).
			Bold(true).
			Padding(0, 1)

	BadgeStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Background(lipgloss.Color("236")).
			Padding(0, 1)
)
