package testutils

import (
	tea "charm.land/bubbletea/v2"
)

// Test helpers for creating v2 KeyPressMsg values

// NewKeyPressMsg creates a KeyPressMsg from a key code (for special keys)
func NewKeyPressMsg(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: code})
}

// NewTextKeyPressMsg creates a KeyPressMsg for text input
func NewTextKeyPressMsg(text string) tea.KeyPressMsg {
	if len(text) == 0 {
		return tea.KeyPressMsg(tea.Key{})
	}
	r := []rune(text)[0]
	return tea.KeyPressMsg(tea.Key{
		Code: r,
		Text: text,
	})
}

// TypeText returns one KeyPressMsg per rune of text.
func TypeText(text string) []tea.KeyPressMsg {
	msgs := make([]tea.KeyPressMsg, 0, len(text))
	for _, r := range text {
		msgs = append(msgs, NewTextKeyPressMsg(string(r)))
	}
	return msgs
}

// NewCtrlKeyPressMsg creates a Ctrl+<char> KeyPressMsg.
func NewCtrlKeyPressMsg(char rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{
		Code: char,
		Mod:  tea.ModCtrl,
	})
}

// NewAltKeyPressMsg creates an Alt+<char> KeyPressMsg.
func NewAltKeyPressMsg(char rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{
		Code: char,
		Mod:  tea.ModAlt,
	})
}

// NewShiftKeyPressMsg creates a Shift+<code> KeyPressMsg for special keys.
func NewShiftKeyPressMsg(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{
		Code: code,
		Mod:  tea.ModShift,
	})
}

// Common special keys using the new API
var (
	TestKeyEnter      = NewKeyPressMsg(tea.KeyEnter)
	TestKeyEsc        = NewKeyPressMsg(tea.KeyEscape)
	TestKeyBackspace  = NewKeyPressMsg(tea.KeyBackspace)
	TestKeyPgUp       = NewKeyPressMsg(tea.KeyPgUp)
	TestKeyPgDown     = NewKeyPressMsg(tea.KeyPgDown)
	TestKeyShiftEnter = NewShiftKeyPressMsg(tea.KeyEnter)
)

// Common ctrl combinations
var (
	TestKeyCtrlC = NewCtrlKeyPressMsg('c')
	TestKeyCtrlO = NewCtrlKeyPressMsg('o')
	TestKeyCtrlS = NewCtrlKeyPressMsg('s')
	TestKeyCtrlX = NewCtrlKeyPressMsg('x')
	TestKeyCtrlY = NewCtrlKeyPressMsg('y')
)
