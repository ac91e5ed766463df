// Package control turns websocket messages into keyboard controller actions.
package control

import "github.com/frudas24/keyslice/internal/keyboard"

// Message is a control websocket payload.
type Message struct {
	T       string `json:"t"`
	ID      int    `json:"id,omitempty"`
	Text    string `json:"text,omitempty"`
	Key     string `json:"key,omitempty"`
	Layout  string `json:"layout,omitempty"`
	Flags   uint32 `json:"flags,omitempty"`
	Enabled *bool  `json:"enabled,omitempty"`
}

// Reply answers every Message with the resulting keyboard state.
type Reply struct {
	T        string                `json:"t"`
	ID       int                   `json:"id,omitempty"`
	Error    string                `json:"error,omitempty"`
	Dropped  bool                  `json:"dropped,omitempty"`
	Held     []keyboard.SpecialKey `json:"held"`
	CapsLock bool                  `json:"capsLock"`
	Layout   string                `json:"layout"`
}

// Reply kinds.
const (
	ReplyOK    = "ok"
	ReplyError = "error"
)
