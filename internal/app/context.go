package app

import (
	"github.com/huttonjc/vaultkeep/internal/vault"
)

// Context is the run's shared mutable state: the vault path, the current
// menu state, and the open Session once unlocked. It replaces the
// original's single shared Application& passed by reference into every
// handler — here it's an explicit struct the command layer (cmd/vaultkeep's
// open command) constructs once and threads through each dispatched action.
type Context struct {
	Path    string
	State   State
	Session *vault.Session
}

// NewContext builds the initial bootstrap context for the vault at path.
// The starting state accounts for whether a vault file already exists at
// that path, mirroring BootstrapState.on_enter's eager transition to
// StateLocked when one does.
func NewContext(path string) *Context {
	c := &Context{Path: path, State: StateBootstrap}
	if vault.Exists(path) {
		c.State = StateLocked
	}
	return c
}

// Close releases the context's open session, if any. Safe to call
// regardless of whether a session is open.
func (c *Context) Close() {
	if c.Session != nil {
		c.Session.Close()
		c.Session = nil
	}
}
