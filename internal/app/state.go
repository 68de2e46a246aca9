// Package app holds the top-level menu state machine: which actions are
// legal to offer in the terminal UI at any given moment, and what state
// follows a given action. The source this was distilled from expressed
// this as a small class hierarchy (State, with BootstrapState/LockedState/
// UnlockedState/ShutdownState overriding allows/transition); Go has no
// virtual dispatch worth reaching for four cases, so it's one closed type
// switch instead.
package app

// State names a point in the bootstrap → locked → unlocked → shutdown
// lifecycle of a single vaultkeep run.
type State int

const (
	// StateBootstrap is the initial state: no vault path has been
	// confirmed to exist yet.
	StateBootstrap State = iota
	// StateLocked means a vault file is known to exist but no Session is
	// open: it has not been unlocked yet, or was saved and closed.
	StateLocked
	// StateUnlocked means a Session is open and entry mutations are
	// permitted.
	StateUnlocked
	// StateShutdown is terminal: no action is allowed, the run loop
	// exits.
	StateShutdown
)

func (s State) String() string {
	switch s {
	case StateBootstrap:
		return "bootstrap"
	case StateLocked:
		return "locked"
	case StateUnlocked:
		return "unlocked"
	case StateShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// Action is a menu action the terminal UI can offer the user.
type Action int

const (
	ActionNone Action = iota
	ActionCreateVault
	ActionUnlock
	ActionAddEntry
	ActionAlterEntry
	ActionRemoveEntry
	ActionListEntries
	ActionSaveAndClose
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionCreateVault:
		return "create-vault"
	case ActionUnlock:
		return "unlock"
	case ActionAddEntry:
		return "add-entry"
	case ActionAlterEntry:
		return "alter-entry"
	case ActionRemoveEntry:
		return "remove-entry"
	case ActionListEntries:
		return "list-entries"
	case ActionSaveAndClose:
		return "save-and-close"
	case ActionQuit:
		return "quit"
	default:
		return "none"
	}
}

// Allows reports whether action is legal to perform while in state s. The
// UI consults this before dispatching an action and refuses (rather than
// attempting and failing) anything not allowed.
func Allows(s State, action Action) bool {
	switch s {
	case StateBootstrap:
		switch action {
		case ActionCreateVault, ActionQuit:
			return true
		}
	case StateLocked:
		switch action {
		case ActionUnlock, ActionQuit:
			return true
		}
	case StateUnlocked:
		switch action {
		case ActionListEntries, ActionAddEntry, ActionAlterEntry, ActionRemoveEntry, ActionSaveAndClose, ActionQuit:
			return true
		}
	case StateShutdown:
		return false
	}
	return false
}

// Transition returns the state that follows performing action while in
// state s. It returns s unchanged if the action has no state-changing
// effect (most mutations on an already-unlocked vault stay in
// StateUnlocked).
func Transition(s State, action Action) State {
	switch s {
	case StateBootstrap:
		switch action {
		case ActionCreateVault:
			return StateLocked
		case ActionQuit:
			return StateShutdown
		}
	case StateLocked:
		switch action {
		case ActionUnlock:
			return StateUnlocked
		case ActionQuit:
			return StateShutdown
		}
	case StateUnlocked:
		switch action {
		case ActionSaveAndClose:
			return StateLocked
		case ActionQuit:
			return StateShutdown
		}
	}
	return s
}
