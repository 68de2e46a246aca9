// Package ui holds the interactive terminal prompts: bufio.Scanner-based
// menu, entry and password input in the shape of the teacher's nokhal shell
// (cmd/nokhal/main.go), repointed at the app state machine and the vault
// session instead of a flat put/get/del keystore. The command loop itself
// lives in cmd/vaultkeep's open command.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"

	"github.com/huttonjc/vaultkeep/internal/app"
	"github.com/huttonjc/vaultkeep/internal/secret"
	"github.com/huttonjc/vaultkeep/internal/vault"
)

// Terminal reads menu choices and prompts over an input/output pair. In production
// In is os.Stdin and Out is os.Stdout; tests substitute both.
type Terminal struct {
	In     io.Reader
	Out    io.Writer
	reader *bufio.Scanner
}

func New(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{In: in, Out: out, reader: bufio.NewScanner(in)}
}

func (t *Terminal) printf(format string, args ...any) {
	fmt.Fprintf(t.Out, format, args...)
}

// PromptAction prints the menu for the current state and reads one action
// name. Unrecognized input yields ActionNone, which every state rejects
// via app.Allows, producing a visible "not allowed" error rather than a
// silent no-op.
func (t *Terminal) PromptAction(state app.State) app.Action {
	t.printMenu(state)
	t.printf("> ")
	if !t.reader.Scan() {
		return app.ActionQuit
	}
	return parseAction(strings.TrimSpace(t.reader.Text()))
}

func (t *Terminal) printMenu(state app.State) {
	switch state {
	case app.StateBootstrap:
		t.printf("No vault found. Commands: create, quit\n")
	case app.StateLocked:
		t.printf("Vault locked. Commands: unlock, quit\n")
	case app.StateUnlocked:
		t.printf("Commands: list, add, alter, remove, save, quit\n")
	}
}

func parseAction(word string) app.Action {
	switch strings.ToLower(word) {
	case "create":
		return app.ActionCreateVault
	case "unlock":
		return app.ActionUnlock
	case "add":
		return app.ActionAddEntry
	case "alter":
		return app.ActionAlterEntry
	case "remove":
		return app.ActionRemoveEntry
	case "list":
		return app.ActionListEntries
	case "save":
		return app.ActionSaveAndClose
	case "quit", "exit":
		return app.ActionQuit
	default:
		return app.ActionNone
	}
}

// ShowMessage prints an informational line.
func (t *Terminal) ShowMessage(msg string) {
	t.printf("%s\n", msg)
}

// ShowError prints an error line.
func (t *Terminal) ShowError(err error) {
	t.printf("Error: %v\n", err)
}

// PromptLine reads one trimmed line of plain text, prefixed by label.
func (t *Terminal) PromptLine(label string) string {
	t.printf("%s: ", label)
	if !t.reader.Scan() {
		return ""
	}
	return strings.TrimSpace(t.reader.Text())
}

// PromptMasterPassword reads a password with terminal echo disabled via
// term.ReadPassword, falling back to a plain scanned line when stdin isn't
// a real terminal (tests, piped input). Adjacent API to the teacher's
// term.MakeRaw/term.Restore call pattern, used here in its single-purpose
// form instead of hand-rolling raw mode.
func (t *Terminal) PromptMasterPassword(fd int) *secret.Buffer {
	t.printf("Master password: ")
	if term.IsTerminal(fd) {
		pw, err := term.ReadPassword(fd)
		t.printf("\n")
		if err == nil {
			defer secret.Zero(pw)
			return secret.FromBytes(pw)
		}
	}
	if !t.reader.Scan() {
		return secret.New(0)
	}
	return secret.FromString(strings.TrimSpace(t.reader.Text()))
}

// PromptEntry reads the three fields of a new or replacement record.
func (t *Terminal) PromptEntry() vault.Record {
	name := t.PromptLine("Name")
	username := t.PromptLine("Username")
	secretValue := t.PromptLine("Secret")
	return vault.NewRecord(name, username, secretValue)
}

// SelectEntry lists entries and prompts for an index, returning -1 if the
// selection is out of range or empty input was given.
func (t *Terminal) SelectEntry(entries []vault.Record) int {
	for i, e := range entries {
		t.printf("%d) %s\n", i, e.Name.Bytes())
	}
	line := t.PromptLine("Index")
	if line == "" {
		return -1
	}
	var idx int
	if _, err := fmt.Sscanf(line, "%d", &idx); err != nil {
		return -1
	}
	if idx < 0 || idx >= len(entries) {
		return -1
	}
	return idx
}

// ListEntries prints every record's name and username (never the secret).
func (t *Terminal) ListEntries(entries []vault.Record) {
	if len(entries) == 0 {
		t.printf("No entries\n")
		return
	}
	for i, e := range entries {
		t.printf("%d) %s (%s)\n", i, e.Name.Bytes(), e.Username.Bytes())
	}
}
