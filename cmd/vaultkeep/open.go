package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/huttonjc/vaultkeep/internal/app"
	vcrypto "github.com/huttonjc/vaultkeep/internal/crypto"
	"github.com/huttonjc/vaultkeep/internal/ui"
	"github.com/huttonjc/vaultkeep/internal/vault"
)

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open the interactive vault shell",
	RunE:  runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	term := ui.New(os.Stdin, os.Stdout)
	ctx := app.NewContext(cfg.VaultPath)
	defer ctx.Close()

	for ctx.State != app.StateShutdown {
		action := term.PromptAction(ctx.State)
		if !app.Allows(ctx.State, action) {
			term.ShowError(errActionNotAllowed{action, ctx.State})
			continue
		}

		handleAction(term, ctx, action)
		// A failed create, unlock or save leaves the state where it was, so
		// StateUnlocked always has an open Session and StateLocked never does.
		if (action == app.ActionCreateVault && !vault.Exists(ctx.Path)) ||
			(action == app.ActionUnlock && ctx.Session == nil) ||
			(action == app.ActionSaveAndClose && ctx.Session != nil) {
			continue
		}
		ctx.State = app.Transition(ctx.State, action)
	}

	return nil
}

type errActionNotAllowed struct {
	action app.Action
	state  app.State
}

func (e errActionNotAllowed) Error() string {
	return e.action.String() + " is not allowed in state " + e.state.String()
}

func handleAction(term *ui.Terminal, ctx *app.Context, action app.Action) {
	switch action {
	case app.ActionCreateVault:
		handleCreateVault(term, ctx)
	case app.ActionUnlock:
		handleUnlock(term, ctx)
	case app.ActionAddEntry:
		handleAddEntry(term, ctx)
	case app.ActionAlterEntry:
		handleAlterEntry(term, ctx)
	case app.ActionRemoveEntry:
		handleRemoveEntry(term, ctx)
	case app.ActionListEntries:
		handleListEntries(term, ctx)
	case app.ActionSaveAndClose:
		handleSaveAndClose(term, ctx)
	case app.ActionQuit:
		ctx.Close()
		term.ShowMessage("Goodbye.")
	}
}

func handleCreateVault(term *ui.Terminal, ctx *app.Context) {
	password := term.PromptMasterPassword(int(os.Stdin.Fd()))
	defer password.Destroy()

	profile := vcrypto.ProfileByName(cfg.KDFProfile)
	if err := vault.CreateNew(ctx.Path, password, profile); err != nil {
		logger.WithError(err).Error("failed to create vault")
		term.ShowError(err)
		return
	}
	logger.WithField("path", ctx.Path).Info("vault created")
	term.ShowMessage("Vault created successfully.")
}

func handleUnlock(term *ui.Terminal, ctx *app.Context) {
	password := term.PromptMasterPassword(int(os.Stdin.Fd()))
	defer password.Destroy()

	sess, err := vault.Load(ctx.Path, password)
	if err != nil {
		logger.WithError(err).Warn("failed to unlock vault")
		term.ShowError(err)
		return
	}
	ctx.Session = sess
	logger.WithField("path", ctx.Path).Info("vault unlocked")
	term.ShowMessage("Vault unlocked.")
}

func handleAddEntry(term *ui.Terminal, ctx *app.Context) {
	entry := term.PromptEntry()
	if err := ctx.Session.Add(entry); err != nil {
		term.ShowError(err)
		return
	}
	term.ShowMessage("Entry added successfully.")
}

func handleAlterEntry(term *ui.Terminal, ctx *app.Context) {
	idx := term.SelectEntry(ctx.Session.Entries())
	if idx < 0 {
		return
	}

	updated := term.PromptEntry()

	// Session.Update does not itself re-check name uniqueness (see
	// internal/vault's Vault doc comment); a rename to a name already used
	// by a different entry is rejected here instead.
	if existing := ctx.Session.FindByName(string(updated.Name.Bytes())); existing >= 0 && existing != idx {
		term.ShowError(vault.ErrDuplicateName)
		return
	}

	if err := ctx.Session.Update(idx, updated); err != nil {
		term.ShowError(err)
		return
	}
	term.ShowMessage("Entry updated successfully.")
}

func handleRemoveEntry(term *ui.Terminal, ctx *app.Context) {
	idx := term.SelectEntry(ctx.Session.Entries())
	if idx < 0 {
		return
	}

	if err := ctx.Session.Remove(idx); err != nil {
		term.ShowError(err)
		return
	}
	term.ShowMessage("Entry deleted successfully.")
}

func handleListEntries(term *ui.Terminal, ctx *app.Context) {
	term.ListEntries(ctx.Session.Entries())
}

func handleSaveAndClose(term *ui.Terminal, ctx *app.Context) {
	if err := ctx.Session.Save(); err != nil {
		logger.WithError(err).Error("failed to save vault")
		term.ShowError(err)
		return
	}
	ctx.Close()
	logger.WithField("path", ctx.Path).Info("vault saved and closed")
	term.ShowMessage("Vault saved and closed.")
}
