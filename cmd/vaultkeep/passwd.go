package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/huttonjc/vaultkeep/internal/ui"
	"github.com/huttonjc/vaultkeep/internal/vault"
)

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change the master password of an existing vault",
	RunE:  runPasswd,
}

func init() {
	rootCmd.AddCommand(passwdCmd)
}

func runPasswd(cmd *cobra.Command, args []string) error {
	term := ui.New(os.Stdin, os.Stdout)

	term.ShowMessage("Current password:")
	current := term.PromptMasterPassword(int(os.Stdin.Fd()))
	defer current.Destroy()

	sess, err := vault.Load(cfg.VaultPath, current)
	if err != nil {
		logger.WithError(err).Error("failed to unlock vault")
		return err
	}
	defer sess.Close()

	term.ShowMessage("New password:")
	newPassword := term.PromptMasterPassword(int(os.Stdin.Fd()))
	defer newPassword.Destroy()

	if err := sess.ChangePassword(newPassword); err != nil {
		logger.WithError(err).Error("failed to change password")
		return err
	}

	logger.WithField("path", cfg.VaultPath).Info("master password changed")
	term.ShowMessage("Password changed.")
	return nil
}
