package main

import (
	"os"

	"github.com/spf13/cobra"

	vcrypto "github.com/huttonjc/vaultkeep/internal/crypto"
	"github.com/huttonjc/vaultkeep/internal/ui"
	"github.com/huttonjc/vaultkeep/internal/vault"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new, empty vault",
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if vault.Exists(cfg.VaultPath) {
		return vault.ErrFileAlreadyExists
	}

	term := ui.New(os.Stdin, os.Stdout)
	password := term.PromptMasterPassword(int(os.Stdin.Fd()))
	defer password.Destroy()

	profile := vcrypto.ProfileByName(cfg.KDFProfile)
	if err := vault.CreateNew(cfg.VaultPath, password, profile); err != nil {
		logger.WithError(err).Error("failed to create vault")
		return err
	}

	logger.WithField("path", cfg.VaultPath).WithField("kdf_profile", profile.Name).Info("vault created")
	term.ShowMessage("Vault created at " + cfg.VaultPath)
	return nil
}
