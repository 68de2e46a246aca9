package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/huttonjc/vaultkeep/internal/config"
	"github.com/huttonjc/vaultkeep/internal/logging"
)

var (
	cfgFile    string
	vaultPath  string
	kdfProfile string
	logFormat  string

	cfg    *config.Config
	logger *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "vaultkeep",
	Short: "vaultkeep - an offline, file-backed secret vault",
	Long: `vaultkeep keeps credential records (name, username, secret) in a single
password-protected file on the local filesystem. There is no server, no
sync, and no account: the file and the master password are the only
things that matter.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded

		if vaultPath != "" {
			cfg.VaultPath = vaultPath
		}
		if kdfProfile != "" {
			cfg.KDFProfile = kdfProfile
		}
		if logFormat != "" {
			cfg.Logging.Format = logFormat
		}

		logger = logging.New(cfg.Logging)
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "vaultkeep.yaml", "path to config file")
	rootCmd.PersistentFlags().StringVar(&vaultPath, "path", "", "path to the vault file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&kdfProfile, "kdf-profile", "", "Argon2id profile for new vaults: interactive or moderate (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log output format: text or json (overrides config)")
}
