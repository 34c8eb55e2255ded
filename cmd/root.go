package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	httpcmd "github.com/securewave/securewave_backend/cmd/http"
	submitcmd "github.com/securewave/securewave_backend/cmd/submit"
	systemcmd "github.com/securewave/securewave_backend/cmd/system"
)

var (
	cfgFile string
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "securewave",
	Short: "SecureWave website backend: lead capture and notification relay.",
	Long: `SecureWave relays the website's consultation and subscription forms as
email notifications: a thank-you to the submitter and an alert to the
operator mailbox. It also serves the static site and widget configuration.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Local .env values become SECUREWAVE_* overrides for viper.
		err := godotenv.Load(envFile)
		switch {
		case err == nil:
		case os.IsNotExist(err):
			slog.Debug("no env file loaded", "path", envFile)
		default:
			return fmt.Errorf("loading %s: %w", envFile, err)
		}
		return nil
	},
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global config flag, available for all commands.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the configuration")

	// Attach top-level command trees.
	rootCmd.AddCommand(systemcmd.NewSystemCommand())
	rootCmd.AddCommand(httpcmd.NewHTTPCommand())
	rootCmd.AddCommand(submitcmd.NewSubmitCommand())
}
