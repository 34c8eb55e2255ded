package system

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/securewave/securewave_backend/config"
	"github.com/securewave/securewave_backend/pkg/email"
	"github.com/securewave/securewave_backend/pkg/logs"
)

func NewCheckMailCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check-mail",
		Short: "Send a test message through the configured mail transport",
		Long: `Send one message through the configured transport to verify credentials.

The message goes to the operator mailbox unless --to is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
			if err != nil {
				return err
			}
			to, err := cmd.Flags().GetString("to")
			if err != nil {
				return fmt.Errorf("failed to read to flag: %w", err)
			}
			timeout, err := cmd.Flags().GetDuration("timeout")
			if err != nil {
				return fmt.Errorf("failed to read timeout flag: %w", err)
			}

			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if err := cfg.ValidateServer(); err != nil {
				return fmt.Errorf("mail configuration: %w", err)
			}
			if to == "" {
				to = cfg.Notification.OperatorMailbox
			}

			logger, closeLogs := logs.New(cfg)
			defer closeLogs()

			sender, err := email.NewFromCentral(cfg.Email, logger)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			msg := email.BuildTestMessage(to, email.TemplateData{TeamName: cfg.Notification.TeamName})
			if err := sender.Send(ctx, msg); err != nil {
				var disabled email.ErrDisabled
				if errors.As(err, &disabled) {
					return errors.New("email is disabled; set email.enabled to true")
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Test message sent to %s via %s\n", to, cfg.Email.Driver)
			return nil
		},
	}

	cmd.Flags().String("to", "", "Recipient of the test message (defaults to the operator mailbox)")
	cmd.Flags().Duration("timeout", 60*time.Second, "Maximum time to wait for the transport")

	return cmd
}
