package submit

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/securewave/securewave_backend/config"
	"github.com/securewave/securewave_backend/pkg/formclient"
	"github.com/securewave/securewave_backend/pkg/lead"
	"github.com/securewave/securewave_backend/pkg/logs"
)

var errRejected = errors.New("submission was not accepted")

func NewSubmitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a website form to the dispatcher",
		Long: `Run the same validation and submission the website forms run, printing
each status message the page would show.`,
	}

	cmd.PersistentFlags().String("backend-url", "", "Dispatcher base URL (defaults to site.backend_url)")

	cmd.AddCommand(newFormCommand(lead.Consultation, "Request a consultation",
		lead.FieldName, lead.FieldEmail, lead.FieldPhone, lead.FieldCompany, lead.FieldMessage))
	cmd.AddCommand(newFormCommand(lead.Notify, "Subscribe to SecureAI updates",
		lead.FieldEmail))
	cmd.AddCommand(newFormCommand(lead.Subscription, "Submit the full subscription form",
		lead.FieldName, lead.FieldEmail, lead.FieldPhone, lead.FieldService))
	cmd.AddCommand(newServiceCommand())

	return cmd
}

func newFormCommand(v lead.Variant, short string, fields ...string) *cobra.Command {
	values := make(map[string]*string, len(fields))

	cmd := &cobra.Command{
		Use:   v.Key,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, closeLogs, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer closeLogs()

			form := formclient.ValueFields{}
			for name, val := range values {
				form[name] = *val
			}

			h := formclient.Bind(
				formclient.Elements{
					Fields: form,
					Status: &formclient.WriterStatus{W: cmd.OutOrStdout()},
					Reset:  form,
				},
				formclient.Options{Submitter: c, Variant: v},
			)
			defer h.Close()

			if st := h.Submit(cmd.Context()); st.Tone == formclient.ToneError {
				return errRejected
			}
			return nil
		},
	}

	for _, f := range fields {
		values[f] = cmd.Flags().String(f, "", "form field "+f)
	}

	return cmd
}

func newServiceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service <offering> <email>",
		Short: "Subscribe an address to updates for one offering",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, closeLogs, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer closeLogs()

			st := formclient.SubscribeToService(cmd.Context(), c, args[1], args[0])
			if st.IsZero() {
				fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
				return nil
			}
			(&formclient.WriterStatus{W: cmd.OutOrStdout()}).Show(st)
			if st.Tone == formclient.ToneError {
				return errRejected
			}
			return nil
		},
	}
	return cmd
}

// newClient builds the form client for the configured backend. The returned
// func flushes and closes the log outputs.
func newClient(cmd *cobra.Command) (*formclient.Client, func(), error) {
	cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, nil, err
	}
	backendURL, err := cmd.Flags().GetString("backend-url")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read backend-url flag: %w", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	if backendURL != "" {
		cfg.Site.BackendURL = backendURL
	}

	logger, closeLogs := quietLogger(cfg)
	c, err := formclient.NewFromCentral(cfg.Site, logger)
	if err != nil {
		closeLogs()
		return nil, nil, err
	}
	return c, closeLogs, nil
}

// quietLogger keeps client diagnostics off stdout unless debug logging is on.
func quietLogger(cfg *config.Config) (*slog.Logger, func()) {
	if cfg.Logging.Level == "debug" {
		return logs.New(cfg)
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
}
