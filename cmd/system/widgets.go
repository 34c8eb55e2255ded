package system

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/securewave/securewave_backend/config"
	"github.com/securewave/securewave_backend/pkg/widget"
)

func NewWidgetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "widgets",
		Short: "Validate widget configuration and print the bootstrap markup",
		Long: `Initialize the animation, map and chat widgets from the configuration.

Prints the markup to include in the site pages, or the settings as JSON with --json.
Fails if any widget is misconfigured.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
			if err != nil {
				return err
			}
			asJSON, err := cmd.Flags().GetBool("json")
			if err != nil {
				return fmt.Errorf("failed to read json flag: %w", err)
			}

			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			handles, err := widget.InitializeAll(widget.FromConfig(cfg.Widgets))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(handles)
			}
			for _, h := range handles {
				fmt.Fprintf(out, "<!-- %s -->\n", h.Name)
				if h.Head != "" {
					fmt.Fprintf(out, "%s\n", h.Head)
				}
				fmt.Fprintf(out, "%s\n\n", h.Body)
			}
			return nil
		},
	}

	cmd.Flags().Bool("json", false, "Print widget settings and markup as JSON")

	return cmd
}
