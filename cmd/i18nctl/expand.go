package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-better-i18n/internal/i18n"
)

func newExpandCmd(opts *rootOptions) *cobra.Command {
	var compact bool
	cmd := &cobra.Command{
		Use:   "expand",
		Short: "Print the collections after locale expansion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, err := opts.load()
			if err != nil {
				return err
			}

			builder := i18n.NewBuilder(
				i18n.WithEnabled(file.I18N.Enabled),
				i18n.WithConfig(i18n.FromModuleConfig(file.DefaultLocale, file.LocaleCodes())),
			)
			out, report, err := builder.Apply(file.Host())
			if err != nil {
				return err
			}
			for _, warning := range report.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", warning.Message)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if !compact {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(out)
		},
	}
	cmd.Flags().BoolVar(&compact, "compact", false, "single line output")
	return cmd
}
