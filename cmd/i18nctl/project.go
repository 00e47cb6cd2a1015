package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	betteri18n "github.com/goliatone/go-better-i18n"
)

func newProjectCmd(opts *rootOptions) *cobra.Command {
	var locale string
	var localeList string
	cmd := &cobra.Command{
		Use:   "project [record.json]",
		Short: "Reduce a stored record to one locale",
		Long: `Reads a multi-locale record (JSON or YAML) from the given file or
stdin and prints the single-locale view. Locales come from --locales or,
when empty, from the config file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := resolveLocales(opts, localeList)
			if err != nil {
				return err
			}

			var data []byte
			if len(args) == 1 {
				data, err = os.ReadFile(args[0])
			} else {
				data, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return err
			}
			doc, err := betteri18n.DecodeDocument(data)
			if err != nil {
				return fmt.Errorf("decode record: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(betteri18n.Project(doc, list, strings.TrimSpace(locale)))
		},
	}
	cmd.Flags().StringVarP(&locale, "locale", "l", "", "locale to project onto")
	cmd.Flags().StringVar(&localeList, "locales", "", "comma separated locale codes")
	_ = cmd.MarkFlagRequired("locale")
	return cmd
}

func resolveLocales(opts *rootOptions, raw string) ([]betteri18n.Locale, error) {
	var codes []string
	for _, code := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(code); trimmed != "" {
			codes = append(codes, trimmed)
		}
	}
	if len(codes) > 0 {
		return betteri18n.NormalizeLocales(codes), nil
	}

	file, err := opts.load()
	if err != nil {
		return nil, err
	}
	if file.Localization != nil {
		if list := betteri18n.NormalizeLocales(file.Localization.Locales); len(list) > 0 {
			return list, nil
		}
	}
	list := file.Locales()
	if len(list) == 0 {
		return nil, betteri18n.ErrNoLocales
	}
	return list, nil
}
