package main

import (
	"github.com/spf13/cobra"

	betteri18n "github.com/goliatone/go-better-i18n"
)

type rootOptions struct {
	configFile string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "i18nctl",
		Short:         "Inspect and populate field level localization",
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `i18nctl works with a YAML file holding module settings and the
content collections they apply to.

  expand   print the collections after locale expansion
  project  reduce a stored record to one locale
  import   load a per-locale markdown tree into records`,
	}
	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "i18n.yaml", "config file")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(
		newExpandCmd(opts),
		newProjectCmd(opts),
		newImportCmd(opts),
	)
	return root
}

func (o *rootOptions) load() (betteri18n.ConfigFile, error) {
	file, err := betteri18n.LoadConfig(o.configFile)
	if err != nil {
		return betteri18n.ConfigFile{}, err
	}
	if o.verbose {
		file.Features.Logger = true
	}
	return file, nil
}
