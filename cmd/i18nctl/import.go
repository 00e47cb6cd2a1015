package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	betteri18n "github.com/goliatone/go-better-i18n"
	"github.com/goliatone/go-better-i18n/internal/di"
)

type importOptions struct {
	contentDir string
	collection string
	bodyField  string
	storage    string
	dsn        string
	dryRun     bool
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	flags := &importOptions{}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load a per-locale markdown tree into records",
		Long: `Imports <content-dir>/<locale>/**/*.md. Files sharing a slug across
locale directories become one record holding every locale.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, err := opts.load()
			if err != nil {
				return err
			}

			cfg := file.Config
			cfg.Features.Markdown = true
			cfg.Markdown.Enabled = true
			if flags.contentDir != "" {
				cfg.Markdown.ContentDir = flags.contentDir
			}
			if flags.collection != "" {
				cfg.Markdown.Collection = flags.collection
			}
			if flags.bodyField != "" {
				cfg.Markdown.BodyField = flags.bodyField
			}
			if flags.storage != "" {
				cfg.Storage.Provider = flags.storage
			}
			if flags.dsn != "" {
				cfg.Storage.DSN = flags.dsn
			}

			module, err := betteri18n.New(cfg, file.Host(), di.WithMarkdownFS(os.DirFS(cfg.Markdown.ContentDir)))
			if err != nil {
				return err
			}
			defer module.Close()

			result, err := module.ImportMarkdown(cmd.Context(), ".", flags.dryRun)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			verb := "imported"
			if flags.dryRun {
				verb = "would import"
			}
			fmt.Fprintf(out, "%s %d record(s) from %d file(s) into %s\n", verb, len(result.Records), result.Files, cfg.Markdown.Collection)
			if len(result.Records) > 0 {
				fmt.Fprintf(out, "  records: %s\n", strings.Join(result.Records, ", "))
			}
			for _, skipped := range result.Skipped {
				fmt.Fprintf(out, "  skipped: %s\n", skipped)
			}
			for _, fileErr := range result.Errors {
				fmt.Fprintf(cmd.ErrOrStderr(), "  error: %v\n", fileErr)
			}
			if len(result.Errors) > 0 {
				return fmt.Errorf("%d file(s) failed", len(result.Errors))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.contentDir, "content-dir", "", "markdown root (defaults to markdown.content_dir)")
	cmd.Flags().StringVar(&flags.collection, "collection", "", "target collection (defaults to markdown.collection)")
	cmd.Flags().StringVar(&flags.bodyField, "body-field", "", "field receiving the rendered body")
	cmd.Flags().StringVar(&flags.storage, "storage", "", "memory, sqlite or postgres")
	cmd.Flags().StringVar(&flags.dsn, "dsn", "", "storage dsn")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "parse and group files without writing")
	return cmd
}
