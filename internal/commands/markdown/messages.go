package markdowncmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const importDirectoryMessageType = "i18n.markdown.import_directory"

// ImportDirectoryCommand imports a per-locale markdown tree into a collection.
type ImportDirectoryCommand struct {
	// Directory is resolved against the importer filesystem root.
	Directory string `json:"directory"`
	// Collection must match the importer's collection when set.
	Collection string `json:"collection,omitempty"`
	DryRun     bool   `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (ImportDirectoryCommand) Type() string { return importDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd ImportDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("i18n.markdown.import_directory.directory_required", "directory is required")
			}
			return nil
		})),
		validation.Field(&cmd.Collection, validation.By(func(value any) error {
			raw := value.(string)
			if raw != "" && strings.TrimSpace(raw) == "" {
				return validation.NewError("i18n.markdown.import_directory.collection_blank", "collection must not be blank")
			}
			return nil
		})),
	)
}
