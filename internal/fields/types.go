package fields

import "github.com/goliatone/go-better-i18n/internal/document"

// SelectorFieldName is the storage slot of the locale selector control.
const SelectorFieldName = "better_i18n_locale"

// Kind tags the structural shape of a field node.
type Kind string

const (
	KindLeaf      Kind = "leaf"
	KindContainer Kind = "container"
	KindTabs      Kind = "tabs"
)

// Field is a node of a collection schema tree.
type Field struct {
	Name         string   `json:"name,omitempty" yaml:"name,omitempty"`
	Label        string   `json:"label,omitempty" yaml:"label,omitempty"`
	Type         string   `json:"type" yaml:"type"`
	Required     bool     `json:"required,omitempty" yaml:"required,omitempty"`
	Virtual      bool     `json:"virtual,omitempty" yaml:"virtual,omitempty"`
	DefaultValue any      `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	Options      []Option `json:"options,omitempty" yaml:"options,omitempty"`
	Fields       []Field  `json:"fields,omitempty" yaml:"fields,omitempty"`
	Tabs         []Tab    `json:"tabs,omitempty" yaml:"tabs,omitempty"`
	Custom       Custom   `json:"custom" yaml:"custom,omitempty"`
	Admin        Admin    `json:"admin" yaml:"admin,omitempty"`
}

// Tab groups fields inside a tabs container. Named tabs store their data
// under Name, unnamed tabs share the parent level.
type Tab struct {
	Name   string  `json:"name,omitempty" yaml:"name,omitempty"`
	Label  string  `json:"label,omitempty" yaml:"label,omitempty"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// Option is a selectable value of a select field.
type Option struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Custom carries annotations owned by this package.
type Custom struct {
	Localizable bool `json:"localizable,omitempty" yaml:"localizable,omitempty"`
}

// Admin carries editor presentation settings.
type Admin struct {
	Position    string    `json:"position,omitempty" yaml:"position,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Condition   Condition `json:"-" yaml:"-"`
}

// ConditionContext is the editor state a visibility condition is evaluated against.
type ConditionContext struct {
	Data        document.Document
	SiblingData document.Document
	User        any
}

// Condition decides whether a field is visible for the given editor state.
type Condition func(ctx ConditionContext) bool

// Localizable reports whether the field carries the localizable annotation.
func (f Field) Localizable() bool {
	return f.Custom.Localizable
}

// Kind resolves the structural shape of the field.
func (f Field) Kind() Kind {
	switch f.Type {
	case "tabs":
		return KindTabs
	case "array", "group", "row", "collapsible", "blocks":
		return KindContainer
	}
	switch {
	case len(f.Tabs) > 0:
		return KindTabs
	case len(f.Fields) > 0:
		return KindContainer
	default:
		return KindLeaf
	}
}

// Visible evaluates the admin condition, treating a missing condition as visible.
func (f Field) Visible(ctx ConditionContext) bool {
	if f.Admin.Condition == nil {
		return true
	}
	return f.Admin.Condition(ctx)
}

// Warning records a schema annotation that was ignored during validation.
type Warning struct {
	Field   string
	Path    string
	Message string
}

func (w Warning) String() string {
	return w.Message
}
