package markdowncmd

import (
	"errors"
	"testing"
)

type recordingRegistry struct {
	handlers []any
	err      error
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	if r.err != nil {
		return r.err
	}
	r.handlers = append(r.handlers, handler)
	return nil
}

func TestRegisterMarkdownCommandsRegistersImportHandler(t *testing.T) {
	reg := &recordingRegistry{}
	set, err := RegisterMarkdownCommands(reg, &stubImporter{collection: "articles"}, nil, FeatureGates{})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if set == nil || set.Import == nil {
		t.Fatal("expected import handler")
	}
	if len(reg.handlers) != 1 || reg.handlers[0] != set.Import {
		t.Fatalf("expected import handler to be registered, got %v", reg.handlers)
	}
}

func TestRegisterMarkdownCommandsWithoutRegistry(t *testing.T) {
	set, err := RegisterMarkdownCommands(nil, &stubImporter{collection: "articles"}, nil, FeatureGates{})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if set.Import == nil {
		t.Fatal("expected handler even without registry")
	}
}

func TestRegisterMarkdownCommandsErrors(t *testing.T) {
	if _, err := RegisterMarkdownCommands(nil, nil, nil, FeatureGates{}); err == nil {
		t.Fatal("expected error for nil importer")
	}
	failure := errors.New("registry down")
	if _, err := RegisterMarkdownCommands(&recordingRegistry{err: failure}, &stubImporter{}, nil, FeatureGates{}); !errors.Is(err, failure) {
		t.Fatalf("expected registry error, got %v", err)
	}
}
