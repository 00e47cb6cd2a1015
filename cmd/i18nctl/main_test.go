package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testConfig = `
default_locale: en
i18n:
  enabled: true
  locales: [en, fr]
storage:
  provider: memory
collections:
  - slug: articles
    fields:
      - name: title
        type: text
        custom:
          localizable: true
      - name: body
        type: richText
        custom:
          localizable: true
      - name: author
        type: text
`

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestExpandPrintsLocalizedFields(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "i18n.yaml")
	writeFile(t, configPath, testConfig)

	out, _, err := run(t, "", "expand", "--config", configPath)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}

	var decoded struct {
		Collections []struct {
			Fields []struct {
				Name string `json:"name"`
			} `json:"fields"`
		} `json:"collections"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	var names []string
	for _, field := range decoded.Collections[0].Fields {
		names = append(names, field.Name)
	}
	if strings.Join(names, ",") != "title_en,title_fr,body_en,body_fr,author,better_i18n_locale" {
		t.Fatalf("unexpected fields %v", names)
	}
}

func TestProjectReadsStdin(t *testing.T) {
	out, _, err := run(t, `{"title_en":"Hello","title_fr":"Bonjour","author":"ada"}`,
		"project", "--locale", "fr", "--locales", "en,fr")
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	compact := strings.Join(strings.Fields(out), "")
	if compact != `{"title":"Bonjour","author":"ada"}` {
		t.Fatalf("unexpected projection %s", out)
	}
}

func TestProjectRequiresLocale(t *testing.T) {
	if _, _, err := run(t, "{}", "project", "--locales", "en"); err == nil {
		t.Fatal("expected missing locale flag error")
	}
}

func TestProjectEmptyLocalePrintsRecordUnchanged(t *testing.T) {
	out, _, err := run(t, `{"a_":1,"title_en":"Hello","b":2}`, "project", "--locale=", "--locales", "en,fr")
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	compact := strings.Join(strings.Fields(out), "")
	if compact != `{"a_":1,"title_en":"Hello","b":2}` {
		t.Fatalf("expected record unchanged, got %s", out)
	}
}

func TestImportDryRunReportsRecords(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "i18n.yaml")
	writeFile(t, configPath, testConfig)
	content := filepath.Join(dir, "content")
	writeFile(t, filepath.Join(content, "en", "hello.md"), "---\ntitle: Hello\n---\nHi\n")
	writeFile(t, filepath.Join(content, "fr", "hello.md"), "---\ntitle: Bonjour\n---\nSalut\n")
	writeFile(t, filepath.Join(content, "de", "hello.md"), "---\ntitle: Hallo\n---\n")

	out, _, err := run(t, "", "import", "--config", configPath, "--content-dir", content, "--collection", "articles", "--dry-run")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "would import 1 record(s) from 2 file(s) into articles") {
		t.Fatalf("unexpected summary %q", out)
	}
	if !strings.Contains(out, "skipped: de") {
		t.Fatalf("expected skipped de directory, got %q", out)
	}
}

func TestImportRequiresCollection(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "i18n.yaml")
	writeFile(t, configPath, testConfig)

	if _, _, err := run(t, "", "import", "--config", configPath, "--content-dir", dir); err == nil {
		t.Fatal("expected validation error without a collection")
	}
}
