package projection_test

import (
	"encoding/json"
	"slices"
	"sync"
	"testing"

	"github.com/goliatone/go-better-i18n/internal/document"
	"github.com/goliatone/go-better-i18n/internal/fields"
	"github.com/goliatone/go-better-i18n/internal/locales"
	"github.com/goliatone/go-better-i18n/internal/projection"
)

var regional = []locales.Locale{
	{Code: "en-gb", Label: "English"},
	{Code: "fr-fr", Label: "French"},
}

func encode(t *testing.T, doc document.Document) string {
	t.Helper()
	out, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(out)
}

func TestProject(t *testing.T) {
	tests := []struct {
		name    string
		locales []locales.Locale
		locale  string
		input   string
		want    string
	}{
		{
			name:    "matched key takes the position of its suffixed key",
			locales: regional,
			locale:  "fr-fr",
			input:   `{"id":"1","title_en-gb":"Hello","title_fr-fr":"Bonjour","slug":"hello"}`,
			want:    `{"id":"1","title":"Bonjour","slug":"hello"}`,
		},
		{
			name:    "mixed locale siblings",
			locales: regional,
			locale:  "fr-fr",
			input:   `{"title_en-gb":"Hello","title_fr-fr":"Bonjour","description_en-gb":"Only english"}`,
			want:    `{"title":"Bonjour"}`,
		},
		{
			name:    "deep nesting",
			locales: regional,
			locale:  "en-gb",
			input:   `{"layout":[{"title_en-gb":"S1","items":[{"name_en-gb":"I1"}]}]}`,
			want:    `{"layout":[{"title":"S1","items":[{"name":"I1"}]}]}`,
		},
		{
			name:    "unknown locale keeps base keys only",
			locales: locales.Normalize([]string{"en", "fr"}),
			locale:  "es",
			input:   `{"title_en":"T","id":"1"}`,
			want:    `{"id":"1"}`,
		},
		{
			name:    "empty and null leaves are preserved",
			locales: locales.Normalize([]string{"en", "fr"}),
			locale:  "en",
			input:   `{"title_en":"","description_en":null,"tags_en":[]}`,
			want:    `{"title":"","description":null,"tags":[]}`,
		},
		{
			name:    "selector slot never appears",
			locales: locales.Normalize([]string{"en", "fr"}),
			locale:  "en",
			input:   `{"better_i18n_locale":"fr","title_en":"A","meta":{"better_i18n_locale":"en","x":1}}`,
			want:    `{"title":"A","meta":{"x":1}}`,
		},
		{
			name:    "suffix of an unconfigured code passes through",
			locales: locales.Normalize([]string{"en", "fr"}),
			locale:  "en",
			input:   `{"path_de":"/de","title_en":"A"}`,
			want:    `{"path_de":"/de","title":"A"}`,
		},
		{
			name:    "arrays of arrays and scalars",
			locales: locales.Normalize([]string{"en", "fr"}),
			locale:  "fr",
			input:   `{"grid":[[{"cell_fr":"a","cell_en":"b"}],[1,"two",null]]}`,
			want:    `{"grid":[[{"cell":"a"}],[1,"two",null]]}`,
		},
		{
			name:    "empty locale means no projection",
			locales: locales.Normalize([]string{"en", "fr"}),
			locale:  "",
			input:   `{"a_":1,"b":2,"title_en":"A"}`,
			want:    `{"a_":1,"b":2,"title_en":"A"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := projection.Project(document.MustDecode(tc.input), tc.locales, tc.locale)
			if encoded := encode(t, got); encoded != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, encoded)
			}
		})
	}
}

func TestProjectWalksValuesStoredFromGoTypes(t *testing.T) {
	list := locales.Normalize([]string{"en", "fr"})

	tests := []struct {
		name  string
		key   string
		value any
		want  string
	}{
		{
			name:  "plain map",
			key:   "meta",
			value: map[string]any{"title_en": "E", "title_fr": "F"},
			want:  `{"meta":{"title":"E"}}`,
		},
		{
			name:  "document slice",
			key:   "blocks",
			value: []document.Document{document.MustDecode(`{"h_en":"E","h_fr":"F"}`)},
			want:  `{"blocks":[{"h":"E"}]}`,
		},
		{
			name:  "map slice",
			key:   "items",
			value: []map[string]any{{"name_fr": "Un", "name_en": "One"}},
			want:  `{"items":[{"name":"One"}]}`,
		},
		{
			name:  "maps nested in any slice",
			key:   "grid",
			value: []any{map[string]any{"cell_en": "a", "cell_fr": "b"}, "x"},
			want:  `{"grid":[{"cell":"a"},"x"]}`,
		},
		{
			name:  "document pointer",
			key:   "seo",
			value: func() *document.Document { d := document.MustDecode(`{"d_en":"E","d_fr":"F"}`); return &d }(),
			want:  `{"seo":{"d":"E"}}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stored := document.New()
			stored.Set(tc.key, tc.value)
			if encoded := encode(t, projection.Project(stored, list, "en")); encoded != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, encoded)
			}
		})
	}
}

func TestProjectEmptyLocaleReturnsCopy(t *testing.T) {
	input := `{"a_":1,"b":2,"title_en":"T","better_i18n_locale":"en"}`
	doc := document.MustDecode(input)

	got := projection.Project(doc, locales.Normalize([]string{"en", "fr"}), " ")
	if encoded := encode(t, got); encoded != input {
		t.Fatalf("expected unchanged copy, got %s", encoded)
	}
	got.Set("b", 3)
	if encode(t, doc) != input {
		t.Fatalf("copy must not share storage with its input")
	}
}

func TestMergeWithoutLocaleKeepsStored(t *testing.T) {
	schema := []fields.Field{{Name: "title", Type: "text", Custom: fields.Custom{Localizable: true}}}
	stored := document.MustDecode(`{"title_en":"Hello"}`)

	merged := projection.Merge(stored, document.MustDecode(`{"title":"Hola"}`), schema, "")
	if got := encode(t, merged); got != `{"title_en":"Hello"}` {
		t.Fatalf("expected stored record, got %s", got)
	}
}

func TestMergeViewBuiltFromPlainMaps(t *testing.T) {
	schema := []fields.Field{
		{Name: "meta", Type: "group", Fields: []fields.Field{
			{Name: "title", Type: "text", Custom: fields.Custom{Localizable: true}},
		}},
	}
	stored := document.MustDecode(`{"meta":{"title_en":"Hello"}}`)
	view := document.New()
	view.Set("meta", map[string]any{"title": "Bonjour"})

	merged := projection.Merge(stored, view, schema, "fr")
	if got := encode(t, merged); got != `{"meta":{"title_en":"Hello","title_fr":"Bonjour"}}` {
		t.Fatalf("unexpected merge %s", got)
	}
}

func TestProjectRoundTrip(t *testing.T) {
	list := locales.Normalize([]string{"en", "fr", "de"})
	logical := []string{"title", "summary", "body"}

	stored := document.New()
	stored.Set("id", "42")
	for _, key := range logical {
		for _, locale := range list {
			stored.Set(locales.Key(key, locale.Code), key+"-"+locale.Code)
		}
	}

	for _, locale := range list {
		got := projection.Project(stored, list, locale.Code)
		if keys := got.Keys(); !slices.Equal(keys, append([]string{"id"}, logical...)) {
			t.Fatalf("%s: unexpected keys %v", locale.Code, keys)
		}
		for _, key := range logical {
			if want := key + "-" + locale.Code; got.String(key) != want {
				t.Fatalf("%s: expected %s=%q, got %q", locale.Code, key, want, got.String(key))
			}
		}
	}
}

func TestProjectIsIdempotentOnBaseKeys(t *testing.T) {
	doc := document.MustDecode(`{"id":"1","slug":"hello","meta":{"views":3,"tags":["a","b"]},"blocks":[{"kind":"text"}]}`)
	for _, locale := range []string{"en-gb", "fr-fr", "xx"} {
		got := projection.Project(doc, regional, locale)
		if !document.Equal(doc, got) {
			t.Fatalf("%s: expected unchanged document, got %s", locale, encode(t, got))
		}
		again := projection.Project(got, regional, locale)
		if !document.Equal(got, again) {
			t.Fatalf("%s: projection is not stable", locale)
		}
	}
}

func TestProjectDoesNotMutateInput(t *testing.T) {
	input := `{"title_en-gb":"Hello","layout":[{"heading_fr-fr":"Salut"}],"better_i18n_locale":"en-gb"}`
	doc := document.MustDecode(input)

	_ = projection.Project(doc, regional, "fr-fr")

	if !document.Equal(doc, document.MustDecode(input)) {
		t.Fatalf("input mutated: %s", encode(t, doc))
	}
}

func TestProjectIsSafeForConcurrentReads(t *testing.T) {
	stored := document.MustDecode(`{"title_en-gb":"Hello","title_fr-fr":"Bonjour","items":[{"name_en-gb":"One","name_fr-fr":"Un"}]}`)
	want := map[string]string{
		"en-gb": `{"title":"Hello","items":[{"name":"One"}]}`,
		"fr-fr": `{"title":"Bonjour","items":[{"name":"Un"}]}`,
	}

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for i := 0; i < 32; i++ {
		locale := regional[i%2].Code
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := json.Marshal(projection.Project(stored, regional, locale))
			if err != nil {
				errs <- err.Error()
				return
			}
			if string(out) != want[locale] {
				errs <- locale + ": " + string(out)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for msg := range errs {
		t.Fatalf("unexpected projection %s", msg)
	}
}

func TestMergeWritesOneLocale(t *testing.T) {
	schema := []fields.Field{
		{Name: "slug", Type: "text"},
		{Name: "title", Type: "text", Custom: fields.Custom{Localizable: true}},
		{
			Name: "layout",
			Type: "array",
			Fields: []fields.Field{
				{Name: "heading", Type: "text", Custom: fields.Custom{Localizable: true}},
				{Name: "image", Type: "upload"},
			},
		},
		{
			Type: "tabs",
			Tabs: []fields.Tab{
				{Name: "seo", Fields: []fields.Field{
					{Name: "description", Type: "textarea", Custom: fields.Custom{Localizable: true}},
				}},
			},
		},
	}
	stored := document.MustDecode(`{"slug":"hello","title_en-gb":"Hello","layout":[{"heading_en-gb":"Intro","image":"a.png"}],"seo":{"description_en-gb":"English description"}}`)
	view := document.MustDecode(`{"better_i18n_locale":"fr-fr","title":"Bonjour","layout":[{"heading":"Introduction","image":"b.png"}],"seo":{"description":"Description française"},"extra":true}`)

	merged := projection.Merge(stored, view, schema, "fr-fr")

	want := `{"slug":"hello","title_en-gb":"Hello","layout":[{"heading_en-gb":"Intro","image":"b.png","heading_fr-fr":"Introduction"}],"seo":{"description_en-gb":"English description","description_fr-fr":"Description française"},"title_fr-fr":"Bonjour","extra":true}`
	if got := encode(t, merged); got != want {
		t.Fatalf("expected %s\n got %s", want, got)
	}
	if stored.Has("title_fr-fr") {
		t.Fatalf("stored record mutated")
	}

	back := projection.Project(merged, regional, "fr-fr")
	if back.String("title") != "Bonjour" || back.String("slug") != "hello" {
		t.Fatalf("unexpected projection after merge %s", encode(t, back))
	}
}

func TestLocalizeSuffixesOnlySchemaFields(t *testing.T) {
	schema := []fields.Field{
		{Name: "title", Type: "text", Custom: fields.Custom{Localizable: true}},
		{Name: "author", Type: "text"},
	}
	view := document.MustDecode(`{"title":"Hola","author":"Ana","unknown":1,"better_i18n_locale":"es"}`)

	got := projection.Localize(view, schema, "es")
	if want := `{"title_es":"Hola","author":"Ana","unknown":1}`; encode(t, got) != want {
		t.Fatalf("expected %s, got %s", want, encode(t, got))
	}
}
