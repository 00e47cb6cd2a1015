package fields

import (
	"fmt"
	"strconv"
)

// Validate returns a copy of fields where every localizable flag nested under a
// localizable ancestor is cleared. One warning is recorded per cleared flag.
// The input tree is not modified and field/tab order is preserved.
func Validate(fields []Field, parentIsLocalizable bool) ([]Field, []Warning) {
	var warnings []Warning
	out := validate(fields, parentIsLocalizable, "", &warnings)
	return out, warnings
}

func validate(fields []Field, parentIsLocalizable bool, prefix string, warnings *[]Warning) []Field {
	if fields == nil {
		return nil
	}
	out := make([]Field, len(fields))
	for i, field := range fields {
		cleaned := field
		path := joinPath(prefix, field.Name, i)

		if parentIsLocalizable && field.Localizable() {
			*warnings = append(*warnings, Warning{
				Field: field.Name,
				Path:  path,
				Message: fmt.Sprintf(
					"field %q is marked as localizable but its parent is already localizable; the child's localizable property will be ignored",
					field.Name,
				),
			})
			cleaned.Custom.Localizable = false
		}

		childLocalizable := cleaned.Localizable() || parentIsLocalizable

		switch cleaned.Kind() {
		case KindContainer:
			cleaned.Fields = validate(field.Fields, childLocalizable, path, warnings)
		case KindTabs:
			if field.Tabs != nil {
				tabs := make([]Tab, len(field.Tabs))
				for t, tab := range field.Tabs {
					tabs[t] = tab
					tabs[t].Fields = validate(tab.Fields, childLocalizable, joinPath(path, tab.Name, t), warnings)
				}
				cleaned.Tabs = tabs
			}
			if field.Fields != nil {
				cleaned.Fields = validate(field.Fields, childLocalizable, path, warnings)
			}
		}

		out[i] = cleaned
	}
	return out
}

func joinPath(prefix, name string, index int) string {
	segment := name
	if segment == "" {
		segment = "[" + strconv.Itoa(index) + "]"
	}
	if prefix == "" {
		return segment
	}
	return prefix + "." + segment
}
