package fields

// CollectLocalizable returns the localizable fields of the tree in depth-first
// order. Descent stops at a localizable field, so its children are never
// collected on their own.
func CollectLocalizable(fields []Field) []Field {
	var found []Field
	var visit func(field Field)
	visit = func(field Field) {
		if field.Localizable() {
			found = append(found, field)
			return
		}
		switch field.Kind() {
		case KindContainer:
			for _, child := range field.Fields {
				visit(child)
			}
		case KindTabs:
			for _, child := range field.Fields {
				visit(child)
			}
			for _, tab := range field.Tabs {
				for _, child := range tab.Fields {
					visit(child)
				}
			}
		}
	}
	for _, field := range fields {
		visit(field)
	}
	return found
}

// HasLocalizable reports whether any field of the tree is localizable.
func HasLocalizable(fields []Field) bool {
	return len(CollectLocalizable(fields)) > 0
}
