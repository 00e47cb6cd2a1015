package fields

// Always is the condition used when a field has none.
func Always(ConditionContext) bool { return true }

// Combine joins an optional original condition with an extra one. A nil
// original behaves like Always so callers never branch on presence.
func Combine(original, extra Condition) Condition {
	if original == nil {
		original = Always
	}
	if extra == nil {
		return original
	}
	return func(ctx ConditionContext) bool {
		return original(ctx) && extra(ctx)
	}
}

// LocaleIs matches editor state whose selector value equals code.
func LocaleIs(code string) Condition {
	return func(ctx ConditionContext) bool {
		value, ok := ctx.Data.Get(SelectorFieldName)
		if !ok {
			return false
		}
		selected, ok := value.(string)
		return ok && selected == code
	}
}
