package validation

import (
	"errors"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid    = errors.New("schema invalid")
	ErrSchemaValidation = errors.New("schema validation failed")
)

// Issue is one schema violation. Location is a JSON pointer into the
// record, empty for the record root.
type Issue struct {
	Location string
	Message  string
}

func (i Issue) String() string {
	location := "#" + strings.TrimPrefix(strings.TrimSpace(i.Location), "#")
	if i.Message == "" {
		return location
	}
	return location + ": " + i.Message
}

// DocumentError reports every violation found in one record. It matches
// ErrSchemaValidation with errors.Is.
type DocumentError struct {
	Issues []Issue
	Cause  error
}

func (e *DocumentError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return strings.Join(parts, "; ")
}

func (e *DocumentError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues lists the violations carried by err. Errors that are not schema
// failures come back as a single root issue holding their message.
func Issues(err error) []Issue {
	if err == nil {
		return nil
	}
	var docErr *DocumentError
	if errors.As(err, &docErr) {
		return docErr.Issues
	}
	var schemaErr *jsonschema.ValidationError
	if errors.As(err, &schemaErr) {
		return leafIssues(schemaErr)
	}
	return []Issue{{Message: err.Error()}}
}

// leafIssues flattens the cause tree of a jsonschema failure to its leaves,
// which name the offending value instead of the keyword that aggregated it.
func leafIssues(root *jsonschema.ValidationError) []Issue {
	var out []Issue
	stack := []*jsonschema.ValidationError{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(node.Causes) == 0 {
			out = append(out, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			continue
		}
		for i := len(node.Causes) - 1; i >= 0; i-- {
			if node.Causes[i] != nil {
				stack = append(stack, node.Causes[i])
			}
		}
	}
	return out
}
