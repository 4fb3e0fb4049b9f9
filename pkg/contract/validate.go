package contract

import (
	"errors"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Issue is one schema violation, located by field id when possible.
type Issue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Result captures the outcome of validating a payload.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Validate checks payload against schema and reports every violation.
func Validate(schema *openapi3.Schema, payload map[string]string) Result {
	result := Result{Valid: true}
	if schema == nil {
		return result
	}

	value := make(map[string]any, len(payload))
	for key, v := range payload {
		value[key] = v
	}

	err := schema.VisitJSON(value, openapi3.MultiErrors())
	if err == nil {
		return result
	}

	result.Valid = false
	for _, e := range flatten(err) {
		result.Issues = append(result.Issues, issueFromError(e))
	}
	sort.SliceStable(result.Issues, func(i, j int) bool {
		return result.Issues[i].Field < result.Issues[j].Field
	})
	return result
}

func flatten(err error) []error {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		var out []error
		for _, e := range multi {
			out = append(out, flatten(e)...)
		}
		return out
	}
	return []error{err}
}

func issueFromError(err error) Issue {
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		field := fieldFromPointer(schemaErr.JSONPointer())
		message := strings.TrimSpace(schemaErr.Reason)
		if field == "" {
			field = quotedProperty(message)
		}
		return Issue{Field: field, Message: message}
	}
	return Issue{Message: strings.TrimSpace(err.Error())}
}

func fieldFromPointer(pointer []string) string {
	out := make([]string, 0, len(pointer))
	for _, segment := range pointer {
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		if segment != "" {
			out = append(out, segment)
		}
	}
	return strings.Join(out, ".")
}

// quotedProperty extracts the property name from reasons such as
// `property "x" is missing`.
func quotedProperty(reason string) string {
	start := strings.Index(reason, `"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(reason[start+1:], `"`)
	if end < 0 {
		return ""
	}
	return reason[start+1 : start+1+end]
}
