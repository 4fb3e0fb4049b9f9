package contract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formsteps/pkg/definition"
	"github.com/goliatone/go-formsteps/pkg/format"
)

// DefaultPath is used by Document when no path is given.
const DefaultPath = "/webhook/closed-deal"

// Schema describes the submission payload of def: one string property per
// field, enums for select and choice fields, a length cap for masked fields,
// and no additional properties. Fields required by the definition are listed
// as required unless they depend on the discriminant or carry a visibleWhen
// rule, since those are only present for some answers.
func Schema(def definition.Definition) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	schema.Title = def.Title
	schema.AdditionalProperties = openapi3.AdditionalProperties{Has: openapi3.BoolPtr(false)}

	dependents := make(map[string]struct{}, len(def.Discriminant.Dependents))
	for _, id := range def.Discriminant.Dependents {
		dependents[id] = struct{}{}
	}

	var required []string
	for _, step := range def.Steps {
		for _, field := range step.Fields {
			schema.WithProperty(field.ID, fieldSchema(field))

			_, conditional := dependents[field.ID]
			if conditional || field.VisibleWhen != "" {
				continue
			}
			if field.Required || field.Kind == definition.KindChoice {
				required = append(required, field.ID)
			}
		}
	}
	schema.Required = required
	return schema
}

func fieldSchema(field definition.Field) *openapi3.Schema {
	prop := openapi3.NewStringSchema()
	prop.Title = field.Label

	switch field.Kind {
	case definition.KindSelect, definition.KindChoice:
		values := make([]any, 0, len(field.Options))
		for _, opt := range field.Options {
			values = append(values, opt.Value)
		}
		prop.WithEnum(values...)
	}

	if pattern, ok := maskFor(field.Format); ok {
		prop.WithMaxLength(int64(utf8.RuneCountInString(pattern)))
		prop.Description = "Formatted as " + pattern
	}
	return prop
}

func maskFor(rule string) (string, bool) {
	switch rule {
	case format.RuleCPF:
		return format.MaskCPF, true
	case format.RuleCNPJ:
		return format.MaskCNPJ, true
	case format.RuleCEP:
		return format.MaskCEP, true
	}
	return "", false
}

// Document wraps Schema in an OpenAPI 3.0.3 document exposing a single POST
// operation at path. The document is validated before it is returned.
func Document(ctx context.Context, def definition.Definition, path string) (*openapi3.T, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = DefaultPath
	}
	if !strings.HasPrefix(path, "/") {
		return nil, fmt.Errorf("contract: path %q must start with /", path)
	}

	title := def.Title
	if title == "" {
		title = def.ID
	}
	if title == "" {
		return nil, errors.New("contract: definition needs an id or title")
	}

	receipt := openapi3.NewObjectSchema().
		WithProperty("received", openapi3.NewBoolSchema()).
		WithProperty("id", openapi3.NewStringSchema())

	op := openapi3.NewOperation()
	op.OperationID = "submit_" + def.ID
	op.Summary = "Submit " + title
	op.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().
			WithRequired(true).
			WithDescription("Non-empty field values keyed by field id.").
			WithJSONSchema(Schema(def)),
	}
	op.Responses = openapi3.NewResponses(
		openapi3.WithStatus(200, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().
				WithDescription("Submission accepted.").
				WithJSONSchema(receipt),
		}),
		openapi3.WithStatus(422, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("Payload does not match the form."),
		}),
	)

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   title,
			Version: "1.0.0",
		},
		Paths: openapi3.NewPaths(openapi3.WithPath(path, &openapi3.PathItem{Post: op})),
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("contract: validate document: %w", err)
	}
	return doc, nil
}
