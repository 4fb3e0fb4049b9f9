package definition

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formsteps/pkg/visibility/expr"
)

// ErrInvalid wraps every structural problem found in a definition document.
var ErrInvalid = errors.New("definition: invalid")

// Parse decodes a JSON or YAML definition and validates it. source is only
// used in error messages.
func Parse(data []byte, source string) (Definition, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Definition{}, fmt.Errorf("%w: %s is empty", ErrInvalid, source)
	}

	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		def = Definition{}
		if yamlErr := yaml.Unmarshal(data, &def); yamlErr != nil {
			return Definition{}, fmt.Errorf("definition: parse %s: invalid JSON or YAML: %w", source, yamlErr)
		}
	}
	def.Source = source

	normalise(&def)
	if err := Validate(def); err != nil {
		return Definition{}, err
	}
	return def, nil
}

// LoadFile reads and parses a definition from disk.
func LoadFile(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("definition: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS reads and parses a definition from fsys.
func LoadFS(fsys fs.FS, path string) (Definition, error) {
	if fsys == nil {
		return Definition{}, errors.New("definition: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Definition{}, fmt.Errorf("definition: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Validate checks the structural rules the runtime relies on.
func Validate(def Definition) error {
	if len(def.Steps) < 2 {
		return fmt.Errorf("%w: %s needs at least two steps, got %d", ErrInvalid, sourceName(def), len(def.Steps))
	}

	steps := make(map[string]struct{}, len(def.Steps))
	fields := make(map[string]Field)
	for idx, step := range def.Steps {
		if step.ID == "" {
			return fmt.Errorf("%w: %s step %d has an empty id", ErrInvalid, sourceName(def), idx)
		}
		if _, exists := steps[step.ID]; exists {
			return fmt.Errorf("%w: %s defines duplicate step %q", ErrInvalid, sourceName(def), step.ID)
		}
		steps[step.ID] = struct{}{}

		for _, field := range step.Fields {
			if field.ID == "" {
				return fmt.Errorf("%w: %s step %q has a field with an empty id", ErrInvalid, sourceName(def), step.ID)
			}
			if _, exists := fields[field.ID]; exists {
				return fmt.Errorf("%w: %s defines duplicate field %q", ErrInvalid, sourceName(def), field.ID)
			}
			switch field.Kind {
			case KindText:
			case KindSelect, KindChoice:
				if len(field.Options) == 0 {
					return fmt.Errorf("%w: %s field %q of kind %s has no options", ErrInvalid, sourceName(def), field.ID, field.Kind)
				}
			default:
				return fmt.Errorf("%w: %s field %q has unknown kind %q", ErrInvalid, sourceName(def), field.ID, field.Kind)
			}
			fields[field.ID] = field
		}
	}

	if err := validateRules(def, fields); err != nil {
		return err
	}

	disc := def.Discriminant
	if !disc.Enabled() {
		return nil
	}
	field, ok := fields[disc.Field]
	if !ok {
		return fmt.Errorf("%w: %s discriminant field %q not found", ErrInvalid, sourceName(def), disc.Field)
	}
	if field.Kind != KindChoice {
		return fmt.Errorf("%w: %s discriminant field %q must be a choice, got %s", ErrInvalid, sourceName(def), disc.Field, field.Kind)
	}
	if !field.HasOption(disc.Individual) {
		return fmt.Errorf("%w: %s discriminant value %q is not an option of %q", ErrInvalid, sourceName(def), disc.Individual, disc.Field)
	}
	for _, dep := range disc.Dependents {
		if _, ok := fields[dep]; !ok {
			return fmt.Errorf("%w: %s dependent field %q not found", ErrInvalid, sourceName(def), dep)
		}
		if dep == disc.Field {
			return fmt.Errorf("%w: %s discriminant %q cannot depend on itself", ErrInvalid, sourceName(def), dep)
		}
	}
	return nil
}

func validateRules(def Definition, fields map[string]Field) error {
	for _, step := range def.Steps {
		for _, field := range step.Fields {
			if field.VisibleWhen == "" {
				continue
			}
			program, err := expr.Compile(field.VisibleWhen)
			if err != nil {
				return fmt.Errorf("%w: %s field %q visibleWhen: %w", ErrInvalid, sourceName(def), field.ID, err)
			}
			for _, ref := range program.Fields() {
				if ref == field.ID {
					return fmt.Errorf("%w: %s field %q visibleWhen refers to itself", ErrInvalid, sourceName(def), field.ID)
				}
				if _, ok := fields[ref]; !ok {
					return fmt.Errorf("%w: %s field %q visibleWhen refers to unknown field %q", ErrInvalid, sourceName(def), field.ID, ref)
				}
			}
		}
	}
	return nil
}

func normalise(def *Definition) {
	def.ID = strings.TrimSpace(def.ID)
	for i := range def.Steps {
		step := &def.Steps[i]
		step.ID = strings.TrimSpace(step.ID)
		for j := range step.Fields {
			field := &step.Fields[j]
			field.ID = strings.TrimSpace(field.ID)
			field.Format = strings.TrimSpace(strings.ToLower(field.Format))
			if field.Kind == "" {
				field.Kind = KindText
			}
			if field.Label == "" {
				field.Label = field.ID
			}
		}
	}
	def.Discriminant.Field = strings.TrimSpace(def.Discriminant.Field)
	for i, dep := range def.Discriminant.Dependents {
		def.Discriminant.Dependents[i] = strings.TrimSpace(dep)
	}
}

func sourceName(def Definition) string {
	if def.Source != "" {
		return def.Source
	}
	if def.ID != "" {
		return def.ID
	}
	return "definition"
}
