package definition

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed forms/*.yaml
var embeddedForms embed.FS

const defaultPath = "forms/closed_deal.yaml"

var (
	defaultOnce sync.Once
	defaultDef  Definition
	defaultErr  error
)

// EmbeddedFS exposes the bundled definitions.
func EmbeddedFS() fs.FS {
	return embeddedForms
}

// Default returns the bundled closed-deal onboarding definition. The embed
// directive guarantees the file exists, so a failure here is a programming
// error and panics.
func Default() Definition {
	defaultOnce.Do(func() {
		defaultDef, defaultErr = LoadFS(embeddedForms, defaultPath)
	})
	if defaultErr != nil {
		panic(defaultErr)
	}
	return clone(defaultDef)
}

func clone(def Definition) Definition {
	out := def
	out.Steps = make([]Step, len(def.Steps))
	for i, step := range def.Steps {
		step.Fields = append([]Field(nil), step.Fields...)
		for j := range step.Fields {
			step.Fields[j].Options = append([]Option(nil), step.Fields[j].Options...)
		}
		out.Steps[i] = step
	}
	out.Discriminant.Dependents = append([]string(nil), def.Discriminant.Dependents...)
	return out
}
