package format

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Built-in rule names.
const (
	RuleCPF        = "cpf"
	RuleCNPJ       = "cnpj"
	RuleCEP        = "cep"
	RuleCapitalize = "capitalize"
)

var (
	// ErrUnknownRule is returned by Apply when no rule is registered under the
	// requested name.
	ErrUnknownRule = errors.New("format: unknown rule")
	// ErrDuplicateRule is returned by Register for a name already in use.
	ErrDuplicateRule = errors.New("format: rule already registered")
)

// Func normalises one raw input value.
type Func func(raw string) string

// Registry stores formatting rules by name. The zero value is not usable; use
// NewRegistry.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Func
}

// NewRegistry returns a registry with the built-in masks and capitalisation
// registered.
func NewRegistry() *Registry {
	reg := &Registry{rules: make(map[string]Func)}
	reg.registerBuiltins()
	return reg
}

// Register adds a rule. Names are case-insensitive.
func (r *Registry) Register(name string, fn Func) error {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || fn == nil {
		return errors.New("format: rule name and function required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rules[key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateRule, key)
	}
	r.rules[key] = fn
	return nil
}

// Has reports whether a rule is registered.
func (r *Registry) Has(name string) bool {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rules[key]
	return ok
}

// Apply runs the named rule over raw. An empty name leaves raw untouched.
func (r *Registry) Apply(name, raw string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return raw, nil
	}

	r.mu.RLock()
	fn, ok := r.rules[key]
	r.mu.RUnlock()
	if !ok {
		return raw, fmt.Errorf("%w: %q", ErrUnknownRule, key)
	}
	return fn(raw), nil
}

// List returns the registered rule names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.rules))
	for name := range r.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MaskFunc adapts a mask template into a Func.
func MaskFunc(pattern string) Func {
	return func(raw string) string {
		return Mask(raw, pattern)
	}
}

func (r *Registry) registerBuiltins() {
	r.rules[RuleCPF] = MaskFunc(MaskCPF)
	r.rules[RuleCNPJ] = MaskFunc(MaskCNPJ)
	r.rules[RuleCEP] = MaskFunc(MaskCEP)
	r.rules[RuleCapitalize] = CapitalizeWords
}
