package tui

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-formsteps/pkg/render"
)

// Theme captures optional formatting hints the session applies when printing
// messages. Keep minimal to avoid coupling session logic to ANSI specifics.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
}

// Labels are the menu entries shown by the session.
type Labels struct {
	Next     string
	Back     string
	Submit   string
	EditStep string // formatted with the section title
	Reset    string
	Quit     string
	Navigate string
	Required string // formatted with the field label
	Confirm  string
}

// DefaultLabels returns the pt-BR menu entries.
func DefaultLabels() Labels {
	return Labels{
		Next:     "Avançar",
		Back:     "Voltar",
		Submit:   "Enviar",
		EditStep: "Editar %s",
		Reset:    "Limpar formulário",
		Quit:     "Sair",
		Navigate: "O que deseja fazer?",
		Required: "Preencha o campo %s",
		Confirm:  "Apagar todas as respostas?",
	}
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithLabels replaces the menu entries.
func WithLabels(labels Labels) Option {
	return func(s *Session) {
		s.labels = labels
	}
}

// WithSummaryRenderer selects the renderer used to print the summary.
func WithSummaryRenderer(renderer render.Renderer, opts render.RenderOptions) Option {
	return func(s *Session) {
		if renderer != nil {
			s.renderer = renderer
		}
		s.renderOpts = opts
	}
}

// WithLogger sets the logger used for session diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}
