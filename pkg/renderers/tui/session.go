package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formsteps/pkg/definition"
	"github.com/goliatone/go-formsteps/pkg/form"
	"github.com/goliatone/go-formsteps/pkg/render"
	"github.com/goliatone/go-formsteps/pkg/renderers/text"
	"github.com/goliatone/go-formsteps/pkg/sequencer"
	"github.com/goliatone/go-formsteps/pkg/submit"
	"github.com/goliatone/go-formsteps/pkg/summary"
	"github.com/goliatone/go-formsteps/pkg/validation"
)

// Session drives a sequencer from a terminal. It is also the sequencer's
// observer: notifications are queued and printed before the next prompt, so
// register it with sequencer.WithObserver before calling Run.
type Session struct {
	driver     PromptDriver
	theme      Theme
	labels     Labels
	renderer   render.Renderer
	renderOpts render.RenderOptions
	logger     *zap.Logger

	pending []string
	agg     summary.Aggregate
	started bool
}

var _ sequencer.Observer = (*Session)(nil)

// New constructs a Session with defaults (survey driver, text summary).
func New(options ...Option) *Session {
	s := &Session{
		driver:   NewSurveyDriver(nil),
		labels:   DefaultLabels(),
		renderer: text.New(),
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Run prompts step by step until a submission succeeds, returning its result.
// Quitting from a menu or interrupting a prompt returns ErrAborted.
func (s *Session) Run(ctx context.Context, seq *sequencer.Sequencer) (submit.Result, error) {
	if seq == nil {
		return submit.Result{}, ErrNoSequencer
	}
	if !s.started {
		s.started = true
		s.StepEntered(seq.Step())
		s.ProgressChanged(seq.Current(), seq.Len(), seq.Progress())
	}

	for {
		if err := ctx.Err(); err != nil {
			return submit.Result{}, err
		}
		if err := s.flush(ctx); err != nil {
			return submit.Result{}, err
		}

		if !seq.IsLast() {
			if err := s.promptStep(ctx, seq); err != nil {
				return submit.Result{}, err
			}
			if err := s.flush(ctx); err != nil {
				return submit.Result{}, err
			}
			if err := s.navigate(ctx, seq); err != nil {
				return submit.Result{}, err
			}
			continue
		}

		result, done, err := s.review(ctx, seq)
		if err != nil {
			return submit.Result{}, err
		}
		if done {
			if err := s.flush(ctx); err != nil {
				return submit.Result{}, err
			}
			return result, nil
		}
	}
}

func (s *Session) promptStep(ctx context.Context, seq *sequencer.Sequencer) error {
	f := seq.Form()
	for _, field := range f.Fields(seq.Current()) {
		// visibility may change while the step is being filled
		if !field.Visible {
			continue
		}
		if err := s.promptField(ctx, seq, field); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) promptField(ctx context.Context, seq *sequencer.Sequencer, field *form.Field) error {
	message := s.theme.PromptPrefix + field.Label()

	switch field.Kind() {
	case definition.KindSelect, definition.KindChoice:
		options := field.Options()
		values := make([]string, 0, len(options)+1)
		labels := make([]string, 0, len(options)+1)
		if field.Kind() == definition.KindSelect && !field.Required {
			values = append(values, "")
			labels = append(labels, "-")
		}
		for _, opt := range options {
			values = append(values, opt.Value)
			labels = append(labels, opt.Label)
		}

		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      labels,
			DefaultIndex: indexOf(values, field.Value),
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(values) {
			return fmt.Errorf("tui: field %q: selection %d out of range", field.ID(), idx)
		}
		return seq.Dispatch(ctx, sequencer.FieldChanged{Field: field.ID(), Value: values[idx]})
	default:
		cfg := InputConfig{Message: message, Default: field.Value}
		if field.Required {
			cfg.Validator = s.requiredValidator(field.Label())
		}
		raw, err := s.driver.Input(ctx, cfg)
		if err != nil {
			return err
		}
		if err := seq.Dispatch(ctx, sequencer.FieldChanged{Field: field.ID(), Value: raw}); err != nil {
			return err
		}
		s.logger.Debug("field captured", zap.String("field", field.ID()), zap.String("value", field.Value))
		return nil
	}
}

func (s *Session) requiredValidator(label string) func(string) error {
	return func(answer string) error {
		if strings.TrimSpace(answer) == "" {
			return errors.New(fmt.Sprintf(s.labels.Required, label))
		}
		return nil
	}
}

type action int

const (
	actionNext action = iota
	actionBack
	actionSubmit
	actionEdit
	actionReset
	actionQuit
)

type menuEntry struct {
	label  string
	action action
	target int
}

func (s *Session) navigate(ctx context.Context, seq *sequencer.Sequencer) error {
	entries := []menuEntry{{label: s.labels.Next, action: actionNext}}
	if seq.Current() > 0 {
		entries = append(entries, menuEntry{label: s.labels.Back, action: actionBack})
	}
	entries = append(entries,
		menuEntry{label: s.labels.Reset, action: actionReset},
		menuEntry{label: s.labels.Quit, action: actionQuit},
	)

	entry, err := s.choose(ctx, entries)
	if err != nil {
		return err
	}
	switch entry.action {
	case actionNext:
		return seq.Dispatch(ctx, sequencer.AdvanceRequested{})
	case actionBack:
		return seq.Dispatch(ctx, sequencer.RetreatRequested{})
	case actionReset:
		return s.reset(ctx, seq)
	case actionQuit:
		return ErrAborted
	}
	return nil
}

func (s *Session) reset(ctx context.Context, seq *sequencer.Sequencer) error {
	confirmed, err := s.driver.Confirm(ctx, ConfirmConfig{Message: s.labels.Confirm})
	if err != nil {
		return err
	}
	if !confirmed {
		return nil
	}
	return seq.Dispatch(ctx, sequencer.ResetRequested{})
}

func (s *Session) review(ctx context.Context, seq *sequencer.Sequencer) (submit.Result, bool, error) {
	agg, ok := seq.Summary()
	if !ok {
		agg = s.agg
	}
	out, err := s.renderer.Render(ctx, agg, s.renderOpts)
	if err != nil {
		return submit.Result{}, false, fmt.Errorf("tui: render summary: %w", err)
	}
	if err := s.driver.Info(ctx, strings.TrimRight(string(out), "\n")); err != nil {
		return submit.Result{}, false, err
	}

	entries := []menuEntry{{label: s.labels.Submit, action: actionSubmit}}
	for _, section := range agg.Sections {
		entries = append(entries, menuEntry{
			label:  fmt.Sprintf(s.labels.EditStep, section.Title),
			action: actionEdit,
			target: section.EditTarget,
		})
	}
	entries = append(entries,
		menuEntry{label: s.labels.Back, action: actionBack},
		menuEntry{label: s.labels.Reset, action: actionReset},
		menuEntry{label: s.labels.Quit, action: actionQuit},
	)

	entry, err := s.choose(ctx, entries)
	if err != nil {
		return submit.Result{}, false, err
	}
	switch entry.action {
	case actionSubmit:
		result := seq.Submit(ctx)
		return result, result.OK(), nil
	case actionEdit:
		return submit.Result{}, false, seq.Dispatch(ctx, sequencer.JumpRequested{Target: entry.target})
	case actionBack:
		return submit.Result{}, false, seq.Dispatch(ctx, sequencer.RetreatRequested{})
	case actionReset:
		return submit.Result{}, false, s.reset(ctx, seq)
	case actionQuit:
		return submit.Result{}, false, ErrAborted
	}
	return submit.Result{}, false, nil
}

func (s *Session) choose(ctx context.Context, entries []menuEntry) (menuEntry, error) {
	options := make([]string, len(entries))
	for i, entry := range entries {
		options[i] = entry.label
	}
	idx, err := s.driver.Select(ctx, SelectConfig{
		Message: s.theme.PromptPrefix + s.labels.Navigate,
		Options: options,
	})
	if err != nil {
		return menuEntry{}, err
	}
	if idx < 0 || idx >= len(entries) {
		return menuEntry{}, fmt.Errorf("tui: menu selection %d out of range", idx)
	}
	return entries[idx], nil
}

func (s *Session) flush(ctx context.Context) error {
	pending := s.pending
	s.pending = nil
	for _, msg := range pending {
		if err := s.driver.Info(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) info(msg string) {
	s.pending = append(s.pending, s.theme.InfoPrefix+msg)
}

func (s *Session) fail(msg string) {
	s.pending = append(s.pending, s.theme.ErrorPrefix+msg)
}

// StepExited implements sequencer.Observer.
func (s *Session) StepExited(form.Step) {}

// StepEntered implements sequencer.Observer.
func (s *Session) StepEntered(step form.Step) {
	s.info(step.Title)
}

// ProgressChanged implements sequencer.Observer.
func (s *Session) ProgressChanged(current, total int, fraction float64) {
	s.info(fmt.Sprintf("[%d/%d] %.0f%%", current+1, total, fraction*100))
}

// ValidationFailed implements sequencer.Observer.
func (s *Session) ValidationFailed(result validation.Result) {
	for _, issue := range result.Issues {
		s.fail(fmt.Sprintf(s.labels.Required, issue.Label))
	}
}

// SummaryReady implements sequencer.Observer.
func (s *Session) SummaryReady(agg summary.Aggregate) {
	s.agg = agg
}

// SubmissionFinished implements sequencer.Observer.
func (s *Session) SubmissionFinished(result submit.Result) {
	if result.OK() {
		s.info(result.Message)
		return
	}
	s.fail(result.Message)
	if result.Detail != nil {
		s.logger.Warn("submission failed", zap.Error(result.Detail))
	}
}

func indexOf(values []string, value string) int {
	for i, v := range values {
		if v == value {
			return i
		}
	}
	return -1
}
