package sequencer

import (
	"github.com/goliatone/go-formsteps/pkg/form"
	"github.com/goliatone/go-formsteps/pkg/submit"
	"github.com/goliatone/go-formsteps/pkg/summary"
	"github.com/goliatone/go-formsteps/pkg/validation"
)

// Observer receives the notifications a presentation layer needs. Calls are
// made synchronously from the goroutine driving the Sequencer; a transition
// is complete once StepEntered returns.
type Observer interface {
	StepExited(step form.Step)
	StepEntered(step form.Step)
	ProgressChanged(current, total int, fraction float64)
	ValidationFailed(result validation.Result)
	SummaryReady(agg summary.Aggregate)
	SubmissionFinished(result submit.Result)
}

// NopObserver ignores every notification.
type NopObserver struct{}

func (NopObserver) StepExited(form.Step) {}
func (NopObserver) StepEntered(form.Step) {}
func (NopObserver) ProgressChanged(int, int, float64) {}
func (NopObserver) ValidationFailed(validation.Result) {}
func (NopObserver) SummaryReady(summary.Aggregate) {}
func (NopObserver) SubmissionFinished(submit.Result) {}

// ObserverFuncs adapts optional callbacks into an Observer. Nil callbacks are
// skipped.
type ObserverFuncs struct {
	OnStepExited         func(step form.Step)
	OnStepEntered        func(step form.Step)
	OnProgressChanged    func(current, total int, fraction float64)
	OnValidationFailed   func(result validation.Result)
	OnSummaryReady       func(agg summary.Aggregate)
	OnSubmissionFinished func(result submit.Result)
}

func (o ObserverFuncs) StepExited(step form.Step) {
	if o.OnStepExited != nil {
		o.OnStepExited(step)
	}
}

func (o ObserverFuncs) StepEntered(step form.Step) {
	if o.OnStepEntered != nil {
		o.OnStepEntered(step)
	}
}

func (o ObserverFuncs) ProgressChanged(current, total int, fraction float64) {
	if o.OnProgressChanged != nil {
		o.OnProgressChanged(current, total, fraction)
	}
}

func (o ObserverFuncs) ValidationFailed(result validation.Result) {
	if o.OnValidationFailed != nil {
		o.OnValidationFailed(result)
	}
}

func (o ObserverFuncs) SummaryReady(agg summary.Aggregate) {
	if o.OnSummaryReady != nil {
		o.OnSummaryReady(agg)
	}
}

func (o ObserverFuncs) SubmissionFinished(result submit.Result) {
	if o.OnSubmissionFinished != nil {
		o.OnSubmissionFinished(result)
	}
}

// Observers fans notifications out to several observers in order.
func Observers(observers ...Observer) Observer {
	out := make(multiObserver, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

type multiObserver []Observer

func (m multiObserver) StepExited(step form.Step) {
	for _, o := range m {
		o.StepExited(step)
	}
}

func (m multiObserver) StepEntered(step form.Step) {
	for _, o := range m {
		o.StepEntered(step)
	}
}

func (m multiObserver) ProgressChanged(current, total int, fraction float64) {
	for _, o := range m {
		o.ProgressChanged(current, total, fraction)
	}
}

func (m multiObserver) ValidationFailed(result validation.Result) {
	for _, o := range m {
		o.ValidationFailed(result)
	}
}

func (m multiObserver) SummaryReady(agg summary.Aggregate) {
	for _, o := range m {
		o.SummaryReady(agg)
	}
}

func (m multiObserver) SubmissionFinished(result submit.Result) {
	for _, o := range m {
		o.SubmissionFinished(result)
	}
}
