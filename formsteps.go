package formsteps

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/goliatone/go-formsteps/pkg/definition"
	"github.com/goliatone/go-formsteps/pkg/form"
	"github.com/goliatone/go-formsteps/pkg/format"
	"github.com/goliatone/go-formsteps/pkg/render"
	"github.com/goliatone/go-formsteps/pkg/renderers/html"
	"github.com/goliatone/go-formsteps/pkg/renderers/text"
	"github.com/goliatone/go-formsteps/pkg/sequencer"
	"github.com/goliatone/go-formsteps/pkg/submit"
	"github.com/goliatone/go-formsteps/pkg/summary"
	"github.com/goliatone/go-formsteps/pkg/transport/webhook"
)

// Definition aliases definition.Definition for callers that only use the
// root package.
type Definition = definition.Definition

// RenderOptions aliases render.RenderOptions.
type RenderOptions = render.RenderOptions

// Option configures New.
type Option func(*config)

type config struct {
	def        *Definition
	defPath    string
	transport  submit.Transport
	webhookURL string
	webhook    []webhook.Option
	formats    *format.Registry
	observer   sequencer.Observer
	logger     *zap.Logger
	tracer     trace.Tracer
}

// WithDefinition replaces the embedded closed-deal definition.
func WithDefinition(def Definition) Option {
	return func(c *config) {
		c.def = &def
	}
}

// WithDefinitionFile loads the definition from a YAML or JSON file.
func WithDefinitionFile(path string) Option {
	return func(c *config) {
		c.defPath = path
	}
}

// WithTransport sets the delivery collaborator. It takes precedence over
// WithWebhook.
func WithTransport(transport submit.Transport) Option {
	return func(c *config) {
		c.transport = transport
	}
}

// WithWebhook delivers submissions as a JSON POST to url.
func WithWebhook(url string, opts ...webhook.Option) Option {
	return func(c *config) {
		c.webhookURL = url
		c.webhook = append(c.webhook, opts...)
	}
}

// WithFormats supplies a formatter registry with custom rules.
func WithFormats(registry *format.Registry) Option {
	return func(c *config) {
		c.formats = registry
	}
}

// WithObserver registers the presentation layer.
func WithObserver(observer sequencer.Observer) Option {
	return func(c *config) {
		c.observer = observer
	}
}

// WithLogger sets the logger shared by every collaborator.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithTracer sets the tracer used for submission spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *config) {
		c.tracer = tracer
	}
}

// New assembles a sequencer for the configured definition. Without a
// transport or webhook URL, submissions fail with submit.ErrNoTransport.
func New(options ...Option) (*sequencer.Sequencer, error) {
	cfg := config{logger: zap.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	def, err := cfg.definition()
	if err != nil {
		return nil, err
	}
	f, err := form.New(def)
	if err != nil {
		return nil, fmt.Errorf("formsteps: %w", err)
	}

	transport := cfg.transport
	if transport == nil && cfg.webhookURL != "" {
		opts := append([]webhook.Option{webhook.WithLogger(cfg.logger)}, cfg.webhook...)
		client, err := webhook.New(cfg.webhookURL, opts...)
		if err != nil {
			return nil, fmt.Errorf("formsteps: %w", err)
		}
		transport = client
	}

	coordinatorOpts := []submit.Option{
		submit.WithLogger(cfg.logger),
		submit.WithMessages(def.Messages),
	}
	if cfg.tracer != nil {
		coordinatorOpts = append(coordinatorOpts, submit.WithTracer(cfg.tracer))
	}

	seqOpts := []sequencer.Option{
		sequencer.WithLogger(cfg.logger),
		sequencer.WithCoordinator(submit.NewCoordinator(transport, coordinatorOpts...)),
		sequencer.WithSummaryBuilder(summary.NewBuilder(summary.WithLogger(cfg.logger))),
	}
	if cfg.formats != nil {
		seqOpts = append(seqOpts, sequencer.WithFormats(cfg.formats))
	}
	if cfg.observer != nil {
		seqOpts = append(seqOpts, sequencer.WithObserver(cfg.observer))
	}
	return sequencer.New(f, seqOpts...)
}

func (c config) definition() (Definition, error) {
	switch {
	case c.def != nil && c.defPath != "":
		return Definition{}, errors.New("formsteps: definition and definition file are mutually exclusive")
	case c.def != nil:
		if err := definition.Validate(*c.def); err != nil {
			return Definition{}, fmt.Errorf("formsteps: %w", err)
		}
		return *c.def, nil
	case c.defPath != "":
		def, err := definition.LoadFile(c.defPath)
		if err != nil {
			return Definition{}, fmt.Errorf("formsteps: %w", err)
		}
		return def, nil
	default:
		return definition.Default(), nil
	}
}

// NewRenderRegistry returns a registry holding the html and text summary
// renderers. html options customise the html renderer.
func NewRenderRegistry(opts ...html.Option) (*render.Registry, error) {
	htmlRenderer, err := html.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("formsteps: %w", err)
	}
	return render.NewRegistry(htmlRenderer, text.New())
}

// RenderSummary renders the sequencer's current summary with the named
// renderer. It fails when the terminal step has not been reached yet.
func RenderSummary(ctx context.Context, seq *sequencer.Sequencer, registry *render.Registry, name string, opts RenderOptions) ([]byte, string, error) {
	if seq == nil || registry == nil {
		return nil, "", errors.New("formsteps: sequencer and registry are required")
	}
	agg, ok := seq.Summary()
	if !ok {
		return nil, "", errors.New("formsteps: summary is not available before the last step")
	}
	return registry.Render(ctx, name, agg, opts)
}
