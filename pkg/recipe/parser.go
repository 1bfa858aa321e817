package recipe

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/quicken/pkg/filesystem"
	"github.com/arthur-debert/quicken/pkg/logging"
	"github.com/arthur-debert/quicken/pkg/plugin"
	"github.com/arthur-debert/quicken/pkg/types"
)

// Resolver maps a step to its plugin configuration
type Resolver interface {
	Resolve(name string, args types.Value) (plugin.Configuration, error)
}

// Options configures a Parser. Zero values pick the OS filesystem, the
// default HTTP client and the static plugin registry.
type Options struct {
	Resolver     Resolver
	FS           filesystem.FS
	HTTPClient   *http.Client
	FetchTimeout time.Duration
	Logger       *zerolog.Logger
}

// Parser reads recipes and resolves their steps
type Parser struct {
	resolver     Resolver
	fs           filesystem.FS
	client       *http.Client
	fetchTimeout time.Duration
	logger       zerolog.Logger
}

// NewParser creates a Parser
func NewParser(opts Options) *Parser {
	p := &Parser{
		resolver:     opts.Resolver,
		fs:           opts.FS,
		client:       opts.HTTPClient,
		fetchTimeout: opts.FetchTimeout,
		logger:       logging.OrNop(opts.Logger),
	}
	if p.resolver == nil {
		p.resolver = plugin.NewResolver(plugin.ResolverOptions{Logger: opts.Logger})
	}
	if p.fs == nil {
		p.fs = filesystem.NewOS()
	}
	if p.client == nil {
		p.client = http.DefaultClient
	}
	return p
}

// Parse loads the recipe at source and resolves every step, in order. The
// first failing step aborts parsing; resolver errors are returned as is.
func (p *Parser) Parse(ctx context.Context, source string) ([]plugin.Configuration, error) {
	p.logger.Debug().Str("source", source).Msg("loading recipe")
	content, err := p.Read(ctx, source)
	if err != nil {
		return nil, err
	}
	return p.ParseContent(content)
}

// ParseContent resolves the steps of an already loaded recipe
func (p *Parser) ParseContent(content []byte) ([]plugin.Configuration, error) {
	steps, err := ParseSteps(content)
	if err != nil {
		return nil, err
	}

	configs := make([]plugin.Configuration, 0, len(steps))
	for _, step := range steps {
		cfg, err := p.resolver.Resolve(step.Name, step.Args)
		if err != nil {
			p.logger.Debug().Err(err).Int("step", step.Index).Int("line", step.Line).Str("plugin", step.Name).Msg("step did not resolve")
			return nil, err
		}
		cfg.Line = step.Line
		configs = append(configs, cfg)
	}

	p.logger.Debug().Int("steps", len(configs)).Msg("recipe parsed")
	return configs, nil
}
