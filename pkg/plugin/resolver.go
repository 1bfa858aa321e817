package plugin

import (
	"regexp"
	"sync"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/quicken/pkg/errors"
	"github.com/arthur-debert/quicken/pkg/logging"
	"github.com/arthur-debert/quicken/pkg/registry"
	"github.com/arthur-debert/quicken/pkg/types"
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Loader provides plugins that are not statically registered
type Loader interface {
	// Load returns the factory for name. A loader that does not know name
	// returns a plugin_not_found error.
	Load(name string) (Factory, error)
	// List returns the names the loader can provide
	List() ([]string, error)
	// Source labels the loader in listings
	Source() string
}

// Available describes a plugin a Resolver can provide
type Available struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

// ResolverOptions configures a Resolver
type ResolverOptions struct {
	// Registry defaults to the static registry
	Registry registry.Registry[Factory]
	Loaders  []Loader
	Logger   *zerolog.Logger
}

type loadResult struct {
	factory Factory
	source  string
	err     error
}

// Resolver turns step names into configurations
type Resolver struct {
	registry registry.Registry[Factory]
	loaders  []Loader
	logger   zerolog.Logger

	mu    sync.Mutex
	cache map[string]loadResult
}

// NewResolver creates a resolver
func NewResolver(opts ResolverOptions) *Resolver {
	reg := opts.Registry
	if reg == nil {
		reg = builtins
	}
	return &Resolver{
		registry: reg,
		loaders:  opts.Loaders,
		logger:   logging.OrNop(opts.Logger),
		cache:    make(map[string]loadResult),
	}
}

// ValidateName checks that name can identify a plugin
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return errors.Newf(errors.ErrPluginNotFound, "invalid plugin name %q", name).
			WithDetail("plugin", name)
	}
	return nil
}

// Resolve finds the factory for name and pairs it with the normalized args.
// The static registry wins over loaders. A loader is asked about a given name
// at most once; later lookups reuse the first outcome.
func (r *Resolver) Resolve(name string, args types.Value) (Configuration, error) {
	if err := ValidateName(name); err != nil {
		return Configuration{}, err
	}

	normalized, err := args.WithCanonicalKeys()
	if err != nil {
		return Configuration{}, err
	}

	if factory, ok := r.registry.Lookup(name); ok {
		r.logger.Trace().Str("plugin", name).Msg("resolved builtin plugin")
		return Configuration{Name: name, Args: normalized, Factory: factory, Source: SourceBuiltin}, nil
	}

	res := r.load(name)
	if res.err != nil {
		return Configuration{}, res.err
	}
	return Configuration{Name: name, Args: normalized, Factory: res.factory, Source: res.source}, nil
}

func (r *Resolver) load(name string) loadResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	if res, ok := r.cache[name]; ok {
		return res
	}

	res := loadResult{
		err: errors.Newf(errors.ErrPluginNotFound, "plugin %s not found", name).WithDetail("plugin", name),
	}
	for _, loader := range r.loaders {
		factory, err := loader.Load(name)
		if errors.IsErrorCode(err, errors.ErrPluginNotFound) {
			continue
		}
		if err != nil {
			if !errors.IsCoded(err) {
				err = errors.Wrapf(err, errors.ErrPluginLoad, "loading plugin %s", name)
			}
			r.logger.Debug().Err(err).Str("plugin", name).Str("source", loader.Source()).Msg("plugin failed to load")
			res = loadResult{err: err}
			break
		}
		r.logger.Debug().Str("plugin", name).Str("source", loader.Source()).Msg("loaded plugin")
		res = loadResult{factory: factory, source: loader.Source()}
		break
	}

	r.cache[name] = res
	return res
}

// Available lists every plugin the resolver can provide, registry first.
// Loader names shadowed by the registry are left out.
func (r *Resolver) Available() ([]Available, error) {
	var out []Available
	seen := make(map[string]bool)
	for _, name := range r.registry.List() {
		seen[name] = true
		out = append(out, Available{Name: name, Source: SourceBuiltin})
	}
	for _, loader := range r.loaders {
		names, err := loader.List()
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			if seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, Available{Name: name, Source: loader.Source()})
		}
	}
	return out, nil
}
