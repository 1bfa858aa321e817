package recipe

import (
	"context"
	stderrors "errors"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"time"

	"github.com/arthur-debert/quicken/pkg/errors"
)

// DefaultFetchTimeout bounds remote recipe downloads when no timeout is set
const DefaultFetchTimeout = 30 * time.Second

// maxRecipeSize caps remote recipe bodies
const maxRecipeSize = 4 << 20

// IsRemote reports whether source is an http or https URL
func IsRemote(source string) bool {
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// Read returns the raw recipe document at source
func (p *Parser) Read(ctx context.Context, source string) ([]byte, error) {
	if IsRemote(source) {
		return p.fetch(ctx, source)
	}

	path := source
	if u, err := url.Parse(source); err == nil && u.Scheme == "file" {
		path = u.Path
	}

	content, err := p.fs.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(err, errors.ErrFileNotFound, "recipe %s not found", path).
				WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrRecipeFetch, "reading recipe %s", path).
			WithDetail("path", path)
	}
	return content, nil
}

func (p *Parser) fetch(ctx context.Context, source string) ([]byte, error) {
	timeout := p.fetchTimeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRecipeFetch, "invalid recipe URL %s", source).
			WithDetail("url", source)
	}
	req.Header.Set("Accept", "application/yaml, text/yaml, text/plain, */*")

	p.logger.Debug().Str("url", source).Dur("timeout", timeout).Msg("fetching remote recipe")
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRecipeFetch, "fetching recipe %s", source).
			WithDetail("url", source)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Newf(errors.ErrRecipeFetch, "fetching recipe %s: %s", source, resp.Status).
			WithDetail("url", source).
			WithDetail("status", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRecipeSize+1))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRecipeFetch, "reading recipe %s", source).
			WithDetail("url", source)
	}
	if len(body) > maxRecipeSize {
		return nil, errors.Newf(errors.ErrRecipeFetch, "recipe %s is larger than %d bytes", source, maxRecipeSize).
			WithDetail("url", source)
	}
	return body, nil
}
