// Package httpdoc fetches season documents over HTTP with caching disabled.
package httpdoc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/preston-bernstein/cfp-rankings-service/internal/config"
	"github.com/preston-bernstein/cfp-rankings-service/internal/providers"
)

// Config controls where relative source paths resolve and which client is used.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
}

// Client issues one GET per fetch. It does not retry.
type Client struct {
	baseURL    string
	httpClient httpDoer
	now        func() time.Time
}

// NewClient constructs a Client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		now:        time.Now,
	}
}

// FetchDocument retrieves and decodes the source's JSON document.
func (c *Client) FetchDocument(ctx context.Context, source config.Source) (providers.RawDocument, error) {
	req, err := c.buildRequest(ctx, source)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", source.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorSnippetBytes))
		return nil, &providers.LoadError{
			Source:     source.Name,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	return providers.DecodeDocument(source.Name, resp.Body)
}

func (c *Client) buildRequest(ctx context.Context, source config.Source) (*http.Request, error) {
	target, err := c.resolveURL(source)
	if err != nil {
		return nil, err
	}
	withCacheBuster(target, c.now())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache, no-store")
	req.Header.Set("Pragma", "no-cache")
	return req, nil
}

func (c *Client) resolveURL(source config.Source) (*url.URL, error) {
	raw := strings.TrimSpace(source.URL)
	if raw == "" {
		if c.baseURL == "" {
			return nil, fmt.Errorf("source %s: no url and no base url configured", source.Name)
		}
		if source.Path == "" {
			return nil, errors.New("source " + source.Name + ": no path")
		}
		raw = c.baseURL + "/" + strings.TrimPrefix(source.Path, "/")
	}
	target, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("source %s: invalid url: %w", source.Name, err)
	}
	if target.Scheme != "http" && target.Scheme != "https" {
		return nil, fmt.Errorf("source %s: unsupported url scheme %q", source.Name, target.Scheme)
	}
	return target, nil
}
