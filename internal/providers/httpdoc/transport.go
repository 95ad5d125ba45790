package httpdoc

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

func resolveHTTPClient(client *http.Client) httpDoer {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}

func normalizeBaseURL(raw string) string {
	return strings.TrimSuffix(strings.TrimSpace(raw), "/")
}

// withCacheBuster appends a per-request query parameter so no intermediary serves a cached copy.
func withCacheBuster(target *url.URL, at time.Time) {
	q := target.Query()
	q.Set(cacheBustParam, strconv.FormatInt(at.UnixNano(), 10))
	target.RawQuery = q.Encode()
}
