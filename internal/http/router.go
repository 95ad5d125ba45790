package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/cfp-rankings-service/internal/http/handlers"
	"github.com/preston-bernstein/cfp-rankings-service/internal/pages"
)

// NewRouter registers the service routes and one route per configured page.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler, sitePages []pages.Page) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/api/sources/{name}", handler.Document)
	mux.HandleFunc("/refresh", handler.Refresh)
	if admin != nil {
		mux.HandleFunc("/admin/refresh", admin.RefreshAll)
	}
	for _, p := range sitePages {
		pattern := p.Path
		if pattern == "/" {
			pattern = "/{$}"
		}
		mux.Handle(pattern, handler.Page(p))
	}
	mux.HandleFunc("/", handler.NotFound)
	return mux
}
