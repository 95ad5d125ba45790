package config

import "time"

const (
	envPort          = "PORT"
	envPollInterval  = "POLL_INTERVAL"
	envPollEnabled   = "POLL_ENABLED"
	envProvider      = "PROVIDER"
	envDataDir       = "DATA_DIR"
	envDataBaseURL   = "DATA_BASE_URL"
	envSiteConfig    = "SITE_CONFIG"
	envRefreshOnView = "REFRESH_ON_VIEW"
	envWatchDataDir  = "WATCH_DATA_DIR"
	envMetricsPort   = "METRICS_PORT"
	envMetricsOn     = "METRICS_ENABLED"
	envOtelEndpoint  = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService   = "OTEL_SERVICE_NAME"
	envOtelInsecure  = "OTEL_EXPORTER_OTLP_INSECURE"
	envAdminToken    = "ADMIN_TOKEN"

	defaultPort = "4000"
	// The JSON files are regenerated a few times a day; five minutes keeps pages fresh without hammering the host.
	defaultPollInterval = 5 * Duration(time.Minute)
	defaultPollEnabled  = true
	defaultProvider     = ProviderFile
	defaultDataDir      = "data"
	defaultSiteConfig   = "config/site.yaml"
	defaultMetricsPort  = "9090"
	defaultServiceName  = "cfp-rankings-service"
)

// Provider names accepted by PROVIDER.
const (
	ProviderFile = "file"
	ProviderHTTP = "http"
)
