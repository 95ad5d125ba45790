package config

import "strings"

// Config holds runtime configuration for the server.
type Config struct {
	Port           string
	PollInterval   Duration
	PollEnabled    bool
	Provider       string
	DataDir        string
	DataBaseURL    string
	SiteConfigPath string
	RefreshOnView  bool
	WatchDataDir   bool
	AdminToken     string
	Metrics        MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:           envOrDefault(envPort, defaultPort),
		PollInterval:   durationEnvOrDefault(envPollInterval, defaultPollInterval),
		PollEnabled:    boolEnvOrDefault(envPollEnabled, defaultPollEnabled),
		Provider:       normalizeProvider(envOrDefault(envProvider, defaultProvider)),
		DataDir:        envOrDefault(envDataDir, defaultDataDir),
		DataBaseURL:    envOrDefault(envDataBaseURL, ""),
		SiteConfigPath: envOrDefault(envSiteConfig, defaultSiteConfig),
		RefreshOnView:  boolEnvOrDefault(envRefreshOnView, true),
		WatchDataDir:   boolEnvOrDefault(envWatchDataDir, true),
		AdminToken:     envOrDefault(envAdminToken, ""),
		Metrics:        loadMetrics(),
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case ProviderHTTP:
		return ProviderHTTP
	default:
		return ProviderFile
	}
}
