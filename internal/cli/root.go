// Package cli implements the cfpctl commands.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/cfp-rankings-service/internal/config"
	"github.com/preston-bernstein/cfp-rankings-service/internal/logging"
	"github.com/preston-bernstein/cfp-rankings-service/internal/providers"
	"github.com/preston-bernstein/cfp-rankings-service/internal/providers/factory"
)

// buildProvider is swapped in tests.
var buildProvider = func(cfg config.Config, logger *slog.Logger) providers.DocumentProvider {
	return factory.New(logger, nil).Build(cfg)
}

// env is what every subcommand needs once flags are parsed.
type env struct {
	cfg      config.Config
	site     config.Site
	logger   *slog.Logger
	provider providers.DocumentProvider
}

type rootFlags struct {
	site     string
	provider string
	dataDir  string
	baseURL  string
	logLevel string
}

// NewRootCommand builds cfpctl. Defaults come from the same environment variables the server reads.
func NewRootCommand(version string) *cobra.Command {
	cfg := config.Load()
	flags := &rootFlags{
		site:     cfg.SiteConfigPath,
		provider: cfg.Provider,
		dataDir:  cfg.DataDir,
		baseURL:  cfg.DataBaseURL,
		logLevel: os.Getenv("LOG_LEVEL"),
	}
	if flags.logLevel == "" {
		flags.logLevel = "warn"
	}

	root := &cobra.Command{
		Use:           "cfpctl",
		Short:         "Render, print and validate CFP season documents",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&flags.site, "site", flags.site, "site config file (sources and pages)")
	pf.StringVar(&flags.provider, "provider", flags.provider, "document provider: file or http")
	pf.StringVar(&flags.dataDir, "data-dir", flags.dataDir, "directory holding source JSON for the file provider")
	pf.StringVar(&flags.baseURL, "base-url", flags.baseURL, "base URL for the http provider")
	pf.StringVar(&flags.logLevel, "log-level", flags.logLevel, "log level: debug, info, warn or error")

	load := func(cmd *cobra.Command) (*env, error) {
		c := cfg
		c.SiteConfigPath = flags.site
		c.Provider = flags.provider
		c.DataDir = flags.dataDir
		c.DataBaseURL = flags.baseURL
		if c.Provider != config.ProviderHTTP {
			c.Provider = config.ProviderFile
		}

		site, err := config.LoadSite(c.SiteConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load site config: %w", err)
		}
		logger := logging.NewLogger(logging.Config{
			Level:   flags.logLevel,
			Service: "cfpctl",
			Version: version,
			Output:  cmd.ErrOrStderr(),
		})
		return &env{
			cfg:      c,
			site:     site,
			logger:   logger,
			provider: buildProvider(c, logger),
		}, nil
	}

	root.AddCommand(
		newRenderCommand(load),
		newRankingsCommand(load),
		newValidateCommand(load),
	)
	return root
}

type loader func(cmd *cobra.Command) (*env, error)

func resolveSource(site config.Site, name string) (config.Source, error) {
	if name == "" {
		if len(site.Sources) == 0 {
			return config.Source{}, fmt.Errorf("site config declares no sources")
		}
		return site.Sources[0], nil
	}
	src, ok := site.Source(name)
	if !ok {
		return config.Source{}, fmt.Errorf("unknown source %q", name)
	}
	return src, nil
}

func writeLine(w io.Writer, s string) {
	_, _ = io.WriteString(w, s)
	if len(s) == 0 || s[len(s)-1] != '\n' {
		_, _ = io.WriteString(w, "\n")
	}
}
