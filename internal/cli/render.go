package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/a-h/templ"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	appseason "github.com/preston-bernstein/cfp-rankings-service/internal/app/season"
	"github.com/preston-bernstein/cfp-rankings-service/internal/logging"
	"github.com/preston-bernstein/cfp-rankings-service/internal/pages"
	"github.com/preston-bernstein/cfp-rankings-service/internal/publish"
	"github.com/preston-bernstein/cfp-rankings-service/internal/render"
	"github.com/preston-bernstein/cfp-rankings-service/internal/store"
)

const renderWorkers = 4

func newRenderCommand(load loader) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Export every configured page as a static site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := load(cmd)
			if err != nil {
				return err
			}
			summary, err := renderSite(cmd.Context(), e, outDir)
			if err != nil {
				return err
			}
			writeLine(cmd.OutOrStdout(), fmt.Sprintf("wrote %d files (%d changed) to %s", summary.files, summary.changed, outDir))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "site", "output directory")
	return cmd
}

type renderSummary struct {
	files   int
	changed int
}

type job struct {
	file      string
	component templ.Component
}

// renderSite refreshes every source, then writes each configured page, one file per team for
// the team page, and the canonical JSON behind them. Failed sources still render their
// failure message.
func renderSite(ctx context.Context, e *env, outDir string) (renderSummary, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	st := store.NewDocumentStore()
	svc := appseason.NewService(st, e.provider, e.site, e.logger, nil)
	if _, err := svc.RefreshAll(ctx); err != nil {
		logging.Warn(e.logger, "some sources failed to load", "error", err)
	}

	in, err := pages.NewInitializer(e.site, render.StaticLinks(""), "")
	if err != nil {
		return renderSummary{}, err
	}
	nested := in.WithLinks(render.StaticLinks("../"))

	var jobs []job
	for _, page := range in.Pages() {
		result, committed := svc.Current(page.Source)
		c, _ := in.Compose(page, result, committed, pages.Query{})
		jobs = append(jobs, job{file: publish.PageFile(page.Path), component: c})

		if page.Mode != pages.ModeTeam || !committed || result.Failed() {
			continue
		}
		for _, team := range result.Document.TeamsByRank() {
			if team.ID == "" {
				continue
			}
			c, _ := nested.Compose(page, result, committed, pages.Query{Team: team.ID})
			jobs = append(jobs, job{file: publish.TeamFile(team.ID), component: c})
		}
	}

	w := publish.NewWriter(outDir)
	changed := make([]bool, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(renderWorkers)
	for i, j := range jobs {
		g.Go(func() error {
			var err error
			changed[i], err = w.WritePage(gctx, j.file, j.component)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return renderSummary{}, err
	}

	summary := renderSummary{files: len(jobs)}
	for _, c := range changed {
		if c {
			summary.changed++
		}
	}

	updated := make(map[string]time.Time)
	for _, src := range svc.Sources() {
		doc, ok := svc.Document(src.Name)
		if !ok {
			continue
		}
		c, err := w.WriteJSON(publish.DocumentFile(src.Name), doc)
		if err != nil {
			return renderSummary{}, err
		}
		summary.files++
		if c {
			summary.changed++
		}
		updated[src.Name] = doc.LastUpdated
	}
	if _, err := w.WriteManifest(updated); err != nil {
		return renderSummary{}, err
	}
	return summary, nil
}
