package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/cfp-rankings-service/internal/config"
	"github.com/preston-bernstein/cfp-rankings-service/internal/normalize"
	"github.com/preston-bernstein/cfp-rankings-service/internal/termview"
)

func newValidateCommand(load loader) *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Normalize source documents and report data-quality warnings",
		Long: "Fetches each source (or only --source), prints the detected layout, record counts " +
			"and normalization warnings. Warnings never fail the command; a fetch failure does.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := load(cmd)
			if err != nil {
				return err
			}
			sources := e.site.Sources
			if source != "" {
				src, err := resolveSource(e.site, source)
				if err != nil {
					return err
				}
				sources = []config.Source{src}
			}

			out := cmd.OutOrStdout()
			styles := termview.DefaultStyles()
			var errs []error
			for _, src := range sources {
				raw, err := e.provider.FetchDocument(cmd.Context(), src)
				if err != nil {
					writeLine(out, styles.Warning.Render(fmt.Sprintf("%s: fetch failed: %v", src.Name, err)))
					errs = append(errs, fmt.Errorf("%s: %w", src.Name, err))
					continue
				}
				doc, warnings := normalize.Inspect(raw)
				writeLine(out, termview.Report(src.Name, doc, warnings, styles))
			}
			return errors.Join(errs...)
		},
	}
	cmd.Flags().StringVarP(&source, "source", "s", "", "validate only this source")
	return cmd
}
