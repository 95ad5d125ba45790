package cli

import (
	"github.com/spf13/cobra"

	appseason "github.com/preston-bernstein/cfp-rankings-service/internal/app/season"
	"github.com/preston-bernstein/cfp-rankings-service/internal/render"
	"github.com/preston-bernstein/cfp-rankings-service/internal/store"
	"github.com/preston-bernstein/cfp-rankings-service/internal/termview"
)

func newRankingsCommand(load loader) *cobra.Command {
	var (
		source string
		sorted bool
	)
	cmd := &cobra.Command{
		Use:   "rankings",
		Short: "Print a source's rankings table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := load(cmd)
			if err != nil {
				return err
			}
			src, err := resolveSource(e.site, source)
			if err != nil {
				return err
			}
			svc := appseason.NewService(store.NewDocumentStore(), e.provider, e.site, e.logger, nil)
			if _, err := svc.Refresh(cmd.Context(), src.Name); err != nil {
				return err
			}
			doc, _ := svc.Document(src.Name)

			order := render.AsGiven
			if sorted {
				order = render.ByRank
			}
			writeLine(cmd.OutOrStdout(), termview.Rankings(doc, order, termview.DefaultStyles()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&source, "source", "s", "", "source name (defaults to the first configured source)")
	cmd.Flags().BoolVar(&sorted, "sorted", false, "order by seed; unranked entries last")
	return cmd
}
