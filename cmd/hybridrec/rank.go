package main

import (
	"github.com/spf13/cobra"

	"github.com/rushteam/hybridrec/core"
	"github.com/rushteam/hybridrec/dataset"
	"github.com/rushteam/hybridrec/recommend"
)

func newRankCmd(a *app) *cobra.Command {
	var (
		seeds []string
		top   int
	)
	cmd := &cobra.Command{
		Use:   "rank [movie-id...]",
		Short: "Recommend movies similar to the given seed movies",
		Long: `Rank every other movie in the catalog against each seed movie and print
the best matches. Seeds may be given as arguments or with --seed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			selections := append(append([]string{}, seeds...), args...)
			if len(selections) == 0 {
				return core.ErrNoSeed
			}
			ids := make([]int64, 0, len(selections))
			for _, s := range selections {
				id, err := recommend.ParseSeedID(s)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}

			p, err := a.buildPipeline(top)
			if err != nil {
				return err
			}
			loader, closeFn, err := a.loader()
			if err != nil {
				return err
			}
			defer closeFn()

			ctx := cmd.Context()
			holder := dataset.NewHolder(loader)
			if err := holder.Reload(ctx); err != nil {
				return err
			}
			ds := holder.Current()

			results, err := recommend.NewRanker(p).RankBatch(ctx, ids, ds)
			if err != nil {
				return err
			}
			return newPrinter(cmd.OutOrStdout(), a.settings.Output).Print(ds, results)
		},
	}

	f := cmd.Flags()
	f.StringArrayVar(&seeds, "seed", nil, "seed movie id (repeatable)")
	f.IntVar(&top, "top", 0, "number of recommendations per seed, at most 5 (default from pipeline)")
	f.String("pipeline", "", "pipeline YAML/JSON config file")
	f.StringP("output", "o", "text", "output format: text or json")
	f.String("color", "auto", "color mode: auto, always, never")

	_ = a.v.BindPFlag("pipeline", f.Lookup("pipeline"))
	_ = a.v.BindPFlag("output.format", f.Lookup("output"))
	_ = a.v.BindPFlag("output.color", f.Lookup("color"))
	return cmd
}
