package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/rushteam/hybridrec/dataset"
	"github.com/rushteam/hybridrec/internal/logging"
	"github.com/rushteam/hybridrec/store"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Load a dataset from files and publish it to redis",
		Long: `Read movies (and optionally ratings) from CSV or JSON files and write them
to redis hashes, replacing any previous dataset under the same keys.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := a.fileLoader()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			start := time.Now()

			ds, err := loader.Load(ctx)
			if err != nil {
				return err
			}

			r := a.settings.Redis
			s, err := store.NewRedisStore(r.Addr, r.DB)
			if err != nil {
				return err
			}
			defer s.Close()

			keys := a.storeKeys()
			if err := dataset.Publish(ctx, s, ds, keys); err != nil {
				return err
			}

			logging.L().Info().
				Str("redis", r.Addr).
				Str("catalog_key", keys.Catalog).
				Str("ratings_key", keys.Ratings).
				Int("items", ds.Catalog.Len()).
				Int("ratings", ds.Ratings.Len()).
				Dur("took", time.Since(start)).
				Msg("dataset published")
			return nil
		},
	}
}
