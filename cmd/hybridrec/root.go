package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rushteam/hybridrec/config"
	_ "github.com/rushteam/hybridrec/config/builders"
	"github.com/rushteam/hybridrec/core"
	"github.com/rushteam/hybridrec/dataset"
	"github.com/rushteam/hybridrec/internal/logging"
	"github.com/rushteam/hybridrec/pipeline"
	"github.com/rushteam/hybridrec/recommend"
	"github.com/rushteam/hybridrec/rerank"
	"github.com/rushteam/hybridrec/store"
)

// app 保存一次命令执行期间的配置状态。
type app struct {
	v        *viper.Viper
	cfgFile  string
	settings *Settings
}

func newRootCmd() *cobra.Command {
	a := &app{v: newViper()}

	root := &cobra.Command{
		Use:   "hybridrec",
		Short: "Hybrid content + collaborative movie recommender",
		Long: `hybridrec recommends movies similar to a seed movie by blending
genre overlap (cosine) with co-rating signal from users who liked the seed.

Example usage:
  hybridrec rank 1 --movies movies.csv --ratings ratings.csv
  hybridrec import --movies movies.csv --ratings ratings.csv --redis-addr localhost:6379
  hybridrec rank 1 2 3 --output json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is .hybridrec.yaml)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "console", "log format: console or json")
	pf.String("source", "auto", "dataset source: auto, csv, json or redis")
	pf.String("movies", "", "movies file (.csv or .json)")
	pf.String("ratings", "", "ratings file (.csv or .json), optional")
	pf.String("redis-addr", "localhost:6379", "redis address")
	pf.Int("redis-db", 0, "redis database")
	pf.String("catalog-key", dataset.DefaultCatalogKey, "redis hash holding the catalog")
	pf.String("ratings-key", dataset.DefaultRatingsKey, "redis hash holding the ratings")

	for key, flag := range map[string]string{
		"log.level":         "log-level",
		"log.format":        "log-format",
		"data.source":       "source",
		"data.movies":       "movies",
		"data.ratings":      "ratings",
		"redis.addr":        "redis-addr",
		"redis.db":          "redis-db",
		"redis.catalog_key": "catalog-key",
		"redis.ratings_key": "ratings-key",
	} {
		_ = a.v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(newRankCmd(a), newImportCmd(a), newVersionCmd())
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	s, err := loadSettings(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.settings = s
	logging.Init(logging.Config{
		Level:  s.Log.Level,
		Format: s.Log.Format,
		Output: cmd.ErrOrStderr(),
	})
	logging.L().Debug().
		Str("source", s.Data.source()).
		Str("movies", s.Data.Movies).
		Str("pipeline", s.Pipeline).
		Msg("configuration loaded")
	return nil
}

func (a *app) storeKeys() dataset.StoreKeys {
	return dataset.StoreKeys{Catalog: a.settings.Redis.CatalogKey, Ratings: a.settings.Redis.RatingsKey}
}

// fileLoader 返回基于文件的 Loader，未指定 movies 时返回错误。
func (a *app) fileLoader() (dataset.Loader, error) {
	d := a.settings.Data
	switch d.source() {
	case "csv":
		return &dataset.CSVLoader{MoviesPath: d.Movies, RatingsPath: d.Ratings}, nil
	case "json":
		return &dataset.JSONLoader{MoviesPath: d.Movies, RatingsPath: d.Ratings}, nil
	default:
		return nil, fmt.Errorf("a --movies file is required")
	}
}

// loader 返回配置的 Loader 以及释放资源的函数。
func (a *app) loader() (dataset.Loader, func(), error) {
	if a.settings.Data.source() != "redis" {
		l, err := a.fileLoader()
		return l, func() {}, err
	}
	r := a.settings.Redis
	s, err := store.NewRedisStore(r.Addr, r.DB)
	if err != nil {
		return nil, nil, err
	}
	return &dataset.StoreLoader{Store: s, Keys: a.storeKeys()}, func() { _ = s.Close() }, nil
}

// buildPipeline 从配置文件构建链路，未配置时使用默认链路；top > 0 时覆盖 TopN。
// top 只能在 [0, core.MaxTopK] 内调整。
func (a *app) buildPipeline(top int) (*pipeline.Pipeline, error) {
	if top < 0 || top > core.MaxTopK {
		return nil, core.NewDomainError(core.ModuleConfig, core.ErrorCodeInvalidInput,
			fmt.Sprintf("--top must be within [0,%d], got %d", core.MaxTopK, top))
	}
	p := recommend.DefaultPipeline()
	if path := a.settings.Pipeline; path != "" {
		cfg, err := pipeline.Load(path)
		if err != nil {
			return nil, err
		}
		if p, err = config.Build(cfg); err != nil {
			return nil, err
		}
	}
	if top <= 0 {
		return p, nil
	}
	for _, n := range p.Nodes {
		if t, ok := n.(*rerank.TopNNode); ok {
			t.N = top
			return p, nil
		}
	}
	p.Nodes = append(p.Nodes, &rerank.TopNNode{N: top})
	return p, nil
}
