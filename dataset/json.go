package dataset

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/rushteam/hybridrec/core"
)

// JSONLoader 读取 JSON 数组格式的数据集：
//
//	movies:  [{"id": 1, "title": "Toy Story (1995)", "genres": ["Animation", "Comedy"]}]
//	ratings: [{"userId": 1, "movieId": 1, "rating": 4.5}]
type JSONLoader struct {
	MoviesPath  string
	RatingsPath string
}

func (l *JSONLoader) Name() string { return "json" }

func (l *JSONLoader) Load(ctx context.Context) (*core.Dataset, error) {
	var movies []MovieRecord
	if err := readJSON(l.MoviesPath, &movies); err != nil {
		return nil, core.NewDataUnavailableError("catalog "+l.MoviesPath, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var ratings []RatingRecord
	if l.RatingsPath != "" {
		if err := readJSON(l.RatingsPath, &ratings); err != nil {
			return nil, core.NewDataUnavailableError("ratings "+l.RatingsPath, err)
		}
	}

	ds, err := buildDataset(movies, ratings)
	if err != nil {
		return nil, core.NewDataUnavailableError("dataset", err)
	}
	return ds, nil
}

func readJSON(path string, v any) error {
	if path == "" {
		return fmt.Errorf("path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
