package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rushteam/hybridrec/core"
)

// CSVLoader 读取 MovieLens 格式的 movies.csv 与 ratings.csv。
//
//	movies.csv:  movieId,title,genres      （genres 以 | 分隔）
//	ratings.csv: userId,movieId,rating[,timestamp]
//
// RatingsPath 为空时只加载目录，协同分全部为 0。
type CSVLoader struct {
	MoviesPath  string
	RatingsPath string
}

func (l *CSVLoader) Name() string { return "csv" }

func (l *CSVLoader) Load(ctx context.Context) (*core.Dataset, error) {
	movies, err := l.readMovies(ctx)
	if err != nil {
		return nil, core.NewDataUnavailableError("catalog "+l.MoviesPath, err)
	}

	var ratings []RatingRecord
	if l.RatingsPath != "" {
		ratings, err = l.readRatings(ctx)
		if err != nil {
			return nil, core.NewDataUnavailableError("ratings "+l.RatingsPath, err)
		}
	}

	ds, err := buildDataset(movies, ratings)
	if err != nil {
		return nil, core.NewDataUnavailableError("dataset", err)
	}
	return ds, nil
}

func (l *CSVLoader) readMovies(ctx context.Context) ([]MovieRecord, error) {
	var out []MovieRecord
	err := readCSV(ctx, l.MoviesPath, 3, func(line int, row []string) error {
		id, err := strconv.ParseInt(strings.TrimSpace(row[0]), 10, 64)
		if err != nil {
			return fmt.Errorf("line %d: invalid movieId %q", line, row[0])
		}
		out = append(out, MovieRecord{
			ID:     id,
			Title:  strings.TrimSpace(row[1]),
			Genres: splitGenres(row[2]),
		})
		return nil
	})
	return out, err
}

func (l *CSVLoader) readRatings(ctx context.Context) ([]RatingRecord, error) {
	var out []RatingRecord
	err := readCSV(ctx, l.RatingsPath, 3, func(line int, row []string) error {
		uid, err := strconv.ParseInt(strings.TrimSpace(row[0]), 10, 64)
		if err != nil {
			return fmt.Errorf("line %d: invalid userId %q", line, row[0])
		}
		mid, err := strconv.ParseInt(strings.TrimSpace(row[1]), 10, 64)
		if err != nil {
			return fmt.Errorf("line %d: invalid movieId %q", line, row[1])
		}
		rating, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil {
			return fmt.Errorf("line %d: invalid rating %q", line, row[2])
		}
		r := RatingRecord{UserID: uid, ItemID: mid, Rating: rating}
		if err := validateRating(r); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, r)
		return nil
	})
	return out, err
}

// readCSV 逐行回调，首行若首列不是数字则视为表头跳过。
func readCSV(ctx context.Context, path string, minFields int, fn func(line int, row []string) error) error {
	if path == "" {
		return errors.New("path is empty")
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.ReuseRecord = true

	for line := 1; ; line++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if line%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if line == 1 && len(row) > 0 {
			row[0] = strings.TrimPrefix(row[0], "\ufeff")
			if !isNumeric(row[0]) {
				continue
			}
		}
		if len(row) < minFields {
			return fmt.Errorf("line %d: expected at least %d fields, got %d", line, minFields, len(row))
		}
		if err := fn(line, row); err != nil {
			return err
		}
	}
}

func isNumeric(s string) bool {
	_, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return err == nil
}
