// Package dataset 负责把外部数据源加载为只读的 core.Dataset 快照。
//
// 所有加载失败（文件缺失、格式错误、评分越界、存储不可达）统一返回
// UNAVAILABLE 领域错误；排序核心本身不读取任何数据源。
package dataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/rushteam/hybridrec/core"
)

// Loader 加载一份完整的数据集快照。
type Loader interface {
	Name() string
	Load(ctx context.Context) (*core.Dataset, error)
}

// noGenres 是 MovieLens 中表示无类型的占位值
const noGenres = "(no genres listed)"

// MovieRecord 是目录条目的序列化形式（JSON 文件与存储中的 hash value）。
type MovieRecord struct {
	ID     int64    `json:"id"`
	Title  string   `json:"title"`
	Genres []string `json:"genres"`
}

// RatingRecord 是评分条目的序列化形式。
type RatingRecord struct {
	UserID int64   `json:"userId"`
	ItemID int64   `json:"movieId"`
	Rating float64 `json:"rating"`
}

func recordOf(it *core.Item) MovieRecord {
	genres := it.Attributes.Values()
	if genres == nil {
		genres = []string{}
	}
	return MovieRecord{ID: it.ID, Title: it.Title, Genres: genres}
}

func (r MovieRecord) item() *core.Item {
	return core.NewItem(r.ID, r.Title, cleanGenres(r.Genres)...)
}

// splitGenres 拆分 "Action|Comedy"，去掉空段与占位值。
func splitGenres(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == noGenres {
		return nil
	}
	return cleanGenres(strings.Split(raw, "|"))
}

func cleanGenres(genres []string) []string {
	out := make([]string, 0, len(genres))
	for _, g := range genres {
		g = strings.TrimSpace(g)
		if g == "" || g == noGenres {
			continue
		}
		out = append(out, g)
	}
	return out
}

func validateRating(r RatingRecord) error {
	if r.Rating < core.MinRating || r.Rating > core.MaxRating {
		return fmt.Errorf("rating %v for user %d item %d outside [%v,%v]",
			r.Rating, r.UserID, r.ItemID, core.MinRating, core.MaxRating)
	}
	return nil
}

func buildDataset(movies []MovieRecord, ratings []RatingRecord) (*core.Dataset, error) {
	items := make([]*core.Item, 0, len(movies))
	for _, m := range movies {
		items = append(items, m.item())
	}
	catalog, err := core.NewCatalog(items...)
	if err != nil {
		return nil, err
	}

	entries := make([]core.RatingEntry, 0, len(ratings))
	for _, r := range ratings {
		if err := validateRating(r); err != nil {
			return nil, err
		}
		entries = append(entries, core.RatingEntry{UserID: r.UserID, ItemID: r.ItemID, Rating: r.Rating})
	}
	return core.NewDataset(catalog, core.NewRatingStore(entries...)), nil
}
