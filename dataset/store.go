package dataset

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/rushteam/hybridrec/core"
)

// 默认的存储 key
const (
	DefaultCatalogKey = "hybridrec:movies"
	DefaultRatingsKey = "hybridrec:ratings"
)

// StoreKeys 指定数据集在 core.Store 中的 hash key。
type StoreKeys struct {
	Catalog string
	Ratings string
}

func (k StoreKeys) withDefaults() StoreKeys {
	if k.Catalog == "" {
		k.Catalog = DefaultCatalogKey
	}
	if k.Ratings == "" {
		k.Ratings = DefaultRatingsKey
	}
	return k
}

// StoreLoader 从 core.Store 读取 Publish 写入的数据集。
//
//	catalog hash: field = 物品 ID，value = MovieRecord JSON
//	ratings hash: field = "userID:itemID"，value = 评分文本（如 "4.5"）
//
// hash 无序，目录按物品 ID 升序排列。
type StoreLoader struct {
	Store core.Store
	Keys  StoreKeys
}

func (l *StoreLoader) Name() string {
	if l.Store == nil {
		return "store"
	}
	return "store:" + l.Store.Name()
}

func (l *StoreLoader) Load(ctx context.Context) (*core.Dataset, error) {
	if l.Store == nil {
		return nil, core.NewDataUnavailableError("store", fmt.Errorf("no store configured"))
	}
	keys := l.Keys.withDefaults()

	// 1. 目录
	rawMovies, err := l.Store.HGetAll(ctx, keys.Catalog)
	if err != nil {
		return nil, core.NewDataUnavailableError("catalog "+keys.Catalog, err)
	}
	if len(rawMovies) == 0 {
		return nil, core.NewDataUnavailableError("catalog "+keys.Catalog, fmt.Errorf("hash is empty or missing"))
	}
	movies := make([]MovieRecord, 0, len(rawMovies))
	for field, raw := range rawMovies {
		var m MovieRecord
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, core.NewDataUnavailableError("catalog "+keys.Catalog, fmt.Errorf("field %s: %w", field, err))
		}
		if strconv.FormatInt(m.ID, 10) != field {
			return nil, core.NewDataUnavailableError("catalog "+keys.Catalog,
				fmt.Errorf("field %s holds item %d", field, m.ID))
		}
		movies = append(movies, m)
	}
	sort.Slice(movies, func(i, j int) bool { return movies[i].ID < movies[j].ID })

	// 2. 评分（允许不存在）
	rawRatings, err := l.Store.HGetAll(ctx, keys.Ratings)
	if err != nil {
		return nil, core.NewDataUnavailableError("ratings "+keys.Ratings, err)
	}
	ratings := make([]RatingRecord, 0, len(rawRatings))
	for field, raw := range rawRatings {
		r, err := parseRatingField(field, raw)
		if err != nil {
			return nil, core.NewDataUnavailableError("ratings "+keys.Ratings, err)
		}
		ratings = append(ratings, r)
	}

	ds, err := buildDataset(movies, ratings)
	if err != nil {
		return nil, core.NewDataUnavailableError("dataset", err)
	}
	return ds, nil
}

func ratingField(userID, itemID int64) string {
	return strconv.FormatInt(userID, 10) + ":" + strconv.FormatInt(itemID, 10)
}

func parseRatingField(field string, raw []byte) (RatingRecord, error) {
	u, i, ok := strings.Cut(field, ":")
	if !ok {
		return RatingRecord{}, fmt.Errorf("field %q: expected user:item", field)
	}
	uid, err := strconv.ParseInt(u, 10, 64)
	if err != nil {
		return RatingRecord{}, fmt.Errorf("field %q: invalid user id", field)
	}
	mid, err := strconv.ParseInt(i, 10, 64)
	if err != nil {
		return RatingRecord{}, fmt.Errorf("field %q: invalid item id", field)
	}
	rating, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return RatingRecord{}, fmt.Errorf("field %q: invalid rating %q", field, raw)
	}
	return RatingRecord{UserID: uid, ItemID: mid, Rating: rating}, nil
}

// Publish 把数据集整体写入 store，目录与评分在一次 ReplaceHashes 中原子替换，
// 并发的 StoreLoader 不会读到空目录。
func Publish(ctx context.Context, s core.Store, ds *core.Dataset, keys StoreKeys) error {
	if ds == nil {
		return fmt.Errorf("publish: dataset is nil")
	}
	keys = keys.withDefaults()

	movies := make(map[string][]byte, ds.Catalog.Len())
	for _, it := range ds.Catalog.Items() {
		b, err := json.Marshal(recordOf(it))
		if err != nil {
			return fmt.Errorf("publish: encode item %d: %w", it.ID, err)
		}
		movies[strconv.FormatInt(it.ID, 10)] = b
	}
	ratings := make(map[string][]byte, ds.Ratings.Len())
	for _, e := range ds.Ratings.Entries() {
		ratings[ratingField(e.UserID, e.ItemID)] = []byte(strconv.FormatFloat(e.Rating, 'f', -1, 64))
	}

	if err := s.ReplaceHashes(ctx, map[string]map[string][]byte{
		keys.Catalog: movies,
		keys.Ratings: ratings,
	}); err != nil {
		return fmt.Errorf("publish: replace %s, %s: %w", keys.Catalog, keys.Ratings, err)
	}
	return nil
}
