package recommend

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/rushteam/hybridrec/config"
	_ "github.com/rushteam/hybridrec/config/builders"
	"github.com/rushteam/hybridrec/core"
	"github.com/rushteam/hybridrec/pipeline"
	"github.com/rushteam/hybridrec/rank"
	"github.com/rushteam/hybridrec/recall"
	"github.com/rushteam/hybridrec/rerank"
)

func mustCatalog(t *testing.T, items ...*core.Item) *core.Catalog {
	t.Helper()
	c, err := core.NewCatalog(items...)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestRank_ContentOnlyScenario(t *testing.T) {
	ds := core.NewDataset(mustCatalog(t,
		core.NewItem(1, "A", "Action"),
		core.NewItem(2, "B", "Action"),
		core.NewItem(3, "C", "Comedy"),
	), core.NewRatingStore())

	out, err := NewRanker(nil).Rank(context.Background(), 1, ds)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[0].Item.Title != "B" || out[0].ContentScore != 1.0 || out[0].HybridScore != 0.5 {
		t.Errorf("first = %s content=%v hybrid=%v, want B 1.0 0.5",
			out[0].Item.Title, out[0].ContentScore, out[0].HybridScore)
	}
	if out[1].Item.Title != "C" || out[1].ContentScore != 0 || out[1].HybridScore != 0 {
		t.Errorf("second = %s content=%v hybrid=%v, want C 0 0",
			out[1].Item.Title, out[1].ContentScore, out[1].HybridScore)
	}
}

func TestRank_SeedNotFound(t *testing.T) {
	ds := core.NewDataset(mustCatalog(t, core.NewItem(1, "A", "Action")), nil)
	out, err := NewRanker(nil).Rank(context.Background(), 999, ds)
	if !core.IsInputError(err) {
		t.Fatalf("expected input error, got %v", err)
	}
	if out != nil {
		t.Errorf("no ranking should be performed, got %v", out)
	}
}

func TestRank_SingleItemCatalog(t *testing.T) {
	ds := core.NewDataset(mustCatalog(t, core.NewItem(1, "A", "Action")), nil)
	out, err := NewRanker(nil).Rank(context.Background(), 1, ds)
	if err != nil {
		t.Fatalf("single-item catalog must not be an error: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Errorf("expected empty non-nil result, got %v", out)
	}
}

func TestRank_NilDataset(t *testing.T) {
	if _, err := NewRanker(nil).Rank(context.Background(), 1, nil); !core.IsDataUnavailable(err) {
		t.Errorf("expected data unavailable, got %v", err)
	}
}

func TestRank_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ds := core.NewDataset(mustCatalog(t, core.NewItem(1, "A")), nil)
	if _, err := NewRanker(nil).Rank(ctx, 1, ds); err == nil {
		t.Error("expected context error")
	}
}

// syntheticDataset 生成一个确定性的数据集：genre 按 ID 取模分配，评分按 (user*item) 取模生成。
func syntheticDataset(t *testing.T, items, users int) *core.Dataset {
	t.Helper()
	genres := []string{"Action", "Comedy", "Drama", "Horror", "Romance", "Sci-Fi"}
	list := make([]*core.Item, 0, items)
	for i := 1; i <= items; i++ {
		attrs := []string{genres[i%len(genres)]}
		if i%3 == 0 {
			attrs = append(attrs, genres[(i/3)%len(genres)])
		}
		if i%7 == 0 {
			attrs = nil
		}
		list = append(list, core.NewItem(int64(i), fmt.Sprintf("Movie %d", i), attrs...))
	}
	entries := make([]core.RatingEntry, 0)
	for u := 1; u <= users; u++ {
		for i := 1; i <= items; i++ {
			if (u+i)%3 == 0 {
				continue
			}
			entries = append(entries, core.RatingEntry{
				UserID: int64(u),
				ItemID: int64(i),
				Rating: float64((u*i)%5 + 1),
			})
		}
	}
	return core.NewDataset(mustCatalog(t, list...), core.NewRatingStore(entries...))
}

func TestRank_Properties(t *testing.T) {
	ds := syntheticDataset(t, 30, 25)
	r := NewRanker(nil)

	for _, seed := range ds.Catalog.Items() {
		out, err := r.Rank(context.Background(), seed.ID, ds)
		if err != nil {
			t.Fatalf("seed %d: %v", seed.ID, err)
		}
		if len(out) > core.DefaultTopK || len(out) > ds.Catalog.Len()-1 {
			t.Fatalf("seed %d: len = %d", seed.ID, len(out))
		}
		for i, c := range out {
			if c.ID() == seed.ID {
				t.Fatalf("seed %d appears in its own result", seed.ID)
			}
			if c.CollaborativeScore < 0 || c.CollaborativeScore > 1 {
				t.Fatalf("seed %d candidate %d: collaborative %v", seed.ID, c.ID(), c.CollaborativeScore)
			}
			if c.ContentScore < 0 || c.ContentScore > 1 {
				t.Fatalf("seed %d candidate %d: content %v", seed.ID, c.ID(), c.ContentScore)
			}
			if c.HybridScore != 0.5*c.ContentScore+0.5*c.CollaborativeScore {
				t.Fatalf("seed %d candidate %d: hybrid formula violated", seed.ID, c.ID())
			}
			if i > 0 && out[i-1].HybridScore < c.HybridScore {
				t.Fatalf("seed %d: output not sorted at %d", seed.ID, i)
			}
		}
	}
}

func TestRank_TiesKeepCatalogOrder(t *testing.T) {
	ds := core.NewDataset(mustCatalog(t,
		core.NewItem(10, "Seed", "Drama"),
		core.NewItem(7, "X", "Drama"),
		core.NewItem(3, "Y", "Drama"),
		core.NewItem(5, "Z", "Drama"),
	), nil)
	out, err := NewRanker(nil).Rank(context.Background(), 10, ds)
	if err != nil {
		t.Fatal(err)
	}
	want := []int64{7, 3, 5}
	for i, id := range want {
		if out[i].ID() != id {
			t.Fatalf("position %d = %d, want %d", i, out[i].ID(), id)
		}
	}
}

func TestRank_ConfiguredPipeline(t *testing.T) {
	cfg, err := pipeline.ParseYAML([]byte(`
pipeline:
  name: strict
  nodes:
    - type: recall.catalog
    - type: rank.hybrid
    - type: filter
      config:
        filters:
          - type: expr
            expr: "item.score > 0.0"
    - type: rerank.topn
      config:
        n: 1
`))
	if err != nil {
		t.Fatal(err)
	}
	p, err := config.Build(cfg)
	if err != nil {
		t.Fatal(err)
	}

	ds := core.NewDataset(mustCatalog(t,
		core.NewItem(1, "A", "Action"),
		core.NewItem(2, "B", "Comedy"),
		core.NewItem(3, "C", "Action"),
		core.NewItem(4, "D", "Action", "Comedy"),
	), nil)
	out, err := NewRanker(p).Rank(context.Background(), 1, ds)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].ID() != 3 {
		t.Errorf("expected only C, got %v", out)
	}

	out, err = NewRanker(p).Rank(context.Background(), 2, core.NewDataset(mustCatalog(t,
		core.NewItem(2, "B", "Comedy"),
		core.NewItem(5, "E", "Western"),
	), nil))
	if err != nil || len(out) != 0 {
		t.Errorf("everything filtered should be an empty result, got %v, %v", out, err)
	}
}

func TestParseSeedID(t *testing.T) {
	tests := []struct {
		selection string
		want      int64
		wantErr   bool
	}{
		{selection: "42", want: 42},
		{selection: " 7 ", want: 7},
		{selection: "", wantErr: true},
		{selection: "   ", wantErr: true},
		{selection: "abc", wantErr: true},
		{selection: "4.5", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.selection, func(t *testing.T) {
			got, err := ParseSeedID(tt.selection)
			if tt.wantErr {
				if !core.IsInputError(err) {
					t.Errorf("expected input error, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseSeedID(%q) = %d, %v; want %d", tt.selection, got, err, tt.want)
			}
		})
	}
}

func TestRankSelection(t *testing.T) {
	ds := core.NewDataset(mustCatalog(t,
		core.NewItem(1, "A", "Action"),
		core.NewItem(2, "B", "Action"),
	), nil)
	out, err := NewRanker(nil).RankSelection(context.Background(), "1", ds)
	if err != nil || len(out) != 1 {
		t.Errorf("RankSelection = %v, %v", out, err)
	}
	if _, err := NewRanker(nil).RankSelection(context.Background(), "NaN", ds); !core.IsInputError(err) {
		t.Errorf("expected input error, got %v", err)
	}
}

func TestRank_Concurrent(t *testing.T) {
	ds := syntheticDataset(t, 40, 30)
	r := NewRanker(nil)
	want := make(map[int64][]int64)
	for _, it := range ds.Catalog.Items() {
		out, err := r.Rank(context.Background(), it.ID, ds)
		if err != nil {
			t.Fatal(err)
		}
		for _, c := range out {
			want[it.ID] = append(want[it.ID], c.ID())
		}
	}

	var wg sync.WaitGroup
	errs := make(chan error, ds.Catalog.Len())
	for _, it := range ds.Catalog.Items() {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			out, err := r.Rank(context.Background(), seed, ds)
			if err != nil {
				errs <- err
				return
			}
			for i, c := range out {
				if c.ID() != want[seed][i] {
					errs <- fmt.Errorf("seed %d: position %d = %d, want %d", seed, i, c.ID(), want[seed][i])
					return
				}
			}
		}(it.ID)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestRank_ResultLimitedWhateverThePipeline(t *testing.T) {
	items := make([]*core.Item, 0, 9)
	for i := int64(1); i <= 9; i++ {
		items = append(items, core.NewItem(i, fmt.Sprintf("Movie %d", i), "Drama"))
	}
	ds := core.NewDataset(mustCatalog(t, items...), nil)

	noTopN, err := pipeline.ParseYAML([]byte(`
pipeline:
  name: no-topn
  nodes:
    - type: recall.catalog
    - type: rank.hybrid
`))
	if err != nil {
		t.Fatal(err)
	}
	configured, err := config.Build(noTopN)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		p    *pipeline.Pipeline
	}{
		{name: "configured without topn", p: configured},
		{name: "hand-built without topn", p: &pipeline.Pipeline{Nodes: []pipeline.Node{&recall.Catalog{}, rank.NewHybridNode()}}},
		{name: "topn above limit", p: &pipeline.Pipeline{Nodes: []pipeline.Node{&recall.Catalog{}, rank.NewHybridNode(), &rerank.TopNNode{N: 8}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NewRanker(tt.p).Rank(context.Background(), 1, ds)
			if err != nil {
				t.Fatal(err)
			}
			if len(out) != core.MaxTopK {
				t.Fatalf("len = %d, want %d", len(out), core.MaxTopK)
			}
			for i, c := range out {
				if c.ID() != int64(i+2) {
					t.Errorf("position %d = %d, want %d", i, c.ID(), i+2)
				}
			}
		})
	}
}
