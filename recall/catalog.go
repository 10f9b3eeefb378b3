package recall

import (
	"context"

	"github.com/rushteam/hybridrec/core"
	"github.com/rushteam/hybridrec/pipeline"
	"github.com/rushteam/hybridrec/pkg/utils"
)

// Catalog 是全量目录召回：目录中除种子外的每个物品都是候选，不做预先剔除。
// 输出保持目录顺序，排序阶段的稳定排序依赖这一点来处理同分。
type Catalog struct{}

func (n *Catalog) Name() string        { return "recall.catalog" }
func (n *Catalog) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Catalog) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	_ []*core.ScoredCandidate,
) ([]*core.ScoredCandidate, error) {
	catalog := rctx.Catalog()
	if catalog.Len() == 0 {
		return []*core.ScoredCandidate{}, nil
	}

	seedID := rctx.SeedID()
	out := make([]*core.ScoredCandidate, 0, catalog.Len())
	for _, it := range catalog.Items() {
		if it.ID == seedID {
			continue
		}
		c := core.NewScoredCandidate(it)
		c.PutLabel(utils.LabelRecallSource, utils.Label{Value: "catalog", Source: utils.StageRecall})
		out = append(out, c)
	}
	return out, nil
}
