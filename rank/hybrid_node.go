package rank

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/rushteam/hybridrec/core"
	"github.com/rushteam/hybridrec/pipeline"
	"github.com/rushteam/hybridrec/pkg/utils"
	"github.com/rushteam/hybridrec/similarity"
)

// HybridNode 是混合排序 Node：内容相似度与协同相似度加权求和，再按混合分降序排序。
//
//	hybrid = w * content + (1 - w) * collaborative，w 默认 0.5
//
// 同分时保持输入（目录）顺序，不引入二级排序键。
// - 写入 labels：rank_model、content_metric、endorsers
type HybridNode struct {
	Content       *similarity.Content
	Collaborative *similarity.Collaborative

	// ContentWeight 内容相似度权重，取值 [0,1]
	ContentWeight float64
}

// NewHybridNode 返回默认配置：cosine、阈值 4、权重 0.5。
func NewHybridNode() *HybridNode {
	return &HybridNode{
		Content:       &similarity.Content{Metric: similarity.MetricCosine},
		Collaborative: &similarity.Collaborative{Threshold: core.DefaultEndorseThreshold},
		ContentWeight: core.DefaultContentWeight,
	}
}

func (n *HybridNode) Name() string        { return "rank.hybrid" }
func (n *HybridNode) Kind() pipeline.Kind { return pipeline.KindRank }

// Validate 检查权重范围。
func (n *HybridNode) Validate() error {
	if math.IsNaN(n.ContentWeight) || n.ContentWeight < 0 || n.ContentWeight > 1 {
		return fmt.Errorf("content_weight must be within [0,1], got %v", n.ContentWeight)
	}
	return nil
}

func (n *HybridNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.ScoredCandidate,
) ([]*core.ScoredCandidate, error) {
	if len(items) == 0 {
		return items, nil
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	if rctx == nil || rctx.Seed == nil {
		return nil, core.ErrNoSeed
	}

	content := n.Content
	if content == nil {
		content = &similarity.Content{}
	}
	collab := n.Collaborative
	if collab == nil {
		collab = &similarity.Collaborative{}
	}

	seed := rctx.Seed
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		if it != nil {
			ids = append(ids, it.ID())
		}
	}

	// 1. 协同分：一次遍历认可者的评分，覆盖全部候选
	collabScores := collab.Scores(seed.ID, rctx.Ratings(), ids)
	endorsers := strconv.Itoa(len(collab.Endorsers(seed.ID, rctx.Ratings())))

	// 2. 内容分 + 混合
	w := n.ContentWeight
	for _, it := range items {
		if it == nil {
			continue
		}
		it.ContentScore = content.Score(seed, it.Item)
		it.CollaborativeScore = collabScores[it.ID()]
		it.HybridScore = w*it.ContentScore + (1-w)*it.CollaborativeScore

		it.PutLabel(utils.LabelRankModel, utils.Label{Value: "hybrid", Source: utils.StageRank})
		it.PutLabel(utils.LabelContentMetric, utils.Label{Value: content.MetricName(), Source: utils.StageRank})
		it.PutLabel(utils.LabelEndorsers, utils.Label{Value: endorsers, Source: utils.StageRank})
	}

	// 3. 稳定排序
	sort.SliceStable(items, func(i, j int) bool {
		if items[i] == nil {
			return false
		}
		if items[j] == nil {
			return true
		}
		return items[i].HybridScore > items[j].HybridScore
	})
	return items, nil
}
