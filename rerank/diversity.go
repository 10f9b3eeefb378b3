package rerank

import (
	"context"
	"strings"

	"github.com/rushteam/hybridrec/core"
	"github.com/rushteam/hybridrec/pipeline"
)

// Diversity 是多样性 ReRank：同一分组最多保留 MaxPerGroup 个候选（按当前顺序保留靠前的）。
// 分组来源优先级：
// - label[LabelKey].Value（LabelKey 非空时）
// - 属性集合签名（排序后以 '|' 连接）
//
// 没有属性的候选不参与分组，全部保留。
type Diversity struct {
	LabelKey    string
	MaxPerGroup int // 默认 1
}

func (n *Diversity) Name() string {
	return "rerank.diversity"
}

func (n *Diversity) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *Diversity) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.ScoredCandidate,
) ([]*core.ScoredCandidate, error) {
	if len(items) == 0 {
		return items, nil
	}

	limit := n.MaxPerGroup
	if limit <= 0 {
		limit = 1
	}

	seen := make(map[string]int, 32)
	out := make([]*core.ScoredCandidate, 0, len(items))

	for _, it := range items {
		if it == nil {
			continue
		}
		group := n.groupOf(it)
		if group == "" {
			out = append(out, it)
			continue
		}
		if seen[group] >= limit {
			continue
		}
		seen[group]++
		out = append(out, it)
	}

	return out, nil
}

func (n *Diversity) groupOf(it *core.ScoredCandidate) string {
	if n.LabelKey != "" {
		if lbl, ok := it.Labels[n.LabelKey]; ok && lbl.Value != "" {
			return lbl.Value
		}
	}
	if it.Item == nil {
		return ""
	}
	return strings.Join(it.Item.Attributes.Values(), "|")
}
