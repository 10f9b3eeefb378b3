package rerank

import (
	"context"

	"github.com/rushteam/hybridrec/core"
	"github.com/rushteam/hybridrec/pipeline"
)

// TopNNode 是一个 Top-N 截断节点，用于在排序后截取前 N 个候选。
//
// 示例：
//
//	p := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        &recall.Catalog{},
//	        rank.NewHybridNode(),
//	        &rerank.TopNNode{N: 5},
//	    },
//	}
type TopNNode struct {
	// N 要保留的候选数量
	// 如果 N <= 0，使用默认值 core.DefaultTopK；大于 core.MaxTopK 时按上限截断
	// 如果 N > len(items)，则返回所有候选
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

// Limit 返回实际生效的 N。
func (n *TopNNode) Limit() int {
	switch {
	case n.N <= 0:
		return core.DefaultTopK
	case n.N > core.MaxTopK:
		return core.MaxTopK
	default:
		return n.N
	}
}

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.ScoredCandidate,
) ([]*core.ScoredCandidate, error) {
	limit := n.Limit()
	if len(items) <= limit {
		return items, nil
	}
	return items[:limit], nil
}
