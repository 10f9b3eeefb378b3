// Package hybridrec 是一个基于单个种子物品的混合推荐引擎。
//
// 设计要点：
// - Pipeline-first: 排序逻辑通过 Node 串联（Recall → Rank → Filter → ReRank）
// - 混合打分: 属性集合 cosine 相似度与评分共现（endorser）相似度按权重融合
// - 快照隔离: 每次请求使用一份只读 Dataset，热更新通过原子替换完成
package hybridrec

import (
	"github.com/rushteam/hybridrec/core"
	"github.com/rushteam/hybridrec/pipeline"
	"github.com/rushteam/hybridrec/recommend"
)

// 轻量 facade：便于用户直接 import "hybridrec" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

type Ranker = recommend.Ranker
type Dataset = core.Dataset
type ScoredCandidate = core.ScoredCandidate

const (
	KindRecall = pipeline.KindRecall
	KindFilter = pipeline.KindFilter
	KindRank   = pipeline.KindRank
	KindReRank = pipeline.KindReRank
)

// NewRanker 使用默认链路（全量召回 → 混合排序 → Top 5）创建 Ranker。
func NewRanker() *Ranker {
	return recommend.NewRanker(nil)
}
