// Package similarity 实现种子物品与候选物品之间的两路相似度：
// 基于属性重合的内容相似度，以及基于评分传播的协同相似度。
package similarity

import (
	"math"

	"github.com/rushteam/hybridrec/core"
)

// 内容相似度度量方式
const (
	MetricCosine  = "cosine"
	MetricJaccard = "jaccard"
)

// Content 是基于属性集合的内容相似度打分器（Content-Based）。
//
// 核心思想："具有相同标签（genre）的物品相互相似"
//
// 默认使用二值指示向量上的余弦相似度，直接由集合大小计算，无需物化整个属性空间：
//
//	|A ∩ B| / sqrt(|A| * |B|)，任一集合为空时为 0
type Content struct {
	// Metric 度量方式：cosine（默认）/ jaccard
	Metric string
}

func (s *Content) Name() string {
	return "similarity.content"
}

// MetricName 返回实际生效的度量方式。
func (s *Content) MetricName() string {
	if s == nil || s.Metric == "" {
		return MetricCosine
	}
	return s.Metric
}

// Score 计算 seed 与 candidate 的内容相似度，取值 [0,1]。
func (s *Content) Score(seed, candidate *core.Item) float64 {
	if seed == nil || candidate == nil {
		return 0
	}
	switch s.MetricName() {
	case MetricJaccard:
		return Jaccard(seed.Attributes, candidate.Attributes)
	case MetricCosine:
		fallthrough
	default:
		return Cosine(seed.Attributes, candidate.Attributes)
	}
}

// Cosine 计算两个属性集合的余弦相似度。
// 对称；集合相同且非空时为 1；任一为空或不相交时为 0。
func Cosine(a, b core.AttributeSet) float64 {
	if a.Len() == 0 || b.Len() == 0 {
		return 0
	}
	inter := a.Intersect(b)
	if inter == 0 {
		return 0
	}
	return float64(inter) / math.Sqrt(float64(a.Len())*float64(b.Len()))
}

// Jaccard 计算两个属性集合的 Jaccard 相似度 |A ∩ B| / |A ∪ B|。
func Jaccard(a, b core.AttributeSet) float64 {
	if a.Len() == 0 || b.Len() == 0 {
		return 0
	}
	inter := a.Intersect(b)
	union := a.Len() + b.Len() - inter
	return float64(inter) / float64(union)
}
