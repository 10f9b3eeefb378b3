package core

import "github.com/rushteam/hybridrec/pkg/utils"

// ScoredCandidate 是推荐链路中的承载结构：候选物品 + 各路分数 + 标签。
// 每次请求新建，请求结束即丢弃。
type ScoredCandidate struct {
	Item *Item

	// ContentScore 属性重合相似度，[0,1]
	ContentScore float64

	// CollaborativeScore 评分传播相似度，[0,1]
	CollaborativeScore float64

	// HybridScore 加权混合分，用于排序
	HybridScore float64

	Labels map[string]utils.Label
}

func NewScoredCandidate(item *Item) *ScoredCandidate {
	return &ScoredCandidate{
		Item:   item,
		Labels: make(map[string]utils.Label),
	}
}

// ID 返回候选物品 ID。
func (c *ScoredCandidate) ID() int64 {
	if c == nil || c.Item == nil {
		return 0
	}
	return c.Item.ID
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (c *ScoredCandidate) PutLabel(key string, lbl utils.Label) {
	if c.Labels == nil {
		c.Labels = make(map[string]utils.Label)
	}
	if old, ok := c.Labels[key]; ok {
		c.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	c.Labels[key] = lbl
}
