package core

import "github.com/rushteam/hybridrec/pkg/utils"

// RecommendContext 承载一次排序请求的种子物品与数据快照，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	// Seed 是用户选中的种子物品
	Seed *Item

	// Dataset 是本次请求使用的只读快照
	Dataset *Dataset

	// Labels 是请求级标签，可驱动 Pipeline 行为
	Labels map[string]utils.Label

	// Params 请求级参数，例如 filter 表达式所需的变量
	Params map[string]any
}

func NewRecommendContext(seed *Item, ds *Dataset) *RecommendContext {
	return &RecommendContext{
		Seed:    seed,
		Dataset: ds,
		Labels:  make(map[string]utils.Label),
		Params:  make(map[string]any),
	}
}

// SeedID 返回种子物品 ID，未设置时返回 0。
func (rctx *RecommendContext) SeedID() int64 {
	if rctx == nil || rctx.Seed == nil {
		return 0
	}
	return rctx.Seed.ID
}

// Catalog 返回快照中的目录。
func (rctx *RecommendContext) Catalog() *Catalog {
	if rctx == nil || rctx.Dataset == nil {
		return nil
	}
	return rctx.Dataset.Catalog
}

// Ratings 返回快照中的评分表。
func (rctx *RecommendContext) Ratings() *RatingStore {
	if rctx == nil || rctx.Dataset == nil {
		return nil
	}
	return rctx.Dataset.Ratings
}

// PutLabel 写入请求级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取请求级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
