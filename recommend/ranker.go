// Package recommend 是排序的唯一入口：给定种子物品 ID 与数据快照，返回按混合分降序的 Top-K 候选。
package recommend

import (
	"context"
	"strconv"
	"strings"

	"github.com/rushteam/hybridrec/core"
	"github.com/rushteam/hybridrec/pipeline"
	"github.com/rushteam/hybridrec/rank"
	"github.com/rushteam/hybridrec/recall"
	"github.com/rushteam/hybridrec/rerank"
)

// DefaultPipeline 返回默认排序链路：全量目录召回 → 混合排序 → Top 5。
func DefaultPipeline() *pipeline.Pipeline {
	return &pipeline.Pipeline{
		Name: "default",
		Nodes: []pipeline.Node{
			&recall.Catalog{},
			rank.NewHybridNode(),
			&rerank.TopNNode{N: core.DefaultTopK},
		},
	}
}

// Ranker 无状态，可被多个 goroutine 并发使用；数据快照由调用方按请求传入。
type Ranker struct {
	Pipeline *pipeline.Pipeline

	// MaxConcurrent 是 RankBatch 的最大并发数（0 表示使用默认值 8）
	MaxConcurrent int
}

// NewRanker 使用给定 Pipeline 创建 Ranker，p 为 nil 时使用 DefaultPipeline。
func NewRanker(p *pipeline.Pipeline) *Ranker {
	if p == nil {
		p = DefaultPipeline()
	}
	return &Ranker{Pipeline: p}
}

// ParseSeedID 解析调用方的选择（如下拉框的值），空值或非数字返回 INVALID_INPUT。
func ParseSeedID(selection string) (int64, error) {
	s := strings.TrimSpace(selection)
	if s == "" {
		return 0, core.ErrNoSeed
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, core.WrapDomainError(core.ModuleRanker, core.ErrorCodeInvalidInput,
			"ranker: seed selection "+strconv.Quote(selection)+" is not a valid item id", err)
	}
	return id, nil
}

// Rank 返回与种子最相似的候选，按 HybridScore 降序，最多 core.MaxTopK 个。
// 无论 Pipeline 如何配置，输出都会截断到该上限。
//
// 结果：
//   - 种子不在目录中：INVALID_INPUT，不执行排序
//   - 目录只有种子：空列表（不是错误）
func (r *Ranker) Rank(ctx context.Context, seedID int64, ds *core.Dataset) ([]*core.ScoredCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ds == nil || ds.Catalog == nil {
		return nil, core.NewDataUnavailableError("catalog", nil)
	}
	seed, ok := ds.Catalog.Get(seedID)
	if !ok {
		return nil, core.NewSeedNotFoundError(seedID)
	}

	p := r.Pipeline
	if p == nil {
		p = DefaultPipeline()
	}

	rctx := core.NewRecommendContext(seed, ds)
	out, err := p.Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*core.ScoredCandidate{}
	}
	if len(out) > core.MaxTopK {
		out = out[:core.MaxTopK]
	}
	return out, nil
}

// RankSelection 解析选择值后排序。
func (r *Ranker) RankSelection(ctx context.Context, selection string, ds *core.Dataset) ([]*core.ScoredCandidate, error) {
	seedID, err := ParseSeedID(selection)
	if err != nil {
		return nil, err
	}
	return r.Rank(ctx, seedID, ds)
}
