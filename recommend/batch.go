package recommend

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/hybridrec/core"
)

// BatchResult 是单个种子的排序结果；Err 非空时 Candidates 为 nil。
type BatchResult struct {
	SeedID     int64
	Candidates []*core.ScoredCandidate
	Err        error
}

// RankBatch 在同一个快照上并发为多个种子排序，结果顺序与 seedIDs 一致。
// 单个种子的输入错误记录在对应的 BatchResult 中，不影响其他种子；
// 只有 ctx 被取消时才返回 error。
func (r *Ranker) RankBatch(ctx context.Context, seedIDs []int64, ds *core.Dataset) ([]BatchResult, error) {
	results := make([]BatchResult, len(seedIDs))
	if len(seedIDs) == 0 {
		return results, nil
	}

	limit := r.MaxConcurrent
	if limit <= 0 {
		limit = 8
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)

	for i, seedID := range seedIDs {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			out, err := r.Rank(egCtx, seedID, ds)
			// 每个 goroutine 只写自己的下标，无需加锁
			results[i] = BatchResult{SeedID: seedID, Candidates: out, Err: err}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
