package filter

import (
	"context"

	"github.com/rushteam/hybridrec/core"
	"github.com/rushteam/hybridrec/pkg/dsl"
)

// ExprFilter 按 CEL 表达式保留候选：表达式为 true 的候选被保留，其余被过滤。
//
// 示例：
//   - `item.score >= 0.2`
//   - `!("Horror" in item.attributes)`
type ExprFilter struct {
	program *dsl.Program
}

// NewExprFilter 编译表达式并创建过滤器。
func NewExprFilter(expr string) (*ExprFilter, error) {
	p, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &ExprFilter{program: p}, nil
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

// Expr 返回原始表达式。
func (f *ExprFilter) Expr() string {
	return f.program.String()
}

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.ScoredCandidate,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	keep, err := f.program.Evaluate(item, rctx)
	if err != nil {
		return false, err
	}
	return !keep, nil
}
