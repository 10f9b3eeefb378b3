package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/hybridrec/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("item", cel.DynType),
		cel.Variable("seed", cel.DynType),
		cel.Variable("label", cel.DynType),
		cel.Variable("params", cel.DynType),
	)
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = initCELEnv()
	})
	return celEnv, celEnvErr
}

// Program 是编译后的候选表达式，使用 CEL (Common Expression Language) 实现。
// 编译一次，可在多个请求中并发求值。
//
// 可用变量：
//   - item.id / item.title / item.attributes
//   - item.content_score / item.collaborative_score / item.score
//   - seed.id / seed.title / seed.attributes
//   - label.<key>（Label 的 Value）
//   - params.<key>（请求级参数）
//
// 示例：
//   - `item.score >= 0.2`
//   - `"Comedy" in item.attributes`
//   - `item.collaborative_score > 0.0 && item.id != 42`
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译表达式；表达式必须返回 bool。
func Compile(expr string) (*Program, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %w", issues.Err())
	}
	if out := ast.OutputType(); !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("expression must return boolean, got %s", ast.OutputType())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Program{expr: expr, prg: prg}, nil
}

// String 返回原始表达式。
func (p *Program) String() string {
	return p.expr
}

// Evaluate 对单个候选求值。
func (p *Program) Evaluate(c *core.ScoredCandidate, rctx *core.RecommendContext) (bool, error) {
	out, _, err := p.prg.Eval(buildInput(c, rctx))
	if err != nil {
		// 访问不存在的 key 会报错，请用 `"key" in label` 检查存在性
		return false, fmt.Errorf("eval error: %w", err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// Evaluate 解析并执行一次表达式，空表达式视为 true。
func Evaluate(expr string, c *core.ScoredCandidate, rctx *core.RecommendContext) (bool, error) {
	if expr == "" {
		return true, nil
	}
	p, err := Compile(expr)
	if err != nil {
		return false, err
	}
	return p.Evaluate(c, rctx)
}

func itemInput(it *core.Item) map[string]any {
	if it == nil {
		return map[string]any{}
	}
	return map[string]any{
		"id":         it.ID,
		"title":      it.Title,
		"attributes": it.Attributes.Values(),
	}
}

// buildInput 构建 CEL 表达式的输入数据
func buildInput(c *core.ScoredCandidate, rctx *core.RecommendContext) map[string]any {
	item := itemInput(c.Item)
	item["content_score"] = c.ContentScore
	item["collaborative_score"] = c.CollaborativeScore
	item["score"] = c.HybridScore

	labels := make(map[string]any, len(c.Labels))
	for k, v := range c.Labels {
		labels[k] = v.Value
	}

	var seed map[string]any
	params := map[string]any{}
	if rctx != nil {
		seed = itemInput(rctx.Seed)
		if rctx.Params != nil {
			params = rctx.Params
		}
	} else {
		seed = itemInput(nil)
	}

	return map[string]any{
		"item":   item,
		"seed":   seed,
		"label":  labels,
		"params": params,
	}
}
