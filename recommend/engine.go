package recommend

import (
	"context"
	"sync/atomic"

	"github.com/rushteam/recmall/core"
	"github.com/rushteam/recmall/filter"
)

// Engine 是面向调用方的查询入口：持有当前生效的 Model，
// 重训后用 Swap 原子替换——新模型要么整体可见要么不可见，
// 绝不会出现半新半旧的中间状态。
//
// Engine 自身无锁：Model 不可变，替换走 atomic.Pointer。
type Engine struct {
	model atomic.Pointer[Model]

	// rule 可选的属性规则过滤，作用在排好序的结果上
	rule *filter.Rule
}

// EngineOption 配置 Engine。
type EngineOption func(*Engine)

// WithFilter 设置属性规则过滤。过滤在各方法排序之后、截断之前生效，
// 对兜底的热门结果同样生效。
func WithFilter(rule *filter.Rule) EngineOption {
	return func(e *Engine) { e.rule = rule }
}

// NewEngine 创建一个空引擎。加载模型之前所有查询返回 NOT_READY。
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Swap 原子替换当前模型，返回被换下的旧模型（可能为 nil）。
func (e *Engine) Swap(m *Model) *Model {
	return e.model.Swap(m)
}

// Model 返回当前生效的模型，未加载时为 nil。
func (e *Engine) Model() *Model {
	return e.model.Load()
}

// Recommend 为用户生成 top-n 推荐。
// 配置了过滤规则时，先向模型多要一倍候选，过滤后再截断到 n。
func (e *Engine) Recommend(ctx context.Context, userID string, n int, method core.Method) ([]string, error) {
	m := e.model.Load()
	if m == nil {
		return nil, ErrNotReady
	}
	if e.rule == nil {
		return m.Recommend(ctx, userID, n, method)
	}

	recs, err := m.Recommend(ctx, userID, n*2, method)
	if err != nil {
		return nil, err
	}
	recs, err = e.rule.Apply(ctx, m.Catalog, userID, recs)
	if err != nil {
		return nil, err
	}
	if n < len(recs) {
		recs = recs[:n]
	}
	return recs, nil
}

// Lookup 返回与给定 ID 匹配的商品行，不保证顺序。
// 未加载模型时返回空。
func (e *Engine) Lookup(ids []string) []core.Product {
	m := e.model.Load()
	if m == nil {
		return nil
	}
	return m.Lookup(ids)
}
