// Package filter 对排好序的推荐结果做属性规则过滤。
// 规则用 CEL 表达式描述，作用在商品目录属性上，
// 例如 `product.price < 500.0 && product.rating >= 4.0`。
package filter

import (
	"context"

	"github.com/rushteam/recmall/core"
	"github.com/rushteam/recmall/pkg/dsl"
)

// Rule 是编译好的属性过滤规则，线程安全。
type Rule struct {
	prg *dsl.Program
}

// NewRule 编译过滤表达式。语法错误在构建时报出。
func NewRule(expr string) (*Rule, error) {
	prg, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &Rule{prg: prg}, nil
}

// Expr 返回规则的表达式文本。
func (r *Rule) Expr() string { return r.prg.Expr() }

// Apply 过滤一个有序的商品 ID 列表，保序返回通过规则的 ID。
// 不在目录里的 ID（理论上不会出现）原样保留——规则只看得到属性的商品。
func (r *Rule) Apply(ctx context.Context, catalog *core.Catalog, userID string, ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	user := map[string]any{"id": userID}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, ok := catalog.Get(id)
		if !ok {
			out = append(out, id)
			continue
		}
		keep, err := r.prg.EvalBool(map[string]any{
			"product": productInput(p),
			"user":    user,
		})
		if err != nil {
			return nil, err
		}
		if keep {
			out = append(out, id)
		}
	}
	return out, nil
}

func productInput(p core.Product) map[string]any {
	return map[string]any{
		"id":           p.ID,
		"name":         p.Name,
		"category":     p.Category,
		"sub_category": p.SubCategory,
		"brand":        p.Brand,
		"price":        p.Price,
		"rating":       p.Rating,
		"num_reviews":  p.NumReviews,
	}
}
