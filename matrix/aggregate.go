// Package matrix 负责把交互日志变成可计算的结构：
// 聚合 (user, product) 权重、构建用户-物品矩阵、计算热门榜。
package matrix

import (
	"sort"

	"github.com/rushteam/recmall/core"
)

// Aggregated 是聚合后的一条用户-商品权重。
type Aggregated struct {
	UserID    string
	ProductID string
	Strength  float64 // 该 (user, product) 全部事件权重之和
}

// Aggregate 把事件级交互记录折叠成每个 (user, product) 一条加权记录。
// 同对多条记录的权重求和；与输入顺序无关；空输入得到空结果。
// Strength 为 0 的记录直接使用事件类型的默认权重。
func Aggregate(interactions []core.Interaction) []Aggregated {
	type pair struct {
		user, product string
	}
	sums := make(map[pair]float64, len(interactions))
	for _, in := range interactions {
		s := in.Strength
		if s == 0 {
			s = in.Event.Strength()
		}
		sums[pair{in.UserID, in.ProductID}] += float64(s)
	}

	out := make([]Aggregated, 0, len(sums))
	for p, s := range sums {
		out = append(out, Aggregated{UserID: p.user, ProductID: p.product, Strength: s})
	}
	// map 遍历无序，这里排一次，保证结果确定
	sort.Slice(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].ProductID < out[j].ProductID
	})
	return out
}
