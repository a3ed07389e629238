package recommend

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/recmall/core"
)

// hybrid 做三路加权投票：
//
//  1. 向每个底层方法要 2n 个候选，给投票留出宽度
//  2. 列表中第 r 名（0 起）得票 (len − r) · weight，同一商品跨方法累加
//  3. 按总票降序，平票按"首次出现"的先后，截断到 n
//
// 三路召回相互独立、共享的模型只读，直接并发执行。
func (m *Model) hybrid(ctx context.Context, userID string, n int) ([]string, error) {
	weights := m.Params.Weights
	if weights.Sum() <= 0 {
		return nil, core.NewDomainError(core.ModuleRecommend, core.ErrorCodeInvalidInput,
			"recommend: hybrid weights must have a positive sum")
	}

	breadth := n * 2
	var lists [3][]string
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { lists[0] = m.itemBased(userID, breadth); return nil })
	g.Go(func() error { lists[1] = m.userBased(userID, breadth); return nil })
	g.Go(func() error { lists[2] = m.contentBased(userID, breadth); return nil })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	votes := make(map[string]float64)
	var order []string // 首次出现的顺序，作为平票时的决胜
	perList := []float64{weights.Item, weights.User, weights.Content}
	for li, list := range lists {
		for r, id := range list {
			if _, ok := votes[id]; !ok {
				order = append(order, id)
			}
			votes[id] += float64(len(list)-r) * perList[li]
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return votes[order[i]] > votes[order[j]]
	})
	if n < len(order) {
		order = order[:n]
	}
	return order, nil
}
