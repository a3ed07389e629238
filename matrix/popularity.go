package matrix

import (
	"sort"

	"github.com/rushteam/recmall/core"
)

// popularity 权重：总权重占 7 成，交互次数占 3 成。
const (
	popularityStrengthWeight = 0.7
	popularityCountWeight    = 0.3
)

// BuildPopularity 从交互日志计算全局热门榜，降序返回商品 ID。
//
//	score(p) = 0.7·Σstrength + 0.3·count
//
// 只作为冷启动/空结果的兜底使用；交互日志变化后需要重算。
// 同分商品按 ID 升序，保证榜单确定。
func BuildPopularity(interactions []core.Interaction) []string {
	type stat struct {
		strength float64
		count    int
	}
	stats := make(map[string]*stat)
	for _, in := range interactions {
		s := in.Strength
		if s == 0 {
			s = in.Event.Strength()
		}
		st, ok := stats[in.ProductID]
		if !ok {
			st = &stat{}
			stats[in.ProductID] = st
		}
		st.strength += float64(s)
		st.count++
	}

	type ranked struct {
		id    string
		score float64
	}
	items := make([]ranked, 0, len(stats))
	for id, st := range stats {
		items = append(items, ranked{
			id:    id,
			score: st.strength*popularityStrengthWeight + float64(st.count)*popularityCountWeight,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].score != items[j].score {
			return items[i].score > items[j].score
		}
		return items[i].id < items[j].id
	})

	out := make([]string, len(items))
	for i, r := range items {
		out[i] = r.id
	}
	return out
}
