// Package recommend 实现推荐引擎本体：批量训练出不可变的 Model，
// 按方法打分（i2i / u2i / 内容 / 混合），冷启动与空结果统一走热门兜底。
package recommend

import (
	"context"
	"fmt"
	"sort"

	"github.com/rushteam/recmall/core"
	"github.com/rushteam/recmall/matrix"
	"github.com/rushteam/recmall/similarity"
)

// Params 是查询期参数，训练时固化进 Model。
type Params struct {
	// Weights 混合投票的三路权重。只看相对大小，和必须为正，不必为 1。
	Weights Weights `json:"weights"`

	// SimilarUsers User-CF 参与打分的最相似用户数（不含自己）。
	SimilarUsers int `json:"similar_users"`
}

// Weights 是混合方法的三路投票权重。
type Weights struct {
	Item    float64 `json:"item"`
	User    float64 `json:"user"`
	Content float64 `json:"content"`
}

// Sum 返回权重之和。
func (w Weights) Sum() float64 { return w.Item + w.User + w.Content }

// DefaultParams 返回默认查询参数：权重 0.4/0.3/0.3，相似用户数 10。
func DefaultParams() Params {
	return Params{
		Weights:      Weights{Item: 0.4, User: 0.3, Content: 0.3},
		SimilarUsers: 10,
	}
}

// Model 是一次训练的全部产物：用户-物品矩阵、三个相似度矩阵、
// 热门榜、内容特征空间、目录快照。
//
// 训练完成后整体不可变，任意多个调用方可以无锁并发查询。
// 没有增量更新路径：新交互需要重训，然后整体替换（见 Engine.Swap）。
type Model struct {
	Matrix     *matrix.UserItem
	ItemSim    *similarity.Matrix
	UserSim    *similarity.Matrix
	ContentSim *similarity.Matrix
	Popularity []string
	Features   *similarity.FeatureSpace
	Catalog    *core.Catalog

	Params Params
}

// ErrNotReady 表示引擎尚未加载任何模型。
var ErrNotReady = core.NewDomainError(core.ModuleRecommend, core.ErrorCodeNotReady,
	"recommend: no trained model loaded")

// Recommend 为用户生成 top-n 推荐，返回有序的商品 ID 列表。
//
// 兜底规则（§冷启动）在两处生效：
//   - dispatch 之前：用户不在训练矩阵里 ⇒ 直接返回热门 top-n
//   - dispatch 之后：所选方法产出为空 ⇒ 返回热门 top-n
//
// 未知 method 是契约违反，返回 INVALID_INPUT，绝不静默换成默认方法。
func (m *Model) Recommend(ctx context.Context, userID string, n int, method core.Method) ([]string, error) {
	if n <= 0 {
		return nil, core.NewDomainError(core.ModuleRecommend, core.ErrorCodeInvalidInput,
			fmt.Sprintf("recommend: non-positive count %d", n))
	}
	if !method.Valid() {
		return nil, core.NewDomainError(core.ModuleRecommend, core.ErrorCodeInvalidInput,
			fmt.Sprintf("recommend: unknown method %v", method))
	}

	if !m.Matrix.HasUser(userID) {
		return m.PopularTopN(n), nil
	}

	var (
		recs []string
		err  error
	)
	switch method {
	case core.MethodItemBased:
		recs = m.itemBased(userID, n)
	case core.MethodUserBased:
		recs = m.userBased(userID, n)
	case core.MethodContentBased:
		recs = m.contentBased(userID, n)
	case core.MethodHybrid:
		recs, err = m.hybrid(ctx, userID, n)
	}
	if err != nil {
		return nil, err
	}

	if len(recs) == 0 {
		return m.PopularTopN(n), nil
	}
	return recs, nil
}

// PopularTopN 返回热门榜前 n 个商品。空榜返回空列表，不是错误。
func (m *Model) PopularTopN(n int) []string {
	if n > len(m.Popularity) {
		n = len(m.Popularity)
	}
	if n <= 0 {
		return []string{}
	}
	return append([]string(nil), m.Popularity[:n]...)
}

// Lookup 返回与给定 ID 匹配的商品行，不保证顺序。
func (m *Model) Lookup(ids []string) []core.Product {
	return m.Catalog.Lookup(ids)
}

// Reindex 重建模型内全部下标表。反序列化之后必须调用一次。
func (m *Model) Reindex() {
	m.Matrix.Reindex()
	m.ItemSim.Reindex()
	m.UserSim.Reindex()
	m.ContentSim.Reindex()
	m.Features.Reindex()
}

// rankCandidates 把打分结果变成有序候选：剔除已交互商品，
// 按分数降序稳定排序（平分时保持 ids 的迭代顺序），截断到 n。
func rankCandidates(ids []string, scores []float64, interacted map[string]float64, n int) []string {
	type scored struct {
		id    string
		score float64
	}
	candidates := make([]scored, 0, len(ids))
	for i, id := range ids {
		if _, seen := interacted[id]; seen {
			continue
		}
		candidates = append(candidates, scored{id: id, score: scores[i]})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if n < len(candidates) {
		candidates = candidates[:n]
	}
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.id
	}
	return out
}
