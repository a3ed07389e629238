package recommend

import (
	"sort"

	"github.com/rushteam/recmall/similarity"
)

// itemBased 计算 Item-CF 推荐：
//
//	score(j) = Σ_{i∈I(u)} strength(u,i) · itemSim(i,j)
//
// 相似度矩阵已在训练时算好，这里只做加权累加。
func (m *Model) itemBased(userID string, n int) []string {
	interacted := m.Matrix.UserItems(userID)
	if len(interacted) == 0 {
		return nil
	}
	return scoreBySimilarity(m.ItemSim, interacted, n)
}

// contentBased 与 itemBased 结构完全一致，只是换用内容相似度矩阵。
// 内容矩阵覆盖整个目录，因此可以召回没有任何交互历史的商品。
func (m *Model) contentBased(userID string, n int) []string {
	interacted := m.Matrix.UserItems(userID)
	if len(interacted) == 0 {
		return nil
	}
	return scoreBySimilarity(m.ContentSim, interacted, n)
}

// scoreBySimilarity 在给定相似度矩阵上做加权累加。
// 用户历史按矩阵 id 顺序遍历（而不是直接 range map），
// 浮点求和顺序固定，同样的输入永远得到同样的排序。
func scoreBySimilarity(sim *similarity.Matrix, interacted map[string]float64, n int) []string {
	ids := sim.IDs
	scores := make([]float64, len(ids))
	for _, historyID := range ids {
		strength, ok := interacted[historyID]
		if !ok {
			continue
		}
		row, ok := sim.Row(historyID)
		if !ok {
			continue
		}
		for j := range row {
			scores[j] += strength * row[j]
		}
	}
	return rankCandidates(ids, scores, interacted, n)
}

// userBased 计算 User-CF 推荐：
// 取与 u 最相似的 SimilarUsers 个其他用户（不含自己），
//
//	score(j) = Σ_{v∈top} strength(v,j) · userSim(u,v)
//
// 再剔除 u 已交互的商品。
func (m *Model) userBased(userID string, n int) []string {
	simRow, ok := m.UserSim.Row(userID)
	if !ok {
		return nil
	}
	interacted := m.Matrix.UserItems(userID)

	// 其他用户按相似度降序，平分时保持矩阵行顺序
	type neighbor struct {
		idx int
		sim float64
	}
	neighbors := make([]neighbor, 0, len(m.UserSim.IDs))
	for i, id := range m.UserSim.IDs {
		if id == userID {
			continue
		}
		neighbors = append(neighbors, neighbor{idx: i, sim: simRow[i]})
	}
	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].sim > neighbors[j].sim
	})
	topK := m.Params.SimilarUsers
	if topK <= 0 {
		topK = DefaultParams().SimilarUsers
	}
	if topK < len(neighbors) {
		neighbors = neighbors[:topK]
	}

	items := m.Matrix.Items
	scores := make([]float64, len(items))
	for _, nb := range neighbors {
		row, ok := m.Matrix.UserRow(m.UserSim.IDs[nb.idx])
		if !ok {
			continue
		}
		for j := range row {
			scores[j] += row[j] * nb.sim
		}
	}
	return rankCandidates(items, scores, interacted, n)
}
