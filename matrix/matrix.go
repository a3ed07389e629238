package matrix

// UserItem 是用户-物品交互矩阵。
//
// 内部采用 arena + index 形态：维护 id→下标表，数据放在连续的稠密行上，
// 相似度计算直接扫数组，对外只暴露按 ID 的访问器。
// 行/列的下标集合恰好是交互日志里出现过的用户和商品——
// 零交互商品不在矩阵里，协同方法触达不到它。
//
// 训练完成后不可变，可被任意多个调用方并发只读。
type UserItem struct {
	Users []string    `json:"users"` // 行 id，按加入顺序
	Items []string    `json:"items"` // 列 id，按加入顺序
	Rows  [][]float64 `json:"rows"`  // Rows[u][i] = 聚合权重，缺省为 0

	userIndex map[string]int
	itemIndex map[string]int
}

// Build 从聚合结果构建矩阵。空输入得到 0 行 0 列的矩阵——
// 这是"无训练信号"，不是错误，调用方在查询时会得到空结果。
func Build(aggregated []Aggregated) *UserItem {
	m := &UserItem{
		userIndex: make(map[string]int),
		itemIndex: make(map[string]int),
	}
	// 先定形：两遍扫描，id 按首次出现的顺序入表
	for _, a := range aggregated {
		if _, ok := m.userIndex[a.UserID]; !ok {
			m.userIndex[a.UserID] = len(m.Users)
			m.Users = append(m.Users, a.UserID)
		}
		if _, ok := m.itemIndex[a.ProductID]; !ok {
			m.itemIndex[a.ProductID] = len(m.Items)
			m.Items = append(m.Items, a.ProductID)
		}
	}
	m.Rows = make([][]float64, len(m.Users))
	for u := range m.Rows {
		m.Rows[u] = make([]float64, len(m.Items))
	}
	for _, a := range aggregated {
		m.Rows[m.userIndex[a.UserID]][m.itemIndex[a.ProductID]] += a.Strength
	}
	return m
}

// Reindex 重建内部的 id→下标表。反序列化之后必须调用一次。
func (m *UserItem) Reindex() {
	m.userIndex = make(map[string]int, len(m.Users))
	for i, u := range m.Users {
		m.userIndex[u] = i
	}
	m.itemIndex = make(map[string]int, len(m.Items))
	for i, it := range m.Items {
		m.itemIndex[it] = i
	}
}

// NumUsers 返回行数。
func (m *UserItem) NumUsers() int { return len(m.Users) }

// NumItems 返回列数。
func (m *UserItem) NumItems() int { return len(m.Items) }

// HasUser 判断用户是否出现在训练数据里。不在 ⇒ 冷启动，走热门兜底。
func (m *UserItem) HasUser(userID string) bool {
	_, ok := m.userIndex[userID]
	return ok
}

// HasItem 判断商品是否有过交互。
func (m *UserItem) HasItem(productID string) bool {
	_, ok := m.itemIndex[productID]
	return ok
}

// Strength 返回 (user, product) 的聚合权重，矩阵外的组合为 0。
func (m *UserItem) Strength(userID, productID string) float64 {
	u, ok := m.userIndex[userID]
	if !ok {
		return 0
	}
	i, ok := m.itemIndex[productID]
	if !ok {
		return 0
	}
	return m.Rows[u][i]
}

// UserRow 返回用户的整行（内部切片，调用方不得修改）。
func (m *UserItem) UserRow(userID string) ([]float64, bool) {
	u, ok := m.userIndex[userID]
	if !ok {
		return nil, false
	}
	return m.Rows[u], true
}

// ItemColumn 返回商品的整列（新分配的切片）。
func (m *UserItem) ItemColumn(productID string) ([]float64, bool) {
	i, ok := m.itemIndex[productID]
	if !ok {
		return nil, false
	}
	col := make([]float64, len(m.Users))
	for u := range m.Rows {
		col[u] = m.Rows[u][i]
	}
	return col, true
}

// UserItems 返回用户有过交互（权重非零）的商品集合。
func (m *UserItem) UserItems(userID string) map[string]float64 {
	u, ok := m.userIndex[userID]
	if !ok {
		return nil
	}
	out := make(map[string]float64)
	for i, s := range m.Rows[u] {
		if s > 0 {
			out[m.Items[i]] = s
		}
	}
	return out
}
