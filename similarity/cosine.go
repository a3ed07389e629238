// Package similarity 实现三个相似度引擎：
// Item-CF（矩阵列向量）、User-CF（矩阵行向量）、内容相似（商品属性向量）。
// 三者都输出对称的相似度矩阵，训练后只读。
package similarity

import "math"

// Cosine 计算余弦相似度：sim(a,b) = (a·b) / (‖a‖·‖b‖)。
// 任一向量全零时返回 0（除零保护是语义的一部分，不是防御式写法）。
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Matrix 是对称相似度矩阵：方阵、对角线恒为 1（自相似）、
// 协同取值落在 [0,1]（权重非负），内容取值落在 [-1,1]（标准化价格可为负）。
// 作为派生产物，来源矩阵/目录变化后整体重建，绝不原地修改。
type Matrix struct {
	IDs  []string    `json:"ids"`
	Data [][]float64 `json:"data"`

	index map[string]int
}

// NewMatrix 创建一个单位对角的相似度矩阵（其余格子为 0）。
func NewMatrix(ids []string) *Matrix {
	m := &Matrix{
		IDs:  append([]string(nil), ids...),
		Data: make([][]float64, len(ids)),
	}
	for i := range m.Data {
		m.Data[i] = make([]float64, len(ids))
		m.Data[i][i] = 1
	}
	m.Reindex()
	return m
}

// Reindex 重建 id→下标表。反序列化之后必须调用一次。
func (m *Matrix) Reindex() {
	m.index = make(map[string]int, len(m.IDs))
	for i, id := range m.IDs {
		m.index[id] = i
	}
}

// Len 返回矩阵阶数。
func (m *Matrix) Len() int {
	if m == nil {
		return 0
	}
	return len(m.IDs)
}

// Has 判断 id 是否在矩阵里。
func (m *Matrix) Has(id string) bool {
	if m == nil {
		return false
	}
	_, ok := m.index[id]
	return ok
}

// Sim 返回两个 id 的相似度；任一 id 不在矩阵里返回 0。
func (m *Matrix) Sim(a, b string) float64 {
	if m == nil {
		return 0
	}
	i, ok := m.index[a]
	if !ok {
		return 0
	}
	j, ok := m.index[b]
	if !ok {
		return 0
	}
	return m.Data[i][j]
}

// Row 返回 id 对应的整行（内部切片，调用方不得修改）及其下标表位置。
func (m *Matrix) Row(id string) ([]float64, bool) {
	if m == nil {
		return nil, false
	}
	i, ok := m.index[id]
	if !ok {
		return nil, false
	}
	return m.Data[i], true
}
