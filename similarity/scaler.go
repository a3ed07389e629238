package similarity

import "math"

// StandardScaler 对数值特征做 z-score 标准化：(x - mean) / std。
// 拟合一次之后就是纯变换；参数随模型一起持久化，
// 保证跨越重训边界时同一目录编码出一致的特征向量。
type StandardScaler struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// FitScaler 在给定样本上拟合均值与标准差（总体标准差）。
func FitScaler(values []float64) *StandardScaler {
	s := &StandardScaler{}
	if len(values) == 0 {
		return s
	}
	for _, v := range values {
		s.Mean += v
	}
	s.Mean /= float64(len(values))

	var variance float64
	for _, v := range values {
		d := v - s.Mean
		variance += d * d
	}
	s.Std = math.Sqrt(variance / float64(len(values)))
	return s
}

// Transform 标准化单个取值。std 为 0（所有样本同值）时返回 0。
func (s *StandardScaler) Transform(v float64) float64 {
	if s == nil || s.Std == 0 {
		return 0
	}
	return (v - s.Mean) / s.Std
}
