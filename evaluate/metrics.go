package evaluate

import "math"

// Metrics 单个用户在某个 K 下的四项排序质量指标。
type Metrics struct {
	Precision float64
	Recall    float64
	F1        float64
	NDCG      float64
}

// PrecisionAt Precision@K：前 K 条推荐中命中相关集合的比例。
// 分母固定为 K，推荐不足 K 条时空位视为未命中。
func PrecisionAt(recommended, relevant []string, k int) float64 {
	if k <= 0 {
		return 0
	}
	return float64(hitsAt(recommended, relevant, k)) / float64(k)
}

// RecallAt Recall@K：相关集合中被前 K 条推荐覆盖的比例。
func RecallAt(recommended, relevant []string, k int) float64 {
	if len(relevant) == 0 {
		return 0
	}
	return float64(hitsAt(recommended, relevant, k)) / float64(len(relevant))
}

// F1 精确率与召回率的调和平均，两者之和为 0 时返回 0。
func F1(precision, recall float64) float64 {
	if precision+recall == 0 {
		return 0
	}
	return 2 * precision * recall / (precision + recall)
}

// NDCGAt NDCG@K：按 1/log2(i+2) 折损的命中增益，
// 除以理想排序（前 min(|relevant|, K) 位全命中）的折损增益。
func NDCGAt(recommended, relevant []string, k int) float64 {
	if k <= 0 || len(relevant) == 0 {
		return 0
	}
	rel := toSet(relevant)
	n := k
	if len(recommended) < n {
		n = len(recommended)
	}
	var dcg float64
	for i := 0; i < n; i++ {
		if rel[recommended[i]] {
			dcg += 1 / math.Log2(float64(i)+2)
		}
	}
	ideal := len(relevant)
	if ideal > k {
		ideal = k
	}
	var idcg float64
	for i := 0; i < ideal; i++ {
		idcg += 1 / math.Log2(float64(i)+2)
	}
	if idcg == 0 {
		return 0
	}
	return dcg / idcg
}

// MetricsAt 一次算齐四项指标。
func MetricsAt(recommended, relevant []string, k int) Metrics {
	p := PrecisionAt(recommended, relevant, k)
	r := RecallAt(recommended, relevant, k)
	return Metrics{
		Precision: p,
		Recall:    r,
		F1:        F1(p, r),
		NDCG:      NDCGAt(recommended, relevant, k),
	}
}

func hitsAt(recommended, relevant []string, k int) int {
	rel := toSet(relevant)
	n := k
	if len(recommended) < n {
		n = len(recommended)
	}
	hits := 0
	for i := 0; i < n; i++ {
		if rel[recommended[i]] {
			hits++
		}
	}
	return hits
}

func toSet(ids []string) map[string]bool {
	s := make(map[string]bool, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}
