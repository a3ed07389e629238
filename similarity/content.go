package similarity

import (
	"context"
	"sort"

	"github.com/rushteam/recmall/core"
)

// NumericOverride 允许用外部特征源（如在线特征库）的实时数值
// 覆盖目录里的价格与评分，仅在编码特征向量时生效。
type NumericOverride struct {
	Price  float64
	Rating float64
}

// FeatureSpace 定义内容特征向量的编码方式：
// one-hot 类目 + one-hot 品牌 + 标准化价格 + 原始评分。
// 词表按字典序固定，Scaler 只对价格拟合一次；
// 整个 FeatureSpace 随模型持久化，以便之后对同一目录编码出相同的向量。
type FeatureSpace struct {
	Categories []string        `json:"categories"`
	Brands     []string        `json:"brands"`
	Scaler     *StandardScaler `json:"scaler"`

	categoryIndex map[string]int
	brandIndex    map[string]int
}

// FitFeatureSpace 在整个商品目录上拟合特征空间。
// 内容引擎覆盖全目录（而非只有交互过的商品），
// 因此它是唯一能召回零交互商品的方法。
func FitFeatureSpace(products []core.Product, overrides map[string]NumericOverride) *FeatureSpace {
	categories := make(map[string]struct{})
	brands := make(map[string]struct{})
	prices := make([]float64, 0, len(products))
	for _, p := range products {
		categories[p.Category] = struct{}{}
		brands[p.Brand] = struct{}{}
		price := p.Price
		if ov, ok := overrides[p.ID]; ok {
			price = ov.Price
		}
		prices = append(prices, price)
	}

	fs := &FeatureSpace{
		Categories: sortedKeys(categories),
		Brands:     sortedKeys(brands),
		Scaler:     FitScaler(prices),
	}
	fs.Reindex()
	return fs
}

// Reindex 重建词表下标。反序列化之后必须调用一次。
func (fs *FeatureSpace) Reindex() {
	fs.categoryIndex = make(map[string]int, len(fs.Categories))
	for i, c := range fs.Categories {
		fs.categoryIndex[c] = i
	}
	fs.brandIndex = make(map[string]int, len(fs.Brands))
	for i, b := range fs.Brands {
		fs.brandIndex[b] = i
	}
}

// Dim 返回特征向量维度：|类目| + |品牌| + 价格 + 评分。
func (fs *FeatureSpace) Dim() int {
	return len(fs.Categories) + len(fs.Brands) + 2
}

// Encode 把商品编码成特征向量。词表外的类目/品牌位全零。
func (fs *FeatureSpace) Encode(p core.Product, override *NumericOverride) []float64 {
	vec := make([]float64, fs.Dim())
	if i, ok := fs.categoryIndex[p.Category]; ok {
		vec[i] = 1
	}
	if i, ok := fs.brandIndex[p.Brand]; ok {
		vec[len(fs.Categories)+i] = 1
	}
	price, rating := p.Price, p.Rating
	if override != nil {
		price, rating = override.Price, override.Rating
	}
	vec[fs.Dim()-2] = fs.Scaler.Transform(price)
	vec[fs.Dim()-1] = rating
	return vec
}

// Content 在整个目录上构建内容相似度矩阵，并返回拟合好的特征空间。
func Content(ctx context.Context, catalog *core.Catalog, overrides map[string]NumericOverride) (*Matrix, *FeatureSpace, error) {
	products := catalog.Products()
	fs := FitFeatureSpace(products, overrides)

	ids := make([]string, len(products))
	vectors := make([][]float64, len(products))
	for i, p := range products {
		ids[i] = p.ID
		var ov *NumericOverride
		if o, ok := overrides[p.ID]; ok {
			ov = &o
		}
		vectors[i] = fs.Encode(p, ov)
	}

	sim, err := pairwise(ctx, ids, vectors)
	if err != nil {
		return nil, nil, err
	}
	return sim, fs, nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
