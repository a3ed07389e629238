// Package feature 定义商品数值特征的外部来源。
// 训练默认只用目录数据；接入 Provider 后，内容特征编码
// 会用特征源的实时价格/评分覆盖目录值。
package feature

import "context"

// Values 是单个商品的数值特征。
type Values struct {
	Price  float64
	Rating float64
}

// Provider 是特征源的领域接口（定义在使用方，由基础设施实现）。
type Provider interface {
	// Name 返回特征源名称（用于日志/监控）
	Name() string

	// ProductFeatures 批量拉取商品特征。
	// 特征源里没有的商品不出现在结果里，调用方回退到目录值。
	ProductFeatures(ctx context.Context, productIDs []string) (map[string]Values, error)
}
