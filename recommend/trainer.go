package recommend

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/recmall/core"
	"github.com/rushteam/recmall/feature"
	"github.com/rushteam/recmall/matrix"
	"github.com/rushteam/recmall/similarity"
)

// Option 配置训练行为。
type Option func(*trainConfig)

type trainConfig struct {
	params   Params
	provider feature.Provider
}

// WithHybridWeights 设置混合投票权重（和必须为正）。
func WithHybridWeights(item, user, content float64) Option {
	return func(c *trainConfig) {
		c.params.Weights = Weights{Item: item, User: user, Content: content}
	}
}

// WithSimilarUsers 设置 User-CF 参与打分的相似用户数。
func WithSimilarUsers(k int) Option {
	return func(c *trainConfig) { c.params.SimilarUsers = k }
}

// WithFeatureProvider 接入在线特征源：编码内容特征时用它的
// 实时价格/评分覆盖目录值。不设置时只用目录数据，训练不依赖外部服务。
func WithFeatureProvider(p feature.Provider) Option {
	return func(c *trainConfig) { c.provider = p }
}

// Train 执行一次批量训练：
//
//	聚合交互 → 构建用户-物品矩阵 + 热门榜 → 并行构建三个相似度矩阵 → 组装 Model
//
// 空交互日志不是错误：得到空矩阵和空热门榜，之后所有查询返回空列表。
// 三个相似度构建彼此无数据依赖，并行纯属性能优化。
func Train(ctx context.Context, products []core.Product, interactions []core.Interaction, opts ...Option) (*Model, error) {
	cfg := &trainConfig{params: DefaultParams()}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.params.Weights.Sum() <= 0 {
		return nil, core.NewDomainError(core.ModuleRecommend, core.ErrorCodeInvalidInput,
			"recommend: hybrid weights must have a positive sum")
	}

	catalog := core.NewCatalog(products)
	ui := matrix.Build(matrix.Aggregate(interactions))
	popularity := matrix.BuildPopularity(interactions)

	overrides, err := fetchOverrides(ctx, cfg.provider, catalog)
	if err != nil {
		return nil, fmt.Errorf("fetch product features: %w", err)
	}

	model := &Model{
		Matrix:     ui,
		Popularity: popularity,
		Catalog:    catalog,
		Params:     cfg.params,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sim, err := similarity.ItemCollaborative(gctx, ui)
		if err != nil {
			return fmt.Errorf("build item similarity: %w", err)
		}
		model.ItemSim = sim
		return nil
	})
	g.Go(func() error {
		sim, err := similarity.UserCollaborative(gctx, ui)
		if err != nil {
			return fmt.Errorf("build user similarity: %w", err)
		}
		model.UserSim = sim
		return nil
	})
	g.Go(func() error {
		sim, fs, err := similarity.Content(gctx, catalog, overrides)
		if err != nil {
			return fmt.Errorf("build content similarity: %w", err)
		}
		model.ContentSim = sim
		model.Features = fs
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return model, nil
}

// fetchOverrides 从特征源为整个目录拉取实时数值特征。
func fetchOverrides(ctx context.Context, p feature.Provider, catalog *core.Catalog) (map[string]similarity.NumericOverride, error) {
	if p == nil {
		return nil, nil
	}
	values, err := p.ProductFeatures(ctx, catalog.IDs())
	if err != nil {
		return nil, err
	}
	overrides := make(map[string]similarity.NumericOverride, len(values))
	for id, v := range values {
		overrides[id] = similarity.NumericOverride{Price: v.Price, Rating: v.Rating}
	}
	return overrides, nil
}
