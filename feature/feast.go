package feature

import (
	"context"
	"fmt"

	feastsdk "github.com/feast-dev/feast/sdk/go"
	feasttypes "github.com/feast-dev/feast/sdk/go/protos/feast/types"
)

// Feast 配置项默认值。
const (
	defaultFeastPort     = 6565
	defaultEntityName    = "product_id"
	defaultPriceFeature  = "product_stats:price"
	defaultRatingFeature = "product_stats:rating"
)

// FeastProvider 是基于官方 Feast Go SDK 的特征源实现：
// 从 Feast 在线存储按 product_id 实体批量拉取价格/评分。
//
// 工程定位：目录 CSV 里的价格/评分是生成快照时的值，
// 接了 Feast 之后训练可以拿到运营侧最新的数值，而不必重新导出目录。
type FeastProvider struct {
	client  *feastsdk.GrpcClient
	project string

	// Entity 实体列名，默认 "product_id"
	Entity string

	// PriceFeature / RatingFeature 特征全名（featureview:feature），
	// 默认 "product_stats:price" / "product_stats:rating"
	PriceFeature  string
	RatingFeature string
}

// NewFeastProvider 连接 Feast Feature Server（gRPC）。
func NewFeastProvider(host string, port int, project string) (*FeastProvider, error) {
	if port == 0 {
		port = defaultFeastPort
	}
	client, err := feastsdk.NewGrpcClient(host, port)
	if err != nil {
		return nil, fmt.Errorf("connect feast at %s:%d: %w", host, port, err)
	}
	return &FeastProvider{
		client:        client,
		project:       project,
		Entity:        defaultEntityName,
		PriceFeature:  defaultPriceFeature,
		RatingFeature: defaultRatingFeature,
	}, nil
}

func (p *FeastProvider) Name() string { return "feast" }

// ProductFeatures 实现 Provider 接口。
// 任一特征缺失（NULL/未物化）的商品整行跳过，调用方回退到目录值。
func (p *FeastProvider) ProductFeatures(ctx context.Context, productIDs []string) (map[string]Values, error) {
	if len(productIDs) == 0 {
		return map[string]Values{}, nil
	}

	entityRows := make([]feastsdk.Row, len(productIDs))
	for i, id := range productIDs {
		entityRows[i] = feastsdk.Row{p.Entity: feastsdk.StrVal(id)}
	}
	resp, err := p.client.GetOnlineFeatures(ctx, &feastsdk.OnlineFeaturesRequest{
		Features: []string{p.PriceFeature, p.RatingFeature},
		Entities: entityRows,
		Project:  p.project,
	})
	if err != nil {
		return nil, fmt.Errorf("feast get online features: %w", err)
	}

	rows := resp.Rows()
	if len(rows) != len(productIDs) {
		return nil, fmt.Errorf("feast response row count mismatch: expected %d, got %d", len(productIDs), len(rows))
	}

	out := make(map[string]Values, len(rows))
	for i, row := range rows {
		price, ok := numericValue(row[p.PriceFeature])
		if !ok {
			continue
		}
		rating, ok := numericValue(row[p.RatingFeature])
		if !ok {
			continue
		}
		out[productIDs[i]] = Values{Price: price, Rating: rating}
	}
	return out, nil
}

// Close 关闭底层 gRPC 连接。
func (p *FeastProvider) Close() error {
	return p.client.Close()
}

// numericValue 从 Feast 的 Value proto 中取出数值特征。
func numericValue(v *feasttypes.Value) (float64, bool) {
	if v == nil {
		return 0, false
	}
	switch val := v.Val.(type) {
	case *feasttypes.Value_DoubleVal:
		return val.DoubleVal, true
	case *feasttypes.Value_FloatVal:
		return float64(val.FloatVal), true
	case *feasttypes.Value_Int64Val:
		return float64(val.Int64Val), true
	case *feasttypes.Value_Int32Val:
		return float64(val.Int32Val), true
	default:
		return 0, false
	}
}
