// Package persist 负责已训练模型的持久化。
//
// 不做"一坨整体序列化"：每个训练产物（矩阵、相似度、热门榜、特征空间）
// 按名字独立成条目写入 core.Store，再加一个带格式版本的 manifest。
// 这样可以做前向兼容加载，也可以只取某个条目做检查而不必反序列化全部。
//
// 原子可见性约定：manifest 最后写。读取方永远先读 manifest，
// 所以一次保存要么整体可见（manifest 已落），要么整体不可见。
package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rushteam/recmall/core"
	"github.com/rushteam/recmall/matrix"
	"github.com/rushteam/recmall/recommend"
	"github.com/rushteam/recmall/similarity"
)

// FormatVersion 是快照格式版本。结构不兼容时递增。
const FormatVersion = 1

// Store key 约定。FileStore 会把 ':' 展开成子目录。
const (
	keyManifest   = "recmall:model:manifest"
	keyMatrix     = "recmall:model:matrix"
	keyItemSim    = "recmall:model:item_sim"
	keyUserSim    = "recmall:model:user_sim"
	keyContentSim = "recmall:model:content_sim"
	keyPopularity = "recmall:model:popularity"
	keyFeatures   = "recmall:model:features"
	keyParams     = "recmall:model:params"

	// KeyCatalog 目录快照独立存储：查商品详情不必反序列化模型
	KeyCatalog = "recmall:catalog"

	// KeyPopularZSet 热门榜同时发布成 ZSet（按名次给分），
	// 外部兜底服务可以只读 ZRange 而不加载模型
	KeyPopularZSet = "recmall:popular"
)

// manifest 描述一次快照：版本、时间、包含的条目。
type manifest struct {
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	Artifacts []string  `json:"artifacts"`
}

var errCorrupt = core.NewDomainError(core.ModulePersist, core.ErrorCodeCorrupt,
	"persist: model snapshot corrupt or incomplete")

// Save 把模型与目录快照写入 Store。
// 条目先写、manifest 最后写；Store 支持 ZSet 时顺带发布热门榜。
func Save(ctx context.Context, s core.Store, m *recommend.Model) error {
	artifacts := map[string]any{
		keyMatrix:     m.Matrix,
		keyItemSim:    m.ItemSim,
		keyUserSim:    m.UserSim,
		keyContentSim: m.ContentSim,
		keyPopularity: m.Popularity,
		keyFeatures:   m.Features,
		keyParams:     m.Params,
		KeyCatalog:    m.Catalog.Products(),
	}
	kvs := make(map[string][]byte, len(artifacts))
	keys := make([]string, 0, len(artifacts))
	for key, v := range artifacts {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", key, err)
		}
		kvs[key] = data
		keys = append(keys, key)
	}
	if err := s.BatchSet(ctx, kvs); err != nil {
		return fmt.Errorf("write artifacts: %w", err)
	}

	mf := manifest{Version: FormatVersion, CreatedAt: time.Now().UTC(), Artifacts: keys}
	data, err := json.Marshal(mf)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := s.Set(ctx, keyManifest, data); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	publishPopularity(ctx, s, m.Popularity)
	return nil
}

// Load 从 Store 还原模型。任何条目缺失或损坏都是致命错误——
// 不存在部分加载、降级加载。还原出的模型对同样的查询给出同样的结果。
func Load(ctx context.Context, s core.Store) (*recommend.Model, error) {
	data, err := s.Get(ctx, keyManifest)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var mf manifest
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, errCorrupt
	}
	if mf.Version != FormatVersion {
		return nil, core.NewDomainError(core.ModulePersist, core.ErrorCodeCorrupt,
			fmt.Sprintf("persist: unsupported snapshot version %d (want %d)", mf.Version, FormatVersion))
	}

	keys := []string{keyMatrix, keyItemSim, keyUserSim, keyContentSim, keyPopularity, keyFeatures, keyParams, KeyCatalog}
	kvs, err := s.BatchGet(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("read artifacts: %w", err)
	}

	m := &recommend.Model{
		Matrix:     &matrix.UserItem{},
		ItemSim:    &similarity.Matrix{},
		UserSim:    &similarity.Matrix{},
		ContentSim: &similarity.Matrix{},
		Features:   &similarity.FeatureSpace{},
	}
	var products []core.Product
	sections := map[string]any{
		keyMatrix:     m.Matrix,
		keyItemSim:    m.ItemSim,
		keyUserSim:    m.UserSim,
		keyContentSim: m.ContentSim,
		keyPopularity: &m.Popularity,
		keyFeatures:   m.Features,
		keyParams:     &m.Params,
		KeyCatalog:    &products,
	}
	for key, dst := range sections {
		data, ok := kvs[key]
		if !ok {
			return nil, errCorrupt
		}
		if err := json.Unmarshal(data, dst); err != nil {
			return nil, errCorrupt
		}
	}

	m.Catalog = core.NewCatalog(products)
	m.Reindex()
	return m, nil
}

// LoadCatalog 只还原目录快照，供展示层快速查详情。
func LoadCatalog(ctx context.Context, s core.Store) (*core.Catalog, error) {
	data, err := s.Get(ctx, KeyCatalog)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var products []core.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, core.NewDomainError(core.ModulePersist, core.ErrorCodeCorrupt,
			"persist: catalog snapshot corrupt")
	}
	return core.NewCatalog(products), nil
}

// publishPopularity 把热门榜发布成 ZSet，按名次给分（榜首分最高）。
// 发布失败不影响快照本身——ZSet 只是外部只读视图。
func publishPopularity(ctx context.Context, s core.Store, popularity []string) {
	kv, ok := s.(core.KeyValueStore)
	if !ok {
		return
	}
	for i, id := range popularity {
		if err := kv.ZAdd(ctx, KeyPopularZSet, float64(len(popularity)-i), id); err != nil {
			return
		}
	}
}
