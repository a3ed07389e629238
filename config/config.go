// Package config 定义引擎的 YAML/JSON 配置，
// 并把配置翻译成训练选项、引擎选项和存储实例。
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/recmall/filter"
	"github.com/rushteam/recmall/recommend"
)

// Config 是引擎的顶层配置结构（支持 YAML/JSON）。
type Config struct {
	Recommend RecommendConfig `yaml:"recommend" json:"recommend"`
	Store     StoreConfig     `yaml:"store" json:"store"`
	Evaluate  EvaluateConfig  `yaml:"evaluate" json:"evaluate"`
}

// RecommendConfig 推荐相关配置。
type RecommendConfig struct {
	// Weights 混合投票权重，全零时使用默认 0.4/0.3/0.3。
	Weights struct {
		Item    float64 `yaml:"item" json:"item"`
		User    float64 `yaml:"user" json:"user"`
		Content float64 `yaml:"content" json:"content"`
	} `yaml:"weights" json:"weights"`

	// SimilarUsers User-CF 参与打分的用户数，<=0 用默认值。
	SimilarUsers int `yaml:"similar_users" json:"similar_users"`

	// DefaultTopN 未指定条数时的推荐条数。
	DefaultTopN int `yaml:"default_top_n" json:"default_top_n"`

	// Filter 业务过滤的 CEL 表达式，空串表示不过滤。
	// 例：'product.rating >= 3.0 && product.price < 500.0'
	Filter string `yaml:"filter" json:"filter"`
}

// StoreConfig 模型存储后端配置。
type StoreConfig struct {
	// Backend 取 memory / file / redis。
	Backend string `yaml:"backend" json:"backend"`

	// Options 后端特定参数：
	//   file:  dir
	//   redis: addr, db
	Options map[string]any `yaml:"options" json:"options"`
}

// EvaluateConfig 离线评估配置。
type EvaluateConfig struct {
	KValues   []int   `yaml:"k_values" json:"k_values"`
	TestRatio float64 `yaml:"test_ratio" json:"test_ratio"`
	Workers   int     `yaml:"workers" json:"workers"`
}

// Default 返回一份带默认值的配置。
func Default() *Config {
	cfg := &Config{}
	cfg.Recommend.SimilarUsers = recommend.DefaultParams().SimilarUsers
	cfg.Recommend.DefaultTopN = 10
	cfg.Store.Backend = "memory"
	cfg.Evaluate.KValues = []int{5, 10}
	cfg.Evaluate.TestRatio = 0.2
	return cfg
}

// Load 从 YAML 文件加载配置，未设置的字段取默认值。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadFromJSON 从 JSON 文件加载配置。
func LoadFromJSON(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Recommend.SimilarUsers <= 0 {
		c.Recommend.SimilarUsers = recommend.DefaultParams().SimilarUsers
	}
	if c.Recommend.DefaultTopN <= 0 {
		c.Recommend.DefaultTopN = 10
	}
	if c.Store.Backend == "" {
		c.Store.Backend = "memory"
	}
	if len(c.Evaluate.KValues) == 0 {
		c.Evaluate.KValues = []int{5, 10}
	}
	if c.Evaluate.TestRatio <= 0 || c.Evaluate.TestRatio >= 1 {
		c.Evaluate.TestRatio = 0.2
	}
}

// TrainOptions 把配置翻译成训练选项。未配置权重时不产生权重选项，
// 由训练器沿用默认权重。
func (c *Config) TrainOptions() []recommend.Option {
	var opts []recommend.Option
	w := c.Recommend.Weights
	if w.Item+w.User+w.Content > 0 {
		opts = append(opts, recommend.WithHybridWeights(w.Item, w.User, w.Content))
	}
	if c.Recommend.SimilarUsers > 0 {
		opts = append(opts, recommend.WithSimilarUsers(c.Recommend.SimilarUsers))
	}
	return opts
}

// EngineOptions 把配置翻译成引擎选项，过滤表达式编译失败直接报错。
func (c *Config) EngineOptions() ([]recommend.EngineOption, error) {
	if c.Recommend.Filter == "" {
		return nil, nil
	}
	rule, err := filter.NewRule(c.Recommend.Filter)
	if err != nil {
		return nil, fmt.Errorf("compile filter: %w", err)
	}
	return []recommend.EngineOption{recommend.WithFilter(rule)}, nil
}
