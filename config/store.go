package config

import (
	"fmt"

	"github.com/rushteam/recmall/core"
	"github.com/rushteam/recmall/pkg/conv"
	"github.com/rushteam/recmall/store"
)

// NewStore 按配置构建存储后端。
func (c *Config) NewStore() (core.Store, error) {
	switch c.Store.Backend {
	case "memory":
		return store.NewMemoryStore(), nil
	case "file":
		dir := conv.ConfigGet[string](c.Store.Options, "dir", "data")
		return store.NewFileStore(dir)
	case "redis":
		addr := conv.ConfigGet[string](c.Store.Options, "addr", "localhost:6379")
		db := conv.ConfigGetInt(c.Store.Options, "db", 0)
		return store.NewRedisStore(addr, db)
	default:
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeNotSupported,
			fmt.Sprintf("unknown store backend %q", c.Store.Backend))
	}
}
