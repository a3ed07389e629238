package store

// 注意：此包只包含实现，接口定义在 core 包。
// 使用 core.Store 和 core.KeyValueStore 接口。
//
// 示例：
//   var s core.Store = NewMemoryStore()
//   var kv core.KeyValueStore = NewMemoryStore()
//
// 后端选择：
//   - MemoryStore：测试/原型
//   - FileStore：本地模型目录（每个 key 一个文件）
//   - RedisStore：生产 KV + 热门榜 ZSet
