// Package recmall 是一个可嵌入的混合推荐引擎：
// 协同过滤（Item-CF / User-CF）+ 内容相似度 + 热门兜底，
// 离线批量训练，在线只读查询，自带离线评估（Precision/Recall/F1/NDCG@K）。
//
// 分层约定（接口定义在 core，实现在各自的包）：
//
//	core       领域类型与契约：Product / Interaction / Method / Store
//	dataset    商品与交互日志的 CSV 加载
//	matrix     交互聚合、用户-物品矩阵、热门榜
//	similarity 三个相似度引擎（i2i / u2u / 内容）
//	recommend  模型训练、按方法打分、混合投票、冷启动兜底
//	persist    模型快照（带版本的分条目序列化）
//	store      Store 实现：memory / file / redis
//	evaluate   按用户的时序切分 + 排序指标 + 方法对比
//	filter     基于 CEL 的属性规则过滤
//	feature    可选的在线特征源（Feast）
//	config     YAML 配置
//
// 典型用法：
//
//	products, _ := dataset.LoadProducts("data/products.csv")
//	logs, _ := dataset.LoadInteractions("data/interactions.csv")
//	model, _ := recommend.Train(ctx, products, logs)
//
//	engine := recommend.NewEngine()
//	engine.Swap(model)
//	ids, _ := engine.Recommend(ctx, "u42", 10, core.MethodHybrid)
package recmall
