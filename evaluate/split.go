// Package evaluate 实现离线评估：按用户的时序留出切分、
// 排序质量指标（Precision/Recall/F1/NDCG@K）、方法对比与目录覆盖率。
// 评估只读已训练模型，绝不修改它。
package evaluate

import (
	"math"
	"sort"

	"github.com/rushteam/recmall/core"
)

// minInteractionsForSplit 不足这个交互数的用户全部进训练集。
const minInteractionsForSplit = 3

// Split 把交互日志按用户做时序留出切分：
// 每个用户的记录按时间升序，最后 ceil(ratio·n) 条（至少 1 条，
// 至多 n−1 条）进测试集，其余进训练集；不足 3 条的用户整体进训练集。
//
// 这是严格的按用户时序留出，不是全局随机切分。
func Split(interactions []core.Interaction, testRatio float64) (train, test []core.Interaction) {
	byUser := make(map[string][]core.Interaction)
	var users []string
	for _, in := range interactions {
		if _, ok := byUser[in.UserID]; !ok {
			users = append(users, in.UserID)
		}
		byUser[in.UserID] = append(byUser[in.UserID], in)
	}

	for _, u := range users {
		records := byUser[u]
		if len(records) < minInteractionsForSplit {
			train = append(train, records...)
			continue
		}
		// 时间升序；同刻记录保持输入顺序
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Timestamp.Before(records[j].Timestamp)
		})
		nTest := int(math.Ceil(testRatio * float64(len(records))))
		if nTest < 1 {
			nTest = 1
		}
		if nTest > len(records)-1 {
			nTest = len(records) - 1
		}
		cut := len(records) - nTest
		train = append(train, records[:cut]...)
		test = append(test, records[cut:]...)
	}
	return train, test
}
