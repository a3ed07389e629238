package core

import (
	"fmt"
	"time"
)

// EventKind 是交互事件类型，闭集：view / add_to_cart / transaction。
type EventKind uint8

const (
	EventView EventKind = iota + 1 // 浏览
	EventAddToCart                 // 加购
	EventTransaction               // 成交
)

// Strength 返回事件的基础权重：view=1, add_to_cart=2, transaction=3。
func (e EventKind) Strength() int {
	switch e {
	case EventView:
		return 1
	case EventAddToCart:
		return 2
	case EventTransaction:
		return 3
	default:
		return 0
	}
}

func (e EventKind) String() string {
	switch e {
	case EventView:
		return "view"
	case EventAddToCart:
		return "add_to_cart"
	case EventTransaction:
		return "transaction"
	default:
		return fmt.Sprintf("event(%d)", uint8(e))
	}
}

// ParseEventKind 解析事件类型。"addtocart" 是历史数据里的旧拼写，同样接受。
func ParseEventKind(s string) (EventKind, error) {
	switch s {
	case "view":
		return EventView, nil
	case "add_to_cart", "addtocart":
		return EventAddToCart, nil
	case "transaction":
		return EventTransaction, nil
	default:
		return 0, NewDomainError(ModuleDataset, ErrorCodeInvalidInput,
			fmt.Sprintf("dataset: unknown event kind %q", s))
	}
}

// Interaction 是交互日志中的一条记录。日志只追加；
// 同一 (user, product) 允许多条记录，聚合时按 Strength 求和。
type Interaction struct {
	UserID    string
	ProductID string
	Event     EventKind
	Strength  int // 通常等于 Event.Strength()，允许外部覆盖
	Timestamp time.Time
}
