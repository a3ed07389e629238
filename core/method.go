package core

import "fmt"

// Method 是推荐方法的闭集枚举。
//
// 用枚举而不是裸字符串，是为了让 dispatch 可以做穷尽检查：
// 非法取值在边界处被拒绝（INVALID_INPUT），而不是在打分深处被默默兜底。
type Method uint8

const (
	MethodItemBased    Method = iota + 1 // Item-CF：被同一批用户喜欢的物品相互相似
	MethodUserBased                      // User-CF：兴趣相似的用户喜欢相似的物品
	MethodContentBased                   // 内容相似：商品属性向量（可触达零交互商品）
	MethodHybrid                         // 混合：三路加权投票
)

// Methods 返回全部合法方法，顺序固定（方法对比报告按此顺序输出）。
func Methods() []Method {
	return []Method{MethodItemBased, MethodUserBased, MethodContentBased, MethodHybrid}
}

// Valid 判断取值是否在闭集内。
func (m Method) Valid() bool {
	switch m {
	case MethodItemBased, MethodUserBased, MethodContentBased, MethodHybrid:
		return true
	}
	return false
}

func (m Method) String() string {
	switch m {
	case MethodItemBased:
		return "item_based"
	case MethodUserBased:
		return "user_based"
	case MethodContentBased:
		return "content_based"
	case MethodHybrid:
		return "hybrid"
	default:
		return fmt.Sprintf("method(%d)", uint8(m))
	}
}

// ParseMethod 解析方法名。未知取值返回 INVALID_INPUT，绝不静默替换为默认方法。
func ParseMethod(s string) (Method, error) {
	switch s {
	case "item_based":
		return MethodItemBased, nil
	case "user_based":
		return MethodUserBased, nil
	case "content_based":
		return MethodContentBased, nil
	case "hybrid":
		return MethodHybrid, nil
	default:
		return 0, NewDomainError(ModuleRecommend, ErrorCodeInvalidInput,
			fmt.Sprintf("recommend: unknown method %q", s))
	}
}
