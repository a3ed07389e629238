package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "INVALID_INPUT"）
	Message string // 错误消息
	Module  string // 模块名称（如 "store", "recommend"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// GetDomainError 获取 DomainError，如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeNotFound     = "NOT_FOUND"      // 资源不存在
	ErrorCodeInvalidInput = "INVALID_INPUT"  // 输入无效
	ErrorCodeNotReady     = "NOT_READY"      // 模型尚未训练/加载
	ErrorCodeCorrupt      = "CORRUPT"        // 持久化数据损坏
	ErrorCodeNotSupported = "NOT_SUPPORTED"  // 操作不支持
)

// 模块名称常量
const (
	ModuleStore     = "store"     // 存储模块
	ModuleDataset   = "dataset"   // 数据加载模块
	ModuleRecommend = "recommend" // 推荐模块
	ModulePersist   = "persist"   // 模型持久化模块
	ModuleEvaluate  = "evaluate"  // 评估模块
)

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// IsInvalidInput 检查错误是否为 INVALID_INPUT（如非法的推荐方法）
func IsInvalidInput(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeInvalidInput
	}
	return false
}

// IsNotReady 检查错误是否为 NOT_READY
func IsNotReady(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotReady
	}
	return false
}

// IsCorrupt 检查错误是否为 CORRUPT
func IsCorrupt(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeCorrupt
	}
	return false
}
