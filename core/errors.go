package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型，调用方按 Code 穷举分支，
//     不依赖 "error" 字段探测或空列表歧义
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 错误语义：
//   - USER_NOT_FOUND：请求的用户完全不存在，终态，直接暴露给调用方
//   - NO_DATA：底层聚合（如交互矩阵）结构性为空，预期内、可降级，
//     hybrid 路径永远不把它作为硬错误上抛
//   - INVALID_DATA：输入损坏（如时间戳整批解析失败），当次请求失败并记录日志
//   - UNAVAILABLE：外部快照读取超时/失败，可由调用方重试，内部不重试
type DomainError struct {
	Code    string // 错误代码（如 "USER_NOT_FOUND", "NO_DATA"）
	Message string // 错误消息
	Module  string // 模块名称（如 "store", "recall", "matrix"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// GetDomainError 获取 DomainError，如果不是则返回 nil。
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误。
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeUserNotFound = "USER_NOT_FOUND" // 用户不存在（终态）
	ErrorCodeNoData       = "NO_DATA"        // 聚合为空（可降级）
	ErrorCodeInvalidData  = "INVALID_DATA"   // 输入损坏（当次请求失败）
	ErrorCodeUnavailable  = "UNAVAILABLE"    // 快照读取超时/不可用（可重试）
	ErrorCodeNotFound     = "NOT_FOUND"      // 存储层 key 不存在
	ErrorCodeNotSupported = "NOT_SUPPORTED"  // 存储层操作不支持
)

// 模块名称常量
const (
	ModuleStore   = "store"
	ModuleMatrix  = "matrix"
	ModuleRecall  = "recall"
	ModuleFeature = "feature"
	ModuleEngine  = "engine"
)

// ErrStoreNotFound 是存储层 key 不存在的通用错误。
var ErrStoreNotFound = NewDomainError(ModuleStore, ErrorCodeNotFound, "key not found")

func hasCode(err error, code string) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}

// IsUserNotFound 检查错误是否为 USER_NOT_FOUND。
func IsUserNotFound(err error) bool { return hasCode(err, ErrorCodeUserNotFound) }

// IsNoData 检查错误是否为 NO_DATA。
func IsNoData(err error) bool { return hasCode(err, ErrorCodeNoData) }

// IsInvalidData 检查错误是否为 INVALID_DATA。
func IsInvalidData(err error) bool { return hasCode(err, ErrorCodeInvalidData) }

// IsUnavailable 检查错误是否为 UNAVAILABLE。
func IsUnavailable(err error) bool { return hasCode(err, ErrorCodeUnavailable) }

// IsStoreNotFound 检查错误是否为存储层 NOT_FOUND。
func IsStoreNotFound(err error) bool { return hasCode(err, ErrorCodeNotFound) }
