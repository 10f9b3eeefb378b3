package core

import (
	"errors"
	"fmt"
)

// DomainError 是领域层的统一错误类型。
//
// 调用方只需区分三种结果：
//   - INVALID_INPUT：未提供种子、种子不在目录中（调用方应重新选择）
//   - UNAVAILABLE：数据源无法读取或解析（加载阶段报告，不进入排序）
//   - 空结果：不是错误，返回空列表
type DomainError struct {
	Code    string // 错误代码（如 "INVALID_INPUT", "UNAVAILABLE"）
	Message string // 错误消息
	Module  string // 模块名称（如 "ranker", "dataset", "store"）
	Err     error  // 底层原因（可选）
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// IsDomainError 检查错误链中是否包含 DomainError
func IsDomainError(err error) bool {
	return GetDomainError(err) != nil
}

// GetDomainError 获取错误链中的 DomainError，如果没有则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
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

// WrapDomainError 创建携带底层原因的领域错误
func WrapDomainError(module, code, message string, err error) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// 错误代码常量
const (
	ErrorCodeNotFound      = "NOT_FOUND"      // 资源不存在
	ErrorCodeUnavailable   = "UNAVAILABLE"    // 数据不可用
	ErrorCodeInvalidInput  = "INVALID_INPUT"  // 输入无效
	ErrorCodeConflict      = "CONFLICT"       // 数据冲突（如重复 ID）
	ErrorCodeInternalError = "INTERNAL_ERROR" // 内部错误
)

// 模块名称常量
const (
	ModuleRanker  = "ranker"
	ModuleCatalog = "catalog"
	ModuleDataset = "dataset"
	ModuleStore   = "store"
	ModuleConfig  = "config"
)

var (
	// ErrNoSeed 表示调用方没有提供有效的种子 ID
	ErrNoSeed = NewDomainError(ModuleRanker, ErrorCodeInvalidInput, "ranker: no seed item selected")
)

// NewSeedNotFoundError 返回种子不在目录中的输入错误
func NewSeedNotFoundError(seedID int64) *DomainError {
	return NewDomainError(ModuleRanker, ErrorCodeInvalidInput,
		fmt.Sprintf("ranker: seed item %d not found in catalog", seedID))
}

// NewDataUnavailableError 包装加载阶段的失败
func NewDataUnavailableError(source string, err error) *DomainError {
	return WrapDomainError(ModuleDataset, ErrorCodeUnavailable,
		fmt.Sprintf("dataset: %s unavailable", source), err)
}

func hasCode(err error, code string) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}

// IsInputError 检查错误是否为 INVALID_INPUT
func IsInputError(err error) bool {
	return hasCode(err, ErrorCodeInvalidInput)
}

// IsDataUnavailable 检查错误是否为 UNAVAILABLE
func IsDataUnavailable(err error) bool {
	return hasCode(err, ErrorCodeUnavailable)
}

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool {
	return hasCode(err, ErrorCodeNotFound)
}

// IsConflict 检查错误是否为 CONFLICT
func IsConflict(err error) bool {
	return hasCode(err, ErrorCodeConflict)
}
