package core

import "context"

// Store 是数据集存储的领域接口。
//
// 定义在领域层（core），由基础设施层（store）实现：
//   - store.MemoryStore
//   - store.RedisStore
//
// 数据集以 Hash 形式保存：目录 hash 的 field 是物品 ID，评分 hash 的 field 是 "user:item"。
type Store interface {
	// Name 返回存储后端名称（用于日志）
	Name() string

	// HGet 读取 Hash 字段
	HGet(ctx context.Context, key, field string) ([]byte, error)

	// HSet 批量写入 Hash 字段
	HSet(ctx context.Context, key string, fields map[string][]byte) error

	// HGetAll 读取整个 Hash
	HGetAll(ctx context.Context, key string) (map[string][]byte, error)

	// ReplaceHashes 原子地整体替换多个 Hash：读方要么看到全部旧值，要么看到全部新值。
	// fields 为空的 key 会被删除。
	ReplaceHashes(ctx context.Context, hashes map[string]map[string][]byte) error

	// Delete 删除 key
	Delete(ctx context.Context, key string) error

	// Close 关闭连接/释放资源
	Close() error
}

// ErrStoreNotFound 表示 key 或 field 不存在
var ErrStoreNotFound = NewDomainError(ModuleStore, ErrorCodeNotFound, "store: key not found")

// IsStoreNotFound 检查错误是否为 key 不存在
func IsStoreNotFound(err error) bool {
	domainErr := GetDomainError(err)
	if domainErr != nil && domainErr.Module == ModuleStore {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}
