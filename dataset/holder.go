package dataset

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rushteam/hybridrec/core"
	"github.com/rushteam/hybridrec/internal/logging"
)

// Holder 持有当前的数据集快照。
//
// Reload 构建完整的新快照后原子替换；正在进行的请求继续使用旧快照。
// 加载失败时保留旧快照。
type Holder struct {
	loader  Loader
	current atomic.Pointer[core.Dataset]
	loads   atomic.Int64
}

func NewHolder(loader Loader) *Holder {
	return &Holder{loader: loader}
}

// Current 返回当前快照，尚未加载成功时返回 nil。
func (h *Holder) Current() *core.Dataset {
	return h.current.Load()
}

// Swap 直接替换快照，返回旧快照。
func (h *Holder) Swap(ds *core.Dataset) *core.Dataset {
	return h.current.Swap(ds)
}

// Loads 返回成功加载的次数
func (h *Holder) Loads() int64 {
	return h.loads.Load()
}

// Reload 通过 loader 加载新快照并替换当前快照。
func (h *Holder) Reload(ctx context.Context) error {
	log := logging.L()
	start := time.Now()

	ds, err := h.loader.Load(ctx)
	if err != nil {
		log.Error().Err(err).Str("loader", h.loader.Name()).Msg("dataset reload failed, keeping previous snapshot")
		return err
	}
	h.current.Store(ds)
	h.loads.Add(1)

	log.Info().
		Str("loader", h.loader.Name()).
		Int("items", ds.Catalog.Len()).
		Int("ratings", ds.Ratings.Len()).
		Int("users", ds.Ratings.UserCount()).
		Dur("took", time.Since(start)).
		Msg("dataset loaded")
	return nil
}

// Watch 每隔 interval 重新加载一次，直到 ctx 结束。单次失败不会中断。
func (h *Holder) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = h.Reload(ctx)
		}
	}
}
