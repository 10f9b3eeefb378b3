package core

import "fmt"

// Catalog 是按加载顺序排列的物品集合，按 ID 建立索引。
// 不变式：ID 唯一；Get 为 O(1)。
type Catalog struct {
	items []*Item
	index map[int64]int
}

// NewCatalog 按给定顺序构建目录，遇到重复 ID 返回 CONFLICT 错误。
func NewCatalog(items ...*Item) (*Catalog, error) {
	c := &Catalog{
		items: make([]*Item, 0, len(items)),
		index: make(map[int64]int, len(items)),
	}
	for _, it := range items {
		if it == nil {
			continue
		}
		if _, ok := c.index[it.ID]; ok {
			return nil, NewDomainError(ModuleCatalog, ErrorCodeConflict,
				fmt.Sprintf("catalog: duplicate item id %d", it.ID))
		}
		c.index[it.ID] = len(c.items)
		c.items = append(c.items, it)
	}
	return c, nil
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// Get 按 ID 查找物品。
func (c *Catalog) Get(id int64) (*Item, bool) {
	if c == nil {
		return nil, false
	}
	i, ok := c.index[id]
	if !ok {
		return nil, false
	}
	return c.items[i], true
}

// Items 返回目录顺序的物品切片副本。
func (c *Catalog) Items() []*Item {
	if c == nil {
		return nil
	}
	out := make([]*Item, len(c.items))
	copy(out, c.items)
	return out
}

// Position 返回物品在目录中的序号，不存在时返回 -1。
func (c *Catalog) Position(id int64) int {
	if c == nil {
		return -1
	}
	if i, ok := c.index[id]; ok {
		return i
	}
	return -1
}
