package core

import "sort"

// Item 是目录中的一个物品（电影）。
// ID 唯一且稳定；Attributes 是类别标签（如 genre），加载后不再变化。
type Item struct {
	ID         int64
	Title      string
	Attributes AttributeSet
}

func NewItem(id int64, title string, attributes ...string) *Item {
	return &Item{
		ID:         id,
		Title:      title,
		Attributes: NewAttributeSet(attributes...),
	}
}

// AttributeSet 是只读的字符串集合。
// 构造后不提供写方法，可在多个请求间安全共享。
type AttributeSet struct {
	m map[string]struct{}
}

// NewAttributeSet 构建集合，空字符串与重复值被忽略。
func NewAttributeSet(values ...string) AttributeSet {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		m[v] = struct{}{}
	}
	return AttributeSet{m: m}
}

func (s AttributeSet) Len() int {
	return len(s.m)
}

func (s AttributeSet) Has(v string) bool {
	_, ok := s.m[v]
	return ok
}

// Intersect 返回两个集合交集的大小，遍历较小的一侧。
func (s AttributeSet) Intersect(o AttributeSet) int {
	small, large := s, o
	if small.Len() > large.Len() {
		small, large = large, small
	}
	n := 0
	for v := range small.m {
		if large.Has(v) {
			n++
		}
	}
	return n
}

// Values 返回排好序的属性列表（用于输出与序列化）。
func (s AttributeSet) Values() []string {
	out := make([]string, 0, len(s.m))
	for v := range s.m {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Equal 判断两个集合元素是否完全一致。
func (s AttributeSet) Equal(o AttributeSet) bool {
	return s.Len() == o.Len() && s.Intersect(o) == s.Len()
}
