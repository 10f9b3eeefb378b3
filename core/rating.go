package core

import "sort"

// RatingEntry 是一条用户对物品的评分记录。
type RatingEntry struct {
	UserID int64
	ItemID int64
	Rating float64
}

// RatingStore 是 userID -> (itemID -> rating) 的只读映射。
// 同时维护 itemID -> (userID -> rating) 倒排，用于按物品快速找到评分用户。
// 同一 (user, item) 重复出现时后者覆盖前者。
type RatingStore struct {
	byUser map[int64]map[int64]float64
	byItem map[int64]map[int64]float64
}

func NewRatingStore(entries ...RatingEntry) *RatingStore {
	rs := &RatingStore{
		byUser: make(map[int64]map[int64]float64),
		byItem: make(map[int64]map[int64]float64),
	}
	for _, e := range entries {
		if rs.byUser[e.UserID] == nil {
			rs.byUser[e.UserID] = make(map[int64]float64)
		}
		rs.byUser[e.UserID][e.ItemID] = e.Rating
		if rs.byItem[e.ItemID] == nil {
			rs.byItem[e.ItemID] = make(map[int64]float64)
		}
		rs.byItem[e.ItemID][e.UserID] = e.Rating
	}
	return rs
}

// Rating 返回用户对物品的评分。
func (rs *RatingStore) Rating(userID, itemID int64) (float64, bool) {
	if rs == nil {
		return 0, false
	}
	r, ok := rs.byUser[userID][itemID]
	return r, ok
}

// UserCount 返回有评分记录的用户数。
func (rs *RatingStore) UserCount() int {
	if rs == nil {
		return 0
	}
	return len(rs.byUser)
}

// Len 返回评分记录总数（去重后）。
func (rs *RatingStore) Len() int {
	if rs == nil {
		return 0
	}
	n := 0
	for _, items := range rs.byUser {
		n += len(items)
	}
	return n
}

// UsersAtLeast 返回对 itemID 评分 >= threshold 的用户，按 ID 升序。
func (rs *RatingStore) UsersAtLeast(itemID int64, threshold float64) []int64 {
	if rs == nil {
		return nil
	}
	users := make([]int64, 0)
	for userID, r := range rs.byItem[itemID] {
		if r >= threshold {
			users = append(users, userID)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i] < users[j] })
	return users
}

// EachUserRating 遍历一个用户的全部评分；fn 不可保留或修改内部状态。
func (rs *RatingStore) EachUserRating(userID int64, fn func(itemID int64, rating float64)) {
	if rs == nil {
		return
	}
	for itemID, r := range rs.byUser[userID] {
		fn(itemID, r)
	}
}

// Entries 以 (user, item) 升序导出全部评分，用于发布到存储。
func (rs *RatingStore) Entries() []RatingEntry {
	if rs == nil {
		return nil
	}
	out := make([]RatingEntry, 0, rs.Len())
	for userID, items := range rs.byUser {
		for itemID, r := range items {
			out = append(out, RatingEntry{UserID: userID, ItemID: itemID, Rating: r})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].ItemID < out[j].ItemID
	})
	return out
}
