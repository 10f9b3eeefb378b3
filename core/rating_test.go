package core

import "testing"

func TestRatingStore(t *testing.T) {
	rs := NewRatingStore(
		RatingEntry{UserID: 1, ItemID: 10, Rating: 5},
		RatingEntry{UserID: 1, ItemID: 11, Rating: 3},
		RatingEntry{UserID: 2, ItemID: 10, Rating: 2},
		RatingEntry{UserID: 3, ItemID: 10, Rating: 4},
		// 重复记录覆盖
		RatingEntry{UserID: 2, ItemID: 10, Rating: 4.5},
	)

	if rs.UserCount() != 3 {
		t.Errorf("UserCount() = %d, want 3", rs.UserCount())
	}
	if rs.Len() != 4 {
		t.Errorf("Len() = %d, want 4", rs.Len())
	}
	if r, ok := rs.Rating(2, 10); !ok || r != 4.5 {
		t.Errorf("Rating(2,10) = %v, %v; want 4.5", r, ok)
	}

	users := rs.UsersAtLeast(10, 4)
	want := []int64{1, 2, 3}
	if len(users) != len(want) {
		t.Fatalf("UsersAtLeast = %v, want %v", users, want)
	}
	for i := range want {
		if users[i] != want[i] {
			t.Fatalf("UsersAtLeast = %v, want %v", users, want)
		}
	}

	sum := 0.0
	rs.EachUserRating(1, func(_ int64, r float64) { sum += r })
	if sum != 8 {
		t.Errorf("sum of user 1 ratings = %v, want 8", sum)
	}

	entries := rs.Entries()
	if len(entries) != 4 || entries[0].UserID != 1 || entries[0].ItemID != 10 {
		t.Errorf("Entries() = %v", entries)
	}
}

func TestRatingStore_Nil(t *testing.T) {
	var rs *RatingStore
	if rs.Len() != 0 || rs.UserCount() != 0 {
		t.Error("nil store should be empty")
	}
	if users := rs.UsersAtLeast(1, 4); len(users) != 0 {
		t.Error("nil store has no users")
	}
}
