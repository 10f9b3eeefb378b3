package similarity

import "github.com/rushteam/hybridrec/core"

// Collaborative 是基于评分传播的协同相似度打分器。
//
// 核心思想："喜欢种子物品的用户还给哪些物品打了分"
//
// 算法流程：
//  1. 认可者 = 对种子物品评分 >= Threshold 的用户
//  2. 对每个认可者评分过的其他物品，把评分累加到该物品的原始分上
//  3. maxRaw = 候选物品中最大的原始分，最小取 1（无认可者或无共同评分时避免除零）
//  4. 协同分 = 原始分 / maxRaw；没有累计到评分的候选为 0
//
// 这是“累加后按最大值归一化”的启发式，而不是 Pearson / 余弦这类评分向量相似度。
type Collaborative struct {
	// Threshold 认可阈值，默认 4（1-5 分制）
	Threshold float64
}

func (s *Collaborative) Name() string {
	return "similarity.collaborative"
}

// EffectiveThreshold 返回实际生效的认可阈值。
func (s *Collaborative) EffectiveThreshold() float64 {
	if s == nil || s.Threshold <= 0 {
		return core.DefaultEndorseThreshold
	}
	return s.Threshold
}

// Endorsers 返回对种子物品评分达到阈值的用户，按 ID 升序。
func (s *Collaborative) Endorsers(seedID int64, ratings *core.RatingStore) []int64 {
	return ratings.UsersAtLeast(seedID, s.EffectiveThreshold())
}

// Scores 计算每个候选物品的协同相似度，返回的 map 覆盖全部候选（缺省为 0）。
// 种子物品自身即使出现在 candidates 中也会被排除。
func (s *Collaborative) Scores(seedID int64, ratings *core.RatingStore, candidates []int64) map[int64]float64 {
	out := make(map[int64]float64, len(candidates))
	for _, id := range candidates {
		if id == seedID {
			continue
		}
		out[id] = 0
	}

	endorsers := s.Endorsers(seedID, ratings)
	if len(endorsers) == 0 || len(out) == 0 {
		return out
	}

	// 1. 累加认可者对其他物品的评分
	raw := make(map[int64]float64)
	for _, userID := range endorsers {
		ratings.EachUserRating(userID, func(itemID int64, rating float64) {
			if itemID == seedID {
				return
			}
			raw[itemID] += rating
		})
	}

	// 2. 候选范围内的最大原始分，下限为 1
	maxRaw := 1.0
	for id := range out {
		if v := raw[id]; v > maxRaw {
			maxRaw = v
		}
	}

	// 3. 归一化
	for id := range out {
		out[id] = raw[id] / maxRaw
	}
	return out
}
