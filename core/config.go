package core

// 排序相关的默认参数。
const (
	// DefaultTopK 默认返回的推荐数量
	DefaultTopK = 5

	// MaxTopK 单次排序返回数量的上限，配置只能调小
	MaxTopK = DefaultTopK

	// DefaultContentWeight 内容相似度在混合分中的权重，协同权重为 1 - w
	DefaultContentWeight = 0.5

	// DefaultEndorseThreshold 评分达到该值的用户视为种子物品的“认可者”
	DefaultEndorseThreshold = 4.0
)

// 评分刻度（MovieLens 使用 0.5 步长）。
const (
	MinRating = 0.5
	MaxRating = 5.0
)
