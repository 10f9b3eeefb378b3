package core

// Dataset 是一次排序请求所使用的只读快照：目录 + 评分。
// 重新加载时应构建新的 Dataset 并整体替换，而不是原地修改。
type Dataset struct {
	Catalog *Catalog
	Ratings *RatingStore
}

func NewDataset(catalog *Catalog, ratings *RatingStore) *Dataset {
	if catalog == nil {
		catalog, _ = NewCatalog()
	}
	if ratings == nil {
		ratings = NewRatingStore()
	}
	return &Dataset{Catalog: catalog, Ratings: ratings}
}
