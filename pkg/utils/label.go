package utils

import "strings"

// 候选上的标准 Label key。
const (
	LabelRecallSource  = "recall_source"  // 召回来源，目前只有 catalog
	LabelRankModel     = "rank_model"     // 打分模型，hybrid
	LabelContentMetric = "content_metric" // 内容相似度度量，cosine / jaccard
	LabelEndorsers     = "endorsers"      // 把候选推到协同分里的用户数
)

// 写入 Label 的链路阶段。
const (
	StageRecall = "recall"
	StageRank   = "rank"
	StageFilter = "filter"
	StageRerank = "rerank"
)

const (
	valueSep  = "|"
	sourceSep = ","
)

// Label 记录某个阶段为候选写下的解释信息，会随结果一起输出到 explain 视图。
type Label struct {
	Value  string `json:"value"`
	Source string `json:"source"` // Stage* 之一
}

// MergeLabel 合并同一 key 的两次写入：Value 用 '|' 拼接，Source 用 ',' 拼接。
// 已经出现过的值或阶段不会重复追加，同一节点重放不会让 Label 无限变长。
func MergeLabel(existing Label, incoming Label) Label {
	if existing.Value == "" {
		return incoming
	}
	if incoming.Value == "" {
		return existing
	}
	return Label{
		Value:  appendUnique(existing.Value, incoming.Value, valueSep),
		Source: appendUnique(existing.Source, incoming.Source, sourceSep),
	}
}

func appendUnique(list, item, sep string) string {
	if item == "" {
		return list
	}
	if list == "" {
		return item
	}
	for _, v := range strings.Split(list, sep) {
		if v == item {
			return list
		}
	}
	return list + sep + item
}
