package builders

import (
	"fmt"

	"github.com/rushteam/hybridrec/config"
	"github.com/rushteam/hybridrec/core"
	"github.com/rushteam/hybridrec/filter"
	"github.com/rushteam/hybridrec/pipeline"
	"github.com/rushteam/hybridrec/pkg/conv"
	"github.com/rushteam/hybridrec/rank"
	"github.com/rushteam/hybridrec/recall"
	"github.com/rushteam/hybridrec/rerank"
	"github.com/rushteam/hybridrec/similarity"
)

func init() {
	config.Register("recall.catalog", BuildCatalogNode)
	config.Register("rank.hybrid", BuildHybridNode)
	config.Register("filter", BuildFilterNode)
	config.Register("rerank.topn", BuildTopNNode)
	config.Register("rerank.diversity", BuildDiversityNode)
}

func BuildCatalogNode(_ map[string]any) (pipeline.Node, error) {
	return &recall.Catalog{}, nil
}

func BuildHybridNode(cfg map[string]any) (pipeline.Node, error) {
	metric := conv.ConfigGet(cfg, "metric", similarity.MetricCosine)
	switch metric {
	case similarity.MetricCosine, similarity.MetricJaccard:
	default:
		return nil, fmt.Errorf("unknown content metric: %s", metric)
	}
	threshold := conv.ConfigGetFloat64(cfg, "endorse_threshold", core.DefaultEndorseThreshold)
	if threshold < core.MinRating || threshold > core.MaxRating {
		return nil, fmt.Errorf("endorse_threshold must be within [%v,%v], got %v", core.MinRating, core.MaxRating, threshold)
	}

	n := rank.NewHybridNode()
	n.Content.Metric = metric
	n.Collaborative.Threshold = threshold
	n.ContentWeight = conv.ConfigGetFloat64(cfg, "content_weight", core.DefaultContentWeight)
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return n, nil
}

func BuildFilterNode(cfg map[string]any) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]any)
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}
	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]any)
		if !ok {
			continue
		}
		filterType := conv.ConfigGet(filterMap, "type", "")
		switch filterType {
		case "blacklist":
			filters = append(filters, filter.NewBlacklistFilter(conv.SliceAnyToInt64(filterMap["item_ids"])))
		case "expr":
			expr := conv.ConfigGet(filterMap, "expr", "")
			if expr == "" {
				return nil, fmt.Errorf("expr filter requires a non-empty expr")
			}
			f, err := filter.NewExprFilter(expr)
			if err != nil {
				return nil, fmt.Errorf("expr filter %q: %w", expr, err)
			}
			filters = append(filters, f)
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}
	return &filter.FilterNode{Filters: filters}, nil
}

func BuildTopNNode(cfg map[string]any) (pipeline.Node, error) {
	n, err := conv.ConfigInt64(cfg, "n", core.DefaultTopK)
	if err != nil {
		return nil, err
	}
	if n <= 0 || n > core.MaxTopK {
		return nil, fmt.Errorf("n must be within [1,%d], got %d", core.MaxTopK, n)
	}
	return &rerank.TopNNode{N: int(n)}, nil
}

func BuildDiversityNode(cfg map[string]any) (pipeline.Node, error) {
	maxPerGroup, err := conv.ConfigInt64(cfg, "max_per_group", 1)
	if err != nil {
		return nil, err
	}
	if maxPerGroup <= 0 {
		return nil, fmt.Errorf("max_per_group must be positive, got %d", maxPerGroup)
	}
	return &rerank.Diversity{
		LabelKey:    conv.ConfigGet(cfg, "label_key", ""),
		MaxPerGroup: int(maxPerGroup),
	}, nil
}
