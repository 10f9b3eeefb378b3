package similarity

import (
	"math"
	"testing"

	"github.com/rushteam/hybridrec/core"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{name: "identical", a: []string{"Action", "Drama"}, b: []string{"Drama", "Action"}, want: 1.0},
		{name: "single identical", a: []string{"Action"}, b: []string{"Action"}, want: 1.0},
		{name: "disjoint", a: []string{"Action"}, b: []string{"Comedy"}, want: 0},
		{name: "empty a", a: nil, b: []string{"Comedy"}, want: 0},
		{name: "empty b", a: []string{"Comedy"}, b: nil, want: 0},
		{name: "both empty", a: nil, b: nil, want: 0},
		{name: "partial", a: []string{"Action", "Adventure"}, b: []string{"Action"}, want: 1 / math.Sqrt(2)},
		{name: "partial 2x3", a: []string{"A", "B"}, b: []string{"B", "C", "A"}, want: 2 / math.Sqrt(6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := core.NewAttributeSet(tt.a...), core.NewAttributeSet(tt.b...)
			got := Cosine(a, b)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Cosine() = %v, want %v", got, tt.want)
			}
			if rev := Cosine(b, a); rev != got {
				t.Errorf("Cosine is not symmetric: %v vs %v", got, rev)
			}
		})
	}
}

func TestJaccard(t *testing.T) {
	a := core.NewAttributeSet("A", "B")
	b := core.NewAttributeSet("B", "C", "A")
	if got := Jaccard(a, b); math.Abs(got-2.0/3.0) > 1e-12 {
		t.Errorf("Jaccard() = %v, want 2/3", got)
	}
	if got := Jaccard(a, core.NewAttributeSet()); got != 0 {
		t.Errorf("Jaccard with empty = %v", got)
	}
}

func TestContent_Score(t *testing.T) {
	seed := core.NewItem(1, "A", "Action", "Thriller")
	cand := core.NewItem(2, "B", "Action")

	tests := []struct {
		metric string
		want   float64
	}{
		{metric: "", want: 1 / math.Sqrt(2)},
		{metric: MetricCosine, want: 1 / math.Sqrt(2)},
		{metric: MetricJaccard, want: 0.5},
		{metric: "unknown", want: 1 / math.Sqrt(2)},
	}
	for _, tt := range tests {
		t.Run(tt.metric, func(t *testing.T) {
			s := &Content{Metric: tt.metric}
			if got := s.Score(seed, cand); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}

	if got := (&Content{}).Score(nil, cand); got != 0 {
		t.Errorf("nil seed = %v", got)
	}
}
