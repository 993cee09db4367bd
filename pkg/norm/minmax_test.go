package norm

import (
	"math"
	"testing"
)

func TestMinMax(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   []float64
	}{
		{
			name:   "distinct values map to [0,1]",
			scores: []float64{2, 6, 4},
			want:   []float64{0, 1, 0.5},
		},
		{
			name:   "all equal yields zeros",
			scores: []float64{3, 3, 3},
			want:   []float64{0, 0, 0},
		},
		{
			name:   "single value yields zero",
			scores: []float64{42},
			want:   []float64{0},
		},
		{
			name:   "empty input",
			scores: nil,
			want:   nil,
		},
		{
			name:   "negative values",
			scores: []float64{-2, 0, 2},
			want:   []float64{0, 0.5, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MinMax(tt.scores)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-12 {
					t.Errorf("index %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMinMaxPreservesOrdering(t *testing.T) {
	scores := []float64{0.3, 5.1, 2.2, 2.2, 9.7}
	got := MinMax(scores)

	for i := range scores {
		for j := range scores {
			if scores[i] < scores[j] && got[i] >= got[j] {
				t.Errorf("ordering broken: raw %v < %v but normalized %v >= %v",
					scores[i], scores[j], got[i], got[j])
			}
		}
	}
	for _, v := range got {
		if v < 0 || v > 1 {
			t.Errorf("normalized value %v outside [0,1]", v)
		}
	}
}

func TestMinMaxMap(t *testing.T) {
	got := MinMaxMap(map[string]float64{"a": 1, "b": 3, "c": 2})
	if got["a"] != 0 || got["b"] != 1 || got["c"] != 0.5 {
		t.Errorf("unexpected normalization: %v", got)
	}

	flat := MinMaxMap(map[string]float64{"a": 7, "b": 7})
	if flat["a"] != 0 || flat["b"] != 0 {
		t.Errorf("all-equal map should normalize to zeros, got %v", flat)
	}
}
