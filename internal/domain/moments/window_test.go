package moments

import (
	"testing"

	"github.com/forPelevin/momento/internal/types"
)

func TestComputeWindow(t *testing.T) {
	tests := []struct {
		name         string
		moment       types.Moment
		wantStart    float64
		wantDuration float64
	}{
		{"no clamp", types.Moment{Start: 50, End: 52}, 5, 49},
		{"clamped to zero", types.Moment{Start: 10, End: 11}, 0, 13},
		{"exactly at lead-in", types.Moment{Start: 45, End: 47}, 0, 49},
		{"laugh at zero", types.Moment{Start: 0, End: 1}, 0, 3},
		{"deep into media", types.Moment{Start: 600, End: 604}, 555, 51},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ComputeWindow(tt.moment)
			if w.Start != tt.wantStart {
				t.Fatalf("start = %v, want %v", w.Start, tt.wantStart)
			}
			if w.Duration != tt.wantDuration {
				t.Fatalf("duration = %v, want %v", w.Duration, tt.wantDuration)
			}
		})
	}
}

func TestComputeWindow_Properties(t *testing.T) {
	moments := []types.Moment{
		{Start: 0, End: 0}, {Start: 1, End: 2}, {Start: 44.9, End: 45},
		{Start: 45, End: 45}, {Start: 46, End: 50}, {Start: 1000, End: 1010},
	}
	for _, m := range moments {
		w := ComputeWindow(m)
		if w.Start < 0 {
			t.Fatalf("start must never be negative, got %v for %+v", w.Start, m)
		}
		if got, want := w.Duration, (m.End-w.Start)+trailBufferSec; got != want {
			t.Fatalf("duration = %v, want %v for %+v", got, want, m)
		}
		if m.Start >= leadInSec && w.Start != m.Start-leadInSec {
			t.Fatalf("expected unclamped start %v, got %v", m.Start-leadInSec, w.Start)
		}
		if m.Start < leadInSec && w.Start != 0 {
			t.Fatalf("expected clamped start, got %v", w.Start)
		}
	}
}

func TestComputeWindow_MalformedMomentGoesNonPositive(t *testing.T) {
	w := ComputeWindow(types.Moment{Start: 50, End: 2})
	if w.Duration > 0 {
		t.Fatalf("expected non-positive duration for malformed moment, got %v", w.Duration)
	}
}
