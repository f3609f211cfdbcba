package gesture

import "testing"

func TestSampler_RejectsTooFewRawPoints(t *testing.T) {
	s := NewSampler()
	_, err := s.Sample([]Point{{X: 0, Y: 0, T: 0}})
	if err == nil {
		t.Fatal("expected error for single-point input")
	}
	var de *DecodeError
	if !asDecodeError(err, &de) {
		t.Fatalf("expected *DecodeError, got %T", err)
	}
	if de.Kind != KindNotASwipe {
		t.Errorf("expected KindNotASwipe, got %v", de.Kind)
	}
}

func TestSampler_RejectsNonMonotonicTimestamps(t *testing.T) {
	s := NewSampler()
	_, err := s.Sample([]Point{
		{X: 0, Y: 0, T: 10},
		{X: 10, Y: 0, T: 5},
		{X: 20, Y: 0, T: 20},
	})
	if err == nil {
		t.Fatal("expected error for non-monotonic timestamps")
	}
}

func TestSampler_DecimatesCloseDuplicates(t *testing.T) {
	s := NewSampler()
	raw := []Point{
		{X: 0, Y: 0, T: 0},
		{X: 4, Y: 0, T: 1}, // well within MinAcceptDistance2, high velocity (4 px/ms): dropped
		{X: 200, Y: 0, T: 100},
		{X: 400, Y: 0, T: 200},
	}
	path, err := s.Sample(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path.Len() >= len(raw) {
		t.Errorf("expected decimation to drop the near-duplicate point, got %d points", path.Len())
	}
}

func TestSampler_PreservesDwellPoints(t *testing.T) {
	s := NewSampler()
	var raw []Point
	raw = append(raw, Point{X: 0, Y: 0, T: 0})
	// Many samples at nearly the same spot, but slow (dwelling): should
	// not all collapse to a single accepted point since dwell points are
	// preserved even when close together.
	for i := 1; i <= 10; i++ {
		raw = append(raw, Point{X: 1, Y: 0, T: int64(i * 50)})
	}
	raw = append(raw, Point{X: 300, Y: 0, T: 1000})
	path, err := s.Sample(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path.Len() < MinAcceptedPoints {
		t.Errorf("expected at least %d accepted points, got %d", MinAcceptedPoints, path.Len())
	}
}

func TestSampler_ResamplesOversizedPaths(t *testing.T) {
	s := NewSampler()
	var raw []Point
	for i := 0; i < MaxPoints*2; i++ {
		raw = append(raw, Point{X: float32(i) * 10, Y: 0, T: int64(i * 20)})
	}
	path, err := s.Sample(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path.Len() > MaxPoints {
		t.Errorf("expected resampled path to respect MaxPoints=%d, got %d", MaxPoints, path.Len())
	}
}

func TestSampledPath_TotalArcLength(t *testing.T) {
	path := &SampledPath{Points: []SampledPoint{
		{X: 0, Y: 0, T: 0},
		{X: 3, Y: 4, T: 10}, // 5px
		{X: 3, Y: 0, T: 20}, // 4px
	}}
	if got := path.TotalArcLength(); got != 9 {
		t.Errorf("expected arc length 9, got %v", got)
	}
}

// asDecodeError is a small test helper mirroring errors.As without pulling
// in the errors package for a single call site.
func asDecodeError(err error, target **DecodeError) bool {
	de, ok := err.(*DecodeError)
	if !ok {
		return false
	}
	*target = de
	return true
}
