package gesture

import (
	"context"
	"testing"
)

func TestDecoder_EndToEndSmoke(t *testing.T) {
	layout := makeQwertyTestLayout()
	dict := &stubDictionary{words: map[string]float64{
		"hello": 5000,
		"world": 4000,
		"help":  3500,
		"test":  3000,
		"word":  1800,
	}}

	// h -> e -> l -> l -> o, traced as a path through their key centroids.
	h := [2]float32{650, 200}
	e := [2]float32{300, 100}
	l := [2]float32{950, 200}
	o := [2]float32{900, 100}
	path := straightLinePath([][2]float32{h, e, l, l, o}, 12)

	raw := make([]Point, len(path.Points))
	for i, p := range path.Points {
		raw[i] = Point{X: p.X, Y: p.Y, T: p.T}
	}

	d := NewDecoder()
	result, err := d.Decode(context.Background(), raw, layout, dict, nil, DecodeOptions{})
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if len(result.Candidates) == 0 {
		t.Fatal("expected at least one ranked candidate")
	}
	for i := 1; i < len(result.Candidates); i++ {
		if result.Candidates[i].Score > result.Candidates[i-1].Score {
			t.Errorf("ranked candidates not sorted descending at index %d", i)
		}
	}
	for _, c := range result.Candidates {
		if _, ok := dict.words[c.Word]; !ok {
			t.Errorf("ranked candidate %q is not in the dictionary", c.Word)
		}
	}
}

func TestDecoder_RejectsTrivialInput(t *testing.T) {
	layout := makeQwertyTestLayout()
	dict := &stubDictionary{words: map[string]float64{"hello": 1}}
	d := NewDecoder()

	_, err := d.Decode(context.Background(), []Point{{X: 0, Y: 0, T: 0}}, layout, dict, nil, DecodeOptions{})
	if err == nil {
		t.Fatal("expected an error for a single-point gesture")
	}
	var de *DecodeError
	if !asDecodeError(err, &de) {
		t.Fatalf("expected *DecodeError, got %T", err)
	}
	if de.Kind != KindNotASwipe {
		t.Errorf("expected KindNotASwipe, got %v", de.Kind)
	}
}

func TestDecoder_InvalidateAdvancesGeneration(t *testing.T) {
	d := NewDecoder()
	d.Invalidate()

	genAtStart := d.generation
	if genAtStart == 0 {
		t.Fatal("expected generation to advance after Invalidate")
	}
}
