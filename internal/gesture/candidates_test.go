package gesture

import "testing"

func TestInBoundsGate_RejectsOutOfBoundsLetter(t *testing.T) {
	sig := &SwipeSignal{
		CharsInBounds:   map[rune]bool{'h': true, 'e': true, 'l': true, 'o': true},
		PassthroughKeys: map[rune]bool{},
	}
	if inBoundsGate("world", sig) {
		t.Error("expected 'world' to fail when 'w', 'r', and 'd' are out of bounds")
	}
}

func TestInBoundsGate_AcceptsFullyCoveredWord(t *testing.T) {
	sig := &SwipeSignal{
		CharsInBounds:   map[rune]bool{'h': true, 'e': true, 'l': true, 'o': true},
		PassthroughKeys: map[rune]bool{},
	}
	if !inBoundsGate("hello", sig) {
		t.Error("expected 'hello' to pass when every letter is in bounds")
	}
}

func TestInBoundsGate_PassthroughKeyRescuesOutOfBoundsLetter(t *testing.T) {
	sig := &SwipeSignal{
		CharsInBounds:   map[rune]bool{'h': true, 'e': true, 'o': true},
		PassthroughKeys: map[rune]bool{'l': true},
	}
	if !inBoundsGate("hello", sig) {
		t.Error("expected passthrough key to rescue an otherwise out-of-bounds letter")
	}
}

// pathWithPoints builds a minimal *SampledPath with exactly n points, for
// exercising vertexLengthGate's raw-point-count check in isolation.
func pathWithPoints(n int) *SampledPath {
	pts := make([]SampledPoint, n)
	for i := range pts {
		pts[i] = SampledPoint{X: float32(i), Y: 0, T: int64(i)}
	}
	return &SampledPath{Points: pts}
}

func TestVertexLengthGate_ShortPathAlwaysPasses(t *testing.T) {
	path := pathWithPoints(VertexMinPathPoints - 1)
	if !vertexLengthGate("supercalifragilistic", 0, path) {
		t.Error("expected short paths to bypass the vertex-length gate")
	}
}

func TestVertexLengthGate_LongWordsExempt(t *testing.T) {
	path := pathWithPoints(VertexMinPathPoints + 10)
	word := "abcdefghij" // len 10 >= LongWordLength
	if !vertexLengthGate(word, 0, path) {
		t.Error("expected long words to be exempt from the vertex-length gate")
	}
}

func TestVertexLengthGate_RejectsWildDeficit(t *testing.T) {
	path := pathWithPoints(VertexMinPathPoints + 10)
	// word length 3, far shorter than sigVertices+2 when sigVertices is large
	if vertexLengthGate("cat", 20, path) {
		t.Error("expected a wild vertex-count/word-length mismatch to be rejected")
	}
}

func TestVertexLengthGate_EnforcedOnRealisticPointCount(t *testing.T) {
	// A realistic gesture path easily exceeds VertexMinPathPoints raw
	// samples even though computeExpectedWordLength's estimate, clamped to
	// at most 20, never exceeds it -- this is the case the gate must not
	// silently bypass.
	path := pathWithPoints(120)
	if vertexLengthGate("cat", 20, path) {
		t.Error("expected the gate to reject a wild deficit on a realistic-length path")
	}
}

func TestEnumerate_FiltersByStartLetterAndBlacklist(t *testing.T) {
	dict := &stubDictionary{words: map[string]float64{
		"hello": 100,
		"help":  80,
		"world": 60,
	}}
	sig := &SwipeSignal{
		StartAnchor:     Anchor{CandidateKeys: []rune{'h'}},
		CharsInBounds:   map[rune]bool{'h': true, 'e': true, 'l': true, 'o': true, 'p': true},
		PassthroughKeys: map[rune]bool{},
	}
	ga := &GeometricAnalysis{}
	path := pathWithPoints(VertexMinPathPoints - 1) // short path bypasses the vertex-length gate

	words := enumerate(path, sig, ga, dict, func(w string) bool { return w == "help" })

	found := map[string]bool{}
	for _, w := range words {
		found[w] = true
	}
	if !found["hello"] {
		t.Error("expected 'hello' to survive enumeration")
	}
	if found["help"] {
		t.Error("expected blacklisted 'help' to be filtered out")
	}
	if found["world"] {
		t.Error("expected 'world' to be filtered by the start-letter gate")
	}
}
