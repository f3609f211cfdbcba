package gesture

// DictionaryView is the read-only lexicon surface the Candidate Enumerator
// and Letter Scorer consult. Implementations must be safe for concurrent
// reads from the bounded work pool.
type DictionaryView interface {
	Contains(word string) bool
	// Frequency returns word's raw corpus frequency, used for tie-break
	// ranking and display.
	Frequency(word string) float64
	// ZipfFrequency returns word's frequency on the Zipf scale (see
	// internal/lexicon), the value scoreCandidate's freqPrior is built
	// from.
	ZipfFrequency(word string) float64
	// Enumerate calls fn for every dictionary word, in an
	// implementation-defined but stable order.
	Enumerate(fn func(word string))
	// PrefixMatch calls fn for every dictionary word starting with prefix.
	PrefixMatch(prefix string, fn func(word string))
}

// LearnedView is the read-only surface over words a user has typed or
// confirmed out-of-dictionary, plus their per-user blacklist.
type LearnedView interface {
	// LearnedFrequency returns word's raw accumulated learned weight, used
	// for display and the IsLearned check.
	LearnedFrequency(word string) float64
	// LearnedZipfFrequency returns word's learned weight on the Zipf scale,
	// the value scoreCandidate's freqPrior boost is built from.
	LearnedZipfFrequency(word string) float64
	IsLearned(word string) bool
	IsBlacklisted(word string) bool
}

// LetterAlignment records which path index a candidate word's letter was
// matched to, and the raw gaussian match strength before boosts.
type LetterAlignment struct {
	Letter     rune
	PathIndex  int
	MatchScore float32
}

// Candidate is one enumerated word carried through scoring and ranking.
type Candidate struct {
	Word            string
	BaseFrequency   float64
	LearnedBoost    float64
	LetterAlignment []LetterAlignment

	PathCoverage    float32
	PathCoherence   float32
	VertexPenalty   float32
	LexicalCoherent bool

	Score float32
}

// enumerate applies the three-stage pruning pipeline (start-letter gate,
// in-bounds gate, vertex-length gate) and returns surviving candidate words.
// isBlacklisted is called once for each visited word while enumeration runs;
// no copy of the blacklist is taken, so a blacklist edit made during
// enumeration applies to the words visited after it.
func enumerate(path *SampledPath, sig *SwipeSignal, ga *GeometricAnalysis, dict DictionaryView, isBlacklisted func(string) bool) []string {
	startLetters := sig.StartAnchor.CandidateKeys
	if len(startLetters) == 0 {
		return nil
	}
	startSet := make(map[rune]bool, len(startLetters))
	for _, r := range startLetters {
		startSet[r] = true
	}

	sigVertices := 0
	for _, v := range ga.Vertices {
		if v.IsSignificant {
			sigVertices++
		}
	}

	var out []string
	visit := func(word string) {
		if len(word) == 0 {
			return
		}
		if isBlacklisted != nil && isBlacklisted(word) {
			return
		}
		first := []rune(word)[0]
		if !startSet[first] {
			return
		}
		if !inBoundsGate(word, sig) {
			return
		}
		if !vertexLengthGate(word, sigVertices, path) {
			return
		}
		out = append(out, word)
	}

	for r := range startSet {
		dict.PrefixMatch(string(r), visit)
	}

	return out
}

// inBoundsGate rejects words containing a letter with no representation in
// CharsInBounds, unless that letter also appears among PassthroughKeys (a
// legitimately skimmed key near the path's extent).
func inBoundsGate(word string, sig *SwipeSignal) bool {
	for _, r := range word {
		if sig.CharsInBounds[r] {
			continue
		}
		if sig.PassthroughKeys[r] {
			continue
		}
		return false
	}
	return true
}

// vertexLengthGate rejects words whose expected turn count is wildly
// inconsistent with the path's significant-vertex count, unless the path is
// too short to carry reliable vertex information (fewer than
// VertexMinPathPoints raw sampled points) or the word is long enough that
// vertex counting is unreliable.
func vertexLengthGate(word string, sigVertices int, path *SampledPath) bool {
	if path.Len() < VertexMinPathPoints {
		return true
	}
	if len(word) >= LongWordLength {
		return true
	}
	if sigVertices < VertexMinSignificant {
		return true
	}
	deficit := len(word) - (sigVertices + 2)
	if deficit < 0 {
		deficit = -deficit
	}
	return deficit <= VertexLengthDeficitDrop
}
