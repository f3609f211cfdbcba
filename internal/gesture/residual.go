package gesture

import (
	"math"
	"sort"
)

// RankedResult is the final, ordered output of a decode.
type RankedResult struct {
	Candidates []Candidate
	Ambiguous  bool
}

// scoreCandidate fills in a Candidate's coverage, coherence, vertex
// penalty, and final score from its letter alignment.
//
// baseZipf and learnedZipf are the word's dictionary and learned-store
// frequencies on the Zipf scale (internal/lexicon.Dictionary.ZipfFrequency /
// LearnedStore.LearnedZipfFrequency); baseFreq and learnedFreq are the raw
// counts, kept only for Candidate's display/tie-break fields.
func scoreCandidate(word string, alignments []LetterAlignment, baseFreq, baseZipf, learnedFreq, learnedZipf float64, isLearned bool, path *SampledPath, layout *KeyLayout, ga *GeometricAnalysis, sig *SwipeSignal) Candidate {
	c := Candidate{
		Word:            word,
		BaseFrequency:   baseFreq,
		LetterAlignment: alignments,
	}
	if isLearned {
		c.LearnedBoost = learnedFreq
	}

	sigVertices := 0
	for _, v := range ga.Vertices {
		if v.IsSignificant {
			sigVertices++
		}
	}

	c.PathCoverage = computePathCoverage(alignments, path, layout)
	c.PathCoherence = computePathCoherence(alignments, path, layout)
	c.VertexPenalty = computeVertexPenalty(len([]rune(word)), sigVertices, sig)
	c.LexicalCoherent = isLexicallyCoherent(alignments)

	matchMean := geometricMean(alignments)
	spatialScore := matchMean * c.PathCoverage * c.PathCoherence * c.VertexPenalty

	freqPrior := baseZipf
	if boosted := LearnedBoost * learnedZipf; boosted > freqPrior {
		freqPrior = boosted
	}
	if freqPrior < 0 {
		freqPrior = 0
	}

	final := float32(math.Pow(float64(spatialScore), float64(sig.SpatialWeight)) *
		math.Pow(freqPrior, float64(sig.FrequencyWeight)))
	if c.LexicalCoherent {
		final *= LexicalCoherenceBonus
	}
	c.Score = final

	return c
}

// computePathCoverage returns the fraction of path indices within
// CoverageRadius of any aligned letter's key centroid.
func computePathCoverage(alignments []LetterAlignment, path *SampledPath, layout *KeyLayout) float32 {
	n := path.Len()
	if n == 0 {
		return 0
	}
	covered := make([]bool, n)
	for _, a := range alignments {
		kx, ky, ok := layout.Centroid(a.Letter)
		if !ok {
			continue
		}
		for i, p := range path.Points {
			if dist(p.X, p.Y, kx, ky) <= CoverageRadius {
				covered[i] = true
			}
		}
	}
	count := 0
	for _, c := range covered {
		if c {
			count++
		}
	}
	return float32(count) / float32(n)
}

// computePathCoherence measures vertical-weighted agreement between
// expected inter-key edges (key centroid to key centroid) and the realised
// path deltas (aligned path index to aligned path index).
func computePathCoherence(alignments []LetterAlignment, path *SampledPath, layout *KeyLayout) float32 {
	if len(alignments) < 2 {
		return 1
	}
	var total float32
	pairs := 0
	for i := 1; i < len(alignments); i++ {
		prev, cur := alignments[i-1], alignments[i]
		px, py, ok1 := layout.Centroid(prev.Letter)
		cx, cy, ok2 := layout.Centroid(cur.Letter)
		if !ok1 || !ok2 {
			continue
		}
		total += edgeCoherence(px, py, cx, cy, path, prev, cur)
		pairs++
	}
	if pairs == 0 {
		return 1
	}
	return total / float32(pairs)
}

func edgeCoherence(px, py, cx, cy float32, path *SampledPath, prev, cur LetterAlignment) float32 {
	ex, ey := cx-px, cy-py
	ey *= CoherenceVerticalWeight

	ne := sqrtf32(ex*ex + ey*ey)
	if ne < 1e-6 {
		return 1
	}
	// Letters aligned to the same path index have no realised displacement
	// to compare against.
	if prev.PathIndex == cur.PathIndex {
		return 1
	}
	a, b := path.Points[prev.PathIndex], path.Points[cur.PathIndex]
	rx, ry := b.X-a.X, (b.Y-a.Y)*CoherenceVerticalWeight
	nr := sqrtf32(rx*rx + ry*ry)
	if nr < 1e-6 {
		return 1
	}
	cos := (ex*rx + ey*ry) / (ne * nr)
	return clamp((cos+1)/2, 0, 1)
}

// geometricMean returns the geometric mean of alignment match scores.
func geometricMean(alignments []LetterAlignment) float32 {
	if len(alignments) == 0 {
		return 0
	}
	var sumLog float64
	for _, a := range alignments {
		v := float64(a.MatchScore)
		if v < 1e-6 {
			v = 1e-6
		}
		sumLog += math.Log(v)
	}
	return float32(math.Exp(sumLog / float64(len(alignments))))
}

// computeVertexPenalty compares a word's length to the path's
// significant-vertex count and returns one of the four tiered penalties.
func computeVertexPenalty(wordLen, sigVertices int, sig *SwipeSignal) float32 {
	if wordLen >= LongWordLength {
		return VertexPenaltyLongWord
	}
	expected := sigVertices + 2
	deficit := wordLen - expected
	if deficit < 0 {
		deficit = -deficit
	}
	switch {
	case deficit == 0:
		return VertexPenaltyNone
	case deficit <= VertexLengthDeficitDrop/2:
		return VertexPenaltyMinor
	case deficit <= VertexLengthDeficitDrop:
		return VertexPenaltyMajor
	default:
		return VertexPenaltyMajor
	}
}

// isLexicallyCoherent reports whether a candidate's alignment is mostly
// made of near-miss matches (a noisy-but-plausible gesture), per
// NearMissLow/NearMissHigh/NearMissMinFraction/NearMissMinAverageScore.
func isLexicallyCoherent(alignments []LetterAlignment) bool {
	if len(alignments) == 0 {
		return false
	}
	nearMiss := 0
	var sum float32
	for _, a := range alignments {
		sum += a.MatchScore
		if a.MatchScore >= NearMissLow && a.MatchScore <= NearMissHigh {
			nearMiss++
		}
	}
	fraction := float32(nearMiss) / float32(len(alignments))
	avg := sum / float32(len(alignments))
	return fraction >= NearMissMinFraction && avg >= NearMissMinAverageScore
}

// rank sorts candidates by descending score, tie-breaking by higher base
// frequency, then shorter word, then lexicographic order, and flags the
// result ambiguous when the top two scores are too close to call.
func rank(candidates []Candidate) RankedResult {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.BaseFrequency != b.BaseFrequency {
			return a.BaseFrequency > b.BaseFrequency
		}
		if len(a.Word) != len(b.Word) {
			return len(a.Word) < len(b.Word)
		}
		return a.Word < b.Word
	})

	result := RankedResult{Candidates: candidates}
	if len(candidates) >= 2 {
		top, runnerUp := candidates[0].Score, candidates[1].Score
		if runnerUp > 0 && top/runnerUp < AmbiguousRatioThreshold {
			result.Ambiguous = true
		}
	}
	return result
}
