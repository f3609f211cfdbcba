package gesture

import (
	"fmt"
	"math"
)

// velocityBand classifies a point's instantaneous speed.
type velocityBand int

const (
	bandSlow velocityBand = iota
	bandNormal
	bandFast
)

func classifyVelocity(v float32) velocityBand {
	switch {
	case v < SlowVelocityThreshold:
		return bandSlow
	case v < NormalVelocityThreshold:
		return bandNormal
	default:
		return bandFast
	}
}

// scoreWord greedily aligns word's letters to path indices left-to-right
// (each letter's search starts where the previous letter matched, bounded by
// a forward horizon) using an adaptive-sigma Gaussian proximity score,
// neighbour rescue for near-miss letters, and the five boost types. It
// returns the per-letter alignment, each entry carrying that letter's
// boosted match score. Returns a KindLayoutMismatch error if a letter has no centroid in
// layout -- candidates are only ever enumerated from letters the in-bounds
// gate already verified against this same layout, so this indicates a bug
// or a layout swapped mid-gesture.
func scoreWord(word string, path *SampledPath, layout *KeyLayout, ga *GeometricAnalysis, sig *SwipeSignal) ([]LetterAlignment, error) {
	letters := []rune(word)
	alignments := make([]LetterAlignment, 0, len(letters))
	horizon := alignmentHorizon(path.Len(), len(letters))

	searchFrom := 0
	for i, letter := range letters {
		idx, score, err := bestAlignmentFor(letter, i, letters, path, layout, ga, sig, searchFrom, horizon)
		if err != nil {
			return nil, err
		}
		alignments = append(alignments, LetterAlignment{Letter: letter, PathIndex: idx, MatchScore: score})
		searchFrom = idx
	}
	return alignments, nil
}

// alignmentHorizon bounds each letter's forward search window to
// AlignmentHorizonSlack times its even share of the path (path length /
// word length, floored at AlignmentHorizonMin), so a short word's middle
// letters cannot jump ahead into the span reserved for a later letter.
func alignmentHorizon(pathLen, wordLen int) int {
	if wordLen <= 0 {
		return pathLen
	}
	h := int(float32(pathLen) / float32(wordLen) * AlignmentHorizonSlack)
	if h < AlignmentHorizonMin {
		h = AlignmentHorizonMin
	}
	return h
}

// bestAlignmentFor scans path points from searchFrom up to searchFrom+horizon
// (clamped to the path's end), scoring each as a candidate match for letter,
// and returns the best index found.
func bestAlignmentFor(letter rune, pos int, word []rune, path *SampledPath, layout *KeyLayout, ga *GeometricAnalysis, sig *SwipeSignal, searchFrom, horizon int) (int, float32, error) {
	kx, ky, ok := layout.Centroid(letter)
	if !ok {
		return searchFrom, 0, newDecodeError(KindLayoutMismatch, fmt.Sprintf("letter %q has no key in the supplied layout", letter), nil)
	}
	sigma := adaptiveSigma(letter, pos, len(word), layout, ga)

	end := searchFrom + horizon
	if end > path.Len() {
		end = path.Len()
	}

	bestIdx := searchFrom
	bestScore := float32(-1)
	for i := searchFrom; i < end; i++ {
		p := path.Points[i]
		d2 := dist2(p.X, p.Y, kx, ky)
		gaussian := float32(math.Exp(float64(-d2 / (2 * sigma * sigma))))

		if gaussian < NeighbourRescueEpsilon {
			gaussian = applyNeighbourRescue(letter, gaussian, p, layout, sigma)
		}

		boosted := applyBoosts(gaussian, letter, i, pos, word, path, ga, sig)
		if boosted > bestScore {
			bestScore = boosted
			bestIdx = i
		}
	}
	if bestScore < 0 {
		return searchFrom, 0, nil
	}
	return bestIdx, bestScore, nil
}

// adaptiveSigma picks a base sigma from the letter's neighbour density, then
// scales it by the letter's position in the word.
func adaptiveSigma(letter rune, pos, wordLen int, layout *KeyLayout, ga *GeometricAnalysis) float32 {
	neighbourCount := len(layout.Neighbours(letter))
	var sigma float32
	switch {
	case neighbourCount >= 4:
		sigma = SigmaTightCluster
	case neighbourCount >= 2:
		sigma = SigmaNormal
	default:
		sigma = SigmaEdge
	}

	switch {
	case pos == 0 || pos == wordLen-1:
		sigma *= SigmaAnchorScale
	case nearIntentionalInflection(ga, letter):
		sigma *= SigmaInflectionScale
	case wordLen >= LongWordLength:
		sigma *= SigmaMidLongWordScale
	default:
		sigma *= SigmaMidScale
	}
	return sigma
}

func nearIntentionalInflection(ga *GeometricAnalysis, letter rune) bool {
	for _, infl := range ga.Inflections {
		if infl.IsIntentional && infl.NearestKey == letter {
			return true
		}
	}
	return false
}

// applyNeighbourRescue checks letter's precomputed neighbours for one whose
// gaussian at the same point is stronger, and transfers a fraction of it
// discounted both by NeighbourRescueFactor and by the neighbour's inter-key
// distance (closer neighbours rescue more), when the letter's own match is a
// near-miss.
func applyNeighbourRescue(letter rune, own float32, p SampledPoint, layout *KeyLayout, sigma float32) float32 {
	best := own
	for _, nb := range layout.Neighbours(letter) {
		nx, ny, ok := layout.Centroid(nb.Letter)
		if !ok {
			continue
		}
		d2 := dist2(p.X, p.Y, nx, ny)
		g := float32(math.Exp(float64(-d2 / (2 * sigma * sigma))))

		proximity := 1 - nb.Distance/NeighbourhoodRadius
		if proximity < 0 {
			proximity = 0
		}
		rescued := g * proximity * NeighbourRescueFactor
		if rescued > g*NeighbourRescueMaxFraction {
			rescued = g * NeighbourRescueMaxFraction
		}
		if rescued > best {
			best = rescued
		}
	}
	return best
}

// applyBoosts multiplies gaussian by one of the velocity-dwell,
// vertex/curvature, dwell-interest, or velocity-band factors (the first that
// applies at path index idx, in that order; they are not combined), then by
// the repeated-letter boost when the letter at word position pos repeats the
// previous one.
func applyBoosts(gaussian float32, letter rune, idx, pos int, word []rune, path *SampledPath, ga *GeometricAnalysis, sig *SwipeSignal) float32 {
	v := path.Points[idx].V
	band := classifyVelocity(v)

	nearVertex := nearSignificantVertex(ga, letter, idx)
	nearDwell := nearDwellInterest(ga, letter, idx)

	score := gaussian
	switch {
	case nearDwell && band == bandSlow:
		score *= VelocityDwellBoostMax
	case nearVertex:
		score *= VertexBoostMax
	case nearDwell:
		score *= DwellBoostMax
	default:
		switch band {
		case bandSlow:
			score *= VelocityBoostSlow
		case bandFast:
			score *= FastVelocityDiscount
		default:
			score *= VelocityBoostNormal
		}
	}

	if pos > 0 && word[pos] == word[pos-1] {
		score *= RepeatLetterBoostMax
	}

	return score
}

func nearSignificantVertex(ga *GeometricAnalysis, letter rune, idx int) bool {
	for _, v := range ga.Vertices {
		if !v.IsSignificant || v.NearestKey != letter {
			continue
		}
		if v.Index < 0 {
			continue
		}
		if absInt(v.Index-idx) <= VertexIndexWindow {
			return true
		}
	}
	return false
}

func nearDwellInterest(ga *GeometricAnalysis, letter rune, idx int) bool {
	for _, dw := range ga.DwellInterestPoints {
		if dw.NearestKey != letter {
			continue
		}
		if idx >= dw.StartIndex && idx <= dw.EndIndex {
			return true
		}
	}
	return false
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
