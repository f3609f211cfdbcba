package lexicon

import "math"

// zipfScale converts a raw frequency mass into the Zipf-frequency scale: the
// Van Heuven convention of log10(frequency per billion corpus tokens).
// English word frequencies on this scale typically fall in the 1-7 range,
// giving scoreCandidate's freqPrior a bounded, log-compressed magnitude
// comparable across dictionaries of very different sizes. Absent mass
// (freq or totalMass <= 0) scores 0.
func zipfScale(freq, totalMass float64) float64 {
	if freq <= 0 || totalMass <= 0 {
		return 0
	}
	perBillion := (freq / totalMass) * 1e9
	return math.Log10(perBillion + 1)
}
