package gesture

import "math"

// makeQwertyTestLayout builds a simplified 3-row QWERTY-ish layout on a
// 1000x400 grid at 100px pitch, the same scale as data/layouts/qwerty.qkl.
func makeQwertyTestLayout() *KeyLayout {
	row1 := []rune("qwertyuiop")
	row2 := []rune("asdfghjkl")
	row3 := []rune("zxcvbnm")

	centroids := make(map[rune][2]float32)
	for i, r := range row1 {
		centroids[r] = [2]float32{float32(100 * (i + 1)), 100}
	}
	for i, r := range row2 {
		centroids[r] = [2]float32{float32(50 + 100*(i+1)), 200}
	}
	for i, r := range row3 {
		centroids[r] = [2]float32{float32(100 + 100*(i+1)), 300}
	}
	return NewKeyLayout(centroids, 50)
}

type stubDictionary struct {
	words map[string]float64
}

func (d *stubDictionary) Contains(word string) bool     { _, ok := d.words[word]; return ok }
func (d *stubDictionary) Frequency(word string) float64 { return d.words[word] }

// ZipfFrequency mirrors lexicon.Dictionary's normalization against the
// stub's own total frequency mass, so tests exercise the same log-scaled
// shape the real dictionary produces.
func (d *stubDictionary) ZipfFrequency(word string) float64 {
	var total float64
	for _, f := range d.words {
		total += f
	}
	if total <= 0 {
		return 0
	}
	freq := d.words[word]
	if freq <= 0 {
		return 0
	}
	perBillion := (freq / total) * 1e9
	return math.Log10(perBillion + 1)
}

func (d *stubDictionary) Enumerate(fn func(word string)) {
	for w := range d.words {
		fn(w)
	}
}
func (d *stubDictionary) PrefixMatch(prefix string, fn func(word string)) {
	for w := range d.words {
		if len(w) > 0 && len(prefix) > 0 && w[0] == prefix[0] {
			fn(w)
		}
	}
}

// straightLinePath builds a SampledPath tracing straight segments through
// waypoints, spaced evenly in time, pre-populated velocities.
func straightLinePath(waypoints [][2]float32, pointsPerSegment int) *SampledPath {
	var pts []SampledPoint
	var t int64
	for i := 0; i < len(waypoints)-1; i++ {
		x1, y1 := waypoints[i][0], waypoints[i][1]
		x2, y2 := waypoints[i+1][0], waypoints[i+1][1]
		for s := 0; s < pointsPerSegment; s++ {
			frac := float32(s) / float32(pointsPerSegment)
			x := x1 + frac*(x2-x1)
			y := y1 + frac*(y2-y1)
			pts = append(pts, SampledPoint{X: x, Y: y, T: t})
			t += 10
		}
	}
	last := waypoints[len(waypoints)-1]
	pts = append(pts, SampledPoint{X: last[0], Y: last[1], T: t})

	for i := 1; i < len(pts); i++ {
		dt := pts[i].T - pts[i-1].T
		if dt < 1 {
			dt = 1
		}
		pts[i].V = dist(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y) / float32(dt)
	}
	return &SampledPath{Points: pts}
}
