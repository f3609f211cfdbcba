package gesture

import "math"

// Bounds is an axis-aligned bounding box in view coordinates.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float32
}

// Contains reports whether (x, y) lies within b expanded by margin.
func (b Bounds) Contains(x, y, margin float32) bool {
	return x >= b.MinX-margin && x <= b.MaxX+margin &&
		y >= b.MinY-margin && y <= b.MaxY+margin
}

// Anchor describes the inferred start or end key of a gesture: a centroid
// of nearby points plus a ranked set of candidate keys.
type Anchor struct {
	CentroidX, CentroidY float32
	CandidateKeys        []rune
	KeyDistances         map[rune]float32
	ClosestKey           rune
	IsAnchorLocked       bool
	IsAmbiguous          bool
	HasBackProjection    bool
	BackProjectionX      float32
	BackProjectionY      float32
}

// SwipeSignal is the immutable, precomputed feature bundle the scoring loop
// consumes. It is a pure function of (SampledPath, KeyLayout,
// GeometricAnalysis).
type SwipeSignal struct {
	Bounds        Bounds
	CharsInBounds map[rune]bool

	StartAnchor Anchor
	EndAnchor   Anchor

	AverageVelocity   float32
	PointZeroDominant bool

	PassthroughKeys map[rune]bool
	OffRowKeys      map[rune]bool

	ExpectedWordLength int

	SpatialWeight   float32
	FrequencyWeight float32
}

const (
	// boundsMargin (px) expands the path's bounding box when testing which
	// keys count as "in bounds".
	boundsMargin = 40.0

	// pointZeroDominantVelocity (px/ms): average velocity below this marks
	// point 0 as a deliberate dwell rather than an in-flight start.
	pointZeroDominantVelocity = 0.15

	// highInitialVelocity (px/ms): above this, the start anchor widens its
	// window to 5 points and computes a back-projection.
	highInitialVelocity = 0.9

	// backProjectionDistance (px) is the fixed tangent-extrapolation
	// distance used to recover a high-speed start.
	backProjectionDistance = 35.0

	// anchorLockRatio: point 0's nearest key is "locked" when the
	// runner-up's distance exceeds the nearest's by this factor.
	anchorLockRatio = 1.3

	// offRowVelocityThreshold (px/ms): gestures at or above this average
	// velocity are eligible to have off-row keys flagged.
	offRowVelocityThreshold = 0.6
)

// ExtractSignal computes a SwipeSignal from path, layout, and a prior
// GeometricAnalysis.
func ExtractSignal(path *SampledPath, layout *KeyLayout, ga *GeometricAnalysis) *SwipeSignal {
	sig := &SwipeSignal{
		CharsInBounds:   make(map[rune]bool),
		PassthroughKeys: make(map[rune]bool),
		OffRowKeys:      make(map[rune]bool),
	}

	sig.Bounds = computeBounds(path)
	for _, letter := range layout.Letters() {
		kx, ky, _ := layout.Centroid(letter)
		if sig.Bounds.Contains(kx, ky, boundsMargin) {
			sig.CharsInBounds[letter] = true
		}
	}

	sig.AverageVelocity = mean(ga.VelocityProfile)
	sig.PointZeroDominant = sig.AverageVelocity < pointZeroDominantVelocity

	sig.StartAnchor = computeStartAnchor(path, layout)
	sig.EndAnchor = computeEndAnchor(path, layout)

	sig.PassthroughKeys = computePassthroughKeys(ga)
	if sig.AverageVelocity >= offRowVelocityThreshold {
		sig.OffRowKeys = computeOffRowKeys(layout)
	}

	sig.ExpectedWordLength = computeExpectedWordLength(ga, path)
	sig.SpatialWeight, sig.FrequencyWeight = dynamicWeights(ga.PathConfidence)

	return sig
}

func computeBounds(path *SampledPath) Bounds {
	b := Bounds{MinX: math.MaxFloat32, MinY: math.MaxFloat32, MaxX: -math.MaxFloat32, MaxY: -math.MaxFloat32}
	for _, p := range path.Points {
		b.MinX = minf32(b.MinX, p.X)
		b.MinY = minf32(b.MinY, p.Y)
		b.MaxX = maxf32(b.MaxX, p.X)
		b.MaxY = maxf32(b.MaxY, p.Y)
	}
	return b
}

func minf32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// computeStartAnchor builds the start anchor from a two-source candidate
// set: centroid-nearest, point-0-nearest, and an optional
// back-projection-nearest when the initial velocity is high.
func computeStartAnchor(path *SampledPath, layout *KeyLayout) Anchor {
	n := path.Len()
	window := 3
	avgInitialV := mean(velocitiesOf(path.Points[:min(3, n)]))
	highV := avgInitialV > highInitialVelocity
	if highV {
		window = 5
	}
	window = min(window, n)

	cx, cy := centroidOf(path.Points[:window])

	anchor := Anchor{CentroidX: cx, CentroidY: cy, KeyDistances: make(map[rune]float32)}

	radiusScale := float32(1.0)
	if avgInitialV > 0 {
		radiusScale = clamp(1+avgInitialV, 1, 3)
	}

	candidateSet := make(map[rune]bool)
	for _, k := range layout.NearestKeys(cx, cy, 8) {
		candidateSet[k] = true
	}
	p0 := path.Points[0]
	for _, k := range layout.NearestKeys(p0.X, p0.Y, 2) {
		candidateSet[k] = true
	}

	if highV {
		dirX, dirY, ok := unitVector(path.Points[0].X, path.Points[0].Y, path.Points[window-1].X, path.Points[window-1].Y)
		if ok {
			bpx := p0.X - dirX*backProjectionDistance
			bpy := p0.Y - dirY*backProjectionDistance
			anchor.HasBackProjection = true
			anchor.BackProjectionX = bpx
			anchor.BackProjectionY = bpy
			for _, k := range layout.NearestKeys(bpx, bpy, 2) {
				candidateSet[k] = true
			}
		}
	}

	for k := range candidateSet {
		kx, ky, _ := layout.Centroid(k)
		dCentroid := dist(kx, ky, cx, cy) / radiusScale
		best := dCentroid
		dP0 := dist(kx, ky, p0.X, p0.Y) * radiusScale
		if dP0 < best {
			best = dP0
		}
		if anchor.HasBackProjection {
			dBP := dist(kx, ky, anchor.BackProjectionX, anchor.BackProjectionY)
			if dBP < best {
				best = dBP
			}
		}
		anchor.KeyDistances[k] = best
	}

	anchor.CandidateKeys, anchor.ClosestKey = rankedKeys(anchor.KeyDistances)

	nearestP0 := layout.NearestKeys(p0.X, p0.Y, 2)
	if len(nearestP0) == 2 {
		d1 := dist(p0.X, p0.Y, centroidX(layout, nearestP0[0]), centroidY(layout, nearestP0[0]))
		d2 := dist(p0.X, p0.Y, centroidX(layout, nearestP0[1]), centroidY(layout, nearestP0[1]))
		anchor.IsAnchorLocked = d2 > d1*anchorLockRatio
	}
	anchor.IsAmbiguous = !anchor.IsAnchorLocked

	return anchor
}

// computeEndAnchor builds the end anchor from the centroid of the last N
// points (3 normal, 5 on high terminal velocity), ranked by closest key.
func computeEndAnchor(path *SampledPath, layout *KeyLayout) Anchor {
	n := path.Len()
	window := 3
	avgFinalV := mean(velocitiesOf(path.Points[max(0, n-3):n]))
	if avgFinalV > highInitialVelocity {
		window = 5
	}
	window = min(window, n)

	cx, cy := centroidOf(path.Points[n-window:])
	anchor := Anchor{CentroidX: cx, CentroidY: cy, KeyDistances: make(map[rune]float32)}

	for _, k := range layout.NearestKeys(cx, cy, 8) {
		kx, ky, _ := layout.Centroid(k)
		anchor.KeyDistances[k] = dist(kx, ky, cx, cy)
	}
	anchor.CandidateKeys, anchor.ClosestKey = rankedKeys(anchor.KeyDistances)
	return anchor
}

func velocitiesOf(pts []SampledPoint) []float32 {
	out := make([]float32, len(pts))
	for i, p := range pts {
		out[i] = p.V
	}
	return out
}

func centroidOf(pts []SampledPoint) (float32, float32) {
	var sx, sy float32
	for _, p := range pts {
		sx += p.X
		sy += p.Y
	}
	n := float32(len(pts))
	if n == 0 {
		return 0, 0
	}
	return sx / n, sy / n
}

func unitVector(fromX, fromY, toX, toY float32) (float32, float32, bool) {
	dx, dy := toX-fromX, toY-fromY
	n := sqrtf32(dx*dx + dy*dy)
	if n < 1e-6 {
		return 0, 0, false
	}
	return dx / n, dy / n, true
}

func rankedKeys(distances map[rune]float32) ([]rune, rune) {
	keys := make([]rune, 0, len(distances))
	for k := range distances {
		keys = append(keys, k)
	}
	sortRunesByDistance(keys, distances)
	var closest rune
	if len(keys) > 0 {
		closest = keys[0]
	}
	return keys, closest
}

func sortRunesByDistance(keys []rune, distances map[rune]float32) {
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && distances[keys[j]] < distances[keys[j-1]]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
}

func centroidX(layout *KeyLayout, r rune) float32 { x, _, _ := layout.Centroid(r); return x }
func centroidY(layout *KeyLayout, r rune) float32 { _, y, _ := layout.Centroid(r); return y }

// computePassthroughKeys returns traversed keys crossed at high velocity
// with no coincident intentional inflection.
func computePassthroughKeys(ga *GeometricAnalysis) map[rune]bool {
	intentionalKeys := make(map[rune]bool)
	for _, infl := range ga.Inflections {
		if infl.IsIntentional {
			intentionalKeys[infl.NearestKey] = true
		}
	}
	out := make(map[rune]bool)
	for letter, tr := range ga.TraversedKeys {
		if tr.VelocityAtKey > NormalVelocityThreshold && !intentionalKeys[letter] {
			out[letter] = true
		}
	}
	return out
}

// computeOffRowKeys returns keys in the top or bottom third of layout-Y.
func computeOffRowKeys(layout *KeyLayout) map[rune]bool {
	letters := layout.Letters()
	if len(letters) == 0 {
		return nil
	}
	minY, maxY := float32(math.MaxFloat32), float32(-math.MaxFloat32)
	for _, r := range letters {
		_, y, _ := layout.Centroid(r)
		minY = minf32(minY, y)
		maxY = maxf32(maxY, y)
	}
	span := maxY - minY
	if span <= 0 {
		return nil
	}
	third := span / 3
	out := make(map[rune]bool)
	for _, r := range letters {
		_, y, _ := layout.Centroid(r)
		if y < minY+third || y > maxY-third {
			out[r] = true
		}
	}
	return out
}

// computeExpectedWordLength combines significant-vertex count and path
// length into an expected candidate word length.
func computeExpectedWordLength(ga *GeometricAnalysis, path *SampledPath) int {
	sigVertices := 0
	for _, v := range ga.Vertices {
		if v.IsSignificant {
			sigVertices++
		}
	}
	byVertices := clampInt(sigVertices+2, 2, 20)
	byPathSize := clampInt(path.Len()/14, 2, 20)
	if byVertices > byPathSize {
		return byVertices
	}
	return byPathSize
}

// dynamicWeights returns the spatial/frequency weight split for a given
// path confidence, as a four-step function over the confidence bands
// (> 0.80, > 0.60, > 0.40, else).
func dynamicWeights(confidence float32) (spatial, frequency float32) {
	switch {
	case confidence > 0.80:
		return 0.85, 0.15
	case confidence > 0.60:
		return 0.72, 0.28
	case confidence > 0.40:
		return 0.60, 0.40
	default:
		return 0.52, 0.48
	}
}
