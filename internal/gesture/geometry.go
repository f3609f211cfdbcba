package gesture

import "math"

// Inflection describes one point where the path's curvature exceeds
// InflectionThreshold.
type Inflection struct {
	Index         int
	X, Y          float32
	Angle         float32 // signed curvature at this point, radians
	NearestKey    rune
	Distance      float32 // distance (px) from (X,Y) to NearestKey's centroid
	IsIntentional bool
	// CompX, CompY hold the corner-compensated position (bisector offset,
	// capped at CornerCompensationCap) when HasCompensation is true.
	CompX, CompY    float32
	HasCompensation bool
	Velocity        float32
}

// Vertex is one anchor produced by Douglas-Peucker simplification, or a
// synthetic fly-by vertex inserted mid-segment.
type Vertex struct {
	// Index is the path index this vertex anchors to, or -1 for a
	// synthetic fly-by vertex (use X, Y instead).
	Index         int
	X, Y          float32
	Angle         float32
	IsSignificant bool
	IsFlyBy       bool
	NearestKey    rune
	SnappedToKey  bool
}

// DwellInterest is a contiguous low-velocity run collapsed to one interest
// point.
type DwellInterest struct {
	StartIndex, EndIndex int
	CentroidX, CentroidY float32
	NearestKey           rune
	Distance             float32
}

// Traversal records how a single key's disc was crossed by the path.
type Traversal struct {
	IntersectionX, IntersectionY float32
	EntryAngle                   float32
	DwellTime                    int
	VelocityAtKey                float32
	Confidence                   float32
}

// GeometricAnalysis is the full set of geometric features computed once per
// gesture, read-only thereafter. It is a pure function of (SampledPath,
// KeyLayout).
type GeometricAnalysis struct {
	CurvatureProfile []float32
	VelocityProfile  []float32

	Inflections []Inflection
	Vertices    []Vertex

	DwellInterestPoints []DwellInterest
	TraversedKeys       map[rune]Traversal

	PathConfidence float32
}

// Analyser computes GeometricAnalysis from a sampled path and layout. It
// owns reusable scratch buffers (sized MaxPoints) so repeated gestures on
// one decoder instance avoid reallocating.
type Analyser struct {
	curvatureScratch []float32
	velocityScratch  []float32
}

// NewAnalyser creates an Analyser with pre-allocated MaxPoints buffers.
func NewAnalyser() *Analyser {
	return &Analyser{
		curvatureScratch: make([]float32, 0, MaxPoints),
		velocityScratch:  make([]float32, 0, MaxPoints),
	}
}

// Analyze runs the full geometric analysis pipeline over path against
// layout. No suspension points occur inside; it is single-threaded,
// synchronous work.
func (a *Analyser) Analyze(path *SampledPath, layout *KeyLayout) *GeometricAnalysis {
	n := path.Len()
	ga := &GeometricAnalysis{
		TraversedKeys: make(map[rune]Traversal),
	}
	if n == 0 {
		return ga
	}

	a.computeCurvatureAndVelocity(path)
	ga.CurvatureProfile = append([]float32(nil), a.curvatureScratch...)
	ga.VelocityProfile = append([]float32(nil), a.velocityScratch...)

	ga.Inflections = detectInflections(path, ga.CurvatureProfile, layout)
	ga.Vertices = computeVertices(path, ga.Inflections, layout)
	ga.DwellInterestPoints = detectDwellClusters(path, layout)
	ga.TraversedKeys = detectTraversals(path, layout)
	ga.PathConfidence = computePathConfidence(ga, path)

	return ga
}

// computeCurvatureAndVelocity fills a.curvatureScratch and a.velocityScratch
// for path. Curvature at interior point i is atan2(cross(v1,v2), dot(v1,v2))
// where v1 = p_i - p_{i-1}, v2 = p_{i+1} - p_i; endpoints inherit their
// single neighbour's value.
func (a *Analyser) computeCurvatureAndVelocity(path *SampledPath) {
	n := path.Len()
	a.curvatureScratch = a.curvatureScratch[:0]
	a.velocityScratch = a.velocityScratch[:0]

	for i := 0; i < n; i++ {
		a.velocityScratch = append(a.velocityScratch, path.Points[i].V)
	}

	curv := make([]float32, n)
	for i := 1; i < n-1; i++ {
		v1x := path.Points[i].X - path.Points[i-1].X
		v1y := path.Points[i].Y - path.Points[i-1].Y
		v2x := path.Points[i+1].X - path.Points[i].X
		v2y := path.Points[i+1].Y - path.Points[i].Y
		cross := v1x*v2y - v1y*v2x
		dot := v1x*v2x + v1y*v2y
		angle := float32(math.Atan2(float64(cross), float64(dot)))
		if isFiniteF32(angle) {
			curv[i] = angle
		} else {
			logf("non-finite curvature at index %d, treating as zero", i)
			curv[i] = 0
		}
	}
	if n >= 2 {
		curv[0] = curv[min(1, n-1)]
		curv[n-1] = curv[max(n-2, 0)]
	}
	a.curvatureScratch = append(a.curvatureScratch, curv...)
}

func isFiniteF32(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// detectInflections scans curvature for |curvature| > InflectionThreshold.
// A point is additionally intentional when |curvature| > IntentionalAngleThreshold
// and its nearest key is within IntentionalMaxDistance. Fast intentional
// corners get a corner-compensation offset along the in/out bisector.
func detectInflections(path *SampledPath, curvature []float32, layout *KeyLayout) []Inflection {
	var out []Inflection
	n := path.Len()
	for i := 1; i < n-1; i++ {
		c := curvature[i]
		mag := absf32(c)
		if mag <= InflectionThreshold {
			continue
		}
		p := path.Points[i]
		nearestKey, nd := nearestKeyTo(layout, p.X, p.Y)

		infl := Inflection{
			Index:    i,
			X:        p.X,
			Y:        p.Y,
			Angle:    c,
			Velocity: p.V,
		}
		infl.NearestKey = nearestKey
		infl.Distance = nd

		intentional := mag > IntentionalAngleThreshold && nd < IntentionalMaxDistance
		infl.IsIntentional = intentional

		if intentional && p.V > NormalVelocityThreshold {
			v1x := p.X - path.Points[i-1].X
			v1y := p.Y - path.Points[i-1].Y
			v2x := path.Points[i+1].X - p.X
			v2y := path.Points[i+1].Y - p.Y
			bx, by, ok := bisector(v1x, v1y, v2x, v2y)
			if ok {
				offset := float32(CornerCompensationCap)
				infl.CompX = p.X + bx*offset
				infl.CompY = p.Y + by*offset
				infl.HasCompensation = true
			}
		}

		out = append(out, infl)
	}
	return out
}

// bisector returns the unit bisector of the reversed-in vector (-v1) and the
// out vector v2, which points toward the "outside" of a corner -- the
// direction a user's finger tends to overshoot when cutting a fast corner.
func bisector(v1x, v1y, v2x, v2y float32) (bx, by float32, ok bool) {
	n1 := sqrtf32(v1x*v1x + v1y*v1y)
	n2 := sqrtf32(v2x*v2x + v2y*v2y)
	if n1 == 0 || n2 == 0 {
		return 0, 0, false
	}
	ax, ay := -v1x/n1, -v1y/n1
	cx, cy := v2x/n2, v2y/n2
	sx, sy := ax+cx, ay+cy
	norm := sqrtf32(sx*sx + sy*sy)
	if norm < 1e-6 {
		return 0, 0, false
	}
	return sx / norm, sy / norm, true
}

// nearestKeyTo returns the layout letter whose centroid is closest to (x,y)
// and that distance. Returns (0, math.MaxFloat32) if the layout is empty.
func nearestKeyTo(layout *KeyLayout, x, y float32) (rune, float32) {
	var best rune
	bestD := float32(math.MaxFloat32)
	for _, r := range layout.Letters() {
		kx, ky, _ := layout.Centroid(r)
		d := dist(x, y, kx, ky)
		if d < bestD {
			bestD = d
			best = r
		}
	}
	return best, bestD
}

func absf32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
