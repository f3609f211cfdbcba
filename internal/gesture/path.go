package gesture

// Point is one raw touch sample: view-coordinate pixels and milliseconds
// since gesture start. Timestamps must be monotonic non-decreasing.
type Point struct {
	X, Y float32
	T    int64 // ms since gesture start
}

// SampledPoint is one point of a SampledPath: position, time, and the
// instantaneous speed (px/ms) derived from the previous point.
type SampledPoint struct {
	X, Y float32
	T    int64
	V    float32
}

// SampledPath is the decimated trajectory a gesture reduces to before any
// geometric analysis runs. Length is bounded by MaxPoints.
type SampledPath struct {
	Points []SampledPoint
}

// Len returns the number of points in the path.
func (p *SampledPath) Len() int { return len(p.Points) }

// TotalArcLength returns the summed Euclidean length of the path's segments.
func (p *SampledPath) TotalArcLength() float32 {
	var total float32
	for i := 1; i < len(p.Points); i++ {
		total += dist(p.Points[i-1].X, p.Points[i-1].Y, p.Points[i].X, p.Points[i].Y)
	}
	return total
}

// Sampler records raw touch points into a SampledPath, dropping points too
// close to their predecessor and resampling by arc length only when the
// result exceeds MaxPoints; no other smoothing is applied. A Sampler owns a
// reusable scratch buffer sized MaxPoints so repeated gestures on the same
// decoder instance do not reallocate.
type Sampler struct {
	scratch []SampledPoint
}

// NewSampler creates a Sampler with a pre-allocated MaxPoints scratch buffer.
func NewSampler() *Sampler {
	return &Sampler{scratch: make([]SampledPoint, 0, MaxPoints)}
}

// Sample converts a stream of raw points into a SampledPath. Points closer
// than sqrt(MinAcceptDistance2) px to the last accepted point are dropped
// unless the local velocity is very low (dwell preservation). If the
// decimated result still exceeds MaxPoints, it is resampled uniformly by arc
// length.
//
// Returns a NotASwipe DecodeError if fewer than MinAcceptedPoints survive
// decimation, if the accepted points have zero arc length, if raw has fewer
// than 2 points, or if timestamps are not monotonic non-decreasing.
func (s *Sampler) Sample(raw []Point) (*SampledPath, error) {
	if len(raw) < 2 {
		return nil, newDecodeError(KindNotASwipe, "fewer than 2 raw points", nil)
	}
	for i := 1; i < len(raw); i++ {
		if raw[i].T < raw[i-1].T {
			return nil, newDecodeError(KindNotASwipe, "timestamps not monotonic", nil)
		}
	}

	s.scratch = s.scratch[:0]
	s.scratch = append(s.scratch, SampledPoint{X: raw[0].X, Y: raw[0].Y, T: raw[0].T, V: 0})

	for i := 1; i < len(raw); i++ {
		last := s.scratch[len(s.scratch)-1]
		dt := raw[i].T - last.T
		if dt < 1 {
			dt = 1
		}
		d2 := dist2(last.X, last.Y, raw[i].X, raw[i].Y)
		v := sqrtf32(d2) / float32(dt)

		dwelling := v < DwellVelocityThreshold
		if d2 < MinAcceptDistance2 && !dwelling {
			continue
		}
		s.scratch = append(s.scratch, SampledPoint{X: raw[i].X, Y: raw[i].Y, T: raw[i].T, V: v})
	}

	if len(s.scratch) < MinAcceptedPoints {
		return nil, newDecodeError(KindNotASwipe, "fewer than minimum accepted points", nil)
	}
	if (&SampledPath{Points: s.scratch}).TotalArcLength() == 0 {
		return nil, newDecodeError(KindNotASwipe, "zero arc length", nil)
	}

	points := s.scratch
	if len(points) > MaxPoints {
		points = resampleByArcLength(points, MaxPoints)
	}

	out := make([]SampledPoint, len(points))
	copy(out, points)
	return &SampledPath{Points: out}, nil
}

// resampleByArcLength reduces pts to exactly target points, spaced evenly
// along the path's cumulative arc length, using linear interpolation between
// the two bracketing recorded points.
func resampleByArcLength(pts []SampledPoint, target int) []SampledPoint {
	if len(pts) <= target {
		return pts
	}
	cum := make([]float32, len(pts))
	for i := 1; i < len(pts); i++ {
		cum[i] = cum[i-1] + dist(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y)
	}
	total := cum[len(cum)-1]

	out := make([]SampledPoint, target)
	out[0] = pts[0]
	out[0].V = 0
	j := 0
	for i := 1; i < target; i++ {
		targetDist := total * float32(i) / float32(target-1)
		for j < len(cum)-2 && cum[j+1] < targetDist {
			j++
		}
		segStart, segEnd := cum[j], cum[j+1]
		var frac float32
		if segEnd > segStart {
			frac = (targetDist - segStart) / (segEnd - segStart)
		}
		p1, p2 := pts[j], pts[j+1]
		x := p1.X + frac*(p2.X-p1.X)
		y := p1.Y + frac*(p2.Y-p1.Y)
		t := p1.T + int64(frac*float32(p2.T-p1.T))
		out[i] = SampledPoint{X: x, Y: y, T: t}
	}
	for i := 1; i < target; i++ {
		dt := out[i].T - out[i-1].T
		if dt < 1 {
			dt = 1
		}
		out[i].V = dist(out[i-1].X, out[i-1].Y, out[i].X, out[i].Y) / float32(dt)
	}
	return out
}
