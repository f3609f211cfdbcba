package gesture

import "math"

// computeVertices runs Douglas-Peucker simplification (epsilon
// DouglasPeuckerEpsilon) to get anchor indices, tests each interior anchor
// for significance by angle or local velocity drop, then adds fly-by
// vertices for keys skimmed mid-segment.
func computeVertices(path *SampledPath, inflections []Inflection, layout *KeyLayout) []Vertex {
	n := path.Len()
	if n < 3 {
		return nil
	}

	anchorIdx := douglasPeucker(path.Points, 0, n-1, DouglasPeuckerEpsilon)
	anchorIdx = dedupeSortedInts(anchorIdx)

	vertices := make([]Vertex, 0, len(anchorIdx))
	for ai, idx := range anchorIdx {
		v := Vertex{Index: idx, X: path.Points[idx].X, Y: path.Points[idx].Y}
		if ai == 0 || ai == len(anchorIdx)-1 {
			// endpoints are never scored for significance
			vertices = append(vertices, v)
			continue
		}
		prev := path.Points[anchorIdx[ai-1]]
		next := path.Points[anchorIdx[ai+1]]
		cur := path.Points[idx]

		angle := angleAt(prev.X, prev.Y, cur.X, cur.Y, next.X, next.Y)

		nearestKey, nd := nearestKeyTo(layout, cur.X, cur.Y)
		v.NearestKey = nearestKey
		// Bias toward key-snapped vertices: if the nearest key sits closer
		// to the anchor's own position than the anchor approximates its
		// neighbours, substitute the key's centroid and recompute the angle.
		if kx, ky, ok := layout.Centroid(nearestKey); ok {
			approxErr := perpendicularDistance(cur.X, cur.Y, prev.X, prev.Y, next.X, next.Y)
			if nd < approxErr {
				angle = angleAt(prev.X, prev.Y, kx, ky, next.X, next.Y)
				v.X, v.Y = kx, ky
				v.SnappedToKey = true
			}
		}
		v.Angle = angle

		threshold := float32(VertexAngleThreshold)
		if layout.DenseRegion(cur.X, cur.Y) {
			threshold *= DenseRegionAngleDiscount
		}
		bySignificantAngle := absf32(angle) > threshold
		byVelocityDrop := localVelocityDrop(path, idx) < VertexVelocityDropRatio

		v.IsSignificant = bySignificantAngle || byVelocityDrop
		vertices = append(vertices, v)
	}

	vertices = append(vertices, detectFlyByVertices(path, anchorIdx, vertices, layout)...)
	return vertices
}

// douglasPeucker returns the indices (into pts) of the simplified polyline
// anchors between lo and hi inclusive, always including lo and hi.
func douglasPeucker(pts []SampledPoint, lo, hi int, epsilon float32) []int {
	if hi <= lo+1 {
		return []int{lo, hi}
	}
	var maxDist float32
	maxIdx := lo
	for i := lo + 1; i < hi; i++ {
		d := perpendicularDistance(pts[i].X, pts[i].Y, pts[lo].X, pts[lo].Y, pts[hi].X, pts[hi].Y)
		if d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}
	if maxDist <= epsilon {
		return []int{lo, hi}
	}
	left := douglasPeucker(pts, lo, maxIdx, epsilon)
	right := douglasPeucker(pts, maxIdx, hi, epsilon)
	return append(left[:len(left)-1], right...)
}

// perpendicularDistance returns the distance from (px,py) to the line
// segment (ax,ay)-(bx,by).
func perpendicularDistance(px, py, ax, ay, bx, by float32) float32 {
	dx, dy := bx-ax, by-ay
	segLen2 := dx*dx + dy*dy
	if segLen2 == 0 {
		return dist(px, py, ax, ay)
	}
	t := ((px-ax)*dx + (py-ay)*dy) / segLen2
	t = clamp(t, 0, 1)
	projX, projY := ax+t*dx, ay+t*dy
	return dist(px, py, projX, projY)
}

// angleAt returns the signed angle at vertex (vx,vy) between the incoming
// segment from (ax,ay) and the outgoing segment to (bx,by).
func angleAt(ax, ay, vx, vy, bx, by float32) float32 {
	v1x, v1y := vx-ax, vy-ay
	v2x, v2y := bx-vx, by-vy
	cross := v1x*v2y - v1y*v2x
	dot := v1x*v2x + v1y*v2y
	return float32(math.Atan2(float64(cross), float64(dot)))
}

// localVelocityDrop returns the ratio of the velocity at idx to the mean
// velocity of a small surrounding window; < VertexVelocityDropRatio flags a
// velocity-based vertex.
func localVelocityDrop(path *SampledPath, idx int) float32 {
	const window = 4
	lo := max(0, idx-window)
	hi := min(path.Len()-1, idx+window)
	var sum float32
	count := 0
	for i := lo; i <= hi; i++ {
		if i == idx {
			continue
		}
		sum += path.Points[i].V
		count++
	}
	if count == 0 {
		return 1
	}
	avg := sum / float32(count)
	if avg == 0 {
		return 1
	}
	return path.Points[idx].V / avg
}

// detectFlyByVertices promotes keys skimmed mid-segment (closely passed
// without becoming a Douglas-Peucker anchor) to synthetic vertices when the
// prev-anchor -> key -> next-anchor angle crosses the significance
// threshold.
func detectFlyByVertices(path *SampledPath, anchorIdx []int, existing []Vertex, layout *KeyLayout) []Vertex {
	accounted := make(map[rune]bool, len(existing))
	for _, v := range existing {
		if v.NearestKey != 0 {
			accounted[v.NearestKey] = true
		}
	}

	var flyBys []Vertex
	for ai := 0; ai < len(anchorIdx)-1; ai++ {
		segStart, segEnd := anchorIdx[ai], anchorIdx[ai+1]
		p1, p2 := path.Points[segStart], path.Points[segEnd]
		segLen := dist(p1.X, p1.Y, p2.X, p2.Y)
		if segLen < FlyByGap {
			continue
		}

		for _, letter := range layout.Letters() {
			if accounted[letter] {
				continue
			}
			kx, ky, _ := layout.Centroid(letter)
			d := perpendicularDistance(kx, ky, p1.X, p1.Y, p2.X, p2.Y)
			if d >= WideAngleRadius {
				continue
			}
			angle := angleAt(p1.X, p1.Y, kx, ky, p2.X, p2.Y)
			if absf32(angle) <= VertexAngleThreshold {
				continue
			}
			flyBys = append(flyBys, Vertex{
				Index:         -1,
				X:             kx,
				Y:             ky,
				Angle:         angle,
				IsSignificant: true,
				IsFlyBy:       true,
				NearestKey:    letter,
			})
			accounted[letter] = true
		}
	}
	return flyBys
}

func dedupeSortedInts(idx []int) []int {
	if len(idx) == 0 {
		return idx
	}
	out := idx[:1]
	for _, v := range idx[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// detectDwellClusters collapses contiguous low-velocity runs (v <
// DwellVelocityThreshold, length >= DwellMinRunLength) into a single
// interest point when the run's point cloud fits within
// DwellClusterRadius2 and its centroid is within DwellClusterMaxKeyDistance
// of some key.
func detectDwellClusters(path *SampledPath, layout *KeyLayout) []DwellInterest {
	var out []DwellInterest
	n := path.Len()
	i := 0
	for i < n {
		if path.Points[i].V >= DwellVelocityThreshold {
			i++
			continue
		}
		start := i
		for i < n && path.Points[i].V < DwellVelocityThreshold {
			i++
		}
		end := i - 1
		if end-start+1 < DwellMinRunLength {
			continue
		}

		var cx, cy float32
		for j := start; j <= end; j++ {
			cx += path.Points[j].X
			cy += path.Points[j].Y
		}
		count := float32(end - start + 1)
		cx /= count
		cy /= count

		fits := true
		for j := start; j <= end; j++ {
			if dist2(path.Points[j].X, path.Points[j].Y, cx, cy) > DwellClusterRadius2 {
				fits = false
				break
			}
		}
		if !fits {
			continue
		}

		nearestKey, nd := nearestKeyTo(layout, cx, cy)
		if nd >= DwellClusterMaxKeyDistance {
			continue
		}

		out = append(out, DwellInterest{
			StartIndex: start,
			EndIndex:   end,
			CentroidX:  cx,
			CentroidY:  cy,
			NearestKey: nearestKey,
			Distance:   nd,
		})
	}
	return out
}
