package gesture

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// KeyNeighbour is one entry in a key's precomputed neighbourhood: another
// key whose centroid lies within NeighbourhoodRadius, closest first.
type KeyNeighbour struct {
	Letter   rune
	Distance float32
}

// keyCentroid holds a key's position and its precomputed neighbour list.
type keyCentroid struct {
	Letter       rune
	X, Y         float32
	Neighbours   []KeyNeighbour
}

// KeyLayout maps each letter to a 2-D centroid in view coordinates and
// exposes each key's neighbourhood. Immutable for the lifetime of one
// gesture; built once and reused across many decode() calls.
type KeyLayout struct {
	keys         map[rune]keyCentroid
	order        []rune // stable iteration order, sorted by letter
	keyHalfPitch float32
}

// NewKeyLayout builds a KeyLayout from a letter->centroid map and derives
// neighbourhoods. keyHalfPitch approximates half the key pitch (px),
// used as the traversal-disc radius in the geometry analyser.
func NewKeyLayout(centroids map[rune][2]float32, keyHalfPitch float32) *KeyLayout {
	kl := &KeyLayout{
		keys:         make(map[rune]keyCentroid, len(centroids)),
		order:        make([]rune, 0, len(centroids)),
		keyHalfPitch: keyHalfPitch,
	}
	for r, xy := range centroids {
		kl.keys[r] = keyCentroid{Letter: r, X: xy[0], Y: xy[1]}
		kl.order = append(kl.order, r)
	}
	sort.Slice(kl.order, func(i, j int) bool { return kl.order[i] < kl.order[j] })
	kl.deriveNeighbourhoods()
	return kl
}

// deriveNeighbourhoods computes, for every key, the up-to-MaxNeighboursPerKey
// nearest other keys whose centre-to-centre distance^2 is below
// NeighbourhoodRadius^2.
func (kl *KeyLayout) deriveNeighbourhoods() {
	const radius2 = NeighbourhoodRadius * NeighbourhoodRadius
	for _, r := range kl.order {
		kc := kl.keys[r]
		var candidates []KeyNeighbour
		for _, other := range kl.order {
			if other == r {
				continue
			}
			oc := kl.keys[other]
			d2 := dist2(kc.X, kc.Y, oc.X, oc.Y)
			if d2 < radius2 {
				candidates = append(candidates, KeyNeighbour{Letter: other, Distance: sqrtf32(d2)})
			}
		}
		sort.Slice(candidates, func(i, j int) bool { return candidates[i].Distance < candidates[j].Distance })
		if len(candidates) > MaxNeighboursPerKey {
			candidates = candidates[:MaxNeighboursPerKey]
		}
		kc.Neighbours = candidates
		kl.keys[r] = kc
	}
}

// Centroid returns the (x, y) centroid of letter and whether it exists in
// the layout.
func (kl *KeyLayout) Centroid(letter rune) (x, y float32, ok bool) {
	kc, ok := kl.keys[letter]
	if !ok {
		return 0, 0, false
	}
	return kc.X, kc.Y, true
}

// Contains reports whether letter has a key in this layout.
func (kl *KeyLayout) Contains(letter rune) bool {
	_, ok := kl.keys[letter]
	return ok
}

// Neighbours returns the precomputed neighbourhood of letter, nearest first.
func (kl *KeyLayout) Neighbours(letter rune) []KeyNeighbour {
	return kl.keys[letter].Neighbours
}

// KeyHalfPitch returns the layout-derived traversal-disc radius.
func (kl *KeyLayout) KeyHalfPitch() float32 { return kl.keyHalfPitch }

// Letters returns all letters present in the layout, in a stable order.
func (kl *KeyLayout) Letters() []rune {
	out := make([]rune, len(kl.order))
	copy(out, kl.order)
	return out
}

// NearestKeys returns the up-to-limit nearest keys to (x, y), nearest first.
func (kl *KeyLayout) NearestKeys(x, y float32, limit int) []rune {
	type cand struct {
		r rune
		d float32
	}
	cands := make([]cand, 0, len(kl.order))
	for _, r := range kl.order {
		kc := kl.keys[r]
		cands = append(cands, cand{r, dist2(x, y, kc.X, kc.Y)})
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].d < cands[j].d })
	if limit > len(cands) {
		limit = len(cands)
	}
	out := make([]rune, limit)
	for i := 0; i < limit; i++ {
		out[i] = cands[i].r
	}
	return out
}

// DenseRegion reports whether at least 4 keys lie within DenseRegionRadius
// of (x, y) -- used to tighten the vertex-significance angle threshold.
func (kl *KeyLayout) DenseRegion(x, y float32) bool {
	const radius2 = DenseRegionRadius * DenseRegionRadius
	count := 0
	for _, r := range kl.order {
		kc := kl.keys[r]
		if dist2(x, y, kc.X, kc.Y) < radius2 {
			count++
			if count >= 4 {
				return true
			}
		}
	}
	return false
}

// NewLayoutFromFile loads a KeyLayout from a ".qkl" (quick key layout) text
// file. Each non-empty, non-comment line has the form:
//
//	<letter> <x> <y>
//
// and an optional line "halfpitch <value>" (anywhere in the file) sets KeyHalfPitch
// (defaults to 50 if absent). Lines starting with '#' and blank lines are
// ignored, mirroring the teacher's layout-file loading convention.
func NewLayoutFromFile(path string) (*KeyLayout, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer closeFile(file)

	centroids := make(map[rune][2]float32)
	halfPitch := float32(50.0)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 2 && strings.EqualFold(fields[0], "halfpitch") {
			v, err := strconv.ParseFloat(fields[1], 32)
			if err != nil {
				return nil, fmt.Errorf("invalid file format in %s: bad halfpitch value %q", path, fields[1])
			}
			halfPitch = float32(v)
			continue
		}
		if len(fields) != 3 {
			return nil, fmt.Errorf("invalid file format in %s: expected '<letter> <x> <y>', got %q", path, line)
		}
		letters := []rune(fields[0])
		if len(letters) != 1 {
			return nil, fmt.Errorf("invalid file format in %s: letter field must be one rune, got %q", path, fields[0])
		}
		x, err := strconv.ParseFloat(fields[1], 32)
		if err != nil {
			return nil, fmt.Errorf("invalid file format in %s: bad x value %q", path, fields[1])
		}
		y, err := strconv.ParseFloat(fields[2], 32)
		if err != nil {
			return nil, fmt.Errorf("invalid file format in %s: bad y value %q", path, fields[2])
		}
		r := letters[0]
		if _, exists := centroids[r]; exists {
			return nil, fmt.Errorf("invalid file format in %s: duplicate key %q", path, string(r))
		}
		centroids[r] = [2]float32{float32(x), float32(y)}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(centroids) == 0 {
		return nil, fmt.Errorf("invalid file format in %s: no keys defined", path)
	}

	return NewKeyLayout(centroids, halfPitch), nil
}

// closeFile closes f and logs any error, matching the teacher's
// best-effort cleanup idiom.
func closeFile(f *os.File) {
	if err := f.Close(); err != nil {
		logf("error closing file: %v", err)
	}
}
