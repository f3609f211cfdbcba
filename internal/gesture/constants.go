package gesture

// Numeric constants that are part of the decoder's external contract. These
// must match across reimplementations for test vectors to score identically,
// so they live here as named constants rather than scattered literals.
const (
	// MaxPoints bounds SampledPath length; longer raw inputs are decimated.
	MaxPoints = 500

	// MinAcceptDistance2 is the minimum squared distance (px^2) a new raw
	// point must be from the last accepted point to be kept, unless the
	// gesture is dwelling (very low velocity).
	MinAcceptDistance2 = 25 // 5px

	// MinAcceptedPoints is the fewest accepted points a path may have before
	// it is rejected as NotASwipe.
	MinAcceptedPoints = 3

	// DwellVelocityThreshold (px/ms) below which a point counts toward a
	// dwell run.
	DwellVelocityThreshold = 3.0

	// InflectionThreshold (radians) above which a curvature sample is an
	// inflection point.
	InflectionThreshold = 0.52

	// IntentionalAngleThreshold (radians) above which, combined with
	// closeness to a key, an inflection is treated as intentional.
	IntentionalAngleThreshold = 0.87

	// IntentionalMaxDistance (px) is the maximum distance from the nearest
	// key for an inflection to qualify as intentional.
	IntentionalMaxDistance = 60.0

	// CornerCompensationCap (px) bounds the bisector offset applied at fast
	// intentional corners.
	CornerCompensationCap = 25.0

	// DouglasPeuckerEpsilon (px) is the simplification tolerance used to
	// extract path vertices.
	DouglasPeuckerEpsilon = 15.0

	// VertexAngleThreshold (radians) above which an interior vertex is
	// significant by angle.
	VertexAngleThreshold = 1.22

	// VertexVelocityDropRatio: a vertex is significant if local velocity
	// drops below this fraction of the surrounding average.
	VertexVelocityDropRatio = 0.35

	// DenseRegionRadius (px) defines the neighbourhood used to detect dense
	// layout regions (>= 4 keys within this radius).
	DenseRegionRadius = 55.0

	// DenseRegionAngleDiscount scales VertexAngleThreshold down in dense
	// regions (lower threshold => easier to qualify as significant).
	DenseRegionAngleDiscount = 0.90

	// FlyByGap (px) is the minimum gap along a simplified segment for a
	// fly-by vertex candidate to be considered.
	FlyByGap = 35.0

	// WideAngleRadius (px) is the traversal radius used when testing
	// fly-by vertex candidates against a segment.
	WideAngleRadius = 65.0

	// DwellClusterRadius2 (px^2) bounds the point cloud of a dwell cluster.
	DwellClusterRadius2 = 2500.0 // 50px

	// DwellClusterMaxKeyDistance (px) is the maximum distance from a dwell
	// cluster's centroid to the nearest key for the cluster to count as a
	// dwell-interest point.
	DwellClusterMaxKeyDistance = 55.0

	// DwellMinRunLength is the minimum number of consecutive low-velocity
	// points that form a dwell run.
	DwellMinRunLength = 3

	// NeighbourhoodRadius (px) bounds a key's precomputed neighbourhood.
	NeighbourhoodRadius = 130.0

	// MaxNeighboursPerKey bounds the neighbourhood list size.
	MaxNeighboursPerKey = 6

	// SlowVelocityThreshold (px/ms) separates SLOW from NORMAL bands.
	SlowVelocityThreshold = 0.3

	// NormalVelocityThreshold (px/ms) separates NORMAL from FAST bands.
	// Calibrated per SPEC_FULL.md Open Question #2.
	NormalVelocityThreshold = 0.75

	// FastVelocityDiscount multiplies the velocity-weight boost at FAST
	// speed. Calibrated per SPEC_FULL.md Open Question #2.
	FastVelocityDiscount = 0.82

	// SigmaTightCluster, SigmaNormal, SigmaEdge (px) are the base adaptive
	// sigma values by neighbour-count band (>=4, >=2, else).
	SigmaTightCluster = 35.0
	SigmaNormal       = 42.0
	SigmaEdge         = 55.0

	// SigmaAnchorScale multiplies sigma for the first/last letter.
	SigmaAnchorScale = 0.80
	// SigmaInflectionScale multiplies sigma for mid-letters near an
	// intentional inflection.
	SigmaInflectionScale = 0.88
	// SigmaMidScale multiplies sigma for other mid-letters.
	SigmaMidScale = 1.20
	// SigmaMidLongWordScale replaces SigmaMidScale for words of length >= 7.
	SigmaMidLongWordScale = 1.40
	// LongWordLength is the length threshold for SigmaMidLongWordScale and
	// the vertex-length-gate long-word exemption (spec: "long, >= 7 letters").
	LongWordLength = 7

	// NeighbourRescueMaxFraction caps how much of a neighbour key's gaussian
	// can transfer to the letter actually being scored.
	NeighbourRescueMaxFraction = 0.70
	// NeighbourRescueFactor scales the transferred gaussian by the
	// neighbour's proximity (1 - interKeyDistance/NeighbourhoodRadius)
	// before the cap is applied.
	NeighbourRescueFactor = 0.65
	// NeighbourRescueEpsilon is the gaussian floor below which rescue is
	// attempted.
	NeighbourRescueEpsilon = 0.08

	// AlignmentHorizonSlack multiplies a letter's even-share of the path
	// (path length / word length) to get its forward search horizon, so a
	// short word's middle letters cannot align to a point reserved for a
	// later letter near the path's end.
	AlignmentHorizonSlack = 2.0
	// AlignmentHorizonMin is the minimum per-letter search horizon
	// regardless of word length, so short paths keep a usable window.
	AlignmentHorizonMin = 15

	// VelocityBoostSlow, VelocityBoostNormal are multiplicative boosts
	// applied to a letter's match strength by velocity band; the FAST band
	// uses FastVelocityDiscount instead.
	VelocityBoostSlow   = 1.35
	VelocityBoostNormal = 1.00

	// VertexBoostMax, DwellBoostMax, VelocityDwellBoostMax, RepeatBoostMax
	// cap their respective multiplicative boosts.
	VertexBoostMax        = 1.30
	DwellBoostMax          = 1.25
	VelocityDwellBoostMax  = 1.25
	RepeatLetterBoostMax   = 1.25

	// VertexIndexWindow bounds how many path indices away a significant
	// vertex may be from j* to still apply the vertex/curvature boost.
	VertexIndexWindow = 8

	// CoverageRadius (px) is the distance within which a path index counts
	// as "covered" by an aligned key.
	CoverageRadius = 45.0

	// CoherenceVerticalWeight up-weights vertical agreement between
	// expected inter-key edges and realised path deltas.
	CoherenceVerticalWeight = 1.45

	// LexicalCoherenceBonus rewards candidates whose letters are mostly
	// "near-miss" matches, suggesting a noisy-but-plausible gesture.
	LexicalCoherenceBonus    = 1.10
	NearMissLow              = 0.35
	NearMissHigh             = 0.75
	NearMissMinFraction      = 0.50
	NearMissMinAverageScore  = 0.55

	// Vertex-length gate / penalty, see §4.4 and §4.6.
	VertexMinPathPoints   = 20
	VertexMinSignificant  = 2
	VertexLengthDeficitDrop = 5

	VertexPenaltyNone    = 1.00
	VertexPenaltyMinor   = 0.75
	VertexPenaltyMajor   = 0.40
	VertexPenaltyLongWord = 0.55

	// LearnedBoost multiplies learned-word frequency before comparing to
	// lexicon frequency for the final freqPrior. See SPEC_FULL.md Open
	// Question #3.
	LearnedBoost = 3.0

	// DefaultTopK is the default number of ranked candidates returned.
	DefaultTopK = 5

	// AmbiguousRatioThreshold: top candidate is flagged ambiguous when
	// top/runnerUp is below this ratio.
	AmbiguousRatioThreshold = 1.15

	// ParallelScoringThreshold: candidate counts at or above this value are
	// scored using the bounded work pool instead of sequentially.
	ParallelScoringThreshold = 1000

	// MaxCurvature (radians) is used to normalise path smoothness in the
	// path-confidence computation; curvature magnitudes are clamped to it.
	MaxCurvature = 3.14159265
)
