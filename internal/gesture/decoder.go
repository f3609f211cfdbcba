package gesture

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/rbscholtus/swipedecode/internal/workpool"
)

// DecodeOptions configures one Decode call.
type DecodeOptions struct {
	// Deadline, if non-zero, bounds wall-clock time; a partial ranked list
	// is returned via DecodeError.Partial if it elapses mid-decode.
	Deadline time.Time
	// TopK caps the number of ranked candidates returned; DefaultTopK if
	// zero or negative.
	TopK int
}

// Decoder is the per-session orchestrator: sample -> analyse -> extract ->
// enumerate -> score -> rank. It owns the Sampler and Analyser's reusable
// scratch buffers, so one Decoder should be reused across a typing session
// rather than recreated per gesture.
type Decoder struct {
	sampler  *Sampler
	analyser *Analyser
	pool     *workpool.Pool

	// generation increments on Invalidate, letting an in-flight Decode
	// notice a newer gesture superseded it without any shared lock.
	generation int64
}

// NewDecoder creates a Decoder ready to decode gestures.
func NewDecoder() *Decoder {
	return &Decoder{
		sampler:  NewSampler(),
		analyser: NewAnalyser(),
		pool:     workpool.New(0),
	}
}

// Invalidate bumps the decoder's generation counter, causing any in-flight
// Decode call to abort with KindCancelled at its next candidate boundary.
// Call this when a new gesture begins before the previous one's decode
// returned.
func (d *Decoder) Invalidate() {
	atomic.AddInt64(&d.generation, 1)
}

// Decode runs the full pipeline over raw against layout, dict, and
// (optionally) learned, returning the ranked candidates or a DecodeError.
func (d *Decoder) Decode(ctx context.Context, raw []Point, layout *KeyLayout, dict DictionaryView, learned LearnedView, opts DecodeOptions) (RankedResult, error) {
	gestureID := uuid.New()
	genAtStart := atomic.LoadInt64(&d.generation)

	path, err := d.sampler.Sample(raw)
	if err != nil {
		return RankedResult{}, err
	}

	ga := d.analyser.Analyze(path, layout)
	sig := ExtractSignal(path, layout, ga)

	var isBlacklisted func(string) bool
	if learned != nil {
		isBlacklisted = learned.IsBlacklisted
	}

	words := enumerate(path, sig, ga, dict, isBlacklisted)
	if len(words) == 0 {
		return RankedResult{}, newDecodeError(KindNoViableCandidate, "no candidates survived enumeration", nil)
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}

	candidates := make([]Candidate, len(words))
	scoreAt := func(i int) error {
		word := words[i]
		alignments, err := scoreWord(word, path, layout, ga, sig)
		if err != nil {
			return err
		}
		baseFreq := dict.Frequency(word)
		baseZipf := dict.ZipfFrequency(word)
		var learnedFreq, learnedZipf float64
		var isLearned bool
		if learned != nil {
			learnedFreq = learned.LearnedFrequency(word)
			learnedZipf = learned.LearnedZipfFrequency(word)
			isLearned = learned.IsLearned(word)
		}
		candidates[i] = scoreCandidate(word, alignments, baseFreq, baseZipf, learnedFreq, learnedZipf, isLearned, path, layout, ga, sig)
		return nil
	}

	checkBoundary := func() error {
		if atomic.LoadInt64(&d.generation) != genAtStart {
			return newDecodeError(KindCancelled, "superseded by a newer gesture", nil)
		}
		if !opts.Deadline.IsZero() && time.Now().After(opts.Deadline) {
			return newDecodeError(KindDeadlineExceeded, "decode deadline elapsed", nil)
		}
		return nil
	}

	if len(words) >= ParallelScoringThreshold {
		runErr := d.pool.Run(ctx, len(words), func(i int) error {
			if err := checkBoundary(); err != nil {
				return err
			}
			return scoreAt(i)
		})
		if runErr != nil {
			var de *DecodeError
			if !errors.As(runErr, &de) {
				kind := KindLayoutMismatch
				switch {
				case errors.Is(runErr, context.Canceled):
					kind = KindCancelled
				case errors.Is(runErr, context.DeadlineExceeded):
					kind = KindDeadlineExceeded
				}
				de = newDecodeError(kind, runErr.Error(), runErr)
			}
			de.Partial = completedCandidates(words, candidates)
			return RankedResult{}, de
		}
	} else {
		for i := range words {
			if err := checkBoundary(); err != nil {
				var de *DecodeError
				errors.As(err, &de)
				de.Partial = completedCandidates(words[:i], candidates[:i])
				return RankedResult{}, de
			}
			if err := scoreAt(i); err != nil {
				var de *DecodeError
				if !errors.As(err, &de) {
					de = newDecodeError(KindLayoutMismatch, err.Error(), err)
				}
				de.Partial = completedCandidates(words[:i], candidates[:i])
				return RankedResult{}, de
			}
		}
	}

	scored := candidates[:0]
	for _, c := range candidates {
		if c.Score > 0 {
			scored = append(scored, c)
		}
	}
	if len(scored) == 0 {
		return RankedResult{}, newDecodeError(KindNoViableCandidate, "every candidate scored zero", nil)
	}

	ranked := rank(scored)
	if topK < len(ranked.Candidates) {
		ranked.Candidates = ranked.Candidates[:topK]
	}
	if len(ranked.Candidates) > 0 {
		logf("decode %s: %d candidates, top=%q", gestureID, len(words), ranked.Candidates[0].Word)
	}
	return ranked, nil
}

// completedCandidates filters out the not-yet-scored zero-value slots left
// behind when a decode aborts mid-batch, ranking only what finished.
func completedCandidates(words []string, candidates []Candidate) []Candidate {
	out := make([]Candidate, 0, len(words))
	for i, w := range words {
		if i >= len(candidates) {
			break
		}
		if candidates[i].Word == w {
			out = append(out, candidates[i])
		}
	}
	ranked := rank(out)
	return ranked.Candidates
}
