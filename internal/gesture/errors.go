package gesture

import "fmt"

// ErrorKind identifies the category of a decode failure, mirroring the
// distinct result-type variants a caller must branch on.
type ErrorKind uint8

const (
	// KindNotASwipe indicates the raw input had too few accepted points or
	// zero arc length to be treated as a swipe gesture.
	KindNotASwipe ErrorKind = iota
	// KindNoViableCandidate indicates no candidate survived enumeration, or
	// every surviving candidate scored zero; the caller should fall back to
	// a spelling-correction UI.
	KindNoViableCandidate
	// KindCancelled indicates the gesture's generation was invalidated by a
	// newer gesture before decoding finished.
	KindCancelled
	// KindDeadlineExceeded indicates the decode deadline elapsed; a partial
	// ranked list may still be attached via DecodeError.Partial.
	KindDeadlineExceeded
	// KindLayoutMismatch indicates a candidate referenced a letter absent
	// from the supplied KeyLayout -- a bug or a layout swapped mid-gesture.
	// Raised from scoreWord/bestAlignmentFor when KeyLayout.Centroid fails
	// for a letter enumeration already believed to be in-bounds.
	KindLayoutMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotASwipe:
		return "NotASwipe"
	case KindNoViableCandidate:
		return "NoViableCandidate"
	case KindCancelled:
		return "Cancelled"
	case KindDeadlineExceeded:
		return "DeadlineExceeded"
	case KindLayoutMismatch:
		return "LayoutMismatch"
	default:
		return "Unknown"
	}
}

// DecodeError is the error type surfaced by decode(). All decode failures
// are recoverable at the caller level; the decoder itself never retries.
type DecodeError struct {
	Kind    ErrorKind
	Message string
	// Partial holds whatever ranked candidates were computed before the
	// error was raised; populated when a decode aborts during the scoring
	// stage (KindDeadlineExceeded, KindCancelled, KindLayoutMismatch), nil
	// otherwise.
	Partial []Candidate
	err     error // wrapped cause, if any
}

func (e *DecodeError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return e.Kind.String()
}

func (e *DecodeError) Unwrap() error { return e.err }

// newDecodeError builds a DecodeError of the given kind, optionally
// wrapping a cause.
func newDecodeError(kind ErrorKind, msg string, cause error) *DecodeError {
	return &DecodeError{Kind: kind, Message: msg, err: cause}
}
