package gesture

import "testing"

func TestRank_OrdersByScoreDescending(t *testing.T) {
	candidates := []Candidate{
		{Word: "world", Score: 0.4},
		{Word: "hello", Score: 0.9},
		{Word: "help", Score: 0.6},
	}
	result := rank(candidates)
	if result.Candidates[0].Word != "hello" {
		t.Errorf("expected 'hello' first, got %q", result.Candidates[0].Word)
	}
	for i := 1; i < len(result.Candidates); i++ {
		if result.Candidates[i].Score > result.Candidates[i-1].Score {
			t.Errorf("candidates not sorted descending at index %d", i)
		}
	}
}

func TestRank_TieBreaksByFrequency(t *testing.T) {
	candidates := []Candidate{
		{Word: "held", Score: 0.5, BaseFrequency: 10},
		{Word: "help", Score: 0.5, BaseFrequency: 20},
	}
	result := rank(candidates)
	if result.Candidates[0].Word != "help" {
		t.Errorf("expected higher-frequency tie winner 'help', got %q", result.Candidates[0].Word)
	}
}

func TestRank_FlagsAmbiguousWhenScoresAreClose(t *testing.T) {
	candidates := []Candidate{
		{Word: "hello", Score: 1.00},
		{Word: "hells", Score: 0.95},
	}
	result := rank(candidates)
	if !result.Ambiguous {
		t.Error("expected result to be flagged ambiguous for near-tied top scores")
	}
}

func TestRank_NotAmbiguousWhenTopIsClear(t *testing.T) {
	candidates := []Candidate{
		{Word: "hello", Score: 1.0},
		{Word: "zzzzz", Score: 0.1},
	}
	result := rank(candidates)
	if result.Ambiguous {
		t.Error("expected a clear winner not to be flagged ambiguous")
	}
}

func TestComputeVertexPenalty_NoDeficitIsFullScore(t *testing.T) {
	sig := &SwipeSignal{}
	// wordLen=5, sigVertices=3 -> expected = 5, deficit 0
	if got := computeVertexPenalty(5, 3, sig); got != VertexPenaltyNone {
		t.Errorf("expected VertexPenaltyNone, got %v", got)
	}
}

func TestComputeVertexPenalty_LongWordsExempt(t *testing.T) {
	sig := &SwipeSignal{}
	if got := computeVertexPenalty(LongWordLength, 0, sig); got != VertexPenaltyLongWord {
		t.Errorf("expected VertexPenaltyLongWord for long words, got %v", got)
	}
}

func TestGeometricMean_EmptyIsZero(t *testing.T) {
	if got := geometricMean(nil); got != 0 {
		t.Errorf("expected 0 for empty alignment, got %v", got)
	}
}

func TestGeometricMean_AllOnesIsOne(t *testing.T) {
	alignments := []LetterAlignment{{MatchScore: 1}, {MatchScore: 1}, {MatchScore: 1}}
	got := geometricMean(alignments)
	if got < 0.999 || got > 1.001 {
		t.Errorf("expected ~1.0, got %v", got)
	}
}

func TestIsLexicallyCoherent_RequiresNearMissBand(t *testing.T) {
	strong := []LetterAlignment{{MatchScore: 0.95}, {MatchScore: 0.97}}
	if isLexicallyCoherent(strong) {
		t.Error("expected strongly-matched alignment not to be flagged lexically coherent")
	}

	nearMiss := []LetterAlignment{{MatchScore: 0.6}, {MatchScore: 0.65}}
	if !isLexicallyCoherent(nearMiss) {
		t.Error("expected a near-miss alignment to be flagged lexically coherent")
	}
}
