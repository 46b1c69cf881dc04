package shareparse

import "testing"

func TestTimeWithErrors_RejectsOutOfRange(t *testing.T) {
	t.Parallel()

	if _, ok := TimeWithErrors("Time: 4000, Errors: 1"); ok {
		t.Fatalf("expected time above one hour to be rejected")
	}
	if _, ok := TimeWithErrors("Time: 30, Guesses: 3"); ok {
		t.Fatalf("expected guess count below six to be rejected")
	}
}

func TestTimeWithErrors_TrailingCount(t *testing.T) {
	t.Parallel()

	got, ok := TimeWithErrors("Keyword 1:10 2")
	if !ok || got != 90 {
		t.Fatalf("expected 90, got %v (ok=%v)", got, ok)
	}
}

func TestElapsedSeconds_RejectsInvalidClock(t *testing.T) {
	t.Parallel()

	if got, ok := ElapsedSeconds("Solved in 1:75"); ok {
		t.Fatalf("expected invalid clock to be rejected, got %v", got)
	}
}

func TestRankFromValue(t *testing.T) {
	t.Parallel()

	cases := map[string]float64{
		"Queen Bee":  2,
		"queen  bee": 2,
		"Genius":     1,
		"Amazing":    0,
		"":           0,
	}
	for in, want := range cases {
		if got := RankFromValue(in); got != want {
			t.Fatalf("RankFromValue(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestCountMixedLines_NoGrid(t *testing.T) {
	t.Parallel()

	if _, ok := CountMixedLines(GroupGridMarkers)("Connections\nPuzzle #1"); ok {
		t.Fatalf("expected no score without a grid")
	}
}

func TestCategoricalRank_LeavesURLsToConfiguredParam(t *testing.T) {
	t.Parallel()

	if _, ok := CategoricalRank("https://example.com/sb?note=Genius"); ok {
		t.Fatalf("expected result URL to be left to the configured parameter")
	}
	if got, ok := CategoricalRank("Genius again"); !ok || got != 1 {
		t.Fatalf("expected 1 from free text, got %v (ok=%v)", got, ok)
	}
}

func TestGuessHeader(t *testing.T) {
	t.Parallel()

	cases := map[string]float64{
		"Wordle 1,234 5/6":   5,
		"wordle 987 x/6":     7,
		"Wordle 1.234 X/6\n": 7,
	}
	for text, want := range cases {
		if got, ok := GuessHeader(text); !ok || got != want {
			t.Fatalf("GuessHeader(%q) = %v, %v; want %v", text, got, ok, want)
		}
	}
	if _, ok := GuessHeader("Wordle 1,234 7/6"); ok {
		t.Fatalf("expected attempts above six to be rejected")
	}
}
