package textstat

import "testing"

func TestMeasureEmpty(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t  \n"} {
		got := Measure(text)
		if got.Words != 0 || got.Sentences != 0 {
			t.Errorf("Measure(%q) = %+v, want zero stats", text, got)
		}
	}
}

func TestMeasureSingleSentence(t *testing.T) {
	got := Measure("I am happy today.")

	if got.Words != 4 {
		t.Errorf("Words = %d, want 4", got.Words)
	}
	if got.Sentences != 1 {
		t.Errorf("Sentences = %d, want 1", got.Sentences)
	}
}

func TestMeasureMultipleSentences(t *testing.T) {
	got := Measure("I feel great. Everything is fine.")

	if got.Words != 6 {
		t.Errorf("Words = %d, want 6", got.Words)
	}
	if got.Sentences != 2 {
		t.Errorf("Sentences = %d, want 2", got.Sentences)
	}
}

func TestMeasurePunctuationNotCountedAsWords(t *testing.T) {
	got := Measure("Wait... what?!")

	if got.Words != 2 {
		t.Errorf("Words = %d, want 2", got.Words)
	}
}

func TestIsWord(t *testing.T) {
	cases := map[string]bool{
		"hello": true,
		"a1":    true,
		"...":   false,
		"!?":    false,
		"-":     false,
	}
	for token, want := range cases {
		if got := isWord(token); got != want {
			t.Errorf("isWord(%q) = %v, want %v", token, got, want)
		}
	}
}

func TestFallbackCounts(t *testing.T) {
	got := fallback("One. Two! Three?")
	if got.Words != 3 {
		t.Errorf("Words = %d, want 3", got.Words)
	}
	if got.Sentences != 3 {
		t.Errorf("Sentences = %d, want 3", got.Sentences)
	}
}

func TestFallbackFloorsSentencesAtOne(t *testing.T) {
	got := fallback("no terminal punctuation here")
	if got.Words != 4 {
		t.Errorf("Words = %d, want 4", got.Words)
	}
	if got.Sentences != 1 {
		t.Errorf("Sentences = %d, want 1", got.Sentences)
	}
}
