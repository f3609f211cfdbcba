package lexicon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDictionaryFile_ParsesAndCaches(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.txt")
	content := "# sample dictionary\nhello 5000\nworld 4000\nhelp 3500\ntest 3000\nword 1800\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	dict, err := LoadDictionaryFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !dict.Contains("hello") {
		t.Error("expected 'hello' to be present")
	}
	if got := dict.Frequency("hello"); got != 5000 {
		t.Errorf("expected frequency 5000, got %v", got)
	}
	if dict.Contains("missing") {
		t.Error("expected 'missing' to be absent")
	}

	if _, err := os.Stat(path + ".json"); err != nil {
		t.Errorf("expected a JSON cache file to be written: %v", err)
	}

	// Reload should now come from the cache and produce the same result.
	reloaded, err := LoadDictionaryFile(path)
	if err != nil {
		t.Fatalf("unexpected error reloading from cache: %v", err)
	}
	if reloaded.Frequency("world") != 4000 {
		t.Errorf("expected cached frequency 4000, got %v", reloaded.Frequency("world"))
	}
}

func TestDictionary_PrefixMatch(t *testing.T) {
	dict := NewDictionary([]Entry{
		{Word: "hello", Frequency: 5000},
		{Word: "help", Frequency: 3500},
		{Word: "world", Frequency: 4000},
	})

	var matched []string
	dict.PrefixMatch("hel", func(word string) { matched = append(matched, word) })

	if len(matched) != 2 {
		t.Fatalf("expected 2 matches for prefix 'hel', got %d: %v", len(matched), matched)
	}
}

func TestDictionary_Enumerate(t *testing.T) {
	dict := NewDictionary([]Entry{
		{Word: "b", Frequency: 1},
		{Word: "a", Frequency: 1},
	})
	var seen []string
	dict.Enumerate(func(word string) { seen = append(seen, word) })
	if len(seen) != 2 || seen[0] != "a" || seen[1] != "b" {
		t.Errorf("expected ascending enumeration [a b], got %v", seen)
	}
}

func TestDictionary_ZipfFrequency(t *testing.T) {
	dict := NewDictionary([]Entry{
		{Word: "hello", Frequency: 5000},
		{Word: "help", Frequency: 3500},
		{Word: "world", Frequency: 1500},
	})

	if got := dict.ZipfFrequency("missing"); got != 0 {
		t.Errorf("expected 0 for an absent word, got %v", got)
	}

	hello := dict.ZipfFrequency("hello")
	world := dict.ZipfFrequency("world")
	if hello <= 0 {
		t.Errorf("expected a positive Zipf score for 'hello', got %v", hello)
	}
	if hello <= world {
		t.Errorf("expected 'hello' (freq 5000) to outscore 'world' (freq 1500), got %v <= %v", hello, world)
	}
}

func TestLoadDictionaryFile_RejectsBadFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(path, []byte("hello notanumber\n"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	if _, err := LoadDictionaryFile(path); err == nil {
		t.Fatal("expected an error for a non-numeric frequency field")
	}
}
