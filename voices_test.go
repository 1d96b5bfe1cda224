package btvo

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultVoices(t *testing.T) {
	cat := DefaultVoices()

	voice, ok := cat.Lookup("Krishna")
	if !ok {
		t.Fatal("expected Krishna in default catalog")
	}
	if voice != "en-IN-Standard-C" {
		t.Fatalf("unexpected voice for Krishna: %s", voice)
	}

	if _, ok := cat.Lookup("Villain"); ok {
		t.Fatal("expected Villain to be unconfigured")
	}

	chars := cat.Characters()
	if len(chars) != 6 {
		t.Fatalf("expected 6 characters, got %d", len(chars))
	}
	// Sorted output
	for i := 1; i < len(chars); i++ {
		if chars[i-1] >= chars[i] {
			t.Fatalf("characters not sorted: %v", chars)
		}
	}
}

func TestLoadVoicesMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voices.yaml")
	yaml := "Villain: en-GB-Wavenet-B\nKrishna: en-IN-Wavenet-A\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := LoadVoices(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}

	if v, _ := cat.Lookup("Villain"); v != "en-GB-Wavenet-B" {
		t.Fatalf("expected new character, got %q", v)
	}
	if v, _ := cat.Lookup("Krishna"); v != "en-IN-Wavenet-A" {
		t.Fatalf("expected override, got %q", v)
	}
	if v, _ := cat.Lookup("Radha"); v != "en-IN-Wavenet-D" {
		t.Fatalf("expected default preserved, got %q", v)
	}
}

func TestLoadVoicesRejectsEmptyVoice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voices.yaml")
	if err := os.WriteFile(path, []byte("Ghost: \"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadVoices(path); err == nil {
		t.Fatal("expected error for empty voice name")
	}
}

func TestLoadVoicesMissingFile(t *testing.T) {
	if _, err := LoadVoices(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLanguageCode(t *testing.T) {
	tests := []struct {
		voice string
		want  string
	}{
		{"en-IN-Standard-C", "en-IN"},
		{"en-US-Wavenet-F", "en-US"},
		{"en-AU-Wavenet-B", "en-AU"},
		{"bogus", "en-US"},
	}
	for _, tt := range tests {
		if got := languageCode(tt.voice); got != tt.want {
			t.Fatalf("languageCode(%q) = %q, want %q", tt.voice, got, tt.want)
		}
	}
}
