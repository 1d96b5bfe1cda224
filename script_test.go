package btvo

import (
	"testing"
)

func TestParseBasicScript(t *testing.T) {
	script := "Krishna: Hello there!\nRadha: Hi, Krishna.\n"
	lines := ParseScript(script)

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Character != "Krishna" || lines[0].Dialogue != "Hello there!" {
		t.Fatalf("unexpected first line: %+v", lines[0])
	}
	if lines[1].Character != "Radha" || lines[1].Dialogue != "Hi, Krishna." {
		t.Fatalf("unexpected second line: %+v", lines[1])
	}
}

func TestParseSkipsBlankLines(t *testing.T) {
	script := "\nKrishna: One.\n\n   \nRadha: Two.\n\n"
	lines := ParseScript(script)

	if len(lines) != 2 {
		t.Fatalf("expected 2 processed lines, got %d", len(lines))
	}
	// Line numbers are positions in the raw file, cues count only
	// processed lines.
	if lines[0].Number != 2 || lines[0].Cue != 1 {
		t.Fatalf("expected line 2 cue 1, got line %d cue %d", lines[0].Number, lines[0].Cue)
	}
	if lines[1].Number != 5 || lines[1].Cue != 2 {
		t.Fatalf("expected line 5 cue 2, got line %d cue %d", lines[1].Number, lines[1].Cue)
	}
}

func TestParseMalformedLines(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"no colon", "just some text"},
		{"empty character", ": dialogue without speaker"},
		{"empty dialogue", "Krishna:"},
		{"whitespace dialogue", "Krishna:    "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := ParseScript(tt.line)
			if len(lines) != 1 {
				t.Fatalf("expected 1 line, got %d", len(lines))
			}
			if !lines[0].Malformed {
				t.Fatalf("expected malformed, got %+v", lines[0])
			}
		})
	}
}

func TestParseSplitsOnFirstColon(t *testing.T) {
	lines := ParseScript("Narrator: And then he said: goodbye.")
	if len(lines) != 1 || lines[0].Malformed {
		t.Fatalf("unexpected parse: %+v", lines)
	}
	if lines[0].Character != "Narrator" {
		t.Fatalf("expected character Narrator, got %q", lines[0].Character)
	}
	if lines[0].Dialogue != "And then he said: goodbye." {
		t.Fatalf("unexpected dialogue: %q", lines[0].Dialogue)
	}
}

func TestParseStripsStageDirections(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single direction", "Krishna: [laughing] That was fun!", "That was fun!"},
		{"inline direction", "Radha: Wait [pause] for me.", "Wait for me."},
		{"multiple directions", "Ganesha: [slowly] One [beat] two.", "One two."},
		{"collapses whitespace", "Narrator: Too    many   spaces.", "Too many spaces."},
		{"only direction", "Krishna: [sighs deeply]", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := ParseScript(tt.in)
			if len(lines) != 1 || lines[0].Malformed {
				t.Fatalf("unexpected parse: %+v", lines)
			}
			if lines[0].Dialogue != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, lines[0].Dialogue)
			}
		})
	}
}

func TestParseTrimsLines(t *testing.T) {
	lines := ParseScript("   Krishna:   Hello.   ")
	if len(lines) != 1 || lines[0].Malformed {
		t.Fatalf("unexpected parse: %+v", lines)
	}
	if lines[0].Character != "Krishna" || lines[0].Dialogue != "Hello." {
		t.Fatalf("unexpected line: %+v", lines[0])
	}
	if lines[0].Raw != "Krishna:   Hello." {
		t.Fatalf("unexpected raw: %q", lines[0].Raw)
	}
}
