package btvo

import (
	"regexp"
	"strings"
)

var (
	stageDirectionRe = regexp.MustCompile(`\[.*?\]`)
	whitespaceRe     = regexp.MustCompile(`\s+`)
)

// ScriptLine is one processed (non-blank) line of a dialogue script.
type ScriptLine struct {
	// Number is the 1-based line number in the raw script file.
	Number int
	// Cue is the 1-based index among processed lines; it numbers the
	// output file for this line.
	Cue int
	// Raw is the trimmed original line.
	Raw       string
	Character string
	// Dialogue is the cleaned dialogue: stage directions in square
	// brackets removed, whitespace collapsed. May be empty.
	Dialogue string
	// Malformed is set when the line is not "Character: dialogue" with
	// both halves non-empty.
	Malformed bool
}

// ParseScript splits a dialogue script into processed lines. Blank lines
// are skipped and do not advance the cue counter. The first colon
// separates the character name from the dialogue; lines without a valid
// split are returned with Malformed set so callers can report them by
// line number.
func ParseScript(content string) []ScriptLine {
	var lines []ScriptLine
	cue := 0
	for i, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		cue++
		sl := ScriptLine{Number: i + 1, Cue: cue, Raw: line}

		character, dialogue, found := strings.Cut(line, ":")
		character = strings.TrimSpace(character)
		dialogue = strings.TrimSpace(dialogue)
		if !found || character == "" || dialogue == "" {
			sl.Malformed = true
			lines = append(lines, sl)
			continue
		}

		sl.Character = character
		sl.Dialogue = cleanDialogue(dialogue)
		lines = append(lines, sl)
	}
	return lines
}

// cleanDialogue strips inline stage directions like [pause] or
// [softly, to Radha] and collapses the remaining whitespace.
func cleanDialogue(dialogue string) string {
	cleaned := stageDirectionRe.ReplaceAllString(dialogue, "")
	cleaned = whitespaceRe.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}
