package btvo

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog maps script character names to Cloud TTS voice names.
type Catalog map[string]string

// DefaultVoices returns the built-in character cast.
func DefaultVoices() Catalog {
	return Catalog{
		"Krishna":  "en-IN-Standard-C",
		"Radha":    "en-IN-Wavenet-D",
		"Ganesha":  "en-US-Wavenet-E",
		"Narrator": "en-US-Wavenet-F",
		"Friend1":  "en-US-Standard-C",
		"Friend2":  "en-AU-Wavenet-B",
	}
}

// LoadVoices reads a YAML character→voice map and merges it over the
// defaults. Entries with an empty voice name are rejected.
func LoadVoices(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var overrides map[string]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("invalid voices file %s: %w", path, err)
	}
	cat := DefaultVoices()
	for character, voice := range overrides {
		if strings.TrimSpace(voice) == "" {
			return nil, fmt.Errorf("invalid voices file %s: empty voice for character %q", path, character)
		}
		cat[strings.TrimSpace(character)] = strings.TrimSpace(voice)
	}
	return cat, nil
}

// Lookup returns the voice name for a character.
func (c Catalog) Lookup(character string) (string, bool) {
	v, ok := c[character]
	return v, ok
}

// Characters returns all configured character names, sorted.
func (c Catalog) Characters() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// languageCode derives the TTS language code from a voice name,
// e.g. "en-IN-Standard-C" → "en-IN".
func languageCode(voice string) string {
	parts := strings.SplitN(voice, "-", 3)
	if len(parts) < 2 {
		return "en-US"
	}
	return parts[0] + "-" + parts[1]
}
