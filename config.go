package btvo

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds btvo service configuration.
type Config struct {
	Port            string
	BindAddr        string // full listen address; overrides Port when set
	Project         string
	Location        string
	OutputDir       string
	ArtifactBucket  string
	TTSEndpoint     string
	StorageEndpoint string
	SynthThreads    int
	VoicesFile      string
}

// ConfigFromEnv loads configuration from environment variables.
func ConfigFromEnv() Config {
	return Config{
		Port:            envOrDefault("PORT", "8080"),
		Project:         os.Getenv("GCP_PROJECT_ID"),
		Location:        envOrDefault("GCP_LOCATION", "us-central1"),
		OutputDir:       envOrDefault("BTVO_OUTPUT_DIR", defaultOutputDir()),
		ArtifactBucket:  os.Getenv("BTVO_ARTIFACT_BUCKET"),
		TTSEndpoint:     os.Getenv("BTVO_TTS_ENDPOINT"),
		StorageEndpoint: os.Getenv("BTVO_STORAGE_ENDPOINT"),
		SynthThreads:    envOrDefaultInt("BTVO_SYNTH_THREADS", 8),
		VoicesFile:      os.Getenv("BTVO_VOICES_FILE"),
	}
}

// Validate checks required configuration.
func (c Config) Validate() error {
	if c.TTSEndpoint != "" {
		return nil
	}
	if c.Project == "" {
		return fmt.Errorf("GCP_PROJECT_ID is required")
	}
	return nil
}

// Addr returns the listen address, binding all interfaces unless
// BindAddr names a specific one.
func (c Config) Addr() string {
	if c.BindAddr != "" {
		return c.BindAddr
	}
	return ":" + c.Port
}

// defaultOutputDir picks the voice-over directory. On Cloud Run (detected
// via K_SERVICE) only /tmp is writable.
func defaultOutputDir() string {
	if os.Getenv("K_SERVICE") != "" {
		return "/tmp/voice_overs"
	}
	return "voice_overs"
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
