package btvo

import (
	"context"
	"fmt"
	"sync"
	"time"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/rs/zerolog"
)

// Synthesizer turns one dialogue line into MP3 audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, voice, text string) ([]byte, error)
}

// SynthesizerFunc adapts a function to the Synthesizer interface.
type SynthesizerFunc func(ctx context.Context, voice, text string) ([]byte, error)

func (f SynthesizerFunc) Synthesize(ctx context.Context, voice, text string) ([]byte, error) {
	return f(ctx, voice, text)
}

// GoogleSynthesizer synthesizes speech through the Cloud TTS API.
type GoogleSynthesizer struct {
	client *texttospeech.Client
}

// NewGoogleSynthesizer wraps a Cloud TTS client.
func NewGoogleSynthesizer(client *texttospeech.Client) *GoogleSynthesizer {
	return &GoogleSynthesizer{client: client}
}

func (g *GoogleSynthesizer) Synthesize(ctx context.Context, voice, text string) ([]byte, error) {
	resp, err := g.client.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: languageCode(voice),
			Name:         voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	})
	if err != nil {
		return nil, err
	}
	return resp.GetAudioContent(), nil
}

// Engine runs voice-over jobs: it parses scripts, synthesizes each cue
// through a bounded pool, and writes the numbered MP3 files.
type Engine struct {
	synth     Synthesizer
	store     *Store
	artifacts *ArtifactDir
	mirror    *ArtifactMirror
	catalog   Catalog
	bus       *EventBus
	metrics   *Metrics
	logger    zerolog.Logger
	threads   int
}

// NewEngine creates an engine. threads bounds concurrent synthesis calls
// per job; mirror may be nil.
func NewEngine(synth Synthesizer, store *Store, artifacts *ArtifactDir, mirror *ArtifactMirror,
	catalog Catalog, bus *EventBus, metrics *Metrics, logger zerolog.Logger, threads int) *Engine {
	if threads <= 0 {
		threads = 8
	}
	return &Engine{
		synth:     synth,
		store:     store,
		artifacts: artifacts,
		mirror:    mirror,
		catalog:   catalog,
		bus:       bus,
		metrics:   metrics,
		logger:    logger.With().Str("component", "engine").Logger(),
		threads:   threads,
	}
}

// Run executes one job to completion. Synthesis has no deadline; a job
// runs as long as the API calls take.
func (e *Engine) Run(ctx context.Context, jobID string, script string) {
	start := time.Now()
	e.store.Jobs.Update(jobID, func(j *Job) {
		j.Status = JobRunning
		j.StartedAt = start
	})
	e.bus.emit("job_started", jobID, 0, "", "", "")

	lines := ParseScript(script)
	results := make([]LineResult, len(lines))

	sem := make(chan struct{}, e.threads)
	var wg sync.WaitGroup
	for i, line := range lines {
		results[i] = LineResult{
			Line:      line.Number,
			Cue:       line.Cue,
			Character: line.Character,
			Dialogue:  line.Dialogue,
		}

		if line.Malformed {
			results[i].Status = LineFormatError
			results[i].Error = fmt.Sprintf("Line %d (Format Error): '%s'", line.Number, line.Raw)
			continue
		}
		voice, ok := e.catalog.Lookup(line.Character)
		if !ok {
			results[i].Status = LineUnknownCharacter
			results[i].Error = fmt.Sprintf("Line %d: Character '%s' not configured.", line.Number, line.Character)
			continue
		}
		if line.Dialogue == "" {
			results[i].Status = LineEmptyDialogue
			results[i].Error = fmt.Sprintf("Line %d (%s): No dialogue text remaining after removing brackets.",
				line.Number, line.Character)
			continue
		}

		wg.Add(1)
		go func(i int, line ScriptLine, voice string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = e.synthesizeLine(ctx, jobID, line, voice)
		}(i, line, voice)
	}
	wg.Wait()

	generated := 0
	var errors []string
	for i := range results {
		switch results[i].Status {
		case LineGenerated:
			generated++
			e.metrics.RecordLineGenerated()
		default:
			errors = append(errors, results[i].Error)
			e.metrics.RecordLineFailure(results[i].Status)
			e.bus.emit("line_failed", jobID, results[i].Line, results[i].Character, "", results[i].Error)
		}
	}

	summary := fmt.Sprintf("Processed %d lines. Generated %d files.", len(lines), generated)
	e.store.Jobs.Update(jobID, func(j *Job) {
		j.Status = JobComplete
		j.FinishedAt = time.Now()
		j.LinesProcessed = len(lines)
		j.FilesGenerated = generated
		j.Lines = results
		j.Errors = errors
		j.Summary = summary
	})
	e.metrics.RecordJobComplete()
	e.bus.emit("job_complete", jobID, 0, "", "", "")

	e.logger.Info().
		Str("job_id", jobID).
		Int("lines", len(lines)).
		Int("generated", generated).
		Int("failed", len(errors)).
		Dur("dur", time.Since(start)).
		Msg("job complete")
}

// synthesizeLine produces and stores the MP3 for one cue.
func (e *Engine) synthesizeLine(ctx context.Context, jobID string, line ScriptLine, voice string) LineResult {
	result := LineResult{
		Line:      line.Number,
		Cue:       line.Cue,
		Character: line.Character,
		Dialogue:  line.Dialogue,
	}

	audio, err := e.synth.Synthesize(ctx, voice, line.Dialogue)
	if err != nil {
		result.Status = LineAPIError
		result.Error = fmt.Sprintf("Line %d (%s): API Error for '%s': %v",
			line.Number, line.Character, line.Character, err)
		return result
	}

	name := cueFileName(line.Cue, line.Character)
	if err := e.artifacts.Write(name, audio); err != nil {
		result.Status = LineAPIError
		result.Error = fmt.Sprintf("Line %d (%s): API Error for '%s': %v",
			line.Number, line.Character, line.Character, err)
		return result
	}

	if e.mirror != nil {
		if err := e.mirror.Upload(ctx, name, audio); err != nil {
			e.logger.Warn().Err(err).Str("object", name).Msg("mirror upload failed")
		}
	}

	result.Status = LineGenerated
	result.File = name
	e.bus.emit("line_generated", jobID, line.Number, line.Character, name, "")
	return result
}
