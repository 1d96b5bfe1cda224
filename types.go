package btvo

import "time"

// JobStatus is the lifecycle state of a voice-over job.
type JobStatus string

const (
	JobPending  JobStatus = "pending"
	JobRunning  JobStatus = "running"
	JobComplete JobStatus = "complete"
)

// LineStatus is the outcome of a single script line.
type LineStatus string

const (
	LineGenerated        LineStatus = "generated"
	LineFormatError      LineStatus = "format_error"
	LineUnknownCharacter LineStatus = "unknown_character"
	LineEmptyDialogue    LineStatus = "empty_dialogue"
	LineAPIError         LineStatus = "api_error"
)

// LineResult is the per-line outcome of a job.
type LineResult struct {
	Line      int        `json:"line"`
	Cue       int        `json:"cue"`
	Character string     `json:"character,omitempty"`
	Dialogue  string     `json:"dialogue,omitempty"`
	Status    LineStatus `json:"status"`
	File      string     `json:"file,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// Job is one script-to-voice-over run.
type Job struct {
	ID             string       `json:"id"`
	Script         string       `json:"script"`
	Status         JobStatus    `json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
	StartedAt      time.Time    `json:"started_at,omitzero"`
	FinishedAt     time.Time    `json:"finished_at,omitzero"`
	LinesProcessed int          `json:"lines_processed"`
	FilesGenerated int          `json:"files_generated"`
	Lines          []LineResult `json:"lines,omitempty"`
	Errors         []string     `json:"errors,omitempty"`
	Summary        string       `json:"summary,omitempty"`
}

// FileInfo describes one generated voice-over file.
type FileInfo struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// JobEvent is published on the event bus as a job progresses.
type JobEvent struct {
	Type      string `json:"type"` // job_started, line_generated, line_failed, job_complete
	JobID     string `json:"job_id"`
	Line      int    `json:"line,omitempty"`
	Character string `json:"character,omitempty"`
	File      string `json:"file,omitempty"`
	Error     string `json:"error,omitempty"`
	Time      int64  `json:"time"`
}
