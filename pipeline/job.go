package pipeline

import (
	"sync"
	"time"
)

type JobState string

const (
	JobStateQueued      JobState = "queued"
	JobStateDownloading JobState = "downloading"
	JobStateAnalyzing   JobState = "analyzing"
	JobStateMerging     JobState = "merging"
	JobStateUploading   JobState = "uploading"
	JobStateCompleted   JobState = "completed"
	JobStateFailed      JobState = "failed"
)

// MergeRequest is the payload required to start a merge job.
type MergeRequest struct {
	Bucket      string `json:"bucket"`
	ChunkPrefix string `json:"chunkPrefix"`
	OutputKey   string `json:"outputKey"`
}

// Job is the state of a single merge job. Mutations happen only on the job's
// own goroutine; readers take snapshots under the lock so pollers always see a
// fully written update.
type Job struct {
	mu sync.Mutex

	ID          string
	Bucket      string
	ChunkPrefix string
	OutputKey   string

	State     JobState
	Progress  int
	Message   string
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// JobSnapshot is the wire representation of a job.
type JobSnapshot struct {
	ID        string    `json:"id"`
	State     JobState  `json:"state"`
	Progress  int       `json:"progress"`
	Message   string    `json:"message"`
	OutputKey string    `json:"outputKey"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	return JobSnapshot{
		ID:        j.ID,
		State:     j.State,
		Progress:  j.Progress,
		Message:   j.Message,
		OutputKey: j.OutputKey,
		Error:     j.Error,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}

// update advances state, progress and message together. Progress never moves
// backwards, whatever order phases report in.
func (j *Job) update(state JobState, progress int, message string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.State = state
	if progress > j.Progress {
		j.Progress = progress
	}
	j.Message = message
	j.UpdatedAt = time.Now()
}

// setProgress bumps progress within the current state.
func (j *Job) setProgress(progress int, message string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if progress > j.Progress {
		j.Progress = progress
	}
	j.Message = message
	j.UpdatedAt = time.Now()
}

// fail marks the job failed with progress frozen at its last value.
func (j *Job) fail(err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.State = JobStateFailed
	j.Message = "Merge failed"
	j.Error = err.Error()
	j.UpdatedAt = time.Now()
}
