package pipeline

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/steadymedia/video-merger/cache"
	"github.com/steadymedia/video-merger/config"
	"github.com/steadymedia/video-merger/log"
	"github.com/steadymedia/video-merger/metrics"
	"github.com/steadymedia/video-merger/video"
)

// ObjectStoreClient is the slice of the object store the merge pipeline needs.
type ObjectStoreClient interface {
	ListVideoKeys(bucket, prefix string) ([]string, error)
	DownloadToFile(bucket, key, destPath string) error
	UploadFile(bucket, key, localPath, contentType string) error
}

// Coordinator owns the job registry and schedules merge jobs. It is called
// directly from the API handlers and never blocks on merge work: submission
// stores the job and hands the pipeline to a background goroutine.
type Coordinator struct {
	store  ObjectStoreClient
	prober video.Prober

	tempRoot        string
	gapThresholdSec float64
	maxDurationSec  float64

	// seams for tests; default to the real encoders
	normalize     func(sourcePath, outputPath string, profile video.Profile, limitSec float64, timeout time.Duration) error
	synthesizeGap func(outputPath string, durationSec float64, profile video.Profile, timeout time.Duration) error
	concat        func(manifestPath, outputPath string, timeout time.Duration) error

	Jobs *cache.Cache[*Job]
}

func NewCoordinator(store ObjectStoreClient, prober video.Prober, cli config.Cli) *Coordinator {
	return &Coordinator{
		store:           store,
		prober:          prober,
		tempRoot:        cli.TempRoot,
		gapThresholdSec: cli.GapThresholdSec,
		maxDurationSec:  cli.MaxDuration().Seconds(),
		normalize:       video.NormalizeChunk,
		synthesizeGap:   video.SynthesizeGap,
		concat:          video.ConcatSegments,
		Jobs:            cache.New[*Job](),
	}
}

// StartMergeJob registers a new job and runs the merge pipeline on a
// background goroutine. It returns the job immediately.
func (c *Coordinator) StartMergeJob(req MergeRequest) *Job {
	now := time.Now()
	job := &Job{
		ID:          uuid.New().String(),
		Bucket:      req.Bucket,
		ChunkPrefix: req.ChunkPrefix,
		OutputKey:   req.OutputKey,
		State:       JobStateQueued,
		Progress:    0,
		Message:     "Merge job queued",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	c.Jobs.Store(job.ID, job)
	metrics.Metrics.MergeRequestCount.Inc()

	log.AddContext(job.ID, "bucket", req.Bucket, "prefix", req.ChunkPrefix, "output_key", req.OutputKey)
	log.Log(job.ID, "Wrote merge job to registry")

	go func() {
		metrics.Metrics.MergeJobsInFlight.Inc()
		err := recovered(func() error {
			return c.runMergeJob(job)
		})
		metrics.Metrics.MergeJobsInFlight.Dec()
		metrics.Metrics.MergeJobDurationSec.
			WithLabelValues(strconv.FormatBool(err == nil)).
			Observe(time.Since(now).Seconds())
		if err != nil {
			log.LogError(job.ID, "Merge job failed", err)
			job.fail(err)
			return
		}
		log.Log(job.ID, "Merge job completed")
	}()

	return job
}

// GetJob returns the live job record or nil when unknown.
func (c *Coordinator) GetJob(id string) *Job {
	return c.Jobs.Get(id)
}

// ListJobs returns snapshots of every job, newest first.
func (c *Coordinator) ListJobs() []JobSnapshot {
	jobs := c.Jobs.GetAll()
	snapshots := make([]JobSnapshot, 0, len(jobs))
	for _, job := range jobs {
		snapshots = append(snapshots, job.Snapshot())
	}
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].CreatedAt.After(snapshots[j].CreatedAt)
	})
	return snapshots
}

// recovered keeps a panicking merge job from taking the process down; the
// panic becomes an ordinary job failure.
func recovered(f func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			log.LogNoJobID("panic in merge job goroutine, recovering", "err", rec)
			err = fmt.Errorf("panic in merge job: %v", rec)
		}
	}()
	return f()
}
