package pipeline

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/steadymedia/video-merger/config"
	"github.com/steadymedia/video-merger/log"
	"github.com/steadymedia/video-merger/video"
)

// Segments shorter than this aren't worth a file of their own; they only
// appear when a chunk lands exactly on the duration budget.
const minSegmentSec = 0.001

// runMergeJob drives one job through every phase. Steps run sequentially; the
// job's temp directory is removed on every exit path.
func (c *Coordinator) runMergeJob(job *Job) error {
	jobDir := filepath.Join(c.tempRoot, job.ID)
	defer func() {
		if err := os.RemoveAll(jobDir); err != nil {
			log.LogError(job.ID, "failed to remove job temp directory", err, "dir", jobDir)
		}
	}()

	// list + order
	job.update(JobStateDownloading, 5, "Listing chunks")
	keys, err := c.store.ListVideoKeys(job.Bucket, job.ChunkPrefix)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return fmt.Errorf("no video chunks found under prefix %s", job.ChunkPrefix)
	}
	job.update(JobStateDownloading, 10, fmt.Sprintf("Found %d chunks", len(keys)))

	chunks := make([]video.Chunk, 0, len(keys))
	for _, key := range keys {
		instant, err := video.ParseCaptureInstant(key)
		if err != nil {
			return err
		}
		chunks = append(chunks, video.Chunk{Key: key, CaptureInstant: instant})
	}
	// stable: chunks with identical capture instants keep listing order
	sort.SliceStable(chunks, func(i, j int) bool {
		return chunks[i].CaptureInstant < chunks[j].CaptureInstant
	})

	// download
	for i := range chunks {
		ext := strings.ToLower(filepath.Ext(chunks[i].Key))
		destPath := filepath.Join(jobDir, "chunks", fmt.Sprintf("%04d%s", i, ext))
		if err := c.store.DownloadToFile(job.Bucket, chunks[i].Key, destPath); err != nil {
			return err
		}
		chunks[i].LocalPath = destPath
		job.setProgress(10+phaseProgress(i+1, len(chunks), 30), fmt.Sprintf("Downloaded chunk %d/%d", i+1, len(chunks)))
	}

	// probe
	job.update(JobStateAnalyzing, 40, "Probing chunk durations")
	for i := range chunks {
		duration, err := c.prober.Duration(chunks[i].LocalPath)
		if err != nil {
			return err
		}
		chunks[i].Duration = duration
		job.setProgress(40+phaseProgress(i+1, len(chunks), 15), fmt.Sprintf("Probed chunk %d/%d", i+1, len(chunks)))
	}

	profile, err := c.prober.Profile(chunks[0].LocalPath)
	if err != nil {
		return err
	}
	log.Log(job.ID, "Probed reference profile",
		"width", profile.Width, "height", profile.Height, "fps", profile.FrameRate,
		"video_codec", profile.VideoCodec, "audio_codec", profile.AudioCodec)

	// timeline
	job.update(JobStateMerging, 55, "Building timeline")
	segments := video.BuildTimeline(chunks, c.gapThresholdSec, c.maxDurationSec)
	job.setProgress(60, fmt.Sprintf("Timeline built: %d segments", len(segments)))

	// materialize
	job.setProgress(65, "Materializing segments")
	files, err := c.materializeSegments(job, jobDir, segments, chunks, profile)
	if err != nil {
		return err
	}

	// concat
	manifestPath := filepath.Join(jobDir, "concat_list.txt")
	if err := video.WriteConcatManifest(manifestPath, files); err != nil {
		return err
	}
	outputPath := filepath.Join(jobDir, "merged_output.mp4")
	if err := c.concat(manifestPath, outputPath, config.ConcatTimeout); err != nil {
		return fmt.Errorf("concat failed: %w", err)
	}

	// upload
	job.update(JobStateUploading, 90, "Uploading merged video")
	if err := c.store.UploadFile(job.Bucket, job.OutputKey, outputPath, "video/mp4"); err != nil {
		return err
	}

	job.update(JobStateCompleted, 100, "Merge completed")
	return nil
}

// materializeSegments produces one normalized file per timeline segment and
// returns their paths in timeline order. Chunk and gap files are numbered
// independently; the manifest order is what links them back together.
func (c *Coordinator) materializeSegments(job *Job, jobDir string, segments []video.Segment, chunks []video.Chunk, profile video.Profile) ([]string, error) {
	for _, subdir := range []string{"normalized", "gaps"} {
		if err := os.MkdirAll(filepath.Join(jobDir, subdir), 0755); err != nil {
			return nil, fmt.Errorf("error creating %s directory: %w", subdir, err)
		}
	}

	files := make([]string, 0, len(segments))
	chunkIdx, gapIdx := 0, 0
	for i, segment := range segments {
		switch segment.Kind {
		case video.SegmentChunk:
			sourceDuration := chunks[chunkIdx].Duration
			outputPath := filepath.Join(jobDir, "normalized", fmt.Sprintf("chunk_%04d.mp4", chunkIdx))
			chunkIdx++
			if segment.Duration < minSegmentSec {
				continue
			}
			// only cut when the budget clamped this chunk
			limitSec := 0.0
			if segment.Duration < sourceDuration-minSegmentSec {
				limitSec = segment.Duration
			}
			if err := c.normalize(segment.SourcePath, outputPath, profile, limitSec, config.NormalizeTimeout); err != nil {
				return nil, fmt.Errorf("normalize failed: %w", err)
			}
			files = append(files, outputPath)
		case video.SegmentGap:
			outputPath := filepath.Join(jobDir, "gaps", fmt.Sprintf("gap_%04d.mp4", gapIdx))
			gapIdx++
			if segment.Duration < minSegmentSec {
				continue
			}
			if err := c.synthesizeGap(outputPath, segment.Duration, profile, config.NormalizeTimeout); err != nil {
				return nil, fmt.Errorf("gap synthesis failed: %w", err)
			}
			files = append(files, outputPath)
		}
		job.setProgress(65+phaseProgress(i+1, len(segments), 25), fmt.Sprintf("Materialized segment %d/%d", i+1, len(segments)))
	}
	return files, nil
}

func phaseProgress(done, total, span int) int {
	return int(math.Round(float64(done) / float64(total) * float64(span)))
}
