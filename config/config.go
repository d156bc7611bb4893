package config

import "time"

var Version = "unknown"

const (
	// Wall-clock deadline for re-encoding a single chunk or synthesizing a
	// single gap filler.
	NormalizeTimeout = 5 * time.Minute

	// Wall-clock deadline for the final concat run.
	ConcatTimeout = 30 * time.Minute

	// Gaps shorter than this are treated as recorder jitter and ignored.
	DefaultGapThresholdSec = 0.5

	DefaultMaxDurationMin = 60

	DefaultTempRoot = "/tmp/video-merger"

	// Temp job directories older than this are removed at startup. They can
	// only be left behind by jobs interrupted during a deploy.
	OrphanedJobDirMaxAge = 6 * time.Hour
)
