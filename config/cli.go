package config

import "time"

type Cli struct {
	Port               int
	AwsRegion          string
	AwsAccessKeyID     string
	AwsSecretAccessKey string
	FFmpegPath         string
	FFprobePath        string
	TempRoot           string
	MaxDurationMin     int
	GapThresholdSec    float64
}

// MaxDuration is the output duration budget. Chunks past it are dropped and the
// last overlapping segment is clamped.
func (c Cli) MaxDuration() time.Duration {
	return time.Duration(c.MaxDurationMin) * time.Minute
}
