package video

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// WriteConcatManifest writes an ffmpeg concat demuxer list with one entry per
// materialized file, in timeline order.
func WriteConcatManifest(manifestPath string, files []string) error {
	manifest, err := os.Create(manifestPath)
	if err != nil {
		return fmt.Errorf("error creating concat manifest %s: %w", manifestPath, err)
	}
	defer manifest.Close()

	for _, file := range files {
		// Escape single quotes in paths for the concat file format.
		escaped := strings.ReplaceAll(file, "'", "'\\''")
		if _, err := fmt.Fprintf(manifest, "file '%s'\n", escaped); err != nil {
			return fmt.Errorf("error writing concat manifest %s: %w", manifestPath, err)
		}
	}
	return nil
}

// ConcatSegments drives the concat demuxer with stream copy into the final MP4
// and relocates the moov atom to the front for progressive playback.
func ConcatSegments(manifestPath, outputPath string, timeout time.Duration) error {
	ffmpegErr := bytes.Buffer{}
	err := withBinary(ffmpeg.Input(manifestPath, ffmpeg.KwArgs{"f": "concat", "safe": "0"}).
		Output(outputPath, ffmpeg.KwArgs{"c": "copy", "movflags": "faststart"}).
		OverWriteOutput().
		WithErrorOutput(&ffmpegErr).
		WithTimeout(timeout)).Run()
	if err != nil {
		return fmt.Errorf("failed to concatenate segments [%s]: %w", ffmpegErr.String(), err)
	}

	if _, err := os.Stat(outputPath); err != nil {
		return fmt.Errorf("concat error: failed to stat merged output file: %w", err)
	}
	return nil
}
