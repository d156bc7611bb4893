package video

import (
	"bytes"
	"fmt"
	"math"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

var ffmpegPath string

// SetFFmpegPath points every encoder invocation at a non-default ffmpeg binary.
func SetFFmpegPath(path string) {
	ffmpegPath = path
}

func withBinary(s *ffmpeg.Stream) *ffmpeg.Stream {
	if ffmpegPath != "" {
		return s.SetFfmpegPath(ffmpegPath)
	}
	return s
}

// ffprobe reports decoder names; map them to the encoders ffmpeg ships with.
var videoEncoders = map[string]string{
	"h264": "libx264",
	"hevc": "libx265",
	"vp8":  "libvpx",
	"vp9":  "libvpx-vp9",
	"av1":  "libaom-av1",
}

var audioEncoders = map[string]string{
	"aac":    "aac",
	"opus":   "libopus",
	"vorbis": "libvorbis",
	"mp3":    "libmp3lame",
	"ac3":    "ac3",
}

func videoEncoderFor(codec string) string {
	if encoder, ok := videoEncoders[codec]; ok {
		return encoder
	}
	return "libx264"
}

func audioEncoderFor(codec string) string {
	if encoder, ok := audioEncoders[codec]; ok {
		return encoder
	}
	return "aac"
}

// encodingArgs builds the output arguments shared by chunk normalization and
// gap synthesis. Both must produce byte-compatible streams or the stream-copy
// concat breaks.
func encodingArgs(profile Profile) ffmpeg.KwArgs {
	videoEncoder := videoEncoderFor(profile.VideoCodec)
	kwargs := ffmpeg.KwArgs{
		"c:v":     videoEncoder,
		"r":       roundedFrameRate(profile),
		"pix_fmt": "yuv420p",
	}
	if videoEncoder == "libx264" || videoEncoder == "libx265" {
		kwargs["preset"] = "veryfast"
	}
	if profile.HasAudio() {
		kwargs["c:a"] = audioEncoderFor(profile.AudioCodec)
		kwargs["ar"] = profile.AudioSampleRate
		kwargs["ac"] = profile.AudioChannels
	} else {
		kwargs["an"] = ""
	}
	return kwargs
}

func roundedFrameRate(profile Profile) int {
	return int(math.Round(profile.FrameRate))
}

// NormalizeChunk re-encodes one downloaded chunk to the reference profile so
// that every materialized segment shares identical codec parameters. A
// positive limitSec cuts the output short; the timeline builder uses this for
// the chunk that straddles the duration budget.
func NormalizeChunk(sourcePath, outputPath string, profile Profile, limitSec float64, timeout time.Duration) error {
	kwargs := encodingArgs(profile)
	kwargs["vf"] = fmt.Sprintf("scale=%d:%d", profile.Width, profile.Height)
	if limitSec > 0 {
		kwargs["t"] = fmt.Sprintf("%.3f", limitSec)
	}

	ffmpegErr := bytes.Buffer{}
	err := withBinary(ffmpeg.Input(sourcePath).
		Output(outputPath, kwargs).
		OverWriteOutput().
		WithErrorOutput(&ffmpegErr).
		WithTimeout(timeout)).Run()
	if err != nil {
		return fmt.Errorf("failed to normalize chunk %s [%s]: %w", sourcePath, ffmpegErr.String(), err)
	}
	return nil
}
