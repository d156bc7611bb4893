package video

import (
	"bytes"
	"fmt"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// SynthesizeGap renders black video of the requested duration at the profile's
// dimensions and frame rate, plus a silent audio track when the profile has
// audio. Gap files must be indistinguishable from normalized chunks at the
// codec-parameter level so the concat demuxer can stream-copy across them.
func SynthesizeGap(outputPath string, durationSec float64, profile Profile, timeout time.Duration) error {
	videoSource := fmt.Sprintf("color=black:s=%dx%d:r=%d", profile.Width, profile.Height, roundedFrameRate(profile))
	inputs := []*ffmpeg.Stream{
		ffmpeg.Input(videoSource, ffmpeg.KwArgs{"f": "lavfi"}),
	}

	if profile.HasAudio() {
		layout := "stereo"
		if profile.AudioChannels == 1 {
			layout = "mono"
		}
		audioSource := fmt.Sprintf("anullsrc=r=%d:cl=%s", profile.AudioSampleRate, layout)
		inputs = append(inputs, ffmpeg.Input(audioSource, ffmpeg.KwArgs{"f": "lavfi"}))
	}

	kwargs := encodingArgs(profile)
	kwargs["t"] = fmt.Sprintf("%.3f", durationSec)

	ffmpegErr := bytes.Buffer{}
	err := withBinary(ffmpeg.Output(inputs, outputPath, kwargs).
		OverWriteOutput().
		WithErrorOutput(&ffmpegErr).
		WithTimeout(timeout)).Run()
	if err != nil {
		return fmt.Errorf("failed to synthesize %.3fs gap filler [%s]: %w", durationSec, ffmpegErr.String(), err)
	}
	return nil
}
