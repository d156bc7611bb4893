package video

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	ffprobe "gopkg.in/vansante/go-ffprobe.v2"
)

const (
	defaultWidth     = 1920
	defaultHeight    = 1080
	defaultFrameRate = 30
	defaultCodec     = "h264"
)

type Prober interface {
	Duration(path string) (float64, error)
	Profile(path string) (Profile, error)
}

type Probe struct{}

// Duration returns the container duration of a local file in seconds.
func (p Probe) Duration(path string) (float64, error) {
	data, err := p.runProbe(path)
	if err != nil {
		return 0, err
	}
	if data.Format != nil && data.Format.DurationSeconds > 0 {
		return data.Format.DurationSeconds, nil
	}
	if videoStream := data.FirstVideoStream(); videoStream != nil {
		if duration, err := strconv.ParseFloat(videoStream.Duration, 64); err == nil && duration > 0 {
			return duration, nil
		}
	}
	return 0, fmt.Errorf("error probing %s: container reports no duration", path)
}

// Profile inspects the first video track and the first audio track (if any)
// and returns the reference encoding parameters for the job.
func (p Probe) Profile(path string) (Profile, error) {
	data, err := p.runProbe(path)
	if err != nil {
		return Profile{}, err
	}

	videoStream := data.FirstVideoStream()
	if videoStream == nil {
		return Profile{}, fmt.Errorf("error probing %s: no video stream found", path)
	}

	profile := Profile{
		Width:      videoStream.Width,
		Height:     videoStream.Height,
		FrameRate:  parseFrameRate(videoStream.AvgFrameRate),
		VideoCodec: videoStream.CodecName,
	}
	if profile.Width <= 0 || profile.Height <= 0 {
		profile.Width = defaultWidth
		profile.Height = defaultHeight
	}
	if profile.FrameRate <= 0 {
		profile.FrameRate = parseFrameRate(videoStream.RFrameRate)
	}
	if profile.FrameRate <= 0 {
		profile.FrameRate = defaultFrameRate
	}
	if profile.VideoCodec == "" {
		profile.VideoCodec = defaultCodec
	}

	if audioStream := data.FirstAudioStream(); audioStream != nil {
		sampleRate, err := strconv.Atoi(audioStream.SampleRate)
		if audioStream.SampleRate != "" && err != nil {
			return Profile{}, fmt.Errorf("error parsing sample rate from track %d: %w", audioStream.Index, err)
		}
		profile.AudioCodec = audioStream.CodecName
		profile.AudioSampleRate = sampleRate
		profile.AudioChannels = audioStream.Channels
	}

	return profile, nil
}

func (p Probe) runProbe(path string) (data *ffprobe.ProbeData, err error) {
	operation := func() error {
		probeCtx, probeCancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer probeCancel()
		data, err = ffprobe.ProbeURL(probeCtx, path, "-loglevel", "error")
		return err
	}

	backOff := backoff.NewExponentialBackOff()
	backOff.InitialInterval = 500 * time.Millisecond
	backOff.MaxInterval = 2 * time.Second
	backOff.MaxElapsedTime = 0 // don't impose a timeout as part of the retries
	err = backoff.Retry(operation, backoff.WithMaxRetries(backOff, 3))
	if err != nil {
		return nil, fmt.Errorf("error probing %s: %w", path, err)
	}
	return data, nil
}

func parseFrameRate(framerate string) float64 {
	if framerate == "" {
		return 0
	}
	parts := strings.SplitN(framerate, "/", 2)
	if len(parts) < 2 {
		fps, err := strconv.ParseFloat(framerate, 64)
		if err != nil {
			return 0
		}
		return fps
	}
	num, numErr := strconv.Atoi(parts[0])
	den, denErr := strconv.Atoi(parts[1])
	if numErr != nil || denErr != nil || den <= 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// SetFFProbePath points the prober at a non-default ffprobe binary.
func SetFFProbePath(path string) {
	if path != "" {
		ffprobe.SetFFProbeBinPath(path)
	}
}
