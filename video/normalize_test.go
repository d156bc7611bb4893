package video

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncoderMapping(t *testing.T) {
	require.Equal(t, "libx264", videoEncoderFor("h264"))
	require.Equal(t, "libvpx-vp9", videoEncoderFor("vp9"))
	require.Equal(t, "libx264", videoEncoderFor("something-exotic"))

	require.Equal(t, "aac", audioEncoderFor("aac"))
	require.Equal(t, "libopus", audioEncoderFor("opus"))
	require.Equal(t, "aac", audioEncoderFor("something-exotic"))
}

func TestEncodingArgsWithAudio(t *testing.T) {
	profile := Profile{
		Width: 1280, Height: 720, FrameRate: 29.97,
		VideoCodec: "h264",
		AudioCodec: "aac", AudioSampleRate: 48000, AudioChannels: 2,
	}
	kwargs := encodingArgs(profile)

	require.Equal(t, "libx264", kwargs["c:v"])
	require.Equal(t, 30, kwargs["r"])
	require.Equal(t, "yuv420p", kwargs["pix_fmt"])
	require.Equal(t, "veryfast", kwargs["preset"])
	require.Equal(t, "aac", kwargs["c:a"])
	require.Equal(t, 48000, kwargs["ar"])
	require.Equal(t, 2, kwargs["ac"])
	_, muted := kwargs["an"]
	require.False(t, muted)
}

func TestEncodingArgsWithoutAudio(t *testing.T) {
	profile := Profile{Width: 1920, Height: 1080, FrameRate: 30, VideoCodec: "vp9"}
	kwargs := encodingArgs(profile)

	require.Equal(t, "libvpx-vp9", kwargs["c:v"])
	_, hasPreset := kwargs["preset"]
	require.False(t, hasPreset)
	_, hasAudioCodec := kwargs["c:a"]
	require.False(t, hasAudioCodec)
	require.Contains(t, kwargs, "an")
}
