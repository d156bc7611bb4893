package video

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFrameRate(t *testing.T) {
	testCases := []struct {
		framerate string
		expected  float64
	}{
		{"30/1", 30},
		{"30000/1001", 29.97002997002997},
		{"25", 25},
		{"0/0", 0},
		{"1/0", 0},
		{"", 0},
		{"garbage", 0},
		{"x/y", 0},
	}
	for _, tc := range testCases {
		require.InDelta(t, tc.expected, parseFrameRate(tc.framerate), 1e-9, tc.framerate)
	}
}

func TestProfileHasAudio(t *testing.T) {
	require.False(t, Profile{}.HasAudio())
	require.True(t, Profile{AudioCodec: "aac"}.HasAudio())
}
