package video

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func chunk(instantMs int64, durationSec float64) Chunk {
	return Chunk{CaptureInstant: instantMs, Duration: durationSec}
}

func TestTimelineNoGaps(t *testing.T) {
	chunks := []Chunk{
		chunk(1_000_000, 10),
		chunk(1_010_000, 10),
		chunk(1_020_000, 10),
	}
	segments := BuildTimeline(chunks, 0.5, 3600)

	require.Len(t, segments, 3)
	for i, seg := range segments {
		require.Equal(t, SegmentChunk, seg.Kind)
		require.InDelta(t, float64(i*10), seg.StartSec, 1e-9)
		require.InDelta(t, 10, seg.Duration, 1e-9)
	}
}

func TestTimelineOneGap(t *testing.T) {
	chunks := []Chunk{
		chunk(1_000_000, 10),
		chunk(1_020_000, 10),
	}
	segments := BuildTimeline(chunks, 0.5, 3600)

	require.Len(t, segments, 3)
	require.Equal(t, SegmentChunk, segments[0].Kind)
	require.InDelta(t, 0, segments[0].StartSec, 1e-9)

	require.Equal(t, SegmentGap, segments[1].Kind)
	require.InDelta(t, 10, segments[1].StartSec, 1e-9)
	require.InDelta(t, 10, segments[1].Duration, 1e-3)

	require.Equal(t, SegmentChunk, segments[2].Kind)
	require.InDelta(t, 20, segments[2].StartSec, 1e-9)
}

func TestTimelineSubThresholdSkewIgnored(t *testing.T) {
	chunks := []Chunk{
		chunk(1_000_000, 10),
		chunk(1_010_200, 10), // 0.2s of recorder jitter
	}
	segments := BuildTimeline(chunks, 0.5, 3600)

	require.Len(t, segments, 2)
	require.Equal(t, SegmentChunk, segments[0].Kind)
	require.Equal(t, SegmentChunk, segments[1].Kind)
}

func TestTimelineBudgetClampsLastChunk(t *testing.T) {
	chunks := []Chunk{
		chunk(0, 3500),
		chunk(3_500_000, 300),
	}
	segments := BuildTimeline(chunks, 0.5, 3600)

	require.Len(t, segments, 2)
	require.InDelta(t, 3500, segments[1].StartSec, 1e-9)
	require.InDelta(t, 100, segments[1].Duration, 1e-9)
}

func TestTimelineChunkBeyondBudgetDropped(t *testing.T) {
	chunks := []Chunk{
		chunk(0, 10),
		chunk(3_700_000, 10),
	}
	segments := BuildTimeline(chunks, 0.5, 3600)

	// iteration stops before the out-of-budget chunk, so no gap is emitted either
	require.Len(t, segments, 1)
	require.Equal(t, SegmentChunk, segments[0].Kind)
}

func TestTimelineGapTruncatedByBudget(t *testing.T) {
	chunks := []Chunk{
		chunk(0, 3500),
		chunk(3_590_000, 10),
	}
	segments := BuildTimeline(chunks, 0.5, 3600)

	require.Len(t, segments, 3)
	require.Equal(t, SegmentGap, segments[1].Kind)
	require.InDelta(t, 3500, segments[1].StartSec, 1e-9)
	require.InDelta(t, 90, segments[1].Duration, 1e-3)
	require.InDelta(t, 3590, segments[2].StartSec, 1e-9)
	require.InDelta(t, 10, segments[2].Duration, 1e-9)
}

func TestTimelineIdenticalInstantsKeepOrderNoGap(t *testing.T) {
	first := chunk(1_000_000, 10)
	first.LocalPath = "a.mp4"
	second := chunk(1_000_000, 10)
	second.LocalPath = "b.mp4"

	segments := BuildTimeline([]Chunk{first, second}, 0.5, 3600)

	require.Len(t, segments, 2)
	require.Equal(t, "a.mp4", segments[0].SourcePath)
	require.Equal(t, "b.mp4", segments[1].SourcePath)
	require.InDelta(t, 0, segments[1].StartSec, 1e-9)
}

func TestTimelineEmptyInput(t *testing.T) {
	require.Empty(t, BuildTimeline(nil, 0.5, 3600))
}

func TestTimelineInvariants(t *testing.T) {
	chunks := []Chunk{
		chunk(10_000, 5),
		chunk(15_000, 0), // zero-length chunks are still emitted
		chunk(40_000, 20),
		chunk(65_000, 100),
	}
	budget := 120.0
	segments := BuildTimeline(chunks, 0.5, budget)

	var prevEnd float64
	for _, seg := range segments {
		// non-decreasing start, no overlap beyond rounding
		require.GreaterOrEqual(t, seg.StartSec+1e-3, prevEnd)
		// nothing extends past the budget
		require.LessOrEqual(t, seg.StartSec+seg.Duration, budget+1e-9)
		prevEnd = seg.StartSec + seg.Duration
	}
}
