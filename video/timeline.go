package video

// BuildTimeline turns chunks ordered by capture instant into the merge plan:
// chunk segments interleaved with gap segments wherever consecutive chunks are
// further apart than gapThresholdSec. The timeline origin is the first chunk's
// capture instant. No segment extends past maxDurationSec: the overlapping
// segment is clamped and everything starting at or beyond the budget is
// dropped. Chunks sharing a capture instant keep their input order and get no
// gap between them.
func BuildTimeline(chunks []Chunk, gapThresholdSec, maxDurationSec float64) []Segment {
	if len(chunks) == 0 {
		return nil
	}

	origin := chunks[0].CaptureInstant
	segments := make([]Segment, 0, len(chunks))

	for i, chunk := range chunks {
		startSec := float64(chunk.CaptureInstant-origin) / 1000
		if startSec >= maxDurationSec {
			break
		}

		effectiveDuration := chunk.Duration
		if startSec+effectiveDuration > maxDurationSec {
			effectiveDuration = maxDurationSec - startSec
		}

		if i > 0 {
			prev := chunks[i-1]
			prevEndMs := prev.CaptureInstant + int64(prev.Duration*1000)
			gapSec := float64(chunk.CaptureInstant-prevEndMs) / 1000
			if gapSec > gapThresholdSec {
				gapStart := float64(prevEndMs-origin) / 1000
				gapDuration := gapSec
				if gapStart+gapDuration > maxDurationSec {
					gapDuration = maxDurationSec - gapStart
				}
				if gapDuration > 0 {
					segments = append(segments, Segment{
						Kind:     SegmentGap,
						StartSec: gapStart,
						Duration: gapDuration,
					})
				}
			}
		}

		segments = append(segments, Segment{
			Kind:       SegmentChunk,
			SourcePath: chunk.LocalPath,
			StartSec:   startSec,
			Duration:   effectiveDuration,
		})
	}

	return segments
}
