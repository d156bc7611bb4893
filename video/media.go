package video

// Chunk is one recorded fragment discovered in the object store. CaptureInstant
// is recovered from the key's base name; Duration and LocalPath are filled in
// after download and probing.
type Chunk struct {
	Key            string
	CaptureInstant int64 // milliseconds since the Unix epoch
	Duration       float64
	LocalPath      string
}

// Profile is the reference codec/resolution/frame-rate set every materialized
// segment is normalized to. It is probed once per job, from the first chunk in
// capture order.
type Profile struct {
	Width           int
	Height          int
	FrameRate       float64
	VideoCodec      string
	AudioCodec      string // empty when the source has no audio track
	AudioSampleRate int
	AudioChannels   int
}

func (p Profile) HasAudio() bool {
	return p.AudioCodec != ""
}

type SegmentKind string

const (
	SegmentChunk SegmentKind = "chunk"
	SegmentGap   SegmentKind = "gap"
)

// Segment is one element of the merge plan: either a real chunk or synthesized
// black/silent filler covering a gap. SourcePath points at the materialized
// file; for gaps it is filled in by the materializer.
type Segment struct {
	Kind       SegmentKind
	SourcePath string
	StartSec   float64
	Duration   float64
}
