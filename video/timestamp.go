package video

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Numeric base names above this value are interpreted as milliseconds since the
// Unix epoch, below as seconds. Millisecond instants after 2001-09-09 are above
// the cutoff, so the heuristic is unambiguous for realistic recordings.
const millisecondCutoff = 1_000_000_000_000

// ParseCaptureInstant recovers the wall-clock capture time of a chunk from its
// object-store key, as milliseconds since the Unix epoch. The base name (last
// path component, extension removed) must be either a numeric epoch timestamp
// or an RFC 3339 date-time with explicit timezone.
func ParseCaptureInstant(key string) (int64, error) {
	base := filepath.Base(key)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" {
		return 0, fmt.Errorf("cannot parse capture time from key %q: empty base name", key)
	}

	if instant, err := strconv.ParseInt(base, 10, 64); err == nil {
		if instant > millisecondCutoff {
			return instant, nil
		}
		return instant * 1000, nil
	}

	if value, err := strconv.ParseFloat(base, 64); err == nil {
		if value > millisecondCutoff {
			return int64(value), nil
		}
		return int64(value * 1000), nil
	}

	if t, err := time.Parse(time.RFC3339Nano, base); err == nil {
		return t.UnixMilli(), nil
	}

	return 0, fmt.Errorf("cannot parse capture time from key %q", key)
}
