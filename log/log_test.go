package log

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// captureStderr redirects stderr for the duration of fn and returns what was
// written. Loggers bind their writer at creation time, so the redirect has to
// be in place before the first log call for a job id.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w
	defer func() { os.Stderr = old }()

	fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestAddContextAppearsOnLaterLines(t *testing.T) {
	out := captureStderr(t, func() {
		jobID := "log-test-add-context"
		AddContext(jobID, "bucket", "recordings", "prefix", "cam1/")
		Log(jobID, "first line")
	})

	require.Contains(t, out, "bucket=recordings")
	require.Contains(t, out, "prefix=cam1/")
	require.Contains(t, out, "msg=\"first line\"")
}

func TestAddContextOverwritesSeededLogger(t *testing.T) {
	out := captureStderr(t, func() {
		jobID := "log-test-seeded-logger"
		// the first Log call seeds the cached logger for this job id;
		// AddContext afterwards must still take effect
		Log(jobID, "before context")
		AddContext(jobID, "output_key", "merged/out.mp4")
		Log(jobID, "after context")
	})

	require.Contains(t, out, "output_key=merged/out.mp4")
}
