package video

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteConcatManifest(t *testing.T) {
	manifestPath := filepath.Join(t.TempDir(), "concat_list.txt")
	files := []string{
		"/tmp/job/normalized/chunk_0000.mp4",
		"/tmp/job/gaps/gap_0000.mp4",
		"/tmp/job/normalized/chunk_0001.mp4",
	}
	require.NoError(t, WriteConcatManifest(manifestPath, files))

	content, err := os.ReadFile(manifestPath)
	require.NoError(t, err)
	require.Equal(t,
		"file '/tmp/job/normalized/chunk_0000.mp4'\n"+
			"file '/tmp/job/gaps/gap_0000.mp4'\n"+
			"file '/tmp/job/normalized/chunk_0001.mp4'\n",
		string(content))
}

func TestWriteConcatManifestEscapesQuotes(t *testing.T) {
	manifestPath := filepath.Join(t.TempDir(), "concat_list.txt")
	require.NoError(t, WriteConcatManifest(manifestPath, []string{"/tmp/it's here.mp4"}))

	content, err := os.ReadFile(manifestPath)
	require.NoError(t, err)
	require.Equal(t, "file '/tmp/it'\\''s here.mp4'\n", string(content))
}
