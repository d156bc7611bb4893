package api

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitServer(t *testing.T) {
	require := require.New(t)
	router := NewVideoMergerRouter(nil)

	handle, _, _ := router.Lookup("GET", "/health")
	require.NotNil(handle)

	handle, _, _ = router.Lookup("POST", "/api/merge")
	require.NotNil(handle)

	handle, _, _ = router.Lookup("GET", "/api/merge")
	require.NotNil(handle)

	handle, params, _ := router.Lookup("GET", "/api/merge/some-job-id")
	require.NotNil(handle)
	require.Equal("some-job-id", params.ByName("jobId"))
}
