package requests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetRequestIDKeepsCallerValue(t *testing.T) {
	req, _ := http.NewRequest("GET", "/api/merge", nil)
	req.Header.Set("X-Request-ID", "caller-id")
	require.Equal(t, "caller-id", GetRequestID(req))
}

func TestGetRequestIDIsStableWithinRequest(t *testing.T) {
	req, _ := http.NewRequest("GET", "/api/merge", nil)
	id := GetRequestID(req)
	require.Len(t, id, 8)
	require.Equal(t, id, GetRequestID(req))
}
