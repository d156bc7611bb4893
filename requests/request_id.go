package requests

import (
	"net/http"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// GetRequestID returns the caller-supplied request id, or attaches a fresh
// one to the request so every log line for it shares the same id.
func GetRequestID(req *http.Request) string {
	requestID := req.Header.Get(requestIDHeader)
	if requestID != "" {
		return requestID
	}
	requestID = uuid.New().String()[:8]
	req.Header.Set(requestIDHeader, requestID)
	return requestID
}
