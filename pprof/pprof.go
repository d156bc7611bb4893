// Package pprof exposes the Go runtime profiler on its own listener, kept
// off the public API port.
package pprof

import (
	"fmt"
	"net/http"
	_ "net/http/pprof"
)

func ListenAndServe(port int) error {
	return fmt.Errorf("pprof listener stopped: %w", http.ListenAndServe(fmt.Sprintf("127.0.0.1:%d", port), nil))
}
