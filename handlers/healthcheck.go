package handlers

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type HealthcheckResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Healthcheck returns HTTP 200 while the service is running.
// Used by the load balancer to determine whether to route to a node.
func (h *MergeHandlersCollection) Healthcheck() httprouter.Handle {
	return func(w http.ResponseWriter, req *http.Request, _ httprouter.Params) {
		writeJSON(w, http.StatusOK, HealthcheckResponse{
			Status:  "ok",
			Service: "video-merger",
		})
	}
}
