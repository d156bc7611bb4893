package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/steadymedia/video-merger/errors"
	"github.com/steadymedia/video-merger/log"
	"github.com/steadymedia/video-merger/pipeline"
)

type MergeHandlersCollection struct {
	Coordinator *pipeline.Coordinator
}

// SubmitMerge accepts a merge submission and returns 202 immediately; the
// pipeline runs in background and is observed via the status endpoints.
func (h *MergeHandlersCollection) SubmitMerge() httprouter.Handle {
	return func(w http.ResponseWriter, req *http.Request, _ httprouter.Params) {
		var mergeRequest pipeline.MergeRequest
		payload, err := io.ReadAll(req.Body)
		if err != nil {
			errors.WriteHTTPInternalServerError(w, "Cannot read body", err)
			return
		}
		if err := json.Unmarshal(payload, &mergeRequest); err != nil {
			errors.WriteHTTPBadRequest(w, "Invalid request payload", err)
			return
		}
		if mergeRequest.Bucket == "" || mergeRequest.ChunkPrefix == "" || mergeRequest.OutputKey == "" {
			errors.WriteHTTPBadRequest(w, "Missing required fields: bucket, chunkPrefix, outputKey", nil)
			return
		}

		job := h.Coordinator.StartMergeJob(mergeRequest)

		writeJSON(w, http.StatusAccepted, map[string]string{
			"jobId":     job.ID,
			"message":   "Merge job started",
			"statusUrl": "/api/merge/" + job.ID,
		})
	}
}

// ListMerges returns every known job, newest first.
func (h *MergeHandlersCollection) ListMerges() httprouter.Handle {
	return func(w http.ResponseWriter, req *http.Request, _ httprouter.Params) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"jobs": h.Coordinator.ListJobs(),
		})
	}
}

// GetMerge returns a single job by id.
func (h *MergeHandlersCollection) GetMerge() httprouter.Handle {
	return func(w http.ResponseWriter, req *http.Request, params httprouter.Params) {
		job := h.Coordinator.GetJob(params.ByName("jobId"))
		if job == nil {
			errors.WriteHTTPNotFound(w, "Job not found", nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"job": job.Snapshot(),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.LogNoJobID("failed to write HTTP response", "err", err)
	}
}
