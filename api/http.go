package api

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/steadymedia/video-merger/config"
	"github.com/steadymedia/video-merger/handlers"
	"github.com/steadymedia/video-merger/log"
	"github.com/steadymedia/video-merger/middleware"
	"github.com/steadymedia/video-merger/pipeline"
)

func ListenAndServe(ctx context.Context, addr string, coordinator *pipeline.Coordinator) error {
	router := NewVideoMergerRouter(coordinator)
	server := http.Server{Addr: addr, Handler: router}
	ctx, cancel := context.WithCancel(ctx)

	log.LogNoJobID(
		"Starting video-merger API!",
		"version", config.Version,
		"host", addr,
	)

	var err error
	go func() {
		err = server.ListenAndServe()
		cancel()
	}()

	<-ctx.Done()
	if err != nil {
		return err
	}

	ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}

func NewVideoMergerRouter(coordinator *pipeline.Coordinator) *httprouter.Router {
	router := httprouter.New()
	withLogging := middleware.LogRequest(log.NewLogger())
	withCORS := middleware.AllowCORS()

	mergeHandlers := &handlers.MergeHandlersCollection{Coordinator: coordinator}

	// Simple endpoint for healthchecks
	router.GET("/health", withLogging(mergeHandlers.Healthcheck()))

	// Public merge API
	router.POST("/api/merge", withLogging(withCORS(mergeHandlers.SubmitMerge())))
	router.GET("/api/merge", withLogging(withCORS(mergeHandlers.ListMerges())))
	router.GET("/api/merge/:jobId", withLogging(withCORS(mergeHandlers.GetMerge())))

	return router
}
