package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/golang/glog"
	"github.com/peterbourgon/ff/v3"
	"github.com/steadymedia/video-merger/api"
	"github.com/steadymedia/video-merger/clients"
	"github.com/steadymedia/video-merger/config"
	"github.com/steadymedia/video-merger/log"
	"github.com/steadymedia/video-merger/metrics"
	"github.com/steadymedia/video-merger/pipeline"
	"github.com/steadymedia/video-merger/pprof"
	"github.com/steadymedia/video-merger/video"
	"golang.org/x/sync/errgroup"
)

func main() {
	err := flag.Set("logtostderr", "true")
	if err != nil {
		glog.Fatal(err)
	}
	fs := flag.NewFlagSet("video-merger", flag.ExitOnError)
	cli := config.Cli{}

	version := fs.Bool("version", false, "print application version")

	fs.IntVar(&cli.Port, "port", 8080, "Port to bind the HTTP API to")
	fs.StringVar(&cli.AwsRegion, "aws-region", "us-east-1", "AWS region of the chunk and output buckets")
	fs.StringVar(&cli.AwsAccessKeyID, "aws-access-key-id", "", "AWS access key id. When empty the default AWS credential chain is used")
	fs.StringVar(&cli.AwsSecretAccessKey, "aws-secret-access-key", "", "AWS secret access key, paired with aws-access-key-id")
	fs.StringVar(&cli.FFmpegPath, "ffmpeg-path", "", "Path to the ffmpeg binary. When empty the one on PATH is used")
	fs.StringVar(&cli.FFprobePath, "ffprobe-path", "", "Path to the ffprobe binary. When empty the one on PATH is used")
	fs.StringVar(&cli.TempRoot, "temp-dir", config.DefaultTempRoot, "Directory holding per-job working files")
	fs.IntVar(&cli.MaxDurationMin, "max-duration-min", config.DefaultMaxDurationMin, "Maximum merged output duration, in minutes")
	fs.Float64Var(&cli.GapThresholdSec, "gap-threshold-sec", config.DefaultGapThresholdSec, "Smallest gap between chunks, in seconds, that gets filler video inserted")
	pprofPort := fs.Int("pprof-port", 6061, "Pprof listen port")
	metricsPort := fs.Int("metrics-port", 2112, "Prometheus metrics listen port")
	_ = fs.String("config", "", "config file (optional)")

	err = ff.Parse(fs, os.Args[1:],
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
		ff.WithEnvVarPrefix("VIDEO_MERGER"),
	)
	if err != nil {
		glog.Fatalf("error parsing cli: %s", err)
	}
	if len(fs.Args()) > 0 {
		glog.Fatalf("unexpected extra arguments on command line: %v", fs.Args())
	}
	err = flag.CommandLine.Parse(nil)
	if err != nil {
		glog.Fatal(err)
	}

	if *version {
		fmt.Printf("video-merger version: %s\n", config.Version)
		return
	}

	if cli.FFmpegPath != "" {
		video.SetFFmpegPath(cli.FFmpegPath)
	}
	if cli.FFprobePath != "" {
		video.SetFFProbePath(cli.FFprobePath)
	}

	if err := os.MkdirAll(cli.TempRoot, 0755); err != nil {
		glog.Fatalf("error creating temp directory %s: %v", cli.TempRoot, err)
	}
	cleanupOrphanedJobDirs(cli.TempRoot)

	store := &clients.ObjectStore{
		Region:          cli.AwsRegion,
		AccessKeyID:     cli.AwsAccessKeyID,
		AccessKeySecret: cli.AwsSecretAccessKey,
	}
	coordinator := pipeline.NewCoordinator(store, video.Probe{}, cli)

	go func() {
		log.LogNoJobID("pprof listener exited", "err", pprof.ListenAndServe(*pprofPort))
	}()
	go func() {
		log.LogNoJobID("metrics listener exited", "err", metrics.ListenAndServe(*metricsPort))
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return api.ListenAndServe(ctx, fmt.Sprintf("0.0.0.0:%d", cli.Port), coordinator)
	})

	err = group.Wait()
	glog.Infof("Shutdown complete. Reason for shutdown: %s", err)
}

// cleanupOrphanedJobDirs removes job directories a previous process left
// behind, e.g. after a crash mid-merge. Anything recent enough to belong to a
// live job is kept.
func cleanupOrphanedJobDirs(tempRoot string) {
	entries, err := os.ReadDir(tempRoot)
	if err != nil {
		log.LogNoJobID("unable to scan temp directory for orphaned jobs", "dir", tempRoot, "err", err)
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) < config.OrphanedJobDirMaxAge {
			continue
		}
		dir := filepath.Join(tempRoot, entry.Name())
		if err := os.RemoveAll(dir); err != nil {
			log.LogNoJobID("failed to remove orphaned job directory", "dir", dir, "err", err)
			continue
		}
		log.LogNoJobID("removed orphaned job directory", "dir", dir)
	}
}
