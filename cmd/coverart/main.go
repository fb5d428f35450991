// Command coverart extracts embedded cover art from audio files, falls back
// to a sibling image when a file has none, and prints composers.
//
// Usage:
//
//	coverart [flags] file...
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/simonhull/coverart"
	"github.com/simonhull/coverart/internal/config"
)

func main() {
	set := flag.NewFlagSet("coverart", flag.ExitOnError)
	confPath := set.String("config", "", "path to config (optional, defaults to $"+config.EnvPath+")")
	confOutDir := set.String("out", "", "directory to write covers to (optional)")
	confComposer := set.Bool("composer", false, "print the composer of each file")
	confNoLocal := set.Bool("no-local", false, "do not look for sibling cover images")
	confParallel := set.Int("parallel", 0, "files processed at once (optional)")
	confShowVersion := set.Bool("version", false, "show coverart version")
	set.Usage = func() {
		fmt.Fprintf(set.Output(), "usage: coverart [flags] file...\n")
		set.PrintDefaults()
	}
	_ = set.Parse(os.Args[1:]) //nolint:errcheck // ExitOnError

	if *confShowVersion {
		v := coverart.GetVersionInfo()
		fmt.Printf("coverart %s (commit %s, built %s, %s)\n", v.Version, v.GitCommit, v.BuildTime, v.GoVersion)
		return
	}

	logger := logrus.StandardLogger()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	log := logrus.NewEntry(logger)

	cfg, err := config.New(*confPath)
	if err != nil {
		log.Fatal(err)
	}
	if *confOutDir != "" {
		cfg.Output.Dir = *confOutDir
	}
	if *confComposer {
		cfg.Composer = true
	}
	if *confNoLocal {
		cfg.Local.Enabled = false
	}
	if *confParallel > 0 {
		cfg.Parallel = *confParallel
	}

	logger.SetLevel(cfg.LogLevel)
	log.WithField("log level", cfg.LogLevel).Debug("Set log level")

	if set.NArg() == 0 {
		set.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ex := &extractor{cfg: cfg, log: log, out: os.Stdout}
	failed, err := ex.run(ctx, set.Args())
	if err != nil {
		log.WithError(err).Error("Can't process files")
		os.Exit(1)
	}
	if failed > 0 {
		log.WithField("failed", failed).Warn("Some files had no cover")
		os.Exit(1)
	}
}
