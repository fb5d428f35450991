package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/simonhull/coverart"
	"github.com/simonhull/coverart/internal/config"
)

// errSharedOutputName is returned when a fixed output name would make
// several inputs write the same cover file.
var errSharedOutputName = errors.New("output.name needs exactly one input file")

// result is the outcome for one input file.
type result struct {
	path     string
	cover    string // written or found cover path
	composer string
	local    bool
	ok       bool
}

// extractor processes a batch of files with bounded parallelism. Every
// coverart call it makes works on a handle owned by a single goroutine.
type extractor struct {
	cfg *config.Config
	log *logrus.Entry
	out io.Writer
}

// run processes paths and writes one line per file to out, in input order.
// It returns the number of files for which no cover was produced. The error
// is non-nil when ctx is cancelled or the batch conflicts with Output.Name.
func (e *extractor) run(ctx context.Context, paths []string) (int, error) {
	if e.cfg.Output.Name != "" && len(paths) > 1 {
		return 0, fmt.Errorf("%w: got %d", errSharedOutputName, len(paths))
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(e.cfg.Parallel, 1))

	results := make([]result, len(paths))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = e.process(ctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	failed := 0
	for _, r := range results {
		if !r.ok {
			failed++
		}
		e.report(r)
	}
	return failed, nil
}

func (e *extractor) process(ctx context.Context, path string) result {
	r := result{path: path}
	log := e.log.WithField("file", path)

	f, err := coverart.OpenContext(ctx, path)
	if err != nil {
		log.WithError(err).Warn("Can't read tags")
		return e.probeLocal(r, log)
	}
	for _, w := range f.Info().Warnings {
		log.WithField("stage", w.Stage).Debug(w.Message)
	}

	if e.cfg.Composer {
		r.composer, _ = coverart.Composer(f)
	}

	data, ok := coverart.EmbeddedCover(f)
	if !ok {
		log.WithField("format", f.Info().Format).Debug("No embedded cover")
		return e.probeLocal(r, log)
	}

	target := e.target(path, mimetype.Detect(data).Extension())
	if !coverart.WriteCover(data, target) {
		log.WithField("target", target).Error("Can't write cover")
		return r
	}

	log.WithFields(logrus.Fields{
		"target": target,
		"size":   humanize.Bytes(uint64(len(data))),
	}).Info("Extracted embedded cover")

	r.cover = target
	r.ok = true
	return r
}

func (e *extractor) probeLocal(r result, log *logrus.Entry) result {
	if !e.cfg.Local.Enabled {
		return r
	}

	name := e.cfg.Local.Name
	if name == "" {
		name = stem(r.path)
	}
	cover, ok := coverart.FindLocalCover(name, filepath.Dir(r.path)+string(filepath.Separator))
	if !ok {
		return r
	}

	log.WithField("cover", cover).Info("Found local cover")
	r.cover = cover
	r.local = true
	r.ok = true
	return r
}

// target builds the output path for a cover of audioPath with extension ext.
func (e *extractor) target(audioPath, ext string) string {
	dir := e.cfg.Output.Dir
	if dir == "" {
		dir = filepath.Dir(audioPath)
	}
	name := e.cfg.Output.Name
	if name == "" {
		name = stem(audioPath)
	}
	if ext == "" {
		ext = ".bin"
	}
	return filepath.Join(dir, name+ext)
}

func (e *extractor) report(r result) {
	var fields []string
	switch {
	case !r.ok:
		fields = append(fields, r.path, "-")
	case r.local:
		fields = append(fields, r.path, "local:"+r.cover)
	default:
		fields = append(fields, r.path, r.cover)
	}
	if e.cfg.Composer {
		fields = append(fields, r.composer)
	}
	fmt.Fprintln(e.out, strings.Join(fields, "\t"))
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
