package coverart

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/simonhull/coverart/internal/registry"
	"github.com/simonhull/coverart/internal/types"

	// Parsers register themselves with the registry.
	_ "github.com/simonhull/coverart/internal/apefile"
	_ "github.com/simonhull/coverart/internal/asf"
	_ "github.com/simonhull/coverart/internal/flac"
	_ "github.com/simonhull/coverart/internal/m4a"
	_ "github.com/simonhull/coverart/internal/mpeg"
	_ "github.com/simonhull/coverart/internal/ogg"
)

// Open opens an audio file and reads its tags.
//
// The container is detected from magic bytes, not from the file name. Tags
// are read into memory and the file is closed before Open returns.
//
// A recognised container without a supported tag scheme (Opus, WAV, AIFF)
// yields an *UnknownFile. Input no signature matches yields an
// *UnsupportedFormatError.
//
// If a tag is damaged Open still succeeds; the issue is recorded in
// Info().Warnings. Options change that behaviour:
//
//	f, err := coverart.Open("song.mp3", coverart.WithStrictParsing())
func Open(path string, opts ...Option) (File, error) {
	return OpenContext(context.Background(), path, opts...)
}

// OpenContext is Open with a context checked before the file is opened and
// again before its tags are parsed.
func OpenContext(ctx context.Context, path string, opts ...Option) (File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	return openReader(ctx, f, stat.Size(), path, options)
}

// OpenReader reads the tags of an audio stream held by r. path is used in
// errors and recorded in the returned FileInfo.
func OpenReader(r io.ReaderAt, size int64, path string, opts ...Option) (File, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return openReader(context.Background(), r, size, path, options)
}

func openReader(ctx context.Context, r io.ReaderAt, size int64, path string, options *openOptions) (File, error) {
	format, err := DetectFormat(r, size, path)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var file File
	if parser := registry.Get(format); parser != nil {
		file, err = parser.Parse(r, size, path)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", format, err)
		}
	} else {
		file = &types.UnknownFile{}
	}

	info := file.Info()
	info.Path = path
	info.Format = format
	info.Size = size

	if options.strictParsing && len(info.Warnings) > 0 {
		return nil, fmt.Errorf("strict parsing failed: %s", info.Warnings[0])
	}
	if options.ignoreWarnings {
		info.Warnings = nil
	}

	return file, nil
}
