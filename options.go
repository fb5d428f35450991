package coverart

// Option configures behavior when opening audio files.
//
// Example:
//
//	f, err := coverart.Open("song.flac",
//	    coverart.WithStrictParsing(),
//	)
type Option func(*openOptions)

// openOptions holds configuration for opening files.
type openOptions struct {
	strictParsing  bool // Fail on any warning
	ignoreWarnings bool // Suppress all warnings
}

// defaultOptions returns the default configuration.
func defaultOptions() *openOptions {
	return &openOptions{}
}

// WithStrictParsing treats any warning as a fatal error.
//
// By default Open keeps going when a tag is damaged, dropping what it cannot
// read and returning warnings alongside the parsed tags. With strict parsing
// the first warning fails Open instead.
func WithStrictParsing() Option {
	return func(o *openOptions) {
		o.strictParsing = true
	}
}

// WithIgnoreWarnings discards warnings; Info().Warnings is always empty.
func WithIgnoreWarnings() Option {
	return func(o *openOptions) {
		o.ignoreWarnings = true
	}
}
