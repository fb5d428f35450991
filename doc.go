// Package coverart extracts embedded cover art and the composer field from
// audio files, and finds cover images stored next to them.
//
// # Quick Start
//
// Saving the embedded cover of a file:
//
//	f, err := coverart.Open("song.flac")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if data, ok := coverart.EmbeddedCover(f); ok {
//		coverart.WriteCover(data, "cover.jpg")
//	}
//
// Reading the composer:
//
//	if name, ok := coverart.Composer(f); ok {
//		fmt.Println(name)
//	}
//
// # Supported Tag Schemes
//
//   - ID3v2.2, 2.3 and 2.4 (MPEG, and FLAC files carrying a leading tag)
//   - APEv1 and APEv2 (MPEG, Monkey's Audio, Musepack, WavPack)
//   - iTunes item lists (M4A, M4B)
//   - ASF attributes (WMA)
//   - FLAC PICTURE blocks and Xiph comments (FLAC, Ogg Vorbis)
//
// # File Handles
//
// Open returns a File, one variant per concrete container. Each variant
// exposes only the tag containers its container can carry; a nil container
// means the file has no tag of that kind. EmbeddedCover, LookupCover and
// Composer select the right containers with a type switch over the variants.
//
// At most one cover and one composer are reported per file. The first match
// in the container's stored order wins; picture types play no part.
//
// # Graceful Degradation
//
// A damaged tag does not make Open fail. The tag is dropped, or kept up to the
// damage, and a Warning is recorded in the file's Info().Warnings.
//
// # Local Art
//
// FindLocalCover probes a folder for "<base>.jpg", "<base>.png" and the other
// supported image names, returning the first readable one.
//
// Every function is safe to call from several goroutines on separate
// handles. Batch processing belongs to the caller; see cmd/coverart.
package coverart
