package coverart

import (
	"io"

	"github.com/simonhull/coverart/internal/types"
)

// File is a parsed audio file handle. See types.File.
type File = types.File

// FileInfo holds the facts every File variant shares.
type FileInfo = types.FileInfo

// File variants, one per concrete container.
type (
	MPEGFile     = types.MPEGFile
	MP4File      = types.MP4File
	FLACFile     = types.FLACFile
	ASFFile      = types.ASFFile
	APEFile      = types.APEFile
	MusepackFile = types.MusepackFile
	WavPackFile  = types.WavPackFile
	VorbisFile   = types.VorbisFile
	UnknownFile  = types.UnknownFile
)

// Tag containers.
type (
	APETag          = types.APETag
	APEItem         = types.APEItem
	ID3v2Tag        = types.ID3v2Tag
	ID3v2Frame      = types.ID3v2Frame
	AttachedPicture = types.AttachedPicture
	ASFTag          = types.ASFTag
	ASFAttribute    = types.ASFAttribute
	ASFPicture      = types.ASFPicture
	FLACPicture     = types.FLACPicture
	MP4Tag          = types.MP4Tag
	MP4Item         = types.MP4Item
	MP4CoverArt     = types.MP4CoverArt
	XiphComment     = types.XiphComment
)

// Format is an alias to types.Format.
type Format = types.Format

// Re-export all format constants.
const (
	FormatUnknown  = types.FormatUnknown
	FormatMPEG     = types.FormatMPEG
	FormatFLAC     = types.FormatFLAC
	FormatM4A      = types.FormatM4A
	FormatM4B      = types.FormatM4B
	FormatOgg      = types.FormatOgg
	FormatOpus     = types.FormatOpus
	FormatASF      = types.FormatASF
	FormatAPE      = types.FormatAPE
	FormatMusepack = types.FormatMusepack
	FormatWavPack  = types.FormatWavPack
	FormatWAV      = types.FormatWAV
	FormatAIFF     = types.FormatAIFF
)

// DetectFormat is a wrapper around types.DetectFormat.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	return types.DetectFormat(r, size, path)
}
