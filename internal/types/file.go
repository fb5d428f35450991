// Package types provides the data structures shared by the tag parsers and the
// public API: detected formats, per-scheme tag containers, the file handle
// variants and the error types.
package types

// FileInfo carries the facts every file handle variant shares.
type FileInfo struct {
	Path     string
	Warnings []Warning
	Format   Format
	Size     int64
}

// Info returns the shared file facts.
func (fi *FileInfo) Info() *FileInfo {
	return fi
}

// File is a parsed audio file handle.
//
// The set of implementations is closed: one variant per concrete container,
// each exposing only the tag containers that container can carry. A nil
// container pointer means the file has no tag of that kind.
type File interface {
	Info() *FileInfo
	file()
}

// MPEGFile is an MPEG audio stream with an optional leading ID3v2 tag and an
// optional trailing APE tag.
type MPEGFile struct {
	ID3v2 *ID3v2Tag
	APE   *APETag
	FileInfo
}

// MP4File is an MP4/M4A/M4B file with an iTunes-style item list.
type MP4File struct {
	Tag *MP4Tag
	FileInfo
}

// FLACFile is a native FLAC stream.
//
// Pictures holds the PICTURE metadata blocks in stream order. Xiph is the
// VORBIS_COMMENT block. ID3v2 is a non-standard tag some taggers prepend.
type FLACFile struct {
	Xiph     *XiphComment
	ID3v2    *ID3v2Tag
	Pictures []FLACPicture
	FileInfo
}

// ASFFile is an ASF/WMA file.
type ASFFile struct {
	Tag *ASFTag
	FileInfo
}

// APEFile is a Monkey's Audio file.
type APEFile struct {
	APE *APETag
	FileInfo
}

// MusepackFile is a Musepack SV7 or SV8 file.
type MusepackFile struct {
	APE *APETag
	FileInfo
}

// WavPackFile is a WavPack file.
type WavPackFile struct {
	APE *APETag
	FileInfo
}

// VorbisFile is an Ogg Vorbis file.
type VorbisFile struct {
	Xiph *XiphComment
	FileInfo
}

// UnknownFile is a recognised container with no supported tag scheme.
type UnknownFile struct {
	FileInfo
}

func (*MPEGFile) file()     {}
func (*MP4File) file()      {}
func (*FLACFile) file()     {}
func (*ASFFile) file()      {}
func (*APEFile) file()      {}
func (*MusepackFile) file() {}
func (*WavPackFile) file()  {}
func (*VorbisFile) file()   {}
func (*UnknownFile) file()  {}
