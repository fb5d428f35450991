package types

// FLACPicture is a FLAC PICTURE metadata block.
type FLACPicture struct {
	MIMEType    string
	Description string
	Data        []byte
	Type        uint32
	Width       uint32
	Height      uint32
	Depth       uint32
	Colors      uint32
}
