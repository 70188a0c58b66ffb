package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/Veraticus/ecosort/internal/common"
	"github.com/gabriel-vasile/mimetype"
)

// Limits enforced by the classification service, checked locally so that
// oversized inputs never leave the machine.
const (
	MaxImageBytes = 10 << 20
	MaxTextLength = 1000
)

// MediaType is an accepted image subtype.
type MediaType string

// Accepted image media types.
const (
	MediaJPEG MediaType = "jpeg"
	MediaPNG  MediaType = "png"
	MediaGIF  MediaType = "gif"
	MediaBMP  MediaType = "bmp"
)

var acceptedMediaTypes = map[string]MediaType{
	"jpeg":           MediaJPEG,
	"jpg":            MediaJPEG,
	"image/jpeg":     MediaJPEG,
	"image/jpg":      MediaJPEG,
	"png":            MediaPNG,
	"image/png":      MediaPNG,
	"gif":            MediaGIF,
	"image/gif":      MediaGIF,
	"bmp":            MediaBMP,
	"image/bmp":      MediaBMP,
	"image/x-ms-bmp": MediaBMP,
}

// ParseMediaType resolves a declared type ("png", ".jpg", "image/gif") to an
// accepted media type.
func ParseMediaType(declared string) (MediaType, bool) {
	key := strings.ToLower(strings.TrimSpace(declared))
	key = strings.TrimPrefix(key, ".")
	if i := strings.Index(key, ";"); i >= 0 {
		key = strings.TrimSpace(key[:i])
	}
	mt, ok := acceptedMediaTypes[key]
	return mt, ok
}

// MIME returns the full MIME type.
func (m MediaType) MIME() string {
	return "image/" + string(m)
}

// InputKind tags the active variant of an Input.
type InputKind int

const (
	// InputText is a free-text description of an item.
	InputText InputKind = iota
	// InputImage is a photo of an item.
	InputImage
)

func (k InputKind) String() string {
	if k == InputImage {
		return "image"
	}
	return "text"
}

// Image is the image variant of an Input.
type Image struct {
	Filename  string
	MediaType MediaType
	Data      []byte
}

// Input is the user-provided item awaiting classification.
type Input struct {
	Image *Image
	Text  string
	Kind  InputKind
}

// NewTextInput builds a text input from a description. Surrounding whitespace
// is trimmed.
func NewTextInput(text string) (Input, error) {
	in := Input{Kind: InputText, Text: strings.TrimSpace(text)}
	if err := in.Validate(); err != nil {
		return Input{}, err
	}
	return in, nil
}

// NewImageInput builds an image input. The media type is detected from the
// payload; the file extension is only used when detection is inconclusive.
func NewImageInput(filename string, data []byte) (Input, error) {
	if len(data) == 0 {
		return Input{}, fmt.Errorf("%w: image %q is empty", common.ErrInvalidInput, filename)
	}

	detected := mimetype.Detect(data)
	mt, ok := ParseMediaType(detected.String())
	if !ok && detected.Is("application/octet-stream") {
		mt, ok = ParseMediaType(filepath.Ext(filename))
	}
	if !ok {
		return Input{}, fmt.Errorf("%w: unsupported file type %s (accepted: jpeg, png, gif, bmp)",
			common.ErrInvalidInput, detected.String())
	}

	in := Input{
		Kind: InputImage,
		Image: &Image{
			Filename:  filepath.Base(filename),
			MediaType: mt,
			Data:      data,
		},
	}
	if err := in.Validate(); err != nil {
		return Input{}, err
	}
	return in, nil
}

// Validate checks the input against the accepted set. It never contacts the service.
func (in Input) Validate() error {
	switch in.Kind {
	case InputText:
		text := strings.TrimSpace(in.Text)
		if text == "" {
			return fmt.Errorf("%w: text cannot be empty", common.ErrInvalidInput)
		}
		if utf8.RuneCountInString(text) > MaxTextLength {
			return fmt.Errorf("%w: text too long (maximum %d characters)", common.ErrInvalidInput, MaxTextLength)
		}
		return nil
	case InputImage:
		if in.Image == nil || len(in.Image.Data) == 0 {
			return fmt.Errorf("%w: no image provided", common.ErrInvalidInput)
		}
		if _, ok := ParseMediaType(string(in.Image.MediaType)); !ok {
			return fmt.Errorf("%w: unsupported file type %q", common.ErrInvalidInput, in.Image.MediaType)
		}
		if len(in.Image.Data) > MaxImageBytes {
			return fmt.Errorf("%w: file too large (maximum 10MB)", common.ErrInvalidInput)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown input kind %d", common.ErrInvalidInput, in.Kind)
	}
}

// Describe returns a short human-readable summary of the input.
func (in Input) Describe() string {
	if in.Kind == InputImage && in.Image != nil {
		return fmt.Sprintf("%s (%s, %d bytes)", in.Image.Filename, in.Image.MediaType, len(in.Image.Data))
	}
	return fmt.Sprintf("%q", in.Text)
}
