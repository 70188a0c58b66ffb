package model

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/Veraticus/ecosort/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngData  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	gifData  = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\xff\xff\xff\x00\x00\x00,")
	jpegData = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
	bmpData  = bmpHeader()
)

// bmpHeader returns a 1x1 24-bit BITMAPINFOHEADER file header.
func bmpHeader() []byte {
	var b bytes.Buffer
	b.WriteString("BM")
	_ = binary.Write(&b, binary.LittleEndian, uint32(58))
	_ = binary.Write(&b, binary.LittleEndian, uint32(0))
	_ = binary.Write(&b, binary.LittleEndian, uint32(54))
	_ = binary.Write(&b, binary.LittleEndian, uint32(40))
	_ = binary.Write(&b, binary.LittleEndian, int32(1))
	_ = binary.Write(&b, binary.LittleEndian, int32(1))
	_ = binary.Write(&b, binary.LittleEndian, uint16(1))
	_ = binary.Write(&b, binary.LittleEndian, uint16(24))
	b.Write(make([]byte, 24))
	b.Write([]byte{0xff, 0xff, 0xff, 0x00})
	return b.Bytes()
}

func TestNewTextInput(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		wantErr bool
	}{
		{name: "trimmed", text: "  plastic water bottle \n", want: "plastic water bottle"},
		{name: "empty", text: "", wantErr: true},
		{name: "whitespace only", text: " \t\n ", wantErr: true},
		{name: "at limit", text: strings.Repeat("a", MaxTextLength), want: strings.Repeat("a", MaxTextLength)},
		{name: "over limit", text: strings.Repeat("a", MaxTextLength+1), wantErr: true},
		{name: "multibyte counts characters", text: strings.Repeat("é", MaxTextLength), want: strings.Repeat("é", MaxTextLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := NewTextInput(tt.text)
			if tt.wantErr {
				require.ErrorIs(t, err, common.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, InputText, in.Kind)
			assert.Equal(t, tt.want, in.Text)
		})
	}
}

func TestNewImageInput(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		want     MediaType
		wantErr  bool
	}{
		{name: "png", filename: "bottle.png", data: pngData, want: MediaPNG},
		{name: "gif", filename: "can.gif", data: gifData, want: MediaGIF},
		{name: "jpeg", filename: "peel.jpg", data: jpegData, want: MediaJPEG},
		{name: "bmp", filename: "battery.bmp", data: bmpData, want: MediaBMP},
		{name: "content wins over extension", filename: "mislabeled.jpg", data: pngData, want: MediaPNG},
		{name: "pdf rejected", filename: "receipt.pdf", data: []byte("%PDF-1.4\n%âãÏÓ\n"), wantErr: true},
		{name: "text rejected", filename: "notes.png", data: []byte("just some words"), wantErr: true},
		{name: "empty", filename: "empty.png", data: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := NewImageInput("/tmp/photos/"+tt.filename, tt.data)
			if tt.wantErr {
				require.ErrorIs(t, err, common.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, InputImage, in.Kind)
			require.NotNil(t, in.Image)
			assert.Equal(t, tt.want, in.Image.MediaType)
			assert.Equal(t, tt.filename, in.Image.Filename)
		})
	}
}

func TestNewImageInput_TooLarge(t *testing.T) {
	data := make([]byte, MaxImageBytes+1)
	copy(data, pngData)

	_, err := NewImageInput("huge.png", data)
	require.ErrorIs(t, err, common.ErrInvalidInput)
	assert.Contains(t, err.Error(), "too large")
}

func TestParseMediaType(t *testing.T) {
	tests := []struct {
		declared string
		want     MediaType
		ok       bool
	}{
		{"png", MediaPNG, true},
		{".JPG", MediaJPEG, true},
		{"image/jpeg", MediaJPEG, true},
		{"image/gif; charset=binary", MediaGIF, true},
		{"image/x-ms-bmp", MediaBMP, true},
		{"image/webp", "", false},
		{"application/pdf", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.declared, func(t *testing.T) {
			got, ok := ParseMediaType(tt.declared)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "image/png", MediaPNG.MIME())
}

func TestInput_Validate(t *testing.T) {
	assert.ErrorIs(t, Input{Kind: InputImage}.Validate(), common.ErrInvalidInput)
	assert.ErrorIs(t, Input{Kind: InputImage, Image: &Image{MediaType: "tiff", Data: []byte{1}}}.Validate(), common.ErrInvalidInput)
	assert.ErrorIs(t, Input{Kind: InputKind(9)}.Validate(), common.ErrInvalidInput)
	assert.NoError(t, Input{Kind: InputText, Text: "glass jar"}.Validate())
}

func TestInput_Describe(t *testing.T) {
	text, err := NewTextInput("glass jar")
	require.NoError(t, err)
	assert.Equal(t, `"glass jar"`, text.Describe())

	img, err := NewImageInput("jar.png", pngData)
	require.NoError(t, err)
	assert.Equal(t, "jar.png (png, 29 bytes)", img.Describe())

	assert.Equal(t, "image", InputImage.String())
	assert.Equal(t, "text", InputText.String())
}
