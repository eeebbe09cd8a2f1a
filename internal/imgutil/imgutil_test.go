package imgutil

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodedSize(t *testing.T) {
	t.Run("no padding", func(t *testing.T) {
		payload := []byte(strings.Repeat("A", 1000))
		assert.Equal(t, 750, DecodedSize(payload))
	})

	t.Run("one padding char", func(t *testing.T) {
		// "AA" base64-encodes to "QUE=".
		assert.Equal(t, 2, DecodedSize([]byte("QUE=")))
	})

	t.Run("two padding chars", func(t *testing.T) {
		assert.Equal(t, 1, DecodedSize([]byte("QQ==")))
	})

	t.Run("empty payload", func(t *testing.T) {
		assert.Equal(t, 0, DecodedSize(nil))
	})
}

func solidImage(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestEncodeDecodeRoundtrip(t *testing.T) {
	original := solidImage(8, 4, color.RGBA{R: 200, G: 10, B: 30, A: 255})

	payload, err := EncodePNGBase64(original)
	require.NoError(t, err)

	decoded, err := Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, original.Bounds(), decoded.Bounds())

	r, g, b, _ := decoded.At(3, 2).RGBA()
	assert.Equal(t, uint32(200), r>>8)
	assert.Equal(t, uint32(10), g>>8)
	assert.Equal(t, uint32(30), b>>8)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	t.Run("not base64", func(t *testing.T) {
		_, err := Decode([]byte("!!! not base64 !!!"))
		assert.ErrorContains(t, err, "not valid base64")
	})

	t.Run("base64 but not png", func(t *testing.T) {
		// 1000 'A' chars decode fine as base64 but are not a PNG stream.
		_, err := Decode([]byte(strings.Repeat("A", 1000)))
		assert.ErrorContains(t, err, "not a decodable PNG")
	})
}

func TestEncodeJPEG(t *testing.T) {
	img := solidImage(16, 16, color.RGBA{R: 128, G: 128, B: 128, A: 255})

	encoded, err := EncodeJPEG(img, DefaultJPEGQuality)
	require.NoError(t, err)
	require.NotEmpty(t, encoded)
	// JPEG streams start with the SOI marker.
	assert.Equal(t, []byte{0xFF, 0xD8}, encoded[:2])
}

func TestReadImageBase64(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "design.png")

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solidImage(2, 2, color.White)))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	payload, err := ReadImageBase64(path)
	require.NoError(t, err)

	decoded, err := Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, 2, decoded.Bounds().Dx())

	_, err = ReadImageBase64(filepath.Join(dir, "missing.png"))
	assert.ErrorContains(t, err, "failed to read image")
}

func TestLuminance(t *testing.T) {
	// Full-scale 16-bit white maps to 255 after channel scaling.
	assert.InDelta(t, 255.0, Luminance(0xFFFF, 0xFFFF, 0xFFFF), 0.001)
	assert.Equal(t, 0.0, Luminance(0, 0, 0))
	// Pure green carries the largest weight of the three channels.
	assert.InDelta(t, 0.7152*255, Luminance(0, 0xFFFF, 0), 0.001)
}
