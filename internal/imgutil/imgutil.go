// Package imgutil provides the image helpers shared by metric
// implementations: Base64 payload handling, PNG/JPEG codecs, and small
// pixel-level conveniences.
package imgutil

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
)

// DefaultJPEGQuality mirrors the quality the capture pipeline uses when it
// produces JPEG variants of a screenshot.
const DefaultJPEGQuality = 70

// DecodedSize estimates the decoded byte size of a Base64 payload without
// decoding it: three quarters of the encoded length, minus padding.
func DecodedSize(payload []byte) int {
	padding := 0
	for i := len(payload) - 1; i >= 0 && i >= len(payload)-2; i-- {
		if payload[i] == '=' {
			padding++
		}
	}
	return 3*(len(payload)/4) - padding
}

// Decode turns a Base64-encoded PNG payload into a decoded image.
func Decode(payload []byte) (image.Image, error) {
	raw, err := base64.StdEncoding.DecodeString(string(payload))
	if err != nil {
		return nil, fmt.Errorf("payload is not valid base64: %w", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("payload is not a decodable PNG: %w", err)
	}
	return img, nil
}

// EncodeJPEG re-encodes a decoded image as JPEG at the given quality and
// returns the encoded bytes.
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("jpeg encoding failed: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodePNGBase64 encodes a decoded image as a Base64 PNG payload. Used by
// tests and the batch evaluator to synthesize GuiImage payloads.
func EncodePNGBase64(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("png encoding failed: %w", err)
	}
	return []byte(base64.StdEncoding.EncodeToString(buf.Bytes())), nil
}

// ReadImageBase64 reads an image file from disk and returns its contents as
// a Base64 payload, the form the engine consumes.
func ReadImageBase64(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", path, err)
	}
	return []byte(base64.StdEncoding.EncodeToString(raw)), nil
}

// Luminance computes the Rec. 709 luma of one pixel from its
// 16-bit-per-channel RGBA components.
func Luminance(r, g, b uint32) float64 {
	// Scale 16-bit channels down to 8-bit before weighting.
	return 0.2126*float64(r>>8) + 0.7152*float64(g>>8) + 0.0722*float64(b>>8)
}
