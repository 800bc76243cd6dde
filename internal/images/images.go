// Package images converts uploaded avatar bytes into the JPEG files the
// API serves. Decoders for the common upload formats are registered via
// the image package's format registry.
package images

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// jpegQuality trades file size against visible artifacts for avatars.
const jpegQuality = 90

// ReencodeJPEG decodes data in any registered format and re-encodes it as
// JPEG. The source format is returned alongside the encoded bytes.
func ReencodeJPEG(data []byte) ([]byte, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, "", fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf.Bytes(), format, nil
}
