// dimensions.go sniffs pixel dimensions from encoded image bytes.
// PNG and JPEG cover the hosted providers; WebP is registered because
// some dedicated endpoints serve it.
package imagegen

import (
	"bytes"
	"fmt"
	"image"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// DecodeDimensions reads the image header and returns its pixel
// dimensions without decoding the full image.
func DecodeDimensions(data []byte) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("imagegen: decoding image header: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
