package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
)

// Normalize decodes a cover image (png, jpeg, gif or bmp) and letterboxes it
// onto a width x height canvas, preserving aspect ratio. The result is always
// PNG, which is the only format the firmware renders.
func Normalize(src []byte, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}

	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	sb := img.Bounds()
	if sb.Dx() == 0 || sb.Dy() == 0 {
		return nil, fmt.Errorf("empty source image")
	}

	scale := float64(width) / float64(sb.Dx())
	if s := float64(height) / float64(sb.Dy()); s < scale {
		scale = s
	}
	dw := int(float64(sb.Dx())*scale + 0.5)
	dh := int(float64(sb.Dy())*scale + 0.5)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}
	x0 := (width - dw) / 2
	y0 := (height - dh) / 2

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(canvas, image.Rect(x0, y0, x0+dw, y0+dh), img, sb, xdraw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// NormalizeFile normalizes the image at srcPath onto the canvas and writes
// the PNG to dstPath, creating the destination directory when needed.
func NormalizeFile(srcPath, dstPath string, width, height int) error {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("read image %s: %w", srcPath, err)
	}
	out, err := Normalize(data, width, height)
	if err != nil {
		return fmt.Errorf("normalize %s: %w", srcPath, err)
	}
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return fmt.Errorf("ensure dir %s: %w", filepath.Dir(dstPath), err)
	}
	if err := os.WriteFile(dstPath, out, 0o644); err != nil {
		return fmt.Errorf("write cover %s: %w", dstPath, err)
	}
	return nil
}
