package artcache

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

// decodeImage decodes data as one of the registered formats (PNG, JPEG,
// GIF) and returns the image plus its format name.
func decodeImage(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return img, format, nil
}

// saveThumbnail crops img to fill the configured thumbnail dimensions
// and writes the result. The output path uses the canonical extension
// for the image's format, which may differ from the path the original
// bytes were written to; the final path is returned.
//
// The thumbnail is encoded to a temp file and renamed into place only
// once complete, so a failed encode never clobbers the validated
// original already sitting at path.
func (c *Cache) saveThumbnail(img image.Image, format, path string) (string, error) {
	thumb := cropResize(img, c.thumbWidth, c.thumbHeight)

	finalPath := withExtension(path, canonicalExt(format))

	tmp, err := os.CreateTemp(filepath.Dir(finalPath), ".thumb-*")
	if err != nil {
		return "", fmt.Errorf("failed to create thumbnail file: %w", err)
	}

	switch format {
	case "png":
		err = png.Encode(tmp, thumb)
	case "gif":
		err = gif.Encode(tmp, thumb, nil)
	default:
		err = jpeg.Encode(tmp, thumb, &jpeg.Options{Quality: 90})
	}

	if err == nil {
		// CreateTemp opens 0600; stored covers are world-readable.
		err = tmp.Chmod(0644)
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmp.Name(), finalPath)
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to save thumbnail: %w", err)
	}

	return finalPath, nil
}

// cropResize scales img so the target is fully covered, cropping the
// centered overflow (crop-to-fill, not letterbox).
func cropResize(img image.Image, width, height int) image.Image {
	bounds := img.Bounds()
	srcW := bounds.Dx()
	srcH := bounds.Dy()

	// Pick the largest centered source window with the target aspect
	// ratio.
	cropW := srcW
	cropH := srcW * height / width
	if cropH > srcH {
		cropH = srcH
		cropW = srcH * width / height
	}

	x0 := bounds.Min.X + (srcW-cropW)/2
	y0 := bounds.Min.Y + (srcH-cropH)/2
	src := image.Rect(x0, y0, x0+cropW, y0+cropH)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)

	return dst
}

// canonicalExt maps a decoded format name to its file extension.
func canonicalExt(format string) string {
	switch format {
	case "png":
		return ".png"
	case "gif":
		return ".gif"
	default:
		return ".jpg"
	}
}

// withExtension replaces (or adds) the extension of path.
func withExtension(path, ext string) string {
	old := filepath.Ext(path)
	return strings.TrimSuffix(path, old) + ext
}
