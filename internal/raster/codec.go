package raster

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// Load decodes the image file at path into a Raster.
//
// Supported input formats are GIF, PNG, JPEG, BMP, TIFF and WebP. JPEG EXIF
// orientation is applied so rows and columns match what a viewer shows.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not a supported image format
func Load(path string) (*Raster, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	return FromImage(img), nil
}

// LoadImage decodes the image file at path without converting it.
func LoadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	return img, nil
}

// Decode reads an encoded image from rd into a Raster.
func Decode(rd io.Reader) (*Raster, error) {
	img, err := imaging.Decode(rd, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return FromImage(img), nil
}

// Save encodes r to path. The format is chosen from the file extension
// (.gif, .png, .jpg/.jpeg, .bmp, .tif/.tiff).
func Save(r *Raster, path string) error {
	if r.Area() == 0 {
		return fmt.Errorf("cannot save empty raster to %s", path)
	}
	if err := imaging.Save(r.Image(), path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// Encode writes r to w in the given format.
func Encode(w io.Writer, r *Raster, format imaging.Format) error {
	if r.Area() == 0 {
		return fmt.Errorf("cannot encode empty raster")
	}
	if err := imaging.Encode(w, r.Image(), format); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}

// EncodeBase64PNG encodes r as PNG and returns it base64-encoded.
func EncodeBase64PNG(r *Raster) (string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, r, imaging.PNG); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Info contains metadata about an image file.
type Info struct {
	// Rows is the image height in pixels.
	Rows int `json:"rows"`

	// Cols is the image width in pixels.
	Cols int `json:"cols"`

	// Format is the format implied by the file extension ("png", "gif", ...)
	// or "unknown".
	Format string `json:"format"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadInfo loads the image at path through cache and describes it.
func LoadInfo(cache *Cache, path string) (*Info, error) {
	r, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	if f, err := imaging.FormatFromFilename(path); err == nil {
		format = strings.ToLower(f.String())
	}

	return &Info{
		Rows:          r.Rows(),
		Cols:          r.Cols(),
		Format:        format,
		FileSizeBytes: stat.Size(),
	}, nil
}
