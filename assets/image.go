// Package assets fetches and prepares external media for embedding in
// exported decks. Oversized images are downscaled and re-encoded so a
// deck full of photography stays a reasonable file size.
package assets

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/image/draw"
)

const (
	// Images above this size get recompressed before embedding.
	maxImageBytes = 2 * 1024 * 1024

	// Longest edge after downscaling. Slides are rendered at 1920px
	// wide, so anything larger is wasted bytes.
	maxDimension = 1920

	jpegQuality = 85
)

// Image is fetched, possibly recompressed, media ready for embedding.
type Image struct {
	Data []byte
	MIME string
}

// Fetcher retrieves remote images. The zero value is not usable; call
// NewFetcher.
type Fetcher struct {
	client *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: 30 * time.Second}}
}

// Fetch resolves a URL to embeddable image data. data: URLs are
// decoded in place without a network round trip. Payloads above the
// size threshold are downscaled to maxDimension on the longest edge
// and re-encoded as JPEG.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Image, error) {
	if strings.HasPrefix(url, "data:") {
		return decodeDataURL(url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch image: %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024*1024))
	if err != nil {
		return nil, err
	}

	mime := resp.Header.Get("Content-Type")
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	mime = strings.TrimSpace(mime)
	if !strings.HasPrefix(mime, "image/") {
		mime = sniffMIME(data)
	}

	if len(data) > maxImageBytes {
		return Compress(data)
	}
	return &Image{Data: data, MIME: mime}, nil
}

// Compress decodes an image, scales its longest edge down to
// maxDimension when needed, and re-encodes as JPEG.
func Compress(data []byte) (*Image, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > maxDimension || h > maxDimension {
		if w > h {
			h = h * maxDimension / w
			w = maxDimension
		} else {
			w = w * maxDimension / h
			h = maxDimension
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return &Image{Data: buf.Bytes(), MIME: "image/jpeg"}, nil
}

// decodeDataURL splits "data:<mime>;base64,<payload>".
func decodeDataURL(url string) (*Image, error) {
	meta, payload, ok := strings.Cut(url, ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URL")
	}
	mime := "image/png"
	meta = strings.TrimPrefix(meta, "data:")
	if i := strings.IndexByte(meta, ';'); i >= 0 {
		meta = meta[:i]
	}
	if meta != "" {
		mime = meta
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode data URL: %w", err)
	}
	if len(data) > maxImageBytes {
		return Compress(data)
	}
	return &Image{Data: data, MIME: mime}, nil
}

// DataURL renders the image back into a data: URL for storage.
func (img *Image) DataURL() string {
	return "data:" + img.MIME + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

func sniffMIME(data []byte) string {
	switch {
	case len(data) >= 8 && bytes.Equal(data[:8], []byte("\x89PNG\r\n\x1a\n")):
		return "image/png"
	case len(data) >= 3 && bytes.Equal(data[:3], []byte("\xff\xd8\xff")):
		return "image/jpeg"
	case len(data) >= 6 && (bytes.Equal(data[:6], []byte("GIF87a")) || bytes.Equal(data[:6], []byte("GIF89a"))):
		return "image/gif"
	default:
		return "image/png"
	}
}
