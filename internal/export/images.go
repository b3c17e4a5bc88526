package export

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cardpress/cardpress/pkg/models"
)

const (
	imageFetchTimeout = 20 * time.Second
	maxImageBytes     = 32 << 20
)

// ImageFetcher resolves a row's image source into decoded pixels.
// Local data always wins over the remote URL. Every failure is
// per-row: the caller records the reason and keeps exporting.
type ImageFetcher struct {
	client *http.Client
}

func NewImageFetcher() *ImageFetcher {
	return &ImageFetcher{
		client: &http.Client{Timeout: imageFetchTimeout},
	}
}

// Resolve returns the decoded image for a row, or an error describing
// why it could not be obtained. A row without any image source
// returns (nil, nil).
func (f *ImageFetcher) Resolve(ctx context.Context, row *models.FlashcardRow) (image.Image, error) {
	var data []byte
	switch {
	case len(row.LocalImageData) > 0:
		var err error
		data, err = decodePayload(row.LocalImageData)
		if err != nil {
			return nil, err
		}
	case row.ImageURL != "":
		var err error
		data, err = f.fetch(ctx, row.ImageURL)
		if err != nil {
			return nil, err
		}
	default:
		return nil, nil
	}

	format := SniffImageFormat(data)
	if format == "" {
		return nil, fmt.Errorf("unrecognized image format")
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s image: %w", format, err)
	}
	return img, nil
}

func (f *ImageFetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid image url: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image fetch failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image fetch failed: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("image read failed: %w", err)
	}
	return data, nil
}

// decodePayload accepts either raw image bytes or a data URL.
func decodePayload(payload []byte) ([]byte, error) {
	s := string(payload)
	if !strings.HasPrefix(s, "data:") {
		return payload, nil
	}
	idx := strings.Index(s, ",")
	if idx < 0 {
		return nil, fmt.Errorf("malformed data url")
	}
	meta, body := s[:idx], s[idx+1:]
	if !strings.Contains(meta, "base64") {
		return nil, fmt.Errorf("unsupported data url encoding")
	}
	data, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return nil, fmt.Errorf("malformed data url payload: %w", err)
	}
	return data, nil
}

// SniffImageFormat detects the raster format from leading magic bytes.
// The embed path differs per format, so sniffing happens before any
// decode attempt.
func SniffImageFormat(data []byte) string {
	switch {
	case len(data) >= 8 && bytes.Equal(data[:8], []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}):
		return "png"
	case len(data) >= 3 && data[0] == 0xff && data[1] == 0xd8 && data[2] == 0xff:
		return "jpeg"
	case len(data) >= 6 && (bytes.Equal(data[:6], []byte("GIF87a")) || bytes.Equal(data[:6], []byte("GIF89a"))):
		return "gif"
	default:
		return ""
	}
}
