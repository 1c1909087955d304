package audio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/wav"
)

// maxAssetBytes bounds remote downloads
const maxAssetBytes = 64 << 20

// memFile adapts an in-memory download to a seekable ReadCloser
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

// isRemote reports whether location is an http(s) URL
func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// assetExt returns the lowercase extension of a path or URL path
func assetExt(location string) string {
	if isRemote(location) {
		if u, err := url.Parse(location); err == nil {
			return strings.ToLower(path.Ext(u.Path))
		}
	}
	return strings.ToLower(path.Ext(location))
}

// OpenAsset opens and decodes an mp3 or wav asset from a file path or http(s) URL
// Remote assets are downloaded fully before decoding
func OpenAsset(ctx context.Context, client *http.Client, location string) (beep.StreamSeekCloser, beep.Format, error) {
	ext := assetExt(location)
	if ext != ".mp3" && ext != ".wav" {
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, location)
	}

	var rc io.ReadCloser
	if isRemote(location) {
		data, err := fetch(ctx, client, location)
		if err != nil {
			return nil, beep.Format{}, err
		}
		rc = memFile{bytes.NewReader(data)}
	} else {
		f, err := os.Open(location)
		if err != nil {
			return nil, beep.Format{}, fmt.Errorf("open asset: %w", err)
		}
		rc = f
	}

	var (
		s      beep.StreamSeekCloser
		format beep.Format
		err    error
	)
	switch ext {
	case ".mp3":
		s, format, err = mp3.Decode(rc)
	case ".wav":
		s, format, err = wav.Decode(rc)
	}
	if err != nil {
		rc.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", location, err)
	}
	return s, format, nil
}

func fetch(ctx context.Context, client *http.Client, location string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch asset: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch asset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch asset %s: status %d", location, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetBytes))
	if err != nil {
		return nil, fmt.Errorf("fetch asset: %w", err)
	}
	return data, nil
}

// LoadBuffer decodes an asset fully into memory at the target sample rate
func LoadBuffer(ctx context.Context, client *http.Client, location string, rate beep.SampleRate, quality int) (*beep.Buffer, error) {
	s, format, err := OpenAsset(ctx, client, location)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	var src beep.Streamer = s
	if format.SampleRate != rate {
		src = beep.Resample(quality, format.SampleRate, rate, s)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2})
	buf.Append(src)
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", location, err)
	}
	return buf, nil
}
