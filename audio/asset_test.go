package audio

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// writeTestWav encodes a short noise burst at rate and returns its path
func writeTestWav(t *testing.T, rate beep.SampleRate, d time.Duration) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pop.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create wav: %v", err)
	}
	defer f.Close()

	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, NewNoiseBurst(d, 11, rate), format); err != nil {
		t.Fatalf("Failed to encode wav: %v", err)
	}
	return path
}

// TestAssetExt verifies extension detection for paths and URLs
func TestAssetExt(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"assets/explosionSound.mp3", ".mp3"},
		{"POP.WAV", ".wav"},
		{"https://cdn.example.com/a/b.mp3?token=x", ".mp3"},
		{"http://example.com/noext", ""},
	}
	for _, tt := range tests {
		if got := assetExt(tt.in); got != tt.want {
			t.Errorf("assetExt(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

// TestOpenAssetUnsupported verifies unknown extensions are rejected before any I/O
func TestOpenAssetUnsupported(t *testing.T) {
	_, _, err := OpenAsset(context.Background(), nil, "missing/track.ogg")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

// TestOpenAssetMissing verifies file errors are wrapped
func TestOpenAssetMissing(t *testing.T) {
	_, _, err := OpenAsset(context.Background(), nil, filepath.Join(t.TempDir(), "nope.mp3"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

// TestLoadBufferResamples verifies decoded assets are converted to the output rate
func TestLoadBufferResamples(t *testing.T) {
	path := writeTestWav(t, 22050, 100*time.Millisecond)

	buf, err := LoadBuffer(context.Background(), nil, path, 44100, 4)
	if err != nil {
		t.Fatalf("LoadBuffer failed: %v", err)
	}
	if buf.Format().SampleRate != 44100 {
		t.Errorf("Expected 44100 Hz buffer, got %d", buf.Format().SampleRate)
	}
	// 2205 source samples double to roughly 4410
	if buf.Len() < 4300 || buf.Len() > 4500 {
		t.Errorf("Expected about 4410 samples, got %d", buf.Len())
	}
}

// TestLoadBufferHTTP verifies remote assets are fetched and decoded
func TestLoadBufferHTTP(t *testing.T) {
	path := writeTestWav(t, 44100, 50*time.Millisecond)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sounds/pop.wav" {
			http.NotFound(w, r)
			return
		}
		w.Write(data)
	}))
	defer srv.Close()

	buf, err := LoadBuffer(context.Background(), srv.Client(), srv.URL+"/sounds/pop.wav", 44100, 4)
	if err != nil {
		t.Fatalf("LoadBuffer failed: %v", err)
	}
	if buf.Len() != beep.SampleRate(44100).N(50*time.Millisecond) {
		t.Errorf("Expected %d samples, got %d", beep.SampleRate(44100).N(50*time.Millisecond), buf.Len())
	}

	if _, err := LoadBuffer(context.Background(), srv.Client(), srv.URL+"/missing.wav", 44100, 4); err == nil {
		t.Error("Expected error for 404")
	}
}
