package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/tomb-engine/internal/engine"
)

func TestGetFullPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := GetFullPath("~/saves/tomb.db")
	if err != nil {
		t.Fatalf("GetFullPath() failed: %v", err)
	}
	if want := filepath.Join(home, "saves", "tomb.db"); got != want {
		t.Errorf("GetFullPath() = %q, expected %q", got, want)
	}

	if _, err := GetFullPath(""); err == nil {
		t.Error("GetFullPath(\"\") should fail")
	}

	rel, err := GetFullPath("levels/demo.yaml")
	if err != nil {
		t.Fatalf("GetFullPath() failed: %v", err)
	}
	if !filepath.IsAbs(rel) {
		t.Errorf("GetFullPath() = %q, expected an absolute path", rel)
	}
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "save.bin")
	data := []byte("TSG2 payload")

	if err := WriteFile(path, data); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("ReadFile() = %q, expected %q", got, data)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, expected 1", len(entries))
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("ReadFile() of a missing file should fail")
	}
}

func writeWav(t *testing.T, samples int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	defer f.Close()
	format := beep.Format{SampleRate: 22050, NumChannels: 1, Precision: 2}
	if err := wav.Encode(f, beep.Silence(samples), format); err != nil {
		t.Fatalf("wav.Encode() failed: %v", err)
	}
	return path
}

func TestAudioStreamLifecycle(t *testing.T) {
	s, ok := OpenStream(writeWav(t, 1000))
	if !ok {
		t.Fatal("OpenStream() failed")
	}

	if s.Len() != 1000 {
		t.Errorf("Len() = %d, expected 1000", s.Len())
	}

	s.SetLooped(true)
	if !s.Looped() {
		t.Error("Looped() = false after SetLooped(true)")
	}

	tests := []struct {
		in, want float64
	}{
		{1, 1},
		{0.5, 0.5},
		{0, 0},
		{2, 1},
	}
	for _, tt := range tests {
		s.SetVolume(tt.in)
		if got := s.Volume(); got < tt.want-1e-9 || got > tt.want+1e-9 {
			t.Errorf("Volume() after SetVolume(%v) = %v, expected %v", tt.in, got, tt.want)
		}
	}

	if err := s.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
}

func TestOpenStreamRejects(t *testing.T) {
	dir := t.TempDir()
	junk := filepath.Join(dir, "junk.wav")
	if err := os.WriteFile(junk, []byte(strings.Repeat("x", 64)), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{filepath.Join(dir, "missing.wav"), junk} {
		if _, ok := OpenStream(path); ok {
			t.Errorf("OpenStream(%q) succeeded, expected failure", path)
		}
	}
}

func TestPublisherDropsOldest(t *testing.T) {
	p := NewFramePublisher(2)
	sub := p.Subscribe()

	for tick := uint64(1); tick <= 5; tick++ {
		p.Publish(engine.Frame{Tick: tick})
	}

	var got []uint64
	for len(got) < 2 {
		select {
		case f := <-sub.Frames():
			got = append(got, f.Tick)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for frames")
		}
	}
	if got[0] != 4 || got[1] != 5 {
		t.Errorf("frames = %v, expected [4 5]", got)
	}
}

func TestPublisherCancel(t *testing.T) {
	p := NewFramePublisher(1)
	a := p.Subscribe()
	b := p.Subscribe()
	if p.Count() != 2 {
		t.Fatalf("Count() = %d, expected 2", p.Count())
	}

	a.Cancel()
	a.Cancel()
	if p.Count() != 1 {
		t.Errorf("Count() after Cancel() = %d, expected 1", p.Count())
	}

	p.Close()
	select {
	case <-b.Done():
	default:
		t.Error("Close() did not end the remaining subscription")
	}
	p.Publish(engine.Frame{Tick: 1})

	if late := p.Subscribe(); late != nil {
		select {
		case <-late.Done():
		default:
			t.Error("Subscribe() after Close() returned a live subscription")
		}
	}
}
