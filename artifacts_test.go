package btvo

import (
	"os"
	"path/filepath"
	"testing"
)

func TestArtifactDirWriteListClear(t *testing.T) {
	dir := t.TempDir()
	a, err := NewArtifactDir(filepath.Join(dir, "voice_overs"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if err := a.Write("001_Krishna.mp3", []byte("audio-1")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := a.Write("002_Radha.mp3", []byte("audio-2")); err != nil {
		t.Fatalf("write: %v", err)
	}

	files, err := a.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if files[0].Name != "001_Krishna.mp3" || files[1].Name != "002_Radha.mp3" {
		t.Fatalf("unexpected order: %v", files)
	}
	if files[0].Size != 7 {
		t.Fatalf("unexpected size: %d", files[0].Size)
	}

	deleted, err := a.Clear()
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deleted, got %d", deleted)
	}

	files, _ = a.List()
	if len(files) != 0 {
		t.Fatalf("expected empty dir, got %v", files)
	}
}

func TestArtifactDirRejectsTraversal(t *testing.T) {
	a, err := NewArtifactDir(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	for _, name := range []string{"", ".", "..", "../escape.mp3", "a/b.mp3", `a\b.mp3`} {
		if err := a.Write(name, []byte("x")); err == nil {
			t.Fatalf("expected write of %q to fail", name)
		}
		if _, err := a.Path(name); err == nil {
			t.Fatalf("expected path of %q to fail", name)
		}
	}
}

func TestArtifactDirPath(t *testing.T) {
	a, err := NewArtifactDir(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := a.Write("001_Krishna.mp3", []byte("x")); err != nil {
		t.Fatalf("write: %v", err)
	}

	p, err := a.Path("001_Krishna.mp3")
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if _, err := os.Stat(p); err != nil {
		t.Fatalf("stat: %v", err)
	}

	if _, err := a.Path("404_Nobody.mp3"); err == nil {
		t.Fatal("expected not-found error")
	}
}

func TestCueFileName(t *testing.T) {
	if got := cueFileName(1, "Krishna"); got != "001_Krishna.mp3" {
		t.Fatalf("got %q", got)
	}
	if got := cueFileName(42, "Narrator"); got != "042_Narrator.mp3" {
		t.Fatalf("got %q", got)
	}
	if got := cueFileName(123, "Friend1"); got != "123_Friend1.mp3" {
		t.Fatalf("got %q", got)
	}
}
